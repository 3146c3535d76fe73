package acdsc

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/hmehta/acdsc/pkg/steamcmd"
	"github.com/pkg/errors"
)

const (
	configFileName = "acdsc.yaml"

	defaultServerExecutable = "./acServer"
	defaultServerPath       = "steamapps/common/assettocorsa/server"
	defaultSteamUsername    = "acdscontrol"
	defaultSteamPassword    = "Kekkonen69"
	defaultStartTimeout     = 5 * time.Second
)

var (
	ErrInvalidAppID        = errors.New("steam app-id must be positive")
	ErrInvalidStartTimeout = errors.New("start-timeout must be a non-negative duration, e.g. 5s")
)

type Steam struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	AppID    int    `yaml:"app-id"`
}

// Config is the configuration of acdsc itself, as opposed to the server
// configuration it generates.
type Config struct {
	PIDFile            string `yaml:"pidfile"`
	ServerPath         string `yaml:"server-path"`
	ServerExecutable   string `yaml:"server-executable"`
	SteamCMDPath       string `yaml:"steamcmd-path"`
	SteamCMDExecutable string `yaml:"steamcmd-executable"`
	Steam              Steam  `yaml:"steam"`
	LogDir             string `yaml:"log-dir"`
	// StartTimeout is how long "server start" waits for the daemon to write
	// its pid file, "0s" returns right after spawning.
	StartTimeout       string `yaml:"start-timeout"`
}

func DefaultConfigPath() (string, error) {
	dir, err := stateDirectory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, configFileName), nil
}

func defaultConfig(stateDir string) Config {
	return Config{
		PIDFile:            filepath.Join(stateDir, "acserver.pid"),
		ServerPath:         defaultServerPath,
		ServerExecutable:   defaultServerExecutable,
		SteamCMDPath:       filepath.Join(stateDir, "steamcmd"),
		SteamCMDExecutable: steamcmd.DefaultExecutable,
		Steam: Steam{
			Username: defaultSteamUsername,
			Password: defaultSteamPassword,
			AppID:    steamcmd.DefaultAppID,
		},
		LogDir:       filepath.Join(stateDir, "logs"),
		StartTimeout: defaultStartTimeout.String(),
	}
}

// LoadConfig reads the configuration file at path over the defaults. A
// missing file yields the defaults. Relative paths are resolved, see
// Config.resolve.
func LoadConfig(path string) (Config, error) {
	dir, err := stateDirectory()
	if err != nil {
		return Config{}, err
	}

	return loadConfig(path, dir)
}

func loadConfig(path, stateDir string) (Config, error) {
	cfg := defaultConfig(stateDir)

	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, errors.WithMessage(err, "failed to read config")
	}
	if err == nil {
		if err = yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, errors.WithMessagef(err, "failed to parse config %s", path)
		}
	}

	if cfg.Steam.AppID <= 0 {
		return Config{}, ErrInvalidAppID
	}

	if d, err := time.ParseDuration(cfg.StartTimeout); err != nil || d < 0 {
		return Config{}, errors.WithMessagef(ErrInvalidStartTimeout, "got %q", cfg.StartTimeout)
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return Config{}, errors.WithMessage(err, "failed to resolve config directory")
	}

	return cfg.resolve(base), nil
}

// resolve makes every path absolute, the server daemon runs in "/".
// server-path is relative to steamcmd-path because SteamCMD installs apps
// under its own steamapps directory; everything else is relative to the
// directory of the configuration file.
func (c Config) resolve(base string) Config {
	c.PIDFile = absPath(base, c.PIDFile)
	c.LogDir = absPath(base, c.LogDir)
	c.SteamCMDPath = absPath(base, c.SteamCMDPath)
	c.ServerPath = absPath(c.SteamCMDPath, c.ServerPath)

	return c
}

func absPath(base, path string) string {
	if path == "" {
		return path
	}

	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}

	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(base, path)
}

func SaveConfig(path string, cfg Config) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WithMessage(err, "failed to marshal config")
	}

	if err = os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.WithMessage(err, "failed to create config directory")
	}

	// The file holds the steam password.
	if err = os.WriteFile(path, b, 0600); err != nil {
		return errors.WithMessage(err, "failed to write config")
	}

	return nil
}

// StartTimeoutDuration returns the parsed start-timeout, the default when it
// does not parse.
func (c Config) StartTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.StartTimeout)
	if err != nil || d < 0 {
		return defaultStartTimeout
	}

	return d
}

func (c Config) SteamCMD() *steamcmd.SteamCMD {
	return steamcmd.New(c.SteamCMDPath, c.SteamCMDExecutable)
}

func (c Config) Credentials() steamcmd.Credentials {
	return steamcmd.Credentials{
		Username: c.Steam.Username,
		Password: c.Steam.Password,
	}
}
