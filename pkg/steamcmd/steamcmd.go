// Package steamcmd drives Valve's SteamCMD to install and update the Assetto
// Corsa dedicated server.
package steamcmd

import (
	"context"
	"log"
	"path/filepath"
	"strconv"

	"github.com/hmehta/acdsc/pkg/oscore"
	"github.com/hmehta/acdsc/pkg/utils"
	"github.com/pkg/errors"
)

const (
	DefaultExecutable = "steamcmd.sh"
	DefaultAppID      = 302550
	steamappsDir      = "steamapps"
)

var ErrNotFound = errors.New("steamcmd not found")

type Credentials struct {
	Username string
	Password string
}

type SteamCMD struct {
	Path       string
	Executable string
	exec       execFunc
}

type execFunc func(ctx context.Context, command string, args []string, opts ...oscore.ExecOption) error

func New(path, executable string) *SteamCMD {
	if executable == "" {
		executable = DefaultExecutable
	}

	return &SteamCMD{
		Path:       path,
		Executable: executable,
		exec:       oscore.ExecCommand,
	}
}

func (s *SteamCMD) Command() string {
	if filepath.IsAbs(s.Executable) {
		return s.Executable
	}

	return filepath.Join(s.Path, s.Executable)
}

// Has reports whether the SteamCMD directory and its launcher script exist.
func Has(path, executable string) bool {
	return utils.IsDirExists(path) && utils.IsFileExists(New(path, executable).Command())
}

// AssertWorking runs SteamCMD once with +quit, which also lets it finish a
// pending self update.
func (s *SteamCMD) AssertWorking(ctx context.Context) error {
	if !Has(s.Path, s.Executable) {
		return errors.WithMessage(ErrNotFound, s.Command())
	}

	err := s.exec(ctx, s.Command(), []string{"+quit"}, oscore.WithDir(s.Path))
	if err != nil {
		return errors.WithMessage(err, "steamcmd is not working")
	}

	return nil
}

// UpdateArgs returns the SteamCMD arguments installing or updating appID.
// The Windows build is requested because that is the platform the server
// content is published for.
func UpdateArgs(creds Credentials, appID int) []string {
	return []string{
		"+login", creds.Username, creds.Password,
		"+@sSteamCmdForcePlatformType", "windows",
		"+app_update", strconv.Itoa(appID),
		"+quit",
	}
}

// Update installs or updates the dedicated server. The password is passed
// on the command line as SteamCMD requires, it is masked in the log.
func (s *SteamCMD) Update(ctx context.Context, creds Credentials, appID int) error {
	if !Has(s.Path, s.Executable) {
		return errors.WithMessage(ErrNotFound, s.Command())
	}

	log.Printf("Updating Assetto Corsa Dedicated Server (app %d)\n", appID)

	err := s.exec(ctx, s.Command(), UpdateArgs(creds, appID),
		oscore.WithDir(s.Path),
		oscore.WithSecrets(creds.Password),
	)
	if err != nil {
		return errors.WithMessage(err, "failed to update server")
	}

	return nil
}

// HasServer reports whether SteamCMD has downloaded any app and the server
// directory exists.
func HasServer(steamcmdPath, serverPath string) bool {
	return utils.IsDirExists(steamcmdPath) &&
		utils.IsDirExists(filepath.Join(steamcmdPath, steamappsDir)) &&
		utils.IsDirExists(serverPath)
}
