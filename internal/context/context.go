package context

import (
	"context"
	"path/filepath"

	"github.com/hmehta/acdsc/internal/pkg/acdsc"
	"github.com/hmehta/acdsc/pkg/settings"
)

type contextKey int

const (
	config contextKey = iota
	configPath
	registry
)

func ConfigFromContext(ctx context.Context) acdsc.Config {
	cfg, _ := ctx.Value(config).(acdsc.Config)

	return cfg
}

func ConfigPathFromContext(ctx context.Context) string {
	path, _ := ctx.Value(configPath).(string)

	return path
}

func RegistryFromContext(ctx context.Context) *settings.Registry {
	reg, _ := ctx.Value(registry).(*settings.Registry)

	return reg
}

func ContextWithConfig(ctx context.Context, path string, cfg acdsc.Config) context.Context {
	ctx = context.WithValue(ctx, configPath, path)

	return context.WithValue(ctx, config, cfg)
}

// SetConfigContext loads the control configuration and the settings schema
// into the context. An empty path selects the default configuration file.
func SetConfigContext(ctx context.Context, path string) (context.Context, error) {
	var err error
	if path == "" {
		path, err = acdsc.DefaultConfigPath()
		if err != nil {
			return ctx, err
		}
	}

	// the daemon is re-executed with "/" as working directory
	path, err = filepath.Abs(path)
	if err != nil {
		return ctx, err
	}

	cfg, err := acdsc.LoadConfig(path)
	if err != nil {
		return ctx, err
	}

	reg, err := settings.Default()
	if err != nil {
		return ctx, err
	}

	ctx = ContextWithConfig(ctx, path, cfg)

	return context.WithValue(ctx, registry, reg), nil
}
