package start

import (
	"github.com/hmehta/acdsc/internal/pkg/acdsc"
	"github.com/hmehta/acdsc/internal/pkg/console"
	"github.com/hmehta/acdsc/pkg/utils"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	contextInternal "github.com/hmehta/acdsc/internal/context"
)

var ErrServerNotInstalled = errors.New("server is not installed, run 'acdsc install' first")

func Handle(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	cfg := contextInternal.ConfigFromContext(ctx)

	console.Println("Start Assetto Corsa Dedicated Server")

	if err := CheckReady(cfg); err != nil {
		return err
	}

	sv := acdsc.NewSupervisor(cfg, contextInternal.ConfigPathFromContext(ctx))

	err := sv.Start(ctx)
	if err != nil {
		return errors.WithMessage(err, "failed to start server")
	}

	pid, err := sv.GetPID()
	if err != nil {
		console.Warning("Server is starting, pid file %s is not written yet", sv.PIDFile())

		return nil
	}

	console.Success("Server started with pid %d", pid)

	return nil
}

// CheckReady verifies that the server binary and its configuration exist.
func CheckReady(cfg acdsc.Config) error {
	if !utils.IsDirExists(cfg.ServerPath) {
		return errors.WithMessage(ErrServerNotInstalled, cfg.ServerPath)
	}

	if !utils.IsFileExists(cfg.ServerConfigPath()) {
		return errors.WithMessage(acdsc.ErrNoServerConfig, cfg.ServerConfigPath())
	}

	return nil
}
