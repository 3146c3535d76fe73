package install

import (
	"github.com/hmehta/acdsc/internal/pkg/acdsc"
	"github.com/hmehta/acdsc/internal/pkg/console"
	"github.com/hmehta/acdsc/pkg/steamcmd"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	contextInternal "github.com/hmehta/acdsc/internal/context"
)

const steamCMDDocs = "https://developer.valvesoftware.com/wiki/SteamCMD"

func Handle(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	cfg := contextInternal.ConfigFromContext(ctx)

	if !steamcmd.Has(cfg.SteamCMDPath, cfg.SteamCMDExecutable) {
		console.Error("SteamCMD not found from %s", cfg.SteamCMDPath)
		console.Println("Install it following", steamCMDDocs)

		return errors.WithMessage(steamcmd.ErrNotFound, cfg.SteamCMDPath)
	}

	s := cfg.SteamCMD()

	console.Println("Checking SteamCMD")
	if err := s.AssertWorking(ctx); err != nil {
		return err
	}

	console.Success("Updating Assetto Corsa Dedicated Server")
	if err := s.Update(ctx, cfg.Credentials(), cfg.Steam.AppID); err != nil {
		return err
	}

	if !steamcmd.HasServer(cfg.SteamCMDPath, cfg.ServerPath) {
		return errors.Errorf("server not found in %s after update, check server-path", cfg.ServerPath)
	}

	console.Success("Server installed to %s", cfg.ServerPath)

	if acdsc.NewSupervisor(cfg, contextInternal.ConfigPathFromContext(ctx)).PIDFileExists() {
		console.Warning("Server is running, restart it to use the update")
	}

	return nil
}
