package restart

import (
	"github.com/hmehta/acdsc/internal/actions/server/start"
	"github.com/hmehta/acdsc/internal/pkg/acdsc"
	"github.com/hmehta/acdsc/internal/pkg/console"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	contextInternal "github.com/hmehta/acdsc/internal/context"
)

func Handle(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	cfg := contextInternal.ConfigFromContext(ctx)

	console.Println("Restart Assetto Corsa Dedicated Server")

	if err := start.CheckReady(cfg); err != nil {
		return err
	}

	sv := acdsc.NewSupervisor(cfg, contextInternal.ConfigPathFromContext(ctx))

	err := sv.Restart(ctx)
	if err != nil {
		return errors.WithMessage(err, "failed to restart server")
	}

	pid, err := sv.GetPID()
	if err != nil {
		console.Warning("Server is starting, pid file %s is not written yet", sv.PIDFile())

		return nil
	}

	console.Success("Server restarted with pid %d", pid)

	return nil
}
