package stop

import (
	"github.com/hmehta/acdsc/internal/pkg/acdsc"
	"github.com/hmehta/acdsc/internal/pkg/console"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	contextInternal "github.com/hmehta/acdsc/internal/context"
)

func Handle(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	cfg := contextInternal.ConfigFromContext(ctx)

	console.Println("Stop Assetto Corsa Dedicated Server")

	sv := acdsc.NewSupervisor(cfg, contextInternal.ConfigPathFromContext(ctx))

	if !sv.PIDFileExists() {
		console.Warning("Pid file %s does not exist, server not running?", sv.PIDFile())

		return nil
	}

	err := sv.Stop(ctx)
	if err != nil {
		return errors.WithMessage(err, "failed to stop server")
	}

	console.Success("Server stopped")

	return nil
}
