package status

import (
	"github.com/dustin/go-humanize"
	"github.com/hmehta/acdsc/internal/pkg/acdsc"
	"github.com/hmehta/acdsc/internal/pkg/console"
	"github.com/hmehta/acdsc/pkg/daemon"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	contextInternal "github.com/hmehta/acdsc/internal/context"
)

var ErrNotRunning = errors.New("server is not running")

func Handle(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	cfg := contextInternal.ConfigFromContext(ctx)

	sv := acdsc.NewSupervisor(cfg, contextInternal.ConfigPathFromContext(ctx))

	status, err := sv.Status(ctx)
	if err != nil {
		return errors.WithMessage(err, "failed to get server status")
	}

	switch status.State {
	case daemon.StateRunning:
		if status.StartedAt.IsZero() {
			console.Success("Server is running with pid %d", status.PID)
		} else {
			console.Success("Server is running with pid %d, started %s", status.PID, humanize.Time(status.StartedAt))
		}
	case daemon.StateStale:
		console.Warning("Server is not running, %s", status)
	default:
		console.Println("Server is not running")
	}

	if cliCtx.Bool("check") && status.State != daemon.StateRunning {
		return ErrNotRunning
	}

	return nil
}
