package daemon

import (
	"log"

	"github.com/hmehta/acdsc/internal/pkg/acdsc"
	"github.com/urfave/cli/v2"

	contextInternal "github.com/hmehta/acdsc/internal/context"
)

// Handle is the detached side of "server start". It runs in the
// foreground until the server exits or a termination signal arrives.
func Handle(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	cfg := contextInternal.ConfigFromContext(ctx)

	sv := acdsc.NewSupervisor(cfg, contextInternal.ConfigPathFromContext(ctx))

	log.Printf("Running server daemon, pid file %s\n", sv.PIDFile())

	return sv.Run(ctx)
}
