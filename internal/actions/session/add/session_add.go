package add

import (
	"github.com/hmehta/acdsc/internal/pkg/acdsc"
	"github.com/hmehta/acdsc/internal/pkg/console"
	"github.com/hmehta/acdsc/pkg/acserver"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	contextInternal "github.com/hmehta/acdsc/internal/context"
)

var ErrSessionTypeRequired = errors.New("session type is required")

func Handle(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	cfg := contextInternal.ConfigFromContext(ctx)
	reg := contextInternal.RegistryFromContext(ctx)

	sessionType := cliCtx.Args().First()
	if sessionType == "" {
		return errors.WithMessagef(ErrSessionTypeRequired, "one of %v", reg.SessionNames())
	}

	overrides, err := acdsc.ParseAssignments(cliCtx.StringSlice("set"))
	if err != nil {
		return err
	}

	f, err := cfg.LoadServerConfig()
	if err != nil {
		return err
	}

	name, err := acserver.AddSession(f, reg, sessionType, overrides)
	if err != nil {
		return errors.WithMessage(err, "failed to add session")
	}

	if err = acdsc.SaveDocument(cfg.ServerConfigPath(), f); err != nil {
		return err
	}

	console.Success("Session %s added", name)

	return nil
}
