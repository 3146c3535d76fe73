package add

import (
	"github.com/hmehta/acdsc/internal/pkg/acdsc"
	"github.com/hmehta/acdsc/internal/pkg/console"
	"github.com/hmehta/acdsc/pkg/acserver"
	"github.com/hmehta/acdsc/pkg/settings"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	contextInternal "github.com/hmehta/acdsc/internal/context"
)

func Handle(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	cfg := contextInternal.ConfigFromContext(ctx)
	reg := contextInternal.RegistryFromContext(ctx)

	overrides, err := acdsc.ParseAssignments(cliCtx.StringSlice("set"))
	if err != nil {
		return err
	}

	f, err := cfg.LoadServerConfig()
	if err != nil {
		return err
	}

	name, err := acserver.AddNumbered(f, reg, settings.PrefixWeather, overrides)
	if err != nil {
		return errors.WithMessage(err, "failed to add weather")
	}

	if err = acdsc.SaveDocument(cfg.ServerConfigPath(), f); err != nil {
		return err
	}

	console.Success("Weather %s added", name)

	return nil
}
