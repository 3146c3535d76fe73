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

	serverCfg, err := cfg.LoadServerConfig()
	if err != nil {
		return err
	}

	if _, ok := overrides["model"]; !ok {
		if _, ok = overrides["MODEL"]; !ok {
			if cars := acserver.Cars(serverCfg); len(cars) > 0 {
				overrides["MODEL"] = cars[0]
			}
		}
	}

	entryList, err := cfg.LoadEntryList()
	if err != nil {
		return err
	}

	name, err := acserver.AddNumbered(entryList, reg, settings.PrefixEntry, overrides)
	if err != nil {
		return errors.WithMessage(err, "failed to add entry")
	}

	if err = acdsc.SaveDocument(cfg.EntryListPath(), entryList); err != nil {
		return err
	}

	console.Success("Entry %s added", name)

	return nil
}
