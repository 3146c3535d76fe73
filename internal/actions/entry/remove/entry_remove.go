package remove

import (
	"strings"

	"github.com/hmehta/acdsc/internal/pkg/acdsc"
	"github.com/hmehta/acdsc/internal/pkg/console"
	"github.com/hmehta/acdsc/pkg/acserver"
	"github.com/hmehta/acdsc/pkg/settings"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	contextInternal "github.com/hmehta/acdsc/internal/context"
)

var ErrEntryRequired = errors.New("entry name is required, e.g. CAR_3")

func Handle(cliCtx *cli.Context) error {
	cfg := contextInternal.ConfigFromContext(cliCtx.Context)

	name := strings.ToUpper(cliCtx.Args().First())
	if name == "" {
		return ErrEntryRequired
	}

	entryList, err := cfg.LoadEntryList()
	if err != nil {
		return err
	}

	if err = acserver.RemoveNumbered(entryList, settings.PrefixEntry, name); err != nil {
		return errors.WithMessage(err, "failed to remove entry")
	}

	if err = acdsc.SaveDocument(cfg.EntryListPath(), entryList); err != nil {
		return err
	}

	console.Success("Entry %s removed, following entries renumbered", name)

	return nil
}
