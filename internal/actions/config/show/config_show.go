package show

import (
	"github.com/hmehta/acdsc/internal/pkg/console"
	"github.com/hmehta/acdsc/pkg/ini"
	"github.com/urfave/cli/v2"

	contextInternal "github.com/hmehta/acdsc/internal/context"
)

func Handle(cliCtx *cli.Context) error {
	cfg := contextInternal.ConfigFromContext(cliCtx.Context)

	var (
		f   *ini.File
		err error
	)
	if cliCtx.Bool("entry-list") {
		f, err = cfg.LoadEntryList()
	} else {
		f, err = cfg.LoadServerConfig()
	}
	if err != nil {
		return err
	}

	console.Printf("%s", f)

	return nil
}
