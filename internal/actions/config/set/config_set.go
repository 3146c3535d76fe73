package set

import (
	"github.com/hmehta/acdsc/internal/pkg/acdsc"
	"github.com/hmehta/acdsc/internal/pkg/console"
	"github.com/hmehta/acdsc/pkg/acserver"
	"github.com/hmehta/acdsc/pkg/ini"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	contextInternal "github.com/hmehta/acdsc/internal/context"
)

var ErrArgsRequired = errors.New("setting name and value are required")

func Handle(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	cfg := contextInternal.ConfigFromContext(ctx)
	reg := contextInternal.RegistryFromContext(ctx)

	if cliCtx.NArg() != 2 { //nolint:mnd
		return ErrArgsRequired
	}

	userKey := cliCtx.Args().Get(0)
	section := cliCtx.String("section")

	f, path, err := cfg.LoadDocumentFor(reg, section)
	if err != nil {
		return err
	}

	var value any = cliCtx.Args().Get(1)
	if cliCtx.Bool("unset") {
		value = nil
	}

	if err = acserver.Apply(f, reg, section, userKey, value); err != nil {
		return err
	}

	if err = acdsc.SaveDocument(path, f); err != nil {
		return err
	}

	console.Success("%s.%s updated", section, ini.ConvertKey(userKey))

	return nil
}
