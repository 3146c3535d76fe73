package validate

import (
	"io/fs"

	"github.com/hmehta/acdsc/internal/pkg/console"
	"github.com/hmehta/acdsc/pkg/acserver"
	"github.com/hmehta/acdsc/pkg/ini"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	contextInternal "github.com/hmehta/acdsc/internal/context"
)

var ErrInvalidConfig = errors.New("server configuration is invalid")

func Handle(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	cfg := contextInternal.ConfigFromContext(ctx)
	reg := contextInternal.RegistryFromContext(ctx)

	serverCfg, err := cfg.LoadServerConfig()
	if err != nil {
		return err
	}

	entryList, err := ini.LoadFile(cfg.EntryListPath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	result := acserver.Validate(serverCfg, reg)
	if entryList != nil {
		result = multierr.Append(result, acserver.Validate(entryList, reg))
	}
	if !cliCtx.Bool("skip-content") {
		result = multierr.Append(result, acserver.CheckContent(serverCfg, entryList, cfg.ServerPath))
	}

	errs := acserver.Errors(result)
	if len(errs) == 0 {
		console.Success("Configuration is valid")

		return nil
	}

	for _, e := range errs {
		console.Error("%s", e)
	}

	return errors.WithMessagef(ErrInvalidConfig, "%d problem(s)", len(errs))
}
