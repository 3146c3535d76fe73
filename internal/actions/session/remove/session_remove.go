package remove

import (
	"strings"

	"github.com/hmehta/acdsc/internal/pkg/acdsc"
	"github.com/hmehta/acdsc/internal/pkg/console"
	"github.com/hmehta/acdsc/pkg/ini"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	contextInternal "github.com/hmehta/acdsc/internal/context"
)

var ErrNotASession = errors.New("not a session")

func Handle(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	cfg := contextInternal.ConfigFromContext(ctx)
	reg := contextInternal.RegistryFromContext(ctx)

	name := strings.ToUpper(cliCtx.Args().First())
	if !lo.Contains(reg.SessionNames(), name) {
		return errors.WithMessagef(ErrNotASession, "%q, expected one of %v", name, reg.SessionNames())
	}

	f, err := cfg.LoadServerConfig()
	if err != nil {
		return err
	}

	if !f.RemoveSection(name) {
		return ini.NewNoSectionError(name)
	}

	if err = acdsc.SaveDocument(cfg.ServerConfigPath(), f); err != nil {
		return err
	}

	console.Success("Session %s removed", name)

	return nil
}
