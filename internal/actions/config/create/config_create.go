package create

import (
	"strconv"

	"github.com/hmehta/acdsc/internal/pkg/acdsc"
	"github.com/hmehta/acdsc/internal/pkg/console"
	"github.com/hmehta/acdsc/pkg/acserver"
	"github.com/hmehta/acdsc/pkg/settings"
	"github.com/hmehta/acdsc/pkg/strings"
	"github.com/hmehta/acdsc/pkg/utils"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	contextInternal "github.com/hmehta/acdsc/internal/context"
)

const passwordLength = 12

var (
	ErrConfigExists = errors.New("server configuration already exists, use --force to overwrite")

	passwordKeys = []string{"PASSWORD", "ADMIN_PASSWORD"}
)

// Handle writes server_cfg.ini and entry_list.ini with the default values
// and, when it does not exist yet, the acdsc configuration file.
func Handle(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	cfg := contextInternal.ConfigFromContext(ctx)
	reg := contextInternal.RegistryFromContext(ctx)

	if utils.IsFileExists(cfg.ServerConfigPath()) && !cliCtx.Bool("force") {
		return errors.WithMessage(ErrConfigExists, cfg.ServerConfigPath())
	}

	serverCfg, err := acserver.DefaultServerConfig(reg)
	if err != nil {
		return errors.WithMessage(err, "failed to build server configuration")
	}

	if cliCtx.Bool("generate-passwords") {
		for _, key := range passwordKeys {
			pass, err := strings.GeneratePassword(passwordLength)
			if err != nil {
				return err
			}
			if err = acserver.Apply(serverCfg, reg, settings.SectionServer, key, pass); err != nil {
				return err
			}

			console.Printf("%s: %s\n", key, pass)
		}
	}

	slots := cliCtx.Int("slots")
	if slots <= 0 {
		maxClients, _ := serverCfg.Get(settings.SectionServer, "MAX_CLIENTS")
		slots, err = strconv.Atoi(maxClients)
		if err != nil {
			return errors.WithMessage(err, "invalid MAX_CLIENTS")
		}
	}

	entryList, err := acserver.DefaultEntryList(reg, acserver.Cars(serverCfg), slots)
	if err != nil {
		return errors.WithMessage(err, "failed to build entry list")
	}

	if err = acdsc.SaveDocument(cfg.ServerConfigPath(), serverCfg); err != nil {
		return err
	}
	console.Success("Server configuration written to %s", cfg.ServerConfigPath())

	if err = acdsc.SaveDocument(cfg.EntryListPath(), entryList); err != nil {
		return err
	}
	console.Success("Entry list with %d slots written to %s", slots, cfg.EntryListPath())

	path := contextInternal.ConfigPathFromContext(ctx)
	if path != "" && !utils.IsFileExists(path) {
		if err = acdsc.SaveConfig(path, cfg); err != nil {
			return err
		}
		console.Success("acdsc configuration written to %s", path)
	}

	return nil
}
