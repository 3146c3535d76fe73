package get

import (
	"github.com/hmehta/acdsc/internal/pkg/console"
	"github.com/hmehta/acdsc/pkg/ini"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	contextInternal "github.com/hmehta/acdsc/internal/context"
)

var ErrKeyRequired = errors.New("setting name is required")

type NotSetError struct {
	Section string
	Key     string
}

func (e *NotSetError) Error() string {
	return "setting " + e.Key + " is not set in section " + e.Section
}

func Handle(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	cfg := contextInternal.ConfigFromContext(ctx)
	reg := contextInternal.RegistryFromContext(ctx)

	userKey := cliCtx.Args().First()
	if userKey == "" {
		return ErrKeyRequired
	}

	section := cliCtx.String("section")
	key := ini.ConvertKey(userKey)

	if _, err := reg.Lookup(section, key); err != nil {
		return err
	}

	f, _, err := cfg.LoadDocumentFor(reg, section)
	if err != nil {
		return err
	}

	value, ok := f.Get(section, key)
	if !ok {
		return &NotSetError{Section: section, Key: key}
	}

	console.Println(value)

	return nil
}
