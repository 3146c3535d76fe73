package describe

import (
	"text/tabwriter"

	"github.com/hmehta/acdsc/internal/pkg/console"
	"github.com/hmehta/acdsc/pkg/ini"
	"github.com/hmehta/acdsc/pkg/settings"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	contextInternal "github.com/hmehta/acdsc/internal/context"
)

func Handle(cliCtx *cli.Context) error {
	reg := contextInternal.RegistryFromContext(cliCtx.Context)

	families := settings.Families
	if f := cliCtx.String("family"); f != "" {
		if !lo.Contains(settings.Families, settings.Family(f)) {
			return errors.Errorf("unknown family %q, expected one of %v", f, settings.Families)
		}
		families = []settings.Family{settings.Family(f)}
	}

	w := tabwriter.NewWriter(console.Output, 0, 4, 2, ' ', 0) //nolint:mnd

	for _, family := range families {
		if family == settings.FamilySession {
			for _, name := range reg.SessionNames() {
				descriptors, _ := reg.Session(name)
				describe(w, string(family)+" "+name, descriptors)
			}

			continue
		}

		descriptors, err := reg.Family(family)
		if err != nil {
			return err
		}
		describe(w, string(family), descriptors)
	}

	return w.Flush()
}

func describe(w *tabwriter.Writer, title string, descriptors []settings.Descriptor) {
	console.Println()
	console.Println("[" + title + "]")

	for _, d := range descriptors {
		_, _ = w.Write([]byte(ini.ConvertINIKey(d.Key) + "\t" + d.Default + "\t" + d.Validator.String() + "\t" + d.Description + "\n"))
	}

	_ = w.Flush()
}
