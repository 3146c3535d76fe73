package acserver

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/hmehta/acdsc/pkg/ini"
	"github.com/hmehta/acdsc/pkg/settings"
	"github.com/hmehta/acdsc/pkg/utils"
	"github.com/samber/lo"
	"go.uber.org/multierr"
)

const contentDir = "content"

type MissingContentError struct {
	Kind string
	Name string
	Path string
}

func (e *MissingContentError) Error() string {
	return fmt.Sprintf("%s %s not found in %s", e.Kind, e.Name, e.Path)
}

type EntryListError struct {
	Section string
	Reason  string
}

func (e *EntryListError) Error() string {
	return fmt.Sprintf("entry list %s: %s", e.Section, e.Reason)
}

// CheckContent cross-checks the configuration against the content installed
// under serverPath and against the entry list. entryList may be nil.
func CheckContent(serverCfg, entryList *ini.File, serverPath string) error {
	var result error

	cars := Cars(serverCfg)
	for _, car := range cars {
		result = multierr.Append(result, checkDir(serverPath, "car", car, contentDir, "cars", car))
	}

	if track, ok := serverCfg.Get(settings.SectionServer, "TRACK"); ok && track != "" {
		result = multierr.Append(result, checkDir(serverPath, "track", track, contentDir, "tracks", track))

		if layout, _ := serverCfg.Get(settings.SectionServer, "CONFIG_TRACK"); layout != "" {
			result = multierr.Append(result,
				checkDir(serverPath, "track layout", track+"/"+layout, contentDir, "tracks", track, layout))
		}
	}

	if entryList == nil {
		return result
	}

	entries, err := entryList.SectionsWithPrefix(settings.PrefixEntry)
	if err != nil {
		return multierr.Append(result, err)
	}

	for _, name := range entries {
		model, _ := entryList.Get(name, "MODEL")
		if !lo.Contains(cars, model) {
			result = multierr.Append(result, &EntryListError{
				Section: name,
				Reason:  fmt.Sprintf("model %q is not in CARS", model),
			})
		}
	}

	maxClients, _ := serverCfg.Get(settings.SectionServer, "MAX_CLIENTS")
	if n, err := strconv.Atoi(maxClients); err == nil && n > len(entries) {
		result = multierr.Append(result, &EntryListError{
			Section: settings.PrefixEntry,
			Reason:  fmt.Sprintf("MAX_CLIENTS is %d but only %d slots are defined", n, len(entries)),
		})
	}

	return result
}

func checkDir(serverPath, kind, name string, elem ...string) error {
	path := filepath.Join(append([]string{serverPath}, elem...)...)
	if utils.IsDirExists(path) {
		return nil
	}

	return &MissingContentError{Kind: kind, Name: name, Path: filepath.Dir(path)}
}
