package acserver

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/hmehta/acdsc/pkg/ini"
	"github.com/hmehta/acdsc/pkg/settings"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
)

const (
	ConfigDir        = "cfg"
	ServerConfigFile = "server_cfg.ini"
	EntryListFile    = "entry_list.ini"
)

// DefaultSessions are the session blocks of a newly generated server config.
var DefaultSessions = []string{"PRACTICE", "QUALIFY", "RACE"}

var ErrNoCars = errors.New("no cars configured")

func ServerConfigPath(serverPath string) string {
	return filepath.Join(serverPath, ConfigDir, ServerConfigFile)
}

func EntryListPath(serverPath string) string {
	return filepath.Join(serverPath, ConfigDir, EntryListFile)
}

// DefaultServerConfig builds server_cfg.ini from the schema defaults: the
// SERVER block, the default sessions and one weather block.
func DefaultServerConfig(reg *settings.Registry) (*ini.File, error) {
	f := ini.New()

	if err := addSection(f, reg, settings.SectionServer, reg.Server(), nil); err != nil {
		return nil, err
	}

	for _, name := range DefaultSessions {
		if _, err := AddSession(f, reg, name, nil); err != nil {
			return nil, err
		}
	}

	if _, err := AddNumbered(f, reg, settings.PrefixWeather, nil); err != nil {
		return nil, err
	}

	return f, nil
}

// DefaultEntryList builds entry_list.ini with the given number of slots,
// assigning the car models round robin.
func DefaultEntryList(reg *settings.Registry, cars []string, slots int) (*ini.File, error) {
	if len(cars) == 0 {
		return nil, ErrNoCars
	}

	f := ini.New()

	for i := 0; i < slots; i++ {
		_, err := AddNumbered(f, reg, settings.PrefixEntry, map[string]string{
			"MODEL": cars[i%len(cars)],
		})
		if err != nil {
			return nil, err
		}
	}

	return f, nil
}

// Cars returns the car models allowed by the SERVER block.
func Cars(f *ini.File) []string {
	value, _ := f.Get(settings.SectionServer, "CARS")

	return settings.SplitList(value)
}

// AddSession appends the session block of the given type with its default
// values and the overrides applied.
func AddSession(f *ini.File, reg *settings.Registry, sessionType string, overrides map[string]string) (string, error) {
	name := strings.ToUpper(sessionType)

	descriptors, ok := reg.Session(name)
	if !ok {
		return "", settings.NewUnknownSectionError(name)
	}

	if err := addSection(f, reg, name, descriptors, overrides); err != nil {
		return "", err
	}

	return name, nil
}

// AddNumbered appends the next member of a numbered family (WEATHER, CAR).
// The first member is numbered 0.
func AddNumbered(f *ini.File, reg *settings.Registry, prefix string, overrides map[string]string) (string, error) {
	existing, err := f.SectionsWithPrefix(prefix)
	if err != nil {
		return "", err
	}

	name := prefix + "_0"
	if len(existing) > 0 {
		name, err = ini.NextSectionName(prefix, existing)
		if err != nil {
			return "", err
		}
	}

	_, descriptors, err := reg.Resolve(name)
	if err != nil {
		return "", err
	}

	if err = addSection(f, reg, name, descriptors, overrides); err != nil {
		return "", err
	}

	return name, nil
}

// RemoveNumbered removes a member of a numbered family and renumbers the
// members after it, so the family stays contiguous.
func RemoveNumbered(f *ini.File, prefix, name string) error {
	members, err := f.SectionsWithPrefix(prefix)
	if err != nil {
		return err
	}

	i := slices.Index(members, name)
	if i < 0 {
		return ini.NewNoSectionError(name)
	}

	f.RemoveSection(name)

	for j := i + 1; j < len(members); j++ {
		if err = f.RenameSection(members[j], members[j-1]); err != nil {
			return err
		}
	}

	return nil
}

func addSection(
	f *ini.File,
	reg *settings.Registry,
	name string,
	descriptors []settings.Descriptor,
	overrides map[string]string,
) error {
	s, err := f.AddSection(name)
	if err != nil {
		return err
	}

	for _, d := range descriptors {
		s.Set(d.Key, d.Default)
	}

	keys := lo.Keys(overrides)
	slices.Sort(keys)

	for _, key := range keys {
		if err = Apply(f, reg, name, key, overrides[key]); err != nil {
			f.RemoveSection(name)

			return err
		}
	}

	return nil
}

// Apply validates value against the schema of the section's family and
// stores it. userKey may be given in CLI form (max-clients) or INI form
// (MAX_CLIENTS).
func Apply(f *ini.File, reg *settings.Registry, section, userKey string, value any) error {
	key, v := ini.ToINI(userKey, value)

	d, err := reg.Lookup(section, key)
	if err != nil {
		return err
	}

	if v != nil {
		if err = d.Validate(*v); err != nil {
			return settings.NewValidationError(section, key, *v, err)
		}
	}

	return f.Put(section, key, v)
}

// Validate checks every value of every section the schema knows. Sections
// and keys unknown to the schema are left alone. All failures are returned
// together.
func Validate(f *ini.File, reg *settings.Registry) error {
	var result error

	for _, name := range f.SectionNames() {
		_, descriptors, err := reg.Resolve(name)
		if err != nil {
			continue
		}

		s := f.Section(name)
		for _, d := range descriptors {
			if !s.HasValue(d.Key) {
				continue
			}

			value, _ := s.Get(d.Key)
			if err = d.Validate(value); err != nil {
				result = multierr.Append(result, settings.NewValidationError(name, d.Key, value, err))
			}
		}
	}

	return result
}

// Errors splits an error returned by Validate or CheckContent.
func Errors(err error) []error {
	return multierr.Errors(err)
}
