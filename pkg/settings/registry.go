package settings

import (
	_ "embed"
	"slices"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

//go:embed settings.yaml
var defaultSchema []byte

const (
	SectionServer = "SERVER"
	PrefixWeather = "WEATHER"
	PrefixEntry   = "CAR"
)

type Family string

const (
	FamilyServer  Family = "server"
	FamilySession Family = "session"
	FamilyWeather Family = "weather"
	FamilyEntry   Family = "entry"
)

// Families lists every section family in the order the sections appear in
// the generated documents.
var Families = []Family{FamilyServer, FamilySession, FamilyWeather, FamilyEntry}

type Descriptor struct {
	Key         string
	Default     string
	Description string
	Validator   Validator
}

func (d Descriptor) Validate(value string) error {
	if d.Validator == nil {
		return nil
	}

	return d.Validator.Validate(value)
}

type Session struct {
	Name     string
	Settings []Descriptor
}

// Registry is the read-only settings schema. It is built once and never
// mutated, all accessors return copies.
type Registry struct {
	server   []Descriptor
	sessions []Session
	weather  []Descriptor
	entry    []Descriptor
}

type descriptorSpec struct {
	Key         string        `yaml:"key"`
	Default     string        `yaml:"default"`
	Description string        `yaml:"description"`
	Validator   validatorSpec `yaml:"validator"`
}

type sessionSpec struct {
	Name     string           `yaml:"name"`
	Settings []descriptorSpec `yaml:"settings"`
}

type schemaSpec struct {
	Server   []descriptorSpec `yaml:"server"`
	Sessions []sessionSpec    `yaml:"sessions"`
	Weather  []descriptorSpec `yaml:"weather"`
	Entry    []descriptorSpec `yaml:"entry"`
}

var (
	defaultRegistry    *Registry
	defaultRegistryErr error
	defaultOnce        sync.Once
)

// Default returns the registry built from the schema embedded in the binary.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultRegistryErr = Parse(defaultSchema)
	})

	return defaultRegistry, defaultRegistryErr
}

func Parse(data []byte) (*Registry, error) {
	var spec schemaSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.WithMessage(err, "failed to unmarshal settings schema")
	}

	r := &Registry{}

	var err error
	if r.server, err = buildDescriptors(spec.Server); err != nil {
		return nil, errors.WithMessage(err, "server settings")
	}
	if r.weather, err = buildDescriptors(spec.Weather); err != nil {
		return nil, errors.WithMessage(err, "weather settings")
	}
	if r.entry, err = buildDescriptors(spec.Entry); err != nil {
		return nil, errors.WithMessage(err, "entry settings")
	}

	for _, s := range spec.Sessions {
		name := strings.ToUpper(s.Name)
		if name == "" {
			return nil, errors.New("session without name")
		}
		if _, ok := r.session(name); ok {
			return nil, errors.Errorf("session %s defined twice", name)
		}

		descriptors, err := buildDescriptors(s.Settings)
		if err != nil {
			return nil, errors.WithMessagef(err, "%s session settings", name)
		}

		r.sessions = append(r.sessions, Session{Name: name, Settings: descriptors})
	}

	return r, nil
}

func buildDescriptors(specs []descriptorSpec) ([]Descriptor, error) {
	result := make([]Descriptor, 0, len(specs))
	seen := make(map[string]struct{}, len(specs))

	for _, s := range specs {
		if s.Key == "" {
			return nil, errors.New("setting without key")
		}
		if _, ok := seen[s.Key]; ok {
			return nil, errors.Errorf("setting %s defined twice", s.Key)
		}
		seen[s.Key] = struct{}{}

		v, err := newValidator(s.Validator)
		if err != nil {
			return nil, errors.WithMessagef(err, "setting %s", s.Key)
		}

		result = append(result, Descriptor{
			Key:         s.Key,
			Default:     s.Default,
			Description: s.Description,
			Validator:   v,
		})
	}

	return result, nil
}

func (r *Registry) Server() []Descriptor {
	return slices.Clone(r.server)
}

func (r *Registry) Weather() []Descriptor {
	return slices.Clone(r.weather)
}

func (r *Registry) Entry() []Descriptor {
	return slices.Clone(r.entry)
}

func (r *Registry) SessionNames() []string {
	return lo.Map(r.sessions, func(s Session, _ int) string {
		return s.Name
	})
}

func (r *Registry) Session(name string) ([]Descriptor, bool) {
	s, ok := r.session(name)
	if !ok {
		return nil, false
	}

	return slices.Clone(s.Settings), true
}

func (r *Registry) session(name string) (Session, bool) {
	return lo.Find(r.sessions, func(s Session) bool {
		return s.Name == name
	})
}

// Resolve maps a section name to its family and schema. Session sections
// are named after the session type; weather and entry sections carry a
// numeric suffix.
func (r *Registry) Resolve(section string) (Family, []Descriptor, error) {
	switch {
	case section == SectionServer:
		return FamilyServer, r.Server(), nil
	case isNumbered(section, PrefixWeather):
		return FamilyWeather, r.Weather(), nil
	case isNumbered(section, PrefixEntry):
		return FamilyEntry, r.Entry(), nil
	}

	if descriptors, ok := r.Session(section); ok {
		return FamilySession, descriptors, nil
	}

	return "", nil, NewUnknownSectionError(section)
}

func (r *Registry) Lookup(section, key string) (Descriptor, error) {
	_, descriptors, err := r.Resolve(section)
	if err != nil {
		return Descriptor{}, err
	}

	d, ok := lo.Find(descriptors, func(d Descriptor) bool {
		return d.Key == key
	})
	if !ok {
		return Descriptor{}, NewUnknownKeyError(section, key)
	}

	return d, nil
}

// Family returns the descriptors of a whole family; sessions are
// concatenated in schema order.
func (r *Registry) Family(f Family) ([]Descriptor, error) {
	switch f {
	case FamilyServer:
		return r.Server(), nil
	case FamilyWeather:
		return r.Weather(), nil
	case FamilyEntry:
		return r.Entry(), nil
	case FamilySession:
		return lo.FlatMap(r.sessions, func(s Session, _ int) []Descriptor {
			return slices.Clone(s.Settings)
		}), nil
	}

	return nil, errors.Errorf("unknown settings family %q", f)
}

func isNumbered(section, prefix string) bool {
	rest, ok := strings.CutPrefix(section, prefix+"_")
	if !ok || rest == "" {
		return false
	}

	return strings.Trim(rest, "0123456789") == ""
}
