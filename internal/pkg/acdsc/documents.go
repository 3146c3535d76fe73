package acdsc

import (
	"io/fs"
	"strings"
	"time"

	"github.com/hmehta/acdsc/pkg/acserver"
	"github.com/hmehta/acdsc/pkg/ini"
	"github.com/hmehta/acdsc/pkg/settings"
	"github.com/hmehta/acdsc/pkg/utils"
	"github.com/pkg/errors"
)

var ErrNoServerConfig = errors.New("server configuration not found, run 'acdsc config init' first")

type InvalidAssignmentError string

func (e InvalidAssignmentError) Error() string {
	return "invalid assignment, expected key=value: " + string(e)
}

func (c Config) ServerConfigPath() string {
	return acserver.ServerConfigPath(c.ServerPath)
}

func (c Config) EntryListPath() string {
	return acserver.EntryListPath(c.ServerPath)
}

// DocumentPath returns the file holding the sections of the given family.
func (c Config) DocumentPath(family settings.Family) string {
	if family == settings.FamilyEntry {
		return c.EntryListPath()
	}

	return c.ServerConfigPath()
}

// LoadDocumentFor loads the file holding section and returns it with its
// path.
func (c Config) LoadDocumentFor(reg *settings.Registry, section string) (*ini.File, string, error) {
	family, _, err := reg.Resolve(section)
	if err != nil {
		return nil, "", err
	}

	path := c.DocumentPath(family)

	f, err := loadDocument(path)
	if err != nil {
		return nil, "", err
	}

	return f, path, nil
}

func (c Config) LoadServerConfig() (*ini.File, error) {
	return loadDocument(c.ServerConfigPath())
}

func (c Config) LoadEntryList() (*ini.File, error) {
	return loadDocument(c.EntryListPath())
}

func loadDocument(path string) (*ini.File, error) {
	f, err := ini.LoadFile(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil, errors.WithMessage(ErrNoServerConfig, path)
	}
	if err != nil {
		return nil, err
	}

	return f, nil
}

// SaveDocument backs up the current file at path and replaces it with f.
func SaveDocument(path string, f *ini.File) error {
	if _, err := utils.Backup(path, time.Now()); err != nil {
		return errors.WithMessage(err, "failed to back up")
	}

	if err := f.SaveFile(path, 0644); err != nil {
		return err
	}

	return nil
}

// ParseAssignments parses repeated key=value command line values.
func ParseAssignments(values []string) (map[string]string, error) {
	result := make(map[string]string, len(values))

	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, InvalidAssignmentError(v)
		}

		result[key] = value
	}

	return result, nil
}
