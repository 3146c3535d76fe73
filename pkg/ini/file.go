// Package ini implements the ordered, case-sensitive INI store used for the
// Assetto Corsa server configuration files.
//
// Unlike most INI parsers, key names keep their case and both sections and
// keys keep the order in which they were read or added, so a document can be
// loaded, edited and written back without reshuffling it.
package ini

import (
	"bufio"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

const maxLineSize = 1024 * 1024

type File struct {
	sections []*Section
	index    map[string]*Section
}

func New() *File {
	return &File{
		index: make(map[string]*Section),
	}
}

func LoadFile(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to open %s", path)
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			log.Println(err)
		}
	}(file)

	f, err := Load(file)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to parse %s", path)
	}

	return f, nil
}

//nolint:funlen,gocognit
func Load(r io.Reader) (*File, error) {
	f := New()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	var (
		cur          *Section
		curKey       string
		curIndent    int
		inValue      bool
		pendingBlank int
		lineNo       int
	)

	for scanner.Scan() {
		line := scanner.Text()
		lineNo++
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if inValue {
				pendingBlank++
			}

			continue
		}

		if isComment(trimmed) {
			continue
		}

		// only lines indented deeper than their option continue its value
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if inValue && indent > curIndent {
			v, _ := cur.Get(curKey)
			b := strings.Builder{}
			b.Grow(len(v) + pendingBlank + len(trimmed) + 1)
			b.WriteString(v)
			for ; pendingBlank > 0; pendingBlank-- {
				b.WriteByte('\n')
			}
			b.WriteByte('\n')
			b.WriteString(trimmed)
			cur.Set(curKey, b.String())

			continue
		}

		pendingBlank = 0

		if trimmed[0] == '[' {
			if len(trimmed) < 3 || trimmed[len(trimmed)-1] != ']' {
				return nil, &ParseError{Line: lineNo, Text: line, Reason: "malformed section header"}
			}

			name := trimmed[1 : len(trimmed)-1]
			sec, err := f.AddSection(name)
			if err != nil {
				return nil, errors.WithMessagef(err, "line %d", lineNo)
			}

			cur = sec
			curKey = ""
			inValue = false

			continue
		}

		if cur == nil {
			return nil, &ParseError{Line: lineNo, Text: line, Reason: "key outside of any section"}
		}

		key, value, hasValue := splitOption(trimmed)
		if key == "" {
			return nil, &ParseError{Line: lineNo, Text: line, Reason: "empty key"}
		}
		if cur.Has(key) {
			return nil, errors.WithMessagef(
				&DuplicateKeyError{Section: cur.Name(), Key: key},
				"line %d", lineNo,
			)
		}

		if hasValue {
			cur.Set(key, value)
		} else {
			cur.SetAbsent(key)
		}

		curKey = key
		curIndent = indent
		inValue = hasValue
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.WithMessage(err, "failed to read ini document")
	}

	return f, nil
}

func isComment(line string) bool {
	return line[0] == '#' || line[0] == ';'
}

func splitOption(line string) (string, string, bool) {
	i := strings.IndexAny(line, "=:")
	if i < 0 {
		return strings.TrimSpace(line), "", false
	}

	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), true
}

func (f *File) SectionNames() []string {
	names := make([]string, 0, len(f.sections))
	for _, s := range f.sections {
		names = append(names, s.name)
	}

	return names
}

// Section returns nil when there is no section with the given name.
func (f *File) Section(name string) *Section {
	return f.index[name]
}

func (f *File) HasSection(name string) bool {
	_, ok := f.index[name]

	return ok
}

func (f *File) AddSection(name string) (*Section, error) {
	if f.HasSection(name) {
		return nil, NewDuplicateSectionError(name)
	}

	s := newSection(name)
	f.sections = append(f.sections, s)
	f.index[name] = s

	return s, nil
}

func (f *File) RemoveSection(name string) bool {
	if !f.HasSection(name) {
		return false
	}

	delete(f.index, name)
	f.sections = slices.DeleteFunc(f.sections, func(s *Section) bool {
		return s.name == name
	})

	return true
}

// RenameSection renames a section in place, keeping its position.
func (f *File) RenameSection(from, to string) error {
	s := f.Section(from)
	if s == nil {
		return NewNoSectionError(from)
	}
	if from == to {
		return nil
	}
	if f.HasSection(to) {
		return NewDuplicateSectionError(to)
	}

	delete(f.index, from)
	s.name = to
	f.index[to] = s

	return nil
}

func (f *File) Get(section, key string) (string, bool) {
	s := f.Section(section)
	if s == nil {
		return "", false
	}

	return s.Get(key)
}

func (f *File) Set(section, key, value string) error {
	return f.Put(section, key, &value)
}

func (f *File) Put(section, key string, value *string) error {
	s := f.Section(section)
	if s == nil {
		return NewNoSectionError(section)
	}

	s.Put(key, value)

	return nil
}

func (f *File) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)

	var total int64
	write := func(parts ...string) error {
		for _, p := range parts {
			n, err := bw.WriteString(p)
			total += int64(n)
			if err != nil {
				return err
			}
		}

		return nil
	}

	for _, s := range f.sections {
		if err := write("[", s.name, "]\n"); err != nil {
			return total, err
		}

		for _, key := range s.keys {
			if key == nameKey {
				continue
			}

			v := s.values[key]
			if v == nil {
				if err := write(key, "\n"); err != nil {
					return total, err
				}

				continue
			}

			if err := write(key, "=", strings.ReplaceAll(*v, "\n", "\n\t"), "\n"); err != nil {
				return total, err
			}
		}

		if err := write("\n"); err != nil {
			return total, err
		}
	}

	return total, bw.Flush()
}

func (f *File) String() string {
	sb := strings.Builder{}
	_, _ = f.WriteTo(&sb)

	return sb.String()
}

// SaveFile writes the document next to path and renames it into place, so a
// reader never observes a partially written file.
func (f *File) SaveFile(path string, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WithMessagef(err, "failed to create directory %s", dir)
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.WithMessage(err, "failed to create temp file")
	}
	tmpName := tmpFile.Name()

	cleanup := func() {
		_ = tmpFile.Close()
		if err := os.Remove(tmpName); err != nil && !os.IsNotExist(err) {
			log.Println(err)
		}
	}

	if _, err = f.WriteTo(tmpFile); err != nil {
		cleanup()

		return errors.WithMessage(err, "failed to write ini document")
	}
	if err = tmpFile.Sync(); err != nil {
		cleanup()

		return errors.WithMessage(err, "failed to sync temp file")
	}
	if err = tmpFile.Close(); err != nil {
		cleanup()

		return errors.WithMessage(err, "failed to close temp file")
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		cleanup()

		return errors.WithMessage(err, "failed to change file mode")
	}

	if err = os.Rename(tmpName, path); err != nil {
		cleanup()

		return errors.WithMessagef(err, "failed to move ini document to %s", path)
	}

	return nil
}
