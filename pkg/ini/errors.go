package ini

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNoSections     = errors.New("no sections to derive the next name from")
	ErrSuffixOverflow = errors.New("section number out of range")
)

type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

type DuplicateSectionError struct {
	Section string
}

func NewDuplicateSectionError(section string) *DuplicateSectionError {
	return &DuplicateSectionError{Section: section}
}

func (e *DuplicateSectionError) Error() string {
	return fmt.Sprintf("section %s already exists", e.Section)
}

type DuplicateKeyError struct {
	Section string
	Key     string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("key %s already exists in section %s", e.Key, e.Section)
}

type NoSectionError struct {
	Section string
}

func NewNoSectionError(section string) *NoSectionError {
	return &NoSectionError{Section: section}
}

func (e *NoSectionError) Error() string {
	return fmt.Sprintf("section %s not found", e.Section)
}

// InvalidSuffixError is returned when a section that belongs to a numbered
// family does not end with an integer.
type InvalidSuffixError struct {
	Section string
	Err     error
}

func (e *InvalidSuffixError) Error() string {
	return fmt.Sprintf("section %s has no numeric suffix: %s", e.Section, e.Err)
}

func (e *InvalidSuffixError) Unwrap() error {
	return e.Err
}
