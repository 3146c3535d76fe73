package settings

import "fmt"

type UnknownSectionError struct {
	Section string
}

func NewUnknownSectionError(section string) *UnknownSectionError {
	return &UnknownSectionError{Section: section}
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown section %s", e.Section)
}

type UnknownKeyError struct {
	Section string
	Key     string
}

func NewUnknownKeyError(section, key string) *UnknownKeyError {
	return &UnknownKeyError{Section: section, Key: key}
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown setting %s in section %s", e.Key, e.Section)
}

type ValidationError struct {
	Section string
	Key     string
	Value   string
	Err     error
}

func NewValidationError(section, key, value string, err error) *ValidationError {
	return &ValidationError{
		Section: section,
		Key:     key,
		Value:   value,
		Err:     err,
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s.%s: %s", e.Section, e.Key, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
