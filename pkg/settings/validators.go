package settings

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const listSeparator = ";"

var (
	contentNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)
	tyreNamePattern    = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

type Validator interface {
	Validate(value string) error
	String() string
}

type validatorSpec struct {
	Kind    string   `yaml:"kind"`
	Min     *int     `yaml:"min"`
	Max     *int     `yaml:"max"`
	Choices []string `yaml:"choices"`
}

//nolint:ireturn,nolintlint
func newValidator(spec validatorSpec) (Validator, error) {
	switch spec.Kind {
	case "", "string":
		return stringValidator{}, nil
	case "int":
		return intRange{}, nil
	case "int_range":
		return intRange{min: spec.Min, max: spec.Max}, nil
	case "choice":
		if len(spec.Choices) == 0 {
			return nil, errors.New("choice validator without choices")
		}

		return choice(spec.Choices), nil
	case "file":
		return fileValidator{}, nil
	case "car", "track":
		return contentName{kind: spec.Kind}, nil
	case "car_skin", "track_subversion":
		return contentName{kind: spec.Kind, optional: true}, nil
	case "car_list":
		return nameList{kind: "car", pattern: contentNamePattern}, nil
	case "tyre_list":
		return nameList{kind: "tyre", pattern: tyreNamePattern}, nil
	case "max_clients":
		one := 1

		return intRange{min: &one}, nil
	}

	return nil, errors.Errorf("unknown validator kind %q", spec.Kind)
}

type stringValidator struct{}

func (stringValidator) Validate(_ string) error {
	return nil
}

func (stringValidator) String() string {
	return "text"
}

type intRange struct {
	min *int
	max *int
}

func (v intRange) Validate(value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return errors.Errorf("%q is not a valid integer", value)
	}

	if v.min != nil && n < *v.min {
		return errors.Errorf("%d is smaller than the minimum valid value %d", n, *v.min)
	}
	if v.max != nil && n > *v.max {
		return errors.Errorf("%d is bigger than the maximum valid value %d", n, *v.max)
	}

	return nil
}

func (v intRange) String() string {
	switch {
	case v.min != nil && v.max != nil:
		return fmt.Sprintf("integer %d..%d", *v.min, *v.max)
	case v.min != nil:
		return fmt.Sprintf("integer >= %d", *v.min)
	case v.max != nil:
		return fmt.Sprintf("integer <= %d", *v.max)
	}

	return "integer"
}

type choice []string

func (v choice) Validate(value string) error {
	if slices.Contains(v, value) {
		return nil
	}

	return errors.Errorf("%q is not one of %s", value, strings.Join(v, ", "))
}

func (v choice) String() string {
	return "one of " + strings.Join(v, ", ")
}

// fileValidator accepts an empty value, meaning the option is unset.
type fileValidator struct{}

func (fileValidator) Validate(value string) error {
	if value == "" {
		return nil
	}

	info, err := os.Stat(value)
	if err != nil {
		return errors.Errorf("file %q does not exist", value)
	}
	if !info.Mode().IsRegular() {
		return errors.Errorf("%q is not a regular file", value)
	}

	return nil
}

func (fileValidator) String() string {
	return "path to an existing file"
}

type contentName struct {
	kind     string
	optional bool
}

func (v contentName) Validate(value string) error {
	if value == "" && v.optional {
		return nil
	}

	if !contentNamePattern.MatchString(value) {
		return errors.Errorf("%q is not a valid %s name", value, strings.ReplaceAll(v.kind, "_", " "))
	}

	return nil
}

func (v contentName) String() string {
	return strings.ReplaceAll(v.kind, "_", " ") + " name"
}

type nameList struct {
	kind    string
	pattern *regexp.Regexp
}

func (v nameList) Validate(value string) error {
	names := SplitList(value)
	if len(names) == 0 {
		return errors.Errorf("at least one %s is required", v.kind)
	}

	for _, name := range names {
		if !v.pattern.MatchString(name) {
			return errors.Errorf("%q is not a valid %s name", name, v.kind)
		}
	}

	return nil
}

func (v nameList) String() string {
	return "list of " + v.kind + " names separated by " + listSeparator
}

// SplitList splits a ";" separated list value, dropping empty items.
func SplitList(value string) []string {
	parts := strings.Split(value, listSeparator)

	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}

	return result
}
