package ini

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ConvertKey maps a user facing option name to the server key:
// "max-clients" -> "MAX_CLIENTS".
func ConvertKey(key string) string {
	return strings.ReplaceAll(strings.ToUpper(key), "-", "_")
}

// ConvertINIKey is the inverse of ConvertKey: "MAX_CLIENTS" -> "max-clients".
func ConvertINIKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}

// ToINI normalizes key and renders value for storage. A nil value stays nil
// so the key is written without "=value".
func ToINI(key string, value any) (string, *string) {
	k := ConvertKey(key)

	var s string
	switch v := value.(type) {
	case nil:
		return k, nil
	case *string:
		if v == nil {
			return k, nil
		}
		s = strings.ToValidUTF8(*v, "\uFFFD")
	case string:
		s = strings.ToValidUTF8(v, "\uFFFD")
	case []byte:
		s = strings.ToValidUTF8(string(v), "\uFFFD")
	default:
		s = fmt.Sprint(v)
	}

	return k, &s
}

func numericSuffix(name string) (int, error) {
	suffix := name[strings.LastIndex(name, "_")+1:]

	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, &InvalidSuffixError{Section: name, Err: err}
	}

	return n, nil
}

// SectionsWithPrefix returns the sections named "<prefix>_<n>" ordered by n.
func (f *File) SectionsWithPrefix(prefix string) ([]string, error) {
	p := prefix + "_"
	names := lo.Filter(f.SectionNames(), func(name string, _ int) bool {
		return strings.HasPrefix(name, p)
	})

	return SortNumeric(names)
}

// SortNumeric orders section names by the integer after their last
// underscore. Names are never compared as strings, so SESSION_10 sorts
// after SESSION_2.
func SortNumeric(names []string) ([]string, error) {
	type numbered struct {
		name string
		n    int
	}

	items := make([]numbered, 0, len(names))
	for _, name := range names {
		n, err := numericSuffix(name)
		if err != nil {
			return nil, err
		}
		items = append(items, numbered{name: name, n: n})
	}

	slices.SortStableFunc(items, func(a, b numbered) int {
		return cmp.Compare(a.n, b.n)
	})

	return lo.Map(items, func(item numbered, _ int) string {
		return item.name
	}), nil
}

// NextSectionName returns "<prefix>_<max+1>" for the given family members.
// The first member of a family has no predecessor, callers pick its name.
func NextSectionName(prefix string, sections []string) (string, error) {
	if len(sections) == 0 {
		return "", errors.WithMessage(ErrNoSections, prefix)
	}

	last := 0
	for i, name := range sections {
		n, err := numericSuffix(name)
		if err != nil {
			return "", err
		}
		if i == 0 || n > last {
			last = n
		}
	}

	if last == math.MaxInt {
		return "", errors.WithMessagef(ErrSuffixOverflow, "%s_%d", prefix, last)
	}

	return fmt.Sprintf("%s_%d", prefix, last+1), nil
}
