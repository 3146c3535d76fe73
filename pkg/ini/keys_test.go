package ini

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionsWithPrefix_numericOrder(t *testing.T) {
	f := New()
	for _, name := range []string{"SERVER", "SESSION_2", "SESSION_10", "SESSION_1", "SESSIONS"} {
		_, err := f.AddSection(name)
		require.NoError(t, err)
	}

	names, err := f.SectionsWithPrefix("SESSION")

	require.NoError(t, err)
	assert.Equal(t, []string{"SESSION_1", "SESSION_2", "SESSION_10"}, names)
}

func TestSectionsWithPrefix_invalidSuffix(t *testing.T) {
	f, err := Load(strings.NewReader("[CAR_0]\n[CAR_X]\n"))
	require.NoError(t, err)

	_, err = f.SectionsWithPrefix("CAR")

	var target *InvalidSuffixError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "CAR_X", target.Section)
}

func TestSectionsWithPrefix_none(t *testing.T) {
	names, err := New().SectionsWithPrefix("CAR")

	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestNextSectionName(t *testing.T) {
	tests := []struct {
		name     string
		sections []string
		want     string
	}{
		{
			name:     "single",
			sections: []string{"SESSION_0"},
			want:     "SESSION_1",
		},
		{
			name:     "unsorted",
			sections: []string{"SESSION_2", "SESSION_10", "SESSION_1"},
			want:     "SESSION_11",
		},
		{
			name:     "gap",
			sections: []string{"CAR_0", "CAR_5"},
			want:     "CAR_6",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := NextSectionName(strings.Split(test.want, "_")[0], test.sections)

			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestNextSectionName_monotonic(t *testing.T) {
	f := New()
	_, err := f.AddSection("SESSION_1")
	require.NoError(t, err)

	for want := 2; want <= 12; want++ {
		sections, err := f.SectionsWithPrefix("SESSION")
		require.NoError(t, err)

		next, err := NextSectionName("SESSION", sections)
		require.NoError(t, err)
		assert.Equal(t, "SESSION_"+strconv.Itoa(want), next)

		_, err = f.AddSection(next)
		require.NoError(t, err)
	}
}

func TestNextSectionName_empty(t *testing.T) {
	_, err := NextSectionName("SESSION", nil)

	require.ErrorIs(t, err, ErrNoSections)
}

func TestSortNumeric_extremeSuffixes(t *testing.T) {
	maxName := "CAR_" + strconv.Itoa(math.MaxInt)
	minName := "CAR_" + strconv.Itoa(math.MinInt)

	names, err := SortNumeric([]string{maxName, "CAR_0", minName, "CAR_-1"})

	require.NoError(t, err)
	assert.Equal(t, []string{minName, "CAR_-1", "CAR_0", maxName}, names)
}

func TestNextSectionName_overflow(t *testing.T) {
	_, err := NextSectionName("CAR", []string{"CAR_0", "CAR_" + strconv.Itoa(math.MaxInt)})

	require.ErrorIs(t, err, ErrSuffixOverflow)
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		user string
		ini  string
	}{
		{user: "max-clients", ini: "MAX_CLIENTS"},
		{user: "name", ini: "NAME"},
		{user: "race-pit-window-start", ini: "RACE_PIT_WINDOW_START"},
		{user: "udp-plugin-local-port", ini: "UDP_PLUGIN_LOCAL_PORT"},
	}

	for _, test := range tests {
		t.Run(test.user, func(t *testing.T) {
			assert.Equal(t, test.ini, ConvertKey(test.user))
			assert.Equal(t, test.user, ConvertINIKey(test.ini))
			assert.Equal(t, test.user, ConvertINIKey(ConvertKey(test.user)))
			assert.Equal(t, test.ini, ConvertKey(ConvertINIKey(test.ini)))
		})
	}
}

func TestToINI(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name  string
		value any
		want  *string
	}{
		{name: "nil", value: nil, want: nil},
		{name: "nil_pointer", value: (*string)(nil), want: nil},
		{name: "string", value: "Mäkelä", want: str("Mäkelä")},
		{name: "invalid_utf8", value: "a\xffb", want: str("a\uFFFDb")},
		{name: "int", value: 15, want: str("15")},
		{name: "negative", value: -8, want: str("-8")},
		{name: "bool", value: true, want: str("true")},
		{name: "bytes", value: []byte("abc"), want: str("abc")},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			key, value := ToINI("max-clients", test.value)

			assert.Equal(t, "MAX_CLIENTS", key)
			assert.Equal(t, test.want, value)
		})
	}
}
