package acserver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hmehta/acdsc/pkg/ini"
	"github.com/hmehta/acdsc/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registry(t *testing.T) *settings.Registry {
	t.Helper()

	reg, err := settings.Default()
	require.NoError(t, err)

	return reg
}

func TestDefaultServerConfig(t *testing.T) {
	reg := registry(t)

	f, err := DefaultServerConfig(reg)

	require.NoError(t, err)
	assert.Equal(t, []string{"SERVER", "PRACTICE", "QUALIFY", "RACE", "WEATHER_0"}, f.SectionNames())
	assert.Len(t, f.Section("SERVER").Keys(), len(reg.Server()))

	name, _ := f.Get("SERVER", "NAME")
	assert.Equal(t, "acdsc default", name)
	laps, _ := f.Get("RACE", "LAPS")
	assert.Equal(t, "5", laps)
	graphics, _ := f.Get("WEATHER_0", "GRAPHICS")
	assert.Equal(t, "3_clear", graphics)

	assert.Equal(t, []string{"abarth500_s1", "ferrari_458"}, Cars(f))
	assert.NoError(t, Validate(f, reg))
}

func TestDefaultEntryList(t *testing.T) {
	reg := registry(t)

	f, err := DefaultEntryList(reg, []string{"abarth500_s1", "ferrari_458"}, 3)

	require.NoError(t, err)
	assert.Equal(t, []string{"CAR_0", "CAR_1", "CAR_2"}, f.SectionNames())

	models := make([]string, 0, 3)
	for _, name := range f.SectionNames() {
		model, _ := f.Get(name, "MODEL")
		models = append(models, model)
	}
	assert.Equal(t, []string{"abarth500_s1", "ferrari_458", "abarth500_s1"}, models)

	_, err = DefaultEntryList(reg, nil, 3)
	require.ErrorIs(t, err, ErrNoCars)
}

func TestAddNumbered(t *testing.T) {
	reg := registry(t)
	f := ini.New()

	for _, want := range []string{"WEATHER_0", "WEATHER_1", "WEATHER_2"} {
		name, err := AddNumbered(f, reg, settings.PrefixWeather, nil)

		require.NoError(t, err)
		assert.Equal(t, want, name)
	}

	name, err := AddNumbered(f, reg, settings.PrefixWeather, map[string]string{
		"graphics":                 "7_heavy_clouds",
		"base-temperature-ambient": "25",
	})
	require.NoError(t, err)
	assert.Equal(t, "WEATHER_3", name)

	graphics, _ := f.Get("WEATHER_3", "GRAPHICS")
	assert.Equal(t, "7_heavy_clouds", graphics)
}

func TestAddNumbered_afterGap(t *testing.T) {
	reg := registry(t)
	f, err := ini.Load(strings.NewReader("[CAR_0]\nMODEL=ks_mazda_mx5_cup\n\n[CAR_7]\nMODEL=ks_mazda_mx5_cup\n"))
	require.NoError(t, err)

	name, err := AddNumbered(f, reg, settings.PrefixEntry, nil)

	require.NoError(t, err)
	assert.Equal(t, "CAR_8", name)
}

func TestAddNumbered_invalidOverride(t *testing.T) {
	reg := registry(t)
	f := ini.New()

	_, err := AddNumbered(f, reg, settings.PrefixWeather, map[string]string{"graphics": "sunny"})

	var target *settings.ValidationError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "WEATHER_0", target.Section)
	assert.Equal(t, "GRAPHICS", target.Key)
	assert.Empty(t, f.SectionNames())
}

func TestAddSession(t *testing.T) {
	reg := registry(t)
	f := ini.New()

	name, err := AddSession(f, reg, "book", map[string]string{"time": "15"})
	require.NoError(t, err)
	assert.Equal(t, "BOOK", name)

	v, _ := f.Get("BOOK", "TIME")
	assert.Equal(t, "15", v)

	_, err = AddSession(f, reg, "BOOK", nil)
	var duplicate *ini.DuplicateSectionError
	require.ErrorAs(t, err, &duplicate)

	_, err = AddSession(f, reg, "HOTLAP", nil)
	var unknown *settings.UnknownSectionError
	require.ErrorAs(t, err, &unknown)
}

func TestRemoveNumbered(t *testing.T) {
	reg := registry(t)
	f, err := DefaultEntryList(reg, []string{"a", "b", "c", "d"}, 4)
	require.NoError(t, err)

	require.NoError(t, RemoveNumbered(f, settings.PrefixEntry, "CAR_1"))

	assert.Equal(t, []string{"CAR_0", "CAR_1", "CAR_2"}, f.SectionNames())
	model, _ := f.Get("CAR_1", "MODEL")
	assert.Equal(t, "c", model)
	model, _ = f.Get("CAR_2", "MODEL")
	assert.Equal(t, "d", model)

	var target *ini.NoSectionError
	require.ErrorAs(t, RemoveNumbered(f, settings.PrefixEntry, "CAR_9"), &target)
}

func TestApply(t *testing.T) {
	reg := registry(t)

	tests := []struct {
		name    string
		section string
		key     string
		value   any
		want    *string
		errType any
	}{
		{name: "cli_key", section: "SERVER", key: "max-clients", value: 24, want: ptr("24")},
		{name: "ini_key", section: "SERVER", key: "NAME", value: "Sunday league", want: ptr("Sunday league")},
		{name: "absent", section: "SERVER", key: "password", value: nil, want: nil},
		{name: "invalid", section: "SERVER", key: "udp-port", value: "80", errType: &settings.ValidationError{}},
		{name: "unknown_key", section: "SERVER", key: "laps", value: 3, errType: &settings.UnknownKeyError{}},
		{name: "unknown_section", section: "DYNAMIC_TRACK", key: "session-start", value: 96, errType: &settings.UnknownSectionError{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := DefaultServerConfig(reg)
			require.NoError(t, err)

			err = Apply(f, reg, test.section, test.key, test.value)

			switch target := test.errType.(type) {
			case *settings.ValidationError:
				require.ErrorAs(t, err, &target)
			case *settings.UnknownKeyError:
				require.ErrorAs(t, err, &target)
			case *settings.UnknownSectionError:
				require.ErrorAs(t, err, &target)
			default:
				require.NoError(t, err)

				key := ini.ConvertKey(test.key)
				s := f.Section(test.section)
				require.True(t, s.Has(key))
				if test.want == nil {
					assert.False(t, s.HasValue(key))
				} else {
					v, _ := s.Get(key)
					assert.Equal(t, *test.want, v)
				}
			}
		})
	}
}

func TestValidate_collectsAllErrors(t *testing.T) {
	reg := registry(t)
	f, err := ini.Load(strings.NewReader(`[SERVER]
UDP_PORT=80
TCP_PORT=9600
CUSTOM=kept

[RACE]
LAPS=many

[DYNAMIC_TRACK]
SESSION_START=96
`))
	require.NoError(t, err)

	err = Validate(f, reg)

	errs := Errors(err)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "SERVER.UDP_PORT")
	assert.Contains(t, errs[1].Error(), "RACE.LAPS")
}

func TestCheckContent(t *testing.T) {
	reg := registry(t)
	serverPath := t.TempDir()

	for _, dir := range []string{
		"content/cars/abarth500_s1",
		"content/tracks/vallelunga/extended_circuit",
	} {
		require.NoError(t, os.MkdirAll(filepath.Join(serverPath, dir), 0755))
	}

	serverCfg, err := DefaultServerConfig(reg)
	require.NoError(t, err)
	require.NoError(t, Apply(serverCfg, reg, "SERVER", "max-clients", 3))

	entryList, err := DefaultEntryList(reg, []string{"abarth500_s1", "bmw_m3_e30"}, 2)
	require.NoError(t, err)

	errs := Errors(CheckContent(serverCfg, entryList, serverPath))

	require.Len(t, errs, 3)

	var missing *MissingContentError
	require.ErrorAs(t, errs[0], &missing)
	assert.Equal(t, "ferrari_458", missing.Name)

	var entry *EntryListError
	require.ErrorAs(t, errs[1], &entry)
	assert.Equal(t, "CAR_1", entry.Section)
	assert.Contains(t, errs[1].Error(), "bmw_m3_e30")
	require.ErrorAs(t, errs[2], &entry)
	assert.Contains(t, errs[2].Error(), "MAX_CLIENTS is 3 but only 2 slots")
}

func TestCheckContent_withoutEntryList(t *testing.T) {
	reg := registry(t)
	serverPath := t.TempDir()

	for _, dir := range []string{
		"content/cars/abarth500_s1",
		"content/cars/ferrari_458",
		"content/tracks/vallelunga/extended_circuit",
	} {
		require.NoError(t, os.MkdirAll(filepath.Join(serverPath, dir), 0755))
	}

	serverCfg, err := DefaultServerConfig(reg)
	require.NoError(t, err)

	assert.NoError(t, CheckContent(serverCfg, nil, serverPath))
}

func TestPaths(t *testing.T) {
	assert.Equal(t, filepath.Join("/srv/ac", "cfg", "server_cfg.ini"), ServerConfigPath("/srv/ac"))
	assert.Equal(t, filepath.Join("/srv/ac", "cfg", "entry_list.ini"), EntryListPath("/srv/ac"))
}

func ptr(s string) *string {
	return &s
}
