package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	t.Run("server settings keep schema order", func(t *testing.T) {
		server := r.Server()
		require.NotEmpty(t, server)
		assert.Equal(t, "NAME", server[0].Key)
		assert.Equal(t, "CARS", server[1].Key)
		assert.Equal(t, "TIME_OF_DAY_MULT", server[len(server)-1].Key)
	})

	t.Run("sessions", func(t *testing.T) {
		assert.Equal(t, []string{"BOOK", "PRACTICE", "QUALIFY", "RACE"}, r.SessionNames())

		race, ok := r.Session("RACE")
		require.True(t, ok)
		assert.Equal(t, map[string]string{
			"NAME":      "Race",
			"TIME":      "0",
			"IS_OPEN":   "2",
			"LAPS":      "5",
			"WAIT_TIME": "60",
		}, lo.SliceToMap(race, func(d Descriptor) (string, string) {
			return d.Key, d.Default
		}))
	})

	t.Run("entry defaults", func(t *testing.T) {
		d, err := r.Lookup("CAR_3", "BALLAST")
		require.NoError(t, err)
		assert.Equal(t, "0", d.Default)
	})

	t.Run("accessors return copies", func(t *testing.T) {
		server := r.Server()
		server[0].Key = "CHANGED"
		assert.Equal(t, "NAME", r.Server()[0].Key)
	})

	t.Run("every default is valid", func(t *testing.T) {
		for _, f := range Families {
			descriptors, err := r.Family(f)
			require.NoError(t, err)

			for _, d := range descriptors {
				if d.Default == "" {
					continue
				}
				assert.NoError(t, d.Validate(d.Default), "%s %s", f, d.Key)
			}
		}
	})

	t.Run("default is cached", func(t *testing.T) {
		again, err := Default()
		require.NoError(t, err)
		assert.Same(t, r, again)
	})
}

func TestRegistry_Resolve(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	tests := []struct {
		section string
		family  Family
		wantErr bool
	}{
		{section: "SERVER", family: FamilyServer},
		{section: "PRACTICE", family: FamilySession},
		{section: "WEATHER_0", family: FamilyWeather},
		{section: "WEATHER_12", family: FamilyWeather},
		{section: "CAR_7", family: FamilyEntry},
		{section: "CAR_", wantErr: true},
		{section: "CAR_X", wantErr: true},
		{section: "DYNAMIC_TRACK", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.section, func(t *testing.T) {
			family, _, err := r.Resolve(test.section)

			if test.wantErr {
				var target *UnknownSectionError
				require.ErrorAs(t, err, &target)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.family, family)
		})
	}
}

func TestRegistry_Lookup_unknownKey(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	_, err = r.Lookup("SERVER", "LAPS")

	var target *UnknownKeyError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "unknown setting LAPS in section SERVER", err.Error())
}

func TestParse_errors(t *testing.T) {
	tests := []struct {
		name          string
		schema        string
		expectedError string
	}{
		{
			name:          "unknown_validator",
			schema:        "server:\n  - key: A\n    validator: {kind: nope}\n",
			expectedError: "server settings: setting A: unknown validator kind \"nope\"",
		},
		{
			name:          "duplicate_key",
			schema:        "weather:\n  - key: A\n  - key: A\n",
			expectedError: "weather settings: setting A defined twice",
		},
		{
			name:          "duplicate_session",
			schema:        "sessions:\n  - name: race\n  - name: RACE\n",
			expectedError: "session RACE defined twice",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.schema))

			require.Error(t, err)
			assert.Equal(t, test.expectedError, err.Error())
		})
	}
}

func TestValidators(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "welcome.txt")
	require.NoError(t, os.WriteFile(existing, []byte("hi"), 0600))

	min1024, max49151 := 1024, 49151

	tests := []struct {
		name      string
		validator Validator
		value     string
		valid     bool
	}{
		{name: "int_ok", validator: intRange{}, value: "-8", valid: true},
		{name: "int_bad", validator: intRange{}, value: "eight", valid: false},
		{name: "port_ok", validator: intRange{min: &min1024, max: &max49151}, value: "9600", valid: true},
		{name: "port_low", validator: intRange{min: &min1024, max: &max49151}, value: "80", valid: false},
		{name: "port_high", validator: intRange{min: &min1024, max: &max49151}, value: "50000", valid: false},
		{name: "choice_ok", validator: choice{"3_clear", "1_heavy_fog"}, value: "3_clear", valid: true},
		{name: "choice_bad", validator: choice{"3_clear"}, value: "sunny", valid: false},
		{name: "file_empty", validator: fileValidator{}, value: "", valid: true},
		{name: "file_ok", validator: fileValidator{}, value: existing, valid: true},
		{name: "file_missing", validator: fileValidator{}, value: existing + ".missing", valid: false},
		{name: "file_dir", validator: fileValidator{}, value: filepath.Dir(existing), valid: false},
		{name: "car_ok", validator: contentName{kind: "car"}, value: "bmw_m3_e30", valid: true},
		{name: "car_empty", validator: contentName{kind: "car"}, value: "", valid: false},
		{name: "skin_empty", validator: contentName{kind: "car_skin", optional: true}, value: "", valid: true},
		{name: "car_path", validator: contentName{kind: "car"}, value: "../etc", valid: false},
		{name: "car_list_ok", validator: nameList{kind: "car", pattern: contentNamePattern}, value: "abarth500_s1;ferrari_458", valid: true},
		{name: "car_list_empty", validator: nameList{kind: "car", pattern: contentNamePattern}, value: ";", valid: false},
		{name: "tyres_ok", validator: nameList{kind: "tyre", pattern: tyreNamePattern}, value: "V;E;HR;ST", valid: true},
		{name: "tyres_bad", validator: nameList{kind: "tyre", pattern: tyreNamePattern}, value: "V;E-1", valid: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.validator.Validate(test.value)

			if test.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a ;; b;"))
	assert.Empty(t, SplitList(""))
}
