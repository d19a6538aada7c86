package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCities_List(t *testing.T) {
	path := writeFile(t, "cities.yaml", `
- city: Rexburg
  state: ID
- city: Ammon
  state: id
`)
	got, err := loadCities(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Rexburg", got[0].City)
	assert.Equal(t, "id", got[1].State)
}

func TestLoadCities_WrappedJSON(t *testing.T) {
	path := writeFile(t, "cities.json", `{"dealer": "1 Main St, Idaho Falls, ID", "cities": [{"city": "Pocatello", "state": "ID"}]}`)
	got, err := loadCities(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Pocatello", got[0].City)
}

func TestLoadCities_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", "is empty"},
		{"no cities", "cities: []", "no cities"},
		{"missing state", "- city: Rexburg\n", "entry 1"},
		{"bad yaml", "- city: [unclosed", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadCities(writeFile(t, "c.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "enrich-cities")
		})
	}

	_, err := loadCities(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestEnrichCitiesCommand_Flags(t *testing.T) {
	f := enrichCitiesCmd.Flags()
	for name, def := range map[string]string{
		"dealer":      "",
		"range":       "50",
		"limit":       "5",
		"format":      "json",
		"out":         "",
		"concurrency": "0",
	} {
		flag := f.Lookup(name)
		require.NotNil(t, flag, "enrich-cities should have --%s", name)
		assert.Equal(t, def, flag.DefValue, name)
	}
	assert.Error(t, enrichCitiesCmd.Args(enrichCitiesCmd, nil))
}
