package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCandidates_List(t *testing.T) {
	path := writeFile(t, "candidates.yaml", `
- name: Teton GMC
  website: https://teton.test
  oem: GMC
  address: 1 Main St, Idaho Falls, ID
  search_results: Teton GMC new Sierra 2026
  city: Idaho Falls
  state: ID
- name: Snake River Ford
  website: https://srf.test
  oem: GMC
`)
	got, err := loadCandidates(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Teton GMC", got[0].Name)
	assert.Equal(t, "Teton GMC new Sierra 2026", got[0].SearchResults)
	assert.Equal(t, "Idaho Falls", got[0].City)
	assert.Equal(t, "https://srf.test", got[1].Website)
}

func TestLoadCandidates_WrappedJSON(t *testing.T) {
	path := writeFile(t, "candidates.json", `{"candidates": [{"name": "Teton GMC", "website": "https://teton.test", "oem": "GMC", "distance": "12.4"}]}`)
	got, err := loadCandidates(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "12.4", got[0].Distance)
}

func TestLoadCandidates_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "  \n", "is empty"},
		{"no candidates", "candidates: []", "no candidates"},
		{"bad yaml", "- name: [unclosed", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadCandidates(writeFile(t, "c.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := loadCandidates(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
