package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	expected := []string{"distance", "verify", "population", "verify-batch", "enrich-cities", "serve", "journal"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "dealer-scout", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestDistanceCommand_Flags(t *testing.T) {
	flag := distanceCmd.Flags().Lookup("geojson")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
	assert.Error(t, distanceCmd.Args(distanceCmd, []string{"only one"}))
}

func TestVerifyCommand_Flags(t *testing.T) {
	for _, name := range []string{"name", "website", "oem", "address", "search-results"} {
		assert.NotNil(t, verifyCmd.Flags().Lookup(name), "verify command should have --%s flag", name)
	}
}

func TestVerifyBatchCommand_Flags(t *testing.T) {
	flag := verifyBatchCmd.Flags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, "json", flag.DefValue)
	assert.NotNil(t, verifyBatchCmd.Flags().Lookup("out"))
	assert.NotNil(t, verifyBatchCmd.Flags().Lookup("concurrency"))
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestJournalCommand_Flags(t *testing.T) {
	flag := journalCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "50", flag.DefValue)
	assert.NotNil(t, journalCmd.Flags().Lookup("tool"))
}
