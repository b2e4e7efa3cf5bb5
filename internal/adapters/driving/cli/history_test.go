package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Use(t *testing.T) {
	assert.Equal(t, "history", historyCmd.Use)
}

func TestHistoryCmd_HasLimitFlag(t *testing.T) {
	flag := historyCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestHistoryCmd_PrintsExchanges(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Is a digital signature valid?")
	assert.Contains(t, buf.String(), "Yes, under the Act it is.")
	assert.Contains(t, buf.String(), "3 chunks")
}

func TestHistoryCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "--json"})
	defer func() {
		rootCmd.SetArgs(nil)
		historyJSON = false // Reset flag
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "\"Question\"")
	assert.Contains(t, buf.String(), "\"Answer\"")
}

func TestHistoryCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	historyStore = &mockHistoryStore{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No exchanges recorded yet.")
}
