package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Use(t *testing.T) {
	assert.Equal(t, "serve", serveCmd.Use)
}

func TestServeCmd_Flags(t *testing.T) {
	addr := serveCmd.Flags().Lookup("addr")
	require.NotNil(t, addr)
	assert.Equal(t, ":8080", addr.DefValue)

	for _, name := range []string{"watch", "source", "index-dir", "debounce"} {
		require.NotNil(t, serveCmd.Flags().Lookup(name), "%s flag should exist", name)
	}
}

func TestServeCmd_WatchRequiresSource(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"serve", "--watch"})
	defer func() {
		rootCmd.SetArgs(nil)
		serveWatch = false
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch requires --source")
}
