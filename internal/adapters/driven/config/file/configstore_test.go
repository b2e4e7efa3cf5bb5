package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(home, ".legalis", "config.toml"), store.Path())

	// Cleanup
	_ = os.Remove(store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("embedding.provider", "ollama")
	require.NoError(t, err)

	val, ok := store.Get("embedding.provider")
	assert.True(t, ok)
	assert.Equal(t, "ollama", val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("embedding.model", "nomic-embed-text"))
	require.NoError(t, store.Set("chunking.size", 500))
	require.NoError(t, store.Set("chunking.cross_page", true))

	assert.Equal(t, "nomic-embed-text", store.GetString("embedding.model"))
	assert.Equal(t, 500, store.GetInt("chunking.size"))
	assert.True(t, store.GetBool("chunking.cross_page"))

	// Missing keys read as zero values.
	assert.Equal(t, "", store.GetString("llm.model"))
	assert.Equal(t, 0, store.GetInt("retrieval.top_k"))
	assert.False(t, store.GetBool("verbose"))

	// Mistyped values read as zero values too.
	assert.Equal(t, "", store.GetString("chunking.size"))
	assert.Equal(t, 0, store.GetInt("embedding.model"))
	assert.False(t, store.GetBool("embedding.model"))
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	val, ok := store.Get("llm.api_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_SettingsSurvivesReload(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store1.Set("embedding.provider", "ollama"))
	require.NoError(t, store1.Set("llm.provider", "gemini"))
	require.NoError(t, store1.Set("chunking.size", 500))
	require.NoError(t, store1.Set("chunking.overlap", 100))
	require.NoError(t, store1.Set("chunking.cross_page", true))
	require.NoError(t, store1.Set("retrieval.top_k", 5))

	// A fresh instance reads the persisted file.
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "ollama", store2.GetString("embedding.provider"))
	assert.Equal(t, "gemini", store2.GetString("llm.provider"))
	assert.Equal(t, 500, store2.GetInt("chunking.size"))
	assert.Equal(t, 100, store2.GetInt("chunking.overlap"))
	assert.True(t, store2.GetBool("chunking.cross_page"))
	assert.Equal(t, 5, store2.GetInt("retrieval.top_k"))
}

func TestConfigStore_Load_NonExistent(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	val, ok := store.Get("embedding.provider")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_SetWritesFile(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("retrieval.top_k", 8)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(tmpDir, "config.toml"))
	assert.NoError(t, err)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	// The config file can hold API keys, so it must not be world-readable.
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("llm.api_key", "sk-secret")
	require.NoError(t, err)

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()

	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	val, ok := store.Get("embedding.provider")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Concurrency(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
			_ = store.GetBool(key)
			_, _ = store.Get(key)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestConfigStore_OverwriteValue(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("llm.model", "llama3.2")
	require.NoError(t, err)
	assert.Equal(t, "llama3.2", store.GetString("llm.model"))

	err = store.Set("llm.model", "gemini-2.0-flash")
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", store.GetString("llm.model"))
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	// A path under /dev/null cannot be created.
	invalidPath := "/dev/null/cannot/create/dirs"

	store, err := NewConfigStore(invalidPath)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()

	corruptedContent := []byte("this is not valid TOML {{{[[")
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), corruptedContent, 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Save_Explicit(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	store.mu.Lock()
	store.data["embedding.base_url"] = "http://localhost:11434"
	store.mu.Unlock()

	err = store.Save()
	require.NoError(t, err)

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:11434", store2.GetString("embedding.base_url"))
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("llm.provider", "ollama")
	require.NoError(t, err)

	// Replace the file with a directory so the next write fails.
	err = os.Remove(store.Path())
	require.NoError(t, err)
	err = os.Mkdir(store.Path(), 0700)
	require.NoError(t, err)

	err = store.Set("llm.model", "llama3.2")
	assert.Error(t, err)
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	err = store.Set("embedding.provider", "ollama")
	require.NoError(t, err)

	corruptedContent := []byte("invalid toml syntax ][}{")
	err = os.WriteFile(store.Path(), corruptedContent, 0600)
	require.NoError(t, err)

	err = store.Load()
	assert.Error(t, err)
}

func TestConfigStore_Load_ReadFileError(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root: chmod 0000 does not prevent reads")
	}
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("embedding.provider", "ollama")
	require.NoError(t, err)

	err = os.Chmod(store.Path(), 0000)
	require.NoError(t, err)

	err = store.Load()
	assert.Error(t, err)
	assert.False(t, os.IsNotExist(err))

	// Restore permissions for cleanup
	_ = os.Chmod(store.Path(), 0600)
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	// Channels cannot be marshaled to TOML.
	ch := make(chan int)
	err = store.Set("channel", ch)

	assert.Error(t, err)
}

func TestConfigStore_GetInt_Int64Type(t *testing.T) {
	// TOML unmarshals integers as int64; GetInt must still return them.
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	store.mu.Lock()
	store.data["retrieval.top_k"] = int64(12)
	store.mu.Unlock()

	assert.Equal(t, 12, store.GetInt("retrieval.top_k"))
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	nestedPath := filepath.Join(tmpDir, "nested", "deep", "path")

	store, err := NewConfigStore(nestedPath)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(nestedPath, "config.toml"), store.Path())

	info, err := os.Stat(nestedPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestConfigStore_Load_CommentOnlyFile(t *testing.T) {
	tmpDir := t.TempDir()

	emptyContent := []byte("# legalis configuration\n\n")
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), emptyContent, 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	val, ok := store.Get("embedding.provider")
	assert.False(t, ok)
	assert.Nil(t, val)
}
