package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	set, err := Load(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestLoadSetsUnsetKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\n" +
		"LOOKBOOK_TEST_A=plain\n" +
		"export LOOKBOOK_TEST_B=\"quoted value\"\n" +
		"LOOKBOOK_TEST_C='single'\n" +
		"=novalue\n" +
		"garbage\n" +
		"LOOKBOOK_TEST_KEEP=from-file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("LOOKBOOK_TEST_KEEP", "from-env")
	for _, k := range []string{"LOOKBOOK_TEST_A", "LOOKBOOK_TEST_B", "LOOKBOOK_TEST_C"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	set, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"LOOKBOOK_TEST_A", "LOOKBOOK_TEST_B", "LOOKBOOK_TEST_C"}, set)
	assert.Equal(t, "plain", os.Getenv("LOOKBOOK_TEST_A"))
	assert.Equal(t, "quoted value", os.Getenv("LOOKBOOK_TEST_B"))
	assert.Equal(t, "single", os.Getenv("LOOKBOOK_TEST_C"))
	assert.Equal(t, "from-env", os.Getenv("LOOKBOOK_TEST_KEEP"))
}
