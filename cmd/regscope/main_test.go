package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regscope/regscope/pkg/config"
	"github.com/regscope/regscope/pkg/keypath"
)

func testApp(t *testing.T, keys ...string) *app {
	t.Helper()
	idx, err := keypath.ParseIndex(keys)
	require.NoError(t, err)
	return &app{index: idx}
}

func TestEditableKey(t *testing.T) {
	a := testApp(t, `HKLM\SOFTWARE\Vendor`)

	assert.True(t, a.editableKey(keypath.MustParse(`HKLM\SOFTWARE\Vendor`)))
	assert.True(t, a.editableKey(keypath.MustParse(`hklm\software\vendor\Child`)))
	assert.False(t, a.editableKey(keypath.MustParse(`HKLM\SOFTWARE`)), "scaffold keys are read-only")
	assert.False(t, a.editableKey(keypath.MustParse(`HKLM\SOFTWARE\Vendor\Child\Grandchild`)))
	assert.False(t, a.editableKey(keypath.MustParse(`HKLM\Elsewhere`)))
}

func TestResolveEditableKey(t *testing.T) {
	a := testApp(t, `HKLM\SOFTWARE\Vendor`)

	path, err := resolveEditableKey(a, `HKLM\SOFTWARE\Vendor\Child`)
	require.NoError(t, err)
	assert.Equal(t, `HKEY_LOCAL_MACHINE\SOFTWARE\Vendor\Child`, path.String())

	_, err = resolveEditableKey(a, `HKLM\SOFTWARE`)
	assert.ErrorIs(t, err, ErrKeyNotProjected)

	_, err = resolveEditableKey(a, "")
	assert.ErrorIs(t, err, keypath.ErrEmptyPath)
}

func TestOpenRecorderOrWarnNeverFails(t *testing.T) {
	// A regular file where the history dir should be makes Open fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	a := &app{cfg: &config.Config{History: config.HistoryConfig{
		Enabled: true,
		Dir:     filepath.Join(blocker, "nested"),
	}}}
	assert.Nil(t, a.openRecorderOrWarn(), "broken history store must not block the edit")

	a.cfg.History.Enabled = false
	assert.Nil(t, a.openRecorderOrWarn())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "(Default)", displayName(""))
	assert.Equal(t, "Version", displayName("Version"))
}
