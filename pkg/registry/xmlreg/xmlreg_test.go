package xmlreg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regscope/regscope/pkg/keypath"
	"github.com/regscope/regscope/pkg/registry"
)

const sampleDoc = `
<registry>
  <key name="HKEY_LOCAL_MACHINE">
    <key name="SOFTWARE">
      <key name="Vendor">
        <value name="" data="default text" type="REG_SZ" />
        <value name="Version" data="0x10" type="REG_DWORD" />
        <value name="InstallDir" data="C:\Vendor" type="REG_SZ" />
        <key name="Plugins">
          <value name="List" data="alpha&#10;beta" type="REG_MULTI_SZ" />
        </key>
        <key name="Cache" />
      </key>
    </key>
  </key>
  <key name="HKEY_CURRENT_USER">
    <key name="Console" />
  </key>
</registry>`

func sampleStore(t *testing.T) *Store {
	t.Helper()
	s, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	return s
}

func TestParseRejectsMalformedDocuments(t *testing.T) {
	_, err := Parse([]byte("<registry><key"))
	assert.ErrorIs(t, err, ErrParseDocument)

	_, err = Parse([]byte(`<registry><key name="HKLM"><value name="x" data="y" type="REG_BOGUS"/></key></registry>`))
	assert.ErrorIs(t, err, registry.ErrUnknownType)

	_, err = Parse([]byte(`<registry><key name="HKLM"><value name="x" data="nope" type="REG_DWORD"/></key></registry>`))
	assert.ErrorIs(t, err, registry.ErrUnsupportedData)
}

func TestLoadReadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mock.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	ok, err := s.Exists(keypath.MustParse(`HKEY_LOCAL_MACHINE\SOFTWARE`))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = Load(filepath.Join(t.TempDir(), "missing.xml"))
	assert.ErrorIs(t, err, ErrReadDocument)
}

func TestListKeysPreservesDocumentOrder(t *testing.T) {
	s := sampleStore(t)

	names, err := s.ListKeys(keypath.MustParse(`HKLM\SOFTWARE\Vendor`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Plugins", "Cache"}, names)

	names, err = s.ListKeys(keypath.KeyPath{})
	require.NoError(t, err)
	assert.Equal(t, []string{"HKEY_LOCAL_MACHINE", "HKEY_CURRENT_USER"}, names)

	_, err = s.ListKeys(keypath.MustParse(`HKLM\Nowhere`))
	assert.ErrorIs(t, err, registry.ErrKeyNotFound)
}

func TestLookupsAreCaseInsensitive(t *testing.T) {
	s := sampleStore(t)

	ok, err := s.Exists(keypath.MustParse(`hklm\software\VENDOR\plugins`))
	require.NoError(t, err)
	assert.True(t, ok)

	v, err := s.GetValue(keypath.MustParse(`HKLM\SOFTWARE\Vendor`), "VERSION")
	require.NoError(t, err)
	assert.Equal(t, "Version", v.Name)
	assert.Equal(t, uint32(16), v.Data)
}

func TestValuesAreTyped(t *testing.T) {
	s := sampleStore(t)

	values, err := s.Values(keypath.MustParse(`HKLM\SOFTWARE\Vendor`))
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.Equal(t, registry.Value{Name: "", Type: registry.SZ, Data: "default text"}, values[0])
	assert.Equal(t, registry.Value{Name: "Version", Type: registry.DWord, Data: uint32(16)}, values[1])

	v, err := s.GetValue(keypath.MustParse(`HKLM\SOFTWARE\Vendor\Plugins`), "List")
	require.NoError(t, err)
	assert.Equal(t, registry.MultiSZ, v.Type)
	assert.Equal(t, []string{"alpha", "beta"}, v.Data)

	_, err = s.GetValue(keypath.MustParse(`HKLM\SOFTWARE\Vendor`), "Missing")
	assert.ErrorIs(t, err, registry.ErrValueNotFound)
}

func TestSetValueReplacesAndAppends(t *testing.T) {
	s := sampleStore(t)
	vendor := keypath.MustParse(`HKLM\SOFTWARE\Vendor`)

	require.NoError(t, s.SetValue(vendor, registry.Value{Name: "version", Type: registry.DWord, Data: uint32(17)}))
	values, err := s.Values(vendor)
	require.NoError(t, err)
	assert.Len(t, values, 3, "case-insensitive replace, not append")
	v, err := s.GetValue(vendor, "Version")
	require.NoError(t, err)
	assert.Equal(t, uint32(17), v.Data)

	require.NoError(t, s.SetValue(vendor, registry.Value{Name: "New", Type: registry.SZ, Data: "x"}))
	values, err = s.Values(vendor)
	require.NoError(t, err)
	assert.Len(t, values, 4)

	err = s.SetValue(keypath.MustParse(`HKLM\Nowhere`), registry.Value{Name: "x"})
	assert.ErrorIs(t, err, registry.ErrKeyNotFound)
}

func TestDeleteValue(t *testing.T) {
	s := sampleStore(t)
	vendor := keypath.MustParse(`HKLM\SOFTWARE\Vendor`)

	require.NoError(t, s.DeleteValue(vendor, "installdir"))
	_, err := s.GetValue(vendor, "InstallDir")
	assert.ErrorIs(t, err, registry.ErrValueNotFound)

	err = s.DeleteValue(vendor, "InstallDir")
	assert.ErrorIs(t, err, registry.ErrValueNotFound)
}

func TestCreateKey(t *testing.T) {
	s := sampleStore(t)
	vendor := keypath.MustParse(`HKLM\SOFTWARE\Vendor`)

	require.NoError(t, s.CreateKey(vendor, "Settings"))
	names, err := s.ListKeys(vendor)
	require.NoError(t, err)
	assert.Equal(t, []string{"Plugins", "Cache", "Settings"}, names)

	err = s.CreateKey(vendor, "settings")
	assert.ErrorIs(t, err, registry.ErrKeyExists)

	err = s.CreateKey(keypath.MustParse(`HKLM\Nowhere`), "X")
	assert.ErrorIs(t, err, registry.ErrKeyNotFound)
}
