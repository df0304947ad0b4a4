package projection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regscope/regscope/pkg/keypath"
	"github.com/regscope/regscope/pkg/registry"
)

// fakeProvider is an in-memory namespace for projector tests. Only key
// enumeration matters here; the projector never touches values.
type fakeProvider struct {
	children map[string][]string
	fail     map[string]error
	calls    map[string]int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		children: make(map[string][]string),
		fail:     make(map[string]error),
		calls:    make(map[string]int),
	}
}

func (f *fakeProvider) add(path string, children ...string) {
	f.children[keypath.Fold(keypath.MustParse(path))] = children
}

func (f *fakeProvider) failAt(path string, err error) {
	f.fail[keypath.Fold(keypath.MustParse(path))] = err
}

func (f *fakeProvider) ListKeys(path keypath.KeyPath) ([]string, error) {
	key := keypath.Fold(path)
	f.calls[key]++
	if err, ok := f.fail[key]; ok {
		return nil, err
	}
	children, ok := f.children[key]
	if !ok {
		return nil, registry.ErrKeyNotFound
	}
	return children, nil
}

func (f *fakeProvider) Exists(path keypath.KeyPath) (bool, error) {
	_, ok := f.children[keypath.Fold(path)]
	return ok, nil
}

func (f *fakeProvider) Values(keypath.KeyPath) ([]registry.Value, error) {
	return nil, nil
}

func (f *fakeProvider) GetValue(keypath.KeyPath, string) (registry.Value, error) {
	return registry.Value{}, registry.ErrValueNotFound
}

func (f *fakeProvider) SetValue(keypath.KeyPath, registry.Value) error { return nil }
func (f *fakeProvider) DeleteValue(keypath.KeyPath, string) error      { return nil }
func (f *fakeProvider) CreateKey(keypath.KeyPath, string) error        { return nil }

// vendorWorld is the namespace from the projection scenario: two of the
// four keys under Vendor are configured, Key1 has real children A and B.
func vendorWorld(t *testing.T) (*Projector, *fakeProvider) {
	t.Helper()
	idx, err := keypath.ParseIndex([]string{
		`HKLM\Soft\Vendor\Key1`,
		`HKLM\Soft\Vendor\Key2`,
	})
	require.NoError(t, err)

	provider := newFakeProvider()
	provider.add(`HKEY_LOCAL_MACHINE`, "Soft", "Unrelated")
	provider.add(`HKEY_LOCAL_MACHINE\Soft`, "Vendor", "Other")
	provider.add(`HKEY_LOCAL_MACHINE\Soft\Vendor`, "Key1", "Key2", "Key3", "Key4")
	provider.add(`HKEY_LOCAL_MACHINE\Soft\Vendor\Key1`, "A", "B")
	provider.add(`HKEY_LOCAL_MACHINE\Soft\Vendor\Key1\A`, "Deep")
	provider.add(`HKEY_LOCAL_MACHINE\Soft\Vendor\Key1\B`)
	provider.add(`HKEY_LOCAL_MACHINE\Soft\Vendor\Key2`)

	return New(idx, provider), provider
}

// expandAlong expands from the hive root down the given components and
// returns the node reached.
func expandAlong(t *testing.T, p *Projector, hive string, components ...string) *Node {
	t.Helper()
	node, ok := p.Root(hive)
	require.True(t, ok, "hive %s should be projected", hive)
	for _, want := range components {
		children, err := p.Expand(node)
		require.NoError(t, err)
		var next *Node
		for _, c := range children {
			if c.Name == want {
				next = c
				break
			}
		}
		require.NotNil(t, next, "expected %q under %s", want, node.Path)
		node = next
	}
	return node
}

func TestExpandReachesConfiguredKeys(t *testing.T) {
	p, _ := vendorWorld(t)

	key1 := expandAlong(t, p, "HKEY_LOCAL_MACHINE", "Soft", "Vendor", "Key1")
	assert.Equal(t, Target, key1.Kind)
	assert.Equal(t, `HKEY_LOCAL_MACHINE\Soft\Vendor\Key1`, key1.Path.String())

	key2 := expandAlong(t, p, "HKEY_LOCAL_MACHINE", "Soft", "Vendor", "Key2")
	assert.Equal(t, Target, key2.Kind)
}

func TestExpandPrunesUnconfiguredSiblings(t *testing.T) {
	p, _ := vendorWorld(t)

	vendor := expandAlong(t, p, "HKEY_LOCAL_MACHINE", "Soft", "Vendor")
	children, err := p.Expand(vendor)
	require.NoError(t, err)

	names := make([]string, len(children))
	for i, c := range children {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Key1", "Key2"}, names, "Key3 and Key4 must be pruned")

	// The scaffolding levels prune everything that doesn't lead to a
	// configured key.
	root, _ := p.Root("HKEY_LOCAL_MACHINE")
	top, err := p.Expand(root)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Soft", top[0].Name)
	assert.Equal(t, Scaffold, top[0].Kind)
}

func TestExpandExposesAllChildrenOfTarget(t *testing.T) {
	p, _ := vendorWorld(t)

	key1 := expandAlong(t, p, "HKEY_LOCAL_MACHINE", "Soft", "Vendor", "Key1")
	children, err := p.Expand(key1)
	require.NoError(t, err)

	require.Len(t, children, 2)
	for _, c := range children {
		assert.Equal(t, ExposedChild, c.Kind)
	}
	assert.Equal(t, "A", children[0].Name)
	assert.Equal(t, "B", children[1].Name)
}

func TestExpandCachesChildren(t *testing.T) {
	p, provider := vendorWorld(t)

	vendor := expandAlong(t, p, "HKEY_LOCAL_MACHINE", "Soft", "Vendor")
	first, err := p.Expand(vendor)
	require.NoError(t, err)
	second, err := p.Expand(vendor)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls[keypath.Fold(vendor.Path)],
		"second Expand must not hit the provider")
}

func TestRefreshDiscardsCache(t *testing.T) {
	p, provider := vendorWorld(t)

	vendor := expandAlong(t, p, "HKEY_LOCAL_MACHINE", "Soft", "Vendor")
	_, err := p.Expand(vendor)
	require.NoError(t, err)

	// Key2 vanishes from the store behind our back.
	provider.add(`HKEY_LOCAL_MACHINE\Soft\Vendor`, "Key1", "Key3")

	cached, err := p.Expand(vendor)
	require.NoError(t, err)
	assert.Len(t, cached, 2, "stale view until refreshed")

	p.Refresh(vendor)
	fresh, err := p.Expand(vendor)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, "Key1", fresh[0].Name)
}

func TestMissingConfiguredKeyIsNotAnError(t *testing.T) {
	idx, err := keypath.ParseIndex([]string{`HKLM\A\B\C`})
	require.NoError(t, err)

	provider := newFakeProvider()
	provider.add(`HKEY_LOCAL_MACHINE`, "A")
	provider.add(`HKEY_LOCAL_MACHINE\A`, "B")
	provider.add(`HKEY_LOCAL_MACHINE\A\B`) // C does not exist

	p := New(idx, provider)
	b := expandAlong(t, p, "HKEY_LOCAL_MACHINE", "A", "B")
	children, err := p.Expand(b)
	require.NoError(t, err)
	assert.Empty(t, children)
}

func TestExpandAccessFailure(t *testing.T) {
	idx, err := keypath.ParseIndex([]string{
		`HKLM\Soft\Vendor\Key1`,
		`HKCU\Other\Key`,
	})
	require.NoError(t, err)

	provider := newFakeProvider()
	provider.add(`HKEY_LOCAL_MACHINE`, "Soft")
	provider.failAt(`HKEY_LOCAL_MACHINE\Soft`, errors.New("access is denied"))
	provider.add(`HKEY_CURRENT_USER`, "Other")
	provider.add(`HKEY_CURRENT_USER\Other`, "Key")

	p := New(idx, provider)

	soft := expandAlong(t, p, "HKEY_LOCAL_MACHINE", "Soft")
	children, err := p.Expand(soft)
	assert.Empty(t, children)

	var ae *registry.AccessError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, `HKEY_LOCAL_MACHINE\Soft`, ae.Path.String())

	// The failure is local: the other hive still expands.
	key := expandAlong(t, p, "HKEY_CURRENT_USER", "Other", "Key")
	assert.Equal(t, Target, key.Kind)
}

func TestVanishedKeySurfacesAsAccessError(t *testing.T) {
	p, provider := vendorWorld(t)

	key1 := expandAlong(t, p, "HKEY_LOCAL_MACHINE", "Soft", "Vendor", "Key1")
	delete(provider.children, keypath.Fold(key1.Path))

	children, err := p.Expand(key1)
	assert.Empty(t, children)
	var ae *registry.AccessError
	require.ErrorAs(t, err, &ae)
	assert.ErrorIs(t, ae.Err, registry.ErrKeyNotFound)
}

func TestRootPrunesUnconfiguredHives(t *testing.T) {
	p, _ := vendorWorld(t)

	_, ok := p.Root("HKEY_USERS")
	assert.False(t, ok)

	roots := p.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, "HKEY_LOCAL_MACHINE", roots[0].Name)
	assert.Equal(t, Scaffold, roots[0].Kind)
}

func TestRootExpandsHiveAcronyms(t *testing.T) {
	p, _ := vendorWorld(t)

	root, ok := p.Root("HKLM")
	require.True(t, ok)
	assert.Equal(t, "HKEY_LOCAL_MACHINE", root.Name)
	assert.Equal(t, "HKEY_LOCAL_MACHINE", root.Path.String())

	_, ok = p.Root("")
	assert.False(t, ok)
	_, ok = p.Root(`HKLM\Soft`)
	assert.False(t, ok, "Root takes a single hive component")
}

func TestRootThatIsItselfConfigured(t *testing.T) {
	idx, err := keypath.ParseIndex([]string{`HKEY_CURRENT_CONFIG`})
	require.NoError(t, err)

	provider := newFakeProvider()
	provider.add(`HKEY_CURRENT_CONFIG`, "Software", "System")

	p := New(idx, provider)
	root, ok := p.Root("HKEY_CURRENT_CONFIG")
	require.True(t, ok)
	assert.Equal(t, Target, root.Kind)

	// Every child of a configured hive is exposed.
	children, err := p.Expand(root)
	require.NoError(t, err)
	require.Len(t, children, 2)
	for _, c := range children {
		assert.Equal(t, ExposedChild, c.Kind)
	}
}

func TestExpandedChildOfTargetHasNoVisibleChildren(t *testing.T) {
	p, _ := vendorWorld(t)

	key1 := expandAlong(t, p, "HKEY_LOCAL_MACHINE", "Soft", "Vendor", "Key1")
	children, err := p.Expand(key1)
	require.NoError(t, err)
	a := children[0]
	require.Equal(t, ExposedChild, a.Kind)

	// Grandchildren of a target are outside the projection.
	grandchildren, err := p.Expand(a)
	require.NoError(t, err)
	assert.Empty(t, grandchildren)
}

func TestResolveEditablePassesThroughPath(t *testing.T) {
	p, _ := vendorWorld(t)

	key1 := expandAlong(t, p, "HKEY_LOCAL_MACHINE", "Soft", "Vendor", "Key1")
	assert.Equal(t, key1.Path, p.ResolveEditable(key1))
}

func TestCaseInsensitiveMatching(t *testing.T) {
	idx, err := keypath.ParseIndex([]string{`hklm\soft\VENDOR\key1`})
	require.NoError(t, err)

	provider := newFakeProvider()
	provider.add(`HKEY_LOCAL_MACHINE`, "Soft")
	provider.add(`HKEY_LOCAL_MACHINE\Soft`, "Vendor")
	provider.add(`HKEY_LOCAL_MACHINE\Soft\Vendor`, "KEY1")

	p := New(idx, provider)
	key1 := expandAlong(t, p, "HKEY_LOCAL_MACHINE", "Soft", "Vendor", "KEY1")
	assert.Equal(t, Target, key1.Kind)
	// The real store's spelling wins for display.
	assert.Equal(t, "KEY1", key1.Name)
}
