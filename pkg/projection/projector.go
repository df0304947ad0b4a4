package projection

import (
	"strings"

	"github.com/regscope/regscope/pkg/keypath"
	"github.com/regscope/regscope/pkg/registry"
)

// Projector walks the real registry lazily, consulting the allow-list
// index at each level to decide which children to expose. It is not safe
// for concurrent use; expansion is driven synchronously by the consumer.
type Projector struct {
	idx      *keypath.Index
	provider registry.Provider

	// children caches expansion results per folded full path. Entries
	// live until Refresh; there is no automatic invalidation.
	children map[string][]*Node
}

// New builds a Projector over an immutable index and a namespace provider.
func New(idx *keypath.Index, provider registry.Provider) *Projector {
	return &Projector{
		idx:      idx,
		provider: provider,
		children: make(map[string][]*Node),
	}
}

// Root returns the projected node for a hive, or false if the allow-list
// has no entries under it (the hive is fully pruned). Acronyms like HKLM
// are accepted and expanded.
func (p *Projector) Root(hive string) (*Node, bool) {
	path, err := keypath.Parse(hive)
	if err != nil || path.Len() != 1 {
		return nil, false
	}
	name := path.Hive()
	if !p.idx.LeadsToward(keypath.KeyPath{}, name) {
		return nil, false
	}
	kind := Scaffold
	if p.idx.IsTarget(path) {
		kind = Target
	}
	return &Node{Name: name, Path: path, Kind: kind}, true
}

// Roots returns a projected node per hive present in the allow-list,
// in sorted hive order.
func (p *Projector) Roots() []*Node {
	hives := p.idx.Hives()
	roots := make([]*Node, 0, len(hives))
	for _, hive := range hives {
		if n, ok := p.Root(hive); ok {
			roots = append(roots, n)
		}
	}
	return roots
}

// Expand returns the visible children of a node, enumerating the real
// registry at the node's path on first call and serving the cached slice
// afterwards. Sibling order follows the provider's enumeration order.
//
// If enumeration fails the node yields no children and the failure is
// returned as a *registry.AccessError carrying the offending path; the
// rest of the tree stays usable. A configured key that is missing from
// the real registry is not an error: it is simply never enumerated.
func (p *Projector) Expand(node *Node) ([]*Node, error) {
	key := keypath.Fold(node.Path)
	if kids, ok := p.children[key]; ok {
		return kids, nil
	}

	names, err := p.provider.ListKeys(node.Path)
	if err != nil {
		return nil, asAccessError(node.Path, err)
	}

	kids := make([]*Node, 0, len(names))
	for _, name := range names {
		childPath := node.Path.Join(name)
		switch {
		case p.idx.IsTarget(childPath):
			kids = append(kids, &Node{Name: name, Path: childPath, Kind: Target})
		case p.idx.LeadsToward(node.Path, name):
			kids = append(kids, &Node{Name: name, Path: childPath, Kind: Scaffold})
		case node.Kind == Target:
			kids = append(kids, &Node{Name: name, Path: childPath, Kind: ExposedChild})
		}
	}
	p.children[key] = kids
	return kids, nil
}

// Refresh discards the cached children of a node and of everything below
// it. The next Expand re-enumerates the store.
func (p *Projector) Refresh(node *Node) {
	key := keypath.Fold(node.Path)
	delete(p.children, key)
	prefix := key + keypath.Separator
	for k := range p.children {
		if strings.HasPrefix(k, prefix) {
			delete(p.children, k)
		}
	}
}

// ResolveEditable returns the full key path behind a node, for the edit
// dispatch to read and write through the store. The projector itself
// never touches values.
func (p *Projector) ResolveEditable(node *Node) keypath.KeyPath {
	return node.Path
}

// asAccessError wraps provider failures so every expansion failure
// surfaces uniformly with the offending path attached.
func asAccessError(path keypath.KeyPath, err error) *registry.AccessError {
	if ae, ok := err.(*registry.AccessError); ok {
		return ae
	}
	return &registry.AccessError{Path: path, Err: err}
}
