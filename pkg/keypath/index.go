package keypath

import (
	"sort"
	"strings"
)

// Index is a prefix tree over the configured allow-list of key paths. It
// answers the two queries the projector needs at every level of the real
// registry: is this exact path configured, and which next components lead
// toward a configured path. The Index is built once and read-only after.
type Index struct {
	root *indexNode
}

type indexNode struct {
	// name keeps the first-seen spelling of the component for display.
	name     string
	children map[string]*indexNode
	target   bool
}

func newIndexNode(name string) *indexNode {
	return &indexNode{name: name, children: make(map[string]*indexNode)}
}

// NewIndex builds an Index from the given paths. Contained paths are
// reduced away first (a path under another configured path adds nothing),
// and duplicates collapse. It returns ErrNoPaths for an empty list.
func NewIndex(paths []KeyPath) (*Index, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}
	idx := &Index{root: newIndexNode("")}
	for _, p := range Reduce(paths) {
		node := idx.root
		for _, part := range p.parts {
			key := strings.ToLower(part)
			child, ok := node.children[key]
			if !ok {
				child = newIndexNode(part)
				node.children[key] = child
			}
			node = child
		}
		node.target = true
	}
	return idx, nil
}

// ParseIndex is a convenience that parses raw path strings and builds the
// Index from them. A malformed path aborts the build.
func ParseIndex(raw []string) (*Index, error) {
	paths := make([]KeyPath, 0, len(raw))
	for _, r := range raw {
		p, err := Parse(r)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return NewIndex(paths)
}

// lookup walks the trie along the path, returning nil if the path leaves
// the indexed prefix space.
func (idx *Index) lookup(path KeyPath) *indexNode {
	node := idx.root
	for _, part := range path.parts {
		child, ok := node.children[strings.ToLower(part)]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// IsTarget reports whether the exact path is a configured key.
func (idx *Index) IsTarget(path KeyPath) bool {
	node := idx.lookup(path)
	return node != nil && node.target
}

// LeadsToward reports whether the given child component under path is a
// prefix of (or equal to) some configured key.
func (idx *Index) LeadsToward(path KeyPath, child string) bool {
	node := idx.lookup(path)
	if node == nil {
		return false
	}
	_, ok := node.children[strings.ToLower(child)]
	return ok
}

// Next returns the components directly under path that lead toward at
// least one configured key, in sorted order.
func (idx *Index) Next(path KeyPath) []string {
	node := idx.lookup(path)
	if node == nil {
		return nil
	}
	out := make([]string, 0, len(node.children))
	for _, child := range node.children {
		out = append(out, child.name)
	}
	sort.Strings(out)
	return out
}

// Hives returns the root components present in the index, sorted.
func (idx *Index) Hives() []string {
	return idx.Next(KeyPath{})
}

// Contains reports whether the path is inside the projected tree: a
// configured key, an ancestor of one, or an immediate child of one.
func (idx *Index) Contains(path KeyPath) bool {
	if idx.lookup(path) != nil {
		return true
	}
	return idx.IsTarget(path.Parent())
}
