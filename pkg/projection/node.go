// Package projection computes the filtered registry tree: the minimal tree
// containing the configured keys, their ancestors as navigation scaffolding,
// and the immediate children of each configured key. Everything else in the
// registry is pruned. The real namespace is walked lazily, one level per
// Expand call.
package projection

import "github.com/regscope/regscope/pkg/keypath"

// Kind says why a node is visible in the projected tree. It is a closed
// set: rendering and edit eligibility switch over exactly these cases.
type Kind int

const (
	// Scaffold is a non-configured ancestor, shown only so a deeper
	// configured key stays reachable.
	Scaffold Kind = iota
	// Target is a key whose full path matches a configured key path.
	Target
	// ExposedChild is an immediate child of a Target, shown unfiltered
	// for inspection and editing.
	ExposedChild
)

func (k Kind) String() string {
	switch k {
	case Scaffold:
		return "scaffold"
	case Target:
		return "target"
	case ExposedChild:
		return "exposed"
	default:
		return "unknown"
	}
}

// Node is one visible key of the projected tree. Children are not computed
// until the node is expanded; the projector caches them per path.
type Node struct {
	// Name is the display label, a single path component.
	Name string
	// Path is the full key path, used for store reads and writes.
	Path keypath.KeyPath
	// Kind says why the node is visible.
	Kind Kind
}

// Editable reports whether values under this node may be shown and edited:
// configured keys and their exposed children, not scaffolding.
func (n *Node) Editable() bool {
	return n.Kind == Target || n.Kind == ExposedChild
}
