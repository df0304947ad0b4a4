// Package registry defines the boundary to the underlying key/value store:
// a Provider enumerates keys and reads/writes values at full key paths.
// Implementations adapt the live Windows registry (pkg/registry/winreg) or
// an XML-backed in-memory store (pkg/registry/xmlreg).
package registry

import (
	"fmt"

	"github.com/regscope/regscope/pkg/keypath"
)

// Provider is the namespace and value store behind the projected tree.
// Key enumeration order is whatever the store reports; callers must not
// assume it is sorted.
type Provider interface {
	// ListKeys returns the names of the immediate subkeys of path.
	ListKeys(path keypath.KeyPath) ([]string, error)
	// Exists reports whether the key at path exists.
	Exists(path keypath.KeyPath) (bool, error)

	// Values returns all values of the key at path, in store order.
	Values(path keypath.KeyPath) ([]Value, error)
	// GetValue returns one named value of the key at path.
	GetValue(path keypath.KeyPath, name string) (Value, error)
	// SetValue creates or replaces a named value of the key at path.
	SetValue(path keypath.KeyPath, value Value) error
	// DeleteValue removes a named value from the key at path.
	DeleteValue(path keypath.KeyPath, name string) error
	// CreateKey adds an empty subkey under path. It fails with
	// ErrKeyExists if the subkey is already present.
	CreateKey(path keypath.KeyPath, name string) error
}

// Value is one named datum of a key. Data holds string for the string
// types, uint32 for REG_DWORD, uint64 for REG_QWORD, []string for
// REG_MULTI_SZ and []byte for REG_BINARY.
type Value struct {
	Name string
	Type ValueType
	Data any
}

// AccessError reports that a specific key path could not be enumerated or
// accessed. It is recoverable: sibling branches remain usable.
type AccessError struct {
	Path keypath.KeyPath
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("access %s: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }
