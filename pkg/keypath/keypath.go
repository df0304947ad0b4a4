// Package keypath models registry key paths and the allow-list index used
// to project a filtered view of the registry tree.
package keypath

import (
	"strings"
)

// Separator is the canonical separator in rendered key paths. Parsing also
// accepts forward slashes.
const Separator = `\`

// hiveAliases maps common hive acronyms to their full names.
var hiveAliases = map[string]string{
	"HKCR": "HKEY_CLASSES_ROOT",
	"HKCU": "HKEY_CURRENT_USER",
	"HKLM": "HKEY_LOCAL_MACHINE",
	"HKU":  "HKEY_USERS",
	"HKCC": "HKEY_CURRENT_CONFIG",
}

// KeyPath is an ordered sequence of key components, e.g.
// ["HKEY_LOCAL_MACHINE", "Software", "Vendor"]. Identity is the component
// sequence compared case-insensitively. A KeyPath is immutable; methods
// that derive related paths return copies.
type KeyPath struct {
	parts []string
}

// Parse splits a raw path on backslashes or forward slashes, drops empty
// components and expands a leading hive acronym. It returns ErrEmptyPath
// if the input contains no components at all.
func Parse(raw string) (KeyPath, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\\' || r == '/'
	})
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			parts = append(parts, f)
		}
	}
	if len(parts) == 0 {
		return KeyPath{}, ErrEmptyPath
	}
	if full, ok := hiveAliases[strings.ToUpper(parts[0])]; ok {
		parts[0] = full
	}
	return KeyPath{parts: parts}, nil
}

// MustParse is Parse for static inputs; it panics on malformed paths.
func MustParse(raw string) KeyPath {
	kp, err := Parse(raw)
	if err != nil {
		panic("keypath: " + err.Error() + ": " + raw)
	}
	return kp
}

// String renders the path with backslash separators.
func (k KeyPath) String() string {
	return strings.Join(k.parts, Separator)
}

// Components returns a copy of the component sequence.
func (k KeyPath) Components() []string {
	out := make([]string, len(k.parts))
	copy(out, k.parts)
	return out
}

// Len returns the number of components.
func (k KeyPath) Len() int { return len(k.parts) }

// IsZero reports whether the path has no components.
func (k KeyPath) IsZero() bool { return len(k.parts) == 0 }

// Base returns the last component, or "" for a zero path.
func (k KeyPath) Base() string {
	if len(k.parts) == 0 {
		return ""
	}
	return k.parts[len(k.parts)-1]
}

// Hive returns the first component, or "" for a zero path.
func (k KeyPath) Hive() string {
	if len(k.parts) == 0 {
		return ""
	}
	return k.parts[0]
}

// Parent returns the path without its last component.
func (k KeyPath) Parent() KeyPath {
	if len(k.parts) <= 1 {
		return KeyPath{}
	}
	parts := make([]string, len(k.parts)-1)
	copy(parts, k.parts[:len(k.parts)-1])
	return KeyPath{parts: parts}
}

// Join returns the path extended by one child component.
func (k KeyPath) Join(name string) KeyPath {
	parts := make([]string, len(k.parts)+1)
	copy(parts, k.parts)
	parts[len(k.parts)] = name
	return KeyPath{parts: parts}
}

// Equal compares two paths component-wise, case-insensitively.
func (k KeyPath) Equal(other KeyPath) bool {
	if len(k.parts) != len(other.parts) {
		return false
	}
	for i := range k.parts {
		if !strings.EqualFold(k.parts[i], other.parts[i]) {
			return false
		}
	}
	return true
}

// ContainsOrEqual reports whether other is equal to k or lies underneath it.
func (k KeyPath) ContainsOrEqual(other KeyPath) bool {
	if len(other.parts) < len(k.parts) {
		return false
	}
	for i := range k.parts {
		if !strings.EqualFold(k.parts[i], other.parts[i]) {
			return false
		}
	}
	return true
}

// fold returns the case-folded form used as a lookup key.
func (k KeyPath) fold() string {
	return strings.ToLower(k.String())
}

// Fold returns a canonical case-insensitive string form of the path,
// suitable as a map key.
func Fold(k KeyPath) string { return k.fold() }
