// Package xmlreg implements registry.Provider on top of an in-memory tree
// loaded from an XML document. It backs the --mock-registry mode and lets
// every other package be exercised without touching a live registry.
//
// Document shape:
//
//	<registry>
//	  <key name="HKEY_LOCAL_MACHINE">
//	    <key name="SOFTWARE">
//	      <value name="version" data="1" type="REG_DWORD" />
//	    </key>
//	  </key>
//	</registry>
package xmlreg

import (
	"encoding/xml"
	"os"
	"strings"

	"github.com/regscope/regscope/internal/errx"
	"github.com/regscope/regscope/pkg/keypath"
	"github.com/regscope/regscope/pkg/registry"
)

type xmlKey struct {
	Name   string     `xml:"name,attr"`
	Keys   []xmlKey   `xml:"key"`
	Values []xmlValue `xml:"value"`
}

type xmlValue struct {
	Name string `xml:"name,attr"`
	Data string `xml:"data,attr"`
	Type string `xml:"type,attr"`
}

type xmlDoc struct {
	XMLName xml.Name `xml:"registry"`
	Keys    []xmlKey `xml:"key"`
}

// node is one key of the in-memory tree. Subkeys and values keep document
// order; lookups are case-insensitive.
type node struct {
	name    string
	subkeys []*node
	values  []registry.Value
}

func (n *node) child(name string) *node {
	for _, sk := range n.subkeys {
		if strings.EqualFold(sk.name, name) {
			return sk
		}
	}
	return nil
}

func (n *node) valueIndex(name string) int {
	for i, v := range n.values {
		if strings.EqualFold(v.Name, name) {
			return i
		}
	}
	return -1
}

// Store is a mutable, in-memory registry.Provider.
type Store struct {
	root *node
}

// Load reads an XML registry document from a file.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errx.Wrap(ErrReadDocument, err)
	}
	return Parse(data)
}

// Parse builds a Store from XML bytes.
func Parse(data []byte) (*Store, error) {
	var doc xmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errx.Wrap(ErrParseDocument, err)
	}
	root := &node{}
	for _, k := range doc.Keys {
		sk, err := buildNode(k)
		if err != nil {
			return nil, err
		}
		root.subkeys = append(root.subkeys, sk)
	}
	return &Store{root: root}, nil
}

func buildNode(k xmlKey) (*node, error) {
	n := &node{name: k.Name}
	for _, v := range k.Values {
		t, err := registry.ParseValueType(v.Type)
		if err != nil {
			return nil, errx.With(err, " (key %q, value %q)", k.Name, v.Name)
		}
		data, err := registry.ParseData(t, v.Data)
		if err != nil {
			return nil, errx.With(err, " (key %q, value %q)", k.Name, v.Name)
		}
		n.values = append(n.values, registry.Value{Name: v.Name, Type: t, Data: data})
	}
	for _, sk := range k.Keys {
		child, err := buildNode(sk)
		if err != nil {
			return nil, err
		}
		n.subkeys = append(n.subkeys, child)
	}
	return n, nil
}

func (s *Store) find(path keypath.KeyPath) (*node, error) {
	n := s.root
	for _, part := range path.Components() {
		n = n.child(part)
		if n == nil {
			return nil, errx.With(registry.ErrKeyNotFound, ": %s", path)
		}
	}
	return n, nil
}

func (s *Store) ListKeys(path keypath.KeyPath) ([]string, error) {
	n, err := s.find(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(n.subkeys))
	for i, sk := range n.subkeys {
		names[i] = sk.name
	}
	return names, nil
}

func (s *Store) Exists(path keypath.KeyPath) (bool, error) {
	_, err := s.find(path)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (s *Store) Values(path keypath.KeyPath) ([]registry.Value, error) {
	n, err := s.find(path)
	if err != nil {
		return nil, err
	}
	out := make([]registry.Value, len(n.values))
	copy(out, n.values)
	return out, nil
}

func (s *Store) GetValue(path keypath.KeyPath, name string) (registry.Value, error) {
	n, err := s.find(path)
	if err != nil {
		return registry.Value{}, err
	}
	i := n.valueIndex(name)
	if i < 0 {
		return registry.Value{}, errx.With(registry.ErrValueNotFound, ": %q in %s", name, path)
	}
	return n.values[i], nil
}

func (s *Store) SetValue(path keypath.KeyPath, value registry.Value) error {
	n, err := s.find(path)
	if err != nil {
		return err
	}
	if i := n.valueIndex(value.Name); i >= 0 {
		n.values[i] = value
		return nil
	}
	n.values = append(n.values, value)
	return nil
}

func (s *Store) DeleteValue(path keypath.KeyPath, name string) error {
	n, err := s.find(path)
	if err != nil {
		return err
	}
	i := n.valueIndex(name)
	if i < 0 {
		return errx.With(registry.ErrValueNotFound, ": %q in %s", name, path)
	}
	n.values = append(n.values[:i], n.values[i+1:]...)
	return nil
}

func (s *Store) CreateKey(path keypath.KeyPath, name string) error {
	n, err := s.find(path)
	if err != nil {
		return err
	}
	if n.child(name) != nil {
		return errx.With(registry.ErrKeyExists, ": %s", path.Join(name))
	}
	n.subkeys = append(n.subkeys, &node{name: name})
	return nil
}
