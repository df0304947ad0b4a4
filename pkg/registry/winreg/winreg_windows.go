//go:build windows

// Package winreg adapts the live Windows registry to registry.Provider
// via golang.org/x/sys/windows/registry.
package winreg

import (
	"errors"
	"strings"

	winregistry "golang.org/x/sys/windows/registry"

	"github.com/regscope/regscope/internal/errx"
	"github.com/regscope/regscope/pkg/keypath"
	"github.com/regscope/regscope/pkg/registry"
)

var hives = map[string]winregistry.Key{
	"HKEY_CLASSES_ROOT":   winregistry.CLASSES_ROOT,
	"HKEY_CURRENT_USER":   winregistry.CURRENT_USER,
	"HKEY_LOCAL_MACHINE":  winregistry.LOCAL_MACHINE,
	"HKEY_USERS":          winregistry.USERS,
	"HKEY_CURRENT_CONFIG": winregistry.CURRENT_CONFIG,
}

// Store is a registry.Provider over the live Windows registry.
type Store struct{}

func New() *Store { return &Store{} }

// open resolves a key path to an open handle. The caller must Close it.
func (s *Store) open(path keypath.KeyPath, access uint32) (winregistry.Key, error) {
	parts := path.Components()
	if len(parts) == 0 {
		return 0, registry.ErrKeyNotFound
	}
	hive, ok := hives[strings.ToUpper(parts[0])]
	if !ok {
		return 0, errx.With(registry.ErrHiveUnknown, ": %q", parts[0])
	}
	sub := strings.Join(parts[1:], `\`)
	k, err := winregistry.OpenKey(hive, sub, access)
	if err != nil {
		if errors.Is(err, winregistry.ErrNotExist) {
			return 0, errx.With(registry.ErrKeyNotFound, ": %s", path)
		}
		return 0, &registry.AccessError{Path: path, Err: err}
	}
	return k, nil
}

func (s *Store) ListKeys(path keypath.KeyPath) ([]string, error) {
	k, err := s.open(path, winregistry.ENUMERATE_SUB_KEYS|winregistry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer k.Close()
	names, err := k.ReadSubKeyNames(-1)
	if err != nil {
		return nil, &registry.AccessError{Path: path, Err: err}
	}
	return names, nil
}

func (s *Store) Exists(path keypath.KeyPath) (bool, error) {
	k, err := s.open(path, winregistry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	k.Close()
	return true, nil
}

func (s *Store) Values(path keypath.KeyPath) ([]registry.Value, error) {
	k, err := s.open(path, winregistry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer k.Close()
	names, err := k.ReadValueNames(-1)
	if err != nil {
		return nil, &registry.AccessError{Path: path, Err: err}
	}
	values := make([]registry.Value, 0, len(names))
	for _, name := range names {
		v, err := readValue(k, name)
		if err != nil {
			return nil, &registry.AccessError{Path: path, Err: err}
		}
		values = append(values, v)
	}
	return values, nil
}

func (s *Store) GetValue(path keypath.KeyPath, name string) (registry.Value, error) {
	k, err := s.open(path, winregistry.QUERY_VALUE)
	if err != nil {
		return registry.Value{}, err
	}
	defer k.Close()
	v, err := readValue(k, name)
	if err != nil {
		if errors.Is(err, winregistry.ErrNotExist) {
			return registry.Value{}, errx.With(registry.ErrValueNotFound, ": %q in %s", name, path)
		}
		return registry.Value{}, &registry.AccessError{Path: path, Err: err}
	}
	return v, nil
}

func readValue(k winregistry.Key, name string) (registry.Value, error) {
	// A nil buffer still yields the value type and size; the data itself
	// is read through the typed getters below.
	size, vt, err := k.GetValue(name, nil)
	if err != nil && !errors.Is(err, winregistry.ErrShortBuffer) {
		return registry.Value{}, err
	}
	v := registry.Value{Name: name, Type: registry.ValueType(vt)}
	switch v.Type {
	case registry.SZ, registry.ExpandSZ:
		v.Data, _, err = k.GetStringValue(name)
	case registry.DWord:
		var n uint64
		n, _, err = k.GetIntegerValue(name)
		v.Data = uint32(n)
	case registry.QWord:
		v.Data, _, err = k.GetIntegerValue(name)
	case registry.MultiSZ:
		v.Data, _, err = k.GetStringsValue(name)
	case registry.Binary:
		v.Data, _, err = k.GetBinaryValue(name)
	default:
		// REG_NONE, resource descriptors and anything else read as raw
		// bytes rather than failing the whole listing.
		buf := make([]byte, size)
		_, _, err = k.GetValue(name, buf)
		v.Data = buf
	}
	if err != nil {
		return registry.Value{}, err
	}
	return v, nil
}

func (s *Store) SetValue(path keypath.KeyPath, value registry.Value) error {
	k, err := s.open(path, winregistry.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()
	switch value.Type {
	case registry.SZ:
		return k.SetStringValue(value.Name, value.Data.(string))
	case registry.ExpandSZ:
		return k.SetExpandStringValue(value.Name, value.Data.(string))
	case registry.DWord:
		return k.SetDWordValue(value.Name, value.Data.(uint32))
	case registry.QWord:
		return k.SetQWordValue(value.Name, value.Data.(uint64))
	case registry.MultiSZ:
		return k.SetStringsValue(value.Name, value.Data.([]string))
	case registry.Binary:
		return k.SetBinaryValue(value.Name, value.Data.([]byte))
	default:
		return errx.With(registry.ErrUnsupportedData, ": cannot write %s", value.Type)
	}
}

func (s *Store) DeleteValue(path keypath.KeyPath, name string) error {
	k, err := s.open(path, winregistry.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()
	if err := k.DeleteValue(name); err != nil {
		if errors.Is(err, winregistry.ErrNotExist) {
			return errx.With(registry.ErrValueNotFound, ": %q in %s", name, path)
		}
		return &registry.AccessError{Path: path, Err: err}
	}
	return nil
}

func (s *Store) CreateKey(path keypath.KeyPath, name string) error {
	k, err := s.open(path, winregistry.CREATE_SUB_KEY)
	if err != nil {
		return err
	}
	defer k.Close()
	sub, existed, err := winregistry.CreateKey(k, name, winregistry.QUERY_VALUE)
	if err != nil {
		return &registry.AccessError{Path: path.Join(name), Err: err}
	}
	sub.Close()
	if existed {
		return errx.With(registry.ErrKeyExists, ": %s", path.Join(name))
	}
	return nil
}
