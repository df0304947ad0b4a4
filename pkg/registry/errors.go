package registry

import "errors"

var (
	ErrKeyNotFound     = errors.New("key not found")
	ErrValueNotFound   = errors.New("value not found")
	ErrKeyExists       = errors.New("key already exists")
	ErrUnknownType     = errors.New("unknown registry value type")
	ErrUnsupportedData = errors.New("unsupported data for value type")
	ErrHiveUnknown     = errors.New("unknown registry hive")
)
