package registry

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/regscope/regscope/internal/errx"
)

// ValueType is the registry value type taxonomy, passed through unchanged
// from the underlying store. Numeric values match the Windows API.
type ValueType uint32

const (
	None                     ValueType = 0
	SZ                       ValueType = 1
	ExpandSZ                 ValueType = 2
	Binary                   ValueType = 3
	DWord                    ValueType = 4
	DWordBigEndian           ValueType = 5
	Link                     ValueType = 6
	MultiSZ                  ValueType = 7
	ResourceList             ValueType = 8
	FullResourceDescriptor   ValueType = 9
	ResourceRequirementsList ValueType = 10
	QWord                    ValueType = 11
)

var typeNames = map[ValueType]string{
	None:                     "REG_NONE",
	SZ:                       "REG_SZ",
	ExpandSZ:                 "REG_EXPAND_SZ",
	Binary:                   "REG_BINARY",
	DWord:                    "REG_DWORD",
	DWordBigEndian:           "REG_DWORD_BIG_ENDIAN",
	Link:                     "REG_LINK",
	MultiSZ:                  "REG_MULTI_SZ",
	ResourceList:             "REG_RESOURCE_LIST",
	FullResourceDescriptor:   "REG_FULL_RESOURCE_DESCRIPTOR",
	ResourceRequirementsList: "REG_RESOURCE_REQUIREMENTS_LIST",
	QWord:                    "REG_QWORD",
}

func (t ValueType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("REG_UNKNOWN(%d)", uint32(t))
}

// ParseValueType maps a REG_* name to its ValueType. The *_LITTLE_ENDIAN
// spellings are aliases: on Windows they share the numeric code of their
// base type.
func ParseValueType(name string) (ValueType, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	switch upper {
	case "REG_DWORD_LITTLE_ENDIAN":
		return DWord, nil
	case "REG_QWORD_LITTLE_ENDIAN":
		return QWord, nil
	}
	for t, n := range typeNames {
		if n == upper {
			return t, nil
		}
	}
	return None, errx.With(ErrUnknownType, ": %q", name)
}

// DefaultData returns the zero datum for a value type, used when a new
// value is created without explicit data.
func (t ValueType) DefaultData() (any, error) {
	switch t {
	case SZ, ExpandSZ:
		return "", nil
	case DWord:
		return uint32(0), nil
	case QWord:
		return uint64(0), nil
	case MultiSZ:
		return []string(nil), nil
	case Binary:
		return []byte(nil), nil
	default:
		return nil, errx.With(ErrUnsupportedData, ": no default for %s", t)
	}
}

// ParseData converts user-facing text into the datum for a value type.
func ParseData(t ValueType, text string) (any, error) {
	switch t {
	case SZ, ExpandSZ:
		return text, nil
	case DWord:
		n, err := strconv.ParseUint(text, 0, 32)
		if err != nil {
			return nil, errx.With(ErrUnsupportedData, ": %s: %v", t, err)
		}
		return uint32(n), nil
	case QWord:
		n, err := strconv.ParseUint(text, 0, 64)
		if err != nil {
			return nil, errx.With(ErrUnsupportedData, ": %s: %v", t, err)
		}
		return n, nil
	case MultiSZ:
		if text == "" {
			return []string(nil), nil
		}
		return strings.Split(text, "\n"), nil
	case Binary:
		b, err := hex.DecodeString(text)
		if err != nil {
			return nil, errx.With(ErrUnsupportedData, ": %s: %v", t, err)
		}
		return b, nil
	default:
		return nil, errx.With(ErrUnsupportedData, ": cannot parse %s", t)
	}
}

// FormatData renders a value's datum for display.
func FormatData(v Value) string {
	switch data := v.Data.(type) {
	case nil:
		return ""
	case string:
		return data
	case uint32:
		return fmt.Sprintf("0x%08x (%d)", data, data)
	case uint64:
		return fmt.Sprintf("0x%016x (%d)", data, data)
	case []string:
		return strings.Join(data, " ")
	case []byte:
		return hex.EncodeToString(data)
	default:
		return fmt.Sprintf("%v", data)
	}
}
