// Package tagged decodes the byte array representations the base node emits.
// A byte array arrives either as a plain array of numbers, as a hex string,
// or wrapped in a tagged object of the form {"@@TAGGED@@": [tag, value]}
// where value is itself any of these representations.
package tagged

import (
	"errors"
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Key is the object key used by the node to wrap tagged values.
const Key = "@@TAGGED@@"

// Set of errors returned by Bytes.
var (
	ErrUndefined   = errors.New("undefined")
	ErrUnsupported = errors.New("unsupported type")
)

// Bytes unwraps a generic JSON value produced by encoding/json into the byte
// slice it represents.
func Bytes(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, ErrUndefined

	case []byte:
		return val, nil

	case string:
		if len(val) < 2 || val[:2] != "0x" && val[:2] != "0X" {
			val = "0x" + val
		}
		b, err := hexutil.Decode(val)
		if err != nil {
			return nil, fmt.Errorf("%w: hex: %s", ErrUnsupported, err)
		}
		return b, nil

	case []int:
		b := make([]byte, len(val))
		for i, n := range val {
			if n < 0 || n > math.MaxUint8 {
				return nil, fmt.Errorf("%w: element %d out of range: %d", ErrUnsupported, i, n)
			}
			b[i] = byte(n)
		}
		return b, nil

	case []any:
		b := make([]byte, len(val))
		for i, e := range val {
			n, ok := e.(float64)
			if !ok || n < 0 || n > math.MaxUint8 || n != math.Trunc(n) {
				return nil, fmt.Errorf("%w: element %d: %v", ErrUnsupported, i, e)
			}
			b[i] = byte(n)
		}
		return b, nil

	case map[string]any:
		t, exists := val[Key]
		if !exists {
			return nil, fmt.Errorf("%w: object without %s", ErrUnsupported, Key)
		}
		pair, ok := t.([]any)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("%w: malformed %s value", ErrUnsupported, Key)
		}
		return Bytes(pair[1])
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupported, v)
}
