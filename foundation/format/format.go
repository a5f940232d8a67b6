// Package format provides the display helpers used to render node data.
// None of these functions panic on malformed input.
package format

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/ardanlabs/blockexplorer/foundation/tagged"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Sentinel strings returned by HexString for values it can't render.
const (
	Undefined   = "undefined"
	Unsupported = "Unsupported type"
)

// Default prefix and suffix lengths used by Shorten.
const (
	ShortPrefix = 8
	ShortSuffix = 8
)

// ToHex converts the byte slice into a lower case hex string without a
// 0x prefix.
func ToHex(b []byte) string {
	return common.Bytes2Hex(b)
}

// FromHex converts a hex string, with or without a 0x prefix, back into the
// bytes it represents.
func FromHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hexutil.Decode("0x" + s)
}

// HexString renders any of the byte array representations the node emits as
// hex. A nil value renders as "undefined" and anything that is not a byte
// array renders as "Unsupported type".
func HexString(v any) string {
	b, err := tagged.Bytes(v)
	switch {
	case errors.Is(err, tagged.ErrUndefined):
		return Undefined
	case err != nil:
		return Unsupported
	}

	return ToHex(b)
}

// Shorten returns the string using the default prefix and suffix lengths.
func Shorten(s string) string {
	return ShortenN(s, ShortPrefix, ShortSuffix)
}

// ShortenN returns the first start characters of s, followed by "...", followed
// by the last end characters of s.
func ShortenN(s string, start int, end int) string {
	r := []rune(s)
	start = max(0, min(start, len(r)))
	end = max(0, min(end, len(r)))

	return string(r[:start]) + "..." + string(r[len(r)-end:])
}

// Timestamp formats unix seconds as YYYY-MM-DD HH:MM:SS in local time.
func Timestamp(unix uint64) string {
	return TimestampIn(unix, time.Local)
}

// TimestampIn formats unix seconds as YYYY-MM-DD HH:MM:SS in the
// specified location.
func TimestampIn(unix uint64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(int64(unix), 0).In(loc).Format(time.DateTime)
}

// hashUnits are the magnitudes applied by Hash, each 1000 times the last.
var hashUnits = []string{"H", "KH", "MH", "GH", "TH", "PH"}

// Hash scales a hash rate into its display magnitude using one decimal.
func Hash(rate float64) string {
	return HashN(rate, 1)
}

// HashN scales a hash rate into its display magnitude using the specified
// number of decimals.
func HashN(rate float64, decimals int) string {
	var unit int
	for rate >= 1000 && unit < len(hashUnits)-1 {
		rate /= 1000
		unit++
	}

	return strconv.FormatFloat(rate, 'f', max(decimals, 0), 64) + " " + hashUnits[unit]
}

// Proof of work algorithm codes as reported in block headers.
const (
	PowMergeMinedRandomX = "0"
	PowSha3x             = "1"
	PowRandomX           = "2"
)

var powLabels = map[string]string{
	PowMergeMinedRandomX: "RandomX (Merge Mined)",
	PowSha3x:             "SHA3x",
	PowRandomX:           "RandomX",
}

// Pow returns the display label for the proof of work algorithm code.
func Pow(code string) string {
	label, exists := powLabels[strings.TrimSpace(code)]
	if !exists {
		return "Unknown"
	}
	return label
}

// PowCode returns the display label for a numeric proof of work algorithm.
func PowCode(code uint64) string {
	return Pow(strconv.FormatUint(code, 10))
}
