package search

import (
	"strconv"
	"strings"

	"github.com/ardanlabs/blockexplorer/foundation/format"
)

// Kind identifies what a free form search term refers to.
type Kind int

// Set of kinds a term can be classified as.
const (
	KindInvalid Kind = iota
	KindHeight
	KindHash
	KindCommitments
)

var kindNames = [...]string{"invalid", "height", "hash", "commitments"}

// String implements the fmt.Stringer interface.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindInvalid]
	}
	return kindNames[k]
}

// HashLength is the number of hex characters in a block hash, commitment or
// payment reference.
const HashLength = 64

// Term is a classified free form search term.
type Term struct {
	Kind   Kind
	Height uint64
	Values []string
}

// Classify works out what the search term refers to. Digits are a block
// height, a single 64 character hex value is a block hash or an output
// commitment, and a comma separated list of them is a set of commitments.
func Classify(s string) Term {
	s = Normalize(s)
	if s == "" {
		return Term{Kind: KindInvalid}
	}

	if height, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Term{Kind: KindHeight, Height: height}
	}

	var values []string
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimPrefix(strings.TrimSpace(v), "0x")
		if !isHash(v) {
			return Term{Kind: KindInvalid}
		}
		values = append(values, v)
	}

	if len(values) == 1 {
		return Term{Kind: KindHash, Values: values}
	}

	return Term{Kind: KindCommitments, Values: values}
}

func isHash(s string) bool {
	if len(s) != HashLength {
		return false
	}
	_, err := format.FromHex(s)
	return err == nil
}
