package tagged_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ardanlabs/blockexplorer/foundation/tagged"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Bytes(t *testing.T) {
	type table struct {
		name string
		json string
		exp  []byte
		err  error
	}

	tt := []table{
		{name: "array", json: `[1,2,255]`, exp: []byte{1, 2, 255}},
		{name: "empty", json: `[]`, exp: []byte{}},
		{name: "hex", json: `"0aff"`, exp: []byte{0x0a, 0xff}},
		{name: "prefixed", json: `"0x0aff"`, exp: []byte{0x0a, 0xff}},
		{name: "tagged", json: `{"@@TAGGED@@":["PublicKey",[7,8]]}`, exp: []byte{7, 8}},
		{name: "null", json: `null`, err: tagged.ErrUndefined},
		{name: "number", json: `12`, err: tagged.ErrUnsupported},
		{name: "fraction", json: `[1.5]`, err: tagged.ErrUnsupported},
		{name: "bad tag", json: `{"@@TAGGED@@":["PublicKey"]}`, err: tagged.ErrUnsupported},
		{name: "bad hex", json: `"xyz"`, err: tagged.ErrUnsupported},
	}

	t.Log("Given the need to unwrap node byte arrays.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				var v any
				if err := json.Unmarshal([]byte(tst.json), &v); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to parse the input: %v", failed, testID, err)
				}

				got, err := tagged.Bytes(v)
				if tst.err != nil {
					if !errors.Is(err, tst.err) {
						t.Fatalf("\t%s\tTest %d:\tShould fail with %v, got %v.", failed, testID, tst.err, err)
					}
					t.Logf("\t%s\tTest %d:\tShould fail with %v.", success, testID, tst.err)
					return
				}

				if err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould unwrap the value: %v", failed, testID, err)
				}
				if !bytes.Equal(got, tst.exp) {
					t.Logf("\t%s\tTest %d:\tgot: %x", failed, testID, got)
					t.Logf("\t%s\tTest %d:\texp: %x", failed, testID, tst.exp)
					t.Fatalf("\t%s\tTest %d:\tShould unwrap the right bytes.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould unwrap the right bytes.", success, testID)
			}

			t.Run(tst.name, f)
		}
	}
}
