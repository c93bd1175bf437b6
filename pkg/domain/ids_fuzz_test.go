//go:build go1.18

package domain

import (
	"testing"
	"unicode/utf8"
)

// FuzzParseIdentity checks that parsing never panics and that accepted
// identities round-trip unchanged.
func FuzzParseIdentity(f *testing.F) {
	f.Add("")
	f.Add("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	f.Add(string(ZeroIdentity))
	f.Add("'; DROP TABLE wills;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseIdentity(input)
		if err != nil {
			return
		}
		if id.IsZero() {
			t.Error("zero identity was accepted")
		}
		if !utf8.ValidString(input) {
			t.Error("non-UTF8 input was accepted")
		}
		roundTrip, err := ParseIdentity(id.String())
		if err != nil || roundTrip != id {
			t.Errorf("accepted identity failed round-trip: %v", err)
		}
	})
}
