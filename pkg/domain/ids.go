package domain

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	dErrors "testament/pkg/domain-errors"
)

// Identity is an opaque party key: a will owner, beneficiary, editor or viewer.
// Invariant: non-empty, printable, bounded, and never the zero address.
//
// Usage: construct via ParseIdentity at trust boundaries; direct casting
// bypasses validation and is reserved for tests and stores.
type Identity string

// ZeroIdentity is the all-zero account address. It never names a party.
const ZeroIdentity Identity = "0x0000000000000000000000000000000000000000"

const maxIdentityLength = 128

// ParseIdentity constructs an Identity from external input.
//
// Errors: returns CodeInvalidInput for empty, oversized, non-printable or zero
// identities.
func ParseIdentity(s string) (Identity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "identity cannot be empty")
	}
	if len(s) > maxIdentityLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, "identity too long")
	}
	if !utf8.ValidString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "identity must be valid UTF-8")
	}
	for _, r := range s {
		if !unicode.IsPrint(r) || unicode.IsSpace(r) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "identity contains invalid characters")
		}
	}
	id := Identity(s)
	if id.IsZero() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "identity cannot be the zero address")
	}
	return id, nil
}

// IsZero reports whether the identity is unset or the zero address.
func (i Identity) IsZero() bool {
	return i == "" || strings.EqualFold(string(i), string(ZeroIdentity))
}

func (i Identity) String() string {
	return string(i)
}

// NationalID is the key used against the death and probate registries.
// Invariant: 6-20 uppercase alphanumeric characters.
type NationalID string

var nationalIDPattern = regexp.MustCompile(`^[A-Z0-9]{6,20}$`)

// ParseNationalID normalizes to upper case and validates the format.
func ParseNationalID(s string) (NationalID, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "national id cannot be empty")
	}
	if !nationalIDPattern.MatchString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "national id must be 6-20 alphanumeric characters")
	}
	return NationalID(s), nil
}

func (n NationalID) String() string {
	return string(n)
}

// IsNil reports whether the national id is empty.
func (n NationalID) IsNil() bool {
	return n == ""
}

// AssetID identifies a physical asset. Ids are allocated sequentially from 1.
type AssetID uint64

// ParseAssetID parses a positive decimal asset id.
func ParseAssetID(s string) (AssetID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || v == 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "asset id must be a positive integer")
	}
	return AssetID(v), nil
}

func (a AssetID) String() string {
	return strconv.FormatUint(uint64(a), 10)
}
