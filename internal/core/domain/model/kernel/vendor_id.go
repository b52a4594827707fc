package kernel

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"vendorhub/internal/pkg/errs"
)

// VendorIDMaxLength bounds identifiers issued by the auth provider.
const VendorIDMaxLength = 128

// VendorID is the authenticated identity of a vendor. Identifiers come from
// the external auth provider and are opaque strings, not UUIDs.
type VendorID struct {
	value string
}

// NewVendorID trims and validates a vendor identifier.
func NewVendorID(value string) (VendorID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return VendorID{}, errs.NewValueIsRequiredError("vendorId")
	}
	if n := utf8.RuneCountInString(value); n > VendorIDMaxLength {
		return VendorID{}, errs.NewValueIsOutOfRangeErrorWithCause("vendorId", n, 1, VendorIDMaxLength,
			fmt.Errorf("vendor id is %d characters long", n))
	}
	return VendorID{value: value}, nil
}

// MustNewVendorID panics on an invalid identifier. Intended for tests and constants.
func MustNewVendorID(value string) VendorID {
	id, err := NewVendorID(value)
	if err != nil {
		panic(err)
	}
	return id
}

func (v VendorID) String() string {
	return v.value
}

func (v VendorID) IsEqual(other VendorID) bool {
	return v.value == other.value
}

// Validate rejects the zero value.
func (v VendorID) Validate() error {
	if v.value == "" {
		return errs.NewValueIsRequiredError("vendorId")
	}
	return nil
}
