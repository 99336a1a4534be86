package domain

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidParcel means the input could not be normalized to a 10-digit BBL.
var ErrInvalidParcel = errors.New("invalid parcel identifier")

// ErrParcelNotFound means the primary property record lookup returned nothing
// for a syntactically valid BBL.
var ErrParcelNotFound = errors.New("parcel not found")

// ParcelID is a canonical NYC BBL: 1-digit borough + 5-digit block +
// 4-digit lot, always exactly 10 digits.
type ParcelID string

// PadParcel normalizes a free-form identifier to a ParcelID. Non-digits are
// stripped, then the result is truncated to 10 digits or left-padded with
// zeros. Inputs with no digits at all are rejected.
func PadParcel(raw string) (ParcelID, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return "", ErrInvalidParcel
	}
	if len(digits) >= 10 {
		return ParcelID(digits[:10]), nil
	}
	return ParcelID(strings.Repeat("0", 10-len(digits)) + digits), nil
}

func (p ParcelID) String() string { return string(p) }

// Borough returns the 1-digit borough code.
func (p ParcelID) Borough() string { return string(p[:1]) }

// Block returns the block with leading zeros stripped, as several source
// datasets index block/lot without padding.
func (p ParcelID) Block() string { return strings.TrimLeft(string(p[1:6]), "0") }

// Lot returns the lot with leading zeros stripped.
func (p ParcelID) Lot() string { return strings.TrimLeft(string(p[6:10]), "0") }

// BlockNumber returns the block as an integer for datasets that store it
// numerically. Zero when the block digits are all zeros.
func (p ParcelID) BlockNumber() int {
	n, _ := strconv.Atoi(p.Block())
	return n
}

// LotNumber returns the lot as an integer.
func (p ParcelID) LotNumber() int {
	n, _ := strconv.Atoi(p.Lot())
	return n
}
