// SPDX-FileCopyrightText: 2026 The modern-coapp Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package coapp

import (
	"encoding/json"
	"fmt"
)

// OptionNumber identifies an option's meaning. Numbers are registered
// externally; this package consumes and produces them as opaque integers.
// The wire encoding bounds them below 2^32.
type OptionNumber uint32

// Registered option numbers. No behavior is attached to any of them here.
const (
	IfMatch       OptionNumber = 1
	URIHost       OptionNumber = 3
	ETag          OptionNumber = 4
	IfNoneMatch   OptionNumber = 5
	Observe       OptionNumber = 6
	URIPort       OptionNumber = 7
	LocationPath  OptionNumber = 8
	URIPath       OptionNumber = 11
	ContentFormat OptionNumber = 12
	MaxAge        OptionNumber = 14
	URIQuery      OptionNumber = 15
	Accept        OptionNumber = 17
	LocationQuery OptionNumber = 20
	Block2        OptionNumber = 23
	Block1        OptionNumber = 27
	Size2         OptionNumber = 28
	Size1         OptionNumber = 60
)

var optionNumberNames = map[OptionNumber]string{
	IfMatch:       "If-Match",
	URIHost:       "Uri-Host",
	ETag:          "ETag",
	IfNoneMatch:   "If-None-Match",
	Observe:       "Observe",
	URIPort:       "Uri-Port",
	LocationPath:  "Location-Path",
	URIPath:       "Uri-Path",
	ContentFormat: "Content-Format",
	MaxAge:        "Max-Age",
	URIQuery:      "Uri-Query",
	Accept:        "Accept",
	LocationQuery: "Location-Query",
	Block2:        "Block2",
	Block1:        "Block1",
	Size2:         "Size2",
	Size1:         "Size1",
}

// String returns the registered name, e.g. "Uri-Path", or the plain number
// for unregistered ones.
func (on OptionNumber) String() string {
	if name, ok := optionNumberNames[on]; ok {
		return name
	}
	return fmt.Sprintf("Option %d", uint32(on))
}

// Option is a single option of a PDU: its number and an opaque value. A PDU
// may carry the same number multiple times; those repetitions keep their
// insertion order, e.g. the segments of an Uri-Path.
type Option struct {
	Number OptionNumber
	Value  []byte
}

// CheckValid returns an array of errors for incorrect data.
func (o Option) CheckValid() error {
	if len(o.Value) > maxExtendedValue {
		return fmt.Errorf("%v: value length %d exceeds the encodable maximum of %d",
			o.Number, len(o.Value), maxExtendedValue)
	}
	return nil
}

func (o Option) String() string {
	return fmt.Sprintf("%v=%x", o.Number, o.Value)
}

// MarshalJSON creates a JSON object for this Option.
func (o Option) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Number OptionNumber `json:"number"`
		Name   string       `json:"name"`
		Value  []byte       `json:"value"`
	}{o.Number, o.Number.String(), o.Value})
}

// optionNumberSort implements sort.Interface to sort []Option based on their
// option number, in ascending order. It must be used through sort.Stable, as
// repeated numbers have to keep their insertion order.
//
// This allows the delta encoding to visit the options in their wire order,
// wherever a PDU's options came from.
type optionNumberSort []Option

// Len of elements within the array.
func (ons optionNumberSort) Len() int {
	return len(ons)
}

// Less is true iff element i should be sorted before element j.
func (ons optionNumberSort) Less(i, j int) bool {
	return ons[i].Number < ons[j].Number
}

// Swap elements i and j.
func (ons optionNumberSort) Swap(i, j int) {
	ons[i], ons[j] = ons[j], ons[i]
}
