// SPDX-FileCopyrightText: 2026 The modern-coapp Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package coapp

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// pduVersion is the only version the wire format defines. Parsing rejects
// every other value.
const pduVersion uint8 = 1

// maxTokenLength bounds the token, as its length must fit the header's four
// bit TKL field, where the values 9 to 15 are reserved.
const maxTokenLength = 8

// PDU represents a single protocol data unit: the fixed header's fields, the
// token, the options and the payload.
//
// The fields are unexported because each constraint is enforced where the
// value enters: mutators validate eagerly, so a PDU assembled through the
// exported API always serializes. The zero value is a valid, empty
// Confirmable PDU; Parse and the PDUBuilder are the other two ways to obtain
// one.
type PDU struct {
	typ       Type
	code      Code
	messageID uint16
	token     []byte
	options   []Option
	payload   []byte
}

// NewPDU creates an empty PDU: Confirmable, Empty code, message id zero and
// neither token, options nor payload.
func NewPDU() PDU {
	return PDU{}
}

// Version returns the protocol version, which is always 1.
func (p PDU) Version() uint8 {
	return pduVersion
}

// Type returns the message type.
func (p PDU) Type() Type {
	return p.typ
}

// Code returns the code, e.g. GET or Content.
func (p PDU) Code() Code {
	return p.code
}

// MessageID returns the message id, used by its consumers to correlate
// messages and detect duplicates.
func (p PDU) MessageID() uint16 {
	return p.messageID
}

// Token returns the token of up to eight opaque bytes, or nil. The returned
// slice must not be modified.
func (p PDU) Token() []byte {
	return p.token
}

// Options returns all options in ascending option number order, where
// repeated numbers keep their insertion order. The returned slice must not
// be modified.
func (p PDU) Options() []Option {
	return p.options
}

// Payload returns the payload, or nil. An absent payload and an empty one
// are equivalent.
func (p PDU) Payload() []byte {
	return p.payload
}

// SetType sets the message type. Values above Reset do not fit the header's
// two bit type field and are rejected.
func (p *PDU) SetType(t Type) error {
	if err := t.CheckValid(); err != nil {
		return err
	}

	p.typ = t
	return nil
}

// SetCode sets the code. Every byte is representable; no registered name is
// required.
func (p *PDU) SetCode(c Code) {
	p.code = c
}

// SetMessageID sets the message id.
func (p *PDU) SetMessageID(mid uint16) {
	p.messageID = mid
}

// SetToken sets the token. Tokens longer than eight bytes do not fit the
// header's TKL field and are rejected.
func (p *PDU) SetToken(token []byte) error {
	if len(token) > maxTokenLength {
		return malformed("token length is %d instead of at most %d", len(token), maxTokenLength)
	}

	p.token = token
	return nil
}

// AddOption adds an option. Options may be added in any order and with
// repeated numbers; the ascending order the delta encoding requires is
// maintained internally.
func (p *PDU) AddOption(number OptionNumber, value []byte) {
	p.options = append(p.options, Option{Number: number, Value: value})
	p.sortOptions()
}

// SetPayload sets the payload. An empty payload equals an absent one.
func (p *PDU) SetPayload(payload []byte) {
	p.payload = payload
}

// sortOptions sorts the options ascending by their option number, keeping
// the insertion order among equal numbers.
//
// This method is called internally after option modification, i.e. in AddOption.
func (p *PDU) sortOptions() {
	sort.Stable(optionNumberSort(p.options))
}

// CheckValid returns an array of errors for incorrect data.
//
// A PDU built through Parse or the exported mutators passes. Findings beyond
// the mutators' eager checks concern options whose value length or number
// distance cannot be expressed in the extended encoding; those would also
// surface as MarshalBinary errors, one at a time.
func (p PDU) CheckValid() (errs error) {
	if err := p.typ.CheckValid(); err != nil {
		errs = multierror.Append(errs, err)
	}

	if len(p.token) > maxTokenLength {
		errs = multierror.Append(errs,
			malformed("token length is %d instead of at most %d", len(p.token), maxTokenLength))
	}

	var prev OptionNumber
	for _, opt := range p.options {
		if err := opt.CheckValid(); err != nil {
			errs = multierror.Append(errs, err)
		}

		if delta := uint64(opt.Number) - uint64(prev); delta > maxExtendedValue {
			errs = multierror.Append(errs, fmt.Errorf(
				"%v: delta %d to the preceding option exceeds the encodable maximum of %d",
				opt.Number, delta, maxExtendedValue))
		}
		prev = opt.Number
	}

	return
}

func (p PDU) String() string {
	var b strings.Builder

	_, _ = fmt.Fprintf(&b, "PDU(version: %d", pduVersion)
	_, _ = fmt.Fprintf(&b, ", type: %v", p.typ)
	_, _ = fmt.Fprintf(&b, ", code: %v", p.code)
	_, _ = fmt.Fprintf(&b, ", message id: %d", p.messageID)

	if len(p.token) > 0 {
		_, _ = fmt.Fprintf(&b, ", token: %x", p.token)
	}
	for _, opt := range p.options {
		_, _ = fmt.Fprintf(&b, ", %v", opt)
	}
	if len(p.payload) > 0 {
		_, _ = fmt.Fprintf(&b, ", payload: %d bytes", len(p.payload))
	}

	_, _ = fmt.Fprintf(&b, ")")

	return b.String()
}

// MarshalJSON creates a JSON object for this PDU.
func (p PDU) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Version   uint8    `json:"version"`
		Type      Type     `json:"type"`
		Code      Code     `json:"code"`
		MessageID uint16   `json:"messageId"`
		Token     []byte   `json:"token,omitempty"`
		Options   []Option `json:"options,omitempty"`
		Payload   []byte   `json:"payload,omitempty"`
	}{
		Version:   pduVersion,
		Type:      p.typ,
		Code:      p.code,
		MessageID: p.messageID,
		Token:     p.token,
		Options:   p.options,
		Payload:   p.payload,
	})
}
