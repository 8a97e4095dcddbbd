// SPDX-FileCopyrightText: 2026 The modern-coapp Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package coapp

// PDUBuilder is a fluent interface to create PDUs. Errors are latched: after
// the first failing method all following calls are no-ops and Build returns
// that error. The usage is described in the Builder function.
type PDUBuilder struct {
	err error

	pdu PDU
}

// Builder creates a new PDUBuilder around an empty PDU, to be populated by
// chaining the builder's methods.
//
//	pdu, err := coapp.Builder().
//	  Type(coapp.Confirmable).
//	  Code(coapp.GET).
//	  MessageID(0xcafe).
//	  Token([]byte{0xaf, 0xfe}).
//	  OptionString(coapp.URIPath, "sensors").
//	  OptionString(coapp.URIPath, "temperature").
//	  Build()
func Builder() *PDUBuilder {
	return &PDUBuilder{}
}

// Error returns the first error occurred so far, or nil.
func (bldr *PDUBuilder) Error() error {
	return bldr.err
}

// Build returns the assembled PDU, or the first error of the preceding
// method calls.
func (bldr *PDUBuilder) Build() (PDU, error) {
	return bldr.pdu, bldr.err
}

// Type sets the message type.
func (bldr *PDUBuilder) Type(t Type) *PDUBuilder {
	if bldr.err == nil {
		bldr.err = bldr.pdu.SetType(t)
	}

	return bldr
}

// Code sets the code.
func (bldr *PDUBuilder) Code(c Code) *PDUBuilder {
	if bldr.err == nil {
		bldr.pdu.SetCode(c)
	}

	return bldr
}

// MessageID sets the message id.
func (bldr *PDUBuilder) MessageID(mid uint16) *PDUBuilder {
	if bldr.err == nil {
		bldr.pdu.SetMessageID(mid)
	}

	return bldr
}

// Token sets the token of up to eight bytes.
func (bldr *PDUBuilder) Token(token []byte) *PDUBuilder {
	if bldr.err == nil {
		bldr.err = bldr.pdu.SetToken(token)
	}

	return bldr
}

// Option adds an option; compare PDU.AddOption.
func (bldr *PDUBuilder) Option(number OptionNumber, value []byte) *PDUBuilder {
	if bldr.err == nil {
		bldr.pdu.AddOption(number, value)
	}

	return bldr
}

// OptionString adds an option with a string value, e.g. an Uri-Path segment.
func (bldr *PDUBuilder) OptionString(number OptionNumber, value string) *PDUBuilder {
	return bldr.Option(number, []byte(value))
}

// Payload sets the payload.
func (bldr *PDUBuilder) Payload(payload []byte) *PDUBuilder {
	if bldr.err == nil {
		bldr.pdu.SetPayload(payload)
	}

	return bldr
}

// PayloadString sets the payload from a string.
func (bldr *PDUBuilder) PayloadString(payload string) *PDUBuilder {
	return bldr.Payload([]byte(payload))
}
