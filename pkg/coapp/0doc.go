// SPDX-FileCopyrightText: 2026 The modern-coapp Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package coapp provides a library for the binary message format of the
// Constrained Application Protocol (CoAP), as defined in RFC 7252. This
// includes PDU creation, modification, serialization and deserialization.
// Transports, request/response semantics and retransmission are outside of
// this package's scope; it handles single protocol data units.
//
// The easiest way to create new PDUs is to use the PDUBuilder.
//
//	pdu, err := coapp.Builder().
//	  Type(coapp.Confirmable).
//	  Code(coapp.GET).
//	  MessageID(0xcafe).
//	  Token([]byte{0xaf, 0xfe}).
//	  OptionString(coapp.URIPath, "sensors").
//	  OptionString(coapp.URIPath, "temperature").
//	  Build()
//
// Both serializing and deserializing PDUs into their wire form is supported.
//
//	// An existing PDU p1 is serialized. The new PDU p2 is created
//	// from those bytes, e.g. on the datagram's receiving side.
//	data, err1 := p1.MarshalBinary()
//	p2, err2 := coapp.Parse(data)
package coapp
