// SPDX-FileCopyrightText: 2026 The modern-coapp Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package coapp

import (
	"encoding/binary"
	"fmt"
	"math"
)

// headerLength is the size of the fixed header: version, type and token
// length packed into the first byte, the code in the second and the big
// endian message id in the last two.
const headerLength = 4

// Constants of the option encoding. An option starts with one byte holding
// the delta to the preceding option's number in the upper nibble and the
// value length in the lower one. Nibble values up to 12 are literal, 13 and
// 14 announce extension bytes, 15 is reserved: in the length position its
// byte would mimic the payload marker.
const (
	// extNibbleOne announces one extension byte carrying the value minus 13.
	extNibbleOne = 13

	// extNibbleTwo announces two big endian extension bytes carrying the
	// value minus 269.
	extNibbleTwo = 14

	// extNibbleReserved must not occur in either nibble position.
	extNibbleReserved = 15

	// extBiasOne and extBiasTwo are added to the extension bytes' value, as
	// smaller values already fit the next shorter form.
	extBiasOne = 13
	extBiasTwo = 269

	// maxExtendedValue is the largest option delta or value length the
	// encoding can express: 65535 + 269.
	maxExtendedValue = 65804

	// payloadMarker separates the last option from the payload. It is only
	// present if the payload is not empty.
	payloadMarker = 0xff
)

// reader is a bounds checked cursor over a PDU buffer. Every read checks the
// remaining length first and fails with ErrMalformedPDU, so no truncated
// buffer can slip through.
type reader struct {
	data []byte
	off  int
}

// remaining bytes after the cursor.
func (r *reader) remaining() int {
	return len(r.data) - r.off
}

// readByte returns the next byte, with what naming it for the error message.
func (r *reader) readByte(what string) (byte, error) {
	if r.remaining() < 1 {
		return 0, malformed("buffer ends within %s", what)
	}

	b := r.data[r.off]
	r.off++
	return b, nil
}

// read returns the next n bytes, with what naming them for the error
// message. The returned slice aliases the buffer and must be copied if kept.
func (r *reader) read(n int, what string) ([]byte, error) {
	if r.remaining() < n {
		return nil, malformed("buffer ends within %s: %d bytes missing", what, n-r.remaining())
	}

	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Parse decodes one PDU from a buffer, usually a received datagram, which
// must hold exactly one PDU. Parsing is atomic: either a complete PDU or an
// error wrapping ErrMalformedPDU is returned, never a partial result. The
// PDU copies every byte it keeps, so the buffer may be reused afterwards.
func Parse(data []byte) (PDU, error) {
	var p PDU
	err := p.UnmarshalBinary(data)
	return p, err
}

// UnmarshalBinary decodes a PDU from its binary form, compare Parse. The
// receiver is only modified if the whole buffer decodes without an error.
func (p *PDU) UnmarshalBinary(data []byte) error {
	var (
		r    = reader{data: data}
		next PDU
	)

	tokenLength, err := next.decodeHeader(&r)
	if err != nil {
		return err
	}

	if err := next.decodeToken(&r, tokenLength); err != nil {
		return err
	}

	sawMarker, err := next.decodeOptions(&r)
	if err != nil {
		return err
	}

	// A buffer ending directly on the marker byte yields an empty payload.
	if sawMarker && r.remaining() > 0 {
		next.payload = make([]byte, r.remaining())
		copy(next.payload, r.data[r.off:])
	}

	*p = next
	return nil
}

// decodeHeader reads the fixed header and returns the announced token
// length, to be consumed by decodeToken.
func (p *PDU) decodeHeader(r *reader) (tokenLength int, err error) {
	header, err := r.read(headerLength, "the fixed header")
	if err != nil {
		return 0, err
	}

	if version := header[0] >> 6; version != pduVersion {
		return 0, malformed("version is %d instead of %d", version, pduVersion)
	}

	p.typ = Type(header[0] >> 4 & 0x03)
	p.code = Code(header[1])
	p.messageID = binary.BigEndian.Uint16(header[2:4])

	if tokenLength = int(header[0] & 0x0f); tokenLength > maxTokenLength {
		return 0, malformed("token length is %d instead of at most %d", tokenLength, maxTokenLength)
	}

	return tokenLength, nil
}

// decodeToken reads the token announced by the header's TKL field. An exact
// end of the buffer after the token is valid.
func (p *PDU) decodeToken(r *reader, tokenLength int) error {
	if tokenLength == 0 {
		return nil
	}

	raw, err := r.read(tokenLength, "the token")
	if err != nil {
		return err
	}

	p.token = make([]byte, tokenLength)
	copy(p.token, raw)
	return nil
}

// decodeOptions reads options until the buffer ends or the payload marker
// starts an option. In the latter case the marker is consumed and sawMarker
// is true; the rest of the buffer is the payload.
//
// Each option's number is the sum of all deltas so far. The sum must stay
// within OptionNumber's range; as parsing appends in wire order, the
// ascending option order holds without sorting.
func (p *PDU) decodeOptions(r *reader) (sawMarker bool, err error) {
	var number uint64

	for r.remaining() > 0 {
		lead, err := r.readByte("an option's initial byte")
		if err != nil {
			return false, err
		}

		if lead == payloadMarker {
			return true, nil
		}

		delta, err := r.readExtended(uint32(lead>>4), "an option's delta")
		if err != nil {
			return false, err
		}

		length, err := r.readExtended(uint32(lead&0x0f), "an option's length")
		if err != nil {
			return false, err
		}

		if number += uint64(delta); number > math.MaxUint32 {
			return false, malformed("option number %d exceeds the format's bound", number)
		}

		opt := Option{Number: OptionNumber(number)}
		if length > 0 {
			raw, err := r.read(int(length), "an option's value")
			if err != nil {
				return false, err
			}

			opt.Value = make([]byte, length)
			copy(opt.Value, raw)
		}

		p.options = append(p.options, opt)
	}

	return false, nil
}

// readExtended resolves an option's delta or length nibble: values up to 12
// are literal, 13 and 14 announce one or two extension bytes, 15 is
// reserved and therefore malformed.
func (r *reader) readExtended(nibble uint32, what string) (uint32, error) {
	switch nibble {
	case extNibbleOne:
		ext, err := r.readByte(what)
		if err != nil {
			return 0, err
		}
		return extBiasOne + uint32(ext), nil

	case extNibbleTwo:
		ext, err := r.read(2, what)
		if err != nil {
			return 0, err
		}
		return extBiasTwo + uint32(binary.BigEndian.Uint16(ext)), nil

	case extNibbleReserved:
		return 0, malformed("%s carries the reserved nibble %d", what, extNibbleReserved)

	default:
		return nibble, nil
	}
}

// MarshalBinary encodes this PDU into its binary form: the fixed header, the
// token, the delta encoded options and, unless empty, the payload marker and
// payload. The exact buffer size is computed in a first pass; the second
// pass fills it.
//
// Encoding always succeeds for a PDU built through Parse, the mutators or
// the PDUBuilder. An error reports an option arrangement the extended
// encoding cannot express, which is a contract violation rather than a wire
// error and therefore does not wrap ErrMalformedPDU.
func (p PDU) MarshalBinary() ([]byte, error) {
	size, err := p.marshalledSize()
	if err != nil {
		return nil, err
	}

	data := make([]byte, size)
	data[0] = pduVersion<<6 | uint8(p.typ)<<4 | uint8(len(p.token))
	data[1] = uint8(p.code)
	binary.BigEndian.PutUint16(data[2:4], p.messageID)

	off := headerLength
	off += copy(data[off:], p.token)

	var prev OptionNumber
	for _, opt := range p.options {
		off = writeOptionHeader(data, off, uint64(opt.Number-prev), uint64(len(opt.Value)))
		off += copy(data[off:], opt.Value)
		prev = opt.Number
	}

	if len(p.payload) > 0 {
		data[off] = payloadMarker
		copy(data[off+1:], p.payload)
	}

	return data, nil
}

// marshalledSize computes the exact number of bytes MarshalBinary writes,
// checking on the way that each option's delta and length is encodable.
func (p PDU) marshalledSize() (int, error) {
	size := headerLength + len(p.token)

	var prev OptionNumber
	for _, opt := range p.options {
		deltaSize, err := extSize(uint64(opt.Number - prev))
		if err != nil {
			return 0, fmt.Errorf("%v: delta %v", opt.Number, err)
		}

		lengthSize, err := extSize(uint64(len(opt.Value)))
		if err != nil {
			return 0, fmt.Errorf("%v: length %v", opt.Number, err)
		}

		size += 1 + deltaSize + lengthSize + len(opt.Value)
		prev = opt.Number
	}

	if len(p.payload) > 0 {
		size += 1 + len(p.payload)
	}

	return size, nil
}

// writeOptionHeader packs an option's delta and length into their initial
// byte and extension bytes at off, returning the offset after them. Both
// values were bounds checked by marshalledSize.
func writeOptionHeader(data []byte, off int, delta, length uint64) int {
	deltaNibble, lengthNibble := extNibble(delta), extNibble(length)
	data[off] = deltaNibble<<4 | lengthNibble
	off++

	off = writeExtension(data, off, deltaNibble, delta)
	off = writeExtension(data, off, lengthNibble, length)
	return off
}

// writeExtension writes a delta or length value's extension bytes, if its
// nibble announces any.
func writeExtension(data []byte, off int, nibble uint8, value uint64) int {
	switch nibble {
	case extNibbleOne:
		data[off] = uint8(value - extBiasOne)
		return off + 1

	case extNibbleTwo:
		binary.BigEndian.PutUint16(data[off:], uint16(value-extBiasTwo))
		return off + 2

	default:
		return off
	}
}

// extNibble returns the nibble announcing a delta or length value: the value
// itself up to 12, otherwise the one or two byte extension form.
func extNibble(value uint64) uint8 {
	switch {
	case value < extBiasOne:
		return uint8(value)
	case value < extBiasTwo:
		return extNibbleOne
	default:
		return extNibbleTwo
	}
}

// extSize returns the number of extension bytes a delta or length value
// needs, or an error for values the encoding cannot express.
func extSize(value uint64) (int, error) {
	switch {
	case value < extBiasOne:
		return 0, nil
	case value < extBiasTwo:
		return 1, nil
	case value <= maxExtendedValue:
		return 2, nil
	default:
		return 0, fmt.Errorf("%d exceeds the encodable maximum of %d", value, maxExtendedValue)
	}
}
