// SPDX-FileCopyrightText: 2026 The modern-coapp Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package coapp

import (
	"encoding/json"
	"fmt"
)

// Code is a PDU's code, occupying the header's second byte. On the wire it
// packs a three bit class and a five bit detail, written as class.detail,
// e.g. 2.05 for Content. The codec treats every Code as opaque; the
// registered constants below are a lookup table on top of it, attaching no
// behavior.
type Code uint8

const (
	// Empty marks a PDU which is neither a request nor a response, e.g. a
	// ping or its Reset answer.
	Empty Code = 0

	// GET requests a representation of a resource.
	GET Code = 1

	// POST requests processing of the enclosed representation.
	POST Code = 2

	// PUT requests an update of a resource with the enclosed representation.
	PUT Code = 3

	// DELETE requests the deletion of a resource.
	DELETE Code = 4
)

// Response codes, packed as class<<5 | detail.
const (
	Created                  Code = 2<<5 | 1  // 2.01
	Deleted                  Code = 2<<5 | 2  // 2.02
	Valid                    Code = 2<<5 | 3  // 2.03
	Changed                  Code = 2<<5 | 4  // 2.04
	Content                  Code = 2<<5 | 5  // 2.05
	BadRequest               Code = 4 << 5    // 4.00
	Unauthorized             Code = 4<<5 | 1  // 4.01
	BadOption                Code = 4<<5 | 2  // 4.02
	Forbidden                Code = 4<<5 | 3  // 4.03
	NotFound                 Code = 4<<5 | 4  // 4.04
	MethodNotAllowed         Code = 4<<5 | 5  // 4.05
	NotAcceptable            Code = 4<<5 | 6  // 4.06
	PreconditionFailed       Code = 4<<5 | 12 // 4.12
	RequestEntityTooLarge    Code = 4<<5 | 13 // 4.13
	UnsupportedContentFormat Code = 4<<5 | 15 // 4.15
	InternalServerError      Code = 5 << 5    // 5.00
	NotImplemented           Code = 5<<5 | 1  // 5.01
	BadGateway               Code = 5<<5 | 2  // 5.02
	ServiceUnavailable       Code = 5<<5 | 3  // 5.03
	GatewayTimeout           Code = 5<<5 | 4  // 5.04
	ProxyingNotSupported     Code = 5<<5 | 5  // 5.05
)

// Class returns the upper three bits, e.g. 2 for 2.05 Content.
func (c Code) Class() uint8 {
	return uint8(c) >> 5
}

// Detail returns the lower five bits, e.g. 5 for 2.05 Content.
func (c Code) Detail() uint8 {
	return uint8(c) & 0x1f
}

// IsEmpty returns true for the Empty code 0.00.
func (c Code) IsEmpty() bool {
	return c == Empty
}

// IsRequest returns true for the request class 0, excluding Empty.
func (c Code) IsRequest() bool {
	return c.Class() == 0 && !c.IsEmpty()
}

// IsResponse returns true for the response classes 2 to 5.
func (c Code) IsResponse() bool {
	return c.Class() >= 2 && c.Class() <= 5
}

var codeNames = map[Code]string{
	Empty:                    "Empty",
	GET:                      "GET",
	POST:                     "POST",
	PUT:                      "PUT",
	DELETE:                   "DELETE",
	Created:                  "Created",
	Deleted:                  "Deleted",
	Valid:                    "Valid",
	Changed:                  "Changed",
	Content:                  "Content",
	BadRequest:               "Bad Request",
	Unauthorized:             "Unauthorized",
	BadOption:                "Bad Option",
	Forbidden:                "Forbidden",
	NotFound:                 "Not Found",
	MethodNotAllowed:         "Method Not Allowed",
	NotAcceptable:            "Not Acceptable",
	PreconditionFailed:       "Precondition Failed",
	RequestEntityTooLarge:    "Request Entity Too Large",
	UnsupportedContentFormat: "Unsupported Content-Format",
	InternalServerError:      "Internal Server Error",
	NotImplemented:           "Not Implemented",
	BadGateway:               "Bad Gateway",
	ServiceUnavailable:       "Service Unavailable",
	GatewayTimeout:           "Gateway Timeout",
	ProxyingNotSupported:     "Proxying Not Supported",
}

// String returns the dotted class.detail form, followed by the registered
// name, if there is one.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return fmt.Sprintf("%d.%02d %s", c.Class(), c.Detail(), name)
	}
	return fmt.Sprintf("%d.%02d", c.Class(), c.Detail())
}

// MarshalJSON returns this Code's String form as a JSON string.
func (c Code) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}
