// SPDX-FileCopyrightText: 2026 The modern-coapp Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package coapp

import (
	"encoding/json"
	"fmt"
)

// Type is a PDU's message type, stored in the two bits following the version
// field of the header's first byte.
type Type uint8

const (
	// Confirmable messages request an acknowledgement from the receiver.
	Confirmable Type = 0

	// NonConfirmable messages are sent without reliability.
	NonConfirmable Type = 1

	// Acknowledgement acknowledges a received Confirmable message.
	Acknowledgement Type = 2

	// Reset indicates that a received message could not be processed.
	Reset Type = 3
)

// CheckValid returns an array of errors for incorrect data.
func (t Type) CheckValid() error {
	if t > Reset {
		return malformed("message type is %d instead of at most %d", uint8(t), uint8(Reset))
	}
	return nil
}

func (t Type) String() string {
	switch t {
	case Confirmable:
		return "Confirmable"
	case NonConfirmable:
		return "NonConfirmable"
	case Acknowledgement:
		return "Acknowledgement"
	case Reset:
		return "Reset"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// MarshalJSON returns this Type's name as a JSON string.
func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
