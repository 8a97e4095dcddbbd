// SPDX-FileCopyrightText: 2026 The modern-coapp Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package coapp

import (
	"errors"
	"fmt"
)

// ErrMalformedPDU is the single error kind for every structural violation of
// the wire format, raised both while decoding a buffer and by mutators
// rejecting their argument. All those errors carry a describing message and
// satisfy errors.Is(err, ErrMalformedPDU).
var ErrMalformedPDU = errors.New("malformed PDU")

// malformed wraps ErrMalformedPDU together with a describing message.
func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrMalformedPDU}, args...)...)
}
