// SPDX-FileCopyrightText: 2026 The modern-coapp Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package coapp

// Validator is an interface with the CheckValid function. This function
// should return an error for incorrect data. It is implemented for the PDU
// and its parts, so by tree-like calls all errors of a whole PDU can be
// detected.
// For non-trivial code, the multierror package might be used.
type Validator interface {
	// CheckValid returns an array of errors for incorrect data.
	CheckValid() error
}
