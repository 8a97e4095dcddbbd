// SPDX-FileCopyrightText: 2026 The modern-coapp Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build gofuzz
// +build gofuzz

package coapp

func Fuzz(data []byte) int {
	p, err := Parse(data)
	if err != nil {
		return 0
	}

	// Every successfully parsed PDU must serialize again.
	if _, err := p.MarshalBinary(); err != nil {
		panic(err)
	}

	return 1
}
