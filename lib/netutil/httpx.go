// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil bounds HTTP response body reads.
//
// Bookmark documents are scraped web pages of arbitrary size, and the
// manifest host is outside our control, so every response body is read
// through a limit instead of io.ReadAll.
package netutil

import (
	"fmt"
	"io"
)

// MaxResponseSize is the bound on response body reads: 64 MB. The
// largest scraped article is a few hundred kilobytes; the limit only
// exists to stop a broken server from exhausting memory.
const MaxResponseSize int64 = 64 << 20

// ReadResponse reads a response body up to MaxResponseSize bytes and
// fails if the body is longer.
func ReadResponse(body io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, MaxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > MaxResponseSize {
		return nil, fmt.Errorf("response body exceeds %d bytes", MaxResponseSize)
	}
	return data, nil
}
