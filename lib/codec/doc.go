// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding used for on-disk caches.
//
// JSON is the format for everything that crosses a process boundary:
// the bookmark manifest, scraped bookmark documents, the reading API,
// and CLI output. CBOR is used only for local cache files, where it is
// wrapped in zstd because cached article markdown compresses well.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2), so the
// same value always produces the same bytes:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
//	packed, err := codec.MarshalCompressed(value)
//	err = codec.UnmarshalCompressed(packed, &value)
//
// fxamacker/cbor reads `json` struct tags when `cbor` tags are absent,
// so types shared with the JSON wire format need no extra tags.
package codec
