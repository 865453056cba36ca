// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
)

type cacheRecord struct {
	Key      string `json:"key"`
	Markdown string `json:"markdown,omitempty"`
	Size     int    `json:"size"`
}

func TestMarshalDeterministic(t *testing.T) {
	record := cacheRecord{Key: "go-memory-model", Markdown: "# Go", Size: 4}

	first, err := Marshal(record)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := Marshal(record)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("same value encoded to different bytes")
	}
}

func TestUnmarshalIgnoresUnknownFields(t *testing.T) {
	data, err := Marshal(map[string]any{"key": "a", "size": 1, "extra": true})
	if err != nil {
		t.Fatal(err)
	}
	var record cacheRecord
	if err := Unmarshal(data, &record); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if record.Key != "a" || record.Size != 1 {
		t.Errorf("decoded %+v", record)
	}
}

func TestUnmarshalAnyUsesStringKeys(t *testing.T) {
	data, err := Marshal(map[string]any{"nested": map[string]any{"a": 1}})
	if err != nil {
		t.Fatal(err)
	}
	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	top, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded type %T, want map[string]any", decoded)
	}
	if _, ok := top["nested"].(map[string]any); !ok {
		t.Errorf("nested type %T, want map[string]any", top["nested"])
	}
}

func TestCompressedShrinksText(t *testing.T) {
	record := cacheRecord{Key: "long", Markdown: strings.Repeat("the quick brown fox\n", 500)}

	plain, err := Marshal(record)
	if err != nil {
		t.Fatal(err)
	}
	packed, err := MarshalCompressed(record)
	if err != nil {
		t.Fatalf("MarshalCompressed: %v", err)
	}
	if len(packed) >= len(plain) {
		t.Errorf("compressed %d bytes, plain %d bytes", len(packed), len(plain))
	}

	var decoded cacheRecord
	if err := UnmarshalCompressed(packed, &decoded); err != nil {
		t.Fatalf("UnmarshalCompressed: %v", err)
	}
	if decoded != record {
		t.Error("compressed value did not survive decoding")
	}
}

func TestUnmarshalCompressedRejectsGarbage(t *testing.T) {
	var decoded cacheRecord
	if err := UnmarshalCompressed([]byte("not zstd"), &decoded); err == nil {
		t.Error("expected error for invalid input")
	}
}
