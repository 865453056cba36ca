// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package termui

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestTUILogHandlerMessage(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelInfo)
	derived := handler.WithAttrs([]slog.Attr{slog.String("component", "watcher")}).
		WithGroup("reload").(*TUILogHandler)

	record := slog.NewRecord(time.Now(), slog.LevelWarn, "content reloaded", 0)
	record.AddAttrs(slog.Int("files", 3))

	message := derived.message(record)
	if message.Summary != "content reloaded (component=watcher, reload.files=3)" {
		t.Errorf("summary = %q", message.Summary)
	}
	if message.Level != slog.LevelWarn {
		t.Errorf("level = %v", message.Level)
	}
	if derived.program != handler.program {
		t.Error("derived handler does not share the program pointer")
	}
}

func TestTUILogHandlerWithoutProgram(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelWarn)
	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled at warn level")
	}
	record := slog.NewRecord(time.Now(), slog.LevelError, "dropped", 0)
	if err := handler.Handle(context.Background(), record); err != nil {
		t.Errorf("Handle without program: %v", err)
	}
}

func TestFanoutHandler(t *testing.T) {
	var debug, warn bytes.Buffer
	logger := slog.New(FanoutHandler{
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}).With("component", "loader")

	logger.Debug("fetching manifest")
	logger.Warn("manifest failed")

	if !strings.Contains(debug.String(), "fetching manifest") || !strings.Contains(debug.String(), "manifest failed") {
		t.Errorf("debug handler got %q", debug.String())
	}
	if strings.Contains(warn.String(), "fetching manifest") {
		t.Errorf("warn handler got a debug record: %q", warn.String())
	}
	if !strings.Contains(warn.String(), "component=loader") {
		t.Errorf("attrs not propagated: %q", warn.String())
	}
}
