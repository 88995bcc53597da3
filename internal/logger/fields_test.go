package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  resume  ", Value: "  cv.txt  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "resume" || fields[0].String != "cv.txt" {
		t.Fatalf("unexpected resume field: %+v", fields[0])
	}

	empty := StringFields()
	if len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	enriched := WithFields(logger, zap.String("foo", "bar"))
	enriched.Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx["foo"] != "bar" {
		t.Fatalf("expected field to be bar, got %q", ctx["foo"])
	}

	enriched = WithFields(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}

	// Ensure logging with the fallback logger does not panic.
	enriched.Info("another log")
}

func TestPairFields(t *testing.T) {
	fields := PairFields("  cv.txt  ", "ios-senior")
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	if fields[0].Key != FieldResume || fields[0].String != "cv.txt" {
		t.Fatalf("unexpected resume field: %+v", fields[0])
	}

	if fields[1].Key != FieldJob || fields[1].String != "ios-senior" {
		t.Fatalf("unexpected job field: %+v", fields[1])
	}

	if empty := PairFields("", ""); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithPair(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithPair(zap.New(core), "cv.txt", "ios").Info("pair scored")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldResume] != "cv.txt" {
		t.Fatalf("expected resume field to be cv.txt, got %q", ctx[FieldResume])
	}
	if ctx[FieldJob] != "ios" {
		t.Fatalf("expected job field to be ios, got %q", ctx[FieldJob])
	}

	if WithPair(nil, "cv.txt", "ios") == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}
}
