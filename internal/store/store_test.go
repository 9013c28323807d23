package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/valpere/urduproxy/internal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func record(id, text, translation string, found bool, errKind string, ts time.Time) internal.TranslationRecord {
	return internal.TranslationRecord{
		ID:             id,
		SourceText:     text,
		SourceLang:     "ur",
		TargetLang:     "en",
		ServiceName:    "microsoft",
		TranslatedText: translation,
		Found:          found,
		StatusCode:     200,
		ErrorKind:      errKind,
		Latency:        120 * time.Millisecond,
		Timestamp:      ts,
	}
}

func TestStore_New(t *testing.T) {
	s := newTestStore(t)

	if s == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestStore_New_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/path/test.db")
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestStore_SaveRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.SaveRecord(ctx, record("req-1", "ہیلو", "Hello", true, "", time.Now()))
	if err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}

	records, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	got := records[0]
	if got.ID != "req-1" || got.SourceText != "ہیلو" || got.TranslatedText != "Hello" {
		t.Errorf("unexpected record %+v", got)
	}
	if !got.Found {
		t.Error("expected Found=true")
	}
	if got.Latency != 120*time.Millisecond {
		t.Errorf("expected 120ms latency, got %v", got.Latency)
	}
	if got.SourceLang != "ur" || got.TargetLang != "en" {
		t.Errorf("unexpected language pair %s→%s", got.SourceLang, got.TargetLang)
	}
}

func TestStore_SaveRecord_DuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveRecord(ctx, record("req-1", "ہیلو", "Hello", true, "", time.Now())); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}
	if err := s.SaveRecord(ctx, record("req-1", "ہیلو", "Hello", true, "", time.Now())); err == nil {
		t.Error("expected error for duplicate ID")
	}
}

func TestStore_SaveRecord_NormalizesSource(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// alef + madda above composes to U+0622
	if err := s.SaveRecord(ctx, record("req-1", "  \u0627\u0653\u067e  ", "You", true, "", time.Now())); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}

	records, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if records[0].SourceText != "\u0622\u067e" {
		t.Errorf("expected normalized source text, got %q", records[0].SourceText)
	}
}

func TestStore_List_OrderAndLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"a", "b", "c"} {
		if err := s.SaveRecord(ctx, record(id, "متن", "Text", true, "", base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("SaveRecord failed: %v", err)
		}
	}

	records, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "c" || records[1].ID != "b" {
		t.Errorf("expected newest first [c b], got [%s %s]", records[0].ID, records[1].ID)
	}
}

func TestStore_Stats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	s.SaveRecord(ctx, record("ok-1", "ہیلو", "Hello", true, "", now))
	s.SaveRecord(ctx, record("ok-2", "شکریہ", "Thank you", true, "", now))
	s.SaveRecord(ctx, record("nf-1", "؟", "Translation not found", false, "", now))
	s.SaveRecord(ctx, record("err-1", "ہیلو", "", false, "status", now))

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if stats.Total != 4 {
		t.Errorf("expected 4 total, got %d", stats.Total)
	}
	if stats.Translated != 2 {
		t.Errorf("expected 2 translated, got %d", stats.Translated)
	}
	if stats.NotFound != 1 {
		t.Errorf("expected 1 not found, got %d", stats.NotFound)
	}
	if stats.Failed != 1 {
		t.Errorf("expected 1 failed, got %d", stats.Failed)
	}
	if stats.AvgLatencyMs != 120 {
		t.Errorf("expected avg latency 120ms, got %v", stats.AvgLatencyMs)
	}
}

func TestStore_Stats_Empty(t *testing.T) {
	s := newTestStore(t)

	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 0 || stats.AvgLatencyMs != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.SaveRecord(ctx, record("req-1", "ہیلو", "Hello", true, "", time.Now()))

	if err := s.Delete(ctx, "req-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	records, _ := s.List(ctx, 0)
	if len(records) != 0 {
		t.Errorf("expected 0 records after delete, got %d", len(records))
	}

	if err := s.Delete(ctx, "req-1"); err == nil {
		t.Error("expected error deleting a missing record")
	}
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.SaveRecord(ctx, record("a", "ہیلو", "Hello", true, "", time.Now()))
	s.SaveRecord(ctx, record("b", "ہیلو", "Hello", true, "", time.Now()))

	n, err := s.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 cleared, got %d", n)
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  ہیلو  ", "ہیلو"},
		{"\u0627\u0653", "\u0622"},
		{"\t\nHello\t\n", "Hello"},
		{"", ""},
	}

	for _, tt := range tests {
		result := normalizeText(tt.input)
		if result != tt.expected {
			t.Errorf("normalizeText(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}
