package util

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 10, 10, 15, 30, 0, 0, time.UTC)
	if got := FormatDate(d); got != "2024-10-10" {
		t.Fatalf("unexpected format %q", got)
	}
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2024-10-10")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Year() != 2024 || got.Month() != 10 || got.Day() != 10 {
		t.Fatalf("unexpected date %v", got)
	}
	if _, ok := ParseDate("10/10/2024"); ok {
		t.Fatalf("expected parse failure")
	}
}

func TestDayKey(t *testing.T) {
	d := time.Date(2024, 10, 10, 23, 59, 59, 0, time.UTC)
	key := DayKey(d)
	if key.Hour() != 0 || key.Minute() != 0 {
		t.Fatalf("expected midnight, got %v", key)
	}
	if !key.Equal(DayKey(time.Date(2024, 10, 10, 1, 0, 0, 0, time.UTC))) {
		t.Fatalf("same day should share a key")
	}
}

func TestSplitSymbols(t *testing.T) {
	got := SplitSymbols(" aapl, MSFT ,,goog ")
	if len(got) != 3 || got[0] != "AAPL" || got[1] != "MSFT" || got[2] != "GOOG" {
		t.Fatalf("unexpected symbols %v", got)
	}
}
