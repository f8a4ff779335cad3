package utils

import (
    "testing"
    "time"
)

func TestDetectColumns(t *testing.T) {
    m := DetectColumns([]string{"Date", "Description", "Amount", "Type", "Category"})
    if m.Date != 0 || m.Note != 1 || m.Amount != 2 || m.Type != 3 || m.Category != 4 {
        t.Errorf("unexpected mapping: %+v", m)
    }

    m = DetectColumns([]string{"Fecha", "Importe"})
    if m.Date != 0 || m.Amount != 1 {
        t.Errorf("alias mapping failed: %+v", m)
    }
    if m.Type != -1 || m.Category != -1 {
        t.Errorf("absent columns should stay -1: %+v", m)
    }
}

func TestDetectColumnsByShape(t *testing.T) {
    m := DetectColumnsByShape([]string{"03/04/2024", "washing x2", "1500"})
    if m.Date != 0 {
        t.Errorf("Date = %d, want 0", m.Date)
    }
    if m.Amount != 2 {
        t.Errorf("Amount = %d, want 2", m.Amount)
    }
    if m.Note != 1 {
        t.Errorf("Note = %d, want 1", m.Note)
    }
}

func TestHasHeader(t *testing.T) {
    if !HasHeader([]string{"Date", "Amount", "Type"}) {
        t.Error("header row not recognized")
    }
    if HasHeader([]string{"2024-03-05", "1200", "income"}) {
        t.Error("data row mistaken for header")
    }
}

func TestParseFlexibleDate(t *testing.T) {
    cases := []struct {
        in   string
        want time.Time
    }{
        {"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
        {"2024/03/05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
        {"05.03.2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
        {"5/3/2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
        {"25/3/2024", time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)},
        {"3/25/2024", time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)},
        {"5/3/24", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
    }
    for _, tc := range cases {
        got, err := ParseFlexibleDate(tc.in)
        if err != nil {
            t.Errorf("ParseFlexibleDate(%q): %v", tc.in, err)
            continue
        }
        if !got.Equal(tc.want) {
            t.Errorf("ParseFlexibleDate(%q) = %v, want %v", tc.in, got, tc.want)
        }
    }

    for _, bad := range []string{"", "notadate", "40/40/2024"} {
        if _, err := ParseFlexibleDate(bad); err == nil {
            t.Errorf("ParseFlexibleDate(%q) error = nil, want error", bad)
        }
    }
}

func TestParseAmount(t *testing.T) {
    cases := []struct {
        in   string
        want float64
    }{
        {"1200", 1200},
        {"1200.50", 1200.50},
        {"1,200.50", 1200.50},
        {"1200,50", 1200.50},
        {"$ 1,200.50", 1200.50},
        {"-350", -350},
    }
    for _, tc := range cases {
        got, err := ParseAmount(tc.in)
        if err != nil {
            t.Errorf("ParseAmount(%q): %v", tc.in, err)
            continue
        }
        if got != tc.want {
            t.Errorf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.want)
        }
    }

    if _, err := ParseAmount("abc"); err == nil {
        t.Error("ParseAmount(abc) error = nil, want error")
    }
}

func TestNormalizeTransactionType(t *testing.T) {
    if got, ok := NormalizeTransactionType("Income"); !ok || got != "income" {
        t.Errorf("NormalizeTransactionType(Income) = %q, %v", got, ok)
    }
    if got, ok := NormalizeTransactionType(" debit "); !ok || got != "expense" {
        t.Errorf("NormalizeTransactionType(debit) = %q, %v", got, ok)
    }
    if _, ok := NormalizeTransactionType("mystery"); ok {
        t.Error("NormalizeTransactionType(mystery) ok = true, want false")
    }
}
