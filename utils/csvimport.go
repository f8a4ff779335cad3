package utils

import (
    "fmt"
    "strconv"
    "strings"
    "time"
)

// ColumnMap holds the detected column index per transaction field, -1 when
// the column is absent.
type ColumnMap struct {
    Date     int
    Amount   int
    Type     int
    Category int
    Note     int
}

var columnAliases = map[string][]string{
    "date":     {"date", "day", "fecha", "data", "transaction date", "дата"},
    "amount":   {"amount", "sum", "total", "value", "monto", "importe", "сумма"},
    "type":     {"type", "kind", "tipo", "direction", "тип"},
    "category": {"category", "categoria", "concept", "концепт", "категория"},
    "note":     {"note", "notes", "description", "desc", "memo", "detail", "описание"},
}

// HasHeader guesses whether the first CSV row is a header: a row where no
// cell parses as a date or an amount is treated as one.
func HasHeader(row []string) bool {
    for _, cell := range row {
        if _, err := ParseFlexibleDate(cell); err == nil {
            return false
        }
        if _, err := ParseAmount(cell); err == nil {
            return false
        }
    }
    return true
}

// DetectColumns maps header names to fields using the alias table. When a
// field has no matching header its index stays -1 and the caller falls back
// to DetectColumnsByShape.
func DetectColumns(header []string) ColumnMap {
    m := ColumnMap{Date: -1, Amount: -1, Type: -1, Category: -1, Note: -1}
    for i, raw := range header {
        name := strings.ToLower(strings.TrimSpace(raw))
        for field, aliases := range columnAliases {
            for _, alias := range aliases {
                if name != alias {
                    continue
                }
                switch field {
                case "date":
                    if m.Date == -1 {
                        m.Date = i
                    }
                case "amount":
                    if m.Amount == -1 {
                        m.Amount = i
                    }
                case "type":
                    if m.Type == -1 {
                        m.Type = i
                    }
                case "category":
                    if m.Category == -1 {
                        m.Category = i
                    }
                case "note":
                    if m.Note == -1 {
                        m.Note = i
                    }
                }
            }
        }
    }
    return m
}

// DetectColumnsByShape inspects a data row: the first cell that parses as a
// date becomes the date column, the first remaining numeric cell the amount.
// Best effort for headerless exports; anything else stays unmapped.
func DetectColumnsByShape(row []string) ColumnMap {
    m := ColumnMap{Date: -1, Amount: -1, Type: -1, Category: -1, Note: -1}
    for i, cell := range row {
        if m.Date == -1 {
            if _, err := ParseFlexibleDate(cell); err == nil {
                m.Date = i
                continue
            }
        }
        if m.Amount == -1 {
            if _, err := ParseAmount(cell); err == nil {
                m.Amount = i
                continue
            }
        }
        if m.Note == -1 {
            m.Note = i
        }
    }
    return m
}

var dateLayouts = []string{
    "2006-01-02",
    "2006/01/02",
    "02.01.2006",
    "02-01-2006",
    "2 Jan 2006",
    "Jan 2, 2006",
}

// ParseFlexibleDate accepts the date formats seen in spreadsheet exports.
// Slash-separated day/month pairs are read day-first unless the first number
// can only be a month (e.g. 03/25/2024).
func ParseFlexibleDate(s string) (time.Time, error) {
    s = strings.TrimSpace(s)
    if s == "" {
        return time.Time{}, fmt.Errorf("empty date")
    }
    for _, layout := range dateLayouts {
        if t, err := time.Parse(layout, s); err == nil {
            return t, nil
        }
    }
    if parts := strings.Split(s, "/"); len(parts) == 3 {
        a, err1 := strconv.Atoi(parts[0])
        b, err2 := strconv.Atoi(parts[1])
        y, err3 := strconv.Atoi(parts[2])
        if err1 == nil && err2 == nil && err3 == nil {
            if y < 100 {
                y += 2000
            }
            day, month := a, b
            if a <= 12 && b > 12 {
                day, month = b, a
            }
            if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
                return time.Date(y, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
            }
        }
    }
    return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ParseAmount strips currency symbols and thousands separators and accepts a
// comma decimal mark.
func ParseAmount(s string) (float64, error) {
    s = strings.TrimSpace(s)
    s = strings.Trim(s, "$€£¥ ")
    s = strings.ReplaceAll(s, " ", "")
    if s == "" {
        return 0, fmt.Errorf("empty amount")
    }

    if strings.Contains(s, ",") && strings.Contains(s, ".") {
        // 1,234.56 style: comma is the thousands separator
        s = strings.ReplaceAll(s, ",", "")
    } else if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
        // 1234,56 style: comma is the decimal mark
        s = strings.Replace(s, ",", ".", 1)
    } else {
        s = strings.ReplaceAll(s, ",", "")
    }

    return strconv.ParseFloat(s, 64)
}

// NormalizeTransactionType maps free-form type cells to "income"/"expense".
func NormalizeTransactionType(s string) (string, bool) {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "income", "in", "credit", "ingreso", "revenue", "sale", "+", "доход":
        return "income", true
    case "expense", "out", "debit", "egreso", "gasto", "cost", "-", "расход":
        return "expense", true
    }
    return "", false
}
