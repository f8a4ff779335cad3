package utils

import (
    "regexp"
    "strings"
    "time"

    "backend/models"
)

// TicketFields is the best-effort extraction from one OCR-recognized ticket.
// Missing fields stay zero; nothing here is validated beyond parseability —
// the scan is stored as a draft for an operator to review.
type TicketFields struct {
    TicketNumber string
    Date         time.Time
    Total        float64
    Items        []models.TicketItem
}

var (
    ticketNumberRe = regexp.MustCompile(`(?i)(?:ticket|receipt|check|order|no\.?|№|#)\s*[:#]?\s*(\d{3,})`)
    dateTokenRe    = regexp.MustCompile(`\b(\d{1,4}[-/.]\d{1,2}[-/.]\d{2,4})\b`)
    amountTokenRe  = regexp.MustCompile(`\d[\d.,]*\d|\d`)
    itemLineRe     = regexp.MustCompile(`^([A-Za-zА-Яа-яЁё][A-Za-zА-Яа-яЁё\d\s&x*./()-]*?)[\s.·]+(\d[\d.,]*)\s*$`)
    totalLineRe    = regexp.MustCompile(`(?i)\b(total|amount due|итог|всего|sum)\b`)
    skipLineRe     = regexp.MustCompile(`(?i)\b(subtotal|total|cash|change|tax|vat|ticket|receipt|thank|итог|всего|сдача)\b`)
)

// ParseTicketText scrapes ticket number, date, total and service lines out of
// noisy OCR output. Single pass over the lines; when no explicit total line
// is found the largest amount seen anywhere is used.
func ParseTicketText(raw string) TicketFields {
    var fields TicketFields

    if m := ticketNumberRe.FindStringSubmatch(raw); m != nil {
        fields.TicketNumber = m[1]
    }

    for _, token := range dateTokenRe.FindAllString(raw, -1) {
        if t, err := ParseFlexibleDate(token); err == nil {
            fields.Date = t
            break
        }
    }

    var maxAmount float64
    for _, line := range strings.Split(raw, "\n") {
        line = strings.TrimSpace(line)
        if line == "" {
            continue
        }

        if totalLineRe.MatchString(line) {
            tokens := amountTokenRe.FindAllString(line, -1)
            for i := len(tokens) - 1; i >= 0; i-- {
                if v, err := ParseAmount(tokens[i]); err == nil && v > 0 {
                    fields.Total = v
                    break
                }
            }
            continue
        }

        for _, token := range amountTokenRe.FindAllString(line, -1) {
            if v, err := ParseAmount(token); err == nil && v > maxAmount {
                maxAmount = v
            }
        }

        if skipLineRe.MatchString(line) {
            continue
        }
        if m := itemLineRe.FindStringSubmatch(line); m != nil {
            name := strings.TrimSpace(m[1])
            if amount, err := ParseAmount(m[2]); err == nil && amount > 0 && len(name) >= 3 {
                fields.Items = append(fields.Items, models.TicketItem{Name: name, Amount: amount})
            }
        }
    }

    if fields.Total == 0 {
        fields.Total = maxAmount
    }
    return fields
}
