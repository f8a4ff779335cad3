package utils

import (
    "testing"
    "time"
)

const sampleTicket = `LAVANDERIA BLANCA
Ticket #00123
05.03.2024 14:22
Wash & Fold 5kg     1200
Ironing x3 .......... 450
Drying              300
TOTAL               1950
CASH                2000
CHANGE                50
THANK YOU`

func TestParseTicketText(t *testing.T) {
    fields := ParseTicketText(sampleTicket)

    if fields.TicketNumber != "00123" {
        t.Errorf("TicketNumber = %q, want 00123", fields.TicketNumber)
    }
    want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
    if !fields.Date.Equal(want) {
        t.Errorf("Date = %v, want %v", fields.Date, want)
    }
    if fields.Total != 1950 {
        t.Errorf("Total = %v, want 1950", fields.Total)
    }

    if len(fields.Items) != 3 {
        t.Fatalf("Items = %v, want 3 lines", fields.Items)
    }
    if fields.Items[0].Name != "Wash & Fold 5kg" || fields.Items[0].Amount != 1200 {
        t.Errorf("item 0 = %+v", fields.Items[0])
    }
    if fields.Items[1].Name != "Ironing x3" || fields.Items[1].Amount != 450 {
        t.Errorf("item 1 = %+v", fields.Items[1])
    }
    if fields.Items[2].Name != "Drying" || fields.Items[2].Amount != 300 {
        t.Errorf("item 2 = %+v", fields.Items[2])
    }
}

func TestParseTicketTextFallsBackToLargestAmount(t *testing.T) {
    fields := ParseTicketText("Wash 800\nDrying 400")
    if fields.Total != 800 {
        t.Errorf("Total = %v, want 800 (largest amount)", fields.Total)
    }
    if fields.TicketNumber != "" {
        t.Errorf("TicketNumber = %q, want empty", fields.TicketNumber)
    }
    if !fields.Date.IsZero() {
        t.Errorf("Date = %v, want zero", fields.Date)
    }
}

func TestParseTicketTextIgnoresGarbage(t *testing.T) {
    fields := ParseTicketText("~~ ### |||| !!\n....\n")
    if fields.Total != 0 || len(fields.Items) != 0 || fields.TicketNumber != "" {
        t.Errorf("expected empty extraction, got %+v", fields)
    }
}
