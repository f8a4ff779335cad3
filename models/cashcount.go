package models

import (
    "time"

    "go.mongodb.org/mongo-driver/bson/primitive"
)

// CashCount is the persisted physical cash count for one calendar date.
// Denominations holds absolute quantities keyed by denomination code
// (e.g. "1000", "0.50"), never the operator-entered deltas.
// Notes: "balanced" | "surplus" | "shortage".
type CashCount struct {
    ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
    Date          time.Time          `bson:"date" json:"date"`
    Expected      float64            `bson:"expected_amount" json:"expected_amount"`
    Counted       float64            `bson:"counted_amount" json:"counted_amount"`
    Difference    float64            `bson:"difference" json:"difference"`
    Denominations map[string]int64   `bson:"denominations" json:"denominations"`
    Notes         string             `bson:"notes" json:"notes"`
    SavedBy       string             `bson:"savedby,omitempty" json:"savedby,omitempty"`
    SavedAt       time.Time          `bson:"savedat,omitempty" json:"savedat,omitempty"`
}
