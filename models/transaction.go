package models

import (
    "time"

    "go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction is a single income or expense entry for one calendar date.
// Type: "income" | "expense". Source: "manual" | "import" | "scan".
type Transaction struct {
    ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
    Type     string             `bson:"type" json:"type"`
    Amount   float64            `bson:"amount" json:"amount"`
    Category string             `bson:"category" json:"category"`
    Method   string             `bson:"method,omitempty" json:"method,omitempty"`
    Note     string             `bson:"note,omitempty" json:"note,omitempty"`
    Date     time.Time          `bson:"date" json:"date"`
    Source   string             `bson:"source,omitempty" json:"source,omitempty"`
    UserID   string             `bson:"userid,omitempty" json:"userid,omitempty"`
    Created  time.Time          `bson:"created,omitempty" json:"created,omitempty"`
}

// ImportLog records one CSV bulk import run.
type ImportLog struct {
    ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
    Filename  string             `bson:"filename" json:"filename"`
    Total     int                `bson:"total" json:"total"`
    Inserted  int                `bson:"inserted" json:"inserted"`
    Skipped   int                `bson:"skipped" json:"skipped"`
    Errors    []string           `bson:"errors,omitempty" json:"errors,omitempty"`
    UserID    string             `bson:"userid" json:"userid"`
    CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
