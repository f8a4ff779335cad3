package models

import (
    "time"

    "go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketScan stores one OCR-recognized ticket awaiting review.
// Status: "draft" | "accepted" | "rejected".
type TicketScan struct {
    ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
    RawText       string             `bson:"rawtext" json:"rawtext"`
    TicketNumber  string             `bson:"ticketnumber,omitempty" json:"ticketnumber,omitempty"`
    Date          time.Time          `bson:"date,omitempty" json:"date,omitempty"`
    Total         float64            `bson:"total,omitempty" json:"total,omitempty"`
    Items         []TicketItem       `bson:"items,omitempty" json:"items,omitempty"`
    PhotoURL      string             `bson:"photourl,omitempty" json:"photourl,omitempty"`
    Status        string             `bson:"status" json:"status"`
    TransactionID string             `bson:"transactionid,omitempty" json:"transactionid,omitempty"`
    UserID        string             `bson:"userid,omitempty" json:"userid,omitempty"`
    CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// TicketItem is one service line extracted from the ticket text.
type TicketItem struct {
    Name   string  `bson:"name" json:"name"`
    Amount float64 `bson:"amount" json:"amount"`
}
