package models

import (
    "go.mongodb.org/mongo-driver/bson/primitive"
)

// Service is one price-list entry of the laundromat catalog.
// Category: "washing" | "drying" | "ironing" | "other".
type Service struct {
    ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
    Name     string             `bson:"name" json:"name"`
    Category string             `bson:"category" json:"category"`
    Price    float64            `bson:"price" json:"price"`
    Unit     string             `bson:"unit,omitempty" json:"unit,omitempty"`
    Active   bool               `bson:"active" json:"active"`
}
