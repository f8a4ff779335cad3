package models

import (
    "go.mongodb.org/mongo-driver/bson/primitive"
)

// Settings is a single-document collection (upsert on a fixed key).
type Settings struct {
    ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
    Key          string             `bson:"key" json:"-"`
    BusinessName string             `bson:"business_name" json:"business_name"`
    Currency     string             `bson:"currency" json:"currency"`
    ReportEmail  string             `bson:"report_email" json:"report_email"`
}
