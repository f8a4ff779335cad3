package models

import (
    "time"

    "go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles: "admin" has full access, "viewer" is read-only.
type User struct {
    ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
    FirstName       string             `bson:"first_name" json:"first_name"`
    LastName        string             `bson:"last_name" json:"last_name"`
    Email           string             `bson:"email" json:"email"`
    Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
    Role            string             `bson:"role" json:"role"`
    Password        string             `bson:"password,omitempty" json:"password,omitempty"`
    RecoveryCode    string             `bson:"recovery_code,omitempty" json:"recoveryCode,omitempty"`
    RecoveryExpires time.Time          `bson:"recovery_expires,omitempty" json:"recoveryExpires,omitempty"`
    CreatedAt       time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}
