package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Email      string             `bson:"email" json:"email"`
	Name       string             `bson:"name" json:"name"`
	Password   string             `bson:"password" json:"-"`
	Role       string             `bson:"role" json:"role"` // "admin" or "staff"
	Department string             `bson:"department" json:"department"`
	Status     string             `bson:"status" json:"status"`
}
