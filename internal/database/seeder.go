// server/internal/database/seeder.go
package database

import (
	"context"
	"log"

	"procureflow-api-server/config"
	"procureflow-api-server/internal/auth"
	"procureflow-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedAdmin creates the initial admin account if it does not exist yet.
func SeedAdmin(db *mongo.Database, cfg config.SeedConfig) error {
	email := cfg.AdminEmail
	if email == "" {
		email = "admin@example.com"
	}
	password := cfg.AdminPassword
	if password == "" {
		password = "adminpassword"
	}

	userCollection := db.Collection("users")
	count, err := userCollection.CountDocuments(context.Background(), bson.M{"email": email})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Admin user already exists. Seeding skipped.")
		return nil
	}

	log.Println("Admin user not found. Seeding...")
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:      email,
		Name:       "Administrator",
		Password:   hashedPassword,
		Role:       "admin",
		Department: "Procurement",
		Status:     "active",
	}

	if _, err := userCollection.InsertOne(context.Background(), admin); err != nil {
		return err
	}

	log.Println("Admin user seeded successfully.")
	return nil
}
