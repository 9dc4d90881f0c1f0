// server/cmd/api/main.go
package main

import (
	"context"
	"log"

	"procureflow-api-server/config"
	"procureflow-api-server/internal/api/routes"
	"procureflow-api-server/internal/auth"
	"procureflow-api-server/internal/database"
	"procureflow-api-server/internal/pipeline"
	"procureflow-api-server/internal/s3"
	"procureflow-api-server/internal/socket"
	"procureflow-api-server/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the variables directly.
	godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	auth.Init(cfg.JWT.Secret, cfg.JWT.Expiration)

	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.SeedAdmin(db, cfg.Seed); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// One store per collection, one owner per entity list.
	ledger := pipeline.NewRequestLedger(store.NewMongoRequestStore(db))
	rfqBook := pipeline.NewRFQBook(store.NewMongoRFQStore(db))
	dispatcher := pipeline.NewRFQDispatcher(ledger, rfqBook)
	synchronizer := pipeline.NewOrderSynchronizer(store.NewMongoOrderStore(db), rfqBook)

	ctx := context.Background()
	ledger.Load(ctx)
	rfqBook.Load(ctx)
	// Loading orders runs the first reconciliation pass, repairing any RFQ
	// left unmarked by a crash between order creation and RFQ update.
	synchronizer.Load(ctx)

	var s3Uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		s3Uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Failed to initialize S3 uploader: %v", err)
		}
	} else {
		log.Println("S3 bucket not configured; quote document uploads are disabled")
	}

	wsHub := socket.NewHub()

	router := routes.SetupRouter(cfg, db, ledger, dispatcher, rfqBook, synchronizer, s3Uploader, wsHub)

	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
