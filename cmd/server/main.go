package main

import (
	"context"
	"log"

	"github.com/thomsonxavier/kaviecommerce/internal/api"
	"github.com/thomsonxavier/kaviecommerce/internal/config"
	"github.com/thomsonxavier/kaviecommerce/internal/db"
	"github.com/thomsonxavier/kaviecommerce/internal/identity"
	"github.com/thomsonxavier/kaviecommerce/internal/kvstore"
	"github.com/thomsonxavier/kaviecommerce/internal/logger"
	"github.com/thomsonxavier/kaviecommerce/internal/order"
	"github.com/thomsonxavier/kaviecommerce/internal/product"
	"github.com/thomsonxavier/kaviecommerce/internal/stats"
	"github.com/thomsonxavier/kaviecommerce/internal/storage"
	"github.com/thomsonxavier/kaviecommerce/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	store := kvstore.NewPostgresStore(database)

	identitySvc := identity.NewService(identity.NewRepository(store), cfg.JWTSecret)
	productSvc := product.NewService(product.NewRepository(store))
	userSvc := user.NewService(user.NewRepository(store))
	orderSvc := order.NewService(order.NewRepository(store), productSvc, userSvc, identitySvc)
	statsSvc := stats.NewService(orderSvc, userSvc)

	blobs, err := newBlobStore(cfg)
	if err != nil {
		log.Fatalf("failed to init blob store: %v", err)
	}

	router := api.NewRouter(api.Deps{
		Identity: identitySvc,
		Orders:   orderSvc,
		Products: productSvc,
		Users:    userSvc,
		Stats:    statsSvc,
		Blobs:    blobs,
	}, cfg.BasePath)

	logger.L().Info("🚀 server listening",
		zap.String("port", cfg.AppPort),
		zap.String("base_path", cfg.BasePath),
	)

	if err := router.Run(":" + cfg.AppPort); err != nil {
		log.Fatal(err)
	}
}

func newBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	if cfg.StorageDriver == "gcs" {
		return storage.NewGCSStore(context.Background(), cfg.StorageBucket, cfg.GCSKeyPath)
	}
	return storage.NewLocalStore(cfg.UploadDir, cfg.PublicURL)
}
