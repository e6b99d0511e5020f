package cmd

import (
	"context"
	"log"

	"market-tracker/core/config"
	"market-tracker/core/database"
	"market-tracker/core/hashing"
	"market-tracker/core/logger"
	"market-tracker/feature/upload"
	"market-tracker/feature/upload/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	provisionName string
	provisionKey  string
)

// provisionCmd registers a trusted upload source. Only the key's digest
// is stored, so the raw key shown here is the only copy.
var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Register a trusted upload source",
	Long: `Registers a client allowed to upload market data. The API key is
hashed before storage; hand the raw key to the client out of band.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&logger.Config{Level: "debug", Format: "console"})
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}

		store := upload.NewStore(db)
		if err := store.Migrate(); err != nil {
			logg.Fatal("Trusted source migration failed", zap.Error(err))
		}

		keyHash, err := provisionSource(context.Background(), store, provisionName, provisionKey)
		if err != nil {
			logg.Fatal("Failed to create trusted source", zap.Error(err))
		}

		logg.Info("Trusted source registered",
			zap.String("name", provisionName),
			zap.String("key_hash", keyHash))
	},
}

// provisionSource hashes the raw key and registers the source, returning
// the stored digest.
func provisionSource(ctx context.Context, store *upload.Store, name, rawKey string) (string, error) {
	keyHash, err := hashing.HashString(rawKey)
	if err != nil {
		return "", err
	}
	err = store.Create(ctx, &models.TrustedSource{
		Name:       name,
		APIKeyHash: keyHash,
	})
	if err != nil {
		return "", err
	}
	return keyHash, nil
}

func init() {
	provisionCmd.Flags().StringVar(&provisionName, "name", "", "client name")
	provisionCmd.Flags().StringVar(&provisionKey, "key", "", "raw API key to register")
	_ = provisionCmd.MarkFlagRequired("name")
	_ = provisionCmd.MarkFlagRequired("key")
	RootCmd.AddCommand(provisionCmd)
}
