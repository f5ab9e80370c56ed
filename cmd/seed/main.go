package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/beanhouse-cafe/api/internal/config"
	"github.com/beanhouse-cafe/api/internal/store"
)

// Seeds the menu catalog into the configured document store. Safe to run
// repeatedly: items whose names already exist are skipped.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	ctx := context.Background()
	st, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Fatal("Failed to connect to store", zap.Error(err))
	}
	defer st.Close(ctx)

	items := []store.MenuItem{
		{Name: "Espresso", Price: 120, Category: "Coffee"},
		{Name: "Latte", Price: 180, Category: "Coffee"},
		{Name: "Cappuccino", Price: 180, Category: "Coffee"},
		{Name: "Mocha", Price: 200, Category: "Coffee"},
		{Name: "Green Tea", Price: 150, Category: "Tea"},
		{Name: "Croissant", Price: 140, Category: "Pastry"},
		{Name: "Cheesecake", Price: 250, Category: "Dessert"},
		{Name: "Still Water", Price: 80, Category: "Other"},
	}

	created := 0
	for _, item := range items {
		item.ID = uuid.NewString()
		if _, err := st.CreateMenuItem(ctx, item); err != nil {
			if errors.Is(err, store.ErrDuplicateName) {
				logger.Info("Skipping existing item", zap.String("name", item.Name))
				continue
			}
			logger.Fatal("Failed to seed item", zap.String("name", item.Name), zap.Error(err))
		}
		created++
	}

	logger.Info("Menu seed complete", zap.Int("created", created), zap.Int("total", len(items)))
}
