package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"os"

	"github.com/Temni23/foodgram-backend/cmd/config"
	migration "github.com/Temni23/foodgram-backend/cmd/database/migrate"
	"github.com/Temni23/foodgram-backend/domain"
	"github.com/Temni23/foodgram-backend/internal/utils"
	"github.com/Temni23/foodgram-backend/pkg/catalog"
	"github.com/Temni23/foodgram-backend/pkg/logger"
)

// Imports the ingredient catalog from a two-column CSV:
// name,measurement_unit. Existing (name, unit) pairs are skipped.
func main() {
	filePath := flag.String("file", "data/ingredients.csv", "path to the ingredients CSV file")
	flag.Parse()

	utils.LoadConfig()
	logger.Init("foodgram-ingredients", utils.GetConfig("APP_ENV") != "production")

	db, err := config.ConnectDB()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := migration.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	file, err := os.Open(*filePath)
	if err != nil {
		logger.Fatal().Err(err).Str("file", *filePath).Msg("failed to open CSV file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 2

	var rows []domain.CreateIngredientRequest
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to read CSV record")
		}
		rows = append(rows, domain.CreateIngredientRequest{
			Name:            record[0],
			MeasurementUnit: record[1],
		})
	}

	catalogService := catalog.NewCatalogService(catalog.NewCatalogRepository(db))
	imported, skipped, err := catalogService.ImportIngredients(context.Background(), rows)
	if err != nil {
		logger.Fatal().Err(err).Int("imported", imported).Msg("import failed")
	}

	logger.Info().
		Int("imported", imported).
		Int("skipped", skipped).
		Msg("ingredients imported successfully")
}
