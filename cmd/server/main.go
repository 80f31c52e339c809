package main

import (
	"github.com/Temni23/foodgram-backend/cmd/config"
	migration "github.com/Temni23/foodgram-backend/cmd/database/migrate"
	"github.com/Temni23/foodgram-backend/internal/utils"
	"github.com/Temni23/foodgram-backend/pkg/logger"
)

func main() {
	utils.LoadConfig()
	logger.Init("foodgram-backend", utils.GetConfig("APP_ENV") != "production")

	db, err := config.ConnectDB()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := migration.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	app, err := config.NewApp(db)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build application")
	}

	addr := ":" + utils.GetConfig("APP_PORT")
	logger.Info().Str("addr", addr).Msg("starting server")
	if err := app.Listen(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
