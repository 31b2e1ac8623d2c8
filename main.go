package main

import (
	"fmt"
	"os"

	"github.com/afsumeem/recipe-share-backend/api"
	"github.com/afsumeem/recipe-share-backend/config"
	"github.com/afsumeem/recipe-share-backend/db"
	"github.com/afsumeem/recipe-share-backend/payment"
	"github.com/afsumeem/recipe-share-backend/tokenmanager/token"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configs, err := config.LoadConfig("./config", "config.json")
	if err != nil {
		panic(fmt.Sprintf("could not load configs: %v", err.Error()))
	}

	if configs.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	tokenMaker, err := token.NewJWTMaker(configs.TokenSymmetricKey)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create token maker instance")
	}
	log.Info().Msg("token maker instance was created")

	store, err := db.NewStore(configs)
	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize database")
	}
	defer store.Disconnect()
	log.Info().Msg("initialized database")

	payments := payment.NewStripeClient(configs.StripeSecretKey)

	server := api.NewServer(store, tokenMaker, configs, payments)

	log.Info().Msg(fmt.Sprintf("starting server on %v", configs.HTTPServer))
	err = server.Start(configs.HTTPServer)
	if err != nil {
		log.Fatal().Err(err).Msg("could not start server")
	}
}
