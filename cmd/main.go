package main

import (
	"log"

	"github.com/saeidalz13/battleship-skirmish/api"
	"github.com/saeidalz13/battleship-skirmish/db"
	"github.com/saeidalz13/battleship-skirmish/internal/config"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	opts := []api.Option{
		api.WithPort(cfg.Port),
		api.WithStage(cfg.Stage),
		api.WithDifficulty(cfg.CompDifficulty),
		api.WithSeed(cfg.GameSeed),
		api.WithCueDelay(true),
	}

	// Analytics are optional; the game never needs the database.
	if cfg.DatabaseUrl != "" {
		psqlDb := db.MustConnectToDb(cfg.DatabaseUrl)
		defer psqlDb.Close()
		opts = append(opts, api.WithDb(psqlDb))
	} else {
		log.Println("DATABASE_URL not set, analytics disabled")
	}

	server := api.NewServer(opts...)
	if err := server.Run(); err != nil {
		log.Println(err)
	}
	log.Println("game over, bye")
}
