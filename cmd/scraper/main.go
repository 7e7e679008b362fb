package main

import (
	"os"

	"github.com/gmkornilov/tactics-trainer/internal/config"
	"github.com/gmkornilov/tactics-trainer/internal/dao"
	"github.com/gmkornilov/tactics-trainer/internal/db"
	"github.com/gmkornilov/tactics-trainer/internal/logging"
	"github.com/gmkornilov/tactics-trainer/internal/scraper"
	flag "github.com/spf13/pflag"
)

func main() {
	username := flag.StringP("user", "u", "", "lichess user whose games are imported")
	max := flag.IntP("max", "n", 20, "number of recent games to analyze")
	flag.Parse()

	cfg, err := config.InitScraperConfig()
	if err != nil {
		panic(err)
	}
	log := logging.New(os.Stderr, cfg.LogLevel)
	if *username == "" {
		log.Fatal().Msg("--user is required")
	}

	dbClient, err := db.NewDbClient(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to mongo")
	}
	defer dbClient.Close()

	puzzleRepo := dao.NewPuzzleRepository(dbClient)
	worker := scraper.NewLichessGameScraperFactory(cfg.Stockfish, puzzleRepo, log).CreateLichessScraper(*username, *max)
	worker.Scrap()
	if err := worker.Error(); err != nil {
		dbClient.Close()
		log.Fatal().Err(err).Msg("import failed")
	}
	log.Info().Interface("puzzles", worker.Result()).Msg("done")
}
