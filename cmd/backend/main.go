package main

import (
	"net"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gmkornilov/tactics-trainer/internal/api"
	"github.com/gmkornilov/tactics-trainer/internal/config"
	"github.com/gmkornilov/tactics-trainer/internal/dao"
	"github.com/gmkornilov/tactics-trainer/internal/db"
	"github.com/gmkornilov/tactics-trainer/internal/logging"
	"github.com/gmkornilov/tactics-trainer/internal/scraper"
)

func main() {
	cfg, err := config.InitServerConfig()
	if err != nil {
		panic(err)
	}
	log := logging.New(os.Stderr, cfg.LogLevel)

	dbClient, err := db.NewDbClient(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to mongo")
	}
	defer dbClient.Close()

	puzzleRepo := dao.NewPuzzleRepository(dbClient)
	workerFactory := scraper.NewLichessGameScraperFactory(cfg.Stockfish, puzzleRepo, log)
	tacticApi := api.NewTacticApi(puzzleRepo, workerFactory, log)

	gin.SetMode(gin.ReleaseMode)
	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("serving tactics")
	if err := api.NewRouter(tacticApi).Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}
