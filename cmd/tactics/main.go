package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gmkornilov/tactics-trainer/internal/config"
	"github.com/gmkornilov/tactics-trainer/internal/logging"
	"github.com/gmkornilov/tactics-trainer/internal/source"
	"github.com/gmkornilov/tactics-trainer/internal/trainer"
	"github.com/gmkornilov/tactics-trainer/pkg/tactic"
	flag "github.com/spf13/pflag"
)

func main() {
	rating := flag.StringP("rating", "r", "", "The rating range of the tactics to fetch. Try 0-1200 for easy, 1200-1800 for\nintermediate, or 1800-3000 for difficult tactics.")
	tags := flag.StringArrayP("tags", "t", nil, "Optionally specify a list of tags to get tactics for. Every tactic returned will have one\nof these tags")
	flag.Parse()

	cfg, err := config.InitTrainerConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}
	log := logging.New(os.Stderr, cfg.LogLevel)

	ratingRange, err := tactic.ParseRatingRange(*rating)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid rating range")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	client := source.NewClient(cfg.ServerURL, nil, log)
	puzzle, err := client.GetNewPuzzle(ctx, tactic.NewRequest(ratingRange, *tags))
	cancel()
	if err != nil {
		log.Fatal().Err(err).Str("endpoint", client.Endpoint()).Msg("Failed to get a new tactic from the server, exiting.")
	}
	log.Info().Str("id", puzzle.ID).Int("rating", puzzle.Rating).Strs("tags", puzzle.Tags).Msg("starting tactic")

	board := trainer.NewBoardRenderer(!cfg.NoColor && !color.NoColor)
	session, err := trainer.NewSession(puzzle, os.Stdout, board)
	if err != nil {
		log.Fatal().Err(err).Str("id", puzzle.ID).Msg("cannot start tactic")
	}
	if err := session.Run(os.Stdin); err != nil {
		log.Fatal().Err(err).Str("id", puzzle.ID).Msg("tactic aborted")
	}

	score := session.Score()
	fmt.Printf("Solved %d of %d moves on the first try. Tactic rating: %d\n", score.FirstTry, score.Plies, puzzle.Rating)
	if puzzle.GameLink != "" {
		fmt.Println(puzzle.GameLink)
	}
}
