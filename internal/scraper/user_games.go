package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/gmkornilov/tactics-trainer/internal/config"
	"github.com/gmkornilov/tactics-trainer/internal/dao"
	"github.com/gmkornilov/tactics-trainer/pkg/puzgen"
	"github.com/gmkornilov/tactics-trainer/pkg/tactic"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"
)

const LichessURL = "https://lichess.org"

// EngineFactory starts an analysis engine and returns it with its cleanup.
type EngineFactory func() (puzgen.Analyzer, func(), error)

func StockfishFactory(cfg config.Stockfish) EngineFactory {
	return func() (puzgen.Analyzer, func(), error) {
		e, err := puzgen.SetupEngine(cfg.Path, cfg.Args...)
		if err != nil {
			return nil, nil, err
		}
		return e, func() { e.Close() }, nil
	}
}

type LichessGameScraperFactory struct {
	BaseURL    string
	HTTPClient *http.Client
	NewEngine  EngineFactory
	PuzzleRepo dao.PuzzleRepository
	Log        zerolog.Logger
}

func NewLichessGameScraperFactory(cfg config.Stockfish, puzzleRepo dao.PuzzleRepository, log zerolog.Logger) *LichessGameScraperFactory {
	return &LichessGameScraperFactory{
		BaseURL:    LichessURL,
		HTTPClient: http.DefaultClient,
		NewEngine:  StockfishFactory(cfg),
		PuzzleRepo: puzzleRepo,
		Log:        log,
	}
}

func (f *LichessGameScraperFactory) CreateWorker(username string, max int) Worker {
	return f.CreateLichessScraper(username, max)
}

func (f *LichessGameScraperFactory) CreateLichessScraper(username string, max int) *LichessGameScraper {
	return &LichessGameScraper{
		username:   username,
		max:        max,
		baseURL:    f.BaseURL,
		httpClient: f.HTTPClient,
		newEngine:  f.NewEngine,
		puzzleRepo: f.PuzzleRepo,
		log:        f.Log.With().Str("username", username).Logger(),
	}
}

// LichessGameScraper imports the tactics found in a lichess user's last games.
type LichessGameScraper struct {
	mu       sync.Mutex
	imported int
	progress float64
	err      error
	done     bool

	username   string
	max        int
	baseURL    string
	httpClient *http.Client
	newEngine  EngineFactory
	puzzleRepo dao.PuzzleRepository
	log        zerolog.Logger
}

func (l *LichessGameScraper) Done() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

func (l *LichessGameScraper) StartWork() {
	go l.Scrap()
}

// Result is the number of imported puzzles.
func (l *LichessGameScraper) Result() interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.imported
}

func (l *LichessGameScraper) Progress() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.progress
}

func (l *LichessGameScraper) Error() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *LichessGameScraper) finish(imported int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.imported = imported
	l.err = err
	l.done = true
	if err == nil {
		l.progress = 1
	}
}

func (l *LichessGameScraper) setProgress(p float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.progress = p
}

// Scrap runs the import synchronously.
func (l *LichessGameScraper) Scrap() {
	imported, err := l.importGames()
	if err != nil {
		l.log.Error().Err(err).Msg("import failed")
	} else {
		l.log.Info().Int("puzzles", imported).Msg("import finished")
	}
	l.finish(imported, err)
}

func (l *LichessGameScraper) importGames() (int, error) {
	games, err := l.fetchGames()
	if err != nil {
		return 0, err
	}
	l.log.Info().Int("games", len(games)).Msg("analyzing games")

	engine, closeEngine, err := l.newEngine()
	if err != nil {
		return 0, fmt.Errorf("error starting engine: %w", err)
	}
	defer closeEngine()

	generated, err := puzgen.NewGenerator(engine).AnalyzeAllGames(games, func(done int) {
		l.setProgress(float64(done) / float64(len(games)))
	})
	if err != nil {
		return 0, fmt.Errorf("error generating puzzles: %w", err)
	}

	puzzles := make([]tactic.Puzzle, 0, len(generated))
	for _, p := range generated {
		puzzles = append(puzzles, p.Puzzle)
	}
	if err = l.puzzleRepo.InsertAllPuzzles(context.Background(), puzzles); err != nil {
		return 0, fmt.Errorf("error saving puzzles to db: %w", err)
	}
	return len(puzzles), nil
}

func (l *LichessGameScraper) fetchGames() ([]*chess.Game, error) {
	u := fmt.Sprintf("%s/api/games/user/%s?max=%d", l.baseURL, url.PathEscape(l.username), l.max)
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/x-chess-pgn")
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s games: %w", l.username, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("user %s doesn't exist on lichess", l.username)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error fetching %s games: %s", l.username, resp.Status)
	}

	scanner := chess.NewScanner(resp.Body)
	games := make([]*chess.Game, 0)
	for scanner.Scan() {
		games = append(games, scanner.Next())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s games: %w", l.username, err)
	}
	return games, nil
}
