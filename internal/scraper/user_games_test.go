package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/freeeve/uci"
	"github.com/gmkornilov/tactics-trainer/pkg/puzgen"
	"github.com/gmkornilov/tactics-trainer/pkg/tactic"
	"github.com/rs/zerolog"
)

const scholarPGN = `[Event "Casual"]
[Site "https://lichess.org/abcdefgh"]
[White "alice"]
[Black "bob"]
[WhiteElo "1600"]
[BlackElo "1500"]
[Result "1-0"]

1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7# 1-0

`

const quietPGN = `[Event "Casual"]
[Site "https://lichess.org/ijklmnop"]
[White "alice"]
[Black "carol"]
[Result "1/2-1/2"]

1. d4 d5 2. c4 e6 1/2-1/2

`

type mateEngine struct {
	fen   string
	calls int
}

func (e *mateEngine) SetFEN(fen string) error {
	e.fen = fen
	return nil
}

func (e *mateEngine) GoDepth(depth int, resultOpts ...uint) (*uci.Results, error) {
	e.calls++
	if strings.HasPrefix(e.fen, "r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR ") {
		return &uci.Results{Results: []uci.ScoreResult{
			{Depth: depth, MultiPV: 1, Mate: true, Score: 1, BestMoves: []string{"h5f7"}},
		}}, nil
	}
	return &uci.Results{}, nil
}

type memoryRepo struct {
	mu      sync.Mutex
	puzzles []tactic.Puzzle
	err     error
}

func (m *memoryRepo) GetRandomPuzzle(ctx context.Context, req tactic.Request) (tactic.Puzzle, error) {
	return tactic.Puzzle{}, errors.New("not implemented")
}

func (m *memoryRepo) GetPuzzle(ctx context.Context, id string) (tactic.Puzzle, error) {
	return tactic.Puzzle{}, errors.New("not implemented")
}

func (m *memoryRepo) InsertPuzzle(ctx context.Context, puzzle tactic.Puzzle) error {
	return m.InsertAllPuzzles(ctx, []tactic.Puzzle{puzzle})
}

func (m *memoryRepo) InsertAllPuzzles(ctx context.Context, puzzles []tactic.Puzzle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.puzzles = append(m.puzzles, puzzles...)
	return nil
}

func newTestFactory(t *testing.T, handler http.HandlerFunc, repo *memoryRepo) *LichessGameScraperFactory {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	closed := false
	t.Cleanup(func() {
		if !closed {
			t.Error("engine was not closed")
		}
	})
	return &LichessGameScraperFactory{
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
		NewEngine: func() (puzgen.Analyzer, func(), error) {
			return &mateEngine{}, func() { closed = true }, nil
		},
		PuzzleRepo: repo,
		Log:        zerolog.Nop(),
	}
}

func TestScrapImportsPuzzles(t *testing.T) {
	repo := &memoryRepo{}
	f := newTestFactory(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/games/user/alice" || r.URL.Query().Get("max") != "20" {
			t.Errorf("unexpected request %s", r.URL)
		}
		w.Write([]byte(scholarPGN))
	}, repo)

	w := f.CreateLichessScraper("alice", 20)
	w.Scrap()
	if !w.Done() || w.Error() != nil {
		t.Fatalf("done = %v err = %v", w.Done(), w.Error())
	}
	if w.Result() != 1 || w.Progress() != 1 {
		t.Fatalf("result = %v progress = %v", w.Result(), w.Progress())
	}
	if len(repo.puzzles) != 1 || strings.Join(repo.puzzles[0].Moves, " ") != "g8f6 h5f7" {
		t.Fatalf("stored puzzles = %+v", repo.puzzles)
	}
}

func TestScrapSeveralGames(t *testing.T) {
	repo := &memoryRepo{}
	engine := &mateEngine{}
	f := newTestFactory(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(quietPGN + scholarPGN))
	}, repo)
	newEngine := f.NewEngine
	f.NewEngine = func() (puzgen.Analyzer, func(), error) {
		_, cleanup, err := newEngine()
		return engine, cleanup, err
	}

	w := f.CreateLichessScraper("alice", 2)
	w.Scrap()
	if w.Error() != nil {
		t.Fatal(w.Error())
	}
	// 4 positions of the quiet game, 6 of the mating one (the mate itself is skipped)
	if engine.calls != 10 {
		t.Fatalf("engine analyzed %d positions, want 10 from both games", engine.calls)
	}
	if w.Result() != 1 || len(repo.puzzles) != 1 {
		t.Fatalf("result = %v stored = %d", w.Result(), len(repo.puzzles))
	}
}

func TestStartWorkRunsInBackground(t *testing.T) {
	repo := &memoryRepo{}
	f := newTestFactory(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scholarPGN))
	}, repo)

	w := f.CreateWorker("alice", 5)
	w.StartWork()
	deadline := time.Now().Add(5 * time.Second)
	for !w.Done() {
		if time.Now().After(deadline) {
			t.Fatal("worker did not finish")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if w.Error() != nil {
		t.Fatal(w.Error())
	}
}

func TestScrapUnknownUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()
	f := &LichessGameScraperFactory{
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
		NewEngine: func() (puzgen.Analyzer, func(), error) {
			t.Fatal("engine started for a missing user")
			return nil, nil, nil
		},
		PuzzleRepo: &memoryRepo{},
		Log:        zerolog.Nop(),
	}
	w := f.CreateLichessScraper("nobody", 5)
	w.Scrap()
	if !w.Done() || w.Error() == nil || !strings.Contains(w.Error().Error(), "doesn't exist") {
		t.Fatalf("done = %v err = %v", w.Done(), w.Error())
	}
}

func TestScrapStoreFailure(t *testing.T) {
	repo := &memoryRepo{err: errors.New("db down")}
	f := newTestFactory(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scholarPGN))
	}, repo)
	w := f.CreateLichessScraper("alice", 5)
	w.Scrap()
	if w.Error() == nil || w.Result() != 0 {
		t.Fatalf("err = %v result = %v", w.Error(), w.Result())
	}
}
