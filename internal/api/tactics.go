package api

import (
	"crypto/md5"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gmkornilov/tactics-trainer/internal/dao"
	"github.com/gmkornilov/tactics-trainer/internal/scraper"
	"github.com/gmkornilov/tactics-trainer/internal/source"
	"github.com/gmkornilov/tactics-trainer/pkg/tactic"
	"github.com/rs/zerolog"
)

const maxImportGames = 300

type TacticApi struct {
	PuzzleRepository dao.PuzzleRepository
	WorkerFactory    scraper.WorkerFactory
	log              zerolog.Logger
	activeJobs       map[string]scraper.Worker
	totalJobs        int
	mu               sync.RWMutex
}

func NewTacticApi(puzzleRepo dao.PuzzleRepository, workerFactory scraper.WorkerFactory, log zerolog.Logger) *TacticApi {
	return &TacticApi{
		PuzzleRepository: puzzleRepo,
		WorkerFactory:    workerFactory,
		log:              log,
		activeJobs:       make(map[string]scraper.Worker),
	}
}

func NewRouter(t *TacticApi) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.POST(source.TacticPath, t.Tactic)
	r.GET(source.TacticPath+"/:id", t.TacticByID)
	r.POST("/api/v1/import/:username", t.StartImport)
	r.GET("/api/v1/jobs/:job_id", t.GetJobStatus)
	return r
}

// Tactic serves a random puzzle matching the request body.
func (t *TacticApi) Tactic(ctx *gin.Context) {
	var req tactic.Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.RatingGte != nil && req.RatingLte != nil && *req.RatingGte > *req.RatingLte {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "rating_gte is above rating_lte"})
		return
	}

	puzzle, err := t.PuzzleRepository.GetRandomPuzzle(ctx.Request.Context(), req)
	t.respondPuzzle(ctx, puzzle, err)
}

func (t *TacticApi) TacticByID(ctx *gin.Context) {
	puzzle, err := t.PuzzleRepository.GetPuzzle(ctx.Request.Context(), ctx.Param("id"))
	t.respondPuzzle(ctx, puzzle, err)
}

func (t *TacticApi) respondPuzzle(ctx *gin.Context, puzzle tactic.Puzzle, err error) {
	if errors.Is(err, dao.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		t.log.Error().Err(err).Str("path", ctx.FullPath()).Msg("load puzzle")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, puzzle)
}

func (t *TacticApi) StartImport(ctx *gin.Context) {
	name := ctx.Param("username")
	max, err := strconv.Atoi(ctx.DefaultQuery("max", "20"))
	if err != nil || max <= 0 || max > maxImportGames {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("max should be an integer between 1 and %d", maxImportGames),
		})
		return
	}

	worker := t.WorkerFactory.CreateWorker(name, max)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.totalJobs++
	id := fmt.Sprintf("%x", md5.Sum([]byte(strconv.Itoa(t.totalJobs))))
	t.activeJobs[id] = worker
	worker.StartWork()
	t.log.Info().Str("job_id", id).Str("username", name).Int("max", max).Msg("import started")
	ctx.JSON(http.StatusOK, gin.H{
		"job_id": id,
	})
}

func (t *TacticApi) GetJobStatus(ctx *gin.Context) {
	id := ctx.Param("job_id")
	t.mu.Lock()
	defer t.mu.Unlock()
	worker, ok := t.activeJobs[id]
	if !ok {
		ctx.AbortWithStatus(http.StatusNotFound)
		return
	}
	if !worker.Done() {
		ctx.JSON(http.StatusOK, gin.H{
			"done":     false,
			"progress": worker.Progress(),
		})
		return
	}
	delete(t.activeJobs, id)
	if worker.Error() != nil {
		ctx.JSON(http.StatusOK, gin.H{
			"done":  true,
			"error": worker.Error().Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"done":     true,
		"progress": worker.Progress(),
		"result":   worker.Result(),
	})
}
