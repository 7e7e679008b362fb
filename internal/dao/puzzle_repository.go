package dao

import (
	"context"
	"errors"
	"time"

	"github.com/gmkornilov/tactics-trainer/internal/db"
	"github.com/gmkornilov/tactics-trainer/pkg/tactic"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const queryTimeout = 5 * time.Second

var ErrNotFound = errors.New("no puzzle found")

type PuzzleRepository interface {
	GetRandomPuzzle(ctx context.Context, req tactic.Request) (tactic.Puzzle, error)

	GetPuzzle(ctx context.Context, id string) (tactic.Puzzle, error)

	InsertPuzzle(ctx context.Context, puzzle tactic.Puzzle) error

	// InsertAllPuzzles upserts by id, so re-importing a game is harmless.
	InsertAllPuzzles(ctx context.Context, puzzles []tactic.Puzzle) error
}

type puzzleRepository struct {
	dbClient *db.PuzzleDbClient
}

func NewPuzzleRepository(dbClient *db.PuzzleDbClient) PuzzleRepository {
	return &puzzleRepository{dbClient}
}

// PuzzleFilter builds the match stage for req: inclusive rating bounds and
// at least one of the requested tags.
func PuzzleFilter(req tactic.Request) bson.D {
	filter := bson.D{}
	rating := bson.D{}
	if req.RatingGte != nil {
		rating = append(rating, bson.E{"$gte", *req.RatingGte})
	}
	if req.RatingLte != nil {
		rating = append(rating, bson.E{"$lte", *req.RatingLte})
	}
	if len(rating) > 0 {
		filter = append(filter, bson.E{"rating", rating})
	}
	if len(req.Tags) > 0 {
		filter = append(filter, bson.E{"tags", bson.D{{"$in", req.Tags}}})
	}
	return filter
}

func (t *puzzleRepository) GetRandomPuzzle(ctx context.Context, req tactic.Request) (tactic.Puzzle, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	matchStage := bson.D{{"$match", PuzzleFilter(req)}}
	sampleStage := bson.D{{"$sample", bson.D{{"size", 1}}}}

	cursor, err := t.dbClient.PuzzleCollection.Aggregate(ctx, mongo.Pipeline{matchStage, sampleStage})
	if err != nil {
		return tactic.Puzzle{}, err
	}

	var loaded []tactic.Puzzle
	if err = cursor.All(ctx, &loaded); err != nil {
		return tactic.Puzzle{}, err
	}
	if len(loaded) == 0 {
		return tactic.Puzzle{}, ErrNotFound
	}
	return loaded[0], nil
}

func (t *puzzleRepository) GetPuzzle(ctx context.Context, id string) (tactic.Puzzle, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var puzzle tactic.Puzzle
	err := t.dbClient.PuzzleCollection.FindOne(ctx, bson.D{{"_id", id}}).Decode(&puzzle)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return tactic.Puzzle{}, ErrNotFound
	}
	return puzzle, err
}

func (t *puzzleRepository) InsertPuzzle(ctx context.Context, puzzle tactic.Puzzle) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := t.dbClient.PuzzleCollection.InsertOne(ctx, puzzle)
	return err
}

func (t *puzzleRepository) InsertAllPuzzles(ctx context.Context, puzzles []tactic.Puzzle) error {
	if len(puzzles) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	models := make([]mongo.WriteModel, 0, len(puzzles))
	for _, p := range puzzles {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{"_id", p.ID}}).
			SetReplacement(p).
			SetUpsert(true))
	}
	_, err := t.dbClient.PuzzleCollection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}
