package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/board-service/internal/core/domain"
	"github.com/taskboard/board-service/internal/core/ports"
)

// BoardRepository implements ports.BoardRepository and ports.CardRepository
// over the workspaces, boards, lists and cards collections.
type BoardRepository struct {
	workspaces *mongo.Collection
	boards     *mongo.Collection
	lists      *mongo.Collection
	cards      *mongo.Collection
}

func NewBoardRepository(db *mongo.Database) *BoardRepository {
	return &BoardRepository{
		workspaces: db.Collection(collectionWorkspaces),
		boards:     db.Collection(collectionBoards),
		lists:      db.Collection(collectionLists),
		cards:      db.Collection(collectionCards),
	}
}

var (
	_ ports.BoardRepository = (*BoardRepository)(nil)
	_ ports.CardRepository  = (*BoardRepository)(nil)
)

// findByID decodes the document with the given hex id into out, returning
// notFound when the id is malformed or no document matches.
func findByID(ctx context.Context, col *mongo.Collection, id string, out any, notFound error) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return notFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return notFound
		}
		return fmt.Errorf("find %s %s: %w", col.Name(), id, err)
	}
	return nil
}

// FindBoard returns the board with the given id. Soft-deleted boards are
// returned as-is; filtering is left to callers.
func (r *BoardRepository) FindBoard(ctx context.Context, id string) (*domain.Board, error) {
	var doc boardDoc
	if err := findByID(ctx, r.boards, id, &doc, domain.ErrBoardNotFound); err != nil {
		return nil, err
	}
	b := doc.toDomain()
	return &b, nil
}

func (r *BoardRepository) FindList(ctx context.Context, id string) (*domain.List, error) {
	var doc listDoc
	if err := findByID(ctx, r.lists, id, &doc, domain.ErrListNotFound); err != nil {
		return nil, err
	}
	l := doc.toDomain()
	return &l, nil
}

func (r *BoardRepository) FindCard(ctx context.Context, id string) (*domain.Card, error) {
	var doc cardDoc
	if err := findByID(ctx, r.cards, id, &doc, domain.ErrCardNotFound); err != nil {
		return nil, err
	}
	c := doc.toDomain()
	return &c, nil
}

func (r *BoardRepository) FindWorkspace(ctx context.Context, id string) (*domain.Workspace, error) {
	var doc workspaceDoc
	if err := findByID(ctx, r.workspaces, id, &doc, domain.ErrWorkspaceNotFound); err != nil {
		return nil, err
	}
	ws := doc.toDomain()
	return &ws, nil
}

// dueFilter builds the $match stage for FindDue.
func dueFilter(f ports.DueCardsFilter) (bson.M, error) {
	match := bson.M{
		"is_deleted": bson.M{"$ne": true},
		"due_date": bson.M{
			"$ne":  nil,
			"$gte": f.From.UTC(),
			"$lte": f.To.UTC(),
		},
	}
	if !f.IncludeCompleted {
		match["completed"] = bson.M{"$ne": true}
	}
	if f.MemberID != "" {
		oid, err := primitive.ObjectIDFromHex(f.MemberID)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		match["members"] = oid
	}
	return match, nil
}

// FindDue returns cards due in [From, To] with their board expanded, ordered
// by due date.
func (r *BoardRepository) FindDue(ctx context.Context, f ports.DueCardsFilter) ([]domain.Card, error) {
	match, err := dueFilter(f)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "due_date", Value: 1}}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         collectionBoards,
			"localField":   "board",
			"foreignField": "_id",
			"as":           "board_doc",
		}}},
	}

	cur, err := r.cards.Aggregate(ctx, pipe)
	if err != nil {
		return nil, fmt.Errorf("find due cards: %w", err)
	}
	defer cur.Close(ctx)

	var docs []cardDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode due cards: %w", err)
	}

	cards := make([]domain.Card, len(docs))
	for i, d := range docs {
		cards[i] = d.toDomain()
	}
	return cards, nil
}

// EnsureIndexes creates the indexes used by lineage lookups and due queries.
func (r *BoardRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := r.lists.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "board", Value: 1}},
	}); err != nil {
		return fmt.Errorf("lists indexes: %w", err)
	}

	_, err := r.cards.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "board", Value: 1}}},
		{Keys: bson.D{{Key: "members", Value: 1}, {Key: "due_date", Value: 1}}},
		{Keys: bson.D{{Key: "due_date", Value: 1}, {Key: "completed", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("cards indexes: %w", err)
	}
	return nil
}
