package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskboard/board-service/internal/core/domain"
)

type workspaceDoc struct {
	ID        primitive.ObjectID   `bson:"_id"`
	Name      string               `bson:"name"`
	Owner     primitive.ObjectID   `bson:"owner"`
	Members   []primitive.ObjectID `bson:"members"`
	CreatedAt time.Time            `bson:"created_at"`
}

func (d workspaceDoc) toDomain() domain.Workspace {
	return domain.Workspace{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		OwnerID:   hexOrEmpty(d.Owner),
		MemberIDs: hexIDs(d.Members),
		CreatedAt: d.CreatedAt,
	}
}

type boardDoc struct {
	ID        primitive.ObjectID   `bson:"_id"`
	Title     string               `bson:"title"`
	Workspace primitive.ObjectID   `bson:"workspace"`
	Owner     primitive.ObjectID   `bson:"owner"`
	Members   []primitive.ObjectID `bson:"members"`
	IsDeleted bool                 `bson:"is_deleted"`
	CreatedAt time.Time            `bson:"created_at"`

	// Populated by $lookup.
	WorkspaceDocs []workspaceDoc `bson:"workspace_doc,omitempty"`
}

func (d boardDoc) toDomain() domain.Board {
	b := domain.Board{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Workspace: domain.RefID[domain.Workspace](hexOrEmpty(d.Workspace)),
		OwnerID:   hexOrEmpty(d.Owner),
		MemberIDs: hexIDs(d.Members),
		Deleted:   d.IsDeleted,
		CreatedAt: d.CreatedAt,
	}
	if len(d.WorkspaceDocs) > 0 {
		b.Workspace = domain.RefTo(d.WorkspaceDocs[0].toDomain())
	}
	return b
}

type listDoc struct {
	ID       primitive.ObjectID `bson:"_id"`
	Title    string             `bson:"title"`
	Board    primitive.ObjectID `bson:"board"`
	Position int                `bson:"position"`
}

func (d listDoc) toDomain() domain.List {
	return domain.List{
		ID:       d.ID.Hex(),
		Title:    d.Title,
		Board:    domain.RefID[domain.Board](hexOrEmpty(d.Board)),
		Position: d.Position,
	}
}

type cardDoc struct {
	ID        primitive.ObjectID   `bson:"_id"`
	Title     string               `bson:"title"`
	List      primitive.ObjectID   `bson:"list"`
	Board     primitive.ObjectID   `bson:"board"`
	Members   []primitive.ObjectID `bson:"members"`
	DueDate   *time.Time           `bson:"due_date"`
	Completed bool                 `bson:"completed"`
	IsDeleted bool                 `bson:"is_deleted"`

	// Populated by $lookup.
	BoardDocs []boardDoc `bson:"board_doc,omitempty"`
}

func (d cardDoc) toDomain() domain.Card {
	c := domain.Card{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		List:      domain.RefID[domain.List](hexOrEmpty(d.List)),
		Board:     domain.RefID[domain.Board](hexOrEmpty(d.Board)),
		MemberIDs: hexIDs(d.Members),
		Completed: d.Completed,
		Deleted:   d.IsDeleted,
	}
	if d.DueDate != nil {
		due := d.DueDate.UTC()
		c.DueDate = &due
	}
	if len(d.BoardDocs) > 0 {
		c.Board = domain.RefTo(d.BoardDocs[0].toDomain())
	}
	return c
}

type notificationDoc struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	Recipient primitive.ObjectID  `bson:"recipient"`
	Type      string              `bson:"type"`
	Message   string              `bson:"message"`
	Workspace *primitive.ObjectID `bson:"workspace,omitempty"`
	Board     *primitive.ObjectID `bson:"board,omitempty"`
	Card      *primitive.ObjectID `bson:"card,omitempty"`
	Read      bool                `bson:"read"`
	CreatedAt time.Time           `bson:"created_at"`
}
