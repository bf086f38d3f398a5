package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/pribylovaa/go-zen-koans/internal/models"
	"github.com/pribylovaa/go-zen-koans/internal/storage"
)

// commentDoc — представление комментария в коллекции comments.
// parent_id == null -> корневой комментарий.
type commentDoc struct {
	ID       string       `bson:"_id"`
	KoanID   string       `bson:"koan_id"`
	ParentID *string      `bson:"parent_id"`
	Text     string       `bson:"text"`
	Author   string       `bson:"author"`
	Votes    models.Votes `bson:"votes"`
	Date     time.Time    `bson:"date"`
}

func (d commentDoc) toModel() models.Comment {
	return models.Comment{
		ID:       d.ID,
		Text:     d.Text,
		Date:     d.Date.UTC(),
		Author:   d.Author,
		Votes:    d.Votes,
		KoanID:   d.KoanID,
		ParentID: d.ParentID,
	}
}

// CommentsByKoan возвращает плоский список комментариев коана без сортировки.
func (m *Mongo) CommentsByKoan(ctx context.Context, koanID string) ([]models.Comment, error) {
	const op = "storage/mongo/CommentsByKoan"

	cur, err := m.comments.Find(ctx, bson.D{{Key: "koan_id", Value: strings.TrimSpace(koanID)}})
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	comments := make([]models.Comment, 0)
	for cur.Next(ctx) {
		var d commentDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("%s: decode: %w: %v", op, storage.ErrMalformed, err)
		}

		comments = append(comments, d.toModel())
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return comments, nil
}

// CreateComment сохраняет комментарий.
//   - пустой ID заменяется на UUID, нулевая дата — на текущее время;
//   - коан должен существовать, иначе storage.ErrNotFound;
//   - ParentID не проверяется: сироты допустимы;
//   - повторный ID — storage.ErrConflict.
func (m *Mongo) CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	const op = "storage/mongo/CreateComment"

	n, err := m.koans.CountDocuments(ctx, bson.D{{Key: "_id", Value: comment.KoanID}})
	if err != nil {
		return nil, fmt.Errorf("%s: count koan: %w", op, err)
	}

	if n == 0 {
		return nil, fmt.Errorf("%s: koan %q: %w", op, comment.KoanID, storage.ErrNotFound)
	}

	if strings.TrimSpace(comment.ID) == "" {
		comment.ID = uuid.NewString()
	}

	if comment.Date.IsZero() {
		comment.Date = time.Now()
	}
	comment.Date = toMS(comment.Date)

	_, err = m.comments.InsertOne(ctx, commentDoc{
		ID:       comment.ID,
		KoanID:   comment.KoanID,
		ParentID: comment.ParentID,
		Text:     comment.Text,
		Author:   comment.Author,
		Votes:    comment.Votes,
		Date:     comment.Date,
	})
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}

		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	return &comment, nil
}
