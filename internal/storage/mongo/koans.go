package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pribylovaa/go-zen-koans/internal/models"
	"github.com/pribylovaa/go-zen-koans/internal/storage"
)

// koanDoc — представление коана в коллекции koans.
type koanDoc struct {
	ID        string    `bson:"_id"`
	Text      string    `bson:"text"`
	Source    string    `bson:"source"`
	Author    string    `bson:"author"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d koanDoc) toModel() models.Koan {
	return models.Koan{ID: d.ID, Text: d.Text, Source: d.Source, Author: d.Author}
}

// toMS — MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// ListKoans возвращает все коаны в порядке created_at ASC, _id ASC.
func (m *Mongo) ListKoans(ctx context.Context) ([]models.Koan, error) {
	const op = "storage/mongo/ListKoans"

	cur, err := m.koans.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	koans := make([]models.Koan, 0)
	for cur.Next(ctx) {
		var d koanDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("%s: decode: %w: %v", op, storage.ErrMalformed, err)
		}

		koans = append(koans, d.toModel())
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return koans, nil
}

// KoanByID возвращает коан по идентификатору.
// Если запись не найдена — storage.ErrNotFound.
func (m *Mongo) KoanByID(ctx context.Context, id string) (*models.Koan, error) {
	const op = "storage/mongo/KoanByID"

	var d koanDoc
	err := m.koans.FindOne(ctx, bson.D{{Key: "_id", Value: strings.TrimSpace(id)}}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	k := d.toModel()
	return &k, nil
}

// CreateKoan сохраняет коан; пустой ID заменяется на UUID.
// Повторный ID — storage.ErrConflict.
func (m *Mongo) CreateKoan(ctx context.Context, koan models.Koan) (*models.Koan, error) {
	const op = "storage/mongo/CreateKoan"

	if strings.TrimSpace(koan.ID) == "" {
		koan.ID = uuid.NewString()
	}

	_, err := m.koans.InsertOne(ctx, koanDoc{
		ID:        koan.ID,
		Text:      koan.Text,
		Source:    koan.Source,
		Author:    koan.Author,
		CreatedAt: toMS(time.Now()),
	})
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}

		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	return &koan, nil
}
