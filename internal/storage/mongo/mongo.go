package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/pribylovaa/go-zen-koans/internal/config"
	"github.com/pribylovaa/go-zen-koans/internal/storage"
)

const (
	koansCollection    = "koans"
	commentsCollection = "comments"
	defaultDBName      = "koans"
)

// Mongo — тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	client   *mongodriver.Client
	db       *mongodriver.Database
	koans    *mongodriver.Collection
	comments *mongodriver.Collection
}

// New подключается к MongoDB, проверяет соединение, подготавливает коллекции и индексы.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.DB.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.DB.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(databaseFromURI(cfg.DB.URL))

	m := &Mongo{
		client:   cli,
		db:       db,
		koans:    db.Collection(koansCollection),
		comments: db.Collection(commentsCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.client.Disconnect(context.Background())
		return nil, err
	}

	return m, nil
}

// Close отключает клиента MongoDB.
func (m *Mongo) Close() {
	_ = m.client.Disconnect(context.Background())
}

// ensureIndexes создаёт индексы:
// - порядок выдачи коанов: created_at + _id;
// - выборка комментариев коана: koan_id.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.koans.Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("created_id_asc"),
	})
	if err != nil {
		return fmt.Errorf("mongo ensure koans indexes: %w", err)
	}

	_, err = m.comments.Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys:    bson.D{{Key: "koan_id", Value: 1}},
		Options: options.Index().SetName("koan_id"),
	})
	if err != nil {
		return fmt.Errorf("mongo ensure comments indexes: %w", err)
	}

	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не разбирается, возвращает значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}

	return defaultDBName
}

// Проверка на соответствие интерфейсам хранилища.
var (
	_ storage.Storage     = (*Mongo)(nil)
	_ storage.SeedStorage = (*Mongo)(nil)
)
