package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-zen-koans/internal/models"
	"github.com/pribylovaa/go-zen-koans/internal/storage"
)

// CommentsByKoan возвращает плоский список комментариев коана.
// Порядок не гарантируется: упорядочивание — забота построителя веток.
func (s *Storage) CommentsByKoan(ctx context.Context, koanID string) ([]models.Comment, error) {
	const op = "storage.postgres.CommentsByKoan"

	rows, err := s.db.Query(ctx, `
	SELECT id, text, date, author, votes, koan_id, parent_id
	FROM comments
	WHERE koan_id = $1
	`, strings.TrimSpace(koanID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID,
			&c.Text,
			&c.Date,
			&c.Author,
			&c.Votes,
			&c.KoanID,
			&c.ParentID,
		); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w: %v", op, storage.ErrMalformed, err)
		}

		c.Date = c.Date.UTC()
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return comments, nil
}

// CreateComment сохраняет комментарий; пустой ID заменяется на UUID,
// нулевая дата — на текущее время (с точностью до микросекунд, как хранит PostgreSQL).
func (s *Storage) CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	const op = "storage.postgres.CreateComment"

	if strings.TrimSpace(comment.ID) == "" {
		comment.ID = uuid.NewString()
	}

	if comment.Date.IsZero() {
		comment.Date = time.Now()
	}
	comment.Date = comment.Date.UTC().Truncate(time.Microsecond)

	_, err := s.db.Exec(ctx, `
	INSERT INTO comments (id, koan_id, parent_id, text, author, votes, date)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, comment.ID, comment.KoanID, comment.ParentID, comment.Text, comment.Author, comment.Votes, comment.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapWriteErr(err))
	}

	return &comment, nil
}
