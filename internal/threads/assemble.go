package threads

import (
	"fmt"

	"github.com/pribylovaa/go-zen-koans/internal/models"
)

// Assemble собирает KoanWithComments: скалярные поля копируются из коана,
// Comments — ровно результат Build.
//
// Ошибки:
//   - ErrNilKoan — коан не передан;
//   - ErrKoanMismatch — комментарий принадлежит другому коану;
//   - ошибки предусловий Build.
func Assemble(koan *models.Koan, comments []models.Comment, opts ...Option) (*models.KoanWithComments, error) {
	kwc, _, err := AssembleWithStats(koan, comments, opts...)
	return kwc, err
}

// AssembleWithStats — как Assemble, дополнительно возвращает статистику построения.
func AssembleWithStats(koan *models.Koan, comments []models.Comment, opts ...Option) (*models.KoanWithComments, Stats, error) {
	const op = "threads.Assemble"

	if koan == nil {
		return nil, Stats{}, fmt.Errorf("%s: %w", op, ErrNilKoan)
	}

	for _, c := range comments {
		if c.KoanID != koan.ID {
			return nil, Stats{}, fmt.Errorf("%s: comment %q has koan %q, want %q: %w",
				op, c.ID, c.KoanID, koan.ID, ErrKoanMismatch)
		}
	}

	res, err := BuildWithStats(comments, opts...)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%s: %w", op, err)
	}

	return &models.KoanWithComments{
		Koan:     *koan,
		Comments: res.Threads,
	}, res.Stats, nil
}
