package models

import (
	"fmt"
	"time"
)

// Votes — счётчики голосов комментария.
// Сервис переносит их как есть и проверяет только неотрицательность.
type Votes struct {
	Up   int `json:"up" bson:"up"`
	Down int `json:"down" bson:"down"`
}

// Validate сообщает об отрицательных счётчиках.
func (v Votes) Validate() error {
	if v.Up < 0 || v.Down < 0 {
		return fmt.Errorf("negative votes: up=%d down=%d", v.Up, v.Down)
	}

	return nil
}

// Comment — плоская запись комментария в том виде, в каком её отдаёт хранилище.
//
// Особенности:
//   - ParentID == nil -> корневой комментарий коана;
//   - ParentID != nil -> ответ; в корректных данных ссылается на комментарий
//     того же коана, но это не гарантируется (см. пакет threads);
//   - Author — идентификатор пользователя;
//   - Date — время создания (UTC).
type Comment struct {
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	Date     time.Time `json:"date"`
	Author   string    `json:"author"`
	Votes    Votes     `json:"votes"`
	KoanID   string    `json:"koanId"`
	ParentID *string   `json:"parentId"`
}

// IsRoot сообщает, объявлен ли комментарий корневым.
func (c Comment) IsRoot() bool {
	return c.ParentID == nil
}

// CommentWithReplies — комментарий и его прямые ответы (рекурсивно).
// Значение без обратных ссылок: безопасно сериализуется и не держит входные данные.
type CommentWithReplies struct {
	Comment
	Replies []CommentWithReplies `json:"replies"`
}

// Count возвращает число узлов в поддереве, включая сам узел.
func (c CommentWithReplies) Count() int {
	n := 1
	for _, r := range c.Replies {
		n += r.Count()
	}

	return n
}

// StringPtr — хелпер для ParentID в литералах и тестах.
func StringPtr(s string) *string {
	return &s
}
