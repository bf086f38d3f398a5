// models содержит доменные сущности koans-сервиса.
// Эти типы используются слоями построения веток, хранилища и транспорта.
package models

import "strings"

// ParagraphDelimiter — разделитель абзацев в тексте коана.
const ParagraphDelimiter = "\n\n"

// Koan — справочная сущность коана.
//
// Особенности:
//   - создаётся сидером и никогда не изменяется сервисом;
//   - Text хранит абзацы, разделённые ParagraphDelimiter.
type Koan struct {
	// ID — стабильный идентификатор коана.
	ID string `json:"id"`
	// Text — текст коана.
	Text string `json:"text"`
	// Source — сборник-источник ("The Gateless Gate" и т.п.).
	Source string `json:"source"`
	// Author — автор/персонаж коана.
	Author string `json:"author"`
}

// Paragraphs разбивает текст коана на абзацы, отбрасывая пустые.
func (k Koan) Paragraphs() []string {
	parts := strings.Split(k.Text, ParagraphDelimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

// KoanWithComments — производное представление: коан и упорядоченный
// список корневых комментариев с вложенными ответами.
// В хранилище не сохраняется; может кэшироваться на короткий TTL.
type KoanWithComments struct {
	Koan
	Comments []CommentWithReplies `json:"comments"`
}
