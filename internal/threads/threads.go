// threads восстанавливает дерево ответов из плоского набора комментариев
// одного коана и собирает итоговое представление KoanWithComments.
//
// Пакет чистый: без I/O, без общего изменяемого состояния; функции можно
// вызывать конкурентно для разных коанов.
package threads

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMixedKoans — на вход переданы комментарии нескольких коанов.
	ErrMixedKoans = errors.New("comments belong to more than one koan")
	// ErrDuplicateID — идентификатор комментария встречается дважды.
	ErrDuplicateID = errors.New("duplicate comment id")
	// ErrEmptyID — у комментария пустой идентификатор.
	ErrEmptyID = errors.New("empty comment id")
	// ErrNegativeVotes — отрицательные счётчики голосов.
	ErrNegativeVotes = errors.New("negative votes")
	// ErrNilKoan — сборщику не передан коан.
	ErrNilKoan = errors.New("nil koan")
	// ErrKoanMismatch — комментарий не принадлежит собираемому коану.
	ErrKoanMismatch = errors.New("comment koan mismatch")
)

// Policy — политика для узлов, недостижимых от настоящих корней:
// «сирот» (родитель отсутствует среди комментариев коана) и участников циклов.
type Policy int

const (
	// PolicySurface поднимает такие узлы на верхний уровень (по умолчанию).
	PolicySurface Policy = iota
	// PolicyDrop отбрасывает такие узлы вместе с их поддеревьями.
	PolicyDrop
)

// String возвращает имя политики в том виде, в каком оно задаётся в конфиге.
func (p Policy) String() string {
	switch p {
	case PolicySurface:
		return "surface"
	case PolicyDrop:
		return "drop"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy разбирает имя политики ("surface" | "drop"), пустая строка -> PolicySurface.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "surface":
		return PolicySurface, nil
	case "drop":
		return PolicyDrop, nil
	default:
		return 0, fmt.Errorf("unknown orphan policy %q", s)
	}
}

type options struct {
	policy Policy
}

// Option настраивает построение дерева.
type Option func(*options)

// WithPolicy задаёт политику для сирот и циклов.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

func buildOptions(opts []Option) options {
	o := options{policy: PolicySurface}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// Stats — счётчики одного построения.
type Stats struct {
	// Total — число входных комментариев.
	Total int
	// Roots — число узлов верхнего уровня в результате.
	Roots int
	// Orphans — комментарии со ссылкой на отсутствующего родителя.
	Orphans int
	// CycleBreaks — комментарии, у которых ребро к родителю разорвано из-за цикла.
	CycleBreaks int
	// Dropped — узлы, не попавшие в результат (только при PolicyDrop).
	Dropped int
	// MaxDepth — максимальная глубина результата (корень = 0, пустой лес = -1).
	MaxDepth int
}
