package threads

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pribylovaa/go-zen-koans/internal/models"
)

// noParent — сентинел индекса родителя для узлов верхнего уровня.
const noParent = -1

// Result — лес комментариев и статистика построения.
type Result struct {
	Threads []models.CommentWithReplies
	Stats   Stats
}

// Build строит упорядоченный лес комментариев одного коана.
// Подробности алгоритма и гарантии — см. BuildWithStats.
func Build(comments []models.Comment, opts ...Option) ([]models.CommentWithReplies, error) {
	res, err := BuildWithStats(comments, opts...)
	if err != nil {
		return nil, err
	}

	return res.Threads, nil
}

// BuildWithStats строит упорядоченный лес комментариев одного коана.
//
// Правила:
//   - ParentID == nil -> узел верхнего уровня;
//   - ParentID ссылается на отсутствующий комментарий -> «сирота»;
//   - узлы, чьи цепочки родителей замыкаются в цикл (включая ссылку на себя),
//     теряют ребро к родителю: цикл разрывается на каждом его участнике;
//   - сироты и участники циклов по PolicySurface поднимаются наверх,
//     по PolicyDrop отбрасываются вместе с поддеревьями;
//   - братья и корни упорядочены по (Date ASC, ID ASC) независимо от порядка входа.
//
// Каждый входной комментарий попадает в результат ровно один раз
// (при PolicyDrop — не более одного раза). ParentID в результате копируется,
// результат не ссылается на входной срез.
//
// Ошибки (нарушение предусловий, восстановление не выполняется):
//   - ErrEmptyID, ErrDuplicateID, ErrNegativeVotes — битая запись;
//   - ErrMixedKoans — записи нескольких коанов.
func BuildWithStats(comments []models.Comment, opts ...Option) (Result, error) {
	const op = "threads.BuildWithStats"

	o := buildOptions(opts)

	if len(comments) == 0 {
		return Result{Threads: []models.CommentWithReplies{}, Stats: Stats{MaxDepth: -1}}, nil
	}

	b := &builder{
		comments: comments,
		policy:   o.policy,
		byID:     make(map[string]int, len(comments)),
		parent:   make([]int, len(comments)),
		orphan:   make([]bool, len(comments)),
		cut:      make([]bool, len(comments)),
		children: make([][]int, len(comments)),
		visited:  make([]bool, len(comments)),
		stats:    Stats{Total: len(comments), MaxDepth: -1},
	}

	if err := b.index(); err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	b.link()
	b.breakCycles()
	roots := b.group()

	threads := make([]models.CommentWithReplies, 0, len(roots))
	for _, r := range roots {
		threads = append(threads, b.materialize(r, 0))
	}

	b.stats.Roots = len(threads)
	for _, seen := range b.visited {
		if !seen {
			b.stats.Dropped++
		}
	}

	return Result{Threads: threads, Stats: b.stats}, nil
}

type builder struct {
	comments []models.Comment
	policy   Policy

	byID     map[string]int
	parent   []int
	orphan   []bool
	cut      []bool
	children [][]int
	visited  []bool

	stats Stats
}

// index проверяет предусловия и строит индекс id -> позиция.
func (b *builder) index() error {
	koanID := b.comments[0].KoanID

	for i, c := range b.comments {
		if c.ID == "" {
			return fmt.Errorf("%w: position %d", ErrEmptyID, i)
		}

		if c.KoanID != koanID {
			return fmt.Errorf("%w: %q and %q", ErrMixedKoans, koanID, c.KoanID)
		}

		if err := c.Votes.Validate(); err != nil {
			return fmt.Errorf("%w: comment %q: %v", ErrNegativeVotes, c.ID, err)
		}

		if _, dup := b.byID[c.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateID, c.ID)
		}

		b.byID[c.ID] = i
	}

	return nil
}

// link разрешает ParentID в позиции; неразрешённые ссылки помечают сирот.
func (b *builder) link() {
	for i, c := range b.comments {
		if c.ParentID == nil {
			b.parent[i] = noParent
			continue
		}

		p, ok := b.byID[*c.ParentID]
		if !ok {
			b.parent[i] = noParent
			b.orphan[i] = true
			b.stats.Orphans++
			continue
		}

		b.parent[i] = p
	}
}

// breakCycles находит циклы в цепочках родителей и разрывает ребро к родителю
// у каждого участника цикла. Каждый узел проходится один раз.
func (b *builder) breakCycles() {
	const (
		white = iota
		onPath
		done
	)

	color := make([]uint8, len(b.comments))
	path := make([]int, 0, 16)

	for start := range b.comments {
		if color[start] != white {
			continue
		}

		path = path[:0]
		cur := start
		for cur != noParent && color[cur] == white {
			color[cur] = onPath
			path = append(path, cur)
			cur = b.parent[cur]
		}

		// Вернулись в узел текущего пути — хвост пути от него и есть цикл.
		if cur != noParent && color[cur] == onPath {
			for j := len(path) - 1; j >= 0; j-- {
				n := path[j]
				b.cut[n] = true
				b.parent[n] = noParent
				b.stats.CycleBreaks++
				if n == cur {
					break
				}
			}
		}

		for _, n := range path {
			color[n] = done
		}
	}
}

// group раскладывает узлы по спискам детей и возвращает отсортированные корни.
func (b *builder) group() []int {
	roots := make([]int, 0)

	for i := range b.comments {
		p := b.parent[i]
		if p != noParent {
			b.children[p] = append(b.children[p], i)
			continue
		}

		if b.policy == PolicyDrop && (b.orphan[i] || b.cut[i]) {
			continue
		}

		roots = append(roots, i)
	}

	slices.SortFunc(roots, b.compare)
	for i := range b.children {
		if len(b.children[i]) > 1 {
			slices.SortFunc(b.children[i], b.compare)
		}
	}

	return roots
}

// compare задаёт полный порядок: Date ASC, затем ID ASC.
func (b *builder) compare(x, y int) int {
	if c := b.comments[x].Date.Compare(b.comments[y].Date); c != 0 {
		return c
	}

	return strings.Compare(b.comments[x].ID, b.comments[y].ID)
}

// materialize собирает узел и его поддерево. После breakCycles граф ацикличен,
// visited дополнительно гарантирует, что узел не будет выдан повторно.
func (b *builder) materialize(i, depth int) models.CommentWithReplies {
	b.visited[i] = true
	if depth > b.stats.MaxDepth {
		b.stats.MaxDepth = depth
	}

	c := b.comments[i]
	if c.ParentID != nil {
		p := *c.ParentID
		c.ParentID = &p
	}

	node := models.CommentWithReplies{
		Comment: c,
		Replies: make([]models.CommentWithReplies, 0, len(b.children[i])),
	}

	for _, ch := range b.children[i] {
		if b.visited[ch] {
			continue
		}

		node.Replies = append(node.Replies, b.materialize(ch, depth+1))
	}

	return node
}
