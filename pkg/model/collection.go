package model

import (
	"container/list"
	"fmt"

	"github.com/google/uuid"
)

// Collection is an ordered set of rows addressed by identifier. Order is the
// display order; Remove and Move only relink neighbours.
type Collection[T Item] struct {
	order *list.List
	index map[uuid.UUID]*list.Element
}

// NewCollection returns an empty collection.
func NewCollection[T Item]() *Collection[T] {
	return &Collection[T]{
		order: list.New(),
		index: make(map[uuid.UUID]*list.Element),
	}
}

func (c *Collection[T]) init() {
	if c.order == nil {
		c.order = list.New()
	}
	if c.index == nil {
		c.index = make(map[uuid.UUID]*list.Element)
	}
}

// Len reports the number of rows.
func (c *Collection[T]) Len() int {
	if c == nil || c.order == nil {
		return 0
	}
	return c.order.Len()
}

// Add appends item. Items with a nil or already-present identifier are
// rejected.
func (c *Collection[T]) Add(item T) error {
	c.init()
	id := item.Key()
	if id == uuid.Nil {
		return fmt.Errorf("model: entry id is required")
	}
	if _, exists := c.index[id]; exists {
		return fmt.Errorf("model: duplicate entry id %s", id)
	}
	c.index[id] = c.order.PushBack(item)
	return nil
}

// Get returns the row stored under id.
func (c *Collection[T]) Get(id uuid.UUID) (T, bool) {
	var zero T
	if c == nil || c.index == nil {
		return zero, false
	}
	el, ok := c.index[id]
	if !ok {
		return zero, false
	}
	return el.Value.(T), true
}

// Update applies fn to a copy of the row and stores the result in place. The
// row keeps its identifier even if fn changes it.
func (c *Collection[T]) Update(id uuid.UUID, fn func(*T)) error {
	if c == nil || c.index == nil {
		return ErrEntryNotFound
	}
	el, ok := c.index[id]
	if !ok {
		return ErrEntryNotFound
	}
	item := el.Value.(T)
	fn(&item)
	if item.Key() != id {
		return fmt.Errorf("model: update must not change entry id %s", id)
	}
	el.Value = item
	return nil
}

// Remove deletes the row immediately.
func (c *Collection[T]) Remove(id uuid.UUID) error {
	if c == nil || c.index == nil {
		return ErrEntryNotFound
	}
	el, ok := c.index[id]
	if !ok {
		return ErrEntryNotFound
	}
	c.order.Remove(el)
	delete(c.index, id)
	return nil
}

// Move swaps the row with its neighbour in the given direction. It reports
// false, leaving the order untouched, when the row sits at the matching
// boundary.
func (c *Collection[T]) Move(id uuid.UUID, dir Direction) (bool, error) {
	if c == nil || c.index == nil {
		return false, ErrEntryNotFound
	}
	el, ok := c.index[id]
	if !ok {
		return false, ErrEntryNotFound
	}
	switch dir {
	case Up:
		prev := el.Prev()
		if prev == nil {
			return false, nil
		}
		c.order.MoveBefore(el, prev)
	case Down:
		next := el.Next()
		if next == nil {
			return false, nil
		}
		c.order.MoveAfter(el, next)
	default:
		return false, fmt.Errorf("%w: %d", ErrUnknownDirection, int(dir))
	}
	return true, nil
}

// Index returns the display position of id, or -1.
func (c *Collection[T]) Index(id uuid.UUID) int {
	if c == nil || c.index == nil {
		return -1
	}
	if _, ok := c.index[id]; !ok {
		return -1
	}
	pos := 0
	for el := c.order.Front(); el != nil; el = el.Next() {
		if el.Value.(T).Key() == id {
			return pos
		}
		pos++
	}
	return -1
}

// Items returns a snapshot of the rows in display order.
func (c *Collection[T]) Items() []T {
	if c == nil || c.order == nil {
		return nil
	}
	out := make([]T, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(T))
	}
	return out
}

// IDs returns the identifiers in display order.
func (c *Collection[T]) IDs() []uuid.UUID {
	items := c.Items()
	out := make([]uuid.UUID, len(items))
	for i, item := range items {
		out[i] = item.Key()
	}
	return out
}

// Clone copies the collection. Rows are values, so the copy is independent.
func (c *Collection[T]) Clone() *Collection[T] {
	out := NewCollection[T]()
	for _, item := range c.Items() {
		out.index[item.Key()] = out.order.PushBack(item)
	}
	return out
}
