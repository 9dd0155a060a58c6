// Package cursor provides a pull-based cursor over a finite sequence.
// The scanner walks runes with it and the parser walks tokens with it.
package cursor

// Cursor reads items left to right. Peek looks ahead without moving,
// Next consumes exactly one item.
type Cursor[T any] struct {
	items []T
	pos   int
}

func New[T any](items []T) *Cursor[T] {
	return &Cursor[T]{items: items}
}

// Reset rewinds the cursor onto a new sequence.
func (c *Cursor[T]) Reset(items []T) {
	c.items = items
	c.pos = 0
}

// Peek returns the item offset positions ahead of the current one.
// ok is false past the end of the sequence.
func (c *Cursor[T]) Peek(offset int) (item T, ok bool) {
	i := c.pos + offset
	if offset < 0 || i >= len(c.items) {
		return item, false
	}
	return c.items[i], true
}

// Next consumes and returns the current item.
func (c *Cursor[T]) Next() (item T, ok bool) {
	if c.pos >= len(c.items) {
		return item, false
	}
	item = c.items[c.pos]
	c.pos++
	return item, true
}

func (c *Cursor[T]) Done() bool { return c.pos >= len(c.items) }

func (c *Cursor[T]) Pos() int { return c.pos }
