// Package menu holds the state behind the interactive lists: a cyclic
// cursor, a checklist with a synthetic "(select all)" row and a
// single-choice navigator. Nothing here touches the terminal.
package menu

// SelectAllLabel is the synthetic last row of a checklist
const SelectAllLabel = "(select all)"

// Cursor is an index that wraps around a list of fixed length
type Cursor struct {
	index  int
	length int
}

// NewCursor creates a cursor at row 0 of a list with length rows
func NewCursor(length int) Cursor {
	return Cursor{length: length}
}

// Index returns the highlighted row
func (c Cursor) Index() int { return c.index }

// Len returns the number of rows the cursor moves over
func (c Cursor) Len() int { return c.length }

// Move shifts the cursor by delta, wrapping at both ends.
func (c *Cursor) Move(delta int) {
	if c.length == 0 {
		return
	}
	c.index = ((c.index+delta)%c.length + c.length) % c.length
}

// Checklist is a multi-select list of labels plus a select-all row.
// flags is index-aligned with Rows(); the last flag is the select-all slot.
type Checklist struct {
	labels []string
	flags  []bool
	cursor Cursor
}

// NewChecklist creates a checklist with nothing selected
func NewChecklist(labels []string) *Checklist {
	rows := len(labels) + 1
	return &Checklist{
		labels: append([]string(nil), labels...),
		flags:  make([]bool, rows),
		cursor: NewCursor(rows),
	}
}

// Rows returns the displayed labels, select-all row last
func (c *Checklist) Rows() []string {
	return append(append([]string(nil), c.labels...), SelectAllLabel)
}

// Flags returns a copy of the selection flags, index-aligned with Rows
func (c *Checklist) Flags() []bool {
	return append([]bool(nil), c.flags...)
}

// Selected reports whether row i is checked
func (c *Checklist) Selected(i int) bool { return c.flags[i] }

// Cursor returns the highlighted row
func (c *Checklist) Cursor() int { return c.cursor.Index() }

// MoveCursor moves the highlight by delta with wrap-around
func (c *Checklist) MoveCursor(delta int) { c.cursor.Move(delta) }

func (c *Checklist) selectAllIndex() int { return len(c.flags) - 1 }

// ToggleCurrent toggles the highlighted row.
//
// On the select-all row every item is forced to !allSelected. On an item
// row only that item flips and select-all is recomputed from every item.
func (c *Checklist) ToggleCurrent() {
	last := c.selectAllIndex()
	cur := c.cursor.Index()
	if cur == last {
		value := !c.allItemsSelected()
		for i := range c.flags {
			c.flags[i] = value
		}
		return
	}
	c.flags[cur] = !c.flags[cur]
	c.flags[last] = c.allItemsSelected()
}

// allItemsSelected is AND over the item flags; true for an empty list.
func (c *Checklist) allItemsSelected() bool {
	for _, f := range c.flags[:c.selectAllIndex()] {
		if !f {
			return false
		}
	}
	return true
}

// Confirm returns the indexes of checked items, excluding select-all.
// The result may be empty.
func (c *Checklist) Confirm() []int {
	picked := []int{}
	for i, f := range c.flags[:c.selectAllIndex()] {
		if f {
			picked = append(picked, i)
		}
	}
	return picked
}

// Navigator is a single-choice list of options
type Navigator[T any] struct {
	labels []string
	values []T
	cursor Cursor
}

// NewNavigator creates a navigator over labels/values pairs
func NewNavigator[T any](labels []string, values []T) *Navigator[T] {
	if len(labels) != len(values) {
		panic("menu: labels and values must have the same length")
	}
	return &Navigator[T]{
		labels: append([]string(nil), labels...),
		values: append([]T(nil), values...),
		cursor: NewCursor(len(labels)),
	}
}

// Rows returns the option labels
func (n *Navigator[T]) Rows() []string { return append([]string(nil), n.labels...) }

// Cursor returns the highlighted row
func (n *Navigator[T]) Cursor() int { return n.cursor.Index() }

// MoveCursor moves the highlight by delta with wrap-around
func (n *Navigator[T]) MoveCursor(delta int) { n.cursor.Move(delta) }

// Confirm returns the highlighted value; ok is false for an empty menu
func (n *Navigator[T]) Confirm() (value T, ok bool) {
	if len(n.values) == 0 {
		return value, false
	}
	return n.values[n.cursor.Index()], true
}
