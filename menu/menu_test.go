package menu

import (
	"math/rand"
	"testing"
)

func andOfItems(flags []bool) bool {
	for _, f := range flags[:len(flags)-1] {
		if !f {
			return false
		}
	}
	return true
}

func TestCursorWraps(t *testing.T) {
	for length := 1; length <= 5; length++ {
		c := NewCursor(length)
		c.Move(-1)
		if c.Index() != length-1 {
			t.Errorf("len %d: up from 0 = %d, want %d", length, c.Index(), length-1)
		}
		c.Move(1)
		if c.Index() != 0 {
			t.Errorf("len %d: down from last = %d, want 0", length, c.Index())
		}
	}
}

func TestCursorEmptyIsNoop(t *testing.T) {
	c := NewCursor(0)
	c.Move(1)
	c.Move(-3)
	if c.Index() != 0 {
		t.Errorf("empty cursor moved to %d", c.Index())
	}
}

func TestCursorStaysInRange(t *testing.T) {
	c := NewCursor(3)
	for _, d := range []int{5, -7, 1, -1, 10, -10} {
		c.Move(d)
		if c.Index() < 0 || c.Index() >= 3 {
			t.Fatalf("cursor out of range: %d", c.Index())
		}
	}
}

func TestChecklistRows(t *testing.T) {
	c := NewChecklist([]string{"a.mp4", "b.mp4"})
	rows := c.Rows()
	if len(rows) != 3 || rows[2] != SelectAllLabel {
		t.Errorf("Rows() = %v", rows)
	}
	if len(c.Flags()) != 3 {
		t.Errorf("expected 3 flags, got %d", len(c.Flags()))
	}
}

func TestSelectAllTogglesEverything(t *testing.T) {
	c := NewChecklist([]string{"a", "b", "c"})
	c.MoveCursor(-1) // select-all row

	c.ToggleCurrent()
	for i, f := range c.Flags() {
		if !f {
			t.Errorf("flag %d should be true after select all", i)
		}
	}

	c.ToggleCurrent()
	for i, f := range c.Flags() {
		if f {
			t.Errorf("flag %d should be false after second select all", i)
		}
	}
}

func TestSelectAllWithPartialSelection(t *testing.T) {
	c := NewChecklist([]string{"a", "b", "c"})
	c.ToggleCurrent() // a
	c.MoveCursor(-1)
	c.ToggleCurrent() // select all: not all selected -> all true
	for i, f := range c.Flags() {
		if !f {
			t.Errorf("flag %d should be true", i)
		}
	}
}

func TestIndividualTogglesUpdateSelectAll(t *testing.T) {
	c := NewChecklist([]string{"a", "b"})
	c.ToggleCurrent()
	if c.Selected(2) {
		t.Error("select all should be false with one of two selected")
	}
	c.MoveCursor(1)
	c.ToggleCurrent()
	if !c.Selected(2) {
		t.Error("select all should be true once every item is selected")
	}
	c.ToggleCurrent()
	if c.Selected(2) {
		t.Error("select all should drop when an item is unselected")
	}
}

func TestSelectAllInvariantRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 1; n <= 6; n++ {
		c := NewChecklist(make([]string, n))
		for step := 0; step < 200; step++ {
			c.MoveCursor(rng.Intn(7) - 3)
			c.ToggleCurrent()
			flags := c.Flags()
			if flags[len(flags)-1] != andOfItems(flags) {
				t.Fatalf("n=%d step=%d: select all %v, AND of items %v", n, step, flags[len(flags)-1], andOfItems(flags))
			}
		}
	}
}

func TestConfirmExcludesSelectAll(t *testing.T) {
	c := NewChecklist([]string{"a", "b", "c"})
	if got := c.Confirm(); got == nil || len(got) != 0 {
		t.Errorf("Confirm() with nothing selected = %#v, want empty non-nil", got)
	}

	c.MoveCursor(1)
	c.ToggleCurrent() // b
	got := c.Confirm()
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("Confirm() = %v, want [1]", got)
	}

	c.MoveCursor(2) // select-all row
	c.ToggleCurrent()
	if got := c.Confirm(); len(got) != 3 {
		t.Errorf("Confirm() after select all = %v", got)
	}
}

func TestEmptyChecklistSelectAll(t *testing.T) {
	c := NewChecklist(nil)
	c.ToggleCurrent()
	if c.Selected(0) {
		t.Error("select all on an empty list is already satisfied, so toggling clears it")
	}
	if len(c.Confirm()) != 0 {
		t.Error("empty list confirms nothing")
	}
}

func TestNavigator(t *testing.T) {
	n := NewNavigator([]string{"one", "two", "three"}, []int{1, 2, 3})
	n.MoveCursor(-1)
	if v, ok := n.Confirm(); !ok || v != 3 {
		t.Errorf("Confirm() = %v, %v; want 3, true", v, ok)
	}
	n.MoveCursor(1)
	if v, _ := n.Confirm(); v != 1 {
		t.Errorf("Confirm() after wrap = %v, want 1", v)
	}
}

func TestNavigatorEmpty(t *testing.T) {
	n := NewNavigator[string](nil, nil)
	n.MoveCursor(1)
	if _, ok := n.Confirm(); ok {
		t.Error("empty navigator should not confirm")
	}
}
