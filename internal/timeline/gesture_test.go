package timeline

import "testing"

func TestDragMoveResolvesToDropSlot(t *testing.T) {
	g := NewGrid(Vertical, 4, 40)
	c := NewDragController(g)

	c.BeginMove("a")
	if c.State() != DraggingMove || c.ActiveItem() != "a" {
		t.Fatalf("expected dragging-move of a, got %v/%q", c.State(), c.ActiveItem())
	}

	// Motion during a move produces nothing; the drop decides.
	if act := c.Motion(3, 30); act.Kind != ActionNone {
		t.Fatalf("move motion must not emit actions, got %+v", act)
	}

	act := c.Release(3, 14*4+1)
	if act.Kind != ActionMove || act.ItemID != "a" || act.Hour != 14 {
		t.Fatalf("expected move to hour 14, got %+v", act)
	}
	if c.State() != Idle {
		t.Fatal("controller must return to idle after release")
	}
}

func TestDragMoveReleasedOutsideBandDoesNothing(t *testing.T) {
	g := NewGrid(Vertical, 4, 40)
	c := NewDragController(g)

	c.BeginMove("a")
	act := c.Release(60, 10) // right of the band
	if act.Kind != ActionNone {
		t.Fatalf("expected no action, got %+v", act)
	}
	if c.State() != Idle {
		t.Fatal("controller must return to idle")
	}
}

func TestDragResizeEmitsLiveCandidates(t *testing.T) {
	g := NewGrid(Vertical, 4, 40)
	c := NewDragController(g)

	// Item ends at hour 12; press on its trailing edge.
	c.BeginResize("a", 12, 10, 12*4-1)
	if c.State() != DraggingResize {
		t.Fatalf("expected dragging-resize, got %v", c.State())
	}

	// 2 slots down => +2 hours, live.
	act := c.Motion(10, 12*4-1+8)
	if act.Kind != ActionResize || act.Hour != 14 {
		t.Fatalf("expected live candidate 14, got %+v", act)
	}

	// Rounding: just over half a slot rounds to the nearest hour.
	act = c.Motion(10, 12*4-1+3)
	if act.Kind != ActionResize || act.Hour != 13 {
		t.Fatalf("expected rounded candidate 13, got %+v", act)
	}
	act = c.Motion(10, 12*4-1+1)
	if act.Kind != ActionResize || act.Hour != 12 {
		t.Fatalf("expected rounded candidate 12, got %+v", act)
	}

	// Dragging upward shrinks; the Day clamps below start+1 later.
	act = c.Motion(10, 12*4-1-20)
	if act.Kind != ActionResize || act.Hour != 7 {
		t.Fatalf("expected candidate 7, got %+v", act)
	}

	final := c.Release(10, 12*4-1+8)
	if final.Kind != ActionResize || final.Hour != 14 {
		t.Fatalf("expected final resize to 14, got %+v", final)
	}
	if c.State() != Idle {
		t.Fatal("controller must return to idle after release")
	}
}

func TestDragResizeHorizontalUsesXAxis(t *testing.T) {
	g := NewGrid(Horizontal, 10, 8)
	c := NewDragController(g)

	c.BeginResize("a", 7, 69, 3)
	act := c.Motion(69+10, 3)
	if act.Kind != ActionResize || act.Hour != 8 {
		t.Fatalf("expected candidate 8, got %+v", act)
	}
	// Vertical motion is ignored in horizontal orientation.
	act = c.Motion(69, 50)
	if act.Kind != ActionResize || act.Hour != 7 {
		t.Fatalf("expected unchanged candidate 7, got %+v", act)
	}
}

func TestCancelAndGridSwapResetGesture(t *testing.T) {
	g := NewGrid(Vertical, 4, 40)
	c := NewDragController(g)

	c.BeginMove("a")
	if act := c.Cancel(); act.Kind != ActionNone {
		t.Fatalf("cancelling a move needs no undo, got %+v", act)
	}
	if c.State() != Idle || c.ActiveItem() != "" {
		t.Fatal("cancel must reset to idle")
	}

	// Cancelling a resize hands back the end hour recorded at press so the
	// caller can revert the live preview.
	c.BeginResize("a", 12, 0, 0)
	act := c.SetGrid(NewGrid(Horizontal, 10, 8))
	if act.Kind != ActionResize || act.ItemID != "a" || act.Hour != 12 {
		t.Fatalf("expected restore-to-12 action, got %+v", act)
	}
	if c.State() != Idle {
		t.Fatal("orientation change must cancel the active gesture")
	}
}
