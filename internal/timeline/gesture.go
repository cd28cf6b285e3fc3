package timeline

import "math"

// Drag gestures are modelled as a small explicit state machine instead of ad
// hoc listener registration: the controller is idle until a press starts a
// move or resize, consumes motion and release events while the gesture is
// active, and always returns to idle on release or cancel. Tracking state
// lives only for the duration of one gesture.

// GestureState is the controller's current phase.
type GestureState int

const (
	Idle GestureState = iota
	DraggingMove
	DraggingResize
)

func (s GestureState) String() string {
	switch s {
	case DraggingMove:
		return "dragging-move"
	case DraggingResize:
		return "dragging-resize"
	default:
		return "idle"
	}
}

// ActionKind tags the mutation a gesture event resolved to.
type ActionKind int

const (
	ActionNone ActionKind = iota
	// ActionMove: move item ItemID so it starts at Hour.
	ActionMove
	// ActionResize: set item ItemID's end hour to the candidate Hour
	// (the Day clamps it).
	ActionResize
)

// Action is the mutation produced by a gesture event. Kind ActionNone means
// the event changed nothing.
type Action struct {
	Kind   ActionKind
	ItemID string
	Hour   int
}

// DragController tracks one pointer gesture over a timeline grid.
type DragController struct {
	grid  Grid
	state GestureState

	itemID string

	// Resize tracking: main-axis press coordinate and the end hour at press.
	pressAlong int
	endAtPress int
}

// NewDragController returns an idle controller over the given grid.
func NewDragController(g Grid) *DragController {
	return &DragController{grid: g}
}

// State returns the controller's phase.
func (c *DragController) State() GestureState { return c.state }

// ActiveItem returns the id of the item being dragged, "" when idle.
func (c *DragController) ActiveItem() string { return c.itemID }

// SetGrid swaps the geometry (e.g. after an orientation toggle). Any active
// gesture is cancelled: its press coordinates are meaningless in the new
// projection. The returned action undoes a live resize preview, like Cancel.
func (c *DragController) SetGrid(g Grid) Action {
	c.grid = g
	return c.Cancel()
}

// BeginMove starts a drag-move of the item under the pointer.
func (c *DragController) BeginMove(itemID string) {
	c.state = DraggingMove
	c.itemID = itemID
}

// BeginResize starts a drag-resize from the item's trailing edge.
func (c *DragController) BeginResize(itemID string, endHour, x, y int) {
	c.state = DraggingResize
	c.itemID = itemID
	c.pressAlong = c.along(x, y)
	c.endAtPress = endHour
}

// Motion handles pointer movement. During a resize it converts the
// main-axis delta since the press into a whole-hour delta (rounded to the
// nearest slot span) and emits a live resize action; during a move (and when
// idle) motion produces nothing.
func (c *DragController) Motion(x, y int) Action {
	if c.state != DraggingResize {
		return Action{}
	}
	delta := c.along(x, y) - c.pressAlong
	deltaHours := int(math.Round(float64(delta) / float64(c.grid.Slot)))
	return Action{Kind: ActionResize, ItemID: c.itemID, Hour: c.endAtPress + deltaHours}
}

// Release ends the gesture. A move resolves to the hour slot under the
// pointer (no action when released outside the band); a resize resolves to
// its final candidate end hour. The controller returns to idle either way.
func (c *DragController) Release(x, y int) Action {
	defer c.Cancel()
	switch c.state {
	case DraggingMove:
		hour, ok := c.grid.HourAt(x, y)
		if !ok {
			return Action{}
		}
		return Action{Kind: ActionMove, ItemID: c.itemID, Hour: hour}
	case DraggingResize:
		act := c.Motion(x, y)
		return act
	default:
		return Action{}
	}
}

// Cancel abandons any active gesture and resets to idle. Cancelling a
// resize returns the action restoring the end hour recorded at press, so
// callers can undo the live preview; any other state returns ActionNone.
func (c *DragController) Cancel() Action {
	var act Action
	if c.state == DraggingResize {
		act = Action{Kind: ActionResize, ItemID: c.itemID, Hour: c.endAtPress}
	}
	c.state = Idle
	c.itemID = ""
	c.pressAlong = 0
	c.endAtPress = 0
	return act
}

// along projects a point onto the grid's main axis.
func (c *DragController) along(x, y int) int {
	if c.grid.Orientation == Vertical {
		return y
	}
	return x
}
