package workflow

// DragKind identifies a drag-and-drop event on the drop region
type DragKind int

const (
	DragEnter DragKind = iota
	DragOver
	DragLeave
	Drop
)

// String returns the event name
func (k DragKind) String() string {
	switch k {
	case DragEnter:
		return "dragenter"
	case DragOver:
		return "dragover"
	case DragLeave:
		return "dragleave"
	case Drop:
		return "drop"
	default:
		return "unknown"
	}
}

// DragEvent is a drag-and-drop event. Files is only meaningful for Drop.
type DragEvent struct {
	Kind  DragKind
	Files []string

	defaultPrevented bool
}

// NewDragEvent creates a drag event
func NewDragEvent(kind DragKind, files ...string) *DragEvent {
	return &DragEvent{Kind: kind, Files: files}
}

// PreventDefault marks the event as consumed by the drop region
func (e *DragEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether the surface must skip its own handling
func (e *DragEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// HandleDrag processes an event on the drop region. Every event is consumed.
// The highlight follows the drag and is cleared on leave or drop regardless
// of what the drop turns out to contain. A drop is fed through PickerChange
// so both sources share one path.
func (c *Controller) HandleDrag(ev *DragEvent) *PreviewJob {
	ev.PreventDefault()

	switch ev.Kind {
	case DragEnter, DragOver:
		c.view.DropHighlight = true
		return nil
	case DragLeave:
		c.view.DropHighlight = false
		return nil
	case Drop:
		c.view.DropHighlight = false
		return c.PickerChange(ev.Files)
	default:
		return nil
	}
}
