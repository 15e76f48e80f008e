// Package virtual decides which part of a file's diff is materialised for
// rendering and tracks how far the user has expanded it.
package virtual

// Window is the per-file view state. The zero value is not valid; use
// NewWindow.
type Window struct {
	visibleChunks int
	collapsed     bool
}

// NewWindow returns an expanded window showing initialChunks chunks.
// Values below 1 are raised to 1.
func NewWindow(initialChunks int) Window {
	return Window{visibleChunks: max(initialChunks, 1)}
}

func (w Window) VisibleChunks() int { return w.visibleChunks }

func (w Window) Collapsed() bool { return w.collapsed }

// ToggleCollapse flips between collapsed and expanded. The chunk count is
// kept.
func (w *Window) ToggleCollapse() {
	w.collapsed = !w.collapsed
}

// LoadMore reveals one more chunk. It only applies to large content and
// reports whether the window changed.
func (w *Window) LoadMore(isLarge bool) bool {
	if !isLarge {
		return false
	}
	w.visibleChunks++
	return true
}
