package views

// listCursor tracks the selection and scroll offset of a vertical list
type listCursor struct {
	cursor int
	offset int
}

// move shifts the cursor by delta within n items
func (l *listCursor) move(delta, n int) {
	l.set(l.cursor+delta, n)
}

// set places the cursor at i, clamped to n items
func (l *listCursor) set(i, n int) {
	if n == 0 {
		l.cursor, l.offset = 0, 0
		return
	}
	l.cursor = min(max(i, 0), n-1)
}

// window returns the visible range for a list of n items in rows lines,
// scrolling so the cursor stays visible
func (l *listCursor) window(n, rows int) (start, end int) {
	if rows < 1 {
		rows = 1
	}
	l.set(l.cursor, n)
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+rows {
		l.offset = l.cursor - rows + 1
	}
	l.offset = max(0, min(l.offset, max(0, n-rows)))
	return l.offset, min(l.offset+rows, n)
}
