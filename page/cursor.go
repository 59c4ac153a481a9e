package page

// Cursor is the page state of one list screen.
// Each screen owns its own Cursor; the zero Current is treated as page 1.
type Cursor struct {
	Size    int
	Current int
}

// NewCursor returns a cursor on page 1.
func NewCursor(size int) Cursor {
	if size < 1 {
		size = 1
	}
	return Cursor{Size: size, Current: 1}
}

// Clamp re-clamps the current page against a list of n items and returns it.
func (c *Cursor) Clamp(n int) int {
	c.Current = Clamp(c.Current, n, c.Size)
	return c.Current
}

// Next advances one page, stopping at the last page.
func (c *Cursor) Next(n int) int {
	c.Current++
	return c.Clamp(n)
}

// Prev goes back one page from the clamped current page, stopping at page 1.
func (c *Cursor) Prev(n int) int {
	c.Clamp(n)
	c.Current--
	return c.Clamp(n)
}

// Goto moves to page p, clamped.
func (c *Cursor) Goto(p, n int) int {
	c.Current = p
	return c.Clamp(n)
}

// Last moves to the last page of a list of n items.
func (c *Cursor) Last(n int) int {
	c.Current = TotalPages(n, c.Size)
	return c.Current
}

// Show moves to the page holding the item at index.
func (c *Cursor) Show(index, n int) int {
	c.Current = Of(index, c.Size)
	return c.Clamp(n)
}

// Window paginates items at the cursor, re-clamping it first.
func Window[T any](c *Cursor, items []T) Page[T] {
	c.Clamp(len(items))
	return Paginate(items, c.Size, c.Current)
}
