package tui

// blocks are the eight sparkline levels, lowest first.
const blocks = "▁▂▃▄▅▆▇█"

// brailleBlank is U+2800, the braille cell with no dots raised.
const brailleBlank = 0x2800

// RingBuffer keeps the most recent chart points up to a fixed capacity.
type RingBuffer struct {
	buf  []float64
	next int  // slot the next Push writes
	full bool // buf has wrapped at least once
}

// NewRingBuffer returns an empty buffer. Capacities below 1 become 1.
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{buf: make([]float64, max(capacity, 1))}
}

// Push appends v, evicting the oldest point once the buffer is full.
func (r *RingBuffer) Push(v float64) {
	r.buf[r.next] = v
	r.next++
	if r.next == len(r.buf) {
		r.next = 0
		r.full = true
	}
}

// Len reports how many points are held.
func (r *RingBuffer) Len() int {
	if r.full {
		return len(r.buf)
	}
	return r.next
}

// Cap reports the capacity.
func (r *RingBuffer) Cap() int { return len(r.buf) }

// Last returns the newest point, or 0 when empty.
func (r *RingBuffer) Last() float64 {
	if r.Len() == 0 {
		return 0
	}
	return r.buf[(r.next+len(r.buf)-1)%len(r.buf)]
}

// Max returns the largest point held, or 0 when empty.
func (r *RingBuffer) Max() float64 {
	pts := r.Slice()
	if len(pts) == 0 {
		return 0
	}
	top := pts[0]
	for _, v := range pts[1:] {
		top = max(top, v)
	}
	return top
}

// Slice copies the points out oldest first. It returns nil when empty.
func (r *RingBuffer) Slice() []float64 {
	n := r.Len()
	if n == 0 {
		return nil
	}
	out := make([]float64, 0, n)
	if r.full {
		out = append(out, r.buf[r.next:]...)
	}
	return append(out, r.buf[:r.next]...)
}

// Resize changes the capacity and keeps the newest points that still fit.
func (r *RingBuffer) Resize(capacity int) {
	capacity = max(capacity, 1)
	if capacity == len(r.buf) {
		return
	}
	kept := r.Slice()
	if len(kept) > capacity {
		kept = kept[len(kept)-capacity:]
	}
	r.buf = make([]float64, capacity)
	r.next = copy(r.buf, kept)
	r.full = r.next == capacity
	if r.full {
		r.next = 0
	}
}

// Reset drops every point and keeps the capacity.
func (r *RingBuffer) Reset() {
	r.next = 0
	r.full = false
}

// RenderSparkline draws CPU percentages on the 0..100 scale.
func RenderSparkline(values []float64) string {
	return RenderScaledSparkline(values, 100)
}

// RenderScaledSparkline draws values on the 0..top scale, clamping those
// outside it. With top <= 0 every value gets the lowest block.
func RenderScaledSparkline(values []float64, top float64) string {
	if len(values) == 0 {
		return ""
	}
	levels := []rune(blocks)
	out := make([]rune, 0, len(values))
	for _, v := range values {
		out = append(out, levels[level(v, top, len(levels))])
	}
	return string(out)
}

// level maps v on [0, top] to a bucket in [0, n), truncating.
func level(v, top float64, n int) int {
	if top <= 0 || v <= 0 {
		return 0
	}
	if v >= top {
		return n - 1
	}
	return min(int(v/top*float64(n-1)), n-1)
}

// setDot raises the dot at (x, y) inside one braille cell, x in 0..1 and
// y in 0..3 from the top. Dots 7 and 8 sit on the bottom row.
func setDot(cell rune, x, y int) rune {
	const (
		left  = "\x01\x02\x04\x40"
		right = "\x08\x10\x20\x80"
	)
	if x == 0 {
		return cell | rune(left[y])
	}
	return cell | rune(right[y])
}

// RenderBrailleChart plots CPU percentages as a width × rows braille
// chart, two points per cell horizontally and four vertical steps per
// row. The newest point is at the right edge and older points are dropped
// once the chart is full.
func RenderBrailleChart(values []float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}
	height := rows * 4
	span := width * 2
	if len(values) > span {
		values = values[len(values)-span:]
	}

	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = make([]rune, width)
		for j := range cells[i] {
			cells[i][j] = brailleBlank
		}
	}

	first := span - len(values)
	for i, v := range values {
		x := first + i
		y := height - 1 - level(v, 100, height)
		cells[y/4][x/2] = setDot(cells[y/4][x/2], x%2, y%4)
	}

	out := make([]string, rows)
	for i, row := range cells {
		out[i] = string(row)
	}
	return out
}
