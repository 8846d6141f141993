package esa

// undef marks an absent table entry. Getters return it for every position
// that was never set and for out-of-range positions.
const undef = -1

// childTable holds the LCP array and the up/down/nextl arrays in byte-sized
// backing storage. LCP values are unsigned bytes with 255 marking an entry in
// the overflow map. The three child arrays store the delta target−position as
// a signed byte: −128 means unset, +127 means the absolute target lives in
// the companion overflow map.
type childTable struct {
	lcp    []uint8
	lcpOvf map[int]int

	up       []int8
	upOvf    map[int]int
	down     []int8
	downOvf  map[int]int
	nextl    []int8
	nextlOvf map[int]int
}

func newChildTable(size int) *childTable {
	t := &childTable{
		lcp:      make([]uint8, size),
		lcpOvf:   make(map[int]int),
		up:       make([]int8, size),
		upOvf:    make(map[int]int),
		down:     make([]int8, size),
		downOvf:  make(map[int]int),
		nextl:    make([]int8, size),
		nextlOvf: make(map[int]int),
	}
	for i := range t.up {
		t.up[i] = -128
		t.down[i] = -128
		t.nextl[i] = -128
	}
	return t
}

// store writes a delta entry, spilling to the overflow map when the delta
// does not fit in (−128, 127).
func store(vec []int8, ovf map[int]int, pos, target int) {
	rel := target - pos
	if rel > -128 && rel < 127 {
		vec[pos] = int8(rel)
		return
	}
	vec[pos] = 127
	ovf[pos] = target
}

// retrieve reads a delta entry back as an absolute target, or undef.
func retrieve(vec []int8, ovf map[int]int, pos int) int {
	if pos < 0 || pos >= len(vec) {
		return undef
	}
	switch vec[pos] {
	case -128:
		return undef
	case 127:
		return ovf[pos]
	}
	return pos + int(vec[pos])
}

func (t *childTable) setLCP(pos, value int) {
	if value < 255 {
		t.lcp[pos] = uint8(value)
		return
	}
	t.lcp[pos] = 255
	t.lcpOvf[pos] = value
}

func (t *childTable) lcpAt(pos int) int {
	if pos < 0 || pos >= len(t.lcp) {
		return undef
	}
	if t.lcp[pos] < 255 {
		return int(t.lcp[pos])
	}
	return t.lcpOvf[pos]
}

func (t *childTable) setUp(pos, target int)    { store(t.up, t.upOvf, pos, target) }
func (t *childTable) upAt(pos int) int         { return retrieve(t.up, t.upOvf, pos) }
func (t *childTable) setDown(pos, target int)  { store(t.down, t.downOvf, pos, target) }
func (t *childTable) downAt(pos int) int       { return retrieve(t.down, t.downOvf, pos) }
func (t *childTable) setNextl(pos, target int) { store(t.nextl, t.nextlOvf, pos, target) }
func (t *childTable) nextlAt(pos int) int      { return retrieve(t.nextl, t.nextlOvf, pos) }

func (t *childTable) overflowLen() int {
	return len(t.lcpOvf) + len(t.upOvf) + len(t.downOvf) + len(t.nextlOvf)
}
