package esa

import "testing"

func TestChildTableRoundTrip(t *testing.T) {
	testCases := []struct {
		pos         int
		target      int
		description string
	}{
		{10, 20, "Small positive delta"},
		{20, 10, "Small negative delta"},
		{10, 10, "Zero delta"},
		{10, 136, "Delta just inside the inline range"},
		{137, 10, "Negative delta just inside the inline range"},
		{10, 137, "Delta 127 must overflow"},
		{138, 10, "Delta -128 must overflow"},
		{10, 500, "Large positive delta overflows"},
		{900, 10, "Large negative delta overflows"},
		{0, 999, "Whole-array span overflows"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			ct := newChildTable(1000)
			ct.setUp(tc.pos, tc.target)
			ct.setDown(tc.pos, tc.target)
			ct.setNextl(tc.pos, tc.target)
			if got := ct.upAt(tc.pos); got != tc.target {
				t.Errorf("upAt(%d) = %d, want %d", tc.pos, got, tc.target)
			}
			if got := ct.downAt(tc.pos); got != tc.target {
				t.Errorf("downAt(%d) = %d, want %d", tc.pos, got, tc.target)
			}
			if got := ct.nextlAt(tc.pos); got != tc.target {
				t.Errorf("nextlAt(%d) = %d, want %d", tc.pos, got, tc.target)
			}
		})
	}
}

func TestChildTableUndefined(t *testing.T) {
	ct := newChildTable(10)
	for _, pos := range []int{-1, 0, 5, 9, 10, 100} {
		if got := ct.upAt(pos); got != undef {
			t.Errorf("upAt(%d) on a fresh table = %d, want undef", pos, got)
		}
	}
	ct.setUp(3, 3)
	if got := ct.upAt(3); got != 3 {
		t.Errorf("upAt(3) after a zero-delta set = %d, want 3", got)
	}
	if got := ct.upAt(4); got != undef {
		t.Errorf("upAt(4) = %d, want undef", got)
	}
}

func TestChildTableLCP(t *testing.T) {
	ct := newChildTable(10)
	if got := ct.lcpAt(0); got != 0 {
		t.Errorf("lcpAt(0) on a fresh table = %d, want 0", got)
	}
	if got := ct.lcpAt(10); got != undef {
		t.Errorf("lcpAt(10) = %d, want undef for out of range", got)
	}
	ct.setLCP(1, 254)
	ct.setLCP(2, 255)
	ct.setLCP(3, 70000)
	for pos, want := range map[int]int{1: 254, 2: 255, 3: 70000} {
		if got := ct.lcpAt(pos); got != want {
			t.Errorf("lcpAt(%d) = %d, want %d", pos, got, want)
		}
	}
	if len(ct.lcpOvf) != 2 {
		t.Errorf("lcp overflow map has %d entries, want 2", len(ct.lcpOvf))
	}
}
