package wsq

import "testing"

func TestBuildSubbandTreesSizes(t *testing.T) {
	cases := []struct{ w, h int }{
		{512, 512},
		{500, 500}, // odd-ish dimensions exercise parity rounding
		{768, 1024},
		{37, 41}, // small, deliberately awkward odd sizes
	}
	for _, c := range cases {
		wtree, qtree := buildSubbandTrees(c.w, c.h)
		if len(wtree) != 20 {
			t.Errorf("%dx%d: got %d wavelet nodes, want 20", c.w, c.h, len(wtree))
		}
		if len(qtree) != 64 {
			t.Errorf("%dx%d: got %d quant leaves, want 64", c.w, c.h, len(qtree))
		}
		active := 0
		for _, sb := range qtree {
			if !sb.unused() {
				active++
			}
		}
		if active != 60 {
			t.Errorf("%dx%d: got %d active subbands, want 60", c.w, c.h, active)
		}
		if !coversExactly(qtree, c.w, c.h) {
			t.Errorf("%dx%d: active qtree leaves do not disjointly cover the image", c.w, c.h)
		}
	}
}

func TestSplitExtentParity(t *testing.T) {
	a, b := splitExtent(10, 0)
	if a != 5 || b != 5 {
		t.Fatalf("even split: got (%d,%d), want (5,5)", a, b)
	}
	a, b = splitExtent(11, 0)
	if a != 6 || b != 5 {
		t.Fatalf("odd split flag=0: got (%d,%d), want (6,5)", a, b)
	}
	a, b = splitExtent(11, 1)
	if a != 5 || b != 6 {
		t.Fatalf("odd split flag=1: got (%d,%d), want (5,6)", a, b)
	}
}

func TestBuildSubbandTreesDeterministic(t *testing.T) {
	w1, q1 := buildSubbandTrees(640, 480)
	w2, q2 := buildSubbandTrees(640, 480)
	if len(w1) != len(w2) || len(q1) != len(q2) {
		t.Fatal("tree sizes vary across calls with identical dimensions")
	}
	for i := range q1 {
		if q1[i] != q2[i] {
			t.Fatalf("qtree[%d] differs across identical calls: %+v vs %+v", i, q1[i], q2[i])
		}
	}
}
