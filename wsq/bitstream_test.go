package wsq

import (
	"errors"
	"testing"
)

func TestBitReaderReadBits(t *testing.T) {
	// 0xB5 = 10110101
	r := newBitReader([]byte{0xB5}, 0)
	want := []int{1, 0, 1, 1, 0, 1, 0, 1}
	for i, w := range want {
		got, err := r.readBit()
		if err != nil {
			t.Fatalf("bit %d: %v", i, err)
		}
		if got != w {
			t.Fatalf("bit %d = %d, want %d", i, got, w)
		}
	}
}

func TestBitReaderByteStuffing(t *testing.T) {
	// 0xFF 0x00 is a stuffed literal 0xFF data byte.
	r := newBitReader([]byte{0xFF, 0x00}, 0)
	v, err := r.readBits(8)
	if err != nil {
		t.Fatalf("readBits: %v", err)
	}
	if v != 0xFF {
		t.Fatalf("got %#x, want 0xff", v)
	}
}

func TestBitReaderMarkerAbort(t *testing.T) {
	// 0xFF 0xA1 is the EOI marker, not stuffed data: reading a bit here
	// must fail with errMarkerHit, and takeMarker must then return it.
	r := newBitReader([]byte{0xFF, 0xA1}, 0)
	_, err := r.readBit()
	if err == nil {
		t.Fatal("expected errMarkerHit, got nil")
	}
	if !errors.Is(err, errMarkerHit) {
		t.Fatalf("got %v, want wrapping errMarkerHit", err)
	}

	m, err := r.takeMarker()
	if err != nil {
		t.Fatalf("takeMarker: %v", err)
	}
	if m != markerEOI {
		t.Fatalf("got marker %#x, want EOI", m)
	}
}

func TestReadMarkerContext(t *testing.T) {
	r := newBitReader([]byte{0xFF, 0xA0}, 0) // SOI
	m, err := readMarker(r, ctxSOI)
	if err != nil {
		t.Fatalf("readMarker: %v", err)
	}
	if m != markerSOI {
		t.Fatalf("got %#x, want SOI", m)
	}

	r = newBitReader([]byte{0xFF, 0xA1}, 0) // EOI, illegal at ctxSOI
	if _, err := readMarker(r, ctxSOI); err == nil {
		t.Fatal("expected failure reading EOI in SOI context")
	}
}
