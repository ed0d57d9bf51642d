package wsq

import "testing"

// buildTestTable constructs a tiny 4-symbol canonical table: two 2-bit
// codes and two 3-bit codes, a shape simple enough to hand-trace.
//
// Lengths: bits[2] = 2 (values 'A','B'), bits[3] = 2 (values 'C','D').
// Canonical codes: A=00, B=01 (length 2), C=100, D=101 (length 3).
func buildTestTable() *canonicalHuffman {
	ht := &huffTable{values: []byte{'A', 'B', 'C', 'D'}}
	ht.bits[2] = 2
	ht.bits[3] = 2
	return buildCanonical(ht)
}

func packBits(bits ...int) []byte {
	var out []byte
	var cur byte
	n := 0
	for _, b := range bits {
		cur = cur<<1 | byte(b)
		n++
		if n == 8 {
			out = append(out, cur)
			cur = 0
			n = 0
		}
	}
	if n > 0 {
		cur <<= uint(8 - n)
		out = append(out, cur)
	}
	return out
}

func TestCanonicalHuffmanRoundTrip(t *testing.T) {
	c := buildTestTable()
	if c.mincode[2] != 0 || c.maxcode[2] != 1 {
		t.Fatalf("length-2 range = [%d,%d], want [0,1]", c.mincode[2], c.maxcode[2])
	}
	if c.mincode[3] != 4 || c.maxcode[3] != 5 {
		t.Fatalf("length-3 range = [%d,%d], want [4,5]", c.mincode[3], c.maxcode[3])
	}

	// Encode A,B,C,D back to back: 00 01 100 101
	buf := packBits(0, 0, 0, 1, 1, 0, 0, 1, 0, 1)
	r := newBitReader(buf, 0)

	want := []byte{'A', 'B', 'C', 'D'}
	for _, w := range want {
		got, err := decodeSymbol(r, c)
		if err != nil {
			t.Fatalf("decodeSymbol: %v", err)
		}
		if got != w {
			t.Fatalf("decodeSymbol = %q, want %q", got, w)
		}
	}
}

func TestDecodeTokenZeroRunAndLiteral(t *testing.T) {
	// Single-symbol table: nodeptr 5 (a zero run of 5), one bit long.
	ht := &huffTable{values: []byte{5}}
	ht.bits[1] = 1
	c := buildCanonical(ht)

	r := newBitReader(packBits(0), 0)
	tok, err := decodeToken(r, c)
	if err != nil {
		t.Fatalf("decodeToken: %v", err)
	}
	if tok.zeroRun != 5 || tok.hasLit {
		t.Fatalf("got %+v, want zeroRun=5", tok)
	}
}

func TestDecodeTokenLiteralOffset(t *testing.T) {
	// nodeptr 180 decodes to literal 0; nodeptr 107 decodes to literal -73.
	ht := &huffTable{values: []byte{180, 107}}
	ht.bits[1] = 2 // both length-1 codes: 0 -> 180, 1 -> 107
	c := buildCanonical(ht)

	r := newBitReader(packBits(0), 0)
	tok, err := decodeToken(r, c)
	if err != nil {
		t.Fatalf("decodeToken: %v", err)
	}
	if !tok.hasLit || tok.literal != 0 {
		t.Fatalf("nodeptr 180: got %+v, want literal 0", tok)
	}

	r = newBitReader(packBits(1), 0)
	tok, err = decodeToken(r, c)
	if err != nil {
		t.Fatalf("decodeToken: %v", err)
	}
	if !tok.hasLit || tok.literal != -73 {
		t.Fatalf("nodeptr 107: got %+v, want literal -73", tok)
	}
}
