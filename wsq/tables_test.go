package wsq

import "testing"

func TestReadDQT(t *testing.T) {
	var buf []byte
	buf = append(buf, 0x00) // scale=0
	buf = append(buf, 0x00, 0x64) // bin_center_raw = 100 -> 100.0
	for i := 0; i < 64; i++ {
		buf = append(buf, 0x00, 0x00, 0x01) // q_bin: scale=0, raw=1 -> 1.0
		buf = append(buf, 0x00, 0x00, 0x02) // z_bin: scale=0, raw=2 -> 2.0
	}
	r := newBitReader(buf, 0)
	qt, err := readDQT(r)
	if err != nil {
		t.Fatalf("readDQT: %v", err)
	}
	if qt.binCenter != 100.0 {
		t.Fatalf("binCenter = %v, want 100", qt.binCenter)
	}
	for i := 0; i < 64; i++ {
		if qt.qBin[i] != 1.0 || qt.zBin[i] != 2.0 {
			t.Fatalf("subband %d = (%v,%v), want (1,2)", i, qt.qBin[i], qt.zBin[i])
		}
	}
}

func TestReadSOF(t *testing.T) {
	var buf []byte
	buf = append(buf, 0x00, 0x11) // table-size prefix, unused
	buf = append(buf, 10, 240) // black, white
	buf = append(buf, 0x02, 0x00) // height = 512
	buf = append(buf, 0x02, 0x00) // width = 512
	buf = append(buf, 0x00, 0x00, 0xC8) // m_shift scale=0, raw=200 -> 200.0
	buf = append(buf, 0x01, 0x00, 0x64) // r_scale scale=1, raw=100 -> 10.0
	buf = append(buf, 0x00)      // encoder
	buf = append(buf, 0x00, 0x01) // software

	r := newBitReader(buf, 0)
	fh, err := readSOF(r)
	if err != nil {
		t.Fatalf("readSOF: %v", err)
	}
	if fh.width != 512 || fh.height != 512 {
		t.Fatalf("dims = %dx%d, want 512x512", fh.width, fh.height)
	}
	if fh.mShift != 200.0 {
		t.Fatalf("mShift = %v, want 200", fh.mShift)
	}
	if fh.rScale != 10.0 {
		t.Fatalf("rScale = %v, want 10", fh.rScale)
	}
}

func TestReadDHTMultipleSubtables(t *testing.T) {
	// Two sub-tables, each: id:u8, huffbits[1..16]:u8, huffvalues.
	sub1Bits := make([]byte, 16)
	sub1Bits[0] = 1 // one code of length 1
	sub2Bits := make([]byte, 16)
	sub2Bits[1] = 2 // two codes of length 2

	var body []byte
	body = append(body, 0) // id 0
	body = append(body, sub1Bits...)
	body = append(body, 0xAA) // one value

	body = append(body, 1) // id 1
	body = append(body, sub2Bits...)
	body = append(body, 0xBB, 0xCC)

	var buf []byte
	blockLen := uint16(2 + len(body))
	buf = append(buf, byte(blockLen>>8), byte(blockLen))
	buf = append(buf, body...)

	r := newBitReader(buf, 0)
	var tables [8]*huffTable
	if err := readDHT(r, &tables); err != nil {
		t.Fatalf("readDHT: %v", err)
	}
	if tables[0] == nil || len(tables[0].values) != 1 || tables[0].values[0] != 0xAA {
		t.Fatalf("table 0 = %+v", tables[0])
	}
	if tables[1] == nil || len(tables[1].values) != 2 || tables[1].values[0] != 0xBB {
		t.Fatalf("table 1 = %+v", tables[1])
	}
}

func TestReadMirroredFilterOddLength(t *testing.T) {
	// size=5 needs ceil(5/2) = 3 compact coefficients; with aSize = 2 they
	// land at indices 2,3,4 with signs +,-,+ and, for i>0, are mirrored to
	// 2-i (indices 1 and 0).
	var buf []byte
	buf = append(buf, 0, 0, 0, 0, 0, 1) // +1.0
	buf = append(buf, 0, 0, 0, 0, 0, 2) // +2.0 (sign bit for second coeff irrelevant to encoding, magnitude read raw)
	buf = append(buf, 0, 0, 0, 0, 0, 3) // +3.0
	r := newBitReader(buf, 0)
	out, err := readMirroredFilter(r, 5)
	if err != nil {
		t.Fatalf("readMirroredFilter: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("len = %d, want 5", len(out))
	}
	// aSize = 5/2 = 2. i=0: out[2]=+1. i=1: out[3]=-2, mirrored out[1]=-2.
	// i=2: out[4]=+3, mirrored out[0]=+3.
	want := []float64{3, -2, 1, -2, 3}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %v, want %v (full=%v)", i, out[i], want[i], out)
		}
	}
}
