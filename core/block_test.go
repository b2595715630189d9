package core

import "testing"

func TestMerkleRootEmpty(t *testing.T) {
	if got := MerkleRoot(nil); got != "" {
		t.Fatalf("MerkleRoot(nil) = %q, want empty", got)
	}
	if got := MerkleRoot([]*Transaction{}); got != "" {
		t.Fatalf("MerkleRoot([]) = %q, want empty", got)
	}
}

func TestMerkleRootSingle(t *testing.T) {
	tx := &Transaction{ID: "abcd"}
	want := Hex(func() []byte { d := DoubleSha256([]byte(tx.ID)); return d[:] }())
	if got := MerkleRoot([]*Transaction{tx}); got != want {
		t.Fatalf("single-tx root = %q, want %q", got, want)
	}
}

func TestMerkleRootOddCountPromotes(t *testing.T) {
	txs := []*Transaction{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	// Leaves hash each ID; level 1 pairs (a,b) and promotes c unpaired;
	// the root then hashes the pair (hash(a,b), hash(c)).
	leafA := Hex(func() []byte { d := DoubleSha256([]byte("a")); return d[:] }())
	leafB := Hex(func() []byte { d := DoubleSha256([]byte("b")); return d[:] }())
	leafC := Hex(func() []byte { d := DoubleSha256([]byte("c")); return d[:] }())
	pairAB := Hex(func() []byte { d := DoubleSha256([]byte(leafA + leafB)); return d[:] }())
	want := Hex(func() []byte { d := DoubleSha256([]byte(pairAB + leafC)); return d[:] }())

	if got := MerkleRoot(txs); got != want {
		t.Fatalf("odd-count root = %q, want %q", got, want)
	}
}

func TestMerkleRootOrderSensitive(t *testing.T) {
	txs1 := []*Transaction{{ID: "a"}, {ID: "b"}}
	txs2 := []*Transaction{{ID: "b"}, {ID: "a"}}
	if MerkleRoot(txs1) == MerkleRoot(txs2) {
		t.Fatalf("expected different roots for different transaction orderings")
	}
}

// hashWithLeadingByte returns a 32-byte digest whose first byte is
// firstByte and every following byte is 0xFF, so leading-zero-bit
// counting never accidentally runs past byte 0.
func hashWithLeadingByte(firstByte byte) string {
	data := make([]byte, 32)
	data[0] = firstByte
	for i := 1; i < len(data); i++ {
		data[i] = 0xFF
	}
	return Hex(data)
}

func TestHashMeetsBits(t *testing.T) {
	allZeroByte := hashWithLeadingByte(0x00)   // 8 leading zero bits, then all ones
	halfByte := hashWithLeadingByte(0x70)      // 0111_0000 — 1 leading zero bit
	noLeadingZero := hashWithLeadingByte(0xFF) // 0 leading zero bits

	cases := []struct {
		name    string
		hexHash string
		bits    uint32
		want    bool
	}{
		{"leading zero byte meets 8", allZeroByte, 8, true},
		{"leading zero byte fails 9", allZeroByte, 9, false},
		{"0x70 leading meets 1", halfByte, 1, true},
		{"0x70 leading fails 2", halfByte, 2, false},
		{"0xff leading fails 1", noLeadingZero, 1, false},
		{"anything meets 0", noLeadingZero, 0, true},
	}
	for _, c := range cases {
		if got := HashMeetsBits(c.hexHash, c.bits); got != c.want {
			t.Fatalf("%s: HashMeetsBits(%q, %d) = %v, want %v", c.name, c.hexHash, c.bits, got, c.want)
		}
	}
}

func TestHashMeetsBitsMonotonic(t *testing.T) {
	hash := hashWithLeadingByte(0x0F) // 0000_1111 — exactly 4 leading zero bits
	for bits := uint32(0); bits <= 4; bits++ {
		if !HashMeetsBits(hash, bits) {
			t.Fatalf("expected bits=%d to be met by a hash with 4 leading zero bits", bits)
		}
	}
	for bits := uint32(5); bits <= 16; bits++ {
		if HashMeetsBits(hash, bits) {
			t.Fatalf("expected bits=%d to fail for a hash with only 4 leading zero bits", bits)
		}
	}
}

func TestHashMeetsBitsBadHex(t *testing.T) {
	if HashMeetsBits("not-hex", 8) {
		t.Fatalf("expected false for undecodable hex")
	}
}

func TestAdjustDifficultyRaisesOnFastBlocks(t *testing.T) {
	got := adjustDifficulty(20, TargetBlockSeconds/2-1)
	if got != 21 {
		t.Fatalf("adjustDifficulty fast = %d, want 21", got)
	}
}

func TestAdjustDifficultyLowersOnSlowBlocks(t *testing.T) {
	got := adjustDifficulty(20, 2*TargetBlockSeconds+1)
	if got != 19 {
		t.Fatalf("adjustDifficulty slow = %d, want 19", got)
	}
}

func TestAdjustDifficultyHoldsWithinBand(t *testing.T) {
	got := adjustDifficulty(20, TargetBlockSeconds)
	if got != 20 {
		t.Fatalf("adjustDifficulty steady = %d, want 20", got)
	}
}

func TestAdjustDifficultyClampsAtBounds(t *testing.T) {
	if got := adjustDifficulty(minDifficultyBits, 10*TargetBlockSeconds); got != minDifficultyBits {
		t.Fatalf("adjustDifficulty floor = %d, want %d", got, minDifficultyBits)
	}
	if got := adjustDifficulty(maxDifficultyBits, 0); got != maxDifficultyBits {
		t.Fatalf("adjustDifficulty ceiling = %d, want %d", got, maxDifficultyBits)
	}
}

func TestMineStepFindsSolutionAtLowDifficulty(t *testing.T) {
	b := &Block{Header: BlockHeader{Height: 1, DifficultyBits: 1}}
	if !MineStep(b, 1<<16) {
		t.Fatalf("expected MineStep to find a solution within budget")
	}
	if !HashMeetsBits(b.Hash, b.Header.DifficultyBits) {
		t.Fatalf("mined hash does not meet declared difficulty")
	}
}

func TestMineStepRespectsExhaustedBudget(t *testing.T) {
	b := &Block{Header: BlockHeader{Height: 1, DifficultyBits: 31}}
	if MineStep(b, 8) {
		t.Fatalf("expected MineStep to exhaust its tiny budget before finding a solution")
	}
}
