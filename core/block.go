package core

// Block engine: header hashing, Merkle root, the proof-of-work predicate,
// block construction (including reward computation) and the re-entrant
// mining step.

import (
	"bytes"
	"time"
)

// BlockHash returns hex(doubleSha256(headerPreimage(h))).
func BlockHash(h *BlockHeader) string {
	digest := DoubleSha256(HeaderPreimage(h))
	return Hex(digest[:])
}

// MerkleRoot builds the fixed point of iterated pairwise hashing over a
// transaction list's ids. Leaves and interior nodes hash the ASCII bytes
// of hex strings, not raw digests. An empty list yields "".
func MerkleRoot(txs []*Transaction) string {
	if len(txs) == 0 {
		return ""
	}
	level := make([]string, len(txs))
	for i, tx := range txs {
		digest := DoubleSha256([]byte(tx.ID))
		level[i] = Hex(digest[:])
	}
	for len(level) > 1 {
		next := make([]string, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				var buf bytes.Buffer
				buf.WriteString(level[i])
				buf.WriteString(level[i+1])
				digest := DoubleSha256(buf.Bytes())
				next = append(next, Hex(digest[:]))
			} else {
				next = append(next, level[i])
			}
		}
		level = next
	}
	return level[0]
}

// HashMeetsBits reports whether hexHash, read as a big-endian byte string,
// has at least bits leading zero bits.
func HashMeetsBits(hexHash string, bits uint32) bool {
	h, err := Unhex(hexHash)
	if err != nil {
		return false
	}
	zeroBytes := int(bits / 8)
	rem := bits % 8
	if zeroBytes > len(h) {
		return false
	}
	for i := 0; i < zeroBytes; i++ {
		if h[i] != 0 {
			return false
		}
	}
	if rem > 0 {
		if zeroBytes >= len(h) {
			return false
		}
		mask := byte(0xFF << (8 - rem))
		if h[zeroBytes]&mask != 0 {
			return false
		}
	}
	return true
}

// BuildBlock assembles an unmined block extending the chain's current tip
// with txs, computing the Merkle root and the emission-schedule reward.
//
// remaining_secs = max(TargetBlockSeconds, emissionEnd - now), where
// emissionEnd = lastBlockTime + EmissionYears years; remaining_blocks =
// max(1, remaining_secs / TargetBlockSeconds); reward = max(0, pool /
// remaining_blocks), integer division — this asymptotically drains the
// pool by the target emission horizon.
func (c *Chain) BuildBlock(minerAddr string, txs []*Transaction) *Block {
	now := time.Now().Unix()
	header := BlockHeader{
		Height:         c.tipHeight + 1,
		PrevHash:       c.tipHash,
		MerkleRoot:     MerkleRoot(txs),
		Timestamp:      now,
		DifficultyBits: c.difficultyBits,
		Nonce:          0,
	}

	const secondsPerYear = 365 * 24 * 3600
	emissionEnd := c.lastBlockTime + EmissionYears*secondsPerYear
	remainingSecs := emissionEnd - now
	if remainingSecs < TargetBlockSeconds {
		remainingSecs = TargetBlockSeconds
	}
	remainingBlocks := remainingSecs / TargetBlockSeconds
	if remainingBlocks < 1 {
		remainingBlocks = 1
	}
	reward := c.state.UnclaimedPool / remainingBlocks
	if reward < 0 {
		reward = 0
	}

	return &Block{
		Header:       header,
		Transactions: txs,
		MinerAddress: minerAddr,
		Reward:       reward,
	}
}

// MineStep searches up to budget nonce values following b's current nonce
// (the nonce is incremented before each attempt), stamping b.Hash whenever
// it recomputes. It returns true and leaves
// b mined as soon as the proof-of-work predicate holds, or false if the
// budget is exhausted first — letting the caller interleave other work
// (network I/O, shutdown signals) between calls.
func MineStep(b *Block, budget uint64) bool {
	for i := uint64(0); i < budget; i++ {
		b.Header.Nonce++
		b.Hash = BlockHash(&b.Header)
		if HashMeetsBits(b.Hash, b.Header.DifficultyBits) {
			return true
		}
	}
	return false
}

// adjustDifficulty applies the per-block bit-shift rule: dt < target/2
// raises difficulty by one bit, dt > 2*target lowers it by one, clamped
// to [8, 31].
func adjustDifficulty(bits uint32, dt int64) uint32 {
	if dt < TargetBlockSeconds/2 && bits < maxDifficultyBits {
		return bits + 1
	}
	if dt > 2*TargetBlockSeconds && bits > minDifficultyBits {
		return bits - 1
	}
	return bits
}
