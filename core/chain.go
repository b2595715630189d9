package core

// Chain ties the ledger state machine and block engine to a Store,
// exposing the single-writer acceptance pipeline: header linkage,
// proof-of-work verification, transaction validation, state mutation,
// tip advancement and difficulty adjustment, atomic on success.

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Chain is the single logical writer for chain state: there is no
// concurrent mutation of the tip or the ledger. Read-only observers may
// call Snapshot/TipHeight/TipHash/DifficultyBits concurrently with AcceptBlock;
// mu ensures they see either the pre- or the post-acceptance state, never
// a torn one.
type Chain struct {
	store Store

	mu             sync.RWMutex
	state          *LedgerState
	tipHeight      uint64
	tipHash        string
	difficultyBits uint32
	lastBlockTime  int64
}

// initialDifficultyBits is the genesis block's starting target.
const initialDifficultyBits uint32 = 20

// NewChain constructs a Chain over store, without loading or initializing
// anything. Callers must call Load (which creates the genesis block on a
// fresh store) before using the chain.
func NewChain(store Store) *Chain {
	return &Chain{store: store, difficultyBits: initialDifficultyBits}
}

// Load prepares the store's layout, then either loads the existing tip and
// state or — on a fresh store — creates the genesis block.
func (c *Chain) Load(params ChainParams) error {
	if err := c.store.EnsureLayout(params); err != nil {
		return fmt.Errorf("chain: ensure layout: %w", err)
	}

	height, hash, ok, err := c.store.ReadTip()
	if err != nil {
		return fmt.Errorf("chain: read tip: %w", err)
	}
	if !ok {
		return c.initGenesis()
	}

	state, err := c.store.LoadState()
	if err != nil {
		return fmt.Errorf("chain: load state: %w", err)
	}

	c.mu.Lock()
	c.state = state
	c.tipHeight = height
	c.tipHash = hash
	c.mu.Unlock()

	tipBlock, err := c.store.ReadBlock(height)
	if err != nil {
		return fmt.Errorf("chain: read tip block: %w", err)
	}
	c.mu.Lock()
	c.lastBlockTime = tipBlock.Header.Timestamp
	c.difficultyBits = tipBlock.Header.DifficultyBits
	c.mu.Unlock()

	logrus.Infof("chain: loaded tip height=%d hash=%s", height, hash)
	return nil
}

// initGenesis creates block 0: empty tx list, empty prev hash, zero reward,
// no miner. The ledger state starts with the pool at SupplyCap.
// last_block_time seeds from the genesis timestamp, so the reward
// schedule's emission horizon begins at init time.
func (c *Chain) initGenesis() error {
	state := NewLedgerState()
	genesis := &Block{
		Header: BlockHeader{
			Height:         0,
			PrevHash:       "",
			MerkleRoot:     MerkleRoot(nil),
			Timestamp:      nowUnix(),
			DifficultyBits: initialDifficultyBits,
			Nonce:          0,
		},
		Transactions: nil,
		MinerAddress: "",
		Reward:       0,
	}
	genesis.Hash = BlockHash(&genesis.Header)

	if err := c.store.WriteBlock(genesis); err != nil {
		return fmt.Errorf("chain: write genesis block: %w", err)
	}
	if err := c.store.SaveState(state); err != nil {
		return fmt.Errorf("chain: save genesis state: %w", err)
	}
	if err := c.store.WriteTip(genesis.Header.Height, genesis.Hash); err != nil {
		return fmt.Errorf("chain: write genesis tip: %w", err)
	}

	c.mu.Lock()
	c.state = state
	c.tipHeight = genesis.Header.Height
	c.tipHash = genesis.Hash
	c.lastBlockTime = genesis.Header.Timestamp
	c.difficultyBits = initialDifficultyBits
	c.mu.Unlock()

	logrus.Infof("chain: initialized genesis block hash=%s", genesis.Hash)
	return nil
}

// TipHeight returns the current tip height.
func (c *Chain) TipHeight() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tipHeight
}

// TipHash returns the current tip's hash.
func (c *Chain) TipHash() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tipHash
}

// DifficultyBits returns the difficulty target the next block must meet.
func (c *Chain) DifficultyBits() uint32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.difficultyBits
}

// Snapshot returns a deep copy of the live ledger state for read-only
// observers, held only for the duration of the copy.
func (c *Chain) Snapshot() *LedgerState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Clone()
}

// AcceptBlock runs the acceptance pipeline on a fully mined block and, on
// success, atomically persists block, tip and state, then advances
// in-memory tip/difficulty. Any failure before persistence leaves
// observable state untouched; a failure during persistence is reported as
// fatal to the caller since recovery must re-observe the old tip.
func (c *Chain) AcceptBlock(b *Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if b.Header.Height != c.tipHeight+1 {
		return fmt.Errorf("chain: %w: height %d != tip+1 (%d)", ErrBadLinkage, b.Header.Height, c.tipHeight+1)
	}
	if b.Header.PrevHash != c.tipHash {
		return fmt.Errorf("chain: %w: prev_hash %s != tip %s", ErrBadLinkage, b.Header.PrevHash, c.tipHash)
	}
	if !HashMeetsBits(b.Hash, b.Header.DifficultyBits) {
		return fmt.Errorf("chain: %w", ErrBadPoW)
	}
	if err := ValidateBlock(c.state, b); err != nil {
		return fmt.Errorf("chain: block rejected: %w", err)
	}

	next := c.state.Clone()
	if err := ApplyBlock(next, b); err != nil {
		// ValidateBlock already approved this block; reaching here means a
		// programming invariant broke, not a normal rejection.
		panic(fmt.Sprintf("chain: apply_block invariant violated after validation: %v", err))
	}

	if err := c.store.WriteBlock(b); err != nil {
		return fmt.Errorf("chain: fatal: write block: %w", err)
	}
	if err := c.store.SaveState(next); err != nil {
		return fmt.Errorf("chain: fatal: save state: %w", err)
	}
	if err := c.store.WriteTip(b.Header.Height, b.Hash); err != nil {
		return fmt.Errorf("chain: fatal: write tip: %w", err)
	}

	dt := b.Header.Timestamp - c.lastBlockTime
	if c.lastBlockTime == 0 {
		dt = TargetBlockSeconds
	}
	c.state = next
	c.tipHeight = b.Header.Height
	c.tipHash = b.Hash
	c.difficultyBits = adjustDifficulty(c.difficultyBits, dt)
	c.lastBlockTime = b.Header.Timestamp

	logrus.Infof("chain: accepted block height=%d hash=%s reward=%d txs=%d difficulty=%d",
		b.Header.Height, b.Hash, b.Reward, len(b.Transactions), c.difficultyBits)
	return nil
}

func nowUnix() int64 {
	return time.Now().Unix()
}
