package core

import (
	"testing"
)

func newTestChain(t *testing.T) *Chain {
	t.Helper()
	store := NewFileStore(t.TempDir())
	chain := NewChain(store)
	if err := chain.Load(ChainParams{Network: "testnet"}); err != nil {
		t.Fatalf("load: %v", err)
	}
	return chain
}

func mineBlock(t *testing.T, chain *Chain, minerAddr string, txs []*Transaction) *Block {
	t.Helper()
	b := chain.BuildBlock(minerAddr, txs)
	for !MineStep(b, 1<<20) {
	}
	if err := chain.AcceptBlock(b); err != nil {
		t.Fatalf("accept block: %v", err)
	}
	return b
}

func TestChainLoadCreatesGenesis(t *testing.T) {
	chain := newTestChain(t)
	if chain.TipHeight() != 0 {
		t.Fatalf("tip height = %d, want 0", chain.TipHeight())
	}
	if chain.TipHash() == "" {
		t.Fatalf("expected non-empty genesis hash")
	}
	snap := chain.Snapshot()
	if snap.UnclaimedPool != SupplyCap {
		t.Fatalf("genesis pool = %d, want %d", snap.UnclaimedPool, SupplyCap)
	}
}

func TestChainReloadPreservesTip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	chain := NewChain(store)
	if err := chain.Load(ChainParams{}); err != nil {
		t.Fatalf("load: %v", err)
	}

	a := newTestAccount(t)
	mineBlock(t, chain, a.addr, nil)

	reloaded := NewChain(store)
	if err := reloaded.Load(ChainParams{}); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.TipHeight() != chain.TipHeight() {
		t.Fatalf("reloaded tip height = %d, want %d", reloaded.TipHeight(), chain.TipHeight())
	}
	if reloaded.TipHash() != chain.TipHash() {
		t.Fatalf("reloaded tip hash = %s, want %s", reloaded.TipHash(), chain.TipHash())
	}
}

func TestChainMineEmptyBlockPaysReward(t *testing.T) {
	chain := newTestChain(t)
	a := newTestAccount(t)

	poolBefore := chain.Snapshot().UnclaimedPool
	b := mineBlock(t, chain, a.addr, nil)

	if b.Reward <= 0 {
		t.Fatalf("expected positive reward for first block, got %d", b.Reward)
	}
	snap := chain.Snapshot()
	if snap.Accounts[a.addr].Balance != b.Reward {
		t.Fatalf("miner balance = %d, want %d", snap.Accounts[a.addr].Balance, b.Reward)
	}
	if snap.UnclaimedPool != poolBefore-b.Reward {
		t.Fatalf("pool = %d, want %d", snap.UnclaimedPool, poolBefore-b.Reward)
	}
}

func TestChainAcceptBlockRejectsBadLinkage(t *testing.T) {
	chain := newTestChain(t)
	a := newTestAccount(t)

	b := chain.BuildBlock(a.addr, nil)
	b.Header.Height = 99
	for !MineStep(b, 1<<20) {
	}
	if err := chain.AcceptBlock(b); err == nil {
		t.Fatalf("expected bad-linkage rejection for wrong height")
	}
}

func TestChainAcceptBlockRejectsBadPoW(t *testing.T) {
	chain := newTestChain(t)
	a := newTestAccount(t)

	b := chain.BuildBlock(a.addr, nil)
	b.Hash = BlockHash(&b.Header) // never mined, almost certainly fails difficulty
	if err := chain.AcceptBlock(b); err == nil {
		t.Fatalf("expected proof-of-work rejection for unmined block")
	}
}

func TestChainTransferAcrossBlocks(t *testing.T) {
	chain := newTestChain(t)
	a := newTestAccount(t)
	b := newTestAccount(t)

	mineBlock(t, chain, a.addr, nil) // fund a via block reward
	aBalance := chain.Snapshot().Accounts[a.addr].Balance

	tx := signAs(a, &Transaction{Type: Transfer, To: b.addr, Amount: aBalance / 4, Nonce: 0})
	mineBlock(t, chain, a.addr, []*Transaction{tx})

	snap := chain.Snapshot()
	if snap.Accounts[b.addr].Balance != aBalance/4 {
		t.Fatalf("recipient balance = %d, want %d", snap.Accounts[b.addr].Balance, aBalance/4)
	}
	if snap.Accounts[a.addr].Nonce != 1 {
		t.Fatalf("sender nonce = %d, want 1", snap.Accounts[a.addr].Nonce)
	}
}

func TestChainRejectsDoubleSpendBlock(t *testing.T) {
	chain := newTestChain(t)
	a := newTestAccount(t)
	b := newTestAccount(t)

	mineBlock(t, chain, a.addr, nil)
	aBalance := chain.Snapshot().Accounts[a.addr].Balance

	tx1 := signAs(a, &Transaction{Type: Transfer, To: b.addr, Amount: aBalance / 2, Nonce: 0})
	tx2 := signAs(a, &Transaction{Type: Transfer, To: b.addr, Amount: aBalance / 2, Nonce: 0})

	unmined := chain.BuildBlock(a.addr, []*Transaction{tx1, tx2})
	for !MineStep(unmined, 1<<20) {
	}
	if err := chain.AcceptBlock(unmined); err == nil {
		t.Fatalf("expected reused-nonce block to be rejected")
	}
	if chain.TipHeight() != 1 {
		t.Fatalf("tip height advanced past rejected block: %d", chain.TipHeight())
	}
}

func TestChainMintAndTransferNFT(t *testing.T) {
	chain := newTestChain(t)
	a := newTestAccount(t)
	b := newTestAccount(t)

	mineBlock(t, chain, a.addr, nil)

	mint := signAs(a, &Transaction{Type: MintNFT, To: a.addr, Nonce: 0, Meta: NFTMeta{Name: "art"}})
	mineBlock(t, chain, a.addr, []*Transaction{mint})

	snap := chain.Snapshot()
	if snap.NFTs[1] == nil || snap.NFTs[1].Owner != a.addr {
		t.Fatalf("expected a to own nft 1 after mint")
	}

	xfer := signAs(a, &Transaction{Type: TransferNFT, To: b.addr, TokenID: 1, Nonce: 1})
	mineBlock(t, chain, a.addr, []*Transaction{xfer})

	snap = chain.Snapshot()
	if snap.NFTs[1].Owner != b.addr {
		t.Fatalf("expected b to own nft 1 after transfer")
	}
}

func TestChainRejectsNonOwnerBurn(t *testing.T) {
	chain := newTestChain(t)
	a := newTestAccount(t)
	b := newTestAccount(t)

	mineBlock(t, chain, a.addr, nil)
	mineBlock(t, chain, b.addr, nil)

	mint := signAs(a, &Transaction{Type: MintNFT, To: a.addr, Nonce: 0, Meta: NFTMeta{Name: "art"}})
	mineBlock(t, chain, a.addr, []*Transaction{mint})

	badBurn := signAs(b, &Transaction{Type: BurnNFT, To: b.addr, TokenID: 1, Nonce: 0})
	unmined := chain.BuildBlock(b.addr, []*Transaction{badBurn})
	for !MineStep(unmined, 1<<20) {
	}
	if err := chain.AcceptBlock(unmined); err == nil {
		t.Fatalf("expected non-owner burn to be rejected")
	}

	snap := chain.Snapshot()
	if _, ok := snap.NFTs[1]; !ok {
		t.Fatalf("nft should still exist after rejected burn")
	}
}

func TestChainDifficultyAdjustsWithBlockSpacing(t *testing.T) {
	chain := newTestChain(t)
	a := newTestAccount(t)
	initial := chain.DifficultyBits()

	b := chain.BuildBlock(a.addr, nil)
	b.Header.Timestamp = chain.lastBlockTime + TargetBlockSeconds/4 // much faster than target
	for !MineStep(b, 1<<20) {
	}
	if err := chain.AcceptBlock(b); err != nil {
		t.Fatalf("accept fast block: %v", err)
	}
	if chain.DifficultyBits() <= initial {
		t.Fatalf("expected difficulty to rise after a fast block: got %d, was %d", chain.DifficultyBits(), initial)
	}
}
