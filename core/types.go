// Package core implements the Axle ledger state machine, block engine,
// canonical hashing surface and storage/network contracts.
package core

import "errors"

// Fixed chain constants.
const (
	// Unit is the number of sub-units per whole coin.
	Unit int64 = 100_000_000
	// BurnFee is the flat per-transaction fee returned to the unclaimed pool.
	BurnFee int64 = 1_000_000
	// AddressVersion is the Base58Check version byte for account addresses.
	AddressVersion byte = 23
	// SupplyCap is the maximum number of sub-units that may ever exist.
	SupplyCap int64 = 100_000_000_000 * Unit
	// TargetBlockSeconds is the desired spacing between blocks.
	TargetBlockSeconds int64 = 30
	// EmissionYears is the horizon over which the unclaimed pool drains.
	EmissionYears int64 = 8
	// NetworkID is the Axle network identifier. It is not carried in gossip
	// or status messages.
	NetworkID uint32 = 0xA117E

	minDifficultyBits uint32 = 8
	maxDifficultyBits uint32 = 31
)

// TxType enumerates the four fixed transaction kinds.
type TxType int

const (
	Transfer TxType = iota
	MintNFT
	TransferNFT
	BurnNFT
)

func (t TxType) String() string {
	switch t {
	case Transfer:
		return "TRANSFER"
	case MintNFT:
		return "MINT_NFT"
	case TransferNFT:
		return "TRANSFER_NFT"
	case BurnNFT:
		return "BURN_NFT"
	default:
		return "UNKNOWN"
	}
}

// NFTMeta carries the descriptive fields attached to a minted NFT.
type NFTMeta struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	URI    string `json:"uri"`
}

// Transaction is a signed, immutable account-based operation.
type Transaction struct {
	Type      TxType  `json:"type"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    int64   `json:"amount"`
	Nonce     uint64  `json:"nonce"`
	TokenID   uint64  `json:"tokenId"`
	Meta      NFTMeta `json:"meta"`
	Signature []byte  `json:"signature"`
	PubKey    []byte  `json:"pubkey"`
	ID        string  `json:"id"`
}

// BlockHeader is the six-field canonical header.
type BlockHeader struct {
	Height         uint64 `json:"height"`
	PrevHash       string `json:"prev_hash"`
	MerkleRoot     string `json:"merkle_root"`
	Timestamp      int64  `json:"timestamp"`
	DifficultyBits uint32 `json:"difficulty_bits"`
	Nonce          uint64 `json:"nonce"`
}

// Block is a header plus its ordered transactions and mining metadata.
type Block struct {
	Header       BlockHeader    `json:"header"`
	Transactions []*Transaction `json:"transactions"`
	MinerAddress string         `json:"miner_address"`
	Reward       int64          `json:"reward"`
	Hash         string         `json:"hash"`
}

// AccountState tracks one address's spendable balance and replay nonce.
type AccountState struct {
	Balance int64  `json:"balance"`
	Nonce   uint64 `json:"nonce"`
}

// NFTRecord is one entry in the NFT registry.
type NFTRecord struct {
	Owner string  `json:"owner"`
	Meta  NFTMeta `json:"meta"`
}

// LedgerState is the full, append-only-derived account/NFT/pool snapshot.
type LedgerState struct {
	Accounts      map[string]*AccountState `json:"accounts"`
	NFTs          map[uint64]*NFTRecord    `json:"nfts"`
	NextTokenID   uint64                   `json:"next_token_id"`
	UnclaimedPool int64                    `json:"unclaimed_pool"`
}

// NewLedgerState returns an empty ledger with the pool seeded at SupplyCap.
func NewLedgerState() *LedgerState {
	return &LedgerState{
		Accounts:      make(map[string]*AccountState),
		NFTs:          make(map[uint64]*NFTRecord),
		NextTokenID:   1,
		UnclaimedPool: SupplyCap,
	}
}

// Clone returns a deep copy so speculative application never mutates the
// caller's state on failure (used by ValidateBlock).
func (s *LedgerState) Clone() *LedgerState {
	out := &LedgerState{
		Accounts:      make(map[string]*AccountState, len(s.Accounts)),
		NFTs:          make(map[uint64]*NFTRecord, len(s.NFTs)),
		NextTokenID:   s.NextTokenID,
		UnclaimedPool: s.UnclaimedPool,
	}
	for addr, acc := range s.Accounts {
		a := *acc
		out.Accounts[addr] = &a
	}
	for id, rec := range s.NFTs {
		r := *rec
		out.NFTs[id] = &r
	}
	return out
}

func (s *LedgerState) account(addr string) *AccountState {
	acc, ok := s.Accounts[addr]
	if !ok {
		acc = &AccountState{}
		s.Accounts[addr] = acc
	}
	return acc
}

// ChainParams groups the parameters an embedding operator may record
// alongside a datadir.
type ChainParams struct {
	Network string `json:"network"`
}

// Failure taxonomy returned from ApplyTx and ValidateBlock so callers can
// distinguish reasons without parsing strings.
var (
	ErrBadSignature  = errors.New("bad signature")
	ErrBadAddress    = errors.New("bad address")
	ErrBadNonce      = errors.New("bad nonce")
	ErrAmountNotPos  = errors.New("amount<=0")
	ErrInsufficient  = errors.New("insufficient")
	ErrNotOwner      = errors.New("not owner")
	ErrUnknownTxType = errors.New("unknown tx type")
	ErrBadReward     = errors.New("bad reward")

	// ErrBadLinkage/ErrBadPoW are block-acceptance failures distinct from
	// the per-transaction taxonomy above.
	ErrBadLinkage = errors.New("bad block linkage")
	ErrBadPoW     = errors.New("hash does not meet difficulty target")
)
