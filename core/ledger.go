package core

// Ledger state machine: deterministic application of signed transactions
// to account balances, NFT ownership, nonces, and the unclaimed-issuance
// pool.

import "fmt"

// ApplyTx mutates st in place according to tx's type. On failure, st is
// left exactly as it was (no partial mutation) and the sentinel error
// describing the reason is returned.
func ApplyTx(st *LedgerState, tx *Transaction) error {
	if !VerifyTxSig(tx) {
		return ErrBadSignature
	}
	if !VerifyAddress(tx.From) || !VerifyAddress(tx.To) {
		return ErrBadAddress
	}

	sender, hasSender := st.Accounts[tx.From]
	var senderNonce uint64
	var senderBalance int64
	if hasSender {
		senderNonce = sender.Nonce
		senderBalance = sender.Balance
	}
	if senderNonce != tx.Nonce {
		return ErrBadNonce
	}

	switch tx.Type {
	case Transfer:
		if tx.Amount <= 0 {
			return ErrAmountNotPos
		}
		total := tx.Amount + BurnFee
		if senderBalance < total {
			return ErrInsufficient
		}
		st.account(tx.From).Balance -= total
		st.account(tx.To).Balance += tx.Amount
		st.UnclaimedPool += BurnFee

	case MintNFT:
		if senderBalance < BurnFee {
			return ErrInsufficient
		}
		st.account(tx.From).Balance -= BurnFee
		st.UnclaimedPool += BurnFee
		id := st.NextTokenID
		st.NextTokenID++
		st.NFTs[id] = &NFTRecord{Owner: tx.From, Meta: tx.Meta}

	case TransferNFT:
		if senderBalance < BurnFee {
			return ErrInsufficient
		}
		rec, ok := st.NFTs[tx.TokenID]
		if !ok || rec.Owner != tx.From {
			return ErrNotOwner
		}
		st.account(tx.From).Balance -= BurnFee
		st.UnclaimedPool += BurnFee
		rec.Owner = tx.To

	case BurnNFT:
		if senderBalance < BurnFee {
			return ErrInsufficient
		}
		rec, ok := st.NFTs[tx.TokenID]
		if !ok || rec.Owner != tx.From {
			return ErrNotOwner
		}
		st.account(tx.From).Balance -= BurnFee
		st.UnclaimedPool += BurnFee
		delete(st.NFTs, tx.TokenID)

	default:
		return ErrUnknownTxType
	}

	st.account(tx.From).Nonce++
	return nil
}

// ValidateBlock applies block's transactions to a copy of prior, in order,
// aborting with the first failing transaction's reason. It also checks
// that the declared reward does not exceed the pool after transactions are
// applied, so ApplyBlock does not fail on a block that passed here. It
// does not check proof-of-work or header linkage; that is the block
// engine's job (AcceptBlock).
func ValidateBlock(prior *LedgerState, block *Block) error {
	tmp := prior.Clone()
	for i, tx := range block.Transactions {
		if err := ApplyTx(tmp, tx); err != nil {
			return fmt.Errorf("tx %d (%s): %w", i, tx.ID, err)
		}
	}
	if block.Reward < 0 || block.Reward > tmp.UnclaimedPool {
		return ErrBadReward
	}
	return nil
}

// ApplyBlock re-applies block's transactions against the live state (after
// ValidateBlock has already approved it), then pays the declared reward to
// the miner from the unclaimed pool. The genesis block (no transactions,
// reward 0) is accepted without crediting anyone.
//
// A failure here indicates a bug or a corrupt store — ValidateBlock should
// have already ruled out every case ApplyBlock can hit — so callers treat
// it as a programming-invariant failure, not a normal rejection.
func ApplyBlock(st *LedgerState, block *Block) error {
	for i, tx := range block.Transactions {
		if err := ApplyTx(st, tx); err != nil {
			return fmt.Errorf("apply_block: tx %d (%s) invalid after validation: %w", i, tx.ID, err)
		}
	}
	if block.Reward < 0 || block.Reward > st.UnclaimedPool {
		return fmt.Errorf("apply_block: %w: reward %d exceeds pool %d", ErrBadReward, block.Reward, st.UnclaimedPool)
	}
	st.UnclaimedPool -= block.Reward
	if block.MinerAddress != "" {
		st.account(block.MinerAddress).Balance += block.Reward
	}
	return nil
}
