package core

// Transaction model operations: preimage, signing, id derivation,
// signature verification.

import "crypto/ed25519"

// SignTx computes the canonical preimage, signs it, fills in PubKey and ID,
// and returns the now-immutable signed transaction. unsigned is not mutated.
func SignTx(unsigned *Transaction, priv ed25519.PrivateKey) *Transaction {
	tx := *unsigned
	msg := TxPreimage(&tx)
	tx.Signature = Sign(msg, priv)
	tx.PubKey = PubFromPriv(priv)
	digest := DoubleSha256(msg)
	tx.ID = Hex(digest[:])
	return &tx
}

// VerifyTxSig reports whether tx carries a valid Ed25519 signature over its
// canonical preimage from a pubkey that hash-derives to tx.From, and that
// both From and To are well-formed addresses.
//
// Checking address well-formedness and the raw signature alone is not
// enough: without tying PubKey back to From, signature validity never
// authenticates which account actually signed the transaction.
func VerifyTxSig(tx *Transaction) bool {
	if !VerifyAddress(tx.From) || !VerifyAddress(tx.To) {
		return false
	}
	if AddressFromPubkey(tx.PubKey) != tx.From {
		return false
	}
	msg := TxPreimage(tx)
	return Verify(msg, tx.Signature, tx.PubKey)
}
