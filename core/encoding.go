package core

// Canonical and wire encoding.
//
// Canonical preimages are hand-built byte sequences with a fixed field
// order and no optional whitespace, so that any two independent
// implementations hash and sign the exact same bytes — a generic JSON
// object is not guaranteed to preserve or agree on key order. Fields are
// emitted in ascending alphabetical order by name, integers in base 10,
// strings as UTF-8 bytes with only the minimal JSON escapes applied.
//
// Wire (persistent) serialisation of whole blocks and transactions uses
// encoding/json directly: Go's json package already base64-encodes []byte
// fields (Signature, PubKey), so no separate base64 layer is needed here.

import (
	"bytes"
	"encoding/json"
	"strconv"
)

func appendJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				buf.WriteString(`\u`)
				hexDigits := "0123456789abcdef"
				buf.WriteByte(hexDigits[(r>>12)&0xF])
				buf.WriteByte(hexDigits[(r>>8)&0xF])
				buf.WriteByte(hexDigits[(r>>4)&0xF])
				buf.WriteByte(hexDigits[r&0xF])
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}

// TxPreimage returns the canonical byte sequence signed and hashed for a
// transaction: {amount, from, meta:{name,symbol,uri}, nonce, to, tokenId, type}.
// Signature, PubKey and ID are deliberately excluded.
func TxPreimage(tx *Transaction) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.WriteString(`"amount":`)
	buf.WriteString(strconv.FormatInt(tx.Amount, 10))
	buf.WriteString(`,"from":`)
	appendJSONString(&buf, tx.From)
	buf.WriteString(`,"meta":{"name":`)
	appendJSONString(&buf, tx.Meta.Name)
	buf.WriteString(`,"symbol":`)
	appendJSONString(&buf, tx.Meta.Symbol)
	buf.WriteString(`,"uri":`)
	appendJSONString(&buf, tx.Meta.URI)
	buf.WriteString(`},"nonce":`)
	buf.WriteString(strconv.FormatUint(tx.Nonce, 10))
	buf.WriteString(`,"to":`)
	appendJSONString(&buf, tx.To)
	buf.WriteString(`,"tokenId":`)
	buf.WriteString(strconv.FormatUint(tx.TokenID, 10))
	buf.WriteString(`,"type":`)
	buf.WriteString(strconv.Itoa(int(tx.Type)))
	buf.WriteByte('}')
	return buf.Bytes()
}

// HeaderPreimage returns the canonical byte sequence hashed to produce a
// block hash: {difficulty_bits, height, merkle_root, nonce, prev_hash, timestamp}.
func HeaderPreimage(h *BlockHeader) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.WriteString(`"difficulty_bits":`)
	buf.WriteString(strconv.FormatUint(uint64(h.DifficultyBits), 10))
	buf.WriteString(`,"height":`)
	buf.WriteString(strconv.FormatUint(h.Height, 10))
	buf.WriteString(`,"merkle_root":`)
	appendJSONString(&buf, h.MerkleRoot)
	buf.WriteString(`,"nonce":`)
	buf.WriteString(strconv.FormatUint(h.Nonce, 10))
	buf.WriteString(`,"prev_hash":`)
	appendJSONString(&buf, h.PrevHash)
	buf.WriteString(`,"timestamp":`)
	buf.WriteString(strconv.FormatInt(h.Timestamp, 10))
	buf.WriteByte('}')
	return buf.Bytes()
}

// MarshalBlock produces the persistent/wire JSON form of a block.
func MarshalBlock(b *Block) ([]byte, error) {
	return json.Marshal(b)
}

// UnmarshalBlock parses the persistent/wire JSON form of a block.
func UnmarshalBlock(data []byte) (*Block, error) {
	var b Block
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// MarshalTx produces the persistent/wire JSON form of a transaction.
func MarshalTx(tx *Transaction) ([]byte, error) {
	return json.Marshal(tx)
}

// UnmarshalTx parses the persistent/wire JSON form of a transaction.
func UnmarshalTx(data []byte) (*Transaction, error) {
	var tx Transaction
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}
