package core

// Crypto primitives: SHA-256 / double-SHA-256, Ed25519 signing, hex,
// Base58 and Base58Check, and address derivation.

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// Sha256 returns the SHA-256 digest of data.
func Sha256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// DoubleSha256 returns SHA-256(SHA-256(data)).
func DoubleSha256(data []byte) [32]byte {
	first := sha256.Sum256(data)
	return sha256.Sum256(first[:])
}

// Hex lowercase-encodes v with no prefix.
func Hex(v []byte) string {
	return hex.EncodeToString(v)
}

// Unhex decodes a lowercase (or uppercase) hex string, failing on
// non-hex nibbles or odd length.
func Unhex(s string) ([]byte, error) {
	return hex.DecodeString(s)
}

// KeyPair is an Ed25519 key, with Priv encoded so its last 32 bytes equal Pub
// (the standard library's ed25519.PrivateKey already has this layout).
type KeyPair struct {
	Pub  ed25519.PublicKey
	Priv ed25519.PrivateKey
}

// Keygen generates a fresh Ed25519 key pair.
func Keygen() (KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return KeyPair{}, fmt.Errorf("crypto: keygen: %w", err)
	}
	return KeyPair{Pub: pub, Priv: priv}, nil
}

// Sign produces a detached Ed25519 signature over msg.
func Sign(msg []byte, priv ed25519.PrivateKey) []byte {
	return ed25519.Sign(priv, msg)
}

// Verify checks a detached Ed25519 signature.
func Verify(msg, sig, pub []byte) bool {
	if len(pub) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig)
}

// PubFromPriv recovers the public key from an Ed25519 private key's
// trailing 32 bytes, so a signer can derive its own pubkey without
// storing it separately.
func PubFromPriv(priv ed25519.PrivateKey) []byte {
	if len(priv) != ed25519.PrivateKeySize {
		return nil
	}
	return []byte(priv[ed25519.PrivateKeySize-ed25519.PublicKeySize:])
}

// Base58Encode encodes using the Bitcoin alphabet, with each leading
// zero byte of data mapped to a leading '1' (mr-tron/base58 already
// implements this rule).
func Base58Encode(data []byte) string {
	return base58.Encode(data)
}

// Base58Decode reverses Base58Encode, failing on any non-alphabet rune.
// The empty string decodes to an empty byte slice.
func Base58Decode(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	out, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("crypto: base58 decode: %w", err)
	}
	return out, nil
}

// Base58CheckEncode encodes base58(version || payload || doubleSha256(version||payload)[0:4]).
func Base58CheckEncode(version byte, payload []byte) string {
	buf := make([]byte, 0, 1+len(payload)+4)
	buf = append(buf, version)
	buf = append(buf, payload...)
	checksum := DoubleSha256(buf)
	buf = append(buf, checksum[:4]...)
	return Base58Encode(buf)
}

// ErrBadChecksum is returned by Base58CheckDecode when the trailing four
// bytes do not match the double-SHA-256 checksum of the prefix.
var ErrBadChecksum = errors.New("crypto: base58check: bad checksum")

// Base58CheckDecode reverses Base58CheckEncode, validating the checksum.
func Base58CheckDecode(s string) (version byte, payload []byte, err error) {
	data, err := Base58Decode(s)
	if err != nil {
		return 0, nil, err
	}
	if len(data) < 5 {
		return 0, nil, fmt.Errorf("crypto: base58check: decoded length %d < 5", len(data))
	}
	prefix := data[:len(data)-4]
	want := data[len(data)-4:]
	got := DoubleSha256(prefix)
	if !bytesEqual(got[:4], want) {
		return 0, nil, ErrBadChecksum
	}
	return prefix[0], prefix[1:], nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// AddressFromPubkey derives the Base58Check account address for an
// Ed25519 public key: Base58Check(AddressVersion, SHA256(pub)[0:20]).
func AddressFromPubkey(pub []byte) string {
	h := Sha256(pub)
	return Base58CheckEncode(AddressVersion, h[:20])
}

// VerifyAddress reports whether addr decodes to AddressVersion with a
// 20-byte payload.
func VerifyAddress(addr string) bool {
	version, payload, err := Base58CheckDecode(addr)
	if err != nil {
		return false
	}
	return version == AddressVersion && len(payload) == 20
}
