package core

import (
	"bytes"
	"testing"
)

func TestBase58RoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0},
		{0, 0, 1, 2, 3},
		[]byte("hello world"),
		{0xFF, 0xEE, 0xDD, 0xCC, 0x00, 0x00},
	}
	for _, data := range cases {
		enc := Base58Encode(data)
		dec, err := Base58Decode(enc)
		if err != nil {
			t.Fatalf("decode(%x): %v", data, err)
		}
		if !bytes.Equal(dec, data) {
			t.Fatalf("roundtrip mismatch: got %x want %x", dec, data)
		}
	}
}

func TestBase58CheckRoundTrip(t *testing.T) {
	payloads := [][]byte{
		make([]byte, 20),
		bytes.Repeat([]byte{0xAB}, 20),
		{1, 2, 3},
	}
	for _, payload := range payloads {
		enc := Base58CheckEncode(AddressVersion, payload)
		version, decoded, err := Base58CheckDecode(enc)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if version != AddressVersion {
			t.Fatalf("version mismatch: got %d want %d", version, AddressVersion)
		}
		if !bytes.Equal(decoded, payload) {
			t.Fatalf("payload mismatch: got %x want %x", decoded, payload)
		}
	}
}

func TestBase58CheckDecodeBadChecksum(t *testing.T) {
	enc := Base58CheckEncode(AddressVersion, make([]byte, 20))
	// Flip the last character, corrupting the checksum.
	runes := []rune(enc)
	if runes[len(runes)-1] == '1' {
		runes[len(runes)-1] = '2'
	} else {
		runes[len(runes)-1] = '1'
	}
	corrupted := string(runes)
	if _, _, err := Base58CheckDecode(corrupted); err == nil {
		t.Fatalf("expected checksum failure for corrupted address %q", corrupted)
	}
}

func TestAddressFromPubkeyRoundTrip(t *testing.T) {
	kp, err := Keygen()
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	addr := AddressFromPubkey(kp.Pub)
	if !VerifyAddress(addr) {
		t.Fatalf("derived address %q failed VerifyAddress", addr)
	}
}

func TestVerifyAddressRejectsGarbage(t *testing.T) {
	cases := []string{"", "not-base58!", "1"}
	for _, c := range cases {
		if VerifyAddress(c) {
			t.Fatalf("VerifyAddress(%q) = true, want false", c)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	data := []byte{0x00, 0x01, 0xAB, 0xFF}
	s := Hex(data)
	back, err := Unhex(s)
	if err != nil {
		t.Fatalf("unhex: %v", err)
	}
	if !bytes.Equal(back, data) {
		t.Fatalf("roundtrip mismatch: got %x want %x", back, data)
	}
	if _, err := Unhex("zz"); err == nil {
		t.Fatalf("expected error decoding non-hex input")
	}
}

func TestDoubleSha256(t *testing.T) {
	data := []byte("axle")
	once := Sha256(data)
	twice := Sha256(once[:])
	got := DoubleSha256(data)
	if got != twice {
		t.Fatalf("DoubleSha256 mismatch: got %x want %x", got, twice)
	}
}
