package main

// Key file layout: keys/<name>.{priv,pub,address}, each a single text
// record — hex for priv/pub, the Base58Check address string for address —
// rather than one bundled JSON record per key.

import (
	"crypto/ed25519"
	"fmt"
	"os"
	"path/filepath"

	axle "github.com/HyrumHendrickson/Axel/core"
)

func keysDir(datadir string) string {
	return filepath.Join(datadir, "keys")
}

func keyPaths(datadir, name string) (priv, pub, address string) {
	base := filepath.Join(keysDir(datadir), name)
	return base + ".priv", base + ".pub", base + ".address"
}

// saveKey persists kp under name and returns the derived address.
func saveKey(datadir, name string, kp axle.KeyPair) (string, error) {
	if err := os.MkdirAll(keysDir(datadir), 0o755); err != nil {
		return "", fmt.Errorf("keys: mkdir: %w", err)
	}
	address := axle.AddressFromPubkey(kp.Pub)
	privPath, pubPath, addrPath := keyPaths(datadir, name)

	if err := os.WriteFile(privPath, []byte(axle.Hex(kp.Priv)), 0o600); err != nil {
		return "", fmt.Errorf("keys: write priv: %w", err)
	}
	if err := os.WriteFile(pubPath, []byte(axle.Hex(kp.Pub)), 0o644); err != nil {
		return "", fmt.Errorf("keys: write pub: %w", err)
	}
	if err := os.WriteFile(addrPath, []byte(address), 0o644); err != nil {
		return "", fmt.Errorf("keys: write address: %w", err)
	}
	return address, nil
}

// loadKey reads the named key's private key, public key and address.
func loadKey(datadir, name string) (ed25519.PrivateKey, ed25519.PublicKey, string, error) {
	privPath, pubPath, addrPath := keyPaths(datadir, name)

	privHex, err := os.ReadFile(privPath)
	if err != nil {
		return nil, nil, "", fmt.Errorf("keys: no key named %q in %s: %w", name, datadir, err)
	}
	privBytes, err := axle.Unhex(string(privHex))
	if err != nil {
		return nil, nil, "", fmt.Errorf("keys: decode priv: %w", err)
	}
	pubHex, err := os.ReadFile(pubPath)
	if err != nil {
		return nil, nil, "", fmt.Errorf("keys: read pub: %w", err)
	}
	pubBytes, err := axle.Unhex(string(pubHex))
	if err != nil {
		return nil, nil, "", fmt.Errorf("keys: decode pub: %w", err)
	}
	addrBytes, err := os.ReadFile(addrPath)
	if err != nil {
		return nil, nil, "", fmt.Errorf("keys: read address: %w", err)
	}
	return ed25519.PrivateKey(privBytes), ed25519.PublicKey(pubBytes), string(addrBytes), nil
}

// resolveDatadir returns the --datadir flag value, falling back to
// $AXLE_DATADIR when the flag is empty.
func resolveDatadir(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv("AXLE_DATADIR"); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("--datadir is required (or set $AXLE_DATADIR)")
}
