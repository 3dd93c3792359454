// Package solana generates Solana keypairs (Ed25519 + Base58).
package solana

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/mr-tron/base58"

	"github.com/Amr-9/crat/pkg/generator"
)

// ErrInvalidSecret is returned when a secret is not a Base58 encoded 64-byte keypair.
var ErrInvalidSecret = errors.New("solana: invalid secret key")

// Generator produces Solana candidates.
type Generator struct {
	rand io.Reader
}

// New returns a generator reading from crypto/rand.
func New() *Generator {
	return &Generator{rand: rand.Reader}
}

// Generate returns a fresh keypair. The address is the Base58 encoded public
// key; the secret is the Base58 encoded 64-byte keypair (seed + pubkey), the
// format wallets import.
func (g *Generator) Generate() (generator.Candidate, error) {
	pubKey, privKey, err := ed25519.GenerateKey(g.rand)
	if err != nil {
		return generator.Candidate{}, fmt.Errorf("solana: generate key: %w", err)
	}
	return generator.Candidate{
		Address: base58.Encode(pubKey),
		Secret:  base58.Encode(privKey),
	}, nil
}

// DeriveAddress recovers the address belonging to an exported secret.
func DeriveAddress(secret string) (string, error) {
	raw, err := base58.Decode(secret)
	if err != nil || len(raw) != ed25519.PrivateKeySize {
		return "", ErrInvalidSecret
	}
	pub := ed25519.PrivateKey(raw).Public().(ed25519.PublicKey)
	return base58.Encode(pub), nil
}
