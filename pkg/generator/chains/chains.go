// Package chains maps the closed set of supported chains to their backends.
package chains

import (
	"github.com/Amr-9/crat/pkg/generator"
	"github.com/Amr-9/crat/pkg/generator/bitcoin"
	"github.com/Amr-9/crat/pkg/generator/bsv"
	"github.com/Amr-9/crat/pkg/generator/ethereum"
	"github.com/Amr-9/crat/pkg/generator/solana"
)

// New is a generator.Factory returning a fresh backend for chain.
func New(chain generator.Chain) (generator.AddressGenerator, error) {
	switch chain {
	case generator.Solana:
		return solana.New(), nil
	case generator.Bitcoin:
		return bitcoin.New(), nil
	case generator.BitcoinSV:
		return bsv.New(), nil
	case generator.Ethereum:
		return ethereum.New(), nil
	}
	return nil, &generator.ValidationError{Field: "chain", Value: chain.String(), Err: generator.ErrUnknownChain}
}

var _ generator.Factory = New

// DeriveAddress returns the address an exported secret belongs to.
func DeriveAddress(chain generator.Chain, secret string) (string, error) {
	switch chain {
	case generator.Solana:
		return solana.DeriveAddress(secret)
	case generator.Bitcoin:
		return bitcoin.DeriveAddress(secret)
	case generator.BitcoinSV:
		return bsv.AddressFromWIF(secret)
	case generator.Ethereum:
		return ethereum.DeriveAddress(secret)
	}
	return "", &generator.ValidationError{Field: "chain", Value: chain.String(), Err: generator.ErrUnknownChain}
}
