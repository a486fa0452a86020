package solana

import (
	"context"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// MintSize is the data length of an SPL token mint.
const MintSize = 82

// Mint is a decoded SPL token mint.
type Mint struct {
	Address         solana.PublicKey
	MintAuthority   *solana.PublicKey
	Supply          uint64
	Decimals        uint8
	IsInitialized   bool
	FreezeAuthority *solana.PublicKey
}

// mintLayout https://github.com/solana-labs/solana-program-library/blob/master/token/js/src/state/mint.ts
type mintLayout struct {
	MintAuthorityOption   uint32
	MintAuthority         solana.PublicKey
	Supply                uint64
	Decimals              uint8
	IsInitialized         bool
	FreezeAuthorityOption uint32
	FreezeAuthority       solana.PublicKey
}

type MintLayout struct {
}

func (l *MintLayout) Decode(data []byte) (*Mint, error) {
	if len(data) < MintSize {
		return nil, fmt.Errorf("mint data too short: %d", len(data))
	}
	raw := &mintLayout{}
	if err := binary.NewBinDecoder(data[:MintSize]).Decode(raw); err != nil {
		return nil, err
	}
	out := &Mint{
		Supply:        raw.Supply,
		Decimals:      raw.Decimals,
		IsInitialized: raw.IsInitialized,
	}
	if raw.MintAuthorityOption > 0 {
		out.MintAuthority = &raw.MintAuthority
	}
	if raw.FreezeAuthorityOption > 0 {
		out.FreezeAuthority = &raw.FreezeAuthority
	}
	return out, nil
}

// GetMint fetches and decodes an SPL token mint.
func GetMint(ctx context.Context, rpcClient *rpc.Client, address solana.PublicKey, commitment rpc.CommitmentType) (*Mint, error) {
	acc, err := GetAccountInfo(ctx, rpcClient, address, commitment)
	if err != nil {
		return nil, err
	}
	if !IsTokenProgram(acc.Owner) {
		return nil, fmt.Errorf("%w: %s is not a token mint (owner %s)", ErrInvalidOwner, address, acc.Owner)
	}
	out, err := new(MintLayout).Decode(acc.Data.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("decode mint %s: %w", address, err)
	}
	out.Address = address
	return out, nil
}
