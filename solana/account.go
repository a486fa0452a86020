package solana

import (
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// TokenAccountSize is the data length of an SPL token account.
const TokenAccountSize = 165

type AccountState uint8

const (
	AccountStateUninitialized AccountState = 0
	AccountStateInitialized   AccountState = 1
	AccountStateFrozen        AccountState = 2
)

// Account is a decoded SPL token account.
type Account struct {
	Address solana.PublicKey
	Mint    solana.PublicKey
	Owner   solana.PublicKey
	Amount  uint64

	// Authority that can transfer tokens from the account
	Delegate        *solana.PublicKey
	DelegatedAmount uint64

	IsInitialized bool
	IsFrozen      bool
	IsNative      bool

	// Rent-exempt reserve of a native (wrapped SOL) account
	RentExemptReserve *uint64

	CloseAuthority *solana.PublicKey
}

// tokenAccountLayout https://github.com/solana-labs/solana-program-library/blob/d72289c79a04411c69a8bf1054f7156b6196f9b3/token/js/src/state/account.ts#L69
type tokenAccountLayout struct {
	Mint                 solana.PublicKey
	Owner                solana.PublicKey
	Amount               uint64
	DelegateOption       uint32
	Delegate             solana.PublicKey
	State                uint8
	IsNativeOption       uint32
	IsNative             uint64
	DelegatedAmount      uint64
	CloseAuthorityOption uint32
	CloseAuthority       solana.PublicKey
}

type AccountLayout struct {
}

func (l *AccountLayout) Decode(data []byte) (*Account, error) {
	if len(data) < TokenAccountSize {
		return nil, fmt.Errorf("token account data too short: %d", len(data))
	}
	raw := &tokenAccountLayout{}
	if err := binary.NewBinDecoder(data[:TokenAccountSize]).Decode(raw); err != nil {
		return nil, err
	}

	out := &Account{
		Mint:            raw.Mint,
		Owner:           raw.Owner,
		Amount:          raw.Amount,
		DelegatedAmount: raw.DelegatedAmount,
		IsInitialized:   AccountState(raw.State) != AccountStateUninitialized,
		IsFrozen:        AccountState(raw.State) == AccountStateFrozen,
		IsNative:        raw.IsNativeOption > 0,
	}
	if raw.DelegateOption > 0 {
		out.Delegate = &raw.Delegate
	}
	if raw.IsNativeOption > 0 {
		out.RentExemptReserve = &raw.IsNative
	}
	if raw.CloseAuthorityOption > 0 {
		out.CloseAuthority = &raw.CloseAuthority
	}
	return out, nil
}
