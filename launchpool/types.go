package launchpool

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	binary "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpool-go/solana"
)

var (
	ErrAccountDataTooShort  = errors.New("account data too short")
	ErrInvalidDiscriminator = errors.New("account discriminator mismatch")
)

type CurrencyType uint8

const (
	CurrencyTypeSOL CurrencyType = iota
	CurrencyTypeUSDC
)

func (c CurrencyType) String() string {
	switch c {
	case CurrencyTypeSOL:
		return "SOL"
	case CurrencyTypeUSDC:
		return "USDC"
	default:
		return fmt.Sprintf("CurrencyType(%d)", uint8(c))
	}
}

type LaunchPoolType uint8

const (
	LaunchPoolTypeFairLaunch LaunchPoolType = iota
	LaunchPoolTypeWhiteList
)

func (t LaunchPoolType) String() string {
	switch t {
	case LaunchPoolTypeFairLaunch:
		return "FairLaunch"
	case LaunchPoolTypeWhiteList:
		return "WhiteList"
	default:
		return fmt.Sprintf("LaunchPoolType(%d)", uint8(t))
	}
}

type LaunchPoolState uint8

const (
	LaunchPoolStatePending LaunchPoolState = iota
	LaunchPoolStateActive
	LaunchPoolStateCompleted
	LaunchPoolStateCancelled
)

func (s LaunchPoolState) String() string {
	switch s {
	case LaunchPoolStatePending:
		return "Pending"
	case LaunchPoolStateActive:
		return "Active"
	case LaunchPoolStateCompleted:
		return "Completed"
	case LaunchPoolStateCancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("LaunchPoolState(%d)", uint8(s))
	}
}

// LaunchPool is the on-chain pool account, without its discriminator.
type LaunchPool struct {
	UnlockDate         int64
	PoolSize           uint64
	MinimumTokenAmount uint64
	MaximumTokenAmount uint64
	Rate               uint64
	PoolSizeRemaining  uint64
	TokenMint          solanago.PublicKey
	TokenMintDecimals  uint8
	Authority          solanago.PublicKey
	VaultAmount        uint64
	IsVesting          bool
	Currency           CurrencyType
	PoolType           LaunchPoolType
	Status             LaunchPoolState
}

// UnlockTime is UnlockDate as a time.
func (p *LaunchPool) UnlockTime() time.Time {
	return time.Unix(p.UnlockDate, 0).UTC()
}

// Treasurer is the pool's token custodian record.
type Treasurer struct {
	Authority  solanago.PublicKey
	LaunchPool solanago.PublicKey
	TokenMint  solanago.PublicKey
	Amount     uint64
}

// UserPool records one buyer's participation in one pool.
type UserPool struct {
	Amount         uint64
	CurrencyAmount uint64
	Claimed        uint64
}

// Unclaimed is the bought amount not yet claimed.
func (u *UserPool) Unclaimed() uint64 {
	if u.Claimed >= u.Amount {
		return 0
	}
	return u.Amount - u.Claimed
}

// ProgramAccount pairs a decoded account with its address.
type ProgramAccount[T any] struct {
	Pubkey  solanago.PublicKey
	Account *T
}

func decodeAccount(name string, data []byte, v any) error {
	if len(data) < solana.DiscriminatorLength {
		return fmt.Errorf("%w: %s has %d bytes", ErrAccountDataTooShort, name, len(data))
	}
	want := solana.AccountDiscriminator(name)
	if !bytes.Equal(data[:solana.DiscriminatorLength], want[:]) {
		return fmt.Errorf("%w: not a %s account", ErrInvalidDiscriminator, name)
	}
	if err := binary.NewBorshDecoder(data[solana.DiscriminatorLength:]).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func encodeAccount(name string, v any) ([]byte, error) {
	disc := solana.AccountDiscriminator(name)
	buf := bytes.NewBuffer(disc[:])
	if err := binary.NewBorshEncoder(buf).Encode(v); err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func DecodeLaunchPool(data []byte) (*LaunchPool, error) {
	out := new(LaunchPool)
	if err := decodeAccount(AccountKeyLaunchPool, data, out); err != nil {
		return nil, err
	}
	return out, nil
}

func DecodeTreasurer(data []byte) (*Treasurer, error) {
	out := new(Treasurer)
	if err := decodeAccount(AccountKeyTreasurer, data, out); err != nil {
		return nil, err
	}
	return out, nil
}

func DecodeUserPool(data []byte) (*UserPool, error) {
	out := new(UserPool)
	if err := decodeAccount(AccountKeyUserPool, data, out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarshalLaunchPool encodes p the way the program stores it, discriminator included.
func MarshalLaunchPool(p *LaunchPool) ([]byte, error) {
	return encodeAccount(AccountKeyLaunchPool, p)
}

func MarshalTreasurer(t *Treasurer) ([]byte, error) {
	return encodeAccount(AccountKeyTreasurer, t)
}

func MarshalUserPool(u *UserPool) ([]byte, error) {
	return encodeAccount(AccountKeyUserPool, u)
}
