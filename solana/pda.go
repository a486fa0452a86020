package solana

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

const (
	// MaxSeedLength is the maximum length of a single seed, in bytes.
	MaxSeedLength = solana.MaxSeedLength
	// MaxSeeds is the maximum number of seeds, bump included.
	MaxSeeds = solana.MaxSeeds
)

var (
	ErrSeedTooLong    = solana.ErrMaxSeedLengthExceeded
	ErrTooManySeeds   = errors.New("too many seeds")
	ErrInvalidSeeds   = errors.New("derived address is on the ed25519 curve")
	ErrNoValidAddress = errors.New("unable to find a viable program address bump")
)

// replaced in tests
var (
	createProgramAddress = solana.CreateProgramAddress
	isOnCurve            = solana.IsOnCurve
)

// Address is a program derived address together with the bump that produced it.
type Address struct {
	PublicKey solana.PublicKey
	Bump      uint8
}

func (a Address) String() string {
	return fmt.Sprintf("%s (bump %d)", a.PublicKey, a.Bump)
}

// IsOnCurve reports whether b decodes to an edwards25519 point, i.e. whether it
// could be an ed25519 public key with a private key behind it.
func IsOnCurve(b []byte) bool {
	if len(b) != solana.PublicKeyLength {
		return false
	}
	return solana.IsOnCurve(b)
}

func checkSeeds(seeds [][]byte, max int) error {
	if len(seeds) > max {
		return fmt.Errorf("%w: %d > %d", ErrTooManySeeds, len(seeds), max)
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return fmt.Errorf("%w: seed %d is %d bytes", ErrSeedTooLong, i, len(s))
		}
	}
	return nil
}

// CreateProgramAddress hashes seeds under programID. It fails with
// ErrInvalidSeeds when the result lies on the curve.
func CreateProgramAddress(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, error) {
	if err := checkSeeds(seeds, MaxSeeds); err != nil {
		return solana.PublicKey{}, err
	}
	addr, err := solana.CreateProgramAddress(seeds, programID)
	if err != nil {
		// seed limits are already checked, only the curve test can fail
		return solana.PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidSeeds, err)
	}
	return addr, nil
}

// FindProgramAddress searches bumps from 255 down to 0 and returns the first
// off-curve address.
func FindProgramAddress(seeds [][]byte, programID solana.PublicKey) (Address, error) {
	// one slot is reserved for the bump
	if err := checkSeeds(seeds, MaxSeeds-1); err != nil {
		return Address{}, err
	}

	bumpSeed := []byte{0}
	withBump := make([][]byte, 0, len(seeds)+1)
	withBump = append(withBump, seeds...)
	withBump = append(withBump, bumpSeed)

	for bump := 255; bump >= 0; bump-- {
		bumpSeed[0] = byte(bump)
		addr, err := createProgramAddress(withBump, programID)
		if err != nil || isOnCurve(addr[:]) {
			continue
		}
		return Address{PublicKey: addr, Bump: uint8(bump)}, nil
	}
	return Address{}, ErrNoValidAddress
}

// FindAssociatedTokenAddress derives the associated token account of owner for
// mint, held under tokenProgram.
func FindAssociatedTokenAddress(owner, mint, tokenProgram solana.PublicKey) (Address, error) {
	return FindProgramAddress([][]byte{
		owner[:],
		tokenProgram[:],
		mint[:],
	}, solana.SPLAssociatedTokenAccountProgramID)
}
