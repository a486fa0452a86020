package solana

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"reflect"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/tidwall/gjson"
)

// DiscriminatorLength is the size of the anchor account/instruction prefix.
const DiscriminatorLength = 8

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidOwner    = errors.New("account has an unexpected owner")
)

// IsTokenProgram reports whether owner is the token or token-2022 program.
func IsTokenProgram(owner solana.PublicKey) bool {
	return owner.Equals(solana.TokenProgramID) || owner.Equals(solana.Token2022ProgramID)
}

// Discriminator returns the 8-byte anchor sighash of "<namespace>:<name>".
// Accounts use namespace "account" with the struct name, instructions use
// "global" with the snake_case method name.
func Discriminator(namespace, name string) [DiscriminatorLength]byte {
	hash := sha256.Sum256([]byte(namespace + ":" + name))
	var out [DiscriminatorLength]byte
	copy(out[:], hash[:DiscriminatorLength])
	return out
}

// AccountDiscriminator is Discriminator("account", name).
func AccountDiscriminator(name string) [DiscriminatorLength]byte {
	return Discriminator("account", name)
}

// InstructionDiscriminator is Discriminator("global", name).
func InstructionDiscriminator(name string) [DiscriminatorLength]byte {
	return Discriminator("global", name)
}

// ComputeStructOffset gets the offset position of a field in an account struct,
// discriminator included.
func ComputeStructOffset(x any, field string) uint64 {
	t := reflect.TypeOf(x).Elem()
	fields := make([]reflect.StructField, 0)

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Name == field {
			break
		}
		fields = append(fields, f)
	}

	newType := reflect.StructOf(fields)
	newValue := reflect.New(newType).Elem()

	buf := new(bytes.Buffer)
	enc := binary.NewBorshEncoder(buf)
	_ = enc.Encode(newValue.Interface())

	return uint64(buf.Len()) + DiscriminatorLength
}

// GenProgramAccountFilter matches accounts by discriminator and, when filter is
// set, by a public key at filter.Offset.
func GenProgramAccountFilter(accountName string, filter *Filter) []rpc.RPCFilter {
	disc := AccountDiscriminator(accountName)
	filters := []rpc.RPCFilter{
		{
			Memcmp: &rpc.RPCFilterMemcmp{
				Offset: 0,
				Bytes:  disc[:],
			},
		},
	}
	if filter == nil || filter.Owner.Equals(solana.PublicKey{}) {
		return filters
	}
	return append(filters, rpc.RPCFilter{
		Memcmp: &rpc.RPCFilterMemcmp{
			Offset: filter.Offset,
			Bytes:  filter.Owner[:],
		},
	})
}

// GetAccountInfo fetches a single account. A missing account is ErrAccountNotFound.
func GetAccountInfo(ctx context.Context, rpcClient *rpc.Client, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.Account, error) {
	out, err := rpcClient.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{
		Commitment: commitment,
		Encoding:   solana.EncodingBase64,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, account)
		}
		return nil, err
	}
	if out == nil || out.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, account)
	}
	return out.Value, nil
}

func GetMultipleAccountInfo(ctx context.Context, rpcClient *rpc.Client, accounts []solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetMultipleAccountsResult, error) {
	return rpcClient.GetMultipleAccountsWithOpts(ctx, accounts, &rpc.GetMultipleAccountsOpts{Commitment: commitment, Encoding: solana.EncodingBase64})
}

// GetTokenAccount fetches and decodes an SPL token account.
func GetTokenAccount(ctx context.Context, rpcClient *rpc.Client, address solana.PublicKey, commitment rpc.CommitmentType) (*Account, error) {
	acc, err := GetAccountInfo(ctx, rpcClient, address, commitment)
	if err != nil {
		return nil, err
	}
	if !IsTokenProgram(acc.Owner) {
		return nil, fmt.Errorf("%w: %s is not a token account (owner %s)", ErrInvalidOwner, address, acc.Owner)
	}
	out, err := new(AccountLayout).Decode(acc.Data.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("decode token account %s: %w", address, err)
	}
	out.Address = address
	return out, nil
}

// GetMintBalance sums the raw amount of mint held by owner across its token accounts.
func GetMintBalance(ctx context.Context, rpcClient *rpc.Client, owner, mint solana.PublicKey, commitment rpc.CommitmentType) (uint64, error) {
	resp, err := rpcClient.GetTokenAccountsByOwner(ctx, owner, &rpc.GetTokenAccountsConfig{
		Mint: &mint,
	}, &rpc.GetTokenAccountsOpts{
		Encoding:   solana.EncodingJSONParsed,
		Commitment: commitment,
	})
	if err != nil {
		return 0, err
	}

	var total uint64
	for _, v := range resp.Value {
		raw := v.Account.Data.GetRawJSON()
		if gjson.GetBytes(raw, "parsed.info.mint").String() != mint.String() {
			continue
		}
		total += gjson.GetBytes(raw, "parsed.info.tokenAmount.amount").Uint()
	}
	return total, nil
}
