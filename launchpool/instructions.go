package launchpool

import (
	"bytes"
	"errors"
	"fmt"

	binary "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/krazyTry/launchpool-go/solana"
)

var ErrInvalidArgument = errors.New("invalid instruction argument")

// CreateNativePoolArgs are the arguments of create_native_pool, in wire order.
type CreateNativePoolArgs struct {
	UnlockDate         int64
	PoolSize           uint64
	MinimumTokenAmount uint64
	MaximumTokenAmount uint64
	Rate               uint64
	TokenMintDecimals  uint8
}

func (a CreateNativePoolArgs) validate() error {
	if a.PoolSize == 0 {
		return fmt.Errorf("%w: pool size is zero", ErrInvalidArgument)
	}
	if a.Rate == 0 {
		return fmt.Errorf("%w: rate is zero", ErrInvalidArgument)
	}
	if a.TokenMintDecimals > MaxTokenDecimals {
		return fmt.Errorf("%w: token decimals %d", ErrInvalidArgument, a.TokenMintDecimals)
	}
	return nil
}

type buyTokenWithNativeArgs struct {
	Amount uint64
}

func instructionData(name string, args any) ([]byte, error) {
	disc := solana.InstructionDiscriminator(name)
	buf := new(bytes.Buffer)
	buf.Write(disc[:])
	if args != nil {
		if err := binary.NewBorshEncoder(buf).Encode(args); err != nil {
			return nil, fmt.Errorf("encode %s args: %w", name, err)
		}
	}
	return buf.Bytes(), nil
}

// CreateNativePoolAccounts are the accounts of create_native_pool.
type CreateNativePoolAccounts struct {
	LaunchPool solanago.PublicKey
	TokenMint  solanago.PublicKey
	Treasurer  solanago.PublicKey
	Treasury   solanago.PublicKey
	Authority  solanago.PublicKey
}

func NewCreateNativePoolInstruction(programID solanago.PublicKey, args CreateNativePoolArgs, accounts CreateNativePoolAccounts) (solanago.Instruction, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}
	data, err := instructionData(instructionName.CreateNativePool, args)
	if err != nil {
		return nil, err
	}
	metas := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(accounts.LaunchPool, true, false),
		solanago.NewAccountMeta(accounts.TokenMint, false, false),
		solanago.NewAccountMeta(accounts.Treasurer, true, false),
		solanago.NewAccountMeta(accounts.Treasury, true, false),
		solanago.NewAccountMeta(accounts.Authority, true, true),
		solanago.NewAccountMeta(solanago.SystemProgramID, false, false),
		solanago.NewAccountMeta(solanago.TokenProgramID, false, false),
		solanago.NewAccountMeta(solanago.SPLAssociatedTokenAccountProgramID, false, false),
		solanago.NewAccountMeta(solanago.SysVarRentPubkey, false, false),
	}
	return solanago.NewInstruction(programID, metas, data), nil
}

// StartLaunchPoolAccounts are the accounts of start_launch_pool.
type StartLaunchPoolAccounts struct {
	LaunchPool         solanago.PublicKey
	TokenMint          solanago.PublicKey
	SourceTokenAccount solanago.PublicKey
	Treasurer          solanago.PublicKey
	Treasury           solanago.PublicKey
	Authority          solanago.PublicKey
}

func NewStartLaunchPoolInstruction(programID solanago.PublicKey, accounts StartLaunchPoolAccounts) (solanago.Instruction, error) {
	data, err := instructionData(instructionName.StartLaunchPool, nil)
	if err != nil {
		return nil, err
	}
	metas := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(accounts.LaunchPool, true, false),
		solanago.NewAccountMeta(accounts.TokenMint, false, false),
		solanago.NewAccountMeta(accounts.SourceTokenAccount, true, false),
		solanago.NewAccountMeta(accounts.Treasurer, true, false),
		solanago.NewAccountMeta(accounts.Treasury, true, false),
		solanago.NewAccountMeta(accounts.Authority, true, true),
		solanago.NewAccountMeta(solanago.TokenProgramID, false, false),
		solanago.NewAccountMeta(solanago.SystemProgramID, false, false),
		solanago.NewAccountMeta(solanago.SysVarRentPubkey, false, false),
	}
	return solanago.NewInstruction(programID, metas, data), nil
}

// BuyTokenWithNativeAccounts are the accounts of buy_token_with_native.
type BuyTokenWithNativeAccounts struct {
	LaunchPool solanago.PublicKey
	TokenMint  solanago.PublicKey
	UserPool   solanago.PublicKey
	Vault      solanago.PublicKey
	User       solanago.PublicKey
}

func NewBuyTokenWithNativeInstruction(programID solanago.PublicKey, amount uint64, accounts BuyTokenWithNativeAccounts) (solanago.Instruction, error) {
	if amount == 0 {
		return nil, fmt.Errorf("%w: amount is zero", ErrInvalidArgument)
	}
	data, err := instructionData(instructionName.BuyTokenWithNative, buyTokenWithNativeArgs{Amount: amount})
	if err != nil {
		return nil, err
	}
	metas := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(accounts.LaunchPool, true, false),
		solanago.NewAccountMeta(accounts.TokenMint, false, false),
		solanago.NewAccountMeta(accounts.UserPool, true, false),
		solanago.NewAccountMeta(accounts.Vault, true, false),
		solanago.NewAccountMeta(accounts.User, true, true),
		solanago.NewAccountMeta(solanago.SystemProgramID, false, false),
		solanago.NewAccountMeta(solanago.TokenProgramID, false, false),
		solanago.NewAccountMeta(solanago.SysVarRentPubkey, false, false),
	}
	return solanago.NewInstruction(programID, metas, data), nil
}

// CompleteLaunchPoolAccounts are the accounts of complete_launch_pool.
type CompleteLaunchPoolAccounts struct {
	LaunchPool solanago.PublicKey
	TokenMint  solanago.PublicKey
	Authority  solanago.PublicKey
}

func NewCompleteLaunchPoolInstruction(programID solanago.PublicKey, accounts CompleteLaunchPoolAccounts) (solanago.Instruction, error) {
	data, err := instructionData(instructionName.CompleteLaunchPool, nil)
	if err != nil {
		return nil, err
	}
	metas := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(accounts.LaunchPool, true, false),
		solanago.NewAccountMeta(accounts.TokenMint, false, false),
		solanago.NewAccountMeta(accounts.Authority, true, true),
	}
	return solanago.NewInstruction(programID, metas, data), nil
}

// ClaimTokenAccounts are the accounts of claim_token.
type ClaimTokenAccounts struct {
	LaunchPool       solanago.PublicKey
	TokenMint        solanago.PublicKey
	Treasurer        solanago.PublicKey
	Treasury         solanago.PublicKey
	UserPool         solanago.PublicKey
	UserTokenAccount solanago.PublicKey
	User             solanago.PublicKey
}

func NewClaimTokenInstruction(programID solanago.PublicKey, accounts ClaimTokenAccounts) (solanago.Instruction, error) {
	data, err := instructionData(instructionName.ClaimToken, nil)
	if err != nil {
		return nil, err
	}
	metas := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(accounts.LaunchPool, true, false),
		solanago.NewAccountMeta(accounts.TokenMint, false, false),
		solanago.NewAccountMeta(accounts.Treasurer, true, false),
		solanago.NewAccountMeta(accounts.Treasury, true, false),
		solanago.NewAccountMeta(accounts.UserPool, true, false),
		solanago.NewAccountMeta(accounts.UserTokenAccount, true, false),
		solanago.NewAccountMeta(accounts.User, true, true),
		solanago.NewAccountMeta(solanago.SystemProgramID, false, false),
		solanago.NewAccountMeta(solanago.TokenProgramID, false, false),
		solanago.NewAccountMeta(solanago.SPLAssociatedTokenAccountProgramID, false, false),
		solanago.NewAccountMeta(solanago.SysVarRentPubkey, false, false),
	}
	return solanago.NewInstruction(programID, metas, data), nil
}
