package launchpool

import (
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// InstructionService builds the program's instructions from identities alone,
// deriving every program and token account slot. It neither signs nor sends.
type InstructionService struct {
	*LaunchPoolProgram
}

func NewInstructionService(program *LaunchPoolProgram) *InstructionService {
	return &InstructionService{LaunchPoolProgram: program}
}

// CreatePoolParams describes a new native-currency fair launch pool.
type CreatePoolParams struct {
	UnlockDate         time.Time
	PoolSize           uint64
	MinimumTokenAmount uint64
	MaximumTokenAmount uint64
	Rate               uint64
	TokenMintDecimals  uint8
}

func (s *InstructionService) CreateNativePool(creator, mint solanago.PublicKey, params CreatePoolParams) (solanago.Instruction, error) {
	accounts, err := s.Deriver.PoolAccounts(creator, mint)
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("building create_native_pool",
		zap.Stringer("creator", creator),
		zap.Stringer("mint", mint),
		zap.Stringer("pool", accounts.LaunchPool.PublicKey))

	return NewCreateNativePoolInstruction(s.ProgramID, CreateNativePoolArgs{
		UnlockDate:         params.UnlockDate.Unix(),
		PoolSize:           params.PoolSize,
		MinimumTokenAmount: params.MinimumTokenAmount,
		MaximumTokenAmount: params.MaximumTokenAmount,
		Rate:               params.Rate,
		TokenMintDecimals:  params.TokenMintDecimals,
	}, CreateNativePoolAccounts{
		LaunchPool: accounts.LaunchPool.PublicKey,
		TokenMint:  mint,
		Treasurer:  accounts.Treasurer.PublicKey,
		Treasury:   accounts.Treasury,
		Authority:  creator,
	})
}

// StartLaunchPool moves the pool's tokens from the creator's associated token
// account into the treasury.
func (s *InstructionService) StartLaunchPool(creator, mint solanago.PublicKey) (solanago.Instruction, error) {
	accounts, err := s.Deriver.PoolAccounts(creator, mint)
	if err != nil {
		return nil, err
	}
	source, err := s.Deriver.AssociatedTokenAccount(creator, mint)
	if err != nil {
		return nil, err
	}
	return NewStartLaunchPoolInstruction(s.ProgramID, StartLaunchPoolAccounts{
		LaunchPool:         accounts.LaunchPool.PublicKey,
		TokenMint:          mint,
		SourceTokenAccount: source.PublicKey,
		Treasurer:          accounts.Treasurer.PublicKey,
		Treasury:           accounts.Treasury,
		Authority:          creator,
	})
}

func (s *InstructionService) BuyTokenWithNative(creator, mint, buyer solanago.PublicKey, amount uint64) (solanago.Instruction, error) {
	pool, err := s.Deriver.LaunchPool(creator, mint)
	if err != nil {
		return nil, err
	}
	userPool, err := s.Deriver.UserPool(buyer, pool.PublicKey, mint)
	if err != nil {
		return nil, err
	}
	vault, err := s.Deriver.Vault(pool.PublicKey, creator)
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("building buy_token_with_native",
		zap.Stringer("buyer", buyer),
		zap.Stringer("pool", pool.PublicKey),
		zap.Uint64("amount", amount))

	return NewBuyTokenWithNativeInstruction(s.ProgramID, amount, BuyTokenWithNativeAccounts{
		LaunchPool: pool.PublicKey,
		TokenMint:  mint,
		UserPool:   userPool.PublicKey,
		Vault:      vault.PublicKey,
		User:       buyer,
	})
}

func (s *InstructionService) CompleteLaunchPool(creator, mint solanago.PublicKey) (solanago.Instruction, error) {
	pool, err := s.Deriver.LaunchPool(creator, mint)
	if err != nil {
		return nil, err
	}
	return NewCompleteLaunchPoolInstruction(s.ProgramID, CompleteLaunchPoolAccounts{
		LaunchPool: pool.PublicKey,
		TokenMint:  mint,
		Authority:  creator,
	})
}

func (s *InstructionService) ClaimToken(creator, mint, buyer solanago.PublicKey) (solanago.Instruction, error) {
	accounts, err := s.Deriver.PoolAccounts(creator, mint)
	if err != nil {
		return nil, err
	}
	userPool, err := s.Deriver.UserPool(buyer, accounts.LaunchPool.PublicKey, mint)
	if err != nil {
		return nil, err
	}
	userTokenAccount, err := s.Deriver.AssociatedTokenAccount(buyer, mint)
	if err != nil {
		return nil, err
	}
	return NewClaimTokenInstruction(s.ProgramID, ClaimTokenAccounts{
		LaunchPool:       accounts.LaunchPool.PublicKey,
		TokenMint:        mint,
		Treasurer:        accounts.Treasurer.PublicKey,
		Treasury:         accounts.Treasury,
		UserPool:         userPool.PublicKey,
		UserTokenAccount: userTokenAccount.PublicKey,
		User:             buyer,
	})
}
