package launchpool

import (
	"context"
	"errors"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/krazyTry/launchpool-go/solana"
	"go.uber.org/zap"
)

var ErrMintMismatch = errors.New("token account holds a different mint")

// StateService reads and decodes the program's accounts. It never writes.
type StateService struct {
	*LaunchPoolProgram
}

func NewStateService(program *LaunchPoolProgram) *StateService {
	return &StateService{LaunchPoolProgram: program}
}

func (s *StateService) fetch(ctx context.Context, address solanago.PublicKey) ([]byte, error) {
	acc, err := solana.GetAccountInfo(ctx, s.RPC, address, s.Commitment)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(address, acc.Owner); err != nil {
		return nil, err
	}
	return acc.Data.GetBinary(), nil
}

func (s *StateService) checkOwner(address, owner solanago.PublicKey) error {
	if !owner.Equals(s.ProgramID) {
		return fmt.Errorf("%w: account %s is owned by %s, not %s", solana.ErrInvalidOwner, address, owner, s.ProgramID)
	}
	return nil
}

func (s *StateService) GetLaunchPool(ctx context.Context, poolAddress solanago.PublicKey) (*LaunchPool, error) {
	data, err := s.fetch(ctx, poolAddress)
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("fetched launch pool", zap.Stringer("pool", poolAddress), zap.Int("size", len(data)))
	return DecodeLaunchPool(data)
}

// GetLaunchPoolByCreator derives the pool of (creator, mint) and fetches it.
func (s *StateService) GetLaunchPoolByCreator(ctx context.Context, creator, mint solanago.PublicKey) (solanago.PublicKey, *LaunchPool, error) {
	addr, err := s.Deriver.LaunchPool(creator, mint)
	if err != nil {
		return solanago.PublicKey{}, nil, err
	}
	pool, err := s.GetLaunchPool(ctx, addr.PublicKey)
	if err != nil {
		return addr.PublicKey, nil, err
	}
	return addr.PublicKey, pool, nil
}

func (s *StateService) GetTreasurer(ctx context.Context, treasurerAddress solanago.PublicKey) (*Treasurer, error) {
	data, err := s.fetch(ctx, treasurerAddress)
	if err != nil {
		return nil, err
	}
	return DecodeTreasurer(data)
}

// GetUserPool fetches the participation record of user in pool.
func (s *StateService) GetUserPool(ctx context.Context, user, pool, mint solanago.PublicKey) (*UserPool, error) {
	addr, err := s.Deriver.UserPool(user, pool, mint)
	if err != nil {
		return nil, err
	}
	data, err := s.fetch(ctx, addr.PublicKey)
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("fetched user pool", zap.Stringer("user", user), zap.Stringer("userPool", addr.PublicKey))
	return DecodeUserPool(data)
}

// GetLaunchPoolsByAuthority lists every pool created by authority.
func (s *StateService) GetLaunchPoolsByAuthority(ctx context.Context, authority solanago.PublicKey) ([]ProgramAccount[LaunchPool], error) {
	filters := solana.GenProgramAccountFilter(AccountKeyLaunchPool, &solana.Filter{
		Owner:  authority,
		Offset: solana.ComputeStructOffset(new(LaunchPool), "Authority"),
	})
	accounts, err := s.RPC.GetProgramAccountsWithOpts(ctx, s.ProgramID, &rpc.GetProgramAccountsOpts{
		Commitment: s.Commitment,
		Encoding:   solanago.EncodingBase64,
		Filters:    filters,
	})
	if err != nil {
		return nil, err
	}
	out := make([]ProgramAccount[LaunchPool], 0, len(accounts))
	for _, acc := range accounts {
		parsed, err := DecodeLaunchPool(acc.Account.Data.GetBinary())
		if err != nil {
			s.Logger.Warn("skipping undecodable launch pool", zap.Stringer("pool", acc.Pubkey), zap.Error(err))
			continue
		}
		out = append(out, ProgramAccount[LaunchPool]{Pubkey: acc.Pubkey, Account: parsed})
	}
	return out, nil
}

// GetTreasuryBalance returns the token amount held by the pool's treasury.
func (s *StateService) GetTreasuryBalance(ctx context.Context, pool, mint solanago.PublicKey) (uint64, error) {
	treasury, err := s.Deriver.Treasury(pool, mint)
	if err != nil {
		return 0, err
	}
	acc, err := solana.GetTokenAccount(ctx, s.RPC, treasury, s.Commitment)
	if err != nil {
		return 0, err
	}
	if !acc.Mint.Equals(mint) {
		return 0, fmt.Errorf("%w: treasury %s holds mint %s, not %s", ErrMintMismatch, treasury, acc.Mint, mint)
	}
	return acc.Amount, nil
}

// PoolOverview is a pool with its treasurer and treasury balance.
type PoolOverview struct {
	Accounts        *PoolAccounts
	Pool            *LaunchPool
	Treasurer       *Treasurer
	TreasuryBalance uint64
}

// GetPoolOverview loads the pool of (creator, mint), its treasurer and its
// treasury in a single rpc round trip.
func (s *StateService) GetPoolOverview(ctx context.Context, creator, mint solanago.PublicKey) (*PoolOverview, error) {
	accounts, err := s.Deriver.PoolAccounts(creator, mint)
	if err != nil {
		return nil, err
	}
	keys := []solanago.PublicKey{
		accounts.LaunchPool.PublicKey,
		accounts.Treasurer.PublicKey,
		accounts.Treasury,
	}
	res, err := solana.GetMultipleAccountInfo(ctx, s.RPC, keys, s.Commitment)
	if err != nil {
		return nil, err
	}
	if len(res.Value) != len(keys) {
		return nil, fmt.Errorf("expected %d accounts, got %d", len(keys), len(res.Value))
	}
	for i, v := range res.Value {
		if v == nil {
			return nil, fmt.Errorf("%w: %s", solana.ErrAccountNotFound, keys[i])
		}
	}

	for i := 0; i < 2; i++ {
		if err := s.checkOwner(keys[i], res.Value[i].Owner); err != nil {
			return nil, err
		}
	}
	if !solana.IsTokenProgram(res.Value[2].Owner) {
		return nil, fmt.Errorf("%w: treasury %s is owned by %s", solana.ErrInvalidOwner, keys[2], res.Value[2].Owner)
	}

	out := &PoolOverview{Accounts: accounts}
	if out.Pool, err = DecodeLaunchPool(res.Value[0].Data.GetBinary()); err != nil {
		return nil, err
	}
	if out.Treasurer, err = DecodeTreasurer(res.Value[1].Data.GetBinary()); err != nil {
		return nil, err
	}
	treasury, err := new(solana.AccountLayout).Decode(res.Value[2].Data.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("decode treasury: %w", err)
	}
	if !treasury.Mint.Equals(mint) {
		return nil, fmt.Errorf("%w: treasury %s holds mint %s, not %s", ErrMintMismatch, keys[2], treasury.Mint, mint)
	}
	out.TreasuryBalance = treasury.Amount
	return out, nil
}

// GetMint fetches the token mint a pool sells.
func (s *StateService) GetMint(ctx context.Context, mint solanago.PublicKey) (*solana.Mint, error) {
	return solana.GetMint(ctx, s.RPC, mint, s.Commitment)
}

// GetWalletTokenBalance sums the base units of mint held by wallet across all
// of its token accounts, claimed tokens included.
func (s *StateService) GetWalletTokenBalance(ctx context.Context, wallet, mint solanago.PublicKey) (uint64, error) {
	return solana.GetMintBalance(ctx, s.RPC, wallet, mint, s.Commitment)
}
