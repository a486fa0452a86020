package launchpool

import (
	"errors"
	"fmt"
	"strings"

	solanago "github.com/gagliardetto/solana-go"
	lru "github.com/hashicorp/golang-lru"
	"github.com/krazyTry/launchpool-go/solana"
)

var ErrUnknownKind = errors.New("unknown address kind")

// Kind identifies one of the program's derived account templates.
type Kind uint8

const (
	KindLaunchPool Kind = iota
	KindTreasurer
	KindVault
	KindWhitelist
	KindVestingPlan
	KindUserPool
)

// Kinds lists every derived account kind in declaration order.
var Kinds = []Kind{
	KindLaunchPool,
	KindTreasurer,
	KindVault,
	KindWhitelist,
	KindVestingPlan,
	KindUserPool,
}

// Params carries the identities a seed template may reference. Each kind reads
// only the fields it needs.
type Params struct {
	Creator solanago.PublicKey
	Mint    solanago.PublicKey
	Pool    solanago.PublicKey
	User    solanago.PublicKey
}

type seedBuilder func(p Params) [][]byte

var kinds = map[Kind]struct {
	name  string
	seeds seedBuilder
}{
	KindLaunchPool: {"launchpool", func(p Params) [][]byte {
		return [][]byte{seed.LaunchPool, p.Creator.Bytes(), p.Mint.Bytes()}
	}},
	KindTreasurer: {"treasurer", func(p Params) [][]byte {
		return [][]byte{seed.Treasurer, p.Pool.Bytes(), p.Mint.Bytes()}
	}},
	KindVault: {"vault", func(p Params) [][]byte {
		return [][]byte{seed.Vault, p.Pool.Bytes(), p.Creator.Bytes()}
	}},
	KindWhitelist: {"whitelist", func(p Params) [][]byte {
		return [][]byte{seed.Whitelist, p.Pool.Bytes()}
	}},
	KindVestingPlan: {"vestingplan", func(p Params) [][]byte {
		return [][]byte{seed.VestingPlan, p.Pool.Bytes()}
	}},
	KindUserPool: {"userpool", func(p Params) [][]byte {
		return [][]byte{seed.UserPool, p.User.Bytes(), p.Pool.Bytes(), p.Mint.Bytes()}
	}},
}

func (k Kind) String() string {
	if v, ok := kinds[k]; ok {
		return v.name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Seeds returns the ordered seeds of k for p, without the bump.
func (k Kind) Seeds(p Params) ([][]byte, error) {
	v, ok := kinds[k]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return v.seeds(p), nil
}

// ParseKind maps a kind name such as "treasurer" back to its Kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds {
		if kinds[k].name == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Deriver derives the program's accounts under a single program id.
type Deriver struct {
	programID solanago.PublicKey
	cache     *lru.ARCCache
}

type DeriverOption func(*Deriver) error

// WithCache memoises derivations in an ARC cache of the given size.
// A size of zero disables caching.
func WithCache(size int) DeriverOption {
	return func(d *Deriver) error {
		if size <= 0 {
			d.cache = nil
			return nil
		}
		cache, err := lru.NewARC(size)
		if err != nil {
			return err
		}
		d.cache = cache
		return nil
	}
}

func NewDeriver(programID solanago.PublicKey, opts ...DeriverOption) (*Deriver, error) {
	d := &Deriver{programID: programID}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// MustNewDeriver is NewDeriver for options that cannot fail.
func MustNewDeriver(programID solanago.PublicKey, opts ...DeriverOption) *Deriver {
	d, err := NewDeriver(programID, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Deriver) ProgramID() solanago.PublicKey {
	return d.programID
}

func cacheKey(programID solanago.PublicKey, seeds [][]byte) string {
	var b strings.Builder
	b.Write(programID[:])
	for _, s := range seeds {
		b.WriteByte(byte(len(s)))
		b.Write(s)
	}
	return b.String()
}

func (d *Deriver) find(programID solanago.PublicKey, seeds [][]byte) (solana.Address, error) {
	if d.cache == nil {
		return solana.FindProgramAddress(seeds, programID)
	}
	key := cacheKey(programID, seeds)
	if v, ok := d.cache.Get(key); ok {
		return v.(solana.Address), nil
	}
	addr, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.Address{}, err
	}
	d.cache.Add(key, addr)
	return addr, nil
}

// Derive derives the account of kind k for p.
func (d *Deriver) Derive(k Kind, p Params) (solana.Address, error) {
	seeds, err := k.Seeds(p)
	if err != nil {
		return solana.Address{}, err
	}
	addr, err := d.find(d.programID, seeds)
	if err != nil {
		return solana.Address{}, fmt.Errorf("derive %s: %w", k, err)
	}
	return addr, nil
}

// LaunchPool derives ["launchpool", creator, mint].
func (d *Deriver) LaunchPool(creator, mint solanago.PublicKey) (solana.Address, error) {
	return d.Derive(KindLaunchPool, Params{Creator: creator, Mint: mint})
}

// Treasurer derives ["treasurer", pool, mint].
func (d *Deriver) Treasurer(pool, mint solanago.PublicKey) (solana.Address, error) {
	return d.Derive(KindTreasurer, Params{Pool: pool, Mint: mint})
}

// Vault derives ["vault", pool, creator]; the vault collects the native currency paid by buyers.
func (d *Deriver) Vault(pool, creator solanago.PublicKey) (solana.Address, error) {
	return d.Derive(KindVault, Params{Pool: pool, Creator: creator})
}

func (d *Deriver) Whitelist(pool solanago.PublicKey) (solana.Address, error) {
	return d.Derive(KindWhitelist, Params{Pool: pool})
}

func (d *Deriver) VestingPlan(pool solanago.PublicKey) (solana.Address, error) {
	return d.Derive(KindVestingPlan, Params{Pool: pool})
}

// UserPool derives the per-user, per-pool, per-mint participation record.
func (d *Deriver) UserPool(user, pool, mint solanago.PublicKey) (solana.Address, error) {
	return d.Derive(KindUserPool, Params{User: user, Pool: pool, Mint: mint})
}

// AssociatedTokenAccount derives the SPL token ATA of owner for mint. It does
// not depend on the program id.
func (d *Deriver) AssociatedTokenAccount(owner, mint solanago.PublicKey) (solana.Address, error) {
	seeds := [][]byte{owner.Bytes(), solanago.TokenProgramID.Bytes(), mint.Bytes()}
	addr, err := d.find(solanago.SPLAssociatedTokenAccountProgramID, seeds)
	if err != nil {
		return solana.Address{}, fmt.Errorf("derive associated token account: %w", err)
	}
	return addr, nil
}

// Treasury derives the token account holding a pool's tokens: the ATA of the
// pool's treasurer.
func (d *Deriver) Treasury(pool, mint solanago.PublicKey) (solanago.PublicKey, error) {
	treasurer, err := d.Treasurer(pool, mint)
	if err != nil {
		return solanago.PublicKey{}, err
	}
	ata, err := d.AssociatedTokenAccount(treasurer.PublicKey, mint)
	if err != nil {
		return solanago.PublicKey{}, err
	}
	return ata.PublicKey, nil
}

// PoolAccounts is every derived account belonging to one launch pool.
type PoolAccounts struct {
	LaunchPool  solana.Address
	Treasurer   solana.Address
	Treasury    solanago.PublicKey
	Vault       solana.Address
	Whitelist   solana.Address
	VestingPlan solana.Address
}

// PoolAccounts derives the pool of (creator, mint) and the accounts hanging off it.
func (d *Deriver) PoolAccounts(creator, mint solanago.PublicKey) (*PoolAccounts, error) {
	var (
		out PoolAccounts
		err error
	)
	if out.LaunchPool, err = d.LaunchPool(creator, mint); err != nil {
		return nil, err
	}
	pool := out.LaunchPool.PublicKey
	if out.Treasurer, err = d.Treasurer(pool, mint); err != nil {
		return nil, err
	}
	ata, err := d.AssociatedTokenAccount(out.Treasurer.PublicKey, mint)
	if err != nil {
		return nil, err
	}
	out.Treasury = ata.PublicKey
	if out.Vault, err = d.Vault(pool, creator); err != nil {
		return nil, err
	}
	if out.Whitelist, err = d.Whitelist(pool); err != nil {
		return nil, err
	}
	if out.VestingPlan, err = d.VestingPlan(pool); err != nil {
		return nil, err
	}
	return &out, nil
}
