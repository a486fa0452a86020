package launchpool

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/krazyTry/launchpool-go/solana"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccount struct {
	owner solanago.PublicKey
	data  []byte
}

// fakeLedger answers the handful of JSON-RPC methods the state service uses.
type fakeLedger struct {
	mu       sync.Mutex
	accounts map[solanago.PublicKey]fakeAccount
	calls    []string
	filters  []json.RawMessage
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{accounts: map[solanago.PublicKey]fakeAccount{}}
}

func (l *fakeLedger) put(key, owner solanago.PublicKey, data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[key] = fakeAccount{owner: owner, data: data}
}

func accountJSON(a fakeAccount) map[string]any {
	return map[string]any{
		"lamports":   1_000_000,
		"owner":      a.owner.String(),
		"data":       []string{base64.StdEncoding.EncodeToString(a.data), "base64"},
		"executable": false,
		"rentEpoch":  0,
		"space":      len(a.data),
	}
}

func parsedTokenJSON(mint, holder solanago.PublicKey, data []byte) map[string]any {
	amount := binary.LittleEndian.Uint64(data[64:72])
	return map[string]any{
		"lamports":   2_039_280,
		"owner":      solanago.TokenProgramID.String(),
		"executable": false,
		"rentEpoch":  0,
		"data": map[string]any{
			"program": "spl-token",
			"space":   len(data),
			"parsed": map[string]any{
				"type": "account",
				"info": map[string]any{
					"mint":  mint.String(),
					"owner": holder.String(),
					"state": "initialized",
					"tokenAmount": map[string]any{
						"amount":   strconv.FormatUint(amount, 10),
						"decimals": 9,
					},
				},
			},
		},
	}
}

func (l *fakeLedger) lookup(key string) any {
	pk := solanago.MustPublicKeyFromBase58(key)
	a, ok := l.accounts[pk]
	if !ok {
		return nil
	}
	return accountJSON(a)
}

func (l *fakeLedger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     json.RawMessage   `json:"id"`
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, req.Method)

	ctx := map[string]any{"slot": 1}
	var result any
	switch req.Method {
	case "getAccountInfo":
		var key string
		_ = json.Unmarshal(req.Params[0], &key)
		result = map[string]any{"context": ctx, "value": l.lookup(key)}
	case "getMultipleAccounts":
		var keys []string
		_ = json.Unmarshal(req.Params[0], &keys)
		values := make([]any, len(keys))
		for i, k := range keys {
			values[i] = l.lookup(k)
		}
		result = map[string]any{"context": ctx, "value": values}
	case "getProgramAccounts":
		var program string
		_ = json.Unmarshal(req.Params[0], &program)
		if len(req.Params) > 1 {
			l.filters = append(l.filters, req.Params[1])
		}
		list := make([]any, 0)
		for k, a := range l.accounts {
			if a.owner.String() != program {
				continue
			}
			list = append(list, map[string]any{"pubkey": k.String(), "account": accountJSON(a)})
		}
		result = list
	case "getTokenAccountsByOwner":
		var owner string
		var cfg struct {
			Mint string `json:"mint"`
		}
		_ = json.Unmarshal(req.Params[0], &owner)
		_ = json.Unmarshal(req.Params[1], &cfg)
		list := make([]any, 0)
		for k, a := range l.accounts {
			if !a.owner.Equals(solanago.TokenProgramID) || len(a.data) != solana.TokenAccountSize {
				continue
			}
			mint := solanago.PublicKeyFromBytes(a.data[0:32])
			holder := solanago.PublicKeyFromBytes(a.data[32:64])
			if holder.String() != owner || mint.String() != cfg.Mint {
				continue
			}
			list = append(list, map[string]any{"pubkey": k.String(), "account": parsedTokenJSON(mint, holder, a.data)})
		}
		result = map[string]any{"context": ctx, "value": list}
	default:
		http.Error(w, "unsupported method "+req.Method, http.StatusNotImplemented)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": result})
}

func newTestClient(t *testing.T, ledger *fakeLedger) *LaunchPoolClient {
	t.Helper()
	srv := httptest.NewServer(ledger)
	t.Cleanup(srv.Close)
	return Create(rpc.New(srv.URL), DevnetProgramID, "")
}

func tokenAccountData(mint, owner solanago.PublicKey, amount uint64) []byte {
	data := make([]byte, solana.TokenAccountSize)
	copy(data[0:32], mint[:])
	copy(data[32:64], owner[:])
	binary.LittleEndian.PutUint64(data[64:72], amount)
	data[108] = byte(solana.AccountStateInitialized)
	return data
}

func seedPool(t *testing.T, ledger *fakeLedger, d *Deriver) *PoolAccounts {
	t.Helper()
	accounts, err := d.PoolAccounts(testCreator, testMint)
	require.NoError(t, err)

	poolData, err := MarshalLaunchPool(samplePool())
	require.NoError(t, err)
	ledger.put(accounts.LaunchPool.PublicKey, d.ProgramID(), poolData)

	trData, err := MarshalTreasurer(&Treasurer{
		Authority:  testCreator,
		LaunchPool: accounts.LaunchPool.PublicKey,
		TokenMint:  testMint,
		Amount:     100_000_000_000,
	})
	require.NoError(t, err)
	ledger.put(accounts.Treasurer.PublicKey, d.ProgramID(), trData)

	ledger.put(accounts.Treasury, solanago.TokenProgramID,
		tokenAccountData(testMint, accounts.Treasurer.PublicKey, 50_000_000_000))
	return accounts
}

func TestGetLaunchPoolByCreator(t *testing.T) {
	ledger := newFakeLedger()
	client := newTestClient(t, ledger)
	accounts := seedPool(t, ledger, client.Deriver)

	addr, pool, err := client.State.GetLaunchPoolByCreator(context.Background(), testCreator, testMint)
	require.NoError(t, err)
	assert.Equal(t, accounts.LaunchPool.PublicKey, addr)
	assert.Equal(t, samplePool(), pool)
	assert.Equal(t, rpc.CommitmentConfirmed, client.Commitment)
}

func TestGetLaunchPoolNotFound(t *testing.T) {
	client := newTestClient(t, newFakeLedger())
	_, _, err := client.State.GetLaunchPoolByCreator(context.Background(), testCreator, testMint)
	require.ErrorIs(t, err, solana.ErrAccountNotFound)
}

func TestGetLaunchPoolWrongOwner(t *testing.T) {
	ledger := newFakeLedger()
	client := newTestClient(t, ledger)
	pool, err := client.Deriver.LaunchPool(testCreator, testMint)
	require.NoError(t, err)
	data, err := MarshalLaunchPool(samplePool())
	require.NoError(t, err)
	ledger.put(pool.PublicKey, LocalProgramID, data)

	_, err = client.State.GetLaunchPool(context.Background(), pool.PublicKey)
	require.ErrorIs(t, err, solana.ErrInvalidOwner)
	assert.Contains(t, err.Error(), "owned by")
}

func TestGetTreasurerAndBalance(t *testing.T) {
	ledger := newFakeLedger()
	client := newTestClient(t, ledger)
	accounts := seedPool(t, ledger, client.Deriver)

	tr, err := client.State.GetTreasurer(context.Background(), accounts.Treasurer.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, accounts.LaunchPool.PublicKey, tr.LaunchPool)

	balance, err := client.State.GetTreasuryBalance(context.Background(), accounts.LaunchPool.PublicKey, testMint)
	require.NoError(t, err)
	assert.Equal(t, uint64(50_000_000_000), balance)
}

func TestGetUserPool(t *testing.T) {
	ledger := newFakeLedger()
	client := newTestClient(t, ledger)
	pool, err := client.Deriver.LaunchPool(testCreator, testMint)
	require.NoError(t, err)
	up, err := client.Deriver.UserPool(testBuyer, pool.PublicKey, testMint)
	require.NoError(t, err)

	data, err := MarshalUserPool(&UserPool{Amount: 50, CurrencyAmount: 1, Claimed: 0})
	require.NoError(t, err)
	ledger.put(up.PublicKey, DevnetProgramID, data)

	got, err := client.State.GetUserPool(context.Background(), testBuyer, pool.PublicKey, testMint)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), got.Unclaimed())

	_, err = client.State.GetUserPool(context.Background(), testCreator, pool.PublicKey, testMint)
	require.ErrorIs(t, err, solana.ErrAccountNotFound)
}

func TestGetPoolOverview(t *testing.T) {
	ledger := newFakeLedger()
	client := newTestClient(t, ledger)
	accounts := seedPool(t, ledger, client.Deriver)

	overview, err := client.State.GetPoolOverview(context.Background(), testCreator, testMint)
	require.NoError(t, err)
	assert.Equal(t, accounts, overview.Accounts)
	assert.Equal(t, LaunchPoolStateActive, overview.Pool.Status)
	assert.Equal(t, uint64(100_000_000_000), overview.Treasurer.Amount)
	assert.Equal(t, uint64(50_000_000_000), overview.TreasuryBalance)
	assert.Equal(t, []string{"getMultipleAccounts"}, ledger.calls)
}

func TestGetPoolOverviewChecksOwners(t *testing.T) {
	foreign := solanago.NewWallet().PublicKey()

	t.Run("pool", func(t *testing.T) {
		ledger := newFakeLedger()
		client := newTestClient(t, ledger)
		accounts := seedPool(t, ledger, client.Deriver)
		data, err := MarshalLaunchPool(samplePool())
		require.NoError(t, err)
		ledger.put(accounts.LaunchPool.PublicKey, foreign, data)

		_, err = client.State.GetPoolOverview(context.Background(), testCreator, testMint)
		require.ErrorIs(t, err, solana.ErrInvalidOwner)
	})

	t.Run("treasurer", func(t *testing.T) {
		ledger := newFakeLedger()
		client := newTestClient(t, ledger)
		accounts := seedPool(t, ledger, client.Deriver)
		data, err := MarshalTreasurer(&Treasurer{Amount: 1})
		require.NoError(t, err)
		ledger.put(accounts.Treasurer.PublicKey, foreign, data)

		_, err = client.State.GetPoolOverview(context.Background(), testCreator, testMint)
		require.ErrorIs(t, err, solana.ErrInvalidOwner)
	})

	t.Run("treasury owner", func(t *testing.T) {
		ledger := newFakeLedger()
		client := newTestClient(t, ledger)
		accounts := seedPool(t, ledger, client.Deriver)
		ledger.put(accounts.Treasury, foreign, tokenAccountData(testMint, accounts.Treasurer.PublicKey, 7))

		_, err := client.State.GetPoolOverview(context.Background(), testCreator, testMint)
		require.ErrorIs(t, err, solana.ErrInvalidOwner)

		_, err = client.State.GetTreasuryBalance(context.Background(), accounts.LaunchPool.PublicKey, testMint)
		require.ErrorIs(t, err, solana.ErrInvalidOwner)
	})

	t.Run("treasury mint", func(t *testing.T) {
		ledger := newFakeLedger()
		client := newTestClient(t, ledger)
		accounts := seedPool(t, ledger, client.Deriver)
		ledger.put(accounts.Treasury, solanago.TokenProgramID, tokenAccountData(foreign, accounts.Treasurer.PublicKey, 7))

		_, err := client.State.GetPoolOverview(context.Background(), testCreator, testMint)
		require.ErrorIs(t, err, ErrMintMismatch)

		_, err = client.State.GetTreasuryBalance(context.Background(), accounts.LaunchPool.PublicKey, testMint)
		require.ErrorIs(t, err, ErrMintMismatch)
	})
}

func TestGetLaunchPoolsByAuthority(t *testing.T) {
	ledger := newFakeLedger()
	client := newTestClient(t, ledger)
	accounts := seedPool(t, ledger, client.Deriver)

	pools, err := client.State.GetLaunchPoolsByAuthority(context.Background(), testCreator)
	require.NoError(t, err)
	// the treasurer shares the owner but not the discriminator and is skipped
	require.Len(t, pools, 1)
	assert.Equal(t, accounts.LaunchPool.PublicKey, pools[0].Pubkey)
	assert.Equal(t, testCreator, pools[0].Account.Authority)

	require.Len(t, ledger.filters, 1)
	var opts struct {
		Filters []struct {
			Memcmp struct {
				Offset uint64 `json:"offset"`
				Bytes  string `json:"bytes"`
			} `json:"memcmp"`
		} `json:"filters"`
	}
	require.NoError(t, json.Unmarshal(ledger.filters[0], &opts))
	require.Len(t, opts.Filters, 2)
	assert.Equal(t, uint64(0), opts.Filters[0].Memcmp.Offset)
	assert.Equal(t, uint64(89), opts.Filters[1].Memcmp.Offset)
	assert.Equal(t, testCreator.String(), opts.Filters[1].Memcmp.Bytes)
}

func mintData(decimals uint8, authority solanago.PublicKey) []byte {
	data := make([]byte, solana.MintSize)
	binary.LittleEndian.PutUint32(data[0:4], 1)
	copy(data[4:36], authority[:])
	binary.LittleEndian.PutUint64(data[36:44], 1_000_000_000_000)
	data[44] = decimals
	data[45] = 1
	return data
}

func TestGetMint(t *testing.T) {
	ledger := newFakeLedger()
	client := newTestClient(t, ledger)
	ledger.put(testMint, solanago.TokenProgramID, mintData(6, testCreator))

	mint, err := client.State.GetMint(context.Background(), testMint)
	require.NoError(t, err)
	assert.Equal(t, uint8(6), mint.Decimals)
	assert.Equal(t, uint64(1_000_000_000_000), mint.Supply)
	assert.True(t, mint.IsInitialized)
	require.NotNil(t, mint.MintAuthority)
	assert.Equal(t, testCreator, *mint.MintAuthority)
	assert.Nil(t, mint.FreezeAuthority)

	// a pool account is not a mint
	accounts := seedPool(t, ledger, client.Deriver)
	_, err = client.State.GetMint(context.Background(), accounts.LaunchPool.PublicKey)
	assert.ErrorIs(t, err, solana.ErrInvalidOwner)
	assert.ErrorContains(t, err, "not a token mint")
}

func TestGetWalletTokenBalance(t *testing.T) {
	ledger := newFakeLedger()
	client := newTestClient(t, ledger)

	ata, err := client.Deriver.AssociatedTokenAccount(testBuyer, testMint)
	require.NoError(t, err)
	ledger.put(ata.PublicKey, solanago.TokenProgramID, tokenAccountData(testMint, testBuyer, 7_000))
	ledger.put(solanago.NewWallet().PublicKey(), solanago.TokenProgramID, tokenAccountData(testMint, testBuyer, 500))
	// other holders do not count
	ledger.put(solanago.NewWallet().PublicKey(), solanago.TokenProgramID, tokenAccountData(testMint, testCreator, 1))

	balance, err := client.State.GetWalletTokenBalance(context.Background(), testBuyer, testMint)
	require.NoError(t, err)
	assert.Equal(t, uint64(7_500), balance)
}
