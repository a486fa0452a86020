package launchpool

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/gorilla/websocket"
	"github.com/krazyTry/launchpool-go/solana"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeWS serves accountSubscribe and pushes one notification per update.
func newFakeWS(t *testing.T, updates []fakeAccount) *ws.Client {
	t.Helper()
	const subscription = 7
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var req struct {
				ID     json.RawMessage `json:"id"`
				Method string          `json:"method"`
			}
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			if req.Method != "accountSubscribe" {
				_ = conn.WriteJSON(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": true})
				continue
			}
			_ = conn.WriteJSON(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": subscription})
			for i, a := range updates {
				_ = conn.WriteJSON(map[string]any{
					"jsonrpc": "2.0",
					"method":  "accountNotification",
					"params": map[string]any{
						"subscription": subscription,
						"result": map[string]any{
							"context": map[string]any{"slot": 100 + i},
							"value":   accountJSON(a),
						},
					},
				})
			}
		}
	}))
	t.Cleanup(srv.Close)

	client, err := ws.Connect(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestWatchLaunchPool(t *testing.T) {
	client := newTestClient(t, newFakeLedger())
	pool, err := client.Deriver.LaunchPool(testCreator, testMint)
	require.NoError(t, err)

	active, err := MarshalLaunchPool(samplePool())
	require.NoError(t, err)
	done := samplePool()
	done.Status = LaunchPoolStateCompleted
	done.PoolSizeRemaining = 0
	completed, err := MarshalLaunchPool(done)
	require.NoError(t, err)

	wsClient := newFakeWS(t, []fakeAccount{
		{owner: DevnetProgramID, data: active},
		{owner: DevnetProgramID, data: completed},
	})

	errStop := errors.New("stop")
	var slots []uint64
	var states []LaunchPoolState
	err = client.State.WatchLaunchPool(context.Background(), wsClient, pool.PublicKey, func(slot uint64, p *LaunchPool) error {
		slots = append(slots, slot)
		states = append(states, p.Status)
		if p.Status == LaunchPoolStateCompleted {
			return errStop
		}
		return nil
	})
	require.ErrorIs(t, err, errStop)
	assert.Equal(t, []uint64{100, 101}, slots)
	assert.Equal(t, []LaunchPoolState{LaunchPoolStateActive, LaunchPoolStateCompleted}, states)
}

func TestWatchLaunchPoolRejectsForeignOwner(t *testing.T) {
	client := newTestClient(t, newFakeLedger())
	pool, err := client.Deriver.LaunchPool(testCreator, testMint)
	require.NoError(t, err)
	data, err := MarshalLaunchPool(samplePool())
	require.NoError(t, err)

	wsClient := newFakeWS(t, []fakeAccount{{owner: solanago.SystemProgramID, data: data}})
	err = client.State.WatchLaunchPool(context.Background(), wsClient, pool.PublicKey, func(uint64, *LaunchPool) error {
		t.Fatal("foreign account must not reach the callback")
		return nil
	})
	require.ErrorIs(t, err, solana.ErrInvalidOwner)
}
