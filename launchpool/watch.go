package launchpool

import (
	"context"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"go.uber.org/zap"
)

// WatchLaunchPool subscribes to the pool account and calls onUpdate with every
// decoded change. It returns when ctx ends, the subscription fails or onUpdate
// returns an error.
func (s *StateService) WatchLaunchPool(ctx context.Context, wsClient *ws.Client, pool solanago.PublicKey, onUpdate func(slot uint64, p *LaunchPool) error) error {
	sub, err := wsClient.AccountSubscribeWithOpts(pool, s.Commitment, solanago.EncodingBase64)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", pool, err)
	}
	defer sub.Unsubscribe()
	s.Logger.Debug("watching launch pool", zap.Stringer("pool", pool))

	for {
		res, err := sub.Recv(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("watch %s: %w", pool, err)
		}
		if err := s.checkOwner(pool, res.Value.Owner); err != nil {
			return err
		}
		p, err := DecodeLaunchPool(res.Value.Data.GetBinary())
		if err != nil {
			return err
		}
		s.Logger.Debug("launch pool update",
			zap.Stringer("pool", pool),
			zap.Uint64("slot", res.Context.Slot),
			zap.Stringer("status", p.Status))
		if err := onUpdate(res.Context.Slot, p); err != nil {
			return err
		}
	}
}
