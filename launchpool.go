package launchpool

import (
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/krazyTry/launchpool-go/config"
	lp "github.com/krazyTry/launchpool-go/launchpool"
)

// NewClient creates a launch pool client for an explicit program id.
//
// Example:
//
// client := NewClient(rpc.New(rpc.DevNet_RPC), lp.DevnetProgramID, rpc.CommitmentConfirmed)
//
// pool, _ := client.Deriver.LaunchPool(creator, mint)
//
// overview, _ := client.State.GetPoolOverview(ctx, creator, mint)
var NewClient = lp.NewLaunchPoolClient

// NewClientFromConfig creates a client for the endpoint, commitment and program
// id of cfg, with a derived address cache of cfg.CacheSize entries.
//
// Example:
//
// cfg, _ := config.Load("launchpool.yaml")
//
// client, _ := NewClientFromConfig(cfg, logger)
//
// ix, _ := client.Instructions.BuyTokenWithNative(creator, mint, buyer, amount)
func NewClientFromConfig(cfg *config.Config, logger *zap.Logger) (*lp.LaunchPoolClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d, err := cfg.NewDeriver()
	if err != nil {
		return nil, err
	}
	return lp.NewLaunchPoolClient(
		rpc.New(cfg.RPCEndpoint),
		cfg.ProgramKey(),
		cfg.Commitment,
		lp.WithDeriver(d),
		lp.WithLogger(logger),
	), nil
}
