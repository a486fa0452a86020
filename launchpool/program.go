package launchpool

import (
	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

type LaunchPoolProgram struct {
	RPC        *rpc.Client
	ProgramID  solanago.PublicKey
	Deriver    *Deriver
	Commitment rpc.CommitmentType
	Logger     *zap.Logger
}

type Option func(*LaunchPoolProgram)

// WithLogger sets the logger used by the services. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(p *LaunchPoolProgram) {
		if logger != nil {
			p.Logger = logger
		}
	}
}

// WithDeriver replaces the default uncached deriver, e.g. with a cached one.
func WithDeriver(d *Deriver) Option {
	return func(p *LaunchPoolProgram) {
		if d != nil {
			p.Deriver = d
			p.ProgramID = d.ProgramID()
		}
	}
}

func NewLaunchPoolProgram(rpcClient *rpc.Client, programID solanago.PublicKey, commitment rpc.CommitmentType, opts ...Option) *LaunchPoolProgram {
	p := &LaunchPoolProgram{
		RPC:        rpcClient,
		ProgramID:  programID,
		Deriver:    MustNewDeriver(programID),
		Commitment: commitment,
		Logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
