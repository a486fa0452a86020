package launchpool

import (
	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// LaunchPoolClient groups high-level services.
type LaunchPoolClient struct {
	*LaunchPoolProgram
	State        *StateService
	Instructions *InstructionService
}

// NewLaunchPoolClient constructs a client for the program deployed at programID.
func NewLaunchPoolClient(rpcClient *rpc.Client, programID solanago.PublicKey, commitment rpc.CommitmentType, opts ...Option) *LaunchPoolClient {
	program := NewLaunchPoolProgram(rpcClient, programID, commitment, opts...)
	return &LaunchPoolClient{
		LaunchPoolProgram: program,
		State:             NewStateService(program),
		Instructions:      NewInstructionService(program),
	}
}

// Create is a convenience constructor using confirmed commitment by default.
func Create(rpcClient *rpc.Client, programID solanago.PublicKey, commitment rpc.CommitmentType, opts ...Option) *LaunchPoolClient {
	if commitment == "" {
		commitment = rpc.CommitmentConfirmed
	}
	return NewLaunchPoolClient(rpcClient, programID, commitment, opts...)
}
