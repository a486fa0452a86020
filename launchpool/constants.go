package launchpool

import (
	solanago "github.com/gagliardetto/solana-go"
)

const (
	AccountKeyLaunchPool = "LaunchPool"
	AccountKeyTreasurer  = "Treasurer"
	AccountKeyUserPool   = "UserPool"

	// CurrencyDecimals is the decimals of the native currency the pools sell for.
	CurrencyDecimals = 9
	// MaxTokenDecimals bounds the mint decimals accepted by the builders.
	MaxTokenDecimals = 18
)

var (
	// DevnetProgramID is the devnet deployment of the launch pool program.
	DevnetProgramID = solanago.MustPublicKeyFromBase58("Eo9a3Zjn5HbGnL9wqkjDmajQ5EGzgaBbW77YhUZNVLo5")
	// LocalProgramID is the program id the program declares for itself,
	// used by local validator deployments.
	LocalProgramID = solanago.MustPublicKeyFromBase58("BW6SPYkVKy7QzVRwAdstwDUyUYHxiLXBwP2cwwRQpgG6")
)

var seed = struct {
	LaunchPool  []byte
	Treasurer   []byte
	Vault       []byte
	UserPool    []byte
	Whitelist   []byte
	VestingPlan []byte
}{
	LaunchPool:  []byte("launchpool"),
	Treasurer:   []byte("treasurer"),
	Vault:       []byte("vault"),
	UserPool:    []byte("userpool"),
	Whitelist:   []byte("whitelist"),
	VestingPlan: []byte("vestingplan"),
}

var instructionName = struct {
	CreateNativePool   string
	StartLaunchPool    string
	BuyTokenWithNative string
	CompleteLaunchPool string
	ClaimToken         string
}{
	CreateNativePool:   "create_native_pool",
	StartLaunchPool:    "start_launch_pool",
	BuyTokenWithNative: "buy_token_with_native",
	CompleteLaunchPool: "complete_launch_pool",
	ClaimToken:         "claim_token",
}
