package main

import (
	"fmt"
	"os"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	sdk "github.com/krazyTry/launchpool-go"
	"github.com/krazyTry/launchpool-go/config"
	"github.com/krazyTry/launchpool-go/launchpool"
)

// app holds the state shared by the subcommands of one root command.
type app struct {
	// Global flags
	configPath string
	programID  string
	rpcURL     string
	wsURL      string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "launchpool",
		Short: "Derive and inspect launch pool program accounts",
		Long: `launchpool derives the program's accounts from their seeds and reads pool
state from a cluster. It never signs or sends transactions.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.programID, "program-id", "", "launch pool program id (overrides config)")
	root.PersistentFlags().StringVar(&a.rpcURL, "rpc", "", "rpc endpoint (overrides config)")
	root.PersistentFlags().StringVar(&a.wsURL, "ws", "", "websocket endpoint (overrides config)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(a.newDeriveCmd(), a.newPoolCmd(), a.newUserCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	zc := zap.NewProductionConfig()
	if a.verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	var err error
	if a.logger, err = zc.Build(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if a.configPath != "" {
		if a.cfg, err = config.Load(a.configPath); err != nil {
			return err
		}
	} else {
		a.cfg = config.Default()
	}
	if a.programID != "" {
		a.cfg.ProgramID = a.programID
	}
	if a.rpcURL != "" {
		a.cfg.RPCEndpoint = a.rpcURL
	}
	if a.wsURL != "" {
		a.cfg.WSEndpoint = a.wsURL
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	a.logger.Debug("configured",
		zap.String("program", a.cfg.ProgramID),
		zap.String("rpc", a.cfg.RPCEndpoint),
		zap.String("commitment", string(a.cfg.Commitment)))
	return nil
}

func (a *app) deriver() (*launchpool.Deriver, error) {
	return a.cfg.NewDeriver()
}

func (a *app) client() (*launchpool.LaunchPoolClient, error) {
	return sdk.NewClientFromConfig(a.cfg, a.logger)
}

func parseKey(name, value string) (solanago.PublicKey, error) {
	if value == "" {
		return solanago.PublicKey{}, fmt.Errorf("--%s is required", name)
	}
	key, err := solanago.PublicKeyFromBase58(value)
	if err != nil {
		return solanago.PublicKey{}, fmt.Errorf("--%s: %w", name, err)
	}
	return key, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
