package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/spf13/cobra"

	"github.com/krazyTry/launchpool-go/launchpool"
)

func (a *app) newPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Read launch pool state from the cluster",
	}
	cmd.AddCommand(a.newPoolShowCmd(), a.newPoolListCmd(), a.newPoolWatchCmd())
	return cmd
}

func (a *app) newPoolShowCmd() *cobra.Command {
	var creator, mint string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the pool, treasurer and treasury balance of a creator and mint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creatorKey, err := parseKey("creator", creator)
			if err != nil {
				return err
			}
			mintKey, err := parseKey("mint", mint)
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			overview, err := client.State.GetPoolOverview(cmd.Context(), creatorKey, mintKey)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "address:     %s\n", overview.Accounts.LaunchPool.PublicKey)
			printPool(w, overview.Pool)
			decimals := int32(overview.Pool.TokenMintDecimals)
			fmt.Fprintf(w, "treasurer:   %s (%s tokens)\n",
				overview.Accounts.Treasurer.PublicKey,
				launchpool.FromLamports(overview.Treasurer.Amount, decimals))
			fmt.Fprintf(w, "treasury:    %s (%s tokens)\n",
				overview.Accounts.Treasury,
				launchpool.FromLamports(overview.TreasuryBalance, decimals))
			return nil
		},
	}
	cmd.Flags().StringVar(&creator, "creator", "", "pool creator (base58)")
	cmd.Flags().StringVar(&mint, "mint", "", "token mint (base58)")
	return cmd
}

func (a *app) newPoolListCmd() *cobra.Command {
	var authority string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the pools created by an authority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			authorityKey, err := parseKey("authority", authority)
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			pools, err := client.State.GetLaunchPoolsByAuthority(cmd.Context(), authorityKey)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, p := range pools {
				fmt.Fprintf(w, "%s %s %s %s\n",
					p.Pubkey, p.Account.TokenMint, p.Account.Status,
					launchpool.FromLamports(p.Account.PoolSizeRemaining, int32(p.Account.TokenMintDecimals)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&authority, "authority", "", "pool authority (base58)")
	return cmd
}

func (a *app) newPoolWatchCmd() *cobra.Command {
	var creator, mint string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print every change of a pool until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creatorKey, err := parseKey("creator", creator)
			if err != nil {
				return err
			}
			mintKey, err := parseKey("mint", mint)
			if err != nil {
				return err
			}
			if a.cfg.WSEndpoint == "" {
				return errors.New("no websocket endpoint: set ws_endpoint or --ws")
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			pool, err := client.Deriver.LaunchPool(creatorKey, mintKey)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			wsClient, err := ws.Connect(ctx, a.cfg.WSEndpoint)
			if err != nil {
				return fmt.Errorf("connect %s: %w", a.cfg.WSEndpoint, err)
			}
			defer wsClient.Close()

			w := cmd.OutOrStdout()
			err = client.State.WatchLaunchPool(ctx, wsClient, pool.PublicKey, func(slot uint64, p *launchpool.LaunchPool) error {
				decimals := int32(p.TokenMintDecimals)
				fmt.Fprintf(w, "%d %s remaining=%s vault=%s\n", slot, p.Status,
					launchpool.FromLamports(p.PoolSizeRemaining, decimals),
					launchpool.FromLamports(p.VaultAmount, launchpool.CurrencyDecimals))
				return nil
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&creator, "creator", "", "pool creator (base58)")
	cmd.Flags().StringVar(&mint, "mint", "", "token mint (base58)")
	return cmd
}

func (a *app) newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Read a buyer's position in a pool",
	}

	var user, creator, mint string
	show := &cobra.Command{
		Use:   "show",
		Short: "Show the purchased and claimed amounts of a buyer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userKey, err := parseKey("user", user)
			if err != nil {
				return err
			}
			creatorKey, err := parseKey("creator", creator)
			if err != nil {
				return err
			}
			mintKey, err := parseKey("mint", mint)
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			poolAddr, pool, err := client.State.GetLaunchPoolByCreator(cmd.Context(), creatorKey, mintKey)
			if err != nil {
				return err
			}
			addr, err := client.Deriver.UserPool(userKey, poolAddr, mintKey)
			if err != nil {
				return err
			}
			position, err := client.State.GetUserPool(cmd.Context(), userKey, poolAddr, mintKey)
			if err != nil {
				return err
			}
			held, err := client.State.GetWalletTokenBalance(cmd.Context(), userKey, mintKey)
			if err != nil {
				return err
			}

			decimals := int32(pool.TokenMintDecimals)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "address:     %s\n", addr.PublicKey)
			fmt.Fprintf(w, "pool:        %s\n", poolAddr)
			fmt.Fprintf(w, "amount:      %s\n", launchpool.FromLamports(position.Amount, decimals))
			fmt.Fprintf(w, "paid:        %s SOL\n", launchpool.FromLamports(position.CurrencyAmount, launchpool.CurrencyDecimals))
			fmt.Fprintf(w, "claimed:     %s\n", launchpool.FromLamports(position.Claimed, decimals))
			fmt.Fprintf(w, "unclaimed:   %s\n", launchpool.FromLamports(position.Unclaimed(), decimals))
			fmt.Fprintf(w, "in wallet:   %s\n", launchpool.FromLamports(held, decimals))
			return nil
		},
	}
	show.Flags().StringVar(&user, "user", "", "buyer wallet (base58)")
	show.Flags().StringVar(&creator, "creator", "", "pool creator (base58)")
	show.Flags().StringVar(&mint, "mint", "", "token mint (base58)")

	cmd.AddCommand(show)
	return cmd
}

func printPool(w io.Writer, p *launchpool.LaunchPool) {
	decimals := int32(p.TokenMintDecimals)
	fmt.Fprintf(w, "status:      %s\n", p.Status)
	fmt.Fprintf(w, "type:        %s\n", p.PoolType)
	fmt.Fprintf(w, "currency:    %s\n", p.Currency)
	fmt.Fprintf(w, "authority:   %s\n", p.Authority)
	fmt.Fprintf(w, "mint:        %s (%d decimals)\n", p.TokenMint, p.TokenMintDecimals)
	fmt.Fprintf(w, "pool size:   %s\n", launchpool.FromLamports(p.PoolSize, decimals))
	fmt.Fprintf(w, "remaining:   %s\n", launchpool.FromLamports(p.PoolSizeRemaining, decimals))
	fmt.Fprintf(w, "min/max buy: %s / %s\n",
		launchpool.FromLamports(p.MinimumTokenAmount, decimals),
		launchpool.FromLamports(p.MaximumTokenAmount, decimals))
	fmt.Fprintf(w, "rate:        %d\n", p.Rate)
	fmt.Fprintf(w, "vesting:     %t\n", p.IsVesting)
	fmt.Fprintf(w, "unlock:      %s\n", p.UnlockTime().UTC().Format("2006-01-02 15:04:05 MST"))
}
