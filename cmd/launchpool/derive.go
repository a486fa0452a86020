package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"

	"github.com/krazyTry/launchpool-go/launchpool"
	"github.com/krazyTry/launchpool-go/solana"
)

// identity flags each kind requires
var kindFlags = map[launchpool.Kind][]string{
	launchpool.KindLaunchPool:  {"creator", "mint"},
	launchpool.KindTreasurer:   {"pool", "mint"},
	launchpool.KindVault:       {"pool", "creator"},
	launchpool.KindWhitelist:   {"pool"},
	launchpool.KindVestingPlan: {"pool"},
	launchpool.KindUserPool:    {"user", "pool", "mint"},
}

type identityFlags struct {
	creator, mint, pool, user string
}

func (f *identityFlags) register(cmd *cobra.Command, names []string) {
	for _, name := range names {
		switch name {
		case "creator":
			cmd.Flags().StringVar(&f.creator, "creator", "", "pool creator (base58)")
		case "mint":
			cmd.Flags().StringVar(&f.mint, "mint", "", "token mint (base58)")
		case "pool":
			cmd.Flags().StringVar(&f.pool, "pool", "", "launch pool address (base58); derived from --creator and --mint when omitted")
		case "user":
			cmd.Flags().StringVar(&f.user, "user", "", "buyer wallet (base58)")
		}
	}
}

// params parses the flags a kind needs. A missing --pool is derived from
// --creator and --mint.
func (f *identityFlags) params(d *launchpool.Deriver, names []string) (launchpool.Params, error) {
	var (
		p   launchpool.Params
		err error
	)
	for _, name := range names {
		switch name {
		case "creator":
			p.Creator, err = parseKey(name, f.creator)
		case "mint":
			p.Mint, err = parseKey(name, f.mint)
		case "user":
			p.User, err = parseKey(name, f.user)
		case "pool":
			if f.pool == "" && f.creator != "" && f.mint != "" {
				var creator, mint solanago.PublicKey
				if creator, err = parseKey("creator", f.creator); err != nil {
					return p, err
				}
				if mint, err = parseKey("mint", f.mint); err != nil {
					return p, err
				}
				var pool solana.Address
				if pool, err = d.LaunchPool(creator, mint); err == nil {
					p.Pool = pool.PublicKey
				}
			} else {
				p.Pool, err = parseKey(name, f.pool)
			}
		}
		if err != nil {
			return p, err
		}
	}
	return p, nil
}

func printAddress(w io.Writer, label string, addr solana.Address) {
	if label != "" {
		fmt.Fprintf(w, "%-12s ", label)
	}
	fmt.Fprintf(w, "%s %d\n", addr.PublicKey, addr.Bump)
}

func (a *app) newDeriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive program accounts from their seeds",
	}
	for _, k := range launchpool.Kinds {
		cmd.AddCommand(a.newDeriveKindCmd(k))
	}
	cmd.AddCommand(a.newDeriveATACmd(), a.newDerivePoolCmd(), a.newDeriveRawCmd())
	return cmd
}

func (a *app) newDeriveKindCmd(k launchpool.Kind) *cobra.Command {
	var f identityFlags
	names := kindFlags[k]
	cmd := &cobra.Command{
		Use:   k.String(),
		Short: fmt.Sprintf("Derive the %s account", k),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.deriver()
			if err != nil {
				return err
			}
			p, err := f.params(d, names)
			if err != nil {
				return err
			}
			addr, err := d.Derive(k, p)
			if err != nil {
				return err
			}
			printAddress(cmd.OutOrStdout(), "", addr)
			return nil
		},
	}
	// the pool fallback needs creator and mint even when the kind does not
	registered := append([]string{}, names...)
	for _, extra := range []string{"creator", "mint"} {
		if !contains(registered, extra) && contains(names, "pool") {
			registered = append(registered, extra)
		}
	}
	f.register(cmd, registered)
	return cmd
}

func (a *app) newDeriveATACmd() *cobra.Command {
	var owner, mint string
	cmd := &cobra.Command{
		Use:   "ata",
		Short: "Derive the associated token account of an owner for a mint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerKey, err := parseKey("owner", owner)
			if err != nil {
				return err
			}
			mintKey, err := parseKey("mint", mint)
			if err != nil {
				return err
			}
			d, err := a.deriver()
			if err != nil {
				return err
			}
			addr, err := d.AssociatedTokenAccount(ownerKey, mintKey)
			if err != nil {
				return err
			}
			printAddress(cmd.OutOrStdout(), "", addr)
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "token account owner (base58)")
	cmd.Flags().StringVar(&mint, "mint", "", "token mint (base58)")
	return cmd
}

func (a *app) newDerivePoolCmd() *cobra.Command {
	var f identityFlags
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Derive every account of the pool of a creator and mint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.deriver()
			if err != nil {
				return err
			}
			p, err := f.params(d, []string{"creator", "mint"})
			if err != nil {
				return err
			}
			accounts, err := d.PoolAccounts(p.Creator, p.Mint)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printAddress(w, "launchpool", accounts.LaunchPool)
			printAddress(w, "treasurer", accounts.Treasurer)
			fmt.Fprintf(w, "%-12s %s\n", "treasury", accounts.Treasury)
			printAddress(w, "vault", accounts.Vault)
			printAddress(w, "whitelist", accounts.Whitelist)
			printAddress(w, "vestingplan", accounts.VestingPlan)
			return nil
		},
	}
	f.register(cmd, []string{"creator", "mint"})
	return cmd
}

// parseSeed decodes "str:<text>", "hex:<bytes>" or "b58:<base58>".
func parseSeed(s string) ([]byte, error) {
	prefix, value, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("seed %q: want str:, hex: or b58: prefix", s)
	}
	switch prefix {
	case "str":
		return []byte(value), nil
	case "hex":
		return hex.DecodeString(value)
	case "b58":
		return base58.Decode(value)
	default:
		return nil, fmt.Errorf("seed %q: unknown prefix %q", s, prefix)
	}
}

func (a *app) newDeriveRawCmd() *cobra.Command {
	var (
		seeds     []string
		namespace string
	)
	cmd := &cobra.Command{
		Use:   "raw",
		Short: "Derive an address from arbitrary ordered seeds",
		Example: `  launchpool derive raw --seed str:launchpool --seed b58:<creator> --seed b58:<mint>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			programKey := a.cfg.ProgramKey()
			if namespace != "" {
				var err error
				if programKey, err = parseKey("namespace", namespace); err != nil {
					return err
				}
			}
			raw := make([][]byte, 0, len(seeds))
			for _, s := range seeds {
				b, err := parseSeed(s)
				if err != nil {
					return err
				}
				raw = append(raw, b)
			}
			addr, err := solana.FindProgramAddress(raw, programKey)
			if err != nil {
				return err
			}
			printAddress(cmd.OutOrStdout(), "", addr)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&seeds, "seed", nil, "seed, in order (str:, hex: or b58: prefixed)")
	cmd.Flags().StringVar(&namespace, "namespace", "", "program id to derive under (default: configured program)")
	return cmd
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
