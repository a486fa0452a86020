// Package solana holds the program-derived-address primitive and the rpc and
// account-layout helpers shared by the program packages.
package solana

import "github.com/gagliardetto/solana-go"

// Filter represents a filter for querying accounts by a public key at an offset
type Filter struct {
	Owner  solana.PublicKey // Key to match
	Offset uint64           // Byte offset of the key in account data
}
