package launchpool

import (
	"fmt"
)

// ErrorCodeOffset is where anchor starts numbering a program's custom errors.
const ErrorCodeOffset = 6000

// ProgramError is a custom error returned by the launch pool program.
type ProgramError struct {
	Code uint32
	Name string
	Msg  string
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("launchpool error %d (%s): %s", e.Code, e.Name, e.Msg)
}

var programErrors = []struct {
	name string
	msg  string
}{
	{"MutationForbidden", "The authority is not authorized to initialize the program"},
	{"InvalidInstruction", "Invalid instruction"},
	{"InvalidUnlockDate", "Invalid unlock date"},
	{"InvalidAuthority", "Invalid authority"},
	{"InvalidTokenMint", "Invalid token mint"},
	{"InvalidLaunchPoolStatus", "Invalid launch pool status"},
	{"InvalidCurrencyType", "Invalid currency type"},
	{"PoolNotEnough", "Pool not enough to buy"},
	{"InvalidAmount", "Invalid amount"},
	{"MaximumTokenAmountReached", "Maximum token amount reached"},
	{"TimeLockNotExpired", "Time lock not expired"},
	{"NoBump", "Cannot find treasurer account"},
	{"MinimumTokenAmountNotReached", "Minimum token amount not reached"},
	{"InvalidCreator", "Invalid creator"},
	{"PoolSizeRemainingNotEnough", "Pool size remaining not enough"},
	{"InvalidTreasurer", "Invalid treasurer"},
	{"InvalidVault", "Invalid vault"},
	{"InvalidLaunchPool", "Invalid launch pool"},
	{"WhitelistFulled", "White list is full"},
	{"WalletAlreadyAdded", "Wallet already added"},
	{"WalletNotInList", "Wallet not in list"},
	{"NumberCastError", "Unable to cast number into BigInt"},
	{"InvalidWhitelist", "Invalid whitelist"},
	{"InvalidLaunchPoolType", "Invalid launch pool type"},
	{"WalletsMustNotBeEmpty", "Wallets must not be empty"},
	{"WhitelistNotEnoughSpace", "Whitelist not enough space"},
	{"LaunchPoolAlreadyCompleted", "Launch pool already completed"},
	{"UserNotInWhiteList", "User not in whitelist"},
	{"Overflow", "Calculation overflow"},
	{"InvalidVestingPlan", "Invalid vesting plan"},
	{"InvalidScheduleSize", "Invalid schedule size"},
}

// LookupError returns the program error for code, or false when code is not
// one of the program's custom errors.
func LookupError(code uint32) (*ProgramError, bool) {
	if code < ErrorCodeOffset || code >= ErrorCodeOffset+uint32(len(programErrors)) {
		return nil, false
	}
	e := programErrors[code-ErrorCodeOffset]
	return &ProgramError{Code: code, Name: e.name, Msg: e.msg}, true
}

// LookupErrorByName is LookupError keyed by the error's name.
func LookupErrorByName(name string) (*ProgramError, bool) {
	for i, e := range programErrors {
		if e.name == name {
			return &ProgramError{Code: ErrorCodeOffset + uint32(i), Name: e.name, Msg: e.msg}, true
		}
	}
	return nil, false
}
