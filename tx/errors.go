package tx

import (
	"fmt"
	"math/big"
)

// Error is the closed set of reasons a transaction is rejected before (or
// instead of) execution. Every variant renders as
// "Transaction error (<detail>)" and carries exactly the data its message
// needs. Variants compare by structural equality.
type Error interface {
	error
	isTransactionError()
}

func txErr(format string, args ...interface{}) string {
	return "Transaction error (" + fmt.Sprintf(format, args...) + ")"
}

// optBig renders an optional 256-bit value inside error messages.
func optBig(v *big.Int) string {
	if v == nil {
		return "none"
	}
	return v.String()
}

// AlreadyImportedError: the transaction is already in the queue.
type AlreadyImportedError struct{}

func (AlreadyImportedError) Error() string        { return txErr("Already imported") }
func (AlreadyImportedError) isTransactionError() {}

// OldError: the transaction is no longer valid, state already has a higher
// nonce for the sender.
type OldError struct{}

func (OldError) Error() string        { return txErr("No longer valid") }
func (OldError) isTransactionError() {}

// LimitReachedError: the queue is full.
type LimitReachedError struct{}

func (LimitReachedError) Error() string        { return txErr("Transaction limit reached") }
func (LimitReachedError) isTransactionError() {}

// InsufficientGasPriceError: gas price below the acceptance threshold.
type InsufficientGasPriceError struct {
	Minimal *big.Int // minimal expected gas price
	Got     *big.Int // transaction gas price
}

func (e InsufficientGasPriceError) Error() string {
	return txErr("Insufficient gas price. Min=%v, Given=%v", e.Minimal, e.Got)
}
func (InsufficientGasPriceError) isTransactionError() {}

// TooCheapToReplaceError: a transaction with the same sender and nonce is
// already queued at a gas price this one does not beat.
type TooCheapToReplaceError struct {
	Prev *big.Int // previous transaction's gas price, if known
	New  *big.Int // new transaction's gas price, if known
}

func (e TooCheapToReplaceError) Error() string {
	return txErr("Gas price too low to replace, previous tx gas: %s, new tx gas: %s",
		optBig(e.Prev), optBig(e.New))
}
func (TooCheapToReplaceError) isTransactionError() {}

// InsufficientGasError: declared gas below the minimal (intrinsic) gas
// requirement.
type InsufficientGasError struct {
	Minimal *big.Int // minimal expected gas
	Got     *big.Int // transaction gas
}

func (e InsufficientGasError) Error() string {
	return txErr("Insufficient gas. Min=%v, Given=%v", e.Minimal, e.Got)
}
func (InsufficientGasError) isTransactionError() {}

// InsufficientBalanceError: the sender cannot pay for the transaction.
type InsufficientBalanceError struct {
	Balance *big.Int // sender's balance
	Cost    *big.Int // transaction cost
}

func (e InsufficientBalanceError) Error() string {
	return txErr("Insufficient balance for transaction. Balance=%v, Cost=%v", e.Balance, e.Cost)
}
func (InsufficientBalanceError) isTransactionError() {}

// GasLimitExceededError: declared gas above the current block gas limit.
type GasLimitExceededError struct {
	Limit *big.Int // current gas limit
	Got   *big.Int // declared transaction gas
}

func (e GasLimitExceededError) Error() string {
	return txErr("Gas limit exceeded. Limit=%v, Given=%v", e.Limit, e.Got)
}
func (GasLimitExceededError) isTransactionError() {}

// OutOfBounds describes a value outside its permitted range. Nil bounds are
// open ends.
type OutOfBounds struct {
	Min   *big.Int
	Max   *big.Int
	Found *big.Int
}

func (b OutOfBounds) String() string {
	return fmt.Sprintf("Min=%s, Max=%s, Found=%s", optBig(b.Min), optBig(b.Max), optBig(b.Found))
}

// InvalidGasLimitError: declared gas outside the configured bounds.
type InvalidGasLimitError struct {
	Bounds OutOfBounds
}

func (e InvalidGasLimitError) Error() string {
	return txErr("Invalid gas limit. %s", e.Bounds)
}
func (InvalidGasLimitError) isTransactionError() {}

// SenderBannedError: the sender address is banned.
type SenderBannedError struct{}

func (SenderBannedError) Error() string        { return txErr("Sender is temporarily banned.") }
func (SenderBannedError) isTransactionError() {}

// RecipientBannedError: the recipient address is banned.
type RecipientBannedError struct{}

func (RecipientBannedError) Error() string        { return txErr("Recipient is temporarily banned.") }
func (RecipientBannedError) isTransactionError() {}

// CodeBannedError: the contract creation code is banned.
type CodeBannedError struct{}

func (CodeBannedError) Error() string        { return txErr("Contract code is temporarily banned.") }
func (CodeBannedError) isTransactionError() {}

// InvalidChainIdError: the signature's chain id does not belong on this
// chain.
type InvalidChainIdError struct{}

func (InvalidChainIdError) Error() string {
	return txErr("Transaction of this chain ID is not allowed on this chain.")
}
func (InvalidChainIdError) isTransactionError() {}

// NotAllowedError: the sender lacks permission for this transaction type.
type NotAllowedError struct{}

func (NotAllowedError) Error() string {
	return txErr("Sender does not have permissions to execute this type of transaction")
}
func (NotAllowedError) isTransactionError() {}

// InvalidSignatureError: the signature failed cryptographic validation.
type InvalidSignatureError struct {
	Detail string
}

func (e InvalidSignatureError) Error() string {
	return txErr("Transaction has invalid signature: %s.", e.Detail)
}
func (InvalidSignatureError) isTransactionError() {}

// TooBigError: the encoded transaction exceeds the size limit.
type TooBigError struct{}

func (TooBigError) Error() string        { return txErr("Transaction too big") }
func (TooBigError) isTransactionError() {}

// InvalidRlpError: the byte encoding is structurally malformed.
type InvalidRlpError struct {
	Detail string
}

func (e InvalidRlpError) Error() string {
	return txErr("Transaction has invalid RLP structure: %s.", e.Detail)
}
func (InvalidRlpError) isTransactionError() {}

// errInvalidSignature maps a crypto-layer failure into the taxonomy. Total:
// every crypto error becomes an InvalidSignatureError, none are dropped.
func errInvalidSignature(err error) InvalidSignatureError {
	return InvalidSignatureError{Detail: err.Error()}
}

// errInvalidRlp maps a codec failure into the taxonomy, keeping the codec's
// diagnostic as context.
func errInvalidRlp(err error) InvalidRlpError {
	return InvalidRlpError{Detail: err.Error()}
}
