package tx

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMessages(t *testing.T) {
	cases := []struct {
		err  Error
		want string
	}{
		{AlreadyImportedError{}, "Transaction error (Already imported)"},
		{OldError{}, "Transaction error (No longer valid)"},
		{LimitReachedError{}, "Transaction error (Transaction limit reached)"},
		{
			InsufficientGasPriceError{Minimal: big.NewInt(5), Got: big.NewInt(3)},
			"Transaction error (Insufficient gas price. Min=5, Given=3)",
		},
		{
			TooCheapToReplaceError{Prev: big.NewInt(10), New: big.NewInt(9)},
			"Transaction error (Gas price too low to replace, previous tx gas: 10, new tx gas: 9)",
		},
		{
			TooCheapToReplaceError{},
			"Transaction error (Gas price too low to replace, previous tx gas: none, new tx gas: none)",
		},
		{
			InsufficientGasError{Minimal: big.NewInt(21000), Got: big.NewInt(20000)},
			"Transaction error (Insufficient gas. Min=21000, Given=20000)",
		},
		{
			InsufficientBalanceError{Balance: big.NewInt(100), Cost: big.NewInt(200)},
			"Transaction error (Insufficient balance for transaction. Balance=100, Cost=200)",
		},
		{
			GasLimitExceededError{Limit: big.NewInt(8000000), Got: big.NewInt(9000000)},
			"Transaction error (Gas limit exceeded. Limit=8000000, Given=9000000)",
		},
		{
			InvalidGasLimitError{Bounds: OutOfBounds{
				Min: big.NewInt(21000), Max: big.NewInt(8000000), Found: big.NewInt(10),
			}},
			"Transaction error (Invalid gas limit. Min=21000, Max=8000000, Found=10)",
		},
		{
			InvalidGasLimitError{Bounds: OutOfBounds{Found: big.NewInt(10)}},
			"Transaction error (Invalid gas limit. Min=none, Max=none, Found=10)",
		},
		{SenderBannedError{}, "Transaction error (Sender is temporarily banned.)"},
		{RecipientBannedError{}, "Transaction error (Recipient is temporarily banned.)"},
		{CodeBannedError{}, "Transaction error (Contract code is temporarily banned.)"},
		{
			InvalidChainIdError{},
			"Transaction error (Transaction of this chain ID is not allowed on this chain.)",
		},
		{
			NotAllowedError{},
			"Transaction error (Sender does not have permissions to execute this type of transaction)",
		},
		{
			InvalidSignatureError{Detail: "invalid r, s or recovery id"},
			"Transaction error (Transaction has invalid signature: invalid r, s or recovery id.)",
		},
		{TooBigError{}, "Transaction error (Transaction too big)"},
		{
			InvalidRlpError{Detail: "rlp: expected input list for tx.Transaction"},
			"Transaction error (Transaction has invalid RLP structure: rlp: expected input list for tx.Transaction.)",
		},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.err.Error())
	}
}

func TestValidationErrorEquality(t *testing.T) {
	assert.Equal(t,
		InsufficientGasPriceError{Minimal: big.NewInt(5), Got: big.NewInt(3)},
		InsufficientGasPriceError{Minimal: big.NewInt(5), Got: big.NewInt(3)})
	assert.NotEqual(t,
		InsufficientGasPriceError{Minimal: big.NewInt(5), Got: big.NewInt(3)},
		InsufficientGasPriceError{Minimal: big.NewInt(5), Got: big.NewInt(4)})
	assert.Equal(t, AlreadyImportedError{}, AlreadyImportedError{})
	assert.NotEqual(t, Error(SenderBannedError{}), Error(RecipientBannedError{}))
}

func TestVMErrorMessages(t *testing.T) {
	cases := []struct {
		err  VMError
		want string
	}{
		{OutOfGasError{}, "Out of gas"},
		{BadJumpDestinationError{Destination: 0xdead}, "Bad jump destination dead"},
		{BadInstructionError{Instruction: 0xfb}, "Bad instruction fb"},
		{StackUnderflowError{Instruction: "ADD", Wanted: 2, OnStack: 1}, "Stack underflow ADD 2/1"},
		{OutOfStackError{Instruction: "PUSH1", Wanted: 1, Limit: 1024}, "Out of stack PUSH1 1/1024"},
		{BuiltInError{Name: "ecrecover"}, "Built-in failed: ecrecover"},
		{MutableCallInStaticContextError{}, "Mutable call in static context"},
		{InternalVMError{Msg: "trie fault"}, "Internal error: trie fault"},
		{WasmError{Msg: "unreachable"}, "Internal error: unreachable"},
		{OutOfBoundsError{}, "Out of bounds"},
		{RevertedError{}, "Reverted"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.err.Error())
	}
}

func TestCallErrorMessages(t *testing.T) {
	cases := []struct {
		err  CallError
		want string
	}{
		{
			TransactionNotFoundError{},
			"Transaction execution error (Transaction couldn't be found in the chain).",
		},
		{
			StatePrunedError{},
			"Transaction execution error (Couldn't find the transaction block's state in the chain).",
		},
		{
			ExceptionalError{VM: OutOfGasError{}},
			"Transaction execution error (An exception (Out of gas) happened in the execution).",
		},
		{
			StateCorruptError{},
			"Transaction execution error (Stored state found to be corrupted.).",
		},
		{
			ExecutionFailedError{Err: ExecutionError{Msg: "block gas limit reached"}},
			"Transaction execution error (block gas limit reached).",
		},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.err.Error())
	}
}

func TestFromExecutionError(t *testing.T) {
	execErr := ExecutionError{Msg: "not enough base gas"}
	callErr := FromExecutionError(execErr)
	assert.Equal(t, CallError(ExecutionFailedError{Err: execErr}), callErr)
}
