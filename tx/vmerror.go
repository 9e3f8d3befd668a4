package tx

import "fmt"

// VMError is the closed set of low-level execution faults. These are pure
// classification values reported by an execution engine; this package owns
// their definition, equality and formatting only.
type VMError interface {
	error
	isVMError()
}

// OutOfGasError: execution ran out of gas. State reverts to the
// pre-execution state, but the transaction itself was valid: balance is
// still transferred and the nonce still increases.
type OutOfGasError struct{}

func (OutOfGasError) Error() string { return "Out of gas" }
func (OutOfGasError) isVMError()    {}

// BadJumpDestinationError: a jump to a position not marked JUMPDEST.
type BadJumpDestinationError struct {
	Destination uint64 // position the code tried to jump to
}

func (e BadJumpDestinationError) Error() string {
	return fmt.Sprintf("Bad jump destination %x", e.Destination)
}
func (BadJumpDestinationError) isVMError() {}

// BadInstructionError: an unrecognized opcode.
type BadInstructionError struct {
	Instruction byte
}

func (e BadInstructionError) Error() string {
	return fmt.Sprintf("Bad instruction %x", e.Instruction)
}
func (BadInstructionError) isVMError() {}

// StackUnderflowError: not enough stack elements for the instruction.
type StackUnderflowError struct {
	Instruction string // invoked instruction
	Wanted      int    // stack elements the instruction requires
	OnStack     int    // stack elements present
}

func (e StackUnderflowError) Error() string {
	return fmt.Sprintf("Stack underflow %s %d/%d", e.Instruction, e.Wanted, e.OnStack)
}
func (StackUnderflowError) isVMError() {}

// OutOfStackError: execution would exceed the stack limit.
type OutOfStackError struct {
	Instruction string // invoked instruction
	Wanted      int    // stack elements the instruction would push
	Limit       int    // the stack limit
}

func (e OutOfStackError) Error() string {
	return fmt.Sprintf("Out of stack %s %d/%d", e.Instruction, e.Wanted, e.Limit)
}
func (OutOfStackError) isVMError() {}

// BuiltInError: a built-in (precompiled) contract failed on its input.
type BuiltInError struct {
	Name string
}

func (e BuiltInError) Error() string { return "Built-in failed: " + e.Name }
func (BuiltInError) isVMError()      {}

// MutableCallInStaticContextError: a state modification was attempted in a
// static context.
type MutableCallInStaticContextError struct{}

func (MutableCallInStaticContextError) Error() string { return "Mutable call in static context" }
func (MutableCallInStaticContextError) isVMError()    {}

// InternalVMError: an internal fault, likely to cause consensus issues.
type InternalVMError struct {
	Msg string
}

func (e InternalVMError) Error() string { return "Internal error: " + e.Msg }
func (InternalVMError) isVMError()      {}

// WasmError: a wasm runtime fault.
type WasmError struct {
	Msg string
}

func (e WasmError) Error() string { return "Internal error: " + e.Msg }
func (WasmError) isVMError()      {}

// OutOfBoundsError: out of bounds access in RETURNDATACOPY.
type OutOfBoundsError struct{}

func (OutOfBoundsError) Error() string { return "Out of bounds" }
func (OutOfBoundsError) isVMError()    {}

// RevertedError: execution ended with REVERT.
type RevertedError struct{}

func (RevertedError) Error() string { return "Reverted" }
func (RevertedError) isVMError()    {}

// ExecutionError is a failure reported by the execution environment outside
// the VM itself (the executor boundary).
type ExecutionError struct {
	Msg string
}

func (e ExecutionError) Error() string { return e.Msg }

// CallError classifies the outcome of a failed call simulation or replay.
// Every variant renders as "Transaction execution error (<detail>).".
type CallError interface {
	error
	isCallError()
}

func callErr(detail string) string {
	return "Transaction execution error (" + detail + ")."
}

// TransactionNotFoundError: the transaction is not in the chain.
type TransactionNotFoundError struct{}

func (TransactionNotFoundError) Error() string {
	return callErr("Transaction couldn't be found in the chain")
}
func (TransactionNotFoundError) isCallError() {}

// StatePrunedError: the requested block's state is no longer available.
type StatePrunedError struct{}

func (StatePrunedError) Error() string {
	return callErr("Couldn't find the transaction block's state in the chain")
}
func (StatePrunedError) isCallError() {}

// ExceptionalError: no amount of gas avoided a VM exception.
type ExceptionalError struct {
	VM VMError
}

func (e ExceptionalError) Error() string {
	return callErr(fmt.Sprintf("An exception (%s) happened in the execution", e.VM))
}
func (ExceptionalError) isCallError() {}

// StateCorruptError: stored state found to be corrupted.
type StateCorruptError struct{}

func (StateCorruptError) Error() string {
	return callErr("Stored state found to be corrupted.")
}
func (StateCorruptError) isCallError() {}

// ExecutionFailedError: the executor reported a failure.
type ExecutionFailedError struct {
	Err ExecutionError
}

func (e ExecutionFailedError) Error() string { return callErr(e.Err.Error()) }
func (ExecutionFailedError) isCallError()    {}

// FromExecutionError converts an executor failure into a CallError. Total:
// every ExecutionError has a CallError form.
func FromExecutionError(err ExecutionError) CallError {
	return ExecutionFailedError{Err: err}
}
