// Package pool is the admission boundary in front of execution: it decodes
// and verifies incoming raw transactions and rejects them with a typed
// validation error before they ever reach a block. It owns no chain state;
// balances and nonces come from a caller-supplied StateReader.
package pool

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"

	"github.com/nando-os/ethtx/tx"
)

// StateReader exposes the account state the pool validates against.
type StateReader interface {
	// Balance returns the account's balance in wei.
	Balance(addr common.Address) *big.Int
	// Nonce returns the next expected nonce for the account.
	Nonce(addr common.Address) *big.Int
}

// PermissionFn decides whether a sender may submit this transaction at
// all; returning false maps to the NotAllowed rejection.
type PermissionFn func(signed *tx.SignedTransaction) bool

type accountKey struct {
	sender common.Address
	nonce  string // decimal; big.Int is not a map key
}

// Pool queues verified transactions and applies the admission policy.
// Safe for concurrent use.
type Pool struct {
	cfg   Config
	state StateReader

	mu               sync.Mutex
	byHash           map[common.Hash]*tx.SignedTransaction
	byAccount        map[accountKey]*tx.SignedTransaction
	bannedSenders    map[common.Address]struct{}
	bannedRecipients map[common.Address]struct{}
	bannedCode       map[common.Hash]struct{}
	permission       PermissionFn
}

// New creates a pool with the given admission policy and state source.
func New(cfg Config, state StateReader) *Pool {
	return &Pool{
		cfg:              cfg,
		state:            state,
		byHash:           make(map[common.Hash]*tx.SignedTransaction),
		byAccount:        make(map[accountKey]*tx.SignedTransaction),
		bannedSenders:    make(map[common.Address]struct{}),
		bannedRecipients: make(map[common.Address]struct{}),
		bannedCode:       make(map[common.Hash]struct{}),
	}
}

// SetPermission installs the permission hook. A nil hook allows everyone.
func (p *Pool) SetPermission(fn PermissionFn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.permission = fn
}

// BanSender rejects all future transactions from addr.
func (p *Pool) BanSender(addr common.Address) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bannedSenders[addr] = struct{}{}
}

// BanRecipient rejects all future transactions sent to addr.
func (p *Pool) BanRecipient(addr common.Address) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bannedRecipients[addr] = struct{}{}
}

// BanCode rejects contract creations whose init code hashes to codeHash.
func (p *Pool) BanCode(codeHash common.Hash) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bannedCode[codeHash] = struct{}{}
}

// Len returns the number of queued transactions.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byHash)
}

// Get returns a queued transaction by hash, or nil.
func (p *Pool) Get(hash common.Hash) *tx.SignedTransaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.byHash[hash]
}

// Add decodes, verifies and admits one raw transaction. On success the
// verified transaction is queued and returned; on failure the returned
// error is always a variant of the tx validation taxonomy.
func (p *Pool) Add(raw []byte) (*tx.SignedTransaction, error) {
	if len(raw) > p.cfg.MaxTxSize {
		return nil, tx.TooBigError{}
	}

	signed, err := tx.DecodeSigned(raw)
	if err != nil {
		log.Debug("Transaction rejected before admission", "err", err)
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.admit(signed); err != nil {
		log.Debug("Transaction rejected",
			"hash", signed.Hash(), "sender", signed.Sender(), "err", err)
		return nil, err
	}

	hash := signed.Hash()
	key := accountKeyOf(signed)
	if prev, replaced := p.byAccount[key]; replaced {
		delete(p.byHash, prev.Hash())
	}
	p.byHash[hash] = signed
	p.byAccount[key] = signed
	log.Info("Transaction admitted",
		"hash", hash, "sender", signed.Sender(), "nonce", signed.Nonce)
	return signed, nil
}

// admit runs the policy checks in order, cheapest first. Caller holds the
// lock.
func (p *Pool) admit(signed *tx.SignedTransaction) error {
	if signed.Protected() && p.cfg.ChainID != nil && p.cfg.ChainID.Cmp(signed.ChainID()) != 0 {
		return tx.InvalidChainIdError{}
	}

	if _, banned := p.bannedSenders[signed.Sender()]; banned {
		return tx.SenderBannedError{}
	}
	if signed.IsCreate() {
		if _, banned := p.bannedCode[crypto.Keccak256Hash(signed.Data)]; banned {
			return tx.CodeBannedError{}
		}
	} else {
		if _, banned := p.bannedRecipients[*signed.To]; banned {
			return tx.RecipientBannedError{}
		}
	}

	if p.permission != nil && !p.permission(signed) {
		return tx.NotAllowedError{}
	}

	if minimal := intrinsicGas(signed); signed.Gas.Cmp(minimal) < 0 {
		return tx.InsufficientGasError{Minimal: minimal, Got: signed.Gas}
	}
	if p.cfg.BlockGasLimit != nil && signed.Gas.Cmp(p.cfg.BlockGasLimit) > 0 {
		return tx.GasLimitExceededError{Limit: p.cfg.BlockGasLimit, Got: signed.Gas}
	}
	if p.cfg.MaxTxGas != nil && signed.Gas.Cmp(p.cfg.MaxTxGas) > 0 {
		return tx.InvalidGasLimitError{Bounds: tx.OutOfBounds{
			Max:   p.cfg.MaxTxGas,
			Found: signed.Gas,
		}}
	}

	if p.cfg.MinGasPrice != nil && signed.GasPrice.Cmp(p.cfg.MinGasPrice) < 0 {
		return tx.InsufficientGasPriceError{Minimal: p.cfg.MinGasPrice, Got: signed.GasPrice}
	}

	balance := p.state.Balance(signed.Sender())
	if cost, affordable := affordable(signed, balance); !affordable {
		return tx.InsufficientBalanceError{Balance: balance, Cost: cost}
	}

	if p.state.Nonce(signed.Sender()).Cmp(signed.Nonce) > 0 {
		return tx.OldError{}
	}

	if _, dup := p.byHash[signed.Hash()]; dup {
		return tx.AlreadyImportedError{}
	}
	if prev, occupied := p.byAccount[accountKeyOf(signed)]; occupied {
		// Same sender and nonce: only a strictly better gas price replaces.
		if signed.GasPrice.Cmp(prev.GasPrice) <= 0 {
			return tx.TooCheapToReplaceError{Prev: prev.GasPrice, New: signed.GasPrice}
		}
		return nil // replacement does not count against capacity
	}

	if len(p.byHash) >= p.cfg.Limit {
		return tx.LimitReachedError{}
	}
	return nil
}

// affordable reports whether balance covers value + gas*gasPrice. The
// arithmetic runs on uint256; a product overflowing 256 bits cannot be
// affordable by any balance.
func affordable(signed *tx.SignedTransaction, balance *big.Int) (*big.Int, bool) {
	cost := new(big.Int).Mul(signed.Gas, signed.GasPrice)
	cost.Add(cost, signed.Value)

	balanceU, overflow := uint256.FromBig(balance)
	if overflow {
		return cost, true
	}
	costU, overflow := uint256.FromBig(cost)
	if overflow {
		return cost, false
	}
	return cost, costU.Cmp(balanceU) <= 0
}

// intrinsicGas is the minimal gas any transaction must declare: the base
// transfer (or creation) charge plus the payload charge.
func intrinsicGas(signed *tx.SignedTransaction) *big.Int {
	gas := new(big.Int)
	if signed.IsCreate() {
		gas.SetUint64(params.TxGasContractCreation)
	} else {
		gas.SetUint64(params.TxGas)
	}
	var zero, nonzero uint64
	for _, b := range signed.Data {
		if b == 0 {
			zero++
		} else {
			nonzero++
		}
	}
	payload := new(big.Int).SetUint64(zero * params.TxDataZeroGas)
	payload.Add(payload, new(big.Int).SetUint64(nonzero*params.TxDataNonZeroGasFrontier))
	return gas.Add(gas, payload)
}

func accountKeyOf(signed *tx.SignedTransaction) accountKey {
	return accountKey{sender: signed.Sender(), nonce: signed.Nonce.String()}
}
