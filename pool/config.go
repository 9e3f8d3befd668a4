package pool

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
)

const (
	envChainID       = "TXPOOL_CHAIN_ID"
	envMinGasPrice   = "TXPOOL_MIN_GAS_PRICE"   // wei
	envBlockGasLimit = "TXPOOL_BLOCK_GAS_LIMIT" // gas units
	envMaxTxGas      = "TXPOOL_MAX_TX_GAS"      // gas units, per-transaction pool bound
	envLimit         = "TXPOOL_LIMIT"           // number of queued transactions
	envMaxTxSize     = "TXPOOL_MAX_TX_SIZE"     // encoded bytes

	defaultBlockGasLimit = 8_000_000
	defaultLimit         = 8192
	defaultMaxTxSize     = 300 * 1024
)

// Config holds the admission policy of a pool. The zero value of an
// optional field disables the corresponding check.
type Config struct {
	// ChainID the pool accepts replay-protected transactions for. Nil
	// accepts any chain id; legacy unprotected transactions are always
	// accepted.
	ChainID *big.Int

	// MinGasPrice is the acceptance threshold in wei. Nil or zero accepts
	// any price.
	MinGasPrice *big.Int

	// BlockGasLimit rejects transactions declaring more gas than a block
	// can hold.
	BlockGasLimit *big.Int

	// MaxTxGas is the pool's own per-transaction gas bound, at most
	// BlockGasLimit. Nil disables the bound.
	MaxTxGas *big.Int

	// Limit is the queue capacity in transactions.
	Limit int

	// MaxTxSize is the largest accepted encoding in bytes.
	MaxTxSize int
}

// DefaultConfig returns the policy used when no environment is set.
func DefaultConfig() Config {
	return Config{
		BlockGasLimit: big.NewInt(defaultBlockGasLimit),
		Limit:         defaultLimit,
		MaxTxSize:     defaultMaxTxSize,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for anything unset. Malformed numeric values are an error
// rather than a silent fallback: a mistyped admission policy should not
// quietly become a permissive one.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if s := os.Getenv(envChainID); s != "" {
		id, ok := new(big.Int).SetString(s, 10)
		if !ok || id.Sign() < 0 {
			return Config{}, fmt.Errorf("invalid %s: %q", envChainID, s)
		}
		cfg.ChainID = id
	}
	if s := os.Getenv(envMinGasPrice); s != "" {
		price, ok := new(big.Int).SetString(s, 10)
		if !ok || price.Sign() < 0 {
			return Config{}, fmt.Errorf("invalid %s: %q", envMinGasPrice, s)
		}
		cfg.MinGasPrice = price
	}
	if s := os.Getenv(envBlockGasLimit); s != "" {
		limit, ok := new(big.Int).SetString(s, 10)
		if !ok || limit.Sign() <= 0 {
			return Config{}, fmt.Errorf("invalid %s: %q", envBlockGasLimit, s)
		}
		cfg.BlockGasLimit = limit
	}
	if s := os.Getenv(envMaxTxGas); s != "" {
		maxGas, ok := new(big.Int).SetString(s, 10)
		if !ok || maxGas.Sign() <= 0 {
			return Config{}, fmt.Errorf("invalid %s: %q", envMaxTxGas, s)
		}
		cfg.MaxTxGas = maxGas
	}
	if s := os.Getenv(envLimit); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid %s: %q", envLimit, s)
		}
		cfg.Limit = n
	}
	if s := os.Getenv(envMaxTxSize); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid %s: %q", envMaxTxSize, s)
		}
		cfg.MaxTxSize = n
	}

	if cfg.MaxTxGas != nil && cfg.BlockGasLimit != nil && cfg.MaxTxGas.Cmp(cfg.BlockGasLimit) > 0 {
		return Config{}, fmt.Errorf("%s exceeds %s", envMaxTxGas, envBlockGasLimit)
	}
	return cfg, nil
}
