package tx

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// SigningHash computes the digest the sender's key signed: the keccak256
// hash of the RLP list of the six unsigned fields. A non-nil chainID
// extends the list with (chainID, 0, 0) per EIP-155, so a signature made
// for one chain never verifies under another.
func SigningHash(t *Transaction, chainID *big.Int) common.Hash {
	fields := []interface{}{t.Nonce, t.GasPrice, t.Gas, t.To, t.Value, t.Data}
	if chainID != nil {
		fields = append(fields, chainID, uint(0), uint(0))
	}
	enc, err := rlp.EncodeToBytes(fields)
	if err != nil {
		panic(err) // the field list above always encodes
	}
	return crypto.Keccak256Hash(enc)
}

// DecodeV splits the wire v value into the curve recovery id and, for
// replay-protected signatures, the originating chain id. The two accepted
// conventions are v in {27, 28} (legacy, nil chain id) and
// v = chainID*2 + 35 + recoveryID (EIP-155). Anything else is rejected.
// The raw multiplexed integer never travels further than this boundary.
func DecodeV(v *big.Int) (recoveryID byte, chainID *big.Int, err error) {
	if v.BitLen() <= 64 {
		switch n := v.Uint64(); {
		case n == 27 || n == 28:
			return byte(n - 27), nil, nil
		case n >= 35:
			return byte((n - 35) % 2), new(big.Int).SetUint64((n - 35) / 2), nil
		default:
			return 0, nil, InvalidSignatureError{Detail: fmt.Sprintf("invalid v value %d", n)}
		}
	}
	// Beyond 64 bits the value can only be EIP-155 with a huge chain id.
	rest := new(big.Int).Sub(v, big.NewInt(35))
	return byte(rest.Bit(0)), rest.Rsh(rest, 1), nil
}

// EncodeV is the exact inverse of DecodeV, used when re-serializing.
// recoveryID must be 0 or 1.
func EncodeV(recoveryID byte, chainID *big.Int) *big.Int {
	if recoveryID > 1 {
		panic(fmt.Sprintf("recovery id out of range: %d", recoveryID))
	}
	if chainID == nil {
		return big.NewInt(int64(27 + recoveryID))
	}
	v := new(big.Int).Lsh(chainID, 1)
	return v.Add(v, big.NewInt(int64(35+recoveryID)))
}

// RecoverSender performs secp256k1 public-key recovery over the signing
// digest and derives the signer's address (the low 160 bits of the keccak
// hash of the uncompressed public key). It fails with InvalidSignatureError
// when r or s is zero or exceeds the curve order, or when no valid curve
// point matches. High-s signatures are accepted; malleability policy
// belongs to the pool, not here.
func RecoverSender(sighash common.Hash, r, s *big.Int, recoveryID byte) (common.Address, error) {
	if recoveryID > 1 || !crypto.ValidateSignatureValues(recoveryID, r, s, false) {
		return common.Address{}, InvalidSignatureError{Detail: "invalid r, s or recovery id"}
	}
	// ValidateSignatureValues bounds r and s below the curve order, so both
	// fit 32 bytes here.
	sig := make([]byte, crypto.SignatureLength)
	rb, sb := r.Bytes(), s.Bytes()
	copy(sig[32-len(rb):32], rb)
	copy(sig[64-len(sb):64], sb)
	sig[crypto.RecoveryIDOffset] = recoveryID

	pub, err := crypto.Ecrecover(sighash[:], sig)
	if err != nil {
		return common.Address{}, errInvalidSignature(err)
	}
	if len(pub) == 0 || pub[0] != 4 {
		return common.Address{}, InvalidSignatureError{Detail: "recovered an invalid public key"}
	}
	var addr common.Address
	copy(addr[:], crypto.Keccak256(pub[1:])[12:])
	return addr, nil
}

// SignedTransaction is a transaction whose signature has been verified:
// construction recovers the sender and derives the chain id, so holders
// never see a half-valid instance. The value is immutable after
// construction and safe to share across goroutines.
type SignedTransaction struct {
	Transaction

	sender  common.Address
	chainID *big.Int // nil when the signature carries no replay protection
}

// NewSignedTransaction is the verifying constructor. It decodes v into
// (recovery id, chain id), computes the chain-id-aware signing digest,
// recovers the sender and returns the finished value, or an error from the
// validation taxonomy.
func NewSignedTransaction(t *Transaction) (*SignedTransaction, error) {
	if t.R == nil || t.S == nil || t.V == nil {
		return nil, InvalidSignatureError{Detail: "missing v, r or s"}
	}
	recoveryID, chainID, err := DecodeV(t.V)
	if err != nil {
		return nil, err
	}
	sender, err := RecoverSender(SigningHash(t, chainID), t.R, t.S, recoveryID)
	if err != nil {
		return nil, err
	}
	return &SignedTransaction{Transaction: *t, sender: sender, chainID: chainID}, nil
}

// DecodeSigned decodes one RLP-encoded transaction and verifies its
// signature in a single step.
func DecodeSigned(input []byte) (*SignedTransaction, error) {
	t, err := DecodeTransaction(input)
	if err != nil {
		return nil, err
	}
	return NewSignedTransaction(t)
}

// Sender returns the recovered signer address.
func (st *SignedTransaction) Sender() common.Address {
	return st.sender
}

// ChainID returns the chain id embedded in the signature, or nil for
// legacy pre-EIP-155 transactions.
func (st *SignedTransaction) ChainID() *big.Int {
	return st.chainID
}

// Protected reports whether the signature is replay-protected.
func (st *SignedTransaction) Protected() bool {
	return st.chainID != nil
}
