package tx

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// Transaction is the decoded form of a signed legacy transaction: the six
// unsigned core fields plus the signature triple, exactly in wire order.
// All integer fields keep full 256-bit range; nothing is truncated at the
// decode boundary.
type Transaction struct {
	Nonce    *big.Int
	GasPrice *big.Int
	Gas      *big.Int
	To       *common.Address `rlp:"nil"` // nil means contract creation
	Value    *big.Int
	Data     []byte
	V, R, S  *big.Int
}

// DecodeTransaction decodes a single RLP-encoded transaction. Every codec
// failure (truncated input, trailing bytes, non-canonical integers, wrong
// item count) comes back as InvalidRlpError with the codec's diagnostic
// preserved; malformed input never panics.
func DecodeTransaction(input []byte) (*Transaction, error) {
	var t Transaction
	if err := rlp.DecodeBytes(input, &t); err != nil {
		return nil, errInvalidRlp(err)
	}
	return &t, nil
}

// Encode returns the RLP encoding of the transaction, including its
// signature fields. DecodeTransaction(t.Encode()) round-trips.
func (t *Transaction) Encode() ([]byte, error) {
	return rlp.EncodeToBytes(t)
}

// IsCreate reports whether the transaction creates a contract rather than
// calling an existing account.
func (t *Transaction) IsCreate() bool {
	return t.To == nil
}

// Hash returns the keccak256 hash of the signed RLP encoding, the identity
// of the transaction on the wire.
func (t *Transaction) Hash() common.Hash {
	enc, err := rlp.EncodeToBytes(t)
	if err != nil {
		// Only reachable with a locally corrupted value; an already-decoded
		// transaction always re-encodes.
		panic(err)
	}
	return crypto.Keccak256Hash(enc)
}
