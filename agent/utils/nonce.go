package utils

import (
	"crypto/rand"
	"math"
	"math/big"
	"strconv"

	"github.com/google/uuid"
)

func gen() uint64 {
	m := big.NewInt(math.MaxInt64)
	r, err := rand.Int(rand.Reader, m)
	if err != nil {
		panic("cannot create nonce")
	}
	return r.Uint64()
}

// NewNonce generates new uint64 nonce with Go's crypto package.
func NewNonce() uint64 {
	return gen()
}

// NewNonceStr generates new nonce with Go's crypto package, and returns value
// as string.
func NewNonceStr() string {
	return strconv.FormatUint(NewNonce(), 10)
}

// UUID returns a new random UUID as a string.
func UUID() string {
	return uuid.New().String()
}
