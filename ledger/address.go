package ledger

import (
	"crypto/sha256"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
)

// accountVersion is the version byte prepended to an account address before
// base58 encoding.
const accountVersion byte = 0

// ErrBadHumanAddress is returned when a human-readable address fails to
// decode or its checksum does not match.
var ErrBadHumanAddress = errors.New("ledger: malformed human-readable address")

// HumanAddress renders an account address in the human-readable form used
// by logs and operator tooling: base58 over a version byte, the 20-byte
// address and a 4-byte double-SHA256 checksum.
func HumanAddress(addr common.Address) string {
	payload := make([]byte, 0, 1+common.AddressLength+4)
	payload = append(payload, accountVersion)
	payload = append(payload, addr.Bytes()...)
	return base58.Encode(append(payload, checksum(payload)...))
}

// ParseHumanAddress decodes a human-readable address back into an account
// address, verifying the version byte and checksum.
func ParseHumanAddress(s string) (common.Address, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return common.Address{}, ErrBadHumanAddress
	}
	if len(raw) != 1+common.AddressLength+4 || raw[0] != accountVersion {
		return common.Address{}, ErrBadHumanAddress
	}
	payload, sum := raw[:1+common.AddressLength], raw[1+common.AddressLength:]
	want := checksum(payload)
	for i := range sum {
		if sum[i] != want[i] {
			return common.Address{}, ErrBadHumanAddress
		}
	}
	return common.BytesToAddress(payload[1:]), nil
}

func checksum(payload []byte) []byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return second[:4]
}
