package convert

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/you/dex-scanner/internal/types"
)

// toChecksumAddress applies EIP-55 mixed-case checksumming to a hex address.
func toChecksumAddress(addr string) (string, error) {
	a := strings.TrimSpace(addr)
	if a == "" {
		return "", fmt.Errorf("empty address")
	}
	if strings.HasPrefix(a, "0x") || strings.HasPrefix(a, "0X") {
		a = a[2:]
	}
	if len(a) != 40 {
		return "", fmt.Errorf("bad hex length: %d", len(a))
	}
	if _, err := hex.DecodeString(a); err != nil {
		return "", fmt.Errorf("not hex: %w", err)
	}

	lower := strings.ToLower(a)
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	hash := h.Sum(nil)
	hexhash := make([]byte, 64)
	hex.Encode(hexhash, hash)

	out := make([]byte, 40)
	for i := 0; i < 40; i++ {
		ch := lower[i]
		if ch >= 'a' && ch <= 'f' {
			var nibble byte
			if hexhash[i] >= '0' && hexhash[i] <= '9' {
				nibble = hexhash[i] - '0'
			} else {
				nibble = 10 + (hexhash[i] - 'a')
			}
			if nibble >= 8 {
				ch -= 'a' - 'A'
			}
		}
		out[i] = ch
	}
	return "0x" + string(out), nil
}

// DisplayAddress renders an address for the dashboard: EVM addresses get
// EIP-55 checksum casing, Solana base58 passes through. Wire identity is
// never touched — matching between REST and push payloads stays byte-exact.
func DisplayAddress(chain types.Chain, addr string) string {
	if !chain.EVM() {
		return addr
	}
	cs, err := toChecksumAddress(addr)
	if err != nil {
		return addr
	}
	return cs
}
