package address

import (
	"fmt"
	"strings"
)

// charset maps 5-bit values to bech32 characters (BIP-173).
const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// charsetRev maps bech32 characters back to their 5-bit values. -1 = invalid.
var charsetRev [128]int8

func init() {
	for i := range charsetRev {
		charsetRev[i] = -1
	}
	for i, c := range charset {
		charsetRev[c] = int8(i)
	}
}

// bech32Decode decodes a bech32 string into its human-readable part and
// payload bytes. The form only ever decodes; it renders addresses it was
// given, it never mints them.
func bech32Decode(s string) (string, []byte, error) {
	if len(s) == 0 {
		return "", nil, fmt.Errorf("bech32: empty string")
	}

	hasUpper := strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	hasLower := strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz")
	if hasUpper && hasLower {
		return "", nil, fmt.Errorf("bech32: mixed case")
	}
	s = strings.ToLower(s)

	sep := strings.LastIndexByte(s, '1')
	if sep < 1 {
		return "", nil, fmt.Errorf("bech32: missing separator")
	}
	hrp, dataStr := s[:sep], s[sep+1:]
	if len(dataStr) < checksumLen {
		return "", nil, fmt.Errorf("bech32: too short")
	}

	data5 := make([]byte, len(dataStr))
	for i := 0; i < len(dataStr); i++ {
		c := dataStr[i]
		v := int8(-1)
		if c < 128 {
			v = charsetRev[c]
		}
		if v < 0 {
			return "", nil, fmt.Errorf("bech32: invalid character %q", c)
		}
		data5[i] = byte(v)
	}

	if polymod(append(hrpExpand(hrp), data5...)) != 1 {
		return "", nil, fmt.Errorf("bech32: invalid checksum")
	}
	data5 = data5[:len(data5)-checksumLen]

	payload, err := regroup5to8(data5)
	if err != nil {
		return "", nil, fmt.Errorf("bech32: %w", err)
	}
	return hrp, payload, nil
}

// regroup5to8 packs 5-bit groups back into bytes. Leftover bits must be
// zero padding and never amount to a whole extra group.
func regroup5to8(groups []byte) ([]byte, error) {
	out := make([]byte, 0, len(groups)*5/8)
	acc := uint32(0)
	bits := uint(0)
	for _, g := range groups {
		acc = acc<<5 | uint32(g)
		bits += 5
		for bits >= 8 {
			bits -= 8
			out = append(out, byte(acc>>bits))
		}
	}
	if bits >= 5 || acc&(1<<bits-1) != 0 {
		return nil, fmt.Errorf("non-zero padding")
	}
	return out, nil
}

// checksumLen is the number of checksum characters at the end of every
// bech32 string.
const checksumLen = 6

// polymod is the bech32 checksum polynomial over expanded HRP + data.
func polymod(values []byte) uint32 {
	gen := [5]uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}
	chk := uint32(1)
	for _, v := range values {
		top := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := 0; i < 5; i++ {
			if (top>>uint(i))&1 == 1 {
				chk ^= gen[i]
			}
		}
	}
	return chk
}

// hrpExpand spreads the HRP into the high and low halves the checksum
// covers.
func hrpExpand(hrp string) []byte {
	out := make([]byte, 0, len(hrp)*2+1)
	for i := 0; i < len(hrp); i++ {
		out = append(out, hrp[i]>>5)
	}
	out = append(out, 0)
	for i := 0; i < len(hrp); i++ {
		out = append(out, hrp[i]&31)
	}
	return out
}
