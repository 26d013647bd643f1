// Package idgen produces the identifiers used for generation records and
// persisted sessions.
package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// randomSuffixLength keeps ids created within the same nanosecond unique.
const randomSuffixLength = 6

// NewTimeID returns "<prefix>_<unix-nano base36><random>". Ids sort roughly
// by creation time while the random tail avoids clock collisions.
func NewTimeID(prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('_')
	b.WriteString(strconv.FormatInt(time.Now().UnixNano(), 36))
	b.WriteString(randomChars(randomSuffixLength))
	return b.String()
}

func randomChars(n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(idCharset)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// fall back to a time-derived character rather than panic.
			out[i] = idCharset[int(time.Now().UnixNano())%len(idCharset)]
			continue
		}
		out[i] = idCharset[idx.Int64()]
	}
	return string(out)
}

// ValidateIDFormat reports whether id is "<expectedPrefix>_<suffix>" with a
// non-empty lowercase alphanumeric suffix.
func ValidateIDFormat(id, expectedPrefix string) bool {
	want := fmt.Sprintf("%s_", expectedPrefix)
	if !strings.HasPrefix(id, want) {
		return false
	}
	suffix := id[len(want):]
	if suffix == "" {
		return false
	}
	for _, char := range suffix {
		if !((char >= 'a' && char <= 'z') || (char >= '0' && char <= '9')) {
			return false
		}
	}
	return true
}
