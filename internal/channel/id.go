package channel

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// idLength is the maximum number of hex digits kept from the hash.
const idLength = 16

// GenerateID derives the identifier of a channel from its name and URL.
// The two values are concatenated without a separator and hashed with XXH64
// (seed 0). The hash is rendered as lowercase hex without zero padding, so the
// result has between 1 and 16 characters. Distinct inputs can collide.
func GenerateID(name, url string) string {
	id := strconv.FormatUint(xxhash.Sum64String(name+url), 16)
	if len(id) > idLength {
		id = id[:idLength]
	}
	return id
}
