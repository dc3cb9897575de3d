// Package pagehash fingerprints the record content of one scraped table
// page. The pagination loop compares consecutive page fingerprints to detect
// a "next" click that did not actually advance the table, which would
// otherwise loop forever on layouts whose next control never disables.
package pagehash

import (
	"hash/fnv"
	"math/bits"

	"github.com/proplens/proplens/models"
)

// Fingerprint computes a 64-bit SimHash over the field values of all
// records on a page. Row order matters: each token is salted with its row
// index, so two pages holding the same records in a different order hash
// differently. An empty page hashes to 0.
func Fingerprint(txs []models.Transaction) uint64 {
	var vector [64]int
	tokens := 0

	for i, tx := range txs {
		for _, field := range []string{
			tx.Date, tx.Bedrooms, tx.Size, tx.Price, tx.PricePerSqft,
			tx.FloorLevel, tx.BuildStatus, tx.Lease, tx.Address, tx.Floor,
		} {
			if field == "" {
				continue
			}
			tokens++

			h := fnv.New64a()
			h.Write([]byte{byte(i), byte(i >> 8)})
			h.Write([]byte(field))
			hash := h.Sum64()

			for b := 0; b < 64; b++ {
				if hash&(1<<uint(b)) != 0 {
					vector[b]++
				} else {
					vector[b]--
				}
			}
		}
	}

	if tokens == 0 {
		return 0
	}

	var fingerprint uint64
	for b := 0; b < 64; b++ {
		if vector[b] > 0 {
			fingerprint |= 1 << uint(b)
		}
	}
	return fingerprint
}

// Distance returns the Hamming distance between two page fingerprints.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Same reports whether two fingerprints describe identical page content.
func Same(a, b uint64) bool {
	return a == b && a != 0
}
