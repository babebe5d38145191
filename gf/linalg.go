package gf

import (
	"math/bits"
)

// LinearlyIndependent reports whether the given elements are linearly
// independent over GF(2), by Gaussian elimination on their bit rows.
func LinearlyIndependent(elems []Element) bool {

	var pivots [64]uint64

	for _, e := range elems {

		v := uint64(e)

		for v != 0 {
			lead := bits.Len64(v) - 1
			if pivots[lead] == 0 {
				pivots[lead] = v
				break
			}
			v ^= pivots[lead]
		}

		if v == 0 {
			return false
		}
	}

	return true
}
