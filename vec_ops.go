package antt

import (
	"fmt"
	"unsafe"

	"github.com/Pro7ech/antt/gf"
)

// AddVec evaluates p3 = p1 + p2 coefficient-wise. Addition in
// characteristic 2 is XOR and does not depend on the field modulus.
// p1, p2, p3 must be of the same size.
func AddVec(p1, p2, p3 []gf.Element) {

	N := len(p1)

	// Sanity check
	if len(p2) != N || len(p3) != N {
		panic(fmt.Errorf("len(p1)=%d len(p2)=%d len(p3)=%d", N, len(p2), len(p3)))
	}

	for j := 0; j < N-(N&7); j = j + 8 {

		/* #nosec G103 -- iteration number is ensured to be a multiple of 8*/
		x := (*[8]gf.Element)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- iteration number is ensured to be a multiple of 8*/
		y := (*[8]gf.Element)(unsafe.Pointer(&p2[j]))
		/* #nosec G103 -- iteration number is ensured to be a multiple of 8*/
		z := (*[8]gf.Element)(unsafe.Pointer(&p3[j]))

		z[0] = x[0] ^ y[0]
		z[1] = x[1] ^ y[1]
		z[2] = x[2] ^ y[2]
		z[3] = x[3] ^ y[3]
		z[4] = x[4] ^ y[4]
		z[5] = x[5] ^ y[5]
		z[6] = x[6] ^ y[6]
		z[7] = x[7] ^ y[7]
	}

	for i := N - (N & 7); i < N; i++ {
		p3[i] = p1[i] ^ p2[i]
	}
}

// MulScalarVec evaluates p3 = p1 * scalar coefficient-wise.
// p1, p3 must be of the same size.
func MulScalarVec(p1 []gf.Element, scalar gf.Element, p3 []gf.Element, f *gf.Field) {

	N := len(p1)

	// Sanity check
	if len(p3) != N {
		panic(fmt.Errorf("len(p1)=%d len(p3)=%d", N, len(p3)))
	}

	for i := 0; i < N; i++ {
		p3[i] = f.Mul(p1[i], scalar)
	}
}

// MulScalarThenAddVec evaluates p3 = p3 + p1 * scalar coefficient-wise.
// p1, p3 must be of the same size.
func MulScalarThenAddVec(p1 []gf.Element, scalar gf.Element, p3 []gf.Element, f *gf.Field) {

	N := len(p1)

	// Sanity check
	if len(p3) != N {
		panic(fmt.Errorf("len(p1)=%d len(p3)=%d", N, len(p3)))
	}

	for i := 0; i < N; i++ {
		p3[i] ^= f.Mul(p1[i], scalar)
	}
}
