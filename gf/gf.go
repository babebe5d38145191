// Package gf implements arithmetic over binary extension fields GF(2^m)
// for 1 <= m <= 64, with elements in polynomial representation.
package gf

import (
	"fmt"
	"math/bits"

	"github.com/Pro7ech/antt/utils"
)

// Element is an element of GF(2^m) in polynomial representation:
// bit k is the coefficient of x^k. Only the low m bits are significant.
type Element uint64

const (
	// Zero is the additive identity of any GF(2^m).
	Zero = Element(0)
	// One is the multiplicative identity of any GF(2^m).
	One = Element(1)
)

// defaultPolys maps a field degree m to the low 64 bits of a standard
// low-weight irreducible polynomial x^m + defaultPolys[m] over GF(2).
// Degrees without an entry require [NewFieldFromPoly].
var defaultPolys = map[int]uint64{
	1:  0x1,                                     // x + 1
	2:  0x3,                                     // x^2 + x + 1
	3:  0x3,                                     // x^3 + x + 1
	4:  0x3,                                     // x^4 + x + 1
	5:  0x5,                                     // x^5 + x^2 + 1
	6:  0x3,                                     // x^6 + x + 1
	7:  0x3,                                     // x^7 + x + 1
	8:  0x1b,                                    // x^8 + x^4 + x^3 + x + 1
	9:  0x11,                                    // x^9 + x^4 + 1
	10: 0x9,                                     // x^10 + x^3 + 1
	11: 0x5,                                     // x^11 + x^2 + 1
	12: 0x53,                                    // x^12 + x^6 + x^4 + x + 1
	13: 0x1b,                                    // x^13 + x^4 + x^3 + x + 1
	14: 0x443,                                   // x^14 + x^10 + x^6 + x + 1
	15: 0x3,                                     // x^15 + x + 1
	16: 0x100b,                                  // x^16 + x^12 + x^3 + x + 1
	17: 0x9,                                     // x^17 + x^3 + 1
	18: 0x81,                                    // x^18 + x^7 + 1
	19: 0x27,                                    // x^19 + x^5 + x^2 + x + 1
	20: 0x9,                                     // x^20 + x^3 + 1
	21: 0x5,                                     // x^21 + x^2 + 1
	22: 0x3,                                     // x^22 + x + 1
	23: 0x21,                                    // x^23 + x^5 + 1
	24: 0x87,                                    // x^24 + x^7 + x^2 + x + 1
	25: 0x9,                                     // x^25 + x^3 + 1
	28: 0x9,                                     // x^28 + x^3 + 1
	29: 0x5,                                     // x^29 + x^2 + 1
	31: 0x9,                                     // x^31 + x^3 + 1
	32: 0x400007,                                // x^32 + x^22 + x^2 + x + 1
	33: 0x2001,                                  // x^33 + x^13 + 1
	36: 0x801,                                   // x^36 + x^11 + 1
	39: 0x11,                                    // x^39 + x^4 + 1
	40: (1 << 38) | (1 << 21) | (1 << 19) | 0x1, // x^40 + x^38 + x^21 + x^19 + 1
	41: 0x9,                                     // x^41 + x^3 + 1
	47: 0x21,                                    // x^47 + x^5 + 1
	48: (1 << 47) | (1 << 21) | (1 << 20) | 0x1, // x^48 + x^47 + x^21 + x^20 + 1
	49: 0x201,                                   // x^49 + x^9 + 1
	52: 0x9,                                     // x^52 + x^3 + 1
	56: (1 << 55) | (1 << 35) | (1 << 34) | 0x1, // x^56 + x^55 + x^35 + x^34 + 1
	58: 0x80001,                                 // x^58 + x^19 + 1
	60: 0x3,                                     // x^60 + x + 1
	63: 0x3,                                     // x^63 + x + 1
	64: (1 << 63) | (1 << 61) | (1 << 60) | 0x1, // x^64 + x^63 + x^61 + x^60 + 1
}

// Field stores the constants of GF(2^m) = GF(2)[x]/(x^m + poly).
type Field struct {
	degree int
	poly   uint64 // modulus without its leading x^m term
	mask   uint64 // 2^m - 1
	msb    uint64 // 2^(m-1)
}

// NewField returns the field GF(2^m) defined by a standard low-weight
// irreducible polynomial. An error is returned if no default polynomial
// is known for the given degree; [NewFieldFromPoly] accepts any modulus.
func NewField(m int) (f *Field, err error) {
	poly, ok := defaultPolys[m]
	if !ok {
		return nil, fmt.Errorf("no default modulus for degree m=%d (supported: %v): use NewFieldFromPoly", m, utils.GetSortedKeys(defaultPolys))
	}
	return NewFieldFromPoly(m, poly)
}

// NewFieldFromPoly returns the field GF(2^m) defined by the monic modulus
// x^m + poly, where poly holds the low 64 bits of the modulus.
// The modulus is verified to be irreducible over GF(2).
func NewFieldFromPoly(m int, poly uint64) (f *Field, err error) {

	if m < 1 || m > 64 {
		return nil, fmt.Errorf("invalid degree m=%d: must be in [1, 64]", m)
	}

	if m < 64 && bits.Len64(poly) > m {
		return nil, fmt.Errorf("invalid modulus 0x%x: degree of the low terms must be smaller than m=%d", poly, m)
	}

	if !isIrreducible(m, poly) {
		return nil, fmt.Errorf("invalid modulus x^%d+0x%x: not irreducible over GF(2)", m, poly)
	}

	var mask uint64
	if m == 64 {
		mask = ^uint64(0)
	} else {
		mask = (1 << uint(m)) - 1
	}

	return &Field{
		degree: m,
		poly:   poly,
		mask:   mask,
		msb:    1 << uint(m-1),
	}, nil
}

// Degree returns m, the degree of the field extension over GF(2).
func (f *Field) Degree() int {
	return f.degree
}

// Modulus returns the low 64 bits of the reduction polynomial
// (the modulus is x^m + Modulus()).
func (f *Field) Modulus() uint64 {
	return f.poly
}

// Mask returns 2^m - 1, the mask of significant element bits.
func (f *Field) Mask() uint64 {
	return f.mask
}

// Add returns a + b. Addition in characteristic 2 is XOR and does not
// depend on the modulus.
func Add(a, b Element) Element {
	return a ^ b
}

// Sub returns a - b, which equals a + b in characteristic 2.
func Sub(a, b Element) Element {
	return a ^ b
}

// Mul returns a * b mod x^m + poly via shift-and-XOR reduction.
func (f *Field) Mul(a, b Element) Element {

	x, y := uint64(a), uint64(b)

	var r uint64
	for y != 0 {
		if y&1 != 0 {
			r ^= x
		}
		y >>= 1
		carry := x & f.msb
		x = (x << 1) & f.mask
		if carry != 0 {
			x ^= f.poly
		}
	}

	return Element(r)
}

// Sqr returns a^2.
func (f *Field) Sqr(a Element) Element {
	return f.Mul(a, a)
}

// Pow returns a^e.
func (f *Field) Pow(a Element, e uint64) Element {
	r := One
	for e > 0 {
		if e&1 == 1 {
			r = f.Mul(r, a)
		}
		a = f.Mul(a, a)
		e >>= 1
	}
	return r
}

// Inv returns a^-1 = a^(2^m - 2).
// Zero is not invertible; calling Inv(0) indicates an upstream invariant
// violation and panics.
func (f *Field) Inv(a Element) Element {

	// Sanity check
	if a == Zero {
		panic("cannot Inv: zero is not invertible")
	}

	return f.Pow(a, f.mask-1)
}

// Div returns a / b. Panics if b is zero.
func (f *Field) Div(a, b Element) Element {
	return f.Mul(a, f.Inv(b))
}
