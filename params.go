package antt

import (
	"encoding/binary"
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/Pro7ech/antt/gf"
	"github.com/Pro7ech/antt/utils/sampling"
)

// Parameters is the static configuration of one transform instance:
// the field GF(2^FieldDegree), the additive basis of the evaluation domain
// and the message/codeword dimensions.
//
// The basis must be linearly independent over GF(2). This is a precondition
// that is not checked at construction; a dependent prefix is however
// structurally detected during the twiddle precomputation and reported as an
// error by [NewAdditiveNTT].
type Parameters struct {

	// FieldDegree is the extension degree m of GF(2^m).
	FieldDegree int

	// Modulus is the low 64 bits of the reduction polynomial of the field.
	// If zero, the default polynomial for FieldDegree is used.
	Modulus uint64

	// LogN is the base 2 logarithm of the message length.
	LogN int

	// LogRate is the base 2 logarithm of the rate expansion factor
	// between the message length and the codeword length.
	LogRate int

	// Basis is the GF(2)-basis spanning the evaluation domain, with
	// Basis[0] = 1. If nil, the power basis 1, x, x^2, ... of length
	// LogN+LogRate is used.
	Basis []gf.Element
}

// N returns the message length 2^LogN.
func (p Parameters) N() int {
	return 1 << p.LogN
}

// CodewordLen returns the codeword length 2^(LogN+LogRate).
func (p Parameters) CodewordLen() int {
	return 1 << (p.LogN + p.LogRate)
}

// Validate checks the static constraints on the receiver that can be
// verified without field arithmetic.
func (p Parameters) Validate() (err error) {

	if p.FieldDegree < 1 || p.FieldDegree > 64 {
		return fmt.Errorf("invalid FieldDegree=%d: must be in [1, 64]", p.FieldDegree)
	}

	if p.LogN < 0 || p.LogRate < 0 {
		return fmt.Errorf("invalid LogN=%d or LogRate=%d: must be positive", p.LogN, p.LogRate)
	}

	if p.LogN+p.LogRate > p.FieldDegree {
		return fmt.Errorf("invalid LogN+LogRate=%d: evaluation domain cannot exceed the field dimension m=%d", p.LogN+p.LogRate, p.FieldDegree)
	}

	if p.Basis != nil {

		if len(p.Basis) > p.FieldDegree {
			return fmt.Errorf("invalid Basis: %d elements cannot be linearly independent over GF(2) in a field of dimension %d", len(p.Basis), p.FieldDegree)
		}

		if p.Basis[0] != gf.One {
			return fmt.Errorf("invalid Basis: Basis[0]=0x%x != 1", uint64(p.Basis[0]))
		}

		if p.LogN+p.LogRate > len(p.Basis) {
			return fmt.Errorf("invalid LogN+LogRate=%d: exceeds the basis length r=%d", p.LogN+p.LogRate, len(p.Basis))
		}
	}

	return
}

// Equal performs a deep equal.
func (p Parameters) Equal(other *Parameters) bool {
	res := p.FieldDegree == other.FieldDegree
	res = res && p.Modulus == other.Modulus
	res = res && p.LogN == other.LogN
	res = res && p.LogRate == other.LogRate
	res = res && cmp.Equal(p.Basis, other.Basis)
	return res
}

// NewField instantiates the field described by the receiver.
func (p Parameters) NewField() (*gf.Field, error) {
	if p.Modulus == 0 {
		return gf.NewField(p.FieldDegree)
	}
	return gf.NewFieldFromPoly(p.FieldDegree, p.Modulus)
}

// PowerBasis returns the power basis 1, x, x^2, ..., x^(r-1) of GF(2^m),
// which is linearly independent over GF(2) for any r <= m.
func PowerBasis(f *gf.Field, r int) (basis []gf.Element, err error) {

	if r < 1 || r > f.Degree() {
		return nil, fmt.Errorf("invalid basis length r=%d: must be in [1, m=%d]", r, f.Degree())
	}

	basis = make([]gf.Element, r)
	basis[0] = gf.One
	for j := 1; j < r; j++ {
		basis[j] = basis[j-1] << 1 // multiplication by x, no reduction needed below degree m
	}

	return
}

// RandomBasis samples a uniform GF(2)-linearly independent basis of length r
// with basis[0] = 1, by rejection sampling from the provided [sampling.PRNG].
func RandomBasis(f *gf.Field, r int, prng sampling.PRNG) (basis []gf.Element, err error) {

	if r < 1 || r > f.Degree() {
		return nil, fmt.Errorf("invalid basis length r=%d: must be in [1, m=%d]", r, f.Degree())
	}

	basis = make([]gf.Element, 1, r)
	basis[0] = gf.One

	var buf [8]byte
	for len(basis) < r {

		if _, err = prng.Read(buf[:]); err != nil {
			return nil, fmt.Errorf("prng: %w", err)
		}

		candidate := gf.Element(binary.LittleEndian.Uint64(buf[:]) & f.Mask())

		if gf.LinearlyIndependent(append(basis, candidate)) {
			basis = append(basis, candidate)
		}
	}

	return
}
