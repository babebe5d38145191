package antt

import (
	"fmt"
	"math/bits"

	"github.com/Pro7ech/antt/gf"
)

// TwiddleTable stores all the constants that are specifically tied to the
// transform: the evaluations of the normalized subspace-vanishing
// polynomials at the basis and the per-stage butterfly twiddle factors
// derived from them.
type TwiddleTable struct {

	// WHat[i][k] = W^_i(basis[i+k]) for i in [0, LogN) and
	// k in [0, LogN+LogRate-i), with the normalization WHat[i][0] = 1.
	WHat [][]gf.Element

	// Twiddles[i][u] = sum over the set bits k of u of WHat[i][1+k],
	// for u in [0, 2^(LogN+LogRate-i-1)).
	Twiddles [][]gf.Element

	// wSelf[i] = W_i(basis[i]), the unnormalized vanishing value used to
	// evaluate W^_i away from the basis.
	wSelf []gf.Element
}

// genTwiddleTable precomputes the vanishing values W^_i(basis[j]) with the
// value-wise doubling recursion
//
//	W_0(x) = x, W_(i+1)(x) = W_i(x)^2 + W_i(basis[i])*W_i(x)
//
// in O(r^2) field operations, then expands the per-stage twiddle factors
// incrementally, one XOR per table entry.
//
// A vanishing value W_i(basis[i]) = 0 means basis[i] lies in the GF(2)-span
// of basis[0..i-1] and is reported as an error.
func genTwiddleTable(f *gf.Field, basis []gf.Element, logN, logRate int) (tbl *TwiddleTable, err error) {

	ext := logN + logRate

	// Sanity check
	if len(basis) < ext {
		panic(fmt.Sprintf("cannot genTwiddleTable: len(basis)=%d < LogN+LogRate=%d", len(basis), ext))
	}

	w := make([]gf.Element, ext)
	copy(w, basis[:ext])

	tbl = &TwiddleTable{
		WHat:     make([][]gf.Element, logN),
		Twiddles: make([][]gf.Element, logN),
		wSelf:    make([]gf.Element, logN),
	}

	for i := 0; i < logN; i++ {

		wi := w[i]

		if wi == gf.Zero {
			return nil, fmt.Errorf("invalid basis: W_%d(basis[%d]) = 0, basis is not linearly independent over GF(2)", i, i)
		}

		tbl.wSelf[i] = wi

		wInv := f.Inv(wi)

		what := make([]gf.Element, ext-i)
		for k := range what {
			what[k] = f.Mul(w[i+k], wInv)
		}
		tbl.WHat[i] = what

		for j := i + 1; j < ext; j++ {
			w[j] = f.Sqr(w[j]) ^ f.Mul(wi, w[j])
		}
	}

	for i := 0; i < logN; i++ {

		m := ext - i - 1

		tw := make([]gf.Element, 1<<m)
		for k := 0; k < m; k++ {
			wik := tbl.WHat[i][1+k]
			for u := 0; u < 1<<k; u++ {
				tw[u|1<<k] = tw[u] ^ wik
			}
		}

		tbl.Twiddles[i] = tw
	}

	return
}

// SubspaceVanishingEval returns W^_i(x), the normalized vanishing polynomial
// of the GF(2)-span of basis[0..i-1] evaluated at an arbitrary point, via the
// same doubling recursion used by the precomputation.
func (a *AdditiveNTT) SubspaceVanishingEval(i int, x gf.Element) gf.Element {

	// Sanity check
	if i < 0 || i >= len(a.wSelf) {
		panic(fmt.Sprintf("cannot SubspaceVanishingEval: stage i=%d not in [0, %d)", i, len(a.wSelf)))
	}

	f := a.field

	w := x
	for k := 0; k < i; k++ {
		w = f.Sqr(w) ^ f.Mul(a.wSelf[k], w)
	}

	return f.Div(w, a.wSelf[i])
}

// EvaluationPoint returns the j-th point of the rate-expanded evaluation
// domain, the GF(2)-combination of the basis selected by the bits of j.
func (a *AdditiveNTT) EvaluationPoint(j uint64) (omega gf.Element) {

	// Sanity check
	if j >= uint64(a.CodewordLen()) {
		panic(fmt.Sprintf("cannot EvaluationPoint: j=%d not in [0, %d)", j, a.CodewordLen()))
	}

	for k := 0; j != 0; k, j = k+1, j>>1 {
		if j&1 == 1 {
			omega ^= a.Basis[k]
		}
	}

	return
}

// EvaluateNovelBasis evaluates, at the point x, the polynomial whose
// coefficients are given in the novel polynomial basis
//
//	X_j(x) = prod over the set bits k of j of W^_k(x).
//
// This is the direct O(N log N) reference path; the transform computes the
// same values at all domain points at once.
func (a *AdditiveNTT) EvaluateNovelBasis(coeffs []gf.Element, x gf.Element) gf.Element {

	n := len(coeffs)

	// Sanity check
	if n == 0 || n&(n-1) != 0 || n > a.N() {
		panic(fmt.Sprintf("cannot EvaluateNovelBasis: len(coeffs)=%d must be a power of two at most N=%d", n, a.N()))
	}

	logn := bits.Len(uint(n)) - 1

	what := make([]gf.Element, logn)
	for k := range what {
		what[k] = a.SubspaceVanishingEval(k, x)
	}

	f := a.field

	var acc gf.Element
	for j, c := range coeffs {

		if c == gf.Zero {
			continue
		}

		term := c
		for k := 0; k < logn; k++ {
			if (j>>k)&1 == 1 {
				term = f.Mul(term, what[k])
			}
		}

		acc ^= term
	}

	return acc
}
