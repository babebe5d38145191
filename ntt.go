// Package antt implements the additive number theoretic transform of
// Lin, Chung and Han (LCH14) over binary extension fields: the in-place,
// stage-by-stage evaluation of a polynomial given in the novel polynomial
// basis at all 2^(LogN+LogRate) points of a GF(2)-affine evaluation domain.
package antt

import (
	"fmt"

	"github.com/Pro7ech/antt/gf"
	"github.com/Pro7ech/antt/utils"
)

const (
	// MinimumCodewordLenForConcurrentNTT is the minimum codeword length
	// under which the concurrent transformer falls back to the serial
	// stage kernel.
	MinimumCodewordLenForConcurrentNTT = 4096
)

// NovelBasisTransformer is an interface to provide flexibility on how the
// stage schedule of the transform is executed by the struct [AdditiveNTT].
type NovelBasisTransformer interface {
	Forward(p1, p2 []gf.Element)
	Backward(p1, p2 []gf.Element)
}

type novelBasisTransformerBase struct {
	*TwiddleTable
	Field   *gf.Field
	LogN    int
	LogRate int
}

// AdditiveNTT is a struct storing the precomputation for the additive NTT
// of one [Parameters] instance.
type AdditiveNTT struct {
	NovelBasisTransformer
	Parameters
	*TwiddleTable
	field *gf.Field
}

// NewAdditiveNTT creates a new [AdditiveNTT] with the serial transformer.
func NewAdditiveNTT(p Parameters) (a *AdditiveNTT, err error) {
	return NewAdditiveNTTWithTransformer(p, NewTransformerStandard, 1)
}

// NewAdditiveNTTConcurrent creates a new [AdditiveNTT] whose stages execute
// their independent butterflies on the given number of workers.
func NewAdditiveNTTConcurrent(p Parameters, workers int) (a *AdditiveNTT, err error) {
	return NewAdditiveNTTWithTransformer(p, NewTransformerConcurrent, workers)
}

// NewAdditiveNTTWithTransformer creates a new [AdditiveNTT] with a
// user-defined [NovelBasisTransformer].
// An error is returned with a nil *AdditiveNTT for invalid parameters or a
// basis whose prefix is not linearly independent over GF(2).
func NewAdditiveNTTWithTransformer(p Parameters, ntt func(*AdditiveNTT, int) NovelBasisTransformer, workers int) (a *AdditiveNTT, err error) {

	if err = p.Validate(); err != nil {
		return nil, err
	}

	var f *gf.Field
	if f, err = p.NewField(); err != nil {
		return nil, err
	}

	if p.Basis == nil {
		if p.Basis, err = PowerBasis(f, max(1, p.LogN+p.LogRate)); err != nil {
			return nil, err
		}
	}

	a = &AdditiveNTT{Parameters: p, field: f}

	if a.TwiddleTable, err = genTwiddleTable(f, p.Basis, p.LogN, p.LogRate); err != nil {
		return nil, err
	}

	a.NovelBasisTransformer = ntt(a, workers)

	return
}

// Field returns the underlying [gf.Field].
func (a *AdditiveNTT) Field() *gf.Field {
	return a.field
}

// NTT evaluates p2 = NTT(p1): the evaluations, at all points of the
// rate-expanded domain, of the novel-basis polynomial with coefficients p1.
func (a *AdditiveNTT) NTT(p1, p2 []gf.Element) {
	a.Forward(p1, p2)
}

// INTT evaluates p2 = INTT(p1), the inverse of [AdditiveNTT.NTT].
// Defined for LogRate = 0 only.
func (a *AdditiveNTT) INTT(p1, p2 []gf.Element) {
	a.Backward(p1, p2)
}

// ForwardNew returns NTT(p1) in a newly allocated codeword buffer.
func (a *AdditiveNTT) ForwardNew(p1 []gf.Element) (p2 []gf.Element) {
	p2 = make([]gf.Element, a.CodewordLen())
	a.Forward(p1, p2)
	return
}

// BackwardNew returns INTT(p1) in a newly allocated message buffer.
// Defined for LogRate = 0 only.
func (a *AdditiveNTT) BackwardNew(p1 []gf.Element) (p2 []gf.Element) {
	p2 = make([]gf.Element, a.N())
	a.Backward(p1, p2)
	return
}

// Tile replicates p1 len(p2)/len(p1) times on p2: p2[v] = p1[v mod len(p1)].
// Both lengths must be powers of two with len(p1) dividing len(p2).
func Tile(p1, p2 []gf.Element) {

	n := len(p1)

	// Sanity check
	if !utils.IsPow2(n) || !utils.IsPow2(len(p2)) || len(p2) < n {
		panic(fmt.Sprintf("cannot Tile: len(p1)=%d and len(p2)=%d must be powers of two with len(p1) <= len(p2)", n, len(p2)))
	}

	// Sanity check
	if len(p2) != n && utils.Alias1D(p1, p2) {
		panic("cannot Tile: p1 and p2 cannot share the same base array")
	}

	for off := 0; off < len(p2); off += n {
		copy(p2[off:off+n], p1)
	}
}
