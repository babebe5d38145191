package antt

import (
	"fmt"

	"github.com/Pro7ech/antt/gf"
)

// TransformerStandard runs the stage schedule serially.
type TransformerStandard struct {
	novelBasisTransformerBase
}

// NewTransformerStandard returns a serial [NovelBasisTransformer].
// The workers argument is ignored.
func NewTransformerStandard(a *AdditiveNTT, workers int) NovelBasisTransformer {
	return TransformerStandard{
		novelBasisTransformerBase: novelBasisTransformerBase{
			TwiddleTable: a.TwiddleTable,
			Field:        a.field,
			LogN:         a.LogN,
			LogRate:      a.LogRate,
		},
	}
}

// Forward writes the forward additive NTT of p1 on p2.
func (t TransformerStandard) Forward(p1, p2 []gf.Element) {
	NTTAdditive(p1, p2, t.Field, t.LogN, t.LogRate, t.TwiddleTable)
}

// Backward writes the backward additive NTT of p1 on p2.
// Defined for LogRate = 0 only.
func (t TransformerStandard) Backward(p1, p2 []gf.Element) {
	INTTAdditive(p1, p2, t.Field, t.LogN, t.LogRate, t.TwiddleTable)
}

// NTTAdditive computes the forward additive NTT: the 2^LogRate-fold tiling
// of the coefficients followed by the stages i = LogN-1, ..., 0 in strictly
// descending order (stage i consumes the output of stage i+1).
func NTTAdditive(p1, p2 []gf.Element, f *gf.Field, logN, logRate int, tbl *TwiddleTable) {

	n, m := 1<<logN, 1<<(logN+logRate)

	// Sanity check
	if len(p1) < n || len(p2) < m {
		panic(fmt.Sprintf("cannot NTTAdditive: ensure that len(p1)=%d >= 2^LogN=%d and len(p2)=%d >= 2^(LogN+LogRate)=%d", len(p1), n, len(p2), m))
	}

	Tile(p1[:n], p2[:m])

	for i := logN - 1; i >= 0; i-- {
		nttStageCore(p2[:m], f, i, logN+logRate, tbl.Twiddles[i])
	}
}

// INTTAdditive computes the backward additive NTT, undoing the stages in
// strictly ascending order i = 0, ..., LogN-1. The transform is only
// invertible at rate 1, so logRate must be 0.
func INTTAdditive(p1, p2 []gf.Element, f *gf.Field, logN, logRate int, tbl *TwiddleTable) {

	// Sanity check
	if logRate != 0 {
		panic(fmt.Sprintf("cannot INTTAdditive: LogRate=%d != 0, the rate-expanded transform is not square", logRate))
	}

	n := 1 << logN

	// Sanity check
	if len(p1) < n || len(p2) < n {
		panic(fmt.Sprintf("cannot INTTAdditive: ensure that len(p1)=%d and len(p2)=%d >= 2^LogN=%d", len(p1), len(p2), n))
	}

	copy(p2[:n], p1[:n])

	for i := 0; i < logN; i++ {
		inttStageCore(p2[:n], f, i, logN, tbl.Twiddles[i])
	}
}

// nttStageCore applies the 2^(logM-1) independent butterflies of stage i on
// p in place. The buffer index decomposes as (u || b || v) with v the low i
// bits, b the pair bit and u the remaining high bits; the twiddle factor
// depends only on u, so it is fetched once per block of 2^i butterflies.
func nttStageCore(p []gf.Element, f *gf.Field, i, logM int, twiddles []gf.Element) {

	// Sanity check
	if i < 0 || i >= logM {
		panic(fmt.Sprintf("cannot nttStageCore: stage i=%d not in [0, logM=%d)", i, logM))
	}

	// Sanity check
	if len(p) < 1<<logM || len(twiddles) < 1<<(logM-i-1) {
		panic(fmt.Sprintf("cannot nttStageCore: ensure that len(p)=%d >= %d and len(twiddles)=%d >= %d", len(p), 1<<logM, len(twiddles), 1<<(logM-i-1)))
	}

	nttStageButterflyRange(p, f, i, twiddles, 0, 1<<(logM-1))
}

// nttStageButterflyRange applies the butterflies b in [b1, b2) of stage i,
// where a butterfly index decomposes as b = (u << i) | v and updates the
// buffer pair (u << (i+1)) | v and (u << (i+1)) | v | 2^i. Each butterfly
// reads both of its inputs before writing either output, so the update is
// aliasing-safe in place, and twiddles[u] is fetched once per run of 2^i
// consecutive butterflies.
func nttStageButterflyRange(p []gf.Element, f *gf.Field, i int, twiddles []gf.Element, b1, b2 int) {

	t := 1 << i

	for b := b1; b < b2; {

		u := b >> i

		end := min(b2, (u+1)<<i)

		twid := twiddles[u]

		jx := u<<(i+1) | (b & (t - 1))
		jy := jx + t

		if twid == gf.Zero {
			// Multiplication-free block: (x, y) -> (x, x + y).
			for ; b < end; b, jx, jy = b+1, jx+1, jy+1 {
				p[jy] ^= p[jx]
			}
		} else {
			for ; b < end; b, jx, jy = b+1, jx+1, jy+1 {
				p[jx], p[jy] = butterfly(p[jx], p[jy], twid, f)
			}
		}
	}
}

// inttStageCore applies the inverse butterflies of stage i on p in place.
func inttStageCore(p []gf.Element, f *gf.Field, i, logM int, twiddles []gf.Element) {

	// Sanity check
	if i < 0 || i >= logM {
		panic(fmt.Sprintf("cannot inttStageCore: stage i=%d not in [0, logM=%d)", i, logM))
	}

	// Sanity check
	if len(p) < 1<<logM || len(twiddles) < 1<<(logM-i-1) {
		panic(fmt.Sprintf("cannot inttStageCore: ensure that len(p)=%d >= %d and len(twiddles)=%d >= %d", len(p), 1<<logM, len(twiddles), 1<<(logM-i-1)))
	}

	inttStageButterflyRange(p, f, i, twiddles, 0, 1<<(logM-1))
}

// inttStageButterflyRange is the inverse counterpart of
// [nttStageButterflyRange].
func inttStageButterflyRange(p []gf.Element, f *gf.Field, i int, twiddles []gf.Element, b1, b2 int) {

	t := 1 << i

	for b := b1; b < b2; {

		u := b >> i

		end := min(b2, (u+1)<<i)

		twid := twiddles[u]

		jx := u<<(i+1) | (b & (t - 1))
		jy := jx + t

		if twid == gf.Zero {
			for ; b < end; b, jx, jy = b+1, jx+1, jy+1 {
				p[jy] ^= p[jx]
			}
		} else {
			for ; b < end; b, jx, jy = b+1, jx+1, jy+1 {
				p[jx], p[jy] = invButterfly(p[jx], p[jy], twid, f)
			}
		}
	}
}

// butterfly computes (x, y) = (x + t*y, x + (t+1)*y) in GF(2^m).
// The +1 on the odd branch accounts for the normalization W^_i(basis[i]) = 1.
func butterfly(x, y, t gf.Element, f *gf.Field) (gf.Element, gf.Element) {
	x ^= f.Mul(t, y)
	return x, x ^ y
}

// invButterfly computes (x, y) = (x + t*(x+y), x+y), the exact inverse of
// [butterfly] in characteristic 2.
func invButterfly(x, y, t gf.Element, f *gf.Field) (gf.Element, gf.Element) {
	y ^= x
	x ^= f.Mul(t, y)
	return x, y
}
