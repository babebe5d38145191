package antt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Pro7ech/antt/gf"
	"github.com/Pro7ech/antt/utils/sampling"
)

var testParameters = []Parameters{
	{FieldDegree: 8, LogN: 3, LogRate: 0},
	{FieldDegree: 8, LogN: 3, LogRate: 2},
	{FieldDegree: 16, LogN: 4, LogRate: 0},
	{FieldDegree: 16, LogN: 4, LogRate: 2},
	{FieldDegree: 32, LogN: 2, LogRate: 1},
	{FieldDegree: 64, LogN: 5, LogRate: 0},
	{FieldDegree: 64, LogN: 3, LogRate: 3},
}

func testString(opname string, p Parameters) string {
	return fmt.Sprintf("%s/m=%d/logN=%d/logRate=%d", opname, p.FieldDegree, p.LogN, p.LogRate)
}

type testContext struct {
	p Parameters
	a *AdditiveNTT
	u *gf.UniformSampler
}

func genTestContext(p Parameters) (tc *testContext, err error) {

	tc = &testContext{p: p}

	if tc.a, err = NewAdditiveNTT(p); err != nil {
		return nil, err
	}

	tc.u = gf.NewUniformSampler(sampling.NewSource([32]byte{}), tc.a.Field())

	return
}

func TestAdditiveNTT(t *testing.T) {

	testParametersValidation(t)
	testDependentBasisDetection(t)
	testConcreteGF4(t)
	testTileComposition(t)
	testStageOrdering(t)

	for _, p := range testParameters {

		tc, err := genTestContext(p)
		if err != nil {
			t.Fatal(err)
		}

		testDefinition(tc, t)
		testLinearity(tc, t)
		testStageInvariant(tc, t)
		testTilingReplication(tc, t)
		testBackward(tc, t)
		testEvaluationPoints(tc, t)
	}

	testRandomBasis(t)
	testConcurrent(t)
}

// testRandomBasis runs the definition check on a uniformly sampled basis
// instead of the default power basis.
func testRandomBasis(t *testing.T) {

	t.Run("RandomBasis", func(t *testing.T) {

		f, err := gf.NewField(16)
		require.NoError(t, err)

		prng, err := sampling.NewKeyedPRNG(nil)
		require.NoError(t, err)

		basis, err := RandomBasis(f, 8, prng)
		require.NoError(t, err)
		require.True(t, gf.LinearlyIndependent(basis))
		require.Equal(t, gf.One, basis[0])

		a, err := NewAdditiveNTT(Parameters{FieldDegree: 16, LogN: 4, LogRate: 2, Basis: basis})
		require.NoError(t, err)

		u := gf.NewUniformSampler(sampling.NewSource([32]byte{0x21}), f)
		p1 := u.ReadNew(a.N())
		p2 := a.ForwardNew(p1)

		for j := range p2 {
			require.Equal(t, a.EvaluateNovelBasis(p1, a.EvaluationPoint(uint64(j))), p2[j], "j=%d", j)
		}
	})
}

func testParametersValidation(t *testing.T) {

	t.Run("Parameters/Validate", func(t *testing.T) {

		require.NoError(t, Parameters{FieldDegree: 16, LogN: 4, LogRate: 2}.Validate())

		// Degenerate or oversized field
		require.Error(t, Parameters{FieldDegree: 0, LogN: 1}.Validate())
		require.Error(t, Parameters{FieldDegree: 65, LogN: 1}.Validate())

		// Negative dimensions
		require.Error(t, Parameters{FieldDegree: 8, LogN: -1}.Validate())
		require.Error(t, Parameters{FieldDegree: 8, LogN: 1, LogRate: -1}.Validate())

		// Domain larger than the field
		require.Error(t, Parameters{FieldDegree: 4, LogN: 3, LogRate: 2}.Validate())

		// Domain larger than the basis
		require.Error(t, Parameters{FieldDegree: 16, LogN: 2, LogRate: 1, Basis: []gf.Element{1, 2}}.Validate())

		// Basis not starting with the multiplicative identity
		require.Error(t, Parameters{FieldDegree: 16, LogN: 1, Basis: []gf.Element{2, 1}}.Validate())

		// More basis elements than the field dimension
		require.Error(t, Parameters{FieldDegree: 2, LogN: 1, Basis: []gf.Element{1, 2, 3}}.Validate())
	})

	t.Run("Parameters/Equal", func(t *testing.T) {

		p1 := Parameters{FieldDegree: 16, LogN: 4, LogRate: 2, Basis: []gf.Element{1, 2, 4, 8, 16, 32}}
		p2 := Parameters{FieldDegree: 16, LogN: 4, LogRate: 2, Basis: []gf.Element{1, 2, 4, 8, 16, 32}}

		require.True(t, p1.Equal(&p2))

		p2.Basis[5] = 64
		require.False(t, p1.Equal(&p2))

		p3 := p1
		p3.LogRate = 1
		require.False(t, p1.Equal(&p3))
	})

	t.Run("Parameters/CoefficientLengthMismatch", func(t *testing.T) {

		a, err := NewAdditiveNTT(Parameters{FieldDegree: 16, LogN: 3, LogRate: 1})
		require.NoError(t, err)

		require.Panics(t, func() {
			a.Forward(make([]gf.Element, a.N()-1), make([]gf.Element, a.CodewordLen()))
		})
		require.Panics(t, func() {
			a.Forward(make([]gf.Element, a.N()), make([]gf.Element, a.CodewordLen()-1))
		})
	})
}

func testDependentBasisDetection(t *testing.T) {

	t.Run("DependentBasis", func(t *testing.T) {

		// basis[1] lies in the span of basis[0]
		_, err := NewAdditiveNTT(Parameters{FieldDegree: 8, LogN: 2, Basis: []gf.Element{1, 1, 2}})
		require.Error(t, err)

		// basis[2] = basis[0] + basis[1]
		_, err = NewAdditiveNTT(Parameters{FieldDegree: 8, LogN: 3, Basis: []gf.Element{1, 2, 3}})
		require.Error(t, err)
	})
}

// testDefinition checks the output of the transform against the direct
// evaluation of the novel-basis polynomial at every domain point.
func testDefinition(tc *testContext, t *testing.T) {

	t.Run(testString("Definition", tc.p), func(t *testing.T) {

		a := tc.a

		p1 := tc.u.ReadNew(a.N())
		p2 := a.ForwardNew(p1)

		for j := range p2 {
			require.Equal(t, a.EvaluateNovelBasis(p1, a.EvaluationPoint(uint64(j))), p2[j], "j=%d", j)
		}
	})
}

// testLinearity checks that the transform commutes with XOR addition and
// with scalar multiplication.
func testLinearity(tc *testContext, t *testing.T) {

	t.Run(testString("Linearity", tc.p), func(t *testing.T) {

		a := tc.a
		f := a.Field()

		x := tc.u.ReadNew(a.N())
		y := tc.u.ReadNew(a.N())

		sum := make([]gf.Element, a.N())
		AddVec(x, y, sum)

		want := make([]gf.Element, a.CodewordLen())
		AddVec(a.ForwardNew(x), a.ForwardNew(y), want)

		require.Equal(t, want, a.ForwardNew(sum))

		// The transform is linear over the full field, not just GF(2).
		c := tc.u.ReadNew(1)[0]

		scaled := make([]gf.Element, a.N())
		MulScalarVec(x, c, scaled, f)

		wantScaled := make([]gf.Element, a.CodewordLen())
		MulScalarVec(a.ForwardNew(x), c, wantScaled, f)

		require.Equal(t, wantScaled, a.ForwardNew(scaled))
	})
}

// stageReference evaluates, by direct polynomial evaluation, the value the
// stage invariant prescribes for buffer index j after stage i: the
// polynomial with coefficients sharing the low-i-bit suffix of j, expressed
// in the round-i novel basis, at the point selected by the high bits of j.
func stageReference(a *AdditiveNTT, p1 []gf.Element, i int, j int) gf.Element {

	f := a.Field()

	v := j & (1<<i - 1)

	var x gf.Element
	for k, h := 0, j>>i; h != 0; k, h = k+1, h>>1 {
		if h&1 == 1 {
			x ^= a.Basis[i+k]
		}
	}

	var acc gf.Element
	for c := 0; c < 1<<(a.LogN-i); c++ {

		term := p1[c<<i|v]
		if term == gf.Zero {
			continue
		}

		for k := 0; k < a.LogN-i; k++ {
			if (c>>k)&1 == 1 {
				term = f.Mul(term, a.SubspaceVanishingEval(i+k, x))
			}
		}

		acc ^= term
	}

	return acc
}

// testStageInvariant walks the stage schedule one kernel call at a time and
// checks every buffer entry against [stageReference] after each stage.
func testStageInvariant(tc *testContext, t *testing.T) {

	if tc.p.LogN > 4 {
		return
	}

	t.Run(testString("StageInvariant", tc.p), func(t *testing.T) {

		a := tc.a
		logM := a.LogN + a.LogRate

		p1 := tc.u.ReadNew(a.N())

		buf := make([]gf.Element, a.CodewordLen())
		Tile(p1, buf)

		// Base case i = LogN: the tiled buffer holds the identity invariant.
		for j := range buf {
			require.Equal(t, p1[j&(a.N()-1)], buf[j])
		}

		for i := a.LogN - 1; i >= 0; i-- {

			nttStageCore(buf, a.Field(), i, logM, a.Twiddles[i])

			for j := range buf {
				require.Equal(t, stageReference(a, p1, i, j), buf[j], "stage=%d j=%d", i, j)
			}
		}
	})
}

// testTilingReplication checks that the rate-expanded transform restricted
// to the indices with zero high bits matches the rate-1 transform on the
// same basis.
func testTilingReplication(tc *testContext, t *testing.T) {

	if tc.p.LogRate == 0 {
		return
	}

	t.Run(testString("TilingReplication", tc.p), func(t *testing.T) {

		a := tc.a

		pRate0 := tc.p
		pRate0.LogRate = 0
		pRate0.Basis = a.Basis

		a0, err := NewAdditiveNTT(pRate0)
		require.NoError(t, err)

		p1 := tc.u.ReadNew(a.N())

		require.Equal(t, a0.ForwardNew(p1), a.ForwardNew(p1)[:a.N()])
	})
}

func testBackward(tc *testContext, t *testing.T) {

	if tc.p.LogRate != 0 {

		t.Run(testString("Backward/PanicsAtRate", tc.p), func(t *testing.T) {
			p1 := make([]gf.Element, tc.a.CodewordLen())
			p2 := make([]gf.Element, tc.a.CodewordLen())
			require.Panics(t, func() { tc.a.Backward(p1, p2) })
		})

		return
	}

	t.Run(testString("Backward", tc.p), func(t *testing.T) {

		a := tc.a

		p1 := tc.u.ReadNew(a.N())

		require.Equal(t, p1, a.BackwardNew(a.ForwardNew(p1)))
	})
}

func testEvaluationPoints(tc *testContext, t *testing.T) {

	t.Run(testString("EvaluationPoints", tc.p), func(t *testing.T) {

		a := tc.a

		// A linearly independent basis yields pairwise distinct points.
		seen := make(map[gf.Element]int, a.CodewordLen())
		for j := 0; j < a.CodewordLen(); j++ {
			seen[a.EvaluationPoint(uint64(j))] = j
		}
		require.Equal(t, a.CodewordLen(), len(seen))

		require.Panics(t, func() { a.EvaluationPoint(uint64(a.CodewordLen())) })
	})
}

// testConcreteGF4 pins the transform bit-for-bit on the smallest
// rate-expanded instance: GF(4) = GF(2)(g), basis [1, g], one message bit of
// length 2 replicated once.
func testConcreteGF4(t *testing.T) {

	t.Run("ConcreteGF4", func(t *testing.T) {

		g := gf.Element(2)

		a, err := NewAdditiveNTT(Parameters{
			FieldDegree: 2,
			LogN:        1,
			LogRate:     1,
			Basis:       []gf.Element{1, g},
		})
		require.NoError(t, err)

		f := a.Field()

		// The domain is 0, 1, g, 1+g and the message polynomial is
		// a0 + a1*X with X the identity, so the codeword is the
		// evaluation of a0 + a1*x at the four field elements.
		for a0 := gf.Element(0); a0 < 4; a0++ {
			for a1 := gf.Element(0); a1 < 4; a1++ {

				want := []gf.Element{
					a0,
					a0 ^ a1,
					a0 ^ f.Mul(a1, g),
					a0 ^ f.Mul(a1, g^1),
				}

				require.Equal(t, want, a.ForwardNew([]gf.Element{a0, a1}))
			}
		}
	})
}

func testTileComposition(t *testing.T) {

	t.Run("TileComposition", func(t *testing.T) {

		source := sampling.NewSource([32]byte{0x07})

		p1 := make([]gf.Element, 8)
		for i := range p1 {
			p1[i] = gf.Element(source.Uint64())
		}

		// Tiling by 2^2 then 2^1 equals tiling by 2^3.
		step := make([]gf.Element, 32)
		Tile(p1, step)

		twice := make([]gf.Element, 64)
		Tile(step, twice)

		direct := make([]gf.Element, 64)
		Tile(p1, direct)

		require.Equal(t, direct, twice)

		// Length contracts
		require.Panics(t, func() { Tile(p1[:3], step) })
		require.Panics(t, func() { Tile(step, p1) })
	})
}

// testStageOrdering confirms that the stage schedule is order-sensitive:
// running the stages in ascending order breaks the definition.
func testStageOrdering(t *testing.T) {

	t.Run("StageOrdering", func(t *testing.T) {

		a, err := NewAdditiveNTT(Parameters{FieldDegree: 8, LogN: 2, LogRate: 0, Basis: []gf.Element{1, 2}})
		require.NoError(t, err)

		p1 := []gf.Element{0, 1, 0, 0}

		want := a.ForwardNew(p1)

		wrong := make([]gf.Element, a.CodewordLen())
		Tile(p1, wrong)
		for i := 0; i < a.LogN; i++ { // ascending instead of descending
			nttStageCore(wrong, a.Field(), i, a.LogN+a.LogRate, a.Twiddles[i])
		}

		require.NotEqual(t, want, wrong)
	})
}

func testConcurrent(t *testing.T) {

	t.Run("Concurrent", func(t *testing.T) {

		p := Parameters{FieldDegree: 16, LogN: 10, LogRate: 2}

		serial, err := NewAdditiveNTT(p)
		require.NoError(t, err)

		concurrent, err := NewAdditiveNTTConcurrent(p, 3)
		require.NoError(t, err)

		u := gf.NewUniformSampler(sampling.NewSource([32]byte{0x11}), serial.Field())
		p1 := u.ReadNew(serial.N())

		require.Equal(t, serial.ForwardNew(p1), concurrent.ForwardNew(p1))
	})

	t.Run("ConcurrentBackward", func(t *testing.T) {

		p := Parameters{FieldDegree: 32, LogN: 13, LogRate: 0}

		concurrent, err := NewAdditiveNTTConcurrent(p, 4)
		require.NoError(t, err)

		u := gf.NewUniformSampler(sampling.NewSource([32]byte{0x12}), concurrent.Field())
		p1 := u.ReadNew(concurrent.N())

		require.Equal(t, p1, concurrent.BackwardNew(concurrent.ForwardNew(p1)))
	})
}
