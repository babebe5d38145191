package antt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Pro7ech/antt/gf"
	"github.com/Pro7ech/antt/utils/sampling"
)

func TestVecOps(t *testing.T) {

	f, err := gf.NewField(16)
	require.NoError(t, err)

	u := gf.NewUniformSampler(sampling.NewSource([32]byte{}), f)

	// An odd length exercises the unrolled body and the scalar tail.
	n := 67

	p1 := u.ReadNew(n)
	p2 := u.ReadNew(n)
	scalar := u.ReadNew(1)[0]

	t.Run("AddVec", func(t *testing.T) {

		p3 := make([]gf.Element, n)
		AddVec(p1, p2, p3)

		for i := range p3 {
			require.Equal(t, p1[i]^p2[i], p3[i])
		}

		// In place
		cp := append([]gf.Element(nil), p1...)
		AddVec(cp, p2, cp)
		require.Equal(t, p3, cp)

		require.Panics(t, func() { AddVec(p1, p2[:n-1], p3) })
	})

	t.Run("MulScalarVec", func(t *testing.T) {

		p3 := make([]gf.Element, n)
		MulScalarVec(p1, scalar, p3, f)

		for i := range p3 {
			require.Equal(t, f.Mul(p1[i], scalar), p3[i])
		}

		require.Panics(t, func() { MulScalarVec(p1, scalar, p3[:n-1], f) })
	})

	t.Run("MulScalarThenAddVec", func(t *testing.T) {

		p3 := append([]gf.Element(nil), p2...)
		MulScalarThenAddVec(p1, scalar, p3, f)

		for i := range p3 {
			require.Equal(t, p2[i]^f.Mul(p1[i], scalar), p3[i])
		}
	})
}
