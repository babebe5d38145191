package antt

import (
	"testing"

	"github.com/Pro7ech/antt/gf"
	"github.com/Pro7ech/antt/utils/sampling"
)

var benchParameters = []Parameters{
	{FieldDegree: 16, LogN: 10, LogRate: 2},
	{FieldDegree: 16, LogN: 12, LogRate: 2},
	{FieldDegree: 64, LogN: 12, LogRate: 2},
}

func BenchmarkAdditiveNTT(b *testing.B) {

	for _, p := range benchParameters {

		a, err := NewAdditiveNTT(p)
		if err != nil {
			b.Fatal(err)
		}

		u := gf.NewUniformSampler(sampling.NewSource([32]byte{}), a.Field())

		p1 := u.ReadNew(a.N())
		p2 := make([]gf.Element, a.CodewordLen())

		b.Run(testString("Forward", p), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				a.Forward(p1, p2)
			}
		})
	}

	for _, p := range benchParameters {

		a, err := NewAdditiveNTTConcurrent(p, 0)
		if err != nil {
			b.Fatal(err)
		}

		u := gf.NewUniformSampler(sampling.NewSource([32]byte{}), a.Field())

		p1 := u.ReadNew(a.N())
		p2 := make([]gf.Element, a.CodewordLen())

		b.Run(testString("Forward/Concurrent", p), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				a.Forward(p1, p2)
			}
		})
	}
}

func BenchmarkBackward(b *testing.B) {

	p := Parameters{FieldDegree: 64, LogN: 12, LogRate: 0}

	a, err := NewAdditiveNTT(p)
	if err != nil {
		b.Fatal(err)
	}

	u := gf.NewUniformSampler(sampling.NewSource([32]byte{}), a.Field())

	p1 := u.ReadNew(a.N())
	p2 := make([]gf.Element, a.N())

	b.Run(testString("Backward", p), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			a.Backward(p1, p2)
		}
	})
}

func BenchmarkFieldMul(b *testing.B) {

	for _, m := range []int{16, 32, 64} {

		f, err := gf.NewField(m)
		if err != nil {
			b.Fatal(err)
		}

		u := gf.NewUniformSampler(sampling.NewSource([32]byte{}), f)

		x := u.ReadNew(1)[0]
		y := u.ReadNew(1)[0]

		b.Run(testString("Mul", Parameters{FieldDegree: m}), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				x = f.Mul(x, y)
			}
		})
	}
}
