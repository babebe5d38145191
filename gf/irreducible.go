package gf

import (
	"math/bits"
)

// isIrreducible runs the Rabin irreducibility test on the monic polynomial
// x^m + rp over GF(2): the candidate is irreducible iff x^(2^m) = x in the
// quotient ring and gcd(x^(2^(m/d)) - x, p) = 1 for every prime divisor d
// of m.
func isIrreducible(m int, rp uint64) bool {

	if m == 1 {
		return rp == 1
	}

	// An even constant term means the candidate is divisible by x.
	if rp&1 == 0 {
		return false
	}

	var mask uint64
	if m == 64 {
		mask = ^uint64(0)
	} else {
		mask = (1 << uint(m)) - 1
	}
	msb := uint64(1) << uint(m-1)

	mulMod := func(a, b uint64) (r uint64) {
		for b != 0 {
			if b&1 != 0 {
				r ^= a
			}
			b >>= 1
			carry := a & msb
			a = (a << 1) & mask
			if carry != 0 {
				a ^= rp
			}
		}
		return
	}

	// powers[k] = x^(2^(k+1)) mod p
	t := uint64(2) // the element x
	powers := make([]uint64, m)
	for k := 0; k < m; k++ {
		t = mulMod(t, t)
		powers[k] = t
	}

	if powers[m-1] != 2 {
		return false
	}

	for _, d := range primeDivisors(m) {
		// h = x^(2^(m/d)) - x
		if gcdWithModulus(m, rp, powers[m/d-1]^2) != 1 {
			return false
		}
	}

	return true
}

// primeDivisors returns the distinct prime divisors of n by trial division.
func primeDivisors(n int) (ps []int) {
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			ps = append(ps, d)
			for n%d == 0 {
				n /= d
			}
		}
	}
	if n > 1 {
		ps = append(ps, n)
	}
	return
}

// gcdWithModulus returns gcd(x^m + rp, h) over GF(2)[x], with the degree-m
// modulus given implicitly so that the computation fits in 64-bit words.
func gcdWithModulus(m int, rp, h uint64) uint64 {

	if h == 0 {
		return 0
	}

	if h == 1 {
		return 1
	}

	// First Euclid step: (x^m + rp) mod h.
	var xm uint64 = 1
	for i := 0; i < m; i++ {
		xm <<= 1
		if bits.Len64(xm) == bits.Len64(h) {
			xm ^= h
		}
	}

	a, b := h, polyMod(xm^rp, h)

	for b != 0 {
		a, b = b, polyMod(a, b)
	}

	return a
}

// polyMod returns a mod b over GF(2)[x]. b must be non-zero.
func polyMod(a, b uint64) uint64 {
	db := bits.Len64(b)
	for a != 0 && bits.Len64(a) >= db {
		a ^= b << uint(bits.Len64(a)-db)
	}
	return a
}
