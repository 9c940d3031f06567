// Package frame implements the batched Pauli-frame simulator (C7):
// propagating many independent noisy shots of a stabilizer circuit in
// lockstep using the bitword/bittable packed-bit layer.
package frame

import (
	"math"

	"github.com/quantumsim/stabsim/bitword"
)

// mtN and mtM are the MT19937-64 state-vector size and twist offset.
const (
	mtN = 312
	mtM = 156

	mtMatrixA     = 0xB5026F5AA96619E9
	mtUpperMask   = 0xFFFFFFFF80000000
	mtLowerMask   = 0x7FFFFFFF
	versionSkewed = 0x5374616253696D01 // "StabSim\x01", XORed into every seed
)

// RNG is a 64-bit Mersenne Twister (MT19937-64) generator, the engine
// spec.md §4.4 calls for. Every FrameSimulator owns one, seeded
// independently; derivations fork by integer counter via Fork rather
// than by sharing state (spec.md §5's "each simulator owns its RNG").
//
// A version-skew constant is XORed into every seed so that two RNGs
// accidentally seeded the same way across incompatible releases of
// this package produce visibly different streams rather than silently
// compatible-looking ones (spec.md §4.4).
type RNG struct {
	state [mtN]uint64
	index int
}

// NewRNG seeds a fresh RNG from a single 64-bit seed.
func NewRNG(seed uint64) *RNG {
	r := &RNG{}
	r.seedMT(seed ^ versionSkewed)
	return r
}

func (r *RNG) seedMT(seed uint64) {
	r.state[0] = seed
	for i := 1; i < mtN; i++ {
		prev := r.state[i-1]
		r.state[i] = 6364136223846793005*(prev^(prev>>62)) + uint64(i)
	}
	r.index = mtN
}

// Fork derives an independent RNG from r using an integer counter,
// rather than sharing r's state: splitmix64-mixes (seed, counter) into
// a fresh MT19937-64 seed. This is how the frame simulator gives each
// noise channel or each measurement its own sub-stream without a
// global call-order dependency.
func (r *RNG) Fork(counter uint64) *RNG {
	z := r.state[0] ^ (counter * 0x9E3779B97F4A7C15)
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return NewRNG(z)
}

// Uint64 returns the next raw 64-bit output.
func (r *RNG) Uint64() uint64 {
	if r.index >= mtN {
		r.twist()
	}
	x := r.state[r.index]
	r.index++

	x ^= (x >> 29) & 0x5555555555555555
	x ^= (x << 17) & 0x71D67FFFEDA60000
	x ^= (x << 37) & 0xFFF7EEE000000000
	x ^= x >> 43
	return x
}

func (r *RNG) twist() {
	for i := 0; i < mtN; i++ {
		x := (r.state[i] & mtUpperMask) | (r.state[(i+1)%mtN] & mtLowerMask)
		xA := x >> 1
		if x&1 != 0 {
			xA ^= mtMatrixA
		}
		r.state[i] = r.state[(i+mtM)%mtN] ^ xA
	}
	r.index = 0
}

// Float64 returns a uniform value in [0,1).
func (r *RNG) Float64() float64 {
	// 53 bits of mantissa, the same technique math/rand uses.
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Bool returns a fair coin flip.
func (r *RNG) Bool() bool { return r.Uint64()&1 != 0 }

// BernoulliFill sets the first n bits of dst to independent Bernoulli(p)
// draws, leaving the rest of dst untouched. For p in (0,1) it uses a
// reservoir-style geometric skip (sample a gap length from the
// geometric distribution implied by p, jump, set one bit, repeat)
// instead of flipping a biased coin per bit: this is the "avoid
// per-bit branching" construction spec.md §4.4 names, since the number
// of RNG draws is proportional to the number of 1-bits rather than to
// n for small p.
func (r *RNG) BernoulliFill(dst *bitword.BitVector, p float64) {
	n := dst.Len()
	if n == 0 || p <= 0 {
		return
	}
	if p >= 1 {
		for i := 0; i < n; i++ {
			dst.At(i).Set(true)
		}
		return
	}
	logNotP := math.Log1p(-p)
	i := 0
	for {
		u := r.Float64()
		if u <= 0 {
			u = minPositiveFloat64
		}
		skip := int(math.Log(u) / logNotP)
		i += skip
		if i >= n {
			return
		}
		dst.At(i).Set(true)
		i++
	}
}

// BernoulliXor XORs independent Bernoulli(p) draws into the first n
// bits of dst (n = dst.Len()), using the same geometric-skip
// construction as BernoulliFill. Used wherever a noise channel's
// effect composes with whatever frame bits are already present (Pauli
// channels, before_measure_flip_probability) rather than overwriting
// them.
func (r *RNG) BernoulliXor(dst *bitword.BitVector, p float64) {
	n := dst.Len()
	if n == 0 || p <= 0 {
		return
	}
	if p >= 1 {
		for i := 0; i < n; i++ {
			dst.At(i).Toggle()
		}
		return
	}
	logNotP := math.Log1p(-p)
	i := 0
	for {
		u := r.Float64()
		if u <= 0 {
			u = minPositiveFloat64
		}
		skip := int(math.Log(u) / logNotP)
		i += skip
		if i >= n {
			return
		}
		dst.At(i).Toggle()
		i++
	}
}

// PauliChannel1 applies an independent single-qubit Pauli error to
// each of the n = x.Len() shots, X with probability pX, Y with pY, Z
// with pZ, and I (no effect) with the remaining 1-pX-pY-pZ — the
// disjoint-probability channel PAULI_CHANNEL_1 and (with pX=pY=pZ=p/3)
// DEPOLARIZE1 both reduce to. Reuses the same sparse geometric-skip
// walk as BernoulliFill/BernoulliXor over "did anything happen to this
// shot", since only total=pX+pY+pZ of shots need a second draw to pick
// which branch fired.
func (r *RNG) PauliChannel1(x, z *bitword.BitVector, pX, pY, pZ float64) {
	total := pX + pY + pZ
	n := x.Len()
	if n == 0 || total <= 0 {
		return
	}
	if total > 1 {
		total = 1
	}
	logNotP := math.Log1p(-total)
	i := 0
	for {
		u := r.Float64()
		if u <= 0 {
			u = minPositiveFloat64
		}
		skip := int(math.Log(u) / logNotP)
		i += skip
		if i >= n {
			return
		}
		branch := r.Float64() * total
		switch {
		case branch < pX:
			x.At(i).Toggle()
		case branch < pX+pY:
			x.At(i).Toggle()
			z.At(i).Toggle()
		default:
			z.At(i).Toggle()
		}
		i++
	}
}

// PauliChannel2 applies an independent two-qubit Pauli error to each
// shot of the pair (xa,za)/(xb,zb), picking one of the 15 nontrivial
// two-qubit Paulis according to probs (ordered IX, IY, IZ, XI, XX, XY,
// XZ, YI, YX, YY, YZ, ZI, ZX, ZY, ZZ — this package's own convention,
// since no retrieved source fixed PAULI_CHANNEL_2's argument order) or
// leaving the shot untouched with the remaining probability.
func (r *RNG) PauliChannel2(xa, za, xb, zb *bitword.BitVector, probs [15]float64) {
	var total float64
	for _, p := range probs {
		total += p
	}
	n := xa.Len()
	if n == 0 || total <= 0 {
		return
	}
	if total > 1 {
		total = 1
	}
	logNotP := math.Log1p(-total)
	i := 0
	for {
		u := r.Float64()
		if u <= 0 {
			u = minPositiveFloat64
		}
		skip := int(math.Log(u) / logNotP)
		i += skip
		if i >= n {
			return
		}
		branch := r.Float64() * total
		var acc float64
		applied := false
		for k, p := range probs {
			acc += p
			if branch < acc {
				a, b := pauliChannel2Components(k)
				applyPauliBit(xa, za, i, a)
				applyPauliBit(xb, zb, i, b)
				applied = true
				break
			}
		}
		_ = applied
		i++
	}
}

// pauliChannel2Components maps a branch index in [0,15) to the
// (qubit-a, qubit-b) Pauli letters of this package's PAULI_CHANNEL_2
// ordering.
func pauliChannel2Components(k int) (a, b byte) {
	letters := [4]byte{'I', 'X', 'Y', 'Z'}
	// k enumerates the 15 pairs other than (I,I) in row-major order
	// over {I,X,Y,Z}x{I,X,Y,Z}.
	k++ // skip (I,I)
	return letters[k/4], letters[k%4]
}

func applyPauliBit(x, z *bitword.BitVector, i int, letter byte) {
	switch letter {
	case 'X':
		x.At(i).Toggle()
	case 'Y':
		x.At(i).Toggle()
		z.At(i).Toggle()
	case 'Z':
		z.At(i).Toggle()
	}
}

// HeraldedPauliChannel1 implements HERALDED_ERASE (pI=pX=pY=pZ=p/4)
// and HERALDED_PAULI_CHANNEL_1 (arbitrary pI,pX,pY,pZ): heraldVec
// records 1 for shots where any of the four branches fired, and x/z
// receive the corresponding Pauli toggle (none for the I branch).
func (r *RNG) HeraldedPauliChannel1(heraldVec, x, z *bitword.BitVector, pI, pX, pY, pZ float64) {
	total := pI + pX + pY + pZ
	n := heraldVec.Len()
	if n == 0 || total <= 0 {
		return
	}
	if total > 1 {
		total = 1
	}
	logNotP := math.Log1p(-total)
	i := 0
	for {
		u := r.Float64()
		if u <= 0 {
			u = minPositiveFloat64
		}
		skip := int(math.Log(u) / logNotP)
		i += skip
		if i >= n {
			return
		}
		heraldVec.At(i).Set(true)
		branch := r.Float64() * total
		switch {
		case branch < pX:
			x.At(i).Toggle()
		case branch < pX+pY:
			x.At(i).Toggle()
			z.At(i).Toggle()
		case branch < pX+pY+pZ:
			z.At(i).Toggle()
		default:
			// pI branch: herald fires, no physical Pauli applied.
		}
		i++
	}
}

const minPositiveFloat64 = 5e-324
