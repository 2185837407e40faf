// Package shape generates reproducible organic outlines from a hole seed.
//
// Every random draw is a pure function of (seed, channel, index): no generator
// state survives between calls, so any peer holding the seed and the base
// dimensions rebuilds the same outline bit for bit.
package shape

// Channel separates independent random streams drawn from one seed.
type Channel uint32

// Channels are spaced so Sub(n) never reaches the next base channel.
const (
	ChannelGreen     Channel = 0x0100
	ChannelFairway   Channel = 0x0200
	ChannelWater     Channel = 0x0300
	ChannelBunker    Channel = 0x0400
	ChannelTee       Channel = 0x0500
	ChannelRough     Channel = 0x0600
	ChannelObstacles Channel = 0x0700
	ChannelLayout    Channel = 0x0800
	ChannelColor     Channel = 0x0900
	ChannelTerrain   Channel = 0x0A00
)

// Sub returns the n-th sub-channel (bunker 2, rough tier 1, ...). n is taken modulo 256.
func (c Channel) Sub(n int) Channel {
	return c + Channel(n&0xFF)
}

const (
	golden = 0x9E3779B97F4A7C15
	mixA   = 0xBF58476D1CE4E5B9
	mixB   = 0x94D049BB133111EB
)

// mix64 is the splitmix64 finalizer.
func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * mixA
	z = (z ^ (z >> 27)) * mixB
	return z ^ (z >> 31)
}

// Hash returns 64 well-mixed bits for (seed, channel, index).
func Hash(seed int64, ch Channel, index int) uint64 {
	h := mix64(uint64(seed) + golden)
	h = mix64(h ^ uint64(ch)*mixA)
	return mix64(h ^ uint64(index)*mixB)
}

// Unit maps Hash into [0, 1) using the top 53 bits.
func Unit(seed int64, ch Channel, index int) float64 {
	return float64(Hash(seed, ch, index)>>11) * 0x1p-53
}

// Signed maps Hash into [-1, 1).
func Signed(seed int64, ch Channel, index int) float64 {
	return 2*Unit(seed, ch, index) - 1
}

// Rand is a counter-based stream over Hash. The zero value is not useful; use NewRand.
// Two Rand values with the same seed and channel yield the same sequence.
type Rand struct {
	seed int64
	ch   Channel
	n    int
}

// NewRand starts a stream at index 0.
func NewRand(seed int64, ch Channel) *Rand {
	return &Rand{seed: seed, ch: ch}
}

// Uint64 returns the next 64 random bits.
func (r *Rand) Uint64() uint64 {
	h := Hash(r.seed, r.ch, r.n)
	r.n++
	return h
}

// Float64 returns the next value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint64()>>11) * 0x1p-53
}

// Range returns the next value in [lo, hi).
func (r *Rand) Range(lo, hi float64) float64 {
	return lo + float64((hi-lo)*r.Float64())
}

// IntN returns the next value in [0, n). n <= 0 returns 0.
func (r *Rand) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Uint64() % uint64(n))
}

// IntRange returns the next value in [lo, hi], both inclusive.
func (r *Rand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// Sign returns -1 or +1.
func (r *Rand) Sign() float64 {
	if r.Uint64()&1 == 0 {
		return -1
	}
	return 1
}

// Chance returns true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.Float64() < p
}

// Drawn returns how many values have been taken from the stream.
func (r *Rand) Drawn() int {
	return r.n
}
