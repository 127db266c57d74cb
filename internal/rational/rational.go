// Package rational implements the exact 128-bit rational arithmetic used by
// the constructive area geometry pipeline: every coordinate, intersection
// parameter, and vertex produced by edge intersection is a q128, never a
// floating-point approximation, so that downstream boundary tracing and
// winding computation can rely on exact equality and ordering.
package rational

import (
	"errors"
	"math/bits"
)

// ErrOverflow is returned when an intermediate product or sum cannot be
// represented exactly in the 64-bit limbs backing a q128. Per
// this is always fatal: it indicates a scaling bug upstream (coordinates
// exceeding the 20-bit tile budget), never a recoverable condition.
var ErrOverflow = errors.New("rational: overflow")

// Q128 is a signed rational number: a 64-bit signed numerator over a 64-bit
// unsigned denominator, always held in reduced form with Den > 0.
type Q128 struct {
	Num int64
	Den uint64
}

// Zero is the additive identity.
var Zero = Q128{Num: 0, Den: 1}

// One is the multiplicative identity.
var One = Q128{Num: 1, Den: 1}

// New builds a reduced Q128 from an integer numerator and a nonzero
// denominator. A negative denominator is normalized by flipping both signs.
func New(num int64, den int64) (Q128, error) {
	if den == 0 {
		return Q128{}, errors.New("rational: zero denominator")
	}
	if den < 0 {
		if num == minInt64 || den == minInt64 {
			return Q128{}, ErrOverflow
		}
		num, den = -num, -den
	}
	return reduce(num, uint64(den))
}

// FromInt builds a Q128 equal to the integer n.
func FromInt(n int64) Q128 { return Q128{Num: n, Den: 1} }

const minInt64 = -1 << 63

func gcdU64(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func absI64(n int64) (uint64, error) {
	if n == minInt64 {
		return 0, ErrOverflow
	}
	if n < 0 {
		return uint64(-n), nil
	}
	return uint64(n), nil
}

// reduce normalizes num/den by their GCD. It accepts any int64 numerator and
// uint64 denominator and returns the canonical reduced form, or 0/1 if the
// numerator is zero.
func reduce(num int64, den uint64) (Q128, error) {
	if num == 0 {
		return Zero, nil
	}
	absNum, err := absI64(num)
	if err != nil {
		return Q128{}, err
	}
	g := gcdU64(absNum, den)
	if g == 0 {
		g = 1
	}
	absNum /= g
	den /= g
	if absNum > uint64(1<<63-1) {
		return Q128{}, ErrOverflow
	}
	result := int64(absNum)
	if num < 0 {
		result = -result
	}
	return Q128{Num: result, Den: den}, nil
}

// Reduce re-normalizes q (a no-op if q is already in canonical form; q128
// values built only through this package always are, but values assembled
// by callers via struct literals are not guaranteed to be).
func Reduce(q Q128) (Q128, error) {
	if q.Num >= 0 {
		return reduce(q.Num, q.Den)
	}
	return reduce(q.Num, q.Den)
}

// mulU64Overflow multiplies two uint64 values, returning ErrOverflow if the
// 128-bit product does not fit in 64 bits.
func mulU64Overflow(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrOverflow
	}
	return lo, nil
}

// Add returns a+b.
func Add(a, b Q128) (Q128, error) {
	den, err := mulU64Overflow(a.Den, b.Den)
	if err != nil {
		return Q128{}, err
	}
	n1, err := mulI64U64(a.Num, b.Den)
	if err != nil {
		return Q128{}, err
	}
	n2, err := mulI64U64(b.Num, a.Den)
	if err != nil {
		return Q128{}, err
	}
	num, ok := addI64(n1, n2)
	if !ok {
		return Q128{}, ErrOverflow
	}
	return reduce(num, den)
}

// Sub returns a-b.
func Sub(a, b Q128) (Q128, error) {
	neg := b
	if neg.Num != minInt64 {
		neg.Num = -neg.Num
		return Add(a, neg)
	}
	return Q128{}, ErrOverflow
}

// Mul returns a*b.
func Mul(a, b Q128) (Q128, error) {
	den, err := mulU64Overflow(a.Den, b.Den)
	if err != nil {
		return Q128{}, err
	}
	num, err := mulI64I64(a.Num, b.Num)
	if err != nil {
		return Q128{}, err
	}
	return reduce(num, den)
}

// Div returns a/b.
func Div(a, b Q128) (Q128, error) {
	if b.Num == 0 {
		return Q128{}, errors.New("rational: division by zero")
	}
	flipped := Q128{Num: int64(b.Den), Den: 0}
	if b.Num < 0 {
		if b.Num == minInt64 {
			return Q128{}, ErrOverflow
		}
		flipped.Num = -flipped.Num
		flipped.Den = uint64(-b.Num)
	} else {
		flipped.Den = uint64(b.Num)
	}
	return Mul(a, flipped)
}

// mulI64U64 multiplies a signed i64 by an unsigned u64, returning the
// result as an i64, or ErrOverflow if it does not fit.
func mulI64U64(a int64, b uint64) (int64, error) {
	absA, err := absI64(a)
	if err != nil {
		return 0, err
	}
	product, err := mulU64Overflow(absA, b)
	if err != nil {
		return 0, err
	}
	if product > uint64(1<<63-1) {
		if a < 0 && product == uint64(1<<63) {
			return minInt64, nil
		}
		return 0, ErrOverflow
	}
	result := int64(product)
	if a < 0 {
		result = -result
	}
	return result, nil
}

// mulI64I64 multiplies two signed i64 values, returning ErrOverflow on
// overflow of the 64-bit magnitude product.
func mulI64I64(a, b int64) (int64, error) {
	absB, err := absI64(b)
	if err != nil {
		return 0, err
	}
	neg := (a < 0) != (b < 0)
	result, err := mulI64U64(a, absB)
	if err != nil {
		return 0, err
	}
	if neg && result > 0 {
		result = -result
	} else if !neg && result < 0 {
		return 0, ErrOverflow
	}
	return result, nil
}

// addI64 adds two signed i64 values, reporting overflow via the second
// return value.
func addI64(a, b int64) (int64, bool) {
	sum := a + b
	if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum > 0) {
		return 0, false
	}
	return sum, true
}

// Equal reports whether a and b represent the same rational value, via
// cross-multiplication to avoid requiring a common denominator.
func Equal(a, b Q128) bool {
	if a.Num == 0 && b.Num == 0 {
		return true
	}
	l, lerr := mulI64U64WidenOK(a.Num, b.Den)
	r, rerr := mulI64U64WidenOK(b.Num, a.Den)
	if lerr && rerr {
		return l == r
	}
	// Fall back to wide (big-ish) comparison using hi/lo products when the
	// 64-bit fast path would overflow; the reduced-form invariant keeps
	// this rare in practice.
	return crossEqualWide(a, b)
}

// mulI64U64WidenOK attempts the cross product via the fast signed path,
// reporting false if it overflowed.
func mulI64U64WidenOK(a int64, b uint64) (int64, bool) {
	v, err := mulI64U64(a, b)
	return v, err == nil
}

// crossEqualWide compares a.Num*b.Den against b.Num*a.Den using full
// 128-bit products via bits.Mul64, handling the sign separately.
func crossEqualWide(a, b Q128) bool {
	aAbs, _ := absI64(a.Num)
	bAbs, _ := absI64(b.Num)
	lhi, llo := bits.Mul64(aAbs, b.Den)
	rhi, rlo := bits.Mul64(bAbs, a.Den)
	aNeg := a.Num < 0
	bNeg := b.Num < 0
	if aNeg != bNeg {
		return lhi == 0 && rhi == 0 && llo == 0 && rlo == 0
	}
	return lhi == rhi && llo == rlo
}

// Cmp returns -1, 0, or 1 as a<b, a==b, a>b.
func Cmp(a, b Q128) int {
	if Equal(a, b) {
		return 0
	}
	if LessThan(a, b) {
		return -1
	}
	return 1
}

// LessThan reports whether a < b, via cross-multiplication.
func LessThan(a, b Q128) bool {
	// a/da < b/db  <=>  a*db < b*da  (denominators are always positive)
	l, lok := mulI64U64WidenOK(a.Num, b.Den)
	r, rok := mulI64U64WidenOK(b.Num, a.Den)
	if lok && rok {
		return l < r
	}
	return lessThanWide(a, b)
}

func lessThanWide(a, b Q128) bool {
	aAbs, _ := absI64(a.Num)
	bAbs, _ := absI64(b.Num)
	lhi, llo := bits.Mul64(aAbs, b.Den)
	rhi, rlo := bits.Mul64(bAbs, a.Den)
	aNeg := a.Num < 0
	bNeg := b.Num < 0
	if aNeg && !bNeg {
		return !(lhi == 0 && llo == 0 && rhi == 0 && rlo == 0)
	}
	if !aNeg && bNeg {
		return false
	}
	if !aNeg && !bNeg {
		if lhi != rhi {
			return lhi < rhi
		}
		return llo < rlo
	}
	// both negative: magnitude comparison reversed
	if lhi != rhi {
		return lhi > rhi
	}
	return llo > rlo
}

// IsZero reports whether q == 0.
func IsZero(q Q128) bool { return q.Num == 0 }

// IsNegative reports whether q < 0.
func IsNegative(q Q128) bool { return q.Num < 0 }

// LessOrEqualOne reports whether q <= 1.
func LessOrEqualOne(q Q128) bool { return !LessThan(One, q) }

// GreaterThanOne reports whether q > 1.
func GreaterThanOne(q Q128) bool { return LessThan(One, q) }

// Neg returns -q.
func Neg(q Q128) Q128 {
	if q.Num == minInt64 {
		return q // unrepresentable exactly negated; caller should have checked range
	}
	return Q128{Num: -q.Num, Den: q.Den}
}

// Float64 returns the closest float64 approximation of q, for diagnostics
// and non-exact consumers (pixel-space bounding boxes, logging).
func Float64(q Q128) float64 {
	return float64(q.Num) / float64(q.Den)
}
