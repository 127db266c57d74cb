package rational

import "testing"

func TestReduce(t *testing.T) {
	cases := []struct {
		num, den     int64
		wantN, wantD int64
	}{
		{4, 12, 1, 3},
		{-32, 100, -8, 25},
		{0, 100, 0, 1},
	}
	for _, c := range cases {
		got, err := New(c.num, c.den)
		if err != nil {
			t.Fatalf("New(%d,%d): %v", c.num, c.den, err)
		}
		if got.Num != c.wantN || got.Den != uint64(c.wantD) {
			t.Errorf("New(%d,%d) = %d/%d, want %d/%d", c.num, c.den, got.Num, got.Den, c.wantN, c.wantD)
		}
	}
}

func TestGCDLargeShared(t *testing.T) {
	const shared = 0xa519bc952f7
	a := uint64(shared) * 0x1542
	b := uint64(shared) * 0xa93
	if g := gcdU64(a, b); g != shared {
		t.Errorf("gcd = %#x, want %#x", g, uint64(shared))
	}
}

func TestEqualAcrossDenominators(t *testing.T) {
	a, _ := New(1, 3)
	b, _ := New(4, 12)
	if !Equal(a, b) {
		t.Errorf("Equal(%v, %v) = false, want true", a, b)
	}
}

func TestAddSubMulDiv(t *testing.T) {
	a, _ := New(1, 3)
	b, _ := New(1, 6)
	sum, err := Add(a, b)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := New(1, 2)
	if !Equal(sum, want) {
		t.Errorf("1/3+1/6 = %v, want %v", sum, want)
	}

	diff, err := Sub(a, b)
	if err != nil {
		t.Fatal(err)
	}
	want, _ = New(1, 6)
	if !Equal(diff, want) {
		t.Errorf("1/3-1/6 = %v, want %v", diff, want)
	}

	prod, err := Mul(a, b)
	if err != nil {
		t.Fatal(err)
	}
	want, _ = New(1, 18)
	if !Equal(prod, want) {
		t.Errorf("1/3*1/6 = %v, want %v", prod, want)
	}

	quot, err := Div(a, b)
	if err != nil {
		t.Fatal(err)
	}
	want, _ = New(2, 1)
	if !Equal(quot, want) {
		t.Errorf("1/3 / 1/6 = %v, want %v", quot, want)
	}
}

func TestCompare(t *testing.T) {
	a, _ := New(1, 3)
	b, _ := New(1, 2)
	if !LessThan(a, b) {
		t.Errorf("1/3 < 1/2 should hold")
	}
	if LessThan(b, a) {
		t.Errorf("1/2 < 1/3 should not hold")
	}
	if Cmp(a, a) != 0 {
		t.Errorf("Cmp(a,a) != 0")
	}
}

func TestLessOrEqualOneGreaterThanOne(t *testing.T) {
	half, _ := New(1, 2)
	if !LessOrEqualOne(half) {
		t.Errorf("1/2 should be <= 1")
	}
	if GreaterThanOne(half) {
		t.Errorf("1/2 should not be > 1")
	}
	three, _ := New(3, 1)
	if !GreaterThanOne(three) {
		t.Errorf("3 should be > 1")
	}
	one, _ := New(1, 1)
	if !LessOrEqualOne(one) {
		t.Errorf("1 should be <= 1")
	}
	if GreaterThanOne(one) {
		t.Errorf("1 should not be > 1")
	}
}

func TestOverflowDetected(t *testing.T) {
	big := Q128{Num: 1 << 62, Den: 1}
	if _, err := Mul(big, big); err != ErrOverflow {
		t.Errorf("expected overflow, got %v", err)
	}
}

func TestZeroDenominator(t *testing.T) {
	if _, err := New(1, 0); err == nil {
		t.Errorf("expected error for zero denominator")
	}
}
