package model

import (
	"errors"
	"math"
	"testing"
)

func TestNewSimulationConfig_Valid(t *testing.T) {
	c, err := NewSimulationConfig(0.02, 0.2, 1, 5, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.PathCount != 1000 || c.Horizon != 5 {
		t.Fatalf("config not populated: %+v", c)
	}
	if got, want := c.Drift(), 0.02-0.5*0.04; math.Abs(got-want) > 1e-15 {
		t.Fatalf("drift: got %v want %v", got, want)
	}
	if got, want := c.DiscountFactor(5), math.Exp(-0.1); got != want {
		t.Fatalf("discount: got %v want %v", got, want)
	}
}

func TestNewSimulationConfig_Rejects(t *testing.T) {
	cases := []struct {
		name            string
		r, sig, s0, hor float64
		n               int
	}{
		{"zero vol", 0.02, 0, 1, 5, 10},
		{"negative vol", 0.02, -0.1, 1, 5, 10},
		{"zero spot", 0.02, 0.2, 0, 5, 10},
		{"zero paths", 0.02, 0.2, 1, 5, 0},
		{"negative paths", 0.02, 0.2, 1, 5, -3},
		{"zero horizon", 0.02, 0.2, 1, 0, 10},
		{"nan rate", math.NaN(), 0.2, 1, 5, 10},
		{"inf vol", 0.02, math.Inf(1), 1, 5, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSimulationConfig(tc.r, tc.sig, tc.s0, tc.hor, tc.n)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestWithPathCount_DoesNotMutate(t *testing.T) {
	c, _ := NewSimulationConfig(0.02, 0.2, 1, 5, 1000)
	d, err := c.WithPathCount(50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.PathCount != 1000 || d.PathCount != 50 {
		t.Fatalf("got original=%d copy=%d", c.PathCount, d.PathCount)
	}
	if _, err := c.WithPathCount(0); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestOptionContract_Validate(t *testing.T) {
	ok := OptionContract{Strike: 1, Maturity: 5, Kind: Call}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, T := range []float64{0, -1, math.NaN()} {
		c := OptionContract{Strike: 1, Maturity: T, Kind: Put}
		if err := c.Validate(); !errors.Is(err, ErrInvalidMaturity) {
			t.Fatalf("T=%v: expected ErrInvalidMaturity, got %v", T, err)
		}
	}
	bad := OptionContract{Strike: 0, Maturity: 1, Kind: Call}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	badKind := OptionContract{Strike: 1, Maturity: 1, Kind: "STRADDLE"}
	if err := badKind.Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestOptionContract_CheckHorizon(t *testing.T) {
	c := OptionContract{Strike: 1, Maturity: 5, Kind: Call}
	if err := c.CheckHorizon(5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.CheckHorizon(4); !errors.Is(err, ErrMaturityMismatch) {
		t.Fatalf("expected ErrMaturityMismatch, got %v", err)
	}
}

func TestParseOptionKind(t *testing.T) {
	for in, want := range map[string]OptionKind{"call": Call, "C": Call, " Put ": Put, "p": Put} {
		got, err := ParseOptionKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseOptionKind(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseOptionKind("straddle"); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestTimeGrid(t *testing.T) {
	g := Grid(2, 5, 8)
	if g.IsScalar() || g.Columns() != 4 {
		t.Fatalf("grid shape wrong: scalar=%v cols=%d", g.IsScalar(), g.Columns())
	}
	if got := g.WithOrigin(); len(got) != 4 || got[0] != 0 || got[3] != 8 {
		t.Fatalf("WithOrigin = %v", got)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := At(0)
	if !s.IsScalar() || s.Columns() != 1 || s.Scalar() != 0 {
		t.Fatalf("scalar grid wrong: %+v", s)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("t=0 should be valid: %v", err)
	}

	invalid := []TimeGrid{At(-1), At(math.NaN()), Grid(), Grid(0, 1), Grid(1, 1), Grid(2, 1), Grid(-1, 2)}
	for _, g := range invalid {
		if err := g.Validate(); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("grid %v: expected ErrInvalidParameter, got %v", g.Times(), err)
		}
	}
}

func TestGrid_CopiesInput(t *testing.T) {
	in := []float64{1, 2}
	g := Grid(in...)
	in[0] = 99
	if g.Times()[0] != 1 {
		t.Fatalf("grid aliases caller slice")
	}
}

func TestUniformGrid(t *testing.T) {
	g, err := UniformGrid(5, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{1.25, 2.5, 3.75, 5}
	got := g.Times()
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("time[%d]=%v want %v", i, got[i], want[i])
		}
	}
	if _, err := UniformGrid(5, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}
