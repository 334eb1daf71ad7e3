/*
Copyright © 2023 the MRIO authors.
This file is part of MRIO.

MRIO is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

MRIO is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with MRIO.  If not, see <http://www.gnu.org/licenses/>.*/

package mrio

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const tolerance = 1.e-8 // tolerance for float comparison

func different(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return true
	}
	return math.Abs(a-b) > tolerance
}

// testSystem returns a two-region, three-sector system with one final
// demand category and one satellite extension with two stressors.
func testSystem() *System {
	s := NewSystem(
		[]string{"reg1", "reg2"},
		[]string{"sector1", "sector2", "sector3"},
		[]string{"final demand"},
	)
	s.Z = mat.NewDense(6, 6, []float64{
		10, 5, 1, 6, 5, 7,
		0, 2, 0, 0, 5, 3,
		10, 3, 20, 4, 2, 0,
		5, 0, 0, 1, 10, 9,
		0, 10, 1, 0, 20, 1,
		5, 0, 0, 1, 10, 10,
	})
	s.Y = mat.NewDense(6, 2, []float64{
		14, 3,
		2.5, 2.5,
		13, 6,
		5, 20,
		10, 10,
		3, 10,
	})
	s.Extensions = []*Extension{{
		Name:      "emissions",
		Stressors: []string{"ext_type_1", "ext_type_2"},
		F: mat.NewDense(2, 6, []float64{
			20, 1, 42, 4, 20, 5,
			5, 4, 11, 8, 2, 10,
		}),
		FY: mat.NewDense(2, 2, []float64{
			50, 10,
			100, 20,
		}),
	}}
	return s
}

var wantX = []float64{51, 15, 58, 50, 52, 39}

func TestCalcSystem(t *testing.T) {
	s := testSystem()
	if err := s.CalcSystem(); err != nil {
		t.Fatal(err)
	}

	t.Run("x", func(t *testing.T) {
		for i, want := range wantX {
			if have := s.X.AtVec(i); different(have, want) {
				t.Errorf("x[%d]: have %g, want %g", i, have, want)
			}
		}
	})

	t.Run("A", func(t *testing.T) {
		const want = 0.19607843137254902 // 10/51
		if have := s.A.At(0, 0); different(have, want) {
			t.Errorf("A[0,0]: have %g, want %g", have, want)
		}
	})

	t.Run("L", func(t *testing.T) {
		for _, c := range []struct {
			i, j int
			want float64
		}{
			{0, 0, 1.3387146304736708},
			{4, 1, 1.5325472495862535},
		} {
			if have := s.L.At(c.i, c.j); different(have, c.want) {
				t.Errorf("L[%d,%d]: have %g, want %g", c.i, c.j, have, c.want)
			}
		}
	})

	t.Run("Leontief identity", func(t *testing.T) {
		var ima, product mat.Dense
		ima.Sub(eye(6), s.A)
		product.Mul(&ima, s.L)
		for i := 0; i < 6; i++ {
			for j := 0; j < 6; j++ {
				want := 0.0
				if i == j {
					want = 1
				}
				if different(product.At(i, j), want) {
					t.Fatalf("(I-A)L[%d,%d]: have %g, want %g", i, j, product.At(i, j), want)
				}
			}
		}
	})

	t.Run("Ghosh identity", func(t *testing.T) {
		var imb, product mat.Dense
		imb.Sub(eye(6), s.B)
		product.Mul(&imb, s.G)
		for i := 0; i < 6; i++ {
			for j := 0; j < 6; j++ {
				want := 0.0
				if i == j {
					want = 1
				}
				if different(product.At(i, j), want) {
					t.Fatalf("(I-B)G[%d,%d]: have %g, want %g", i, j, product.At(i, j), want)
				}
			}
		}
	})
}

// Supplying coefficients and final demand instead of flows must lead
// to the same completed system.
func TestCalcSystemFromCoefficients(t *testing.T) {
	full := testSystem()
	if err := full.CalcSystem(); err != nil {
		t.Fatal(err)
	}

	s := NewSystem(full.Regions, full.Sectors, full.FinalDemandCategories)
	s.A = full.A
	s.Y = full.Y
	if err := s.CalcSystem(); err != nil {
		t.Fatal(err)
	}

	for i, want := range wantX {
		if have := s.X.AtVec(i); different(have, want) {
			t.Errorf("x[%d]: have %g, want %g", i, have, want)
		}
	}
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			if different(s.Z.At(i, j), full.Z.At(i, j)) {
				t.Fatalf("Z[%d,%d]: have %g, want %g", i, j, s.Z.At(i, j), full.Z.At(i, j))
			}
		}
	}
}

// Derivation is best-effort: steps with missing prerequisites are
// reported but do not stop independent steps.
func TestCalcSystemBestEffort(t *testing.T) {
	s := NewSystem([]string{"reg1"}, []string{"sector1", "sector2"}, nil)
	s.A = mat.NewDense(2, 2, []float64{
		0.15, 0.25,
		0.20, 0.05,
	})

	err := s.CalcSystem()
	if err == nil {
		t.Fatal("expected derivation failures")
	}
	if _, ok := err.(DerivationErrors); !ok {
		t.Fatalf("have %T, want DerivationErrors", err)
	}
	if s.L == nil {
		t.Error("L should have been derived from A despite other failures")
	}
	if s.Z != nil || s.X != nil {
		t.Error("Z and X should remain absent without Y")
	}
}

func TestLoc(t *testing.T) {
	s := testSystem()
	i, err := s.Loc("reg2", "sector1")
	if err != nil {
		t.Fatal(err)
	}
	if i != 3 {
		t.Errorf("have %d, want 3", i)
	}
	if _, err := s.Loc("reg3", "sector1"); err == nil {
		t.Error("expected error for unknown region")
	} else if _, ok := err.(RegionError); !ok {
		t.Errorf("have %T, want RegionError", err)
	}
	if _, err := s.Loc("reg1", "zucchini"); err == nil {
		t.Error("expected error for unknown sector")
	} else if _, ok := err.(SectorError); !ok {
		t.Errorf("have %T, want SectorError", err)
	}
}

func TestResetToFlows(t *testing.T) {
	s := testSystem()
	if err := s.CalcAll(); err != nil {
		t.Fatal(err)
	}
	if err := s.ResetToFlows(false); err != nil {
		t.Fatal(err)
	}
	if s.A != nil || s.L != nil || s.B != nil || s.G != nil {
		t.Error("coefficient matrices should be cleared")
	}
	if s.Z == nil || s.Y == nil || s.X == nil {
		t.Error("flow quantities should be kept")
	}
	e := s.Extensions[0]
	if e.S != nil || e.M != nil || e.DFootprint != nil {
		t.Error("extension coefficients and accounts should be cleared")
	}
	if e.F == nil || e.FY == nil {
		t.Error("extension flows should be kept")
	}
}

func TestResetFullUnderdefined(t *testing.T) {
	s := NewSystem([]string{"reg1"}, []string{"sector1"}, nil)
	s.Z = mat.NewDense(1, 1, []float64{1})
	if err := s.ResetFull(false); err == nil {
		t.Error("expected error for reset without Y")
	} else if _, ok := err.(ResetError); !ok {
		t.Errorf("have %T, want ResetError", err)
	}
	if err := s.ResetFull(true); err != nil {
		t.Errorf("forced reset: %v", err)
	}
}
