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
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestCalcGrossTrade(t *testing.T) {
	s := testSystem()
	trade, err := s.CalcGrossTrade()
	if err != nil {
		t.Fatal(err)
	}

	t.Run("domestic blocks removed", func(t *testing.T) {
		for r := 0; r < len(s.Regions); r++ {
			for sec := 0; sec < len(s.Sectors); sec++ {
				if v := trade.BilateralFlows.At(r*len(s.Sectors)+sec, r); v != 0 {
					t.Errorf("domestic flow [%d,%d]: have %g, want 0", r*len(s.Sectors)+sec, r, v)
				}
			}
		}
	})

	// reg1 sector1 sells 6+5+7 through Z and 3 through Y to reg2.
	t.Run("bilateral flow", func(t *testing.T) {
		i, err := s.Loc("reg1", "sector1")
		if err != nil {
			t.Fatal(err)
		}
		j, err := s.RegionIndex("reg2")
		if err != nil {
			t.Fatal(err)
		}
		if have := trade.BilateralFlows.At(i, j); different(have, 21) {
			t.Errorf("have %g, want 21", have)
		}
	})

	t.Run("totals", func(t *testing.T) {
		if have := trade.Exports.AtVec(0); different(have, 21) {
			t.Errorf("exports[0]: have %g, want 21", have)
		}
		// What reg2 imports in sector1 is what reg1 exports in it.
		i, err := s.Loc("reg2", "sector1")
		if err != nil {
			t.Fatal(err)
		}
		if have := trade.Imports.AtVec(i); different(have, 21) {
			t.Errorf("imports[reg2, sector1]: have %g, want 21", have)
		}
		// One region's export is another's import.
		if different(mat.Sum(trade.Exports), mat.Sum(trade.Imports)) {
			t.Errorf("export total %g != import total %g",
				mat.Sum(trade.Exports), mat.Sum(trade.Imports))
		}
	})

	t.Run("inputs unchanged", func(t *testing.T) {
		if s.Z.At(0, 0) != 10 || s.Y.At(0, 0) != 14 {
			t.Error("gross trade calculation modified Z or Y")
		}
	})
}

func TestCalcGrossTradeMissing(t *testing.T) {
	s := NewSystem([]string{"reg1"}, []string{"sector1"}, nil)
	if _, err := s.CalcGrossTrade(); err == nil {
		t.Error("expected error without Z and Y")
	} else if _, ok := err.(DerivationError); !ok {
		t.Errorf("have %T, want DerivationError", err)
	}
}
