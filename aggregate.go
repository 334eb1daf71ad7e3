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
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// An AggregationError indicates an aggregation specification that does
// not fit the system.
type AggregationError struct {
	Reason string
}

func (err AggregationError) Error() string {
	return "mrio: aggregation: " + err.Reason
}

// Aggregate reduces the system to a coarser classification. regionConc
// and sectorConc are 0/1 concordance matrices (new count × old count,
// see iomath.BuildAggMatrix); nil keeps the respective axis unchanged.
// regionNames and sectorNames label the new groups, one per
// concordance row.
//
// Flow-type quantities (Z, Y, X, ValueAdded, population, extension F
// and FY) are aggregated by matrix-sandwiching with the combined
// concordance. Derived coefficients and accounts (A, B, L, G and the
// extension S, SY, M, MDown and D accounts) are invalid on the new
// classification and are cleared; run CalcAll afterwards to rebuild
// them. Clearing requires Z and Y to be present, so an under-defined
// system must be completed (or supplied with flows) before
// aggregating.
func (s *System) Aggregate(regionConc, sectorConc *mat.Dense, regionNames, sectorNames []string) error {
	if regionConc == nil {
		regionConc = eye(len(s.Regions))
		regionNames = s.Regions
	}
	if sectorConc == nil {
		sectorConc = eye(len(s.Sectors))
		sectorNames = s.Sectors
	}

	regRows, regCols := regionConc.Dims()
	if regCols != len(s.Regions) {
		return AggregationError{Reason: fmt.Sprintf("region concordance has %d columns for %d regions", regCols, len(s.Regions))}
	}
	if len(regionNames) != regRows {
		return AggregationError{Reason: fmt.Sprintf("%d region names for %d new regions", len(regionNames), regRows)}
	}
	secRows, secCols := sectorConc.Dims()
	if secCols != len(s.Sectors) {
		return AggregationError{Reason: fmt.Sprintf("sector concordance has %d columns for %d sectors", secCols, len(s.Sectors))}
	}
	if len(sectorNames) != secRows {
		return AggregationError{Reason: fmt.Sprintf("%d sector names for %d new sectors", len(sectorNames), secRows)}
	}

	if err := s.ResetToFlows(false); err != nil {
		return AggregationError{Reason: fmt.Sprintf("system under-defined for aggregation, run CalcSystem first: %v", err)}
	}

	conc := kron(regionConc, sectorConc)
	concY := kron(regionConc, eye(len(s.FinalDemandCategories)))

	s.Z = sandwich(conc, s.Z, conc)
	s.Y = sandwich(conc, s.Y, concY)

	if s.X != nil {
		x := new(mat.VecDense)
		x.MulVec(conc, s.X)
		s.X = x
	}

	if s.ValueAdded != nil {
		va := new(mat.Dense)
		va.Mul(s.ValueAdded, conc.T())
		s.ValueAdded = va
	}

	if s.Population != nil {
		pop := new(mat.VecDense)
		pop.MulVec(regionConc, s.Population)
		s.Population = pop
		if len(s.PopulationRegions) > 0 {
			s.PopulationRegions = regionNames
		}
	}

	for _, e := range s.Extensions {
		if e.F != nil {
			f := new(mat.Dense)
			f.Mul(e.F, conc.T())
			e.F = f
		}
		if e.FY != nil {
			fy := new(mat.Dense)
			fy.Mul(e.FY, concY.T())
			e.FY = fy
		}
	}

	s.Regions = regionNames
	s.Sectors = sectorNames
	s.regionIndices = indexLookup(regionNames)
	s.sectorIndices = indexLookup(sectorNames)

	return nil
}

// sandwich computes left·m·rightᵀ.
func sandwich(left, m, right *mat.Dense) *mat.Dense {
	if m == nil {
		return nil
	}
	tmp := new(mat.Dense)
	tmp.Mul(left, m)
	o := new(mat.Dense)
	o.Mul(tmp, right.T())
	return o
}

// kron computes the Kronecker product of a and b.
func kron(a, b *mat.Dense) *mat.Dense {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	o := mat.NewDense(ar*br, ac*bc, nil)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			v := a.At(i, j)
			if v == 0 {
				continue
			}
			for k := 0; k < br; k++ {
				for l := 0; l < bc; l++ {
					o.Set(i*br+k, j*bc+l, v*b.At(k, l))
				}
			}
		}
	}
	return o
}

// eye returns the n×n identity matrix.
func eye(n int) *mat.Dense {
	o := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		o.Set(i, i, 1)
	}
	return o
}
