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
	"gonum.org/v1/gonum/mat"

	"github.com/spatialmodel/mrio/iomath"
)

// GrossTrade holds the gross bilateral trade flows of a system: the
// entries of Z and Y with the domestic blocks removed.
type GrossTrade struct {
	// BilateralFlows has one row per exporting (region, sector) and
	// one column per importing region.
	BilateralFlows *mat.Dense

	// Exports and Imports are the gross totals per (region, sector):
	// Exports from the perspective of the producing region, Imports
	// from the perspective of the consuming region.
	Exports, Imports *mat.VecDense
}

// CalcGrossTrade calculates the gross bilateral trade flows and totals
// from Z and Y, which must both be present.
func (s *System) CalcGrossTrade() (*GrossTrade, error) {
	if s.Z == nil || s.Y == nil {
		return nil, DerivationError{Quantity: "gross trade", Reason: "Z or Y not present"}
	}
	nrSectors := len(s.Sectors)
	nrCategories := len(s.FinalDemandCategories)

	zTrade, err := iomath.SetBlock(s.Z, mat.NewDense(nrSectors, nrSectors, nil))
	if err != nil {
		return nil, err
	}
	yTrade, err := iomath.SetBlock(s.Y, mat.NewDense(nrSectors, nrCategories, nil))
	if err != nil {
		return nil, err
	}

	zAgg, err := iomath.SumColumnBlocks(zTrade, nrSectors)
	if err != nil {
		return nil, err
	}
	yAgg, err := iomath.SumColumnBlocks(yTrade, nrCategories)
	if err != nil {
		return nil, err
	}
	bilat := new(mat.Dense)
	bilat.Add(zAgg, yAgg)

	exports := iomath.RowSums(bilat)

	// The gross imports of (region r, sector s) are everything other
	// regions produce in sector s for consumption in r.
	n := s.Size()
	imports := mat.NewVecDense(n, nil)
	for r := 0; r < len(s.Regions); r++ {
		for sec := 0; sec < nrSectors; sec++ {
			var sum float64
			for r2 := 0; r2 < len(s.Regions); r2++ {
				sum += bilat.At(r2*nrSectors+sec, r)
			}
			imports.SetVec(r*nrSectors+sec, sum)
		}
	}

	return &GrossTrade{BilateralFlows: bilat, Exports: exports, Imports: imports}, nil
}
