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

// Extension is a satellite account bundle: environmental, social or
// resource indicators attached to the core IO table. Rows of every
// matrix are the stressors; columns are (region, sector) pairs in the
// order of the owning System, except for FY and SY whose columns are
// the (region, demand category) pairs of Y, and the regional and
// per-capita accounts with one column per region.
type Extension struct {
	// Name identifies the extension within its System.
	Name string

	// Stressors labels the rows. Units optionally gives the physical
	// unit of each stressor; it is carried, never converted.
	Stressors []string
	Units     []string

	// F holds total direct impacts per sector, FY the impacts
	// occurring directly in final demand.
	F, FY *mat.Dense

	// S and SY are the corresponding impact coefficients (F and FY
	// normalized by industry output and total final demand).
	S, SY *mat.Dense

	// M holds the impact multipliers S·L, MDown the downstream
	// multipliers S·G.
	M, MDown *mat.Dense

	// The four trade-direction decompositions, per (region, sector).
	DFootprint, DTerritorial, DImports, DExports *mat.Dense

	// The same accounts summed per region. FY enters DFootprintReg
	// and DTerritorialReg: final demand's own direct impacts belong
	// to the consuming region's footprint and to the territorial
	// record of where they occur.
	DFootprintReg, DTerritorialReg, DImportsReg, DExportsReg *mat.Dense

	// The regional accounts divided by population; nil unless the
	// System carries a population vector.
	DFootprintCap, DTerritorialCap, DImportsCap, DExportsCap *mat.Dense
}

// AggregateFinalDemand sums the final demand columns of each region
// across demand categories, returning one column per region.
func (s *System) AggregateFinalDemand() (*mat.Dense, error) {
	if s.Y == nil {
		return nil, DerivationError{Quantity: "aggregated final demand", Reason: "Y not present"}
	}
	return iomath.SumColumnBlocks(s.Y, len(s.FinalDemandCategories))
}

// CalcExtensions calculates the missing parts of the named extensions
// (all extensions if no names are given): coefficients, multipliers,
// the four decomposed accounts and their regional and per-capita
// variants. Fields that are already present are left untouched, so a
// second call on a fully calculated system is a no-op.
//
// The core system quantities the calculation depends on (X, Y, and L
// or G for the multiplier and account steps) must have been supplied
// or derived beforehand; steps whose prerequisites are missing are
// skipped with a log message, mirroring the best-effort behavior of
// CalcSystem.
func (s *System) CalcExtensions(names ...string) error {
	exts := s.Extensions
	if len(names) > 0 {
		exts = exts[:0:0]
		for _, name := range names {
			e, err := s.Extension(name)
			if err != nil {
				return err
			}
			exts = append(exts, e)
		}
	}

	var yAgg *mat.Dense
	if s.Y != nil {
		var err error
		if yAgg, err = s.AggregateFinalDemand(); err != nil {
			return err
		}
	}

	for _, e := range exts {
		if err := s.calcExtension(e, yAgg); err != nil {
			return err
		}
	}
	return nil
}

func (s *System) calcExtension(e *Extension, yAgg *mat.Dense) error {
	log := s.logger().WithField("extension", e.Name)

	if e.F == nil && e.S != nil && s.X != nil {
		e.F = iomath.CalcF(e.S, s.X)
		log.Debug("mrio: direct impacts F calculated")
	}
	if e.S == nil && e.F != nil && s.X != nil {
		e.S = iomath.CalcS(e.F, s.X)
		log.Debug("mrio: impact coefficients S calculated")
	}

	if s.Y != nil {
		y := iomath.ColSums(s.Y)
		if e.FY == nil && e.SY != nil {
			e.FY = iomath.CalcF(e.SY, y)
			log.Debug("mrio: final demand impacts FY calculated")
		}
		if e.SY == nil && e.FY != nil {
			e.SY = iomath.CalcS(e.FY, y)
			log.Debug("mrio: final demand impact coefficients SY calculated")
		}
	}

	if e.M == nil && e.S != nil {
		if s.L != nil {
			e.M = iomath.CalcM(e.S, s.L)
			log.Debug("mrio: multipliers M calculated from L")
		} else if e.DFootprint != nil && yAgg != nil {
			M, err := iomath.RecalcM(e.DFootprint, yAgg, len(s.Sectors))
			if err != nil {
				log.Warnf("mrio: recalculation of M not possible: %v", err)
			} else {
				e.M = M
				log.Debug("mrio: multipliers M recalculated from footprint and Y")
			}
		}
	}

	if e.MDown == nil && e.S != nil && s.G != nil {
		e.MDown = iomath.CalcMDown(e.S, s.G)
		log.Debug("mrio: downstream multipliers MDown calculated from G")
	}

	var fyAgg *mat.Dense
	if e.FY != nil {
		var err error
		if fyAgg, err = iomath.SumColumnBlocks(e.FY, len(s.FinalDemandCategories)); err != nil {
			return err
		}
	}

	if e.DFootprint == nil || e.DTerritorial == nil || e.DImports == nil || e.DExports == nil {
		if s.L == nil || e.S == nil || yAgg == nil {
			log.Warn("mrio: cannot calculate decomposed accounts: L, S or Y not present")
			return nil
		}
		accounts, err := iomath.CalcAccounts(e.S, s.L, yAgg, len(s.Sectors))
		if err != nil {
			return err
		}
		e.DFootprint = accounts.Footprint
		e.DTerritorial = accounts.Territorial
		e.DImports = accounts.Imports
		e.DExports = accounts.Exports
		log.Debug("mrio: decomposed accounts calculated")
	}

	if e.DFootprintReg == nil || e.DTerritorialReg == nil || e.DImportsReg == nil || e.DExportsReg == nil {
		var err error
		if e.DFootprintReg, err = regionalAccount(e.DFootprint, len(s.Sectors), fyAgg); err != nil {
			return err
		}
		if e.DTerritorialReg, err = regionalAccount(e.DTerritorial, len(s.Sectors), fyAgg); err != nil {
			return err
		}
		if e.DImportsReg, err = regionalAccount(e.DImports, len(s.Sectors), nil); err != nil {
			return err
		}
		if e.DExportsReg, err = regionalAccount(e.DExports, len(s.Sectors), nil); err != nil {
			return err
		}
		log.Debug("mrio: regional accounts calculated")
	}

	if s.Population != nil {
		if e.DFootprintCap == nil || e.DTerritorialCap == nil || e.DImportsCap == nil || e.DExportsCap == nil {
			if len(s.PopulationRegions) > 0 && !sameOrder(s.PopulationRegions, s.Regions) {
				// Known hazard carried over from the original
				// implementation: calculation proceeds positionally.
				log.Warn("mrio: population region order does not match system region order; per-capita accounts may be misaligned")
			}
			e.DFootprintCap = perCapita(e.DFootprintReg, s.Population)
			e.DTerritorialCap = perCapita(e.DTerritorialReg, s.Population)
			e.DImportsCap = perCapita(e.DImportsReg, s.Population)
			e.DExportsCap = perCapita(e.DExportsReg, s.Population)
			log.Debug("mrio: per-capita accounts calculated")
		}
	}

	return nil
}

// regionalAccount sums an account's columns within each region block
// and adds fyAgg, if given.
func regionalAccount(account *mat.Dense, nrSectors int, fyAgg *mat.Dense) (*mat.Dense, error) {
	reg, err := iomath.SumColumnBlocks(account, nrSectors)
	if err != nil {
		return nil, err
	}
	if fyAgg != nil {
		reg.Add(reg, fyAgg)
	}
	return reg, nil
}

// perCapita divides the columns of a regional account by the
// population of each region.
func perCapita(reg *mat.Dense, population *mat.VecDense) *mat.Dense {
	r, c := reg.Dims()
	o := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			o.Set(i, j, reg.At(i, j)/population.AtVec(j))
		}
	}
	return o
}

// sameOrder reports whether a and b hold the same labels in the same
// order.
func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
