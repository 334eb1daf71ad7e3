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

// Package mrio implements multi-regional input-output (MRIO) economic
// accounting. Starting from whichever subset of the classical
// input-output quantities a dataset supplies (flow matrix, technical
// coefficients, industry output, final demand), it derives the
// remaining ones, computes environmental and social satellite accounts
// with their footprint, territorial, import and export decompositions,
// and verifies the additive balance identities of a completed system.
//
// The package consumes already-parsed matrices; loading any particular
// data release, persistence and report generation are the caller's
// concern.
package mrio

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// System holds one MRIO dataset: the region/sector classification, the
// core input-output matrices and any satellite extensions. Quantities
// not supplied by the caller are left nil and filled in by CalcSystem
// and CalcExtensions; engines never overwrite a non-nil field.
//
// All matrices over the (region, sector) classification are stored
// region-major: the row or column of (region r, sector s) is
// r*len(Sectors)+s. Final demand columns follow the same scheme over
// (region, demand category).
type System struct {
	// Regions, Sectors and FinalDemandCategories are the labels of
	// the classification axes, in matrix order.
	Regions, Sectors      []string
	FinalDemandCategories []string

	// Z is the interindustry flow matrix, square over (region, sector).
	Z *mat.Dense

	// A is the technical coefficient matrix, Z column-normalized by X.
	A *mat.Dense

	// B is the allocation coefficient matrix, Z row-normalized by X.
	B *mat.Dense

	// L is the Leontief inverse (I - A)⁻¹.
	L *mat.Dense

	// G is the Ghosh inverse (I - B)⁻¹.
	G *mat.Dense

	// X is total industry output per (region, sector).
	X *mat.VecDense

	// Y is the final demand matrix with (region, category) columns.
	Y *mat.Dense

	// ValueAdded holds primary input payments, one or more rows
	// (labeled by ValueAddedComponents) over (region, sector) columns.
	ValueAdded           *mat.Dense
	ValueAddedComponents []string

	// Population holds one entry per region, used only for the
	// per-capita accounts; nil skips those. PopulationRegions
	// optionally labels the entries; an order mismatch against
	// Regions is logged as a warning but does not stop calculation.
	Population        *mat.VecDense
	PopulationRegions []string

	// Extensions are the satellite account bundles attached to the
	// system.
	Extensions []*Extension

	// Log receives progress and warning messages. If nil, the
	// standard logger is used.
	Log logrus.FieldLogger

	regionIndices, sectorIndices map[string]int
}

// NewSystem initializes an empty System for the given classification.
func NewSystem(regions, sectors, categories []string) *System {
	return &System{
		Regions:               regions,
		Sectors:               sectors,
		FinalDemandCategories: categories,
		regionIndices:         indexLookup(regions),
		sectorIndices:         indexLookup(sectors),
	}
}

// Size returns the dimension of the square quantities,
// len(Regions) * len(Sectors).
func (s *System) Size() int {
	return len(s.Regions) * len(s.Sectors)
}

// A RegionError is returned when an invalid region is requested.
type RegionError struct {
	name string
}

func (err RegionError) Error() string {
	return fmt.Sprintf("invalid region name `%v`", err.name)
}

// A SectorError is returned when an invalid sector is requested.
type SectorError struct {
	name string
}

func (err SectorError) Error() string {
	return fmt.Sprintf("invalid sector name `%v`", err.name)
}

// RegionIndex returns the index number of the specified region.
func (s *System) RegionIndex(name string) (int, error) {
	if s.regionIndices == nil {
		s.regionIndices = indexLookup(s.Regions)
	}
	if i, ok := s.regionIndices[name]; ok {
		return i, nil
	}
	return -1, RegionError{name}
}

// SectorIndex returns the index number of the specified sector.
func (s *System) SectorIndex(name string) (int, error) {
	if s.sectorIndices == nil {
		s.sectorIndices = indexLookup(s.Sectors)
	}
	if i, ok := s.sectorIndices[name]; ok {
		return i, nil
	}
	return -1, SectorError{name}
}

// Loc returns the row or column position of the (region, sector) pair
// in the square quantities.
func (s *System) Loc(region, sector string) (int, error) {
	r, err := s.RegionIndex(region)
	if err != nil {
		return -1, err
	}
	c, err := s.SectorIndex(sector)
	if err != nil {
		return -1, err
	}
	return r*len(s.Sectors) + c, nil
}

// Extension returns the extension with the given name.
func (s *System) Extension(name string) (*Extension, error) {
	for _, e := range s.Extensions {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("mrio: no extension named %s", name)
}

// A ShapeError indicates a matrix whose dimensions are incompatible
// with the interindustry matrix.
type ShapeError struct {
	// Matrix names the offending quantity.
	Matrix string

	// Detail describes the failed dimension relationship.
	Detail string
}

func (err ShapeError) Error() string {
	return fmt.Sprintf("mrio: %s: %s", err.Matrix, err.Detail)
}

// logger returns the logger to write messages to.
func (s *System) logger() logrus.FieldLogger {
	if s.Log != nil {
		return s.Log
	}
	return logrus.StandardLogger()
}

// indexLookup returns a map of the index number for each item in a.
func indexLookup(a []string) map[string]int {
	o := make(map[string]int)
	for i, s := range a {
		o[s] = i
	}
	return o
}
