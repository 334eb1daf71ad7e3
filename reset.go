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

// A ResetError indicates a reset that would leave the system without
// enough tables to recalculate.
type ResetError struct {
	Missing string
}

func (err ResetError) Error() string {
	return "mrio: too few tables to recalculate the system after reset (" +
		err.Missing + " missing); a reset can be forced"
}

// ResetFull removes every quantity that can be recalculated from Z, Y
// and the extension F and FY tables. If one of those base tables is
// missing the reset fails, unless force is set, in which case the
// reset proceeds with a logged warning.
func (s *System) ResetFull(force bool) error {
	if err := s.checkBase(force); err != nil {
		return err
	}
	s.A, s.B, s.L, s.G = nil, nil, nil, nil
	s.X = nil
	for _, e := range s.Extensions {
		e.S, e.SY, e.M, e.MDown = nil, nil, nil, nil
		e.clearAccounts()
	}
	s.logger().Debug("mrio: system reset to Z and Y")
	return nil
}

// ResetToFlows removes the derived coefficient quantities (A, B, L, G
// and the extension coefficients, multipliers and accounts) while
// keeping all absolute flow values. This is the state aggregation
// operates on, since coefficients must be recalculated on the new
// classification.
func (s *System) ResetToFlows(force bool) error {
	if err := s.checkBase(force); err != nil {
		return err
	}
	s.A, s.B, s.L, s.G = nil, nil, nil, nil
	for _, e := range s.Extensions {
		e.S, e.SY, e.M, e.MDown = nil, nil, nil, nil
		e.clearAccounts()
	}
	s.logger().Debug("mrio: system reset to absolute flows")
	return nil
}

// ResetToCoefficients removes all absolute values, keeping only the
// coefficient quantities (A, B, L, G, S, SY, M, MDown). The system can
// not be reconstructed afterwards without a new final demand.
func (s *System) ResetToCoefficients() {
	s.Z, s.Y = nil, nil
	s.X = nil
	s.ValueAdded = nil
	for _, e := range s.Extensions {
		e.F, e.FY = nil, nil
		e.clearAccounts()
	}
	s.logger().Debug("mrio: system reset to coefficients")
}

// checkBase verifies that Z, Y and every extension's F are present, so
// the system can be recalculated after a reset. With force set,
// missing tables only produce a warning.
func (s *System) checkBase(force bool) error {
	missing := ""
	if s.Z == nil {
		missing = "Z"
	} else if s.Y == nil {
		missing = "Y"
	} else {
		for _, e := range s.Extensions {
			// FY is optional and may be nil.
			if e.F == nil {
				missing = e.Name + " F"
				break
			}
		}
	}
	if missing == "" {
		return nil
	}
	if !force {
		return ResetError{Missing: missing}
	}
	s.logger().Warnf("mrio: recalculation after reset not possible because %s is missing", missing)
	return nil
}

func (e *Extension) clearAccounts() {
	e.DFootprint, e.DTerritorial, e.DImports, e.DExports = nil, nil, nil, nil
	e.DFootprintReg, e.DTerritorialReg, e.DImportsReg, e.DExportsReg = nil, nil, nil, nil
	e.DFootprintCap, e.DTerritorialCap, e.DImportsCap, e.DExportsCap = nil, nil, nil, nil
}
