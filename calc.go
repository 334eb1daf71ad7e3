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
	"strings"

	"github.com/spatialmodel/mrio/iomath"
)

// A DerivationError indicates that a derived quantity could not be
// computed from the quantities currently present in the system.
type DerivationError struct {
	// Quantity is the name of the quantity that could not be derived.
	Quantity string

	// Reason describes the missing prerequisite or numerical failure.
	Reason string
}

func (err DerivationError) Error() string {
	return "mrio: deriving " + err.Quantity + ": " + err.Reason
}

// DerivationErrors collects the step failures of a best-effort
// CalcSystem run.
type DerivationErrors []DerivationError

func (errs DerivationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// CalcAll calculates the missing parts of the core system and of all
// extensions.
func (s *System) CalcAll() error {
	if err := s.CalcSystem(); err != nil {
		return err
	}
	return s.CalcExtensions()
}

// CalcSystem fills in the missing core quantities from whichever
// subset is present. The supported entry points are a full flow matrix
// Z, coefficients A with output X, or coefficients A with final
// demand Y; in each case the remaining quantities among
// {Z, A, B, X, L, G} are derived.
//
// The steps are best-effort: a step whose prerequisites are missing or
// whose matrix is singular is reported, and later independent steps
// still run. The returned DerivationErrors lists every failed step
// (nil if none failed); callers should check which fields are still
// nil afterwards.
func (s *System) CalcSystem() error {
	log := s.logger()
	var errs DerivationErrors
	fail := func(quantity, reason string) {
		err := DerivationError{Quantity: quantity, Reason: reason}
		log.Warn(err.Error())
		errs = append(errs, err)
	}

	// With neither output nor flows, final demand and the Leontief
	// inverse determine the output: x = L · rowsum(Y).
	if s.X == nil && s.Z == nil {
		if s.Y != nil {
			if s.L == nil {
				if s.A == nil {
					fail("L", "A not present")
				} else if L, err := iomath.CalcL(s.A); err != nil {
					fail("L", err.Error())
				} else {
					s.L = L
					log.Debug("mrio: Leontief inverse L calculated")
				}
			}
			if s.L != nil {
				s.X = iomath.CalcXFromL(s.L, iomath.RowSums(s.Y))
				log.Debug("mrio: industry output X calculated from L and Y")
			}
		}
	}

	if s.Z == nil {
		if s.A == nil || s.X == nil {
			fail("Z", "A or X not present")
		} else {
			s.Z = iomath.CalcZ(s.A, s.X)
			log.Debug("mrio: flow matrix Z calculated")
		}
	}

	if s.X == nil {
		if s.Z == nil || s.Y == nil {
			fail("X", "Z or Y not present")
		} else {
			s.X = iomath.CalcX(s.Z, s.Y)
			log.Debug("mrio: industry output X calculated")
		}
	}

	if s.A == nil {
		if s.Z == nil || s.X == nil {
			fail("A", "Z or X not present")
		} else {
			s.A = iomath.CalcA(s.Z, s.X)
			log.Debug("mrio: coefficient matrix A calculated")
		}
	}

	if s.B == nil {
		if s.Z == nil || s.X == nil {
			fail("B", "Z or X not present")
		} else {
			s.B = iomath.CalcB(s.Z, s.X)
			log.Debug("mrio: allocation coefficient matrix B calculated")
		}
	}

	if s.L == nil {
		if s.A == nil {
			fail("L", "A not present")
		} else if L, err := iomath.CalcL(s.A); err != nil {
			fail("L", err.Error())
		} else {
			s.L = L
			log.Debug("mrio: Leontief inverse L calculated")
		}
	}

	if s.G == nil {
		if s.B == nil {
			fail("G", "B not present")
		} else if G, err := iomath.CalcG(s.B); err != nil {
			fail("G", err.Error())
		} else {
			s.G = G
			log.Debug("mrio: Ghosh inverse G calculated")
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
