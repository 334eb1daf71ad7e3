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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/spatialmodel/mrio/iomath"
)

// DefaultTolerance is the absolute closeness threshold for the balance
// checks.
const DefaultTolerance = 0.01

// A TotalOutputError indicates a row whose interindustry plus final
// demand outputs do not add up to total output.
type TotalOutputError struct {
	Row        int
	Have, Want float64
}

func (err TotalOutputError) Error() string {
	return fmt.Sprintf("mrio: total output of row %d: interindustry plus final demand is %g, want %g",
		err.Row, err.Have, err.Want)
}

// A SystemBalanceError indicates that the system-wide sum of inputs
// (interindustry plus value added) does not equal the sum of outputs.
type SystemBalanceError struct {
	Inputs, Outputs float64
}

func (err SystemBalanceError) Error() string {
	return fmt.Sprintf("mrio: system not balanced: total inputs %g, total outputs %g",
		err.Inputs, err.Outputs)
}

// A SectorBalanceError indicates a column whose inputs (interindustry
// plus value added) do not equal its total output.
type SectorBalanceError struct {
	Column         int
	Inputs, Output float64
}

func (err SectorBalanceError) Error() string {
	return fmt.Sprintf("mrio: column %d not balanced: inputs %g, output %g",
		err.Column, err.Inputs, err.Output)
}

// CheckBalance verifies that a completed system satisfies the economic
// balance identities within the given absolute tolerance:
//
//  1. the matrix shapes are compatible with the interindustry matrix;
//  2. for every row, interindustry plus final demand outputs equal
//     total output;
//  3. the grand total of interindustry flows plus value added equals
//     the grand total of output;
//  4. for every column, interindustry inputs plus value added (summed
//     across value added components) equal total output.
//
// The check is a validation oracle only: it never modifies its inputs.
// A deviation of exactly the tolerance passes. The first failed check
// is returned as a ShapeError, TotalOutputError, SystemBalanceError or
// SectorBalanceError; nil means the system is balanced.
func CheckBalance(Z, VA, Y *mat.Dense, x *mat.VecDense, tolerance float64) error {
	zRows, zCols := Z.Dims()
	if zRows != zCols {
		return ShapeError{Matrix: "Z", Detail: fmt.Sprintf("interindustry matrix must be square, have %d×%d", zRows, zCols)}
	}
	if _, vaCols := VA.Dims(); vaCols != zCols {
		return ShapeError{Matrix: "ValueAdded", Detail: fmt.Sprintf("have %d columns, interindustry matrix has %d", vaCols, zCols)}
	}
	if yRows, _ := Y.Dims(); yRows != zRows {
		return ShapeError{Matrix: "Y", Detail: fmt.Sprintf("have %d rows, interindustry matrix has %d", yRows, zRows)}
	}
	if x.Len() != zRows {
		return ShapeError{Matrix: "X", Detail: fmt.Sprintf("have %d rows, interindustry matrix has %d", x.Len(), zRows)}
	}

	zRowSums := iomath.RowSums(Z)
	yRowSums := iomath.RowSums(Y)
	for i := 0; i < zRows; i++ {
		total := zRowSums.AtVec(i) + yRowSums.AtVec(i)
		if !floats.EqualWithinAbs(total, x.AtVec(i), tolerance) {
			return TotalOutputError{Row: i, Have: total, Want: x.AtVec(i)}
		}
	}

	inputs := mat.Sum(Z) + mat.Sum(VA)
	outputs := mat.Sum(x)
	if !floats.EqualWithinAbs(inputs, outputs, tolerance) {
		return SystemBalanceError{Inputs: inputs, Outputs: outputs}
	}

	zColSums := iomath.ColSums(Z)
	vaColSums := iomath.ColSums(VA)
	for j := 0; j < zCols; j++ {
		in := zColSums.AtVec(j) + vaColSums.AtVec(j)
		if !floats.EqualWithinAbs(in, x.AtVec(j), tolerance) {
			return SectorBalanceError{Column: j, Inputs: in, Output: x.AtVec(j)}
		}
	}

	return nil
}

// Balanced runs CheckBalance on the system's own matrices. Z,
// ValueAdded, Y and X must all be present.
func (s *System) Balanced(tolerance float64) error {
	if s.Z == nil || s.ValueAdded == nil || s.Y == nil || s.X == nil {
		return fmt.Errorf("mrio: balance check requires Z, ValueAdded, Y and X")
	}
	return CheckBalance(s.Z, s.ValueAdded, s.Y, s.X, tolerance)
}
