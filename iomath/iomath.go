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

// Package iomath implements the matrix algebra underlying
// multi-regional input-output accounting: the derivation chain between
// flow matrices, technical coefficients, the Leontief and Ghosh
// inverses and industry output, plus the block utilities needed for
// footprint decomposition.
//
// All functions are pure: they allocate and return new matrices and
// never modify their arguments. Matrices over the (region, sector)
// classification are stored region-major, i.e. the row or column for
// (region r, sector s) is r*nrSectors + s, with identical row and
// column ordering for square quantities.
package iomath

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// CalcX calculates total industry output from the interindustry flow
// matrix Z and the final demand matrix Y:
// x[i] = rowsum(Z)[i] + rowsum(Y)[i].
func CalcX(Z, Y mat.Matrix) *mat.VecDense {
	x := RowSums(Z)
	x.AddVec(x, RowSums(Y))
	return x
}

// CalcXFromL calculates total industry output from the Leontief
// inverse L and a total final demand column vector y: x = L·y.
func CalcXFromL(L mat.Matrix, y *mat.VecDense) *mat.VecDense {
	x := new(mat.VecDense)
	x.MulVec(L, y)
	return x
}

// CalcZ de-normalizes the coefficient matrix A by industry output x:
// Z[i,j] = A[i,j] * x[j].
func CalcZ(A mat.Matrix, x *mat.VecDense) *mat.Dense {
	return scaleColumns(A, x)
}

// CalcA calculates the technical coefficient matrix from the flow
// matrix Z and industry output x: A[i,j] = Z[i,j] / x[j]. Columns with
// zero output get zero coefficients rather than NaN or Inf.
func CalcA(Z mat.Matrix, x *mat.VecDense) *mat.Dense {
	return scaleColumns(Z, reciprocal(x))
}

// CalcB calculates the allocation (downstream) coefficient matrix from
// the flow matrix Z and industry output x: B[i,j] = Z[i,j] / x[i],
// with the same zero-output convention as CalcA.
func CalcB(Z mat.Matrix, x *mat.VecDense) *mat.Dense {
	return scaleRows(Z, reciprocal(x))
}

// CalcL calculates the Leontief inverse L = (I - A)⁻¹. An error is
// returned if (I - A) is singular.
func CalcL(A mat.Matrix) (*mat.Dense, error) {
	L, err := eyeMinusInverse(A)
	if err != nil {
		return nil, fmt.Errorf("iomath: inverting (I - A): %v", err)
	}
	return L, nil
}

// CalcG calculates the Ghosh inverse G = (I - B)⁻¹ from the allocation
// coefficient matrix B.
func CalcG(B mat.Matrix) (*mat.Dense, error) {
	G, err := eyeMinusInverse(B)
	if err != nil {
		return nil, fmt.Errorf("iomath: inverting (I - B): %v", err)
	}
	return G, nil
}

// CalcS calculates direct impact coefficients from the direct impact
// matrix F and industry output x. The normalization is the same as for
// CalcA, including the zero-output convention.
func CalcS(F mat.Matrix, x *mat.VecDense) *mat.Dense {
	return CalcA(F, x)
}

// CalcF de-normalizes impact coefficients S by industry output x,
// giving total direct impacts per sector.
func CalcF(S mat.Matrix, x *mat.VecDense) *mat.Dense {
	return CalcZ(S, x)
}

// CalcM calculates impact multipliers M = S·L, the total (direct plus
// indirect) impact per unit of final demand.
func CalcM(S, L mat.Matrix) *mat.Dense {
	M := new(mat.Dense)
	M.Mul(S, L)
	return M
}

// CalcMDown calculates downstream impact multipliers MDown = S·G
// from the Ghosh inverse G.
func CalcMDown(S, G mat.Matrix) *mat.Dense {
	return CalcM(S, G)
}

// CalcE calculates total impacts embodied in the final demand Y from
// the multipliers M: E = M·Y.
func CalcE(M, Y mat.Matrix) *mat.Dense {
	E := new(mat.Dense)
	E.Mul(M, Y)
	return E
}

// RecalcM recovers the multipliers from a footprint account and the
// region-aggregated final demand (one column per region) by inverting
// the block-diagonalized demand: M = DFootprint · diag(Y)⁻¹. The
// diagonalized demand must be invertible.
func RecalcM(DFootprint, Yagg mat.Matrix, nrSectors int) (*mat.Dense, error) {
	Ydiag, err := DiagonalizeBlocks(Yagg, nrSectors)
	if err != nil {
		return nil, err
	}
	var Yinv mat.Dense
	if err := Yinv.Inverse(Ydiag); err != nil {
		return nil, fmt.Errorf("iomath: inverting diagonalized final demand: %v", err)
	}
	M := new(mat.Dense)
	M.Mul(DFootprint, &Yinv)
	return M, nil
}

// Accounts holds the four trade-direction decompositions of an impact
// account. Each matrix has one row per stressor and one column per
// (region, sector) pair.
type Accounts struct {
	// Footprint attributes impacts to the region and sector whose
	// final demand caused them, wherever they occur.
	Footprint *mat.Dense

	// Territorial attributes impacts to the region and sector where
	// they physically occur, regardless of who consumes.
	Territorial *mat.Dense

	// Imports holds the impacts occurring abroad to satisfy each
	// region's final demand.
	Imports *mat.Dense

	// Exports holds the impacts occurring in each region to satisfy
	// final demand elsewhere.
	Exports *mat.Dense
}

// CalcAccounts calculates the footprint, territorial, import and
// export accounts from the impact coefficients S, the Leontief inverse
// L and the region-aggregated final demand Yagg (one column per
// region, summed across demand categories). nrSectors is the number of
// sectors per region.
//
// The aggregated demand is expanded to block-diagonal form so that the
// Leontief solve attributes induced output separately to each
// originating region and sector; the domestic blocks of that solution
// are then zeroed for the two trade accounts.
func CalcAccounts(S, L, Yagg mat.Matrix, nrSectors int) (*Accounts, error) {
	Ydiag, err := DiagonalizeBlocks(Yagg, nrSectors)
	if err != nil {
		return nil, err
	}
	xDiag := new(mat.Dense)
	xDiag.Mul(L, Ydiag)
	xTot := RowSums(xDiag)

	footprint := new(mat.Dense)
	footprint.Mul(S, xDiag)
	territorial := scaleColumns(S, xTot)

	xTrade, err := SetBlock(xDiag, mat.NewDense(nrSectors, nrSectors, nil))
	if err != nil {
		return nil, err
	}
	imports := new(mat.Dense)
	imports.Mul(S, xTrade)
	exports := scaleColumns(S, RowSums(xTrade))

	return &Accounts{
		Footprint:   footprint,
		Territorial: territorial,
		Imports:     imports,
		Exports:     exports,
	}, nil
}

// RowSums returns the sums across each row of m as a column vector.
func RowSums(m mat.Matrix) *mat.VecDense {
	r, c := m.Dims()
	sums := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		var sum float64
		for j := 0; j < c; j++ {
			sum += m.At(i, j)
		}
		sums.SetVec(i, sum)
	}
	return sums
}

// ColSums returns the sums down each column of m as a column vector.
func ColSums(m mat.Matrix) *mat.VecDense {
	r, c := m.Dims()
	sums := mat.NewVecDense(c, nil)
	for j := 0; j < c; j++ {
		var sum float64
		for i := 0; i < r; i++ {
			sum += m.At(i, j)
		}
		sums.SetVec(j, sum)
	}
	return sums
}

// SumColumnBlocks sums each contiguous group of width columns of m
// into a single column, e.g. collapsing (region, sector) columns into
// one column per region. The number of columns must be a multiple of
// width.
func SumColumnBlocks(m mat.Matrix, width int) (*mat.Dense, error) {
	r, c := m.Dims()
	if width < 1 || c%width != 0 {
		return nil, DimensionError{Rows: r, Cols: c, BlockRows: 1, BlockCols: width}
	}
	o := mat.NewDense(r, c/width, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			o.Set(i, j/width, o.At(i, j/width)+m.At(i, j))
		}
	}
	return o, nil
}

// scaleColumns returns m with column j multiplied by v[j].
func scaleColumns(m mat.Matrix, v *mat.VecDense) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			o.Set(i, j, m.At(i, j)*v.AtVec(j))
		}
	}
	return o
}

// scaleRows returns m with row i multiplied by v[i].
func scaleRows(m mat.Matrix, v *mat.VecDense) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			o.Set(i, j, m.At(i, j)*v.AtVec(i))
		}
	}
	return o
}

// reciprocal returns 1/v element-wise, mapping zero entries to zero
// so that zero-output sectors get zero coefficients.
func reciprocal(v *mat.VecDense) *mat.VecDense {
	n := v.Len()
	o := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		if val := v.AtVec(i); val != 0 {
			o.SetVec(i, 1/val)
		}
	}
	return o
}

// eyeMinusInverse returns (I - m)⁻¹.
func eyeMinusInverse(m mat.Matrix) (*mat.Dense, error) {
	r, c := m.Dims()
	ima := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if i == j {
				ima.Set(i, j, 1-m.At(i, j))
			} else {
				ima.Set(i, j, -m.At(i, j))
			}
		}
	}
	o := new(mat.Dense)
	if err := o.Inverse(ima); err != nil {
		return nil, err
	}
	return o, nil
}
