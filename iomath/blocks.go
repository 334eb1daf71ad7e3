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

package iomath

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// A DimensionError indicates a matrix whose row or column count is not
// an exact multiple of the block size of a block operation.
type DimensionError struct {
	Rows, Cols           int
	BlockRows, BlockCols int
}

func (err DimensionError) Error() string {
	return fmt.Sprintf("iomath: matrix dimensions %d×%d are not multiples of block dimensions %d×%d",
		err.Rows, err.Cols, err.BlockRows, err.BlockCols)
}

// DiagonalizeBlocks expands each column of arr into a blocksize-wide
// group of columns, placing every blocksize-long slice of the column
// on the diagonal of the corresponding block and zeros elsewhere.
// For an (n·blocksize)×c input the result is (n·blocksize)×(c·blocksize).
//
// For example, with blocksize 3:
//
//	3 1     3 0 0 1 0 0
//	4 2     0 4 0 0 2 0
//	5 3     0 0 5 0 0 3
//	6 9     6 0 0 9 0 0
//	7 6     0 7 0 0 6 0
//	8 4     0 0 8 0 0 4
//
// This turns a final demand matrix with one column per region into one
// with a column per (region, sector) pair.
func DiagonalizeBlocks(arr mat.Matrix, blocksize int) (*mat.Dense, error) {
	nrRow, nrCol := arr.Dims()
	if blocksize < 1 || nrRow%blocksize != 0 {
		return nil, DimensionError{Rows: nrRow, Cols: nrCol, BlockRows: blocksize, BlockCols: blocksize}
	}

	o := mat.NewDense(nrRow, blocksize*nrCol, nil)
	for j := 0; j < nrCol; j++ {
		colStart := j * blocksize
		for i := 0; i < nrRow; i++ {
			o.Set(i, colStart+i%blocksize, arr.At(i, j))
		}
	}
	return o, nil
}

// SetBlock returns a copy of arr with every diagonal block (the k-th
// row-block by k-th column-block) overwritten by block, leaving
// off-diagonal blocks unchanged. The dimensions of arr must be exact
// multiples of the dimensions of block, with equally many row-blocks
// and column-blocks.
//
// Passing a zero block isolates the trade-only part of a solution by
// removing the domestic (same-region) flows.
func SetBlock(arr, block mat.Matrix) (*mat.Dense, error) {
	nrRow, nrCol := arr.Dims()
	blockRows, blockCols := block.Dims()
	if nrRow%blockRows != 0 || nrCol%blockCols != 0 {
		return nil, DimensionError{Rows: nrRow, Cols: nrCol, BlockRows: blockRows, BlockCols: blockCols}
	}
	if nrRow/blockRows != nrCol/blockCols {
		return nil, DimensionError{Rows: nrRow, Cols: nrCol, BlockRows: blockRows, BlockCols: blockCols}
	}

	o := mat.DenseCopyOf(arr)
	for k := 0; k < nrRow/blockRows; k++ {
		for i := 0; i < blockRows; i++ {
			for j := 0; j < blockCols; j++ {
				o.Set(k*blockRows+i, k*blockCols+j, block.At(i, j))
			}
		}
	}
	return o, nil
}
