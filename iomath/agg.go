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

	"github.com/spf13/cast"
	"gonum.org/v1/gonum/mat"
)

// Excluded marks a grouping vector entry whose classification member
// should be dropped from the aggregation.
const Excluded = -1

// An AggregationError indicates an invalid grouping specification.
type AggregationError struct {
	Reason string
}

func (err AggregationError) Error() string {
	return "iomath: invalid aggregation: " + err.Reason
}

// BuildAggMatrix builds an n×m 0/1 concordance matrix from a grouping
// vector of length m (the old classification size), where n is the
// number of new groups. Entry G[new, old] is 1 iff old maps to new.
//
// The grouping vector entries are either integer group positions (with
// Excluded dropping the member) or group labels; a vector may not mix
// the two. Labels are assigned positions in order of first occurrence
// unless positions is supplied, in which case its key set must match
// the distinct labels one-to-one; a label mapped to Excluded is
// dropped. positions is ignored for integer vectors.
//
// Aggregation of a square matrix M over the same classification on
// both axes is then G·M·Gᵀ, or a one-sided product when only one axis
// is aggregated.
func BuildAggMatrix(groups []interface{}, positions map[string]int) (*mat.Dense, error) {
	if len(groups) == 0 {
		return nil, AggregationError{Reason: "empty grouping vector"}
	}

	pos, err := groupPositions(groups, positions)
	if err != nil {
		return nil, err
	}

	n := 0
	for _, p := range pos {
		if p+1 > n {
			n = p + 1
		}
	}
	if n == 0 {
		return nil, AggregationError{Reason: "all members excluded"}
	}

	G := mat.NewDense(n, len(pos), nil)
	for old, p := range pos {
		if p == Excluded {
			continue
		}
		G.Set(p, old, 1)
	}
	return G, nil
}

// groupPositions resolves a grouping vector to integer group positions.
// Whether the vector is positional or label-based is decided by its
// first entry.
func groupPositions(groups []interface{}, positions map[string]int) ([]int, error) {
	if _, ok := groups[0].(string); !ok {
		pos := make([]int, len(groups))
		for i, g := range groups {
			if _, ok := g.(string); ok {
				return nil, AggregationError{Reason: fmt.Sprintf("entry %d (%q) is a label in a positional grouping vector", i, g)}
			}
			p, err := cast.ToIntE(g)
			if err != nil {
				return nil, AggregationError{Reason: fmt.Sprintf("entry %d (%v) is not a group position", i, g)}
			}
			if p < 0 && p != Excluded {
				return nil, AggregationError{Reason: fmt.Sprintf("entry %d has negative group position %d", i, p)}
			}
			pos[i] = p
		}
		return pos, nil
	}

	labels := make([]string, len(groups))
	distinct := make(map[string]bool)
	for i, g := range groups {
		label, ok := g.(string)
		if !ok {
			return nil, AggregationError{Reason: fmt.Sprintf("entry %d (%v) is not a label in a label grouping vector", i, g)}
		}
		labels[i] = label
		distinct[label] = true
	}

	seen := positions
	if seen != nil {
		if len(seen) != len(distinct) {
			return nil, AggregationError{Reason: fmt.Sprintf("positions map has %d entries for %d distinct labels", len(seen), len(distinct))}
		}
		for label := range distinct {
			p, ok := seen[label]
			if !ok {
				return nil, AggregationError{Reason: fmt.Sprintf("positions map is missing label %q", label)}
			}
			if p < 0 && p != Excluded {
				return nil, AggregationError{Reason: fmt.Sprintf("label %q has negative group position %d", label, p)}
			}
		}
	} else {
		seen = make(map[string]int)
		counter := 0
		for _, label := range labels {
			if _, ok := seen[label]; !ok {
				seen[label] = counter
				counter++
			}
		}
	}

	pos := make([]int, len(labels))
	for i, label := range labels {
		pos[i] = seen[label]
	}
	return pos, nil
}
