/*
Package sparse implements a simple type for sparse integer matrices.
It is mainly used for parser tables (GOTO-table, ACTION-table and the LL(1)
predictive table). Every entry in the table is either a single int32 or a
pair (int32,int32); the second slot of a pair lets table builders keep a
colliding entry around for conflict diagnosis.

This implementation uses COO encoding (a.k.a. triplet encoding), with cells
kept sorted by (row,col) for binary search.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// IntMatrix is a sparse matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value at (2,3)
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(10, 10)            // returns -1, i.e. the null-value
//
// Values cannot be deleted, but may be overwritten.
type IntMatrix struct {
	cells   []cell
	rowcnt  int
	colcnt  int
	nullval int32
}

// A cell holds up to two values at one (row,col) position.
type cell struct {
	row, col int
	a, b     int32
}

// NewIntMatrix creates a new matrix for int32, size m x n. The 3rd argument
// is a null-value, indicating empty entries (use DefaultNullValue if you
// haven't any specific requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value.
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of occupied positions in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.cells)
}

// find returns the index of the cell for (i,j), or the insertion position and
// false.
func (m *IntMatrix) find(i, j int) (int, bool) {
	at := sort.Search(len(m.cells), func(k int) bool {
		c := m.cells[k]
		return c.row > i || (c.row == i && c.col >= j)
	})
	if at < len(m.cells) && m.cells[at].row == i && m.cells[at].col == j {
		return at, true
	}
	return at, false
}

// Value returns the primary value at position (i,j), or NullValue.
func (m *IntMatrix) Value(i, j int) int32 {
	if at, ok := m.find(i, j); ok {
		return m.cells[at].a
	}
	return m.nullval
}

// Values returns the pair of values at position (i,j), or
// (NullValue, NullValue).
func (m *IntMatrix) Values(i, j int) (int32, int32) {
	if at, ok := m.find(i, j); ok {
		return m.cells[at].a, m.cells[at].b
	}
	return m.nullval, m.nullval
}

// Set puts a value into the matrix at position (i,j), overwriting any
// previous values at this position.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	at, ok := m.find(i, j)
	if ok {
		m.cells[at].a = value
		m.cells[at].b = m.nullval
		return m
	}
	return m.insert(at, i, j, value)
}

// Add puts a value into the matrix at position (i,j). If the position is
// occupied, the value is stored in the secondary slot (overwriting it if the
// pair is full).
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	at, ok := m.find(i, j)
	if !ok {
		return m.insert(at, i, j, value)
	}
	if m.cells[at].a == m.nullval {
		m.cells[at].a = value
	} else {
		m.cells[at].b = value
	}
	return m
}

func (m *IntMatrix) insert(at, i, j int, value int32) *IntMatrix {
	c := cell{row: i, col: j, a: value, b: m.nullval}
	m.cells = append(m.cells, cell{})
	copy(m.cells[at+1:], m.cells[at:])
	m.cells[at] = c
	return m
}

func (c cell) String() string {
	return fmt.Sprintf("(%d,%d)=[%d,%d]", c.row, c.col, c.a, c.b)
}
