// SPDX-License-Identifier: MIT

package dist

import (
	"fmt"
	"strings"
)

// Tuple is an immutable ordered sequence of values. Unlike a slice it is
// comparable: two tuples holding equal elements are == and hash alike, so a
// Tuple can be an outcome of a distribution (DrawSequence yields Tuples).
//
// The zero Tuple is the empty tuple.
type Tuple struct {
	n     int
	cells any // nil or cell
}

// cell is one link of the persistent list behind Tuple. Only value fields
// are used so that == on Tuple compares contents, not identity.
type cell struct {
	head Value
	tail any // nil or cell
}

// NewTuple returns the tuple (vs[0], vs[1], ...).
func NewTuple(vs ...Value) Tuple {
	t := Tuple{}
	for i := len(vs) - 1; i >= 0; i-- {
		t = Prepend(vs[i], t)
	}

	return t
}

// Prepend returns (v,) + t in O(1). t is not modified.
func Prepend(v Value, t Tuple) Tuple {
	return Tuple{n: t.n + 1, cells: cell{head: v, tail: t.cells}}
}

// Len returns the number of elements.
func (t Tuple) Len() int { return t.n }

// At returns element i, or nil when i is out of range.
func (t Tuple) At(i int) Value {
	if i < 0 || i >= t.n {
		return nil
	}
	c := t.cells.(cell)
	for ; i > 0; i-- {
		c = c.tail.(cell)
	}

	return c.head
}

// Values returns the elements as a fresh slice.
func (t Tuple) Values() []Value {
	out := make([]Value, 0, t.n)
	for c := t.cells; c != nil; {
		cc := c.(cell)
		out = append(out, cc.head)
		c = cc.tail
	}

	return out
}

// String formats the tuple as (a, b, c); a 1-tuple prints as (a,).
func (t Tuple) String() string {
	vs := t.Values()
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprint(v)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}

	return "(" + strings.Join(parts, ", ") + ")"
}
