// SPDX-License-Identifier: MIT

package dist

import (
	"fmt"
	"reflect"
)

// CloneTable maps an original node to its clone for the duration of a
// single Clone operation. Threading one table through every recursive call
// is what keeps shared sub-distributions shared: a node referenced by two
// parents is cloned once and both cloned parents point at that one clone.
//
// Node implementations must be pointer types so that identity is usable as
// a map key.
type CloneTable map[Distribution]Distribution

// NewCloneTable returns an empty table.
func NewCloneTable() CloneTable {
	return make(CloneTable)
}

// Lookup returns the clone already registered for d, if any.
func (t CloneTable) Lookup(d Distribution) (Distribution, bool) {
	out, ok := t[d]

	return out, ok
}

// CloneGraph deep-copies the graph rooted at d with a fresh table.
func CloneGraph(d Distribution) Distribution {
	if d == nil {
		return nil
	}

	return d.Clone(NewCloneTable())
}

// sameNode reports whether a and b are the same node instance.
func sameNode(a, b Distribution) bool {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}

	return a == b
}

// Walk visits every node reachable from root exactly once, in pre-order,
// children left to right. A non-nil error from visit stops the walk and is
// returned.
// Complexity: O(N + E) over distinct nodes N and child references E.
func Walk(root Distribution, visit func(Distribution) error) error {
	if root == nil {
		return fmt.Errorf("%w: nil distribution", ErrInvalidArgument)
	}
	visited := make(map[Distribution]struct{})

	return walk(root, visited, visit)
}

func walk(d Distribution, visited map[Distribution]struct{}, visit func(Distribution) error) error {
	if _, ok := visited[d]; ok {
		return nil
	}
	visited[d] = struct{}{} // mark before recursing so cycles terminate
	if err := visit(d); err != nil {
		return err
	}
	for _, c := range d.Children() {
		if c == nil {
			continue
		}
		if err := walk(c, visited, visit); err != nil {
			return err
		}
	}

	return nil
}

// Nodes returns the distinct nodes reachable from root in Walk order.
func Nodes(root Distribution) []Distribution {
	var out []Distribution
	_ = Walk(root, func(d Distribution) error {
		out = append(out, d)
		return nil
	})

	return out
}

// SharedNodes returns the nodes reachable from root through more than one
// child reference, in Walk order. These are the points of statistical
// dependence a clone must preserve.
func SharedNodes(root Distribution) []Distribution {
	nodes := Nodes(root)
	refs := make(map[Distribution]int, len(nodes))
	for _, n := range nodes {
		for _, c := range n.Children() {
			if c != nil {
				refs[c]++
			}
		}
	}
	var out []Distribution
	for _, n := range nodes {
		if refs[n] > 1 {
			out = append(out, n)
		}
	}

	return out
}
