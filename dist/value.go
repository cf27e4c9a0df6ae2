// SPDX-License-Identifier: MIT

package dist

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/katalvlaran/lvprob/ratio"
)

// Comparer lets a domain type define its own ordering for the relational
// predicates. Compare returns -1, 0 or +1, or ErrTypeConsistency (wrapped)
// when other is not comparable with the receiver.
type Comparer interface {
	Compare(other Value) (int, error)
}

// CheckValue reports whether v can be used as an outcome.
// nil, slices, maps, funcs, NaN floats and composites containing them are
// rejected with ErrTypeConsistency. ratio.Rat is rejected too: it holds a
// pointer, so == would compare identity rather than value.
func CheckValue(v Value) error {
	if v == nil {
		return fmt.Errorf("%w: nil outcome", ErrTypeConsistency)
	}
	if !hashable(reflect.ValueOf(v)) {
		return fmt.Errorf("%w: outcome %v of type %T has no well-defined equality", ErrTypeConsistency, v, v)
	}

	return nil
}

var ratType = reflect.TypeOf(ratio.Rat{})

func hashable(rv reflect.Value) bool {
	if rv.IsValid() && rv.Type() == ratType {
		return false
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Func, reflect.Invalid:
		return false
	case reflect.Float32, reflect.Float64:
		return !math.IsNaN(rv.Float())
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		return !math.IsNaN(real(c)) && !math.IsNaN(imag(c))
	case reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return hashable(rv.Elem())
	case reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if !hashable(rv.Index(i)) {
				return false
			}
		}
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if !hashable(rv.Field(i)) {
				return false
			}
		}
	}

	return true
}

// numeric converts any Go integer, float or ratio.Rat to an exact rational.
func numeric(v Value) (*big.Rat, bool) {
	if r, ok := v.(ratio.Rat); ok {
		return r.Big(), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return new(big.Rat).SetInt64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Rat).SetInt(new(big.Int).SetUint64(rv.Uint())), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
		return new(big.Rat).SetFloat64(f), true
	}

	return nil, false
}

// CompareValues orders a and b, returning -1, 0 or +1.
//
// Numbers of any kind (and ratio.Rat) compare exactly by value, strings
// lexicographically, Tuples element-wise then by length, and types
// implementing Comparer through their Compare method. Any other pairing is
// ErrTypeConsistency.
func CompareValues(a, b Value) (int, error) {
	if ar, ok := numeric(a); ok {
		if br, ok := numeric(b); ok {
			return ar.Cmp(br), nil
		}
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.String && rb.Kind() == reflect.String {
		return strings.Compare(ra.String(), rb.String()), nil
	}
	if ta, ok := a.(Tuple); ok {
		if tb, ok := b.(Tuple); ok {
			return compareTuples(ta, tb)
		}
	}
	if c, ok := a.(Comparer); ok {
		return c.Compare(b)
	}

	return 0, fmt.Errorf("%w: cannot order %T against %T", ErrTypeConsistency, a, b)
}

func compareTuples(a, b Tuple) (int, error) {
	av, bv := a.Values(), b.Values()
	for i := 0; i < len(av) && i < len(bv); i++ {
		c, err := CompareValues(av[i], bv[i])
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	switch {
	case len(av) < len(bv):
		return -1, nil
	case len(av) > len(bv):
		return 1, nil
	}

	return 0, nil
}

// EqualValues reports whether a and b are the same outcome, using the same
// == that keys a Canonical. Values of different Go types are never equal,
// so 1 and 1.0 are distinct outcomes even though CompareValues orders them
// as equal.
func EqualValues(a, b Value) (bool, error) {
	if err := CheckValue(a); err != nil {
		return false, err
	}
	if err := CheckValue(b); err != nil {
		return false, err
	}

	return a == b, nil
}
