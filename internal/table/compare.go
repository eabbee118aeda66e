package table

import (
	"errors"
	"math/big"
	"reflect"

	json "github.com/goccy/go-json"
)

var errIncomparable = errors.New("values are not comparable")

// compareValues orders two raw row values: numbers and booleans
// numerically, strings lexicographically, arrays element by element with
// equal elements skipped. Any other pairing (null, objects, number against
// string) is an error.
func compareValues(a, b any) (int, error) {
	if an, ok := numeric(a); ok {
		bn, ok := numeric(b)
		if !ok {
			return 0, errIncomparable
		}
		return an.Cmp(bn), nil
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, errIncomparable
		}
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		}
		return 0, nil
	case []any:
		bv, ok := b.([]any)
		if !ok {
			return 0, errIncomparable
		}
		for i := 0; i < len(av) && i < len(bv); i++ {
			if reflect.DeepEqual(av[i], bv[i]) {
				continue
			}
			c, err := compareValues(av[i], bv[i])
			if err != nil || c != 0 {
				return c, err
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
	return 0, errIncomparable
}

// numeric converts JSON numbers and booleans to an exact rational so that
// large integers keep their ordering.
func numeric(v any) (*big.Rat, bool) {
	switch t := v.(type) {
	case json.Number:
		r, ok := new(big.Rat).SetString(t.String())
		return r, ok
	case bool:
		if t {
			return big.NewRat(1, 1), true
		}
		return new(big.Rat), true
	case float64:
		r := new(big.Rat)
		if r.SetFloat64(t) == nil {
			return nil, false
		}
		return r, true
	case int:
		return big.NewRat(int64(t), 1), true
	case int64:
		return big.NewRat(t, 1), true
	}
	return nil, false
}
