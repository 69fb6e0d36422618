package frame

import (
	"fmt"
	"math"
	"slices"
)

// Kind is the element type of a column
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt64
	KindFloat64
	KindString
	KindBool
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Column is a named, typed sequence of values. Exactly one of the backing
// slices is used, selected by kind. nulls marks missing values; it is nil
// when the column has none.
type Column struct {
	name   string
	kind   Kind
	ints   []int64
	floats []float64
	strs   []string
	bools  []bool
	nulls  []bool
}

// Int64s creates an int64 column. The values are copied.
func Int64s(name string, values ...int64) Column {
	return Column{name: name, kind: KindInt64, ints: slices.Clone(values)}
}

// Float64s creates a float64 column. The values are copied.
func Float64s(name string, values ...float64) Column {
	return Column{name: name, kind: KindFloat64, floats: slices.Clone(values)}
}

// Strings creates a string column. The values are copied.
func Strings(name string, values ...string) Column {
	return Column{name: name, kind: KindString, strs: slices.Clone(values)}
}

// Bools creates a bool column. The values are copied.
func Bools(name string, values ...bool) Column {
	return Column{name: name, kind: KindBool, bools: slices.Clone(values)}
}

// WithNulls returns a copy of c with the given rows marked null. The value
// stored at a null row is the zero value, NaN for float64 columns. It
// panics if a row is out of range.
func (c Column) WithNulls(rows ...int) Column {
	r := c.clone()
	if len(rows) == 0 {
		return r
	}
	if r.nulls == nil {
		r.nulls = make([]bool, r.Len())
	}
	for _, i := range rows {
		r.nulls[i] = true
		switch r.kind {
		case KindInt64:
			r.ints[i] = 0
		case KindFloat64:
			r.floats[i] = math.NaN()
		case KindString:
			r.strs[i] = ""
		case KindBool:
			r.bools[i] = false
		}
	}
	return r
}

// Name returns the column name
func (c Column) Name() string { return c.name }

// Kind returns the element type
func (c Column) Kind() Kind { return c.kind }

// Len returns the number of values
func (c Column) Len() int {
	switch c.kind {
	case KindInt64:
		return len(c.ints)
	case KindFloat64:
		return len(c.floats)
	case KindString:
		return len(c.strs)
	case KindBool:
		return len(c.bools)
	}
	return 0
}

// IsNull reports whether the i-th value is missing
func (c Column) IsNull(i int) bool {
	return c.nulls != nil && c.nulls[i]
}

// NullCount returns the number of missing values
func (c Column) NullCount() int {
	n := 0
	for _, null := range c.nulls {
		if null {
			n++
		}
	}
	return n
}

// Value returns the i-th value boxed as int64, float64, string or bool, or
// nil when it is null. It panics if i is out of range.
func (c Column) Value(i int) any {
	if c.IsNull(i) {
		return nil
	}
	switch c.kind {
	case KindInt64:
		return c.ints[i]
	case KindFloat64:
		return c.floats[i]
	case KindString:
		return c.strs[i]
	case KindBool:
		return c.bools[i]
	}
	panic("frame: value of invalid column")
}

// Int64s returns a copy of the values of an int64 column, nil otherwise.
// Null rows hold 0.
func (c Column) Int64s() []int64 { return slices.Clone(c.ints) }

// Float64s returns a copy of the values of a float64 column, nil otherwise.
// Null rows hold NaN.
func (c Column) Float64s() []float64 { return slices.Clone(c.floats) }

// Strings returns a copy of the values of a string column, nil otherwise.
// Null rows hold "".
func (c Column) Strings() []string { return slices.Clone(c.strs) }

// Bools returns a copy of the values of a bool column, nil otherwise.
// Null rows hold false.
func (c Column) Bools() []bool { return slices.Clone(c.bools) }

// Equal reports whether both columns have the same name, kind, nulls and
// values. Values at null rows are not compared. NaN compares equal to NaN.
func (c Column) Equal(o Column) bool {
	if c.name != o.name || c.kind != o.kind || c.Len() != o.Len() {
		return false
	}
	for i := 0; i < c.Len(); i++ {
		null := c.IsNull(i)
		if null != o.IsNull(i) {
			return false
		}
		if null {
			continue
		}
		if !c.equalAt(o, i) {
			return false
		}
	}
	return true
}

func (c Column) equalAt(o Column, i int) bool {
	switch c.kind {
	case KindInt64:
		return c.ints[i] == o.ints[i]
	case KindFloat64:
		a, b := c.floats[i], o.floats[i]
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	case KindString:
		return c.strs[i] == o.strs[i]
	case KindBool:
		return c.bools[i] == o.bools[i]
	}
	return true
}

func (c Column) clone() Column {
	return Column{
		name:   c.name,
		kind:   c.kind,
		ints:   slices.Clone(c.ints),
		floats: slices.Clone(c.floats),
		strs:   slices.Clone(c.strs),
		bools:  slices.Clone(c.bools),
		nulls:  slices.Clone(c.nulls),
	}
}

func (c Column) reversed() Column {
	r := c.clone()
	slices.Reverse(r.ints)
	slices.Reverse(r.floats)
	slices.Reverse(r.strs)
	slices.Reverse(r.bools)
	slices.Reverse(r.nulls)
	return r
}
