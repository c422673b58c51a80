package kind

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/nalgeon/be"
)

func pointStruct() *Struct {
	return &Struct{Fields: []Field{{Name: "x", Kind: Int}, {Name: "y", Kind: Int}}}
}

func TestAreIdentical(t *testing.T) {
	point := &Defined{Name: "Point", Underlying: pointStruct()}
	otherPoint := &Defined{Name: "Point", Underlying: pointStruct()}

	tests := []struct {
		name     string
		a, b     Kind
		expected bool
	}{
		{"same basic", Int, Int, true},
		{"different basic", Int, Float, false},
		{"rune is not int", Rune, Int, false},
		{"same named type", point, point, true},
		{"separately declared named types", point, otherPoint, false},
		{"named versus underlying", point, pointStruct(), false},
		{"arrays same length", &Array{Elem: Bool, Len: 2}, &Array{Elem: Bool, Len: 2}, true},
		{"arrays different length", &Array{Elem: Bool, Len: 2}, &Array{Elem: Bool, Len: 3}, false},
		{"array versus slice", &Array{Elem: Int, Len: 2}, &Slice{Elem: Int}, false},
		{"slices", &Slice{Elem: point}, &Slice{Elem: point}, true},
		{"slices of distinct named", &Slice{Elem: point}, &Slice{Elem: otherPoint}, false},
		{"structs", pointStruct(), pointStruct(), true},
		{"structs different field names", pointStruct(), &Struct{Fields: []Field{{Name: "x", Kind: Int}, {Name: "z", Kind: Int}}}, false},
		{"underscore left", Underscore{}, &Slice{Elem: Int}, true},
		{"underscore right", String, Underscore{}, true},
		{"undefined", Undefined{}, Undefined{}, false},
		{"no value", nil, Int, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			be.Equal(t, AreIdentical(test.a, test.b), test.expected)
		})
	}
}

func TestResolveFollowsDefinedChain(t *testing.T) {
	inner := &Defined{Name: "Inner", Underlying: &Array{Elem: Int, Len: 4}}
	outer := &Defined{Name: "Outer", Underlying: inner}

	if diff := deep.Equal(Resolve(outer), Kind(&Array{Elem: Int, Len: 4})); diff != nil {
		t.Error(diff)
	}
	be.Equal(t, Resolve(Int), Kind(Int))
	be.Equal(t, Resolve(&Defined{Name: "Pending"}), Kind(Undefined{}))
}

func TestComparability(t *testing.T) {
	tests := []struct {
		name       string
		k          Kind
		comparable bool
		ordered    bool
	}{
		{"int", Int, true, true},
		{"float", Float, true, true},
		{"string", String, true, true},
		{"rune", Rune, true, true},
		{"bool", Bool, true, false},
		{"struct of basics", pointStruct(), true, false},
		{"struct with slice field", &Struct{Fields: []Field{{Name: "s", Kind: &Slice{Elem: Int}}}}, false, false},
		{"array of ints", &Array{Elem: Int, Len: 3}, true, false},
		{"array of slices", &Array{Elem: &Slice{Elem: Int}, Len: 3}, false, false},
		{"slice", &Slice{Elem: Int}, false, false},
		{"named int", &Defined{Name: "Age", Underlying: Int}, true, true},
		{"underscore", Underscore{}, false, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			be.Equal(t, IsComparable(test.k), test.comparable)
			be.Equal(t, IsOrdered(test.k), test.ordered)
		})
	}
}

func TestRecursiveKindThroughSlice(t *testing.T) {
	node := &Defined{Name: "Node"}
	node.Underlying = &Struct{Fields: []Field{
		{Name: "value", Kind: Int},
		{Name: "children", Kind: &Slice{Elem: node}},
	}}

	be.Equal(t, IsComparable(node), false)
	be.True(t, AreIdentical(node, node))
	be.Equal(t, Format(node.Underlying), "struct{value int; children []Node}")
}

func TestNumericPredicates(t *testing.T) {
	celsius := &Defined{Name: "Celsius", Underlying: Float}

	be.True(t, IsNumeric(celsius))
	be.Equal(t, IsInteger(celsius), false)
	be.True(t, IsInteger(Rune))
	be.Equal(t, IsNumeric(String), false)
	be.True(t, IsBoolean(&Defined{Name: "Flag", Underlying: Bool}))
	be.True(t, IsString(String))

	// Shift operands only need to be integers, not identical.
	be.True(t, AreIntegers(Int, Rune))
	be.Equal(t, AreIntegers(Int, Float), false)
	be.True(t, AreNumeric(Float, Int))

	// Comparison needs identical kinds.
	be.Equal(t, AreComparable(Int, Rune), false)
	be.True(t, AreOrdered(String, String))
	be.Equal(t, AreOrdered(celsius, Float), false)
}

func TestIsConvertible(t *testing.T) {
	celsius := &Defined{Name: "Celsius", Underlying: Float}
	point := &Defined{Name: "Point", Underlying: pointStruct()}

	be.True(t, IsConvertible(Int, Float))
	be.True(t, IsConvertible(celsius, Int))
	be.True(t, IsConvertible(String, Rune))
	be.True(t, IsConvertible(point, pointStruct()))
	be.Equal(t, IsConvertible(Int, String), false)
	be.Equal(t, IsConvertible(String, Float), false)
	be.Equal(t, IsConvertible(point, &Struct{}), false)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		k        Kind
		expected string
	}{
		{Int, "int"},
		{Float, "float64"},
		{&Array{Elem: &Slice{Elem: Bool}, Len: 2}, "[2][]bool"},
		{&Defined{Name: "Point", Underlying: pointStruct()}, "Point"},
		{pointStruct(), "struct{x int; y int}"},
		{nil, "no value"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			be.Equal(t, Format(test.k), test.expected)
		})
	}
}
