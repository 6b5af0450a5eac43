package types_test

import (
	"testing"

	"classcify/internal/types"
)

type fakeHierarchy map[string]string

func (h fakeHierarchy) SuperOf(class string) (string, bool) {
	s, ok := h[class]
	return s, ok
}

func TestEqualIsNominal(t *testing.T) {
	if !types.Class("Shape").Equal(types.Class("Shape")) {
		t.Fatal("same class name must be equal")
	}
	if types.Class("Shape").Equal(types.Class("Square")) {
		t.Fatal("different class names must not be equal")
	}
	if !types.Primitive(types.Int).Equal(types.Primitive(types.Int)) {
		t.Fatal("same primitive kind must be equal")
	}
	if types.Primitive(types.Int).Equal(types.Primitive(types.Boolean)) {
		t.Fatal("different primitive kinds must not be equal")
	}
}

func TestIsSubtypeReflexive(t *testing.T) {
	h := fakeHierarchy{}
	if !types.IsSubtype(types.Class("Shape"), types.Class("Shape"), h) {
		t.Fatal("a class must be a subtype of itself")
	}
}

func TestIsSubtypeWalksChain(t *testing.T) {
	h := fakeHierarchy{"Square": "Shape", "Shape": "Object"}
	if !types.IsSubtype(types.Class("Square"), types.Class("Object"), h) {
		t.Fatal("Square should be a subtype of Object through Shape")
	}
	if types.IsSubtype(types.Class("Object"), types.Class("Square"), h) {
		t.Fatal("subtyping must not be symmetric")
	}
}

func TestIsSubtypeUnrelatedClasses(t *testing.T) {
	h := fakeHierarchy{"Square": "Shape", "Circle": "Shape"}
	if types.IsSubtype(types.Class("Square"), types.Class("Circle"), h) {
		t.Fatal("siblings must not be subtypes of each other")
	}
}

func TestIsSubtypePrimitivesIgnoreHierarchy(t *testing.T) {
	h := fakeHierarchy{}
	if !types.IsSubtype(types.Primitive(types.Int), types.Primitive(types.Int), h) {
		t.Fatal("Int must be a subtype of Int")
	}
	if types.IsSubtype(types.Primitive(types.Int), types.Primitive(types.Boolean), h) {
		t.Fatal("Int must not be a subtype of Boolean")
	}
}

func TestStringRendering(t *testing.T) {
	cases := map[types.Type]string{
		types.Primitive(types.Int):     "Int",
		types.Primitive(types.Boolean): "Boolean",
		types.Primitive(types.Void):    "Void",
		types.Class("Shape"):           "Shape",
	}
	for ty, want := range cases {
		if got := ty.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}
