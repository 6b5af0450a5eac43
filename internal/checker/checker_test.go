package checker_test

import (
	"strings"
	"testing"

	"classcify/internal/checker"
	"classcify/internal/lexer"
	"classcify/internal/parser"
)

func check(t *testing.T, src string) error {
	t.Helper()
	p := parser.New(lexer.New([]byte(src)))
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return checker.Check(prog)
}

func wantPass(t *testing.T, src string) {
	t.Helper()
	if err := check(t, src); err != nil {
		t.Fatalf("expected no type error, got: %v", err)
	}
}

func wantFail(t *testing.T, src, substr string) {
	t.Helper()
	err := check(t, src)
	if err == nil {
		t.Fatalf("expected a type error containing %q, got none", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Fatalf("error %q does not contain %q", err.Error(), substr)
	}
}

func TestPrintlnRequiresInt(t *testing.T) {
	wantPass(t, "(println 1)")
	wantFail(t, "(println true)", "Int")
}

func TestVarDecAndAssignSubtyping(t *testing.T) {
	wantPass(t, "(vardec Int x) (= x 5)")
	wantFail(t, "(vardec Int x) (= x true)", "cannot assign")
}

func TestVarDecRedeclaration(t *testing.T) {
	wantFail(t, "(vardec Int x) (vardec Int x) (println x)", "redeclaration")
}

func TestUndefinedVariable(t *testing.T) {
	wantFail(t, "(println y)", "undefined variable")
}

func TestIfConditionMustBeBoolean(t *testing.T) {
	wantPass(t, "(if true (println 1))")
	wantFail(t, "(if 1 (println 1))", "Boolean")
}

func TestWhileConditionMustBeBoolean(t *testing.T) {
	wantFail(t, "(while 1 (println 1))", "Boolean")
}

func TestBreakOutsideLoop(t *testing.T) {
	wantFail(t, "break", "break outside loop")
	wantPass(t, "(while true break)")
}

func TestBinOpRequiresIntOperands(t *testing.T) {
	wantPass(t, "(println (+ 1 2))")
	wantFail(t, "(println (+ 1 true))", "Int operands")
}

func TestComparisonProducesBoolean(t *testing.T) {
	wantPass(t, "(if (< 1 2) (println 1))")
	wantPass(t, "(if (== 1 2) (println 1))")
}

func TestClassFieldVisibleInConstructorAndMethods(t *testing.T) {
	src := `
	(class Box
	  ((vardec Int n))
	  (init ((vardec Int start))
	    (= n start))
	  (method get () Int
	    (return n)))
	(vardec Box b)
	(= b (new Box 5))
	(println (call b get))
	`
	wantPass(t, src)
}

func TestNewUnknownClass(t *testing.T) {
	wantFail(t, "(vardec Int g) (= g (new Ghost)) (println 1)", "unknown class")
}

func TestNewArityMismatch(t *testing.T) {
	src := `
	(class Box ((vardec Int n)) (init ((vardec Int start)) (= n start)))
	(vardec Box b)
	(= b (new Box))
	`
	wantFail(t, src, "argument")
}

func TestNewArgumentTypeMismatch(t *testing.T) {
	src := `
	(class Box ((vardec Int n)) (init ((vardec Int start)) (= n start)))
	(vardec Box b)
	(= b (new Box true))
	`
	wantFail(t, src, "not compatible")
}

func TestCallOnNonClassIsError(t *testing.T) {
	wantFail(t, "(vardec Int x) (= x 1) (println (call x foo))", "non-class")
}

func TestCallUndefinedMethod(t *testing.T) {
	src := `
	(class Box () (init ()))
	(vardec Box b)
	(= b (new Box))
	(println (call b missing))
	`
	wantFail(t, src, "undefined method")
}

func TestReturnVoidRejectsValue(t *testing.T) {
	src := `
	(class Greeter ()
	  (init ())
	  (method hello () Void
	    (return 1)))
	(println 1)
	`
	wantFail(t, src, "not compatible")
}

func TestReturnMissingValueForNonVoid(t *testing.T) {
	src := `
	(class Box ()
	  (init ())
	  (method get () Int
	    (return)))
	(println 1)
	`
	wantFail(t, src, "missing return value")
}

func TestUnknownSuperclass(t *testing.T) {
	src := `
	(class Derived Ghost () (init ()))
	(println 1)
	`
	wantFail(t, src, "unknown class")
}

func TestDuplicateClassDeclaration(t *testing.T) {
	src := `
	(class Box () (init ()))
	(class Box () (init ()))
	(println 1)
	`
	wantFail(t, src, "duplicate class")
}

func TestOverrideMustMatchAncestorSignature(t *testing.T) {
	src := `
	(class Base ()
	  (init ())
	  (method area () Int (return 0)))
	(class Square Base ()
	  (init () (super))
	  (method area () Boolean (return true)))
	(println 1)
	`
	wantFail(t, src, "overriding method")
}

func TestSubclassInstanceSatisfiesSuperclassParam(t *testing.T) {
	src := `
	(class Shape () (init ()))
	(class Square Shape () (init () (super)))
	(class Printer ()
	  (init ())
	  (method show ((vardec Shape s)) Void
	    (println 1)))
	(vardec Printer p)
	(= p (new Printer))
	(vardec Square sq)
	(= sq (new Square))
	(println 1)
	(call p show sq)
	`
	wantPass(t, src)
}

func TestThisOutsideClassBody(t *testing.T) {
	wantFail(t, "(println (call this foo))", "'this' used outside")
}

func TestThisUsableInSuperCallArguments(t *testing.T) {
	src := `
	(class Base ()
	  (init ((vardec Base b))))
	(class Derived Base ()
	  (init ()
	    (super this)))
	(println 0)
	`
	wantPass(t, src)
}

func TestDirectInheritanceCycleIsRejected(t *testing.T) {
	src := `
	(class A B () (init ()))
	(class B A () (init ()))
	(println 0)
	`
	wantFail(t, src, "inheritance cycle")
}

func TestSelfInheritanceCycleIsRejected(t *testing.T) {
	src := `
	(class A A () (init ()))
	(println 0)
	`
	wantFail(t, src, "inheritance cycle")
}
