// Package ast defines the tree the parser builds and the type checker
// consumes. Rather than the single stringly-typed node shape described
// by the source material, each syntactic form gets its own Go type; the
// type checker and pretty-printer dispatch on these with ordinary type
// switches. The Stmt and Expr marker interfaces make placing a form in
// the wrong position a compile error; a form missing from a switch
// reaches that switch's default branch at run time.
package ast

// Kind names a syntactic form for diagnostics and pretty-printing. It
// never drives control flow inside this package — Go's type system
// already does that — but diagnostics need a short name independent of
// Go's reflected type name.
type Kind string

const (
	KindProgram     Kind = "Program"
	KindClassDef    Kind = "ClassDef"
	KindConstructor Kind = "Constructor"
	KindMethodDef   Kind = "MethodDef"
	KindVarDec      Kind = "VarDec"
	KindStmtList    Kind = "StmtList"
	KindAssign      Kind = "Assign"
	KindIf          Kind = "If"
	KindWhile       Kind = "While"
	KindReturn      Kind = "Return"
	KindBreak       Kind = "Break"
	KindCall        Kind = "Call"
	KindPrintln     Kind = "Println"
	KindNew         Kind = "New"
	KindBinOp       Kind = "BinOp"
	KindLiteral     Kind = "Literal"
	KindIdent       Kind = "Ident"
	KindThis        Kind = "This"
	KindTypeRef     Kind = "TypeRef"
	KindSuperCall   Kind = "SuperCall"
)

// Node is implemented by every tree element. Label carries whatever
// string the spec attaches to a node kind (a class name, an operator
// symbol, literal text, ...); it is empty when a kind carries none.
type Node interface {
	Kind() Kind
	Label() string
}

// Stmt is any node that can appear in a statement position.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is any node that can appear in an expression position.
type Expr interface {
	Node
	exprNode()
}

// Program is the root: zero or more class definitions followed by
// exactly one top-level statement list.
type Program struct {
	Classes []*ClassDef
	Main    *StmtList
}

func (*Program) Kind() Kind    { return KindProgram }
func (*Program) Label() string { return "" }

// ClassDef declares a class, its optional superclass, its fields, its
// single constructor, and zero or more methods, in that order.
type ClassDef struct {
	Name       string
	Super      string // empty when HasSuper is false
	HasSuper   bool
	Fields     []*VarDec
	Ctor       *Constructor
	Methods    []*MethodDef
	DeclOffset int
}

func (*ClassDef) Kind() Kind      { return KindClassDef }
func (c *ClassDef) Label() string { return c.Name }

// Constructor is a class's single initializer: parameters, an optional
// super-call placed immediately after them, then body statements.
type Constructor struct {
	Params []*VarDec
	Super  *SuperCall // nil when absent
	Body   []Stmt
}

func (*Constructor) Kind() Kind    { return KindConstructor }
func (*Constructor) Label() string { return "" }

// SuperCall invokes the superclass constructor with the given
// arguments. Only legal as the Constructor's Super field.
type SuperCall struct {
	Args []Expr
}

func (*SuperCall) Kind() Kind    { return KindSuperCall }
func (*SuperCall) Label() string { return "" }

// MethodDef declares one method: parameters, a declared return type,
// and a body.
type MethodDef struct {
	Name    string
	Params  []*VarDec
	RetType *TypeRef
	Body    []Stmt
}

func (*MethodDef) Kind() Kind      { return KindMethodDef }
func (m *MethodDef) Label() string { return m.Name }

// VarDec declares a variable (a field when it is a ClassDef child, a
// parameter in a Constructor/MethodDef parameter list, a local when it
// appears in a body).
type VarDec struct {
	Type *TypeRef
	Name string
}

func (*VarDec) Kind() Kind      { return KindVarDec }
func (v *VarDec) Label() string { return v.Name }
func (*VarDec) stmtNode()       {}

// TypeRef names a primitive or class type in a type position.
type TypeRef struct {
	Name string
}

func (*TypeRef) Kind() Kind      { return KindTypeRef }
func (t *TypeRef) Label() string { return t.Name }

// StmtList is an ordered sequence of statements sharing one scope,
// used for the top-level program. Constructor and method bodies are
// plain []Stmt slices.
type StmtList struct {
	Stmts []Stmt
}

func (*StmtList) Kind() Kind    { return KindStmtList }
func (*StmtList) Label() string { return "" }

// Assign is `(= IDENT exp)`.
type Assign struct {
	Name  string
	Value Expr
}

func (*Assign) Kind() Kind      { return KindAssign }
func (a *Assign) Label() string { return a.Name }
func (*Assign) stmtNode()       {}

// If is `(if exp stmt stmt?)`. Else is nil when absent.
type If struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

func (*If) Kind() Kind    { return KindIf }
func (*If) Label() string { return "" }
func (*If) stmtNode()     {}

// While is `(while exp stmt*)`.
type While struct {
	Cond Expr
	Body []Stmt
}

func (*While) Kind() Kind    { return KindWhile }
func (*While) Label() string { return "" }
func (*While) stmtNode()     {}

// Return is `(return exp?)`. Value is nil when no expression follows.
type Return struct {
	Value Expr
}

func (*Return) Kind() Kind    { return KindReturn }
func (*Return) Label() string { return "" }
func (*Return) stmtNode()     {}

// Break is the bare `break` statement.
type Break struct{}

func (*Break) Kind() Kind    { return KindBreak }
func (*Break) Label() string { return "" }
func (*Break) stmtNode()     {}

// Call is `(call exp IDENT exp*)`. It is legal both as a statement
// (its result discarded) and as an expression.
type Call struct {
	Receiver Expr
	Method   string
	Args     []Expr
}

func (*Call) Kind() Kind      { return KindCall }
func (c *Call) Label() string { return c.Method }
func (*Call) stmtNode()       {}
func (*Call) exprNode()       {}

// Println is `(println exp)`, also legal as both statement and
// expression.
type Println struct {
	Value Expr
}

func (*Println) Kind() Kind    { return KindPrintln }
func (*Println) Label() string { return "" }
func (*Println) stmtNode()     {}
func (*Println) exprNode()     {}

// New is `(new IDENT exp*)`.
type New struct {
	Class string
	Args  []Expr
}

func (*New) Kind() Kind      { return KindNew }
func (n *New) Label() string { return n.Class }
func (*New) exprNode()       {}

// BinOp is `(op exp exp)` for op in {+,-,*,/,<,==}.
type BinOp struct {
	Op    string
	Left  Expr
	Right Expr
}

func (*BinOp) Kind() Kind      { return KindBinOp }
func (b *BinOp) Label() string { return b.Op }
func (*BinOp) exprNode()       {}

// Literal is an integer literal or a `true`/`false` boolean literal;
// Text carries the lexeme verbatim.
type Literal struct {
	Text string
}

func (*Literal) Kind() Kind      { return KindLiteral }
func (l *Literal) Label() string { return l.Text }
func (*Literal) exprNode()       {}

// Ident is a bound-variable reference.
type Ident struct {
	Name string
}

func (*Ident) Kind() Kind      { return KindIdent }
func (i *Ident) Label() string { return i.Name }
func (*Ident) exprNode()       {}

// This is the `this` keyword used as an expression.
type This struct{}

func (*This) Kind() Kind    { return KindThis }
func (*This) Label() string { return "this" }
func (*This) exprNode()     {}
