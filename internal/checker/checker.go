// Package checker implements the three-pass static type checker:
// class registration, signature registration, then body checking.
// State that would otherwise be global — the class and method
// environments, the current class/return-type/loop-depth context — is
// held on a single *Checker value threaded through the recursion
// instead, so two checks never share mutable state.
package checker

import (
	"fmt"

	"classcify/internal/ast"
	"classcify/internal/diag"
	"classcify/internal/types"
)

// ctorName is the sentinel method-table key for a class's constructor.
// It can never collide with a user method name: the lexer never
// produces an identifier spelled this way.
const ctorName = "<ctor>"

type classInfo struct {
	name     string
	super    string
	hasSuper bool
}

type methodKey struct {
	class  string
	method string
}

type signature struct {
	params []types.Type
	ret    types.Type
}

// Checker is the type checker's whole mutable context. A fresh value
// must be used per compilation.
type Checker struct {
	classes   map[string]*classInfo
	classDefs map[string]*ast.ClassDef
	methods   map[methodKey]*signature

	// per-traversal context, saved and restored around nested calls
	currentClass string // "" when outside any class body
	expectedRet  types.Type
	loopDepth    int
}

// New creates an empty checker context.
func New() *Checker {
	return &Checker{
		classes:   make(map[string]*classInfo),
		classDefs: make(map[string]*ast.ClassDef),
		methods:   make(map[methodKey]*signature),
	}
}

// SuperOf implements types.Hierarchy against the registered class
// environment.
func (c *Checker) SuperOf(class string) (string, bool) {
	ci, ok := c.classes[class]
	if !ok || !ci.hasSuper {
		return "", false
	}
	return ci.super, true
}

func (c *Checker) isSubtype(sub, super types.Type) bool {
	return types.IsSubtype(sub, super, c)
}

func tag(n ast.Node) string {
	if l := n.Label(); l != "" {
		return l
	}
	return string(n.Kind())
}

func semErr(n ast.Node, format string, args ...any) error {
	return diag.NewSemantic(tag(n), fmt.Sprintf(format, args...))
}

// Check runs all three passes over prog and returns the first
// diagnostic raised, or nil on success.
func Check(prog *ast.Program) error {
	c := New()
	if err := c.registerClasses(prog); err != nil {
		return err
	}
	if err := c.registerSignatures(prog); err != nil {
		return err
	}
	return c.checkBodies(prog)
}

// --------------- Pass 1: class registration --------------- //

func (c *Checker) registerClasses(prog *ast.Program) error {
	for _, cd := range prog.Classes {
		if _, exists := c.classes[cd.Name]; exists {
			return semErr(cd, "duplicate class declaration")
		}
		c.classes[cd.Name] = &classInfo{name: cd.Name, super: cd.Super, hasSuper: cd.HasSuper}
		c.classDefs[cd.Name] = cd
	}
	return nil
}

// --------------- Pass 2: signature registration --------------- //

func (c *Checker) registerSignatures(prog *ast.Program) error {
	for _, cd := range prog.Classes {
		if cd.HasSuper {
			if _, ok := c.classes[cd.Super]; !ok {
				return semErr(cd, "unknown class '%s'", cd.Super)
			}
		}
	}

	if err := c.checkNoInheritanceCycles(prog); err != nil {
		return err
	}

	for _, cd := range prog.Classes {
		ctorParams, err := c.resolveParams(cd.Ctor.Params)
		if err != nil {
			return err
		}
		c.methods[methodKey{cd.Name, ctorName}] = &signature{params: ctorParams, ret: types.Primitive(types.Void)}

		for _, md := range cd.Methods {
			params, err := c.resolveParams(md.Params)
			if err != nil {
				return err
			}
			ret, err := c.resolveType(md.RetType)
			if err != nil {
				return err
			}
			c.methods[methodKey{cd.Name, md.Name}] = &signature{params: params, ret: ret}
		}
	}

	for _, cd := range prog.Classes {
		if !cd.HasSuper {
			continue
		}
		for _, md := range cd.Methods {
			ancestorSig, _, found := c.lookupMethod(cd.Super, md.Name)
			if !found {
				continue
			}
			mine := c.methods[methodKey{cd.Name, md.Name}]
			if !signaturesEqual(mine, ancestorSig) {
				return semErr(md, "overriding method must match its ancestor's parameter and return types exactly")
			}
		}
	}

	return nil
}

func (c *Checker) resolveParams(params []*ast.VarDec) ([]types.Type, error) {
	out := make([]types.Type, len(params))
	for i, p := range params {
		t, err := c.resolveType(p.Type)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func (c *Checker) resolveType(tr *ast.TypeRef) (types.Type, error) {
	switch tr.Name {
	case "Int":
		return types.Primitive(types.Int), nil
	case "Boolean":
		return types.Primitive(types.Boolean), nil
	case "Void":
		return types.Primitive(types.Void), nil
	default:
		if _, ok := c.classes[tr.Name]; ok {
			return types.Class(tr.Name), nil
		}
		return types.Type{}, semErr(tr, "unknown class '%s'", tr.Name)
	}
}

// checkNoInheritanceCycles rejects a superclass chain that loops back
// on itself (e.g. A extends B extends A). Every other chain walk in
// this package — lookupMethod, allFields, types.IsSubtype — assumes
// termination, so this must run before any of them does.
func (c *Checker) checkNoInheritanceCycles(prog *ast.Program) error {
	for _, cd := range prog.Classes {
		seen := map[string]bool{cd.Name: true}
		for ci := c.classes[cd.Name]; ci.hasSuper; ci = c.classes[ci.super] {
			if seen[ci.super] {
				return semErr(cd, "inheritance cycle detected at class '%s'", cd.Name)
			}
			seen[ci.super] = true
		}
	}
	return nil
}

// lookupMethod walks class's superclass chain (including class
// itself) for the first signature registered under name.
func (c *Checker) lookupMethod(class, name string) (*signature, string, bool) {
	for cur := class; ; {
		if sig, ok := c.methods[methodKey{cur, name}]; ok {
			return sig, cur, true
		}
		ci, ok := c.classes[cur]
		if !ok || !ci.hasSuper {
			return nil, "", false
		}
		cur = ci.super
	}
}

// allFields collects class's visible fields, root ancestor first, so a
// subclass's own declarations are declared last into a scope (not that
// it matters for lookup — this front end does not allow a subclass to
// redeclare an ancestor's field name).
func (c *Checker) allFields(class string) []*ast.VarDec {
	var chain []string
	for cur := class; cur != ""; {
		chain = append(chain, cur)
		ci, ok := c.classes[cur]
		if !ok || !ci.hasSuper {
			break
		}
		cur = ci.super
	}

	var fields []*ast.VarDec
	for i := len(chain) - 1; i >= 0; i-- {
		if cd, ok := c.classDefs[chain[i]]; ok {
			fields = append(fields, cd.Fields...)
		}
	}
	return fields
}

// classScope builds the outer frame shared by a constructor and every
// method of cd: "this" plus every field visible on cd, inherited ones
// included. Parameters are declared into a nested frame by the caller
// so that a parameter name is free to shadow a field name.
func (c *Checker) classScope(cd *ast.ClassDef) (*Scope, error) {
	scope := NewScope(nil)
	scope.Declare("this", types.Class(cd.Name))
	for _, f := range c.allFields(cd.Name) {
		t, err := c.resolveType(f.Type)
		if err != nil {
			return nil, err
		}
		if !scope.Declare(f.Name, t) {
			return nil, semErr(f, "redeclaration of '%s' in this scope", f.Name)
		}
	}
	return scope, nil
}

func signaturesEqual(a, b *signature) bool {
	if !a.ret.Equal(b.ret) || len(a.params) != len(b.params) {
		return false
	}
	for i := range a.params {
		if !a.params[i].Equal(b.params[i]) {
			return false
		}
	}
	return true
}

// --------------- Pass 3: body checking --------------- //

func (c *Checker) checkBodies(prog *ast.Program) error {
	for _, cd := range prog.Classes {
		if err := c.checkConstructor(cd); err != nil {
			return err
		}
		for _, md := range cd.Methods {
			if err := c.checkMethod(cd, md); err != nil {
				return err
			}
		}
	}

	scope := NewScope(nil)
	c.currentClass = ""
	c.expectedRet = types.Primitive(types.Void)
	c.loopDepth = 0
	return c.checkStmtList(prog.Main.Stmts, scope)
}

func (c *Checker) checkConstructor(cd *ast.ClassDef) error {
	outer, err := c.classScope(cd)
	if err != nil {
		return err
	}
	scope := NewScope(outer)
	for _, p := range cd.Ctor.Params {
		t, err := c.resolveType(p.Type)
		if err != nil {
			return err
		}
		if !scope.Declare(p.Name, t) {
			return semErr(p, "redeclaration of '%s' in this scope", p.Name)
		}
	}

	// this must already resolve to the enclosing class before the
	// super-call arguments are checked, since those arguments may
	// themselves reference this (e.g. "(super this)").
	savedClass, savedRet, savedLoop := c.currentClass, c.expectedRet, c.loopDepth
	c.currentClass, c.expectedRet, c.loopDepth = cd.Name, types.Primitive(types.Void), 0
	defer func() { c.currentClass, c.expectedRet, c.loopDepth = savedClass, savedRet, savedLoop }()

	if cd.Ctor.Super != nil {
		if !cd.HasSuper {
			return semErr(cd.Ctor.Super, "super call in a class with no superclass")
		}
		sig := c.methods[methodKey{cd.Super, ctorName}]
		if err := c.checkArgs(cd.Ctor.Super, sig, cd.Ctor.Super.Args, scope); err != nil {
			return err
		}
	}

	return c.checkStmtList(cd.Ctor.Body, scope)
}

func (c *Checker) checkMethod(cd *ast.ClassDef, md *ast.MethodDef) error {
	outer, err := c.classScope(cd)
	if err != nil {
		return err
	}
	scope := NewScope(outer)
	for _, p := range md.Params {
		t, err := c.resolveType(p.Type)
		if err != nil {
			return err
		}
		if !scope.Declare(p.Name, t) {
			return semErr(p, "redeclaration of '%s' in this scope", p.Name)
		}
	}

	retType, err := c.resolveType(md.RetType)
	if err != nil {
		return err
	}

	savedClass, savedRet, savedLoop := c.currentClass, c.expectedRet, c.loopDepth
	c.currentClass, c.expectedRet, c.loopDepth = cd.Name, retType, 0
	err = c.checkStmtList(md.Body, scope)
	c.currentClass, c.expectedRet, c.loopDepth = savedClass, savedRet, savedLoop
	return err
}

func (c *Checker) checkStmtList(stmts []ast.Stmt, scope *Scope) error {
	for _, s := range stmts {
		if err := c.checkStmt(s, scope); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkStmt(s ast.Stmt, scope *Scope) error {
	switch v := s.(type) {
	case *ast.VarDec:
		t, err := c.resolveType(v.Type)
		if err != nil {
			return err
		}
		if !scope.Declare(v.Name, t) {
			return semErr(v, "redeclaration of '%s' in this scope", v.Name)
		}
		return nil

	case *ast.Assign:
		target, ok := scope.Lookup(v.Name)
		if !ok {
			return semErr(v, "undefined variable '%s'", v.Name)
		}
		vt, err := c.checkExpr(v.Value, scope)
		if err != nil {
			return err
		}
		if !c.isSubtype(vt, target) {
			return semErr(v, "cannot assign a value of type %s to '%s' of type %s", vt, v.Name, target)
		}
		return nil

	case *ast.If:
		condT, err := c.checkExpr(v.Cond, scope)
		if err != nil {
			return err
		}
		if !condT.Equal(types.Primitive(types.Boolean)) {
			return semErr(v, "if condition must be Boolean, got %s", condT)
		}
		if err := c.checkStmt(v.Then, scope); err != nil {
			return err
		}
		if v.Else != nil {
			return c.checkStmt(v.Else, scope)
		}
		return nil

	case *ast.While:
		condT, err := c.checkExpr(v.Cond, scope)
		if err != nil {
			return err
		}
		if !condT.Equal(types.Primitive(types.Boolean)) {
			return semErr(v, "while condition must be Boolean, got %s", condT)
		}
		c.loopDepth++
		err = c.checkStmtList(v.Body, scope)
		c.loopDepth--
		return err

	case *ast.Break:
		if c.loopDepth <= 0 {
			return semErr(v, "break outside loop")
		}
		return nil

	case *ast.Return:
		if v.Value == nil {
			if !c.expectedRet.Equal(types.Primitive(types.Void)) {
				return semErr(v, "missing return value for non-Void method")
			}
			return nil
		}
		vt, err := c.checkExpr(v.Value, scope)
		if err != nil {
			return err
		}
		if !c.isSubtype(vt, c.expectedRet) {
			return semErr(v, "return value of type %s is not compatible with declared return type %s", vt, c.expectedRet)
		}
		return nil

	case *ast.Call:
		_, err := c.checkExpr(v, scope)
		return err

	case *ast.Println:
		_, err := c.checkExpr(v, scope)
		return err

	default:
		return semErr(s, "unsupported statement")
	}
}

func (c *Checker) checkExpr(e ast.Expr, scope *Scope) (types.Type, error) {
	switch v := e.(type) {
	case *ast.Literal:
		if v.Text == "true" || v.Text == "false" {
			return types.Primitive(types.Boolean), nil
		}
		return types.Primitive(types.Int), nil

	case *ast.Ident:
		t, ok := scope.Lookup(v.Name)
		if !ok {
			return types.Type{}, semErr(v, "undefined variable '%s'", v.Name)
		}
		return t, nil

	case *ast.This:
		if c.currentClass == "" {
			return types.Type{}, semErr(v, "'this' used outside a class body")
		}
		return types.Class(c.currentClass), nil

	case *ast.BinOp:
		return c.checkBinOp(v, scope)

	case *ast.Println:
		vt, err := c.checkExpr(v.Value, scope)
		if err != nil {
			return types.Type{}, err
		}
		if !vt.Equal(types.Primitive(types.Int)) {
			return types.Type{}, semErr(v, "println requires an Int argument, got %s", vt)
		}
		return types.Primitive(types.Void), nil

	case *ast.New:
		return c.checkNew(v, scope)

	case *ast.Call:
		return c.checkCall(v, scope)

	default:
		return types.Type{}, semErr(e, "unsupported expression")
	}
}

func (c *Checker) checkBinOp(v *ast.BinOp, scope *Scope) (types.Type, error) {
	lt, err := c.checkExpr(v.Left, scope)
	if err != nil {
		return types.Type{}, err
	}
	rt, err := c.checkExpr(v.Right, scope)
	if err != nil {
		return types.Type{}, err
	}
	if !lt.Equal(types.Primitive(types.Int)) || !rt.Equal(types.Primitive(types.Int)) {
		return types.Type{}, semErr(v, "operator '%s' requires Int operands", v.Op)
	}
	switch v.Op {
	case "<", "==":
		return types.Primitive(types.Boolean), nil
	default:
		return types.Primitive(types.Int), nil
	}
}

func (c *Checker) checkNew(v *ast.New, scope *Scope) (types.Type, error) {
	if _, ok := c.classes[v.Class]; !ok {
		return types.Type{}, semErr(v, "unknown class '%s'", v.Class)
	}
	sig := c.methods[methodKey{v.Class, ctorName}]
	if err := c.checkArgs(v, sig, v.Args, scope); err != nil {
		return types.Type{}, err
	}
	return types.Class(v.Class), nil
}

func (c *Checker) checkCall(v *ast.Call, scope *Scope) (types.Type, error) {
	recvT, err := c.checkExpr(v.Receiver, scope)
	if err != nil {
		return types.Type{}, err
	}
	if !recvT.IsClass() {
		return types.Type{}, semErr(v, "method call on a non-class value of type %s", recvT)
	}
	sig, _, ok := c.lookupMethod(recvT.Class, v.Method)
	if !ok {
		return types.Type{}, semErr(v, "undefined method '%s' on class %s", v.Method, recvT.Class)
	}
	if err := c.checkArgs(v, sig, v.Args, scope); err != nil {
		return types.Type{}, err
	}
	return sig.ret, nil
}

func (c *Checker) checkArgs(site ast.Node, sig *signature, args []ast.Expr, scope *Scope) error {
	if len(args) != len(sig.params) {
		return semErr(site, "expected %d argument(s) but got %d", len(sig.params), len(args))
	}
	for i, a := range args {
		at, err := c.checkExpr(a, scope)
		if err != nil {
			return err
		}
		if !c.isSubtype(at, sig.params[i]) {
			return semErr(site, "argument %d has type %s, not compatible with expected type %s", i+1, at, sig.params[i])
		}
	}
	return nil
}
