// Package printer renders an AST as an indented debugging dump: each
// node prints as its kind name, optionally followed by "(<label>)",
// then its children indented two spaces deeper on subsequent lines.
package printer

import (
	"fmt"
	"io"
	"strings"

	"classcify/internal/ast"
)

// Print writes the pretty-printed form of prog to w.
func Print(w io.Writer, prog *ast.Program) {
	printNode(w, prog, 0)
}

func printNode(w io.Writer, n ast.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if label := n.Label(); label != "" {
		fmt.Fprintf(w, "%s%s(%s)\n", indent, n.Kind(), label)
	} else {
		fmt.Fprintf(w, "%s%s\n", indent, n.Kind())
	}
	for _, child := range children(n) {
		printNode(w, child, depth+1)
	}
}

// children returns the ordered child nodes of n. The switch lists every
// ast type; a type it does not list falls to the default branch and is
// printed with no children.
func children(n ast.Node) []ast.Node {
	switch v := n.(type) {
	case *ast.Program:
		var out []ast.Node
		for _, c := range v.Classes {
			out = append(out, c)
		}
		out = append(out, v.Main)
		return out

	case *ast.ClassDef:
		var out []ast.Node
		for _, f := range v.Fields {
			out = append(out, f)
		}
		out = append(out, v.Ctor)
		for _, m := range v.Methods {
			out = append(out, m)
		}
		return out

	case *ast.Constructor:
		var out []ast.Node
		for _, p := range v.Params {
			out = append(out, p)
		}
		if v.Super != nil {
			out = append(out, v.Super)
		}
		for _, s := range v.Body {
			out = append(out, s)
		}
		return out

	case *ast.SuperCall:
		return exprsToNodes(v.Args)

	case *ast.MethodDef:
		var out []ast.Node
		for _, p := range v.Params {
			out = append(out, p)
		}
		out = append(out, v.RetType)
		for _, s := range v.Body {
			out = append(out, s)
		}
		return out

	case *ast.VarDec:
		return []ast.Node{v.Type}

	case *ast.StmtList:
		var out []ast.Node
		for _, s := range v.Stmts {
			out = append(out, s)
		}
		return out

	case *ast.Assign:
		return []ast.Node{v.Value}

	case *ast.If:
		out := []ast.Node{v.Cond, v.Then}
		if v.Else != nil {
			out = append(out, v.Else)
		}
		return out

	case *ast.While:
		out := []ast.Node{v.Cond}
		for _, s := range v.Body {
			out = append(out, s)
		}
		return out

	case *ast.Return:
		if v.Value == nil {
			return nil
		}
		return []ast.Node{v.Value}

	case *ast.Call:
		out := []ast.Node{v.Receiver}
		return append(out, exprsToNodes(v.Args)...)

	case *ast.Println:
		return []ast.Node{v.Value}

	case *ast.New:
		return exprsToNodes(v.Args)

	case *ast.BinOp:
		return []ast.Node{v.Left, v.Right}

	case *ast.Break, *ast.Literal, *ast.Ident, *ast.This, *ast.TypeRef:
		return nil

	default:
		return nil
	}
}

func exprsToNodes(exprs []ast.Expr) []ast.Node {
	out := make([]ast.Node, len(exprs))
	for i, e := range exprs {
		out[i] = e
	}
	return out
}
