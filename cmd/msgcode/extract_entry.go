package main

import (
	"go/ast"
	"go/token"
	"strconv"

	"github.com/loopcontext/msgcode"
)

// isEntryType reports whether typ is msgcode.Entry or *msgcode.Entry.
func (e *codeExtractor) isEntryType(typ ast.Expr) bool {
	var sel *ast.SelectorExpr
	switch t := typ.(type) {
	case *ast.SelectorExpr:
		sel = t
	case *ast.StarExpr:
		sel, _ = t.X.(*ast.SelectorExpr)
	}
	if sel == nil {
		return false
	}
	id, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	return id.Name == e.pkgName && sel.Sel.Name == "Entry"
}

func (e *codeExtractor) visitCompositeLit(cl *ast.CompositeLit) {
	switch t := cl.Type.(type) {
	case *ast.SelectorExpr:
		e.addEntryLit(cl)
	case *ast.ArrayType:
		if !e.isEntryType(t.Elt) {
			return
		}
		for _, elt := range cl.Elts {
			if inner, ok := elt.(*ast.CompositeLit); ok && inner.Type == nil {
				e.addEntryFields(inner)
			}
		}
	case *ast.MapType:
		if !e.isEntryType(t.Value) {
			return
		}
		for _, elt := range cl.Elts {
			kve, ok := elt.(*ast.KeyValueExpr)
			if !ok {
				continue
			}
			if inner, ok := kve.Value.(*ast.CompositeLit); ok && inner.Type == nil {
				e.addEntryFields(inner)
			}
		}
	}
}

func (e *codeExtractor) addEntryLit(cl *ast.CompositeLit) {
	if e.isEntryType(cl.Type) {
		e.addEntryFields(cl)
	}
}

// addEntryFields records an Entry literal whose fields are all string
// literals, keyed or positional.
func (e *codeExtractor) addEntryFields(cl *ast.CompositeLit) {
	var entry msgcode.Entry
	for i, elt := range cl.Elts {
		name := ""
		value := elt
		if kve, ok := elt.(*ast.KeyValueExpr); ok {
			ident, ok := kve.Key.(*ast.Ident)
			if !ok {
				continue
			}
			name = ident.Name
			value = kve.Value
		} else {
			switch i {
			case 0:
				name = "DefinitionCode"
			case 1:
				name = "Template"
			}
		}

		s, ok := stringLit(value)
		if !ok {
			continue
		}
		switch name {
		case "DefinitionCode":
			entry.DefinitionCode = s
		case "Template":
			entry.Template = s
		}
	}

	if !msgcode.IsValidDefinitionCode(entry.DefinitionCode) {
		return
	}
	e.entries[entry.DefinitionCode] = entry
	if code, err := msgcode.BareCodeOf(entry.DefinitionCode); err == nil {
		e.codes[code] = struct{}{}
	}
}

func stringLit(expr ast.Expr) (string, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	s, err := strconv.Unquote(lit.Value)
	return s, err == nil
}
