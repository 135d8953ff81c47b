package omnivox

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/robertkrimen/otto/ast"
	"github.com/robertkrimen/otto/parser"
)

// the portal navigates with <body onload="window.location.replace('...')">
// instead of responding with a 3xx, this turns that back into a url.
func resolveScriptRedirect(sel *goquery.Selection) (string, error) {
	script, ok := sel.First().Attr("onload")
	if !ok {
		return "", fmt.Errorf("%w: no onload trigger", ErrMalformedRedirect)
	}
	return scriptRedirectTarget(script)
}

// scriptRedirectTarget expects script to be a single statement calling something
// with a string literal as its first argument, and returns that literal.
func scriptRedirectTarget(script string) (string, error) {
	program, err := parser.ParseFile(nil, "", script, 0)
	if err != nil {
		return "", fmt.Errorf("%w: parse %q: %w", ErrMalformedRedirect, script, err)
	}
	if len(program.Body) == 0 {
		return "", fmt.Errorf("%w: empty script", ErrMalformedRedirect)
	}
	if len(program.Body) > 1 {
		return "", fmt.Errorf("%w: %q has more than one statement", ErrMalformedRedirect, script)
	}

	stmt, ok := program.Body[0].(*ast.ExpressionStatement)
	if !ok {
		return "", fmt.Errorf("%w: %q is not an expression statement", ErrMalformedRedirect, script)
	}
	call, ok := stmt.Expression.(*ast.CallExpression)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a call", ErrMalformedRedirect, script)
	}
	if len(call.ArgumentList) == 0 {
		return "", fmt.Errorf("%w: %q has no arguments", ErrMalformedRedirect, script)
	}
	literal, ok := call.ArgumentList[0].(*ast.StringLiteral)
	if !ok {
		return "", fmt.Errorf("%w: first argument of %q is not a string literal", ErrMalformedRedirect, script)
	}

	return literal.Value, nil
}
