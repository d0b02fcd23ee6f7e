package expr

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/born-ml/backprop/internal/autodiff/ops"
)

const sourceName = "expression"

type termKind int

const (
	termNumber termKind = iota
	termVariable
	termApply
)

// term is the validated form of one expression node.
type term struct {
	kind   termKind
	number float64  // termNumber
	name   string   // termVariable
	rule   ops.Rule // termApply
	args   []*term  // termApply, len == rule.Arity()
	rng    hcl.Range
}

// Expr is a parsed expression.
type Expr struct {
	source string
	root   *term
	vars   []string
}

var binaryRules = map[*hclsyntax.Operation]ops.Rule{
	hclsyntax.OpAdd:      ops.Add,
	hclsyntax.OpSubtract: ops.Sub,
	hclsyntax.OpMultiply: ops.Mul,
	hclsyntax.OpDivide:   ops.Div,
}

var functionRules = map[string]ops.Rule{
	"sin":  ops.Sin,
	"cos":  ops.Cos,
	"sqrt": ops.Sqrt,
	"log":  ops.Log,
	"exp":  ops.Exp,
}

// Parse parses and validates an expression.
func Parse(source string) (*Expr, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrNoExpression
	}

	syntax, diags := hclsyntax.ParseExpression([]byte(source), sourceName, hcl.InitialPos)
	if diags.HasErrors() {
		rng := hcl.Range{Filename: sourceName, Start: hcl.InitialPos, End: hcl.InitialPos}
		if subject := diags[0].Subject; subject != nil {
			rng = *subject
		}
		return nil, newSyntaxError(rng, ErrInvalidSyntax, "%s", diags[0].Summary)
	}

	root, err := convert(syntax)
	if err != nil {
		return nil, err
	}

	return &Expr{
		source: source,
		root:   root,
		vars:   collectVariables(root),
	}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(source string) *Expr {
	e, err := Parse(source)
	if err != nil {
		panic(fmt.Sprintf("expr: %v", err))
	}
	return e
}

// String returns the source text.
func (e *Expr) String() string {
	return e.source
}

// Variables returns the identifiers used by the expression, sorted.
func (e *Expr) Variables() []string {
	return slices.Clone(e.vars)
}

// convert maps an HCL syntax node onto a term, rejecting non-arithmetic syntax.
func convert(node hclsyntax.Expression) (*term, error) {
	rng := node.Range()

	switch n := node.(type) {
	case *hclsyntax.ParenthesesExpr:
		return convert(n.Expression)

	case *hclsyntax.LiteralValueExpr:
		return convertLiteral(n.Val, rng)

	case *hclsyntax.ScopeTraversalExpr:
		if len(n.Traversal) != 1 {
			return nil, newSyntaxError(rng, ErrUnsupportedSyntax, "attribute and index access are not supported")
		}
		return &term{kind: termVariable, name: n.Traversal.RootName(), rng: rng}, nil

	case *hclsyntax.UnaryOpExpr:
		if n.Op != hclsyntax.OpNegate {
			return nil, newSyntaxError(rng, ErrUnsupportedSyntax, "only unary minus is supported")
		}
		operand, err := convert(n.Val)
		if err != nil {
			return nil, err
		}
		return &term{kind: termApply, rule: ops.Negate, args: []*term{operand}, rng: rng}, nil

	case *hclsyntax.BinaryOpExpr:
		rule, ok := binaryRules[n.Op]
		if !ok {
			return nil, newSyntaxError(rng, ErrUnsupportedSyntax, "only + - * / operators are supported")
		}
		lhs, err := convert(n.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := convert(n.RHS)
		if err != nil {
			return nil, err
		}
		return &term{kind: termApply, rule: rule, args: []*term{lhs, rhs}, rng: rng}, nil

	case *hclsyntax.FunctionCallExpr:
		return convertCall(n, rng)

	default:
		return nil, newSyntaxError(rng, ErrUnsupportedSyntax, "unsupported term %T", node)
	}
}

func convertLiteral(val cty.Value, rng hcl.Range) (*term, error) {
	if val.IsNull() || !val.IsKnown() || val.Type() != cty.Number {
		return nil, newSyntaxError(rng, ErrUnsupportedSyntax, "only number literals are supported, got %s", val.Type().FriendlyName())
	}
	f, _ := val.AsBigFloat().Float64()
	return &term{kind: termNumber, number: f, rng: rng}, nil
}

func convertCall(call *hclsyntax.FunctionCallExpr, rng hcl.Range) (*term, error) {
	rule, ok := functionRules[call.Name]
	if !ok {
		return nil, newSyntaxError(rng, ErrUnknownFunction, "unknown function %q", call.Name)
	}
	if call.ExpandFinal {
		return nil, newSyntaxError(rng, ErrUnsupportedSyntax, "argument expansion is not supported")
	}
	if len(call.Args) != rule.Arity() {
		return nil, newSyntaxError(rng, ErrArgumentCount, "%s takes %d argument, got %d", call.Name, rule.Arity(), len(call.Args))
	}

	arg, err := convert(call.Args[0])
	if err != nil {
		return nil, err
	}
	return &term{kind: termApply, rule: rule, args: []*term{arg}, rng: rng}, nil
}

func collectVariables(root *term) []string {
	seen := make(map[string]bool)
	var walk func(t *term)
	walk = func(t *term) {
		if t.kind == termVariable {
			seen[t.name] = true
		}
		for _, arg := range t.args {
			walk(arg)
		}
	}
	walk(root)

	vars := make([]string, 0, len(seen))
	for name := range seen {
		vars = append(vars, name)
	}
	sort.Strings(vars)
	return vars
}
