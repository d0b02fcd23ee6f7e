// Package expr turns textual scalar expressions into computation graphs.
//
// Expressions use the HCL expression syntax restricted to arithmetic:
//
//	sin(a*b + 2) + sqrt(c/4)
//	-x / (1 + exp(-x))
//
// Supported terms:
//   - number literals, which become constant leaves
//   - identifiers, bound to graph Values when the expression is built
//   - binary + - * / and unary -
//   - parentheses
//   - the one-argument functions sin, cos, sqrt, log and exp
//
// Parse validates the syntax once; Build can then be called any number of
// times, on any graph.
package expr
