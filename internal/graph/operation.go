package graph

import (
	"github.com/dgraph-io/gqlparser/v2/ast"
	"github.com/dgraph-io/gqlparser/v2/parser"
)

// Kinds of operation a request can execute. Requests whose document does not
// parse, or that name an operation the document lacks, are KindInvalid.
const (
	KindQuery        = "query"
	KindMutation     = "mutation"
	KindSubscription = "subscription"
	KindInvalid      = "invalid"
)

// OperationKind reports which kind of operation query runs for operationName.
// An empty name selects the only operation of the document.
func OperationKind(query, operationName string) string {
	doc, gqlErr := parser.ParseQuery(&ast.Source{Input: query})
	if gqlErr != nil {
		return KindInvalid
	}
	op := doc.Operations.ForName(operationName)
	if op == nil {
		return KindInvalid
	}
	switch op.Operation {
	case ast.Query:
		return KindQuery
	case ast.Mutation:
		return KindMutation
	case ast.Subscription:
		return KindSubscription
	}
	return KindInvalid
}
