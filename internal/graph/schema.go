// Package graph exposes the mission archive as a GraphQL schema. Argument
// parsing and validation is done by graphql-go before any resolver runs, so
// resolvers only see well-typed input.
package graph

import (
	_ "embed"

	"github.com/4oBuko/mission-archive/internal/services"
	"github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var schemaString string

const maxQueryDepth = 8

func NewSchema(missionService services.MissionService, geographyService services.GeographyService) (*graphql.Schema, error) {
	resolver := &Resolver{
		missions:  missionService,
		geography: geographyService,
	}
	return graphql.ParseSchema(schemaString, resolver, graphql.MaxDepth(maxQueryDepth))
}

// Request is the body of a GraphQL call over HTTP.
type Request struct {
	Query         string         `json:"query" binding:"required"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}
