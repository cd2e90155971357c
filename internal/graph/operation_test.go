package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationKind(t *testing.T) {
	const document = `
		query Missions { allMissions { missionId } }
		mutation Delete { deleteMission(missionId: 1) { success } }
	`
	tests := []struct {
		name          string
		query         string
		operationName string
		kind          string
	}{
		{name: "anonymous query", query: `{ allMissions { missionId } }`, kind: KindQuery},
		{name: "single named mutation", query: `mutation M { deleteMission(missionId: 1) { success } }`, kind: KindMutation},
		{name: "selected query", query: document, operationName: "Missions", kind: KindQuery},
		{name: "selected mutation", query: document, operationName: "Delete", kind: KindMutation},
		{name: "subscription", query: `subscription { allMissions { missionId } }`, kind: KindSubscription},
		{name: "name missing from document", query: document, operationName: "Other", kind: KindInvalid},
		{name: "several operations without a name", query: document, kind: KindInvalid},
		{name: "syntax error", query: `{ allMissions { `, kind: KindInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, OperationKind(tt.query, tt.operationName))
		})
	}
}
