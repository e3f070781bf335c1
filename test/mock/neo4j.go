// test/mock/neo4j.go
package mock

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/mock"
)

// MockQuerier is a mock implementation of db.Querier
type MockQuerier struct {
	mock.Mock
}

func (m *MockQuerier) ExecuteQuery(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	args := m.Called(ctx, query, params)
	if records := args.Get(0); records != nil {
		return records.([]*neo4j.Record), args.Error(1)
	}
	return nil, args.Error(1)
}

// Record builds a single-row result from alternating keys and values.
func Record(keysAndValues ...any) *neo4j.Record {
	record := &neo4j.Record{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		record.Keys = append(record.Keys, keysAndValues[i].(string))
		record.Values = append(record.Values, keysAndValues[i+1])
	}
	return record
}
