// db/db.go
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/postcache/config"
	logger "github.com/dev-mohitbeniwal/postcache/logging"
)

var Neo4jDriver neo4j.DriverWithContext

func InitNeo4j() error {
	var err error
	uri := config.GetString("neo4j.uri")
	logger.Info("Connecting to Neo4j at URI", zap.String("uri", uri))
	Neo4jDriver, err = neo4j.NewDriverWithContext(
		uri,
		neo4j.BasicAuth(
			config.GetString("neo4j.username"),
			config.GetString("neo4j.password"),
			"",
		),
		func(c *neo4j.Config) {
			c.MaxConnectionLifetime = 30 * time.Minute
			c.MaxConnectionPoolSize = 50
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Neo4jDriver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("failed to connect to Neo4j: %w", err)
	}

	logger.Info("Successfully connected to Neo4j")
	return nil
}

func CloseNeo4j() {
	if Neo4jDriver != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := Neo4jDriver.Close(ctx); err != nil {
			logger.Error("Error closing Neo4j connection", zap.Error(err))
		} else {
			logger.Info("Neo4j connection closed successfully")
		}
	}
}

// Querier runs a single Cypher statement and returns all of its records.
type Querier interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error)
}

type Neo4jQuerier struct {
	driver   neo4j.DriverWithContext
	database string
}

func NewNeo4jQuerier(driver neo4j.DriverWithContext, database string) *Neo4jQuerier {
	return &Neo4jQuerier{driver: driver, database: database}
}

func (q *Neo4jQuerier) ExecuteQuery(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	var opts []neo4j.ExecuteQueryConfigurationOption
	if q.database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(q.database))
	}

	result, err := neo4j.ExecuteQuery(ctx, q.driver, query, params, neo4j.EagerResultTransformer, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return result.Records, nil
}
