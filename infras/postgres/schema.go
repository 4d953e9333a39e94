package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

// Provision creates the tables the service needs if they do not exist yet.
func (c *Connection) Provision(ctx context.Context) error {
	db, err := c.Reader()
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return Classify(fmt.Errorf("failed to provision schema: %w", err))
	}

	return nil
}
