package postgresengine

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed schema.sql
var schemaTemplate string

var ErrMigrationFailed = errors.New("creating the events table failed")

// Migrate creates the events table and its indexes if they do not exist yet.
func (es *EventStore) Migrate(ctx context.Context) error {
	for _, statement := range es.schemaStatements() {
		if _, err := es.db.Exec(ctx, statement); err != nil {
			es.log(ctx, levelError, logMsgOperationFailed, logAttrOperation, "migrate", logAttrError, err.Error())
			return errors.Join(ErrMigrationFailed, err)
		}
	}

	return nil
}

func (es *EventStore) schemaStatements() []string {
	statements := make([]string, 0, 3)

	for _, statement := range strings.Split(fmt.Sprintf(schemaTemplate, es.eventTableName), ";") {
		if trimmed := strings.TrimSpace(statement); trimmed != "" {
			statements = append(statements, trimmed)
		}
	}

	return statements
}
