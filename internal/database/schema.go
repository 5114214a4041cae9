package database

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"trivia-api/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the categories and questions tables when they do not
// exist yet. Statements are idempotent and executed one at a time.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range splitStatements(schemaSQL) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not execute schema statement: %w", err)
		}
		logger.Get().Debug("Executed schema statement", zap.String("statement", firstLine(stmt)))
	}
	logger.Get().Info("Schema is up to date")
	return nil
}

func splitStatements(script string) []string {
	var statements []string
	for _, stmt := range strings.Split(script, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
