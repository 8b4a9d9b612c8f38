package database

import (
	"strings"
	"testing"
)

// The repository upserts with ON CONFLICT (user_id) and
// ON CONFLICT (user_id, movie_id); those targets only work when the schema
// declares matching primary keys, so the DDL is pinned here.
func TestSchemaBacksUpsertConflictTargets(t *testing.T) {
	var preferences, movies string
	for _, stmt := range schemaStatements {
		switch {
		case strings.Contains(stmt, "user_preferences"):
			preferences = stmt
		case strings.Contains(stmt, "user_movies"):
			movies = stmt
		}
	}

	if preferences == "" || movies == "" {
		t.Fatalf("expected DDL for both tables, got %d statements", len(schemaStatements))
	}

	if !strings.Contains(preferences, "user_id            TEXT PRIMARY KEY") {
		t.Errorf("user_preferences must key on user_id:\n%s", preferences)
	}
	if !strings.Contains(movies, "PRIMARY KEY (user_id, movie_id)") {
		t.Errorf("user_movies must key on (user_id, movie_id):\n%s", movies)
	}

	for _, stmt := range schemaStatements {
		if !strings.Contains(stmt, "IF NOT EXISTS") {
			t.Errorf("schema bootstrap must be idempotent:\n%s", stmt)
		}
	}
}
