package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mortgage_scenario/pkg/core/scenario"
)

// SavedScenario is one persisted calculation with its identity and label.
type SavedScenario struct {
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	Result    scenario.Result `json:"result"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ScenarioRepo stores computed scenarios as JSONB blobs.
//
// Schema assumption (managed by migrations, not by this package):
//
//	CREATE TABLE IF NOT EXISTS scenarios (
//	  id UUID PRIMARY KEY,
//	  label TEXT NOT NULL,
//	  result_json JSONB NOT NULL,
//	  updated_at TIMESTAMPTZ NOT NULL
//	);
type ScenarioRepo struct{}

// NewScenarioRepo creates a repository instance.
func NewScenarioRepo() *ScenarioRepo {
	return &ScenarioRepo{}
}

// Save upserts a scenario result under the given id. An empty id gets a
// fresh UUID. Returns the id actually used.
func (r *ScenarioRepo) Save(ctx context.Context, id, label string, result scenario.Result) (string, error) {
	pool := GetPool()
	if pool == nil {
		return "", fmt.Errorf("database pool not initialized")
	}

	if id == "" {
		id = uuid.NewString()
	} else if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("invalid scenario id %q: %w", id, err)
	}

	jsonData, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal scenario result: %w", err)
	}

	query := `
		INSERT INTO scenarios (id, label, result_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			label = EXCLUDED.label,
			result_json = EXCLUDED.result_json,
			updated_at = EXCLUDED.updated_at;
	`

	if _, err := pool.Exec(ctx, query, id, label, jsonData, time.Now()); err != nil {
		return "", fmt.Errorf("failed to save scenario: %w", err)
	}

	return id, nil
}

// Load retrieves a persisted scenario by id.
func (r *ScenarioRepo) Load(ctx context.Context, id string) (*SavedScenario, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT label, result_json, updated_at FROM scenarios WHERE id = $1`

	var (
		label     string
		jsonData  []byte
		updatedAt time.Time
	)
	err := pool.QueryRow(ctx, query, id).Scan(&label, &jsonData, &updatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no scenario found with id %s", id)
		}
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}

	var result scenario.Result
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario result: %w", err)
	}

	return &SavedScenario{ID: id, Label: label, Result: result, UpdatedAt: updatedAt}, nil
}

// List returns all saved scenarios, newest first.
func (r *ScenarioRepo) List(ctx context.Context) ([]SavedScenario, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT id, label, result_json, updated_at FROM scenarios ORDER BY updated_at DESC`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var out []SavedScenario
	for rows.Next() {
		var (
			s        SavedScenario
			jsonData []byte
		)
		if err := rows.Scan(&s.ID, &s.Label, &jsonData, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scenario row: %w", err)
		}
		if err := json.Unmarshal(jsonData, &s.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scenario %s: %w", s.ID, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes a persisted scenario. Missing ids are not an error.
func (r *ScenarioRepo) Delete(ctx context.Context, id string) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	if _, err := pool.Exec(ctx, `DELETE FROM scenarios WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	return nil
}
