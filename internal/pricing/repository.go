package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// rulesRowID is the primary key of the single pricing_rules row.
const rulesRowID = 1

type Repository interface {
	Get(ctx context.Context) (*RuleSet, error)
	Save(ctx context.Context, rules *RuleSet) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Get(ctx context.Context) (*RuleSet, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("rules", "updated_at").
		From("public.pricing_rules").
		Where(squirrel.Eq{"id": rulesRowID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get pricing rules query failed: %w", err)
	}

	var (
		raw       []byte
		updatedAt time.Time
		rules     RuleSet
	)
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&raw, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRulesNotFound
		}
		return nil, fmt.Errorf("get pricing rules failed: %w", err)
	}
	if err := json.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("decode pricing rules failed: %w", err)
	}
	// The column is authoritative over the copy embedded in the document.
	rules.UpdatedAt = updatedAt
	return &rules, nil
}

func (r *pgxRepository) Save(ctx context.Context, rules *RuleSet) error {
	raw, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("encode pricing rules failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.pricing_rules").
		Columns("id", "rules").
		Values(rulesRowID, raw).
		Suffix("ON CONFLICT (id) DO UPDATE SET rules = EXCLUDED.rules, updated_at = now() RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build save pricing rules query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rules.UpdatedAt); err != nil {
		return fmt.Errorf("save pricing rules failed: %w", err)
	}
	return nil
}
