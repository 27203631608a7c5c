// internal/assistant/lead-ledger/store.go
package leadledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"autostream-assistant/internal/common/logger"
	"autostream-assistant/internal/models"
)

var (
	ErrLedgerQueryFailed  = errors.New("LEDGER_QUERY_FAILED")
	ErrLedgerInsertFailed = errors.New("LEDGER_INSERT_FAILED")
	ErrLeadNotFound       = errors.New("LEAD_NOT_FOUND")
)

// Store persists lead records in Postgres, keyed by normalized email.
// Records are never deleted by this system. Assumes a single writer
// process; read-modify-write is not atomic across concurrent writers.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "lead-ledger"}),
	}
}

func (s *Store) Exists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM leads WHERE email = $1
		)`, models.NormalizeEmail(email)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: exists check failed: %v", ErrLedgerQueryFailed, err)
	}
	return exists, nil
}

func (s *Store) Create(ctx context.Context, record *models.LeadRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leads (
			id, name, email, platform, interested_plan,
			created_at, last_contacted_at, reinterest_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		record.ID,
		record.Name,
		models.NormalizeEmail(record.Email),
		record.Platform,
		record.InterestedPlan,
		record.CreatedAt,
		record.LastContactedAt,
		record.ReinterestCount,
	)
	if err != nil {
		return fmt.Errorf("%w: insert failed: %v", ErrLedgerInsertFailed, err)
	}

	s.logger.Info("lead record created", map[string]interface{}{
		"leadId":   record.ID,
		"email":    record.Email,
		"platform": record.Platform,
		"plan":     record.InterestedPlan,
	})

	return nil
}

// Update refreshes the last-contact timestamp and bumps the reinterest
// counter for an existing lead. The interested plan is overwritten only
// when newPlan is non-empty.
func (s *Store) Update(ctx context.Context, email, newPlan string) (*models.LeadRecord, error) {
	var record models.LeadRecord
	err := s.db.QueryRowContext(ctx, `
		UPDATE leads
		SET last_contacted_at = $2,
		    reinterest_count = reinterest_count + 1,
		    interested_plan = COALESCE(NULLIF($3, ''), interested_plan)
		WHERE email = $1
		RETURNING id, name, email, platform, interested_plan,
		          created_at, last_contacted_at, reinterest_count`,
		models.NormalizeEmail(email),
		time.Now().UTC(),
		newPlan,
	).Scan(
		&record.ID,
		&record.Name,
		&record.Email,
		&record.Platform,
		&record.InterestedPlan,
		&record.CreatedAt,
		&record.LastContactedAt,
		&record.ReinterestCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrLeadNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: update failed: %v", ErrLedgerQueryFailed, err)
	}

	s.logger.Info("lead record refreshed", map[string]interface{}{
		"leadId":          record.ID,
		"email":           record.Email,
		"reinterestCount": record.ReinterestCount,
	})

	return &record, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*models.LeadRecord, error) {
	var record models.LeadRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, platform, interested_plan,
		       created_at, last_contacted_at, reinterest_count
		FROM leads WHERE email = $1`,
		models.NormalizeEmail(email),
	).Scan(
		&record.ID,
		&record.Name,
		&record.Email,
		&record.Platform,
		&record.InterestedPlan,
		&record.CreatedAt,
		&record.LastContactedAt,
		&record.ReinterestCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrLeadNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: lookup failed: %v", ErrLedgerQueryFailed, err)
	}
	return &record, nil
}
