package postgres

import (
	"context"
	"fmt"
	"time"

	"cpi-resender/internal/core/domain"
)

const upsertResentMessage = `INSERT INTO resent_messages (company_code, message_guid, iflow_name, status, resent_at, resent_by)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (company_code, message_guid) DO UPDATE SET
		iflow_name = EXCLUDED.iflow_name,
		status = EXCLUDED.status,
		resent_at = EXCLUDED.resent_at,
		resent_by = EXCLUDED.resent_by`

// AuditRepo implements ports.AuditRepository on the shared resent_messages
// table. One row per (company_code, message_guid); a later resend updates it.
type AuditRepo struct {
	pool Pool
}

func NewAuditRepo(pool Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Upsert(ctx context.Context, rec domain.AuditRecord) error {
	resentAt := rec.ResentAt
	if resentAt.IsZero() {
		resentAt = time.Now()
	}
	_, err := r.pool.Exec(ctx, upsertResentMessage,
		rec.CompanyCode, rec.MessageGUID, rec.IFlowName, rec.Status, resentAt.UTC(), rec.ResentBy,
	)
	if err != nil {
		return fmt.Errorf("upsert resent message %s: %w", rec.MessageGUID, err)
	}
	return nil
}
