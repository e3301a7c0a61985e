package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/homehni/homehni-web/internal/model"
)

const createLead = `
INSERT INTO leads (id, name, email, phone, service, message, country, browser, device, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// CreateLeadParams holds the fields for CreateLead.
type CreateLeadParams struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Service string
	Message string
	Country string
	Browser string
	Device  string
}

// CreateLead inserts a captured lead.
func (q *Queries) CreateLead(ctx context.Context, arg CreateLeadParams) (model.Lead, error) {
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx, createLead,
		arg.ID,
		arg.Name,
		arg.Email,
		arg.Phone,
		arg.Service,
		arg.Message,
		arg.Country,
		arg.Browser,
		arg.Device,
		now,
	)
	if err != nil {
		return model.Lead{}, err
	}
	return model.Lead{
		ID:        arg.ID,
		Name:      arg.Name,
		Email:     arg.Email,
		Phone:     arg.Phone,
		Service:   arg.Service,
		Message:   arg.Message,
		Country:   arg.Country,
		Browser:   arg.Browser,
		Device:    arg.Device,
		CreatedAt: now,
	}, nil
}

const listLeads = `
SELECT id, name, email, phone, service, message, country, browser, device, created_at
FROM leads ORDER BY created_at DESC LIMIT ? OFFSET ?
`

// ListLeadsParams holds pagination for ListLeads.
type ListLeadsParams struct {
	Limit  int64
	Offset int64
}

// ListLeads returns leads newest first.
func (q *Queries) ListLeads(ctx context.Context, arg ListLeadsParams) ([]model.Lead, error) {
	rows, err := q.db.QueryContext(ctx, listLeads, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeads(rows)
}

const listLeadsSince = `
SELECT id, name, email, phone, service, message, country, browser, device, created_at
FROM leads WHERE created_at >= ? ORDER BY created_at DESC
`

// ListLeadsSince returns leads captured at or after the cutoff, newest first.
func (q *Queries) ListLeadsSince(ctx context.Context, since time.Time) ([]model.Lead, error) {
	rows, err := q.db.QueryContext(ctx, listLeadsSince, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeads(rows)
}

const countLeads = `SELECT COUNT(*) FROM leads`

// CountLeads returns the total number of captured leads.
func (q *Queries) CountLeads(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countLeads).Scan(&count)
	return count, err
}

func scanLeads(rows *sql.Rows) ([]model.Lead, error) {
	var leads []model.Lead
	for rows.Next() {
		var lead model.Lead
		err := rows.Scan(
			&lead.ID,
			&lead.Name,
			&lead.Email,
			&lead.Phone,
			&lead.Service,
			&lead.Message,
			&lead.Country,
			&lead.Browser,
			&lead.Device,
			&lead.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}
