package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/types"
)

// LeadRepo handles all client_leads database operations.
type LeadRepo struct {
	db *sql.DB
}

const leadColumns = `id, client_id, title, budget, company, tags, name, email, phone,
	lead_source, lead_score, interested_products, status, stage, notes, user_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(s rowScanner) (*models.Lead, error) {
	var (
		lead              models.Lead
		clientID, userID  sql.NullInt64
		tagsRaw, products string
	)
	if err := s.Scan(
		&lead.ID, &clientID, &lead.Title, &lead.Budget, &lead.Company, &tagsRaw,
		&lead.Name, &lead.Email, &lead.Phone, &lead.LeadSource, &lead.LeadScore,
		&products, &lead.Status, &lead.Stage, &lead.Notes, &userID,
	); err != nil {
		return nil, err
	}

	if clientID.Valid {
		id := types.ClientID(clientID.Int64)
		lead.ClientID = &id
	}
	if userID.Valid {
		lead.UserID = types.UserID(userID.Int64)
	}

	var err error
	if lead.Tags, err = decodeList(tagsRaw); err != nil {
		return nil, fmt.Errorf("decoding tags of lead %d: %w", lead.ID, err)
	}
	if lead.InterestedProducts, err = decodeList(products); err != nil {
		return nil, fmt.Errorf("decoding products of lead %d: %w", lead.ID, err)
	}
	return &lead, nil
}

// leadArgs returns the values for every mutable column, in leadColumns order minus id.
func leadArgs(l *models.Lead) ([]any, error) {
	tags, err := encodeList(l.Tags)
	if err != nil {
		return nil, fmt.Errorf("encoding tags: %w", err)
	}
	products, err := encodeList(l.InterestedProducts)
	if err != nil {
		return nil, fmt.Errorf("encoding products: %w", err)
	}

	var clientID, userID any
	if l.ClientID != nil {
		clientID = int64(*l.ClientID)
	}
	if l.UserID != 0 {
		userID = int64(l.UserID)
	}

	return []any{
		clientID, l.Title, l.Budget, l.Company, tags, l.Name, l.Email, l.Phone,
		l.LeadSource, l.LeadScore, products, l.Status, l.Stage, l.Notes, userID,
	}, nil
}

// ListLeads returns every lead ordered by id (creation order)
func (r *LeadRepo) ListLeads(ctx context.Context) ([]*models.Lead, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+leadColumns+` FROM client_leads ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying leads: %w", err)
	}
	defer rows.Close()

	leads := []*models.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lead row: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lead rows: %w", err)
	}
	return leads, nil
}

// GetLead retrieves a lead by its ID
func (r *LeadRepo) GetLead(ctx context.Context, id types.LeadID) (*models.Lead, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM client_leads WHERE id = ?`, int64(id))
	lead, err := scanLead(row)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("lead %d", id))
	}
	return lead, nil
}

// InsertLead stores a new lead and returns it with the generated ID
func (r *LeadRepo) InsertLead(ctx context.Context, lead *models.Lead) (*models.Lead, error) {
	args, err := leadArgs(lead)
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO client_leads (client_id, title, budget, company, tags, name, email, phone,
			lead_source, lead_score, interested_products, status, stage, notes, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return nil, fmt.Errorf("inserting lead: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading lead id: %w", err)
	}

	stored := lead.Clone()
	stored.ID = types.LeadID(id)
	return stored, nil
}

// UpdateLead overwrites every mutable field of the lead with the given ID
func (r *LeadRepo) UpdateLead(ctx context.Context, lead *models.Lead) error {
	args, err := leadArgs(lead)
	if err != nil {
		return err
	}
	args = append(args, int64(lead.ID))

	res, err := r.db.ExecContext(ctx, `
		UPDATE client_leads SET client_id = ?, title = ?, budget = ?, company = ?, tags = ?,
			name = ?, email = ?, phone = ?, lead_source = ?, lead_score = ?,
			interested_products = ?, status = ?, stage = ?, notes = ?, user_id = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("updating lead %d: %w", lead.ID, err)
	}
	return expectOneRow(res, fmt.Sprintf("lead %d", lead.ID))
}

// UpdateLeadStage rewrites only the stage of a lead
func (r *LeadRepo) UpdateLeadStage(ctx context.Context, id types.LeadID, stage string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE client_leads SET stage = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		stage, int64(id),
	)
	if err != nil {
		return fmt.Errorf("updating stage of lead %d: %w", id, err)
	}
	return expectOneRow(res, fmt.Sprintf("lead %d", id))
}

// DeleteLead removes a lead
func (r *LeadRepo) DeleteLead(ctx context.Context, id types.LeadID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM client_leads WHERE id = ?`, int64(id))
	if err != nil {
		return fmt.Errorf("deleting lead %d: %w", id, err)
	}
	return expectOneRow(res, fmt.Sprintf("lead %d", id))
}
