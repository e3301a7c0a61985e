package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/homehni/homehni-web/internal/model"
)

const listSectionsByPage = `
SELECT id, page_id, section_type, content, sort_order, is_active, created_at, updated_at
FROM page_sections WHERE page_id = ? ORDER BY sort_order
`

// ListSectionsByPage returns a page's sections ordered by sort_order ascending.
func (q *Queries) ListSectionsByPage(ctx context.Context, pageID int64) ([]model.PageSection, error) {
	rows, err := q.db.QueryContext(ctx, listSectionsByPage, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []model.PageSection
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, rows.Err()
}

const getSectionByID = `
SELECT id, page_id, section_type, content, sort_order, is_active, created_at, updated_at
FROM page_sections WHERE id = ?
`

// GetSectionByID returns one section by its row ID.
func (q *Queries) GetSectionByID(ctx context.Context, id int64) (model.PageSection, error) {
	return scanSection(q.db.QueryRowContext(ctx, getSectionByID, id))
}

const createSection = `
INSERT INTO page_sections (page_id, section_type, content, sort_order, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, page_id, section_type, content, sort_order, is_active, created_at, updated_at
`

// CreateSectionParams holds the fields for CreateSection.
type CreateSectionParams struct {
	PageID      int64
	SectionType string
	Content     model.SectionContent
	SortOrder   int64
	IsActive    bool
}

// CreateSection inserts one section and returns the stored row.
func (q *Queries) CreateSection(ctx context.Context, arg CreateSectionParams) (model.PageSection, error) {
	content, err := marshalContent(arg.Content)
	if err != nil {
		return model.PageSection{}, err
	}
	now := time.Now().UTC()
	row := q.db.QueryRowContext(ctx, createSection,
		arg.PageID,
		arg.SectionType,
		content,
		arg.SortOrder,
		arg.IsActive,
		now,
		now,
	)
	return scanSection(row)
}

const updateSection = `
UPDATE page_sections
SET content = ?, sort_order = ?, is_active = ?, updated_at = ?
WHERE id = ?
`

// UpdateSectionParams holds the fields for UpdateSection.
type UpdateSectionParams struct {
	ID        int64
	Content   model.SectionContent
	SortOrder int64
	IsActive  bool
}

// UpdateSection updates a stored section's content, order and visibility.
func (q *Queries) UpdateSection(ctx context.Context, arg UpdateSectionParams) error {
	content, err := marshalContent(arg.Content)
	if err != nil {
		return err
	}
	result, err := q.db.ExecContext(ctx, updateSection,
		content,
		arg.SortOrder,
		arg.IsActive,
		time.Now().UTC(),
		arg.ID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const deleteSection = `DELETE FROM page_sections WHERE id = ?`

// DeleteSection removes a section row.
func (q *Queries) DeleteSection(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteSection, id)
	return err
}

func marshalContent(content model.SectionContent) (string, error) {
	if content == nil {
		content = model.SectionContent{}
	}
	data, err := json.Marshal(content)
	if err != nil {
		return "", fmt.Errorf("marshaling section content: %w", err)
	}
	return string(data), nil
}

func scanSection(row rowScanner) (model.PageSection, error) {
	var (
		section model.PageSection
		id      int64
		content string
	)
	err := row.Scan(
		&id,
		&section.PageID,
		&section.Type,
		&content,
		&section.SortOrder,
		&section.IsActive,
		&section.CreatedAt,
		&section.UpdatedAt,
	)
	if err != nil {
		return model.PageSection{}, err
	}
	section.ID = model.PersistedID(id)
	if err := json.Unmarshal([]byte(content), &section.Content); err != nil {
		return model.PageSection{}, fmt.Errorf("unmarshaling content for section %d: %w", id, err)
	}
	return section, nil
}
