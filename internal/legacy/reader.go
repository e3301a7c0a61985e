// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package legacy imports marketing pages from the previous PHP site's MySQL
// database. It is a one-shot migration run from the CLI, not a live sync.
package legacy

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

// Reader reads pages from the legacy MySQL database.
type Reader struct {
	db     *sql.DB
	prefix string // Table prefix (e.g., "hni_")
}

// LegacyPage is one row of the old site's pages table.
type LegacyPage struct {
	ID              int64
	Title           string
	Slug            string
	Body            string
	MetaTitle       sql.NullString
	MetaDescription sql.NullString
	MetaKeywords    sql.NullString
	Published       bool
}

// NewReader connects to the legacy database.
func NewReader(dsn, tablePrefix string) (*Reader, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Reader{db: db, prefix: tablePrefix}, nil
}

// Close closes the database connection.
func (r *Reader) Close() error {
	return r.db.Close()
}

// GetPageCount returns how many pages the legacy table holds.
func (r *Reader) GetPageCount() (int, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %spages", r.prefix)
	if err := r.db.QueryRow(query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return count, nil
}

// GetPages retrieves all pages from the legacy database, oldest first so
// import order matches original creation order.
func (r *Reader) GetPages() ([]LegacyPage, error) {
	query := fmt.Sprintf(`
		SELECT id, title, slug, body, meta_title, meta_description, meta_keywords, published
		FROM %spages ORDER BY id ASC`, r.prefix)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer rows.Close()

	var pages []LegacyPage
	for rows.Next() {
		var page LegacyPage
		err := rows.Scan(
			&page.ID,
			&page.Title,
			&page.Slug,
			&page.Body,
			&page.MetaTitle,
			&page.MetaDescription,
			&page.MetaKeywords,
			&page.Published,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, page)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pages: %w", err)
	}

	return pages, nil
}
