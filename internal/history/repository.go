// Package history is an append-only audit log of resolutions. The resolver
// never reads it back.
package history

import (
	"fmt"
	"time"

	"github.com/julienpequegnot/rssgen/internal/database"
	"github.com/julienpequegnot/rssgen/internal/failure"
)

type Entry struct {
	ID          int64     `json:"id"`
	SiteURL     string    `json:"site_url"`
	Category    string    `json:"category"`
	FeedURL     string    `json:"feed_url,omitempty"`
	Title       string    `json:"title,omitempty"`
	FailureKind string    `json:"failure_kind,omitempty"`
	Failure     string    `json:"failure,omitempty"`
	ResolvedAt  time.Time `json:"resolved_at"`
}

// Succeeded reports whether the entry holds a feed URL.
func (e Entry) Succeeded() bool {
	return e.FailureKind == ""
}

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Record stores the outcome of one resolution; err, when set, replaces the
// feed fields.
func (r *Repository) Record(siteURL, category, feedURL, title string, err error) (*Entry, error) {
	e := &Entry{
		SiteURL:  siteURL,
		Category: category,
		FeedURL:  feedURL,
		Title:    title,
	}
	if err != nil {
		e.FeedURL, e.Title = "", ""
		e.FailureKind = failure.KindOf(err).String()
		e.Failure = err.Error()
	}

	result, execErr := r.db.Exec(
		`INSERT INTO resolutions (site_url, category, feed_url, title, failure_kind, failure) VALUES (?, ?, ?, ?, ?, ?)`,
		e.SiteURL, e.Category, e.FeedURL, e.Title, e.FailureKind, e.Failure,
	)
	if execErr != nil {
		return nil, fmt.Errorf("failed to insert resolution: %w", execErr)
	}

	id, idErr := result.LastInsertId()
	if idErr != nil {
		return nil, idErr
	}
	e.ID = id
	return e, nil
}

// List returns the most recent entries first.
func (r *Repository) List(limit int) ([]Entry, error) {
	rows, err := r.db.Query(
		`SELECT id, site_url, category, feed_url, title, failure_kind, failure, resolved_at
		 FROM resolutions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SiteURL, &e.Category, &e.FeedURL, &e.Title, &e.FailureKind, &e.Failure, &e.ResolvedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ForSite returns every entry recorded for siteURL, most recent first.
func (r *Repository) ForSite(siteURL string) ([]Entry, error) {
	rows, err := r.db.Query(
		`SELECT id, site_url, category, feed_url, title, failure_kind, failure, resolved_at
		 FROM resolutions WHERE site_url = ? ORDER BY id DESC`, siteURL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SiteURL, &e.Category, &e.FeedURL, &e.Title, &e.FailureKind, &e.Failure, &e.ResolvedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
