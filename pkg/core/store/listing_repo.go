package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mortgage_scenario/pkg/core/listing"
)

// ListingRepo stores scraped listings keyed by their source URL, so repeated
// scrapes of the same city refresh rather than duplicate.
//
// Schema assumption:
//
//	CREATE TABLE IF NOT EXISTS listings (
//	  url TEXT PRIMARY KEY,
//	  city TEXT NOT NULL,
//	  listing_json JSONB NOT NULL,
//	  scraped_at TIMESTAMPTZ NOT NULL
//	);
type ListingRepo struct{}

// NewListingRepo creates a repository instance.
func NewListingRepo() *ListingRepo {
	return &ListingRepo{}
}

// SaveAll upserts a batch of listings. Listings without a URL are skipped.
func (r *ListingRepo) SaveAll(ctx context.Context, listings []listing.Listing) (int, error) {
	pool := GetPool()
	if pool == nil {
		return 0, fmt.Errorf("database pool not initialized")
	}

	query := `
		INSERT INTO listings (url, city, listing_json, scraped_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (url)
		DO UPDATE SET
			city = EXCLUDED.city,
			listing_json = EXCLUDED.listing_json,
			scraped_at = EXCLUDED.scraped_at;
	`

	saved := 0
	for _, l := range listings {
		if l.URL == "" {
			continue
		}
		jsonData, err := json.Marshal(l)
		if err != nil {
			return saved, fmt.Errorf("failed to marshal listing %s: %w", l.URL, err)
		}
		scrapedAt := l.ScrapedAt
		if scrapedAt.IsZero() {
			scrapedAt = time.Now()
		}
		if _, err := pool.Exec(ctx, query, l.URL, l.City, jsonData, scrapedAt); err != nil {
			return saved, fmt.Errorf("failed to save listing %s: %w", l.URL, err)
		}
		saved++
	}
	return saved, nil
}

// ByCity returns stored listings for a city, newest first.
func (r *ListingRepo) ByCity(ctx context.Context, city string, limit int) ([]listing.Listing, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	if limit <= 0 {
		limit = 100
	}

	query := `SELECT listing_json FROM listings WHERE city = $1 ORDER BY scraped_at DESC LIMIT $2`

	rows, err := pool.Query(ctx, query, city, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var out []listing.Listing
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}
		var l listing.Listing
		if err := json.Unmarshal(jsonData, &l); err != nil {
			return nil, fmt.Errorf("failed to unmarshal listing: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
