// Package listing exposes the yad2 scraper over HTTP.
package listing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"mortgage_scenario/pkg/core/listing"
	"mortgage_scenario/pkg/core/store"
)

// ScrapeRequest names a city and how many result pages to pull.
type ScrapeRequest struct {
	City  string `json:"city"`
	Pages int    `json:"pages"`
}

// ScrapeResponse reports what the scrape produced.
type ScrapeResponse struct {
	City     string            `json:"city"`
	Fetched  int               `json:"fetched"`
	Saved    int               `json:"saved"`
	Listings []listing.Listing `json:"listings"`
}

// Handler holds the scraper endpoints' dependencies. Repo may be nil when
// persistence is not configured; scraped listings are then only returned.
type Handler struct {
	Client *listing.Client
	Repo   *store.ListingRepo
}

// NewHandler creates a listing handler.
func NewHandler(client *listing.Client, repo *store.ListingRepo) *Handler {
	if client == nil {
		client = listing.NewClient(listing.DefaultClientConfig())
	}
	return &Handler{Client: client, Repo: repo}
}

func writeCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleScrape fetches fresh listings for a city and persists them.
func (h *Handler) HandleScrape(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Pages <= 0 {
		req.Pages = 1
	}

	if _, ok := listing.CityIDs[req.City]; !ok {
		http.Error(w, fmt.Sprintf("unknown city: %s", req.City), http.StatusBadRequest)
		return
	}

	fmt.Printf("[LISTING] Scraping %d page(s) for %s\n", req.Pages, req.City)
	listings, err := h.Client.FetchPages(r.Context(), req.City, req.Pages)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	saved := 0
	if h.Repo != nil {
		n, err := h.Repo.SaveAll(r.Context(), listings)
		if err != nil {
			fmt.Printf("[WARNING] Failed to persist listings: %v\n", err)
		}
		saved = n
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ScrapeResponse{
		City:     req.City,
		Fetched:  len(listings),
		Saved:    saved,
		Listings: listings,
	})
}

// HandleListings serves stored listings for ?city=, newest first.
func (h *Handler) HandleListings(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if h.Repo == nil {
		http.Error(w, "persistence not configured", http.StatusServiceUnavailable)
		return
	}

	city := r.URL.Query().Get("city")
	if city == "" {
		http.Error(w, "city query parameter required", http.StatusBadRequest)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	listings, err := h.Repo.ByCity(r.Context(), city, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listings)
}
