package listing

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// PageParser extracts the key fields of a single listing directly from its
// HTML page. Fallback path for when the JSON API hides a listing or the
// caller only has a URL.
type PageParser struct {
	http *http.Client
}

// NewPageParser returns a page parser with a bounded HTTP timeout.
func NewPageParser() *PageParser {
	return &PageParser{
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

var priceDigits = regexp.MustCompile(`[\d,]{4,}`)

// FetchListingPage downloads a listing page and scrapes price, address and
// headline details from the DOM.
func (p *PageParser) FetchListingPage(ctx context.Context, pageURL string) (Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Listing{}, err
	}
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := p.http.Do(req)
	if err != nil {
		return Listing{}, fmt.Errorf("failed to fetch listing page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Listing{}, fmt.Errorf("listing page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Listing{}, fmt.Errorf("failed to parse listing HTML: %w", err)
	}

	return p.ParseDocument(doc, pageURL), nil
}

// ParseDocument scrapes a parsed listing document. Exposed separately so
// tests can feed static HTML.
func (p *PageParser) ParseDocument(doc *goquery.Document, pageURL string) Listing {
	l := Listing{
		URL:       pageURL,
		ScrapedAt: time.Now(),
	}

	// Price: dedicated testid first, then any element that looks like a
	// shekel amount.
	priceText := strings.TrimSpace(doc.Find(`[data-testid="price"]`).First().Text())
	if priceText == "" {
		doc.Find("span, strong").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			t := s.Text()
			if strings.Contains(t, "₪") {
				priceText = t
				return false
			}
			return true
		})
	}
	if digits := priceDigits.FindString(priceText); digits != "" {
		if v, err := strconv.ParseInt(strings.ReplaceAll(digits, ",", ""), 10, 64); err == nil {
			l.Price = &v
		}
	}

	if addr := strings.TrimSpace(doc.Find(`h1[data-testid="address"], h1`).First().Text()); addr != "" {
		l.Address = addr
	}

	if desc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		l.Description = strings.TrimSpace(desc)
	}

	// Headline details render as "<value> <label>" pairs (rooms, floor, sqm).
	doc.Find(`[data-testid="item-details"] span, .item-details span`).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return
		}

		value, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return
		}
		label := strings.Join(fields[1:], " ")
		switch {
		case strings.Contains(label, "חדרים"):
			l.Rooms = &value
		case strings.Contains(label, "קומה"):
			f := int(value)
			l.Floor = &f
		case strings.Contains(label, "מ\"ר") || strings.Contains(label, "מר"):
			sqm := int(value)
			l.SquareMeters = &sqm
		}
	})

	return l
}
