package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shivani123B/fitlog/internal/autocomplete"
	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/provider/openfoodfacts"
	"github.com/shivani123B/fitlog/internal/provider/usda"
	"go.uber.org/zap"
)

const defaultProviderSearchTTL = 7 * 24 * time.Hour

type SearchOptions struct {
	USDAAPIKey  string
	USDABaseURL string
	OFFBaseURL  string
	HTTPClient  *http.Client
	TTL         time.Duration
	Logger      *zap.Logger
}

// NewSearchFetchers returns one fetcher per item mode, each backed by the
// persistent provider search cache.
func NewSearchFetchers(db *sql.DB, opts SearchOptions) map[string]autocomplete.Fetcher {
	usdaClient := &usda.Client{APIKey: opts.USDAAPIKey, BaseURL: opts.USDABaseURL, HTTPClient: opts.HTTPClient}
	offClient := &openfoodfacts.Client{BaseURL: opts.OFFBaseURL, HTTPClient: opts.HTTPClient}
	return map[string]autocomplete.Fetcher{
		string(model.ItemModeGeneric): &CachedFetcher{
			DB: db, Mode: string(model.ItemModeGeneric), Source: USDAFetcher(usdaClient), TTL: opts.TTL, Logger: opts.Logger,
		},
		string(model.ItemModeOFF): &CachedFetcher{
			DB: db, Mode: string(model.ItemModeOFF), Source: OpenFoodFactsFetcher(offClient), TTL: opts.TTL, Logger: opts.Logger,
		},
	}
}

func USDAFetcher(c *usda.Client) autocomplete.Fetcher {
	return autocomplete.FetcherFunc(func(ctx context.Context, query string) ([]model.FoodCandidate, error) {
		foods, err := c.SearchFoods(ctx, query)
		if err != nil {
			return nil, err
		}
		out := make([]model.FoodCandidate, 0, len(foods))
		for _, f := range foods {
			out = append(out, model.FoodCandidate{
				ExternalID: strconv.FormatInt(f.FDCID, 10),
				Name:       f.Description,
				Per100g: model.MacroQuantity{
					Calories: f.Calories,
					ProteinG: f.ProteinG,
					CarbsG:   f.CarbsG,
					FatG:     f.FatG,
					FiberG:   f.FiberG,
				},
			})
		}
		return out, nil
	})
}

func OpenFoodFactsFetcher(c *openfoodfacts.Client) autocomplete.Fetcher {
	return autocomplete.FetcherFunc(func(ctx context.Context, query string) ([]model.FoodCandidate, error) {
		products, err := c.SearchProducts(ctx, query)
		if err != nil {
			return nil, err
		}
		out := make([]model.FoodCandidate, 0, len(products))
		for _, p := range products {
			out = append(out, model.FoodCandidate{
				ExternalID: p.Code,
				Name:       p.Name,
				Brand:      p.Brand,
				Per100g: model.MacroQuantity{
					Calories: p.Calories,
					ProteinG: p.ProteinG,
					CarbsG:   p.CarbsG,
					FatG:     p.FatG,
					FiberG:   p.FiberG,
				},
			})
		}
		return out, nil
	})
}

// CachedFetcher answers from provider_search_cache while an entry is fresh
// and stores successful provider responses. Failures are never cached.
type CachedFetcher struct {
	DB     *sql.DB
	Mode   string
	Source autocomplete.Fetcher
	TTL    time.Duration
	Logger *zap.Logger
	Now    func() time.Time
}

func (f *CachedFetcher) Search(ctx context.Context, query string) ([]model.FoodCandidate, error) {
	logger := f.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := time.Now()
	if f.Now != nil {
		now = f.Now()
	}
	ttl := f.TTL
	if ttl <= 0 {
		ttl = defaultProviderSearchTTL
	}

	cached, found, err := lookupProviderSearchCache(f.DB, f.Mode, query, now)
	if err != nil {
		logger.Warn("provider search cache unreadable", zap.String("mode", f.Mode), zap.Error(err))
	} else if found {
		logger.Debug("provider search cache hit", zap.String("mode", f.Mode), zap.String("query", query))
		return cached, nil
	}

	results, err := f.Source.Search(ctx, query)
	if err != nil {
		logger.Debug("provider search failed", zap.String("mode", f.Mode), zap.String("query", query), zap.Error(err))
		return nil, err
	}
	if err := upsertProviderSearchCache(f.DB, f.Mode, query, results, now, now.Add(ttl)); err != nil {
		logger.Warn("provider search cache write failed", zap.String("mode", f.Mode), zap.Error(err))
	}
	return results, nil
}

func lookupProviderSearchCache(db *sql.DB, mode, query string, now time.Time) ([]model.FoodCandidate, bool, error) {
	var raw string
	var expiresAtRaw string
	err := db.QueryRow(`
SELECT results_json, expires_at
FROM provider_search_cache
WHERE mode = ? AND query_norm = ?
`, mode, normalizeName(query)).Scan(&raw, &expiresAtRaw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup provider search cache: %w", err)
	}
	expiresAt, err := time.Parse(time.RFC3339, expiresAtRaw)
	if err != nil {
		return nil, false, fmt.Errorf("parse provider search cache expiry: %w", err)
	}
	if now.After(expiresAt) {
		return nil, false, nil
	}
	var items []model.FoodCandidate
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, false, fmt.Errorf("decode provider search cache: %w", err)
	}
	return items, true, nil
}

func upsertProviderSearchCache(db *sql.DB, mode, query string, results []model.FoodCandidate, fetchedAt, expiresAt time.Time) error {
	if results == nil {
		results = []model.FoodCandidate{}
	}
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshal provider search cache payload: %w", err)
	}
	_, err = db.Exec(`
INSERT INTO provider_search_cache(mode, query_norm, results_json, fetched_at, expires_at)
VALUES(?, ?, ?, ?, ?)
ON CONFLICT(mode, query_norm) DO UPDATE SET
  results_json=excluded.results_json,
  fetched_at=excluded.fetched_at,
  expires_at=excluded.expires_at
`, mode, normalizeName(query), string(payload), fetchedAt.UTC().Format(time.RFC3339), expiresAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert provider search cache: %w", err)
	}
	return nil
}

// ClearSearchCache removes cached provider responses. With expiredOnly only
// entries past their expiry are removed.
func ClearSearchCache(db *sql.DB, expiredOnly bool) (int64, error) {
	query := `DELETE FROM provider_search_cache`
	args := []any{}
	if expiredOnly {
		query += ` WHERE expires_at < ?`
		args = append(args, time.Now().UTC().Format(time.RFC3339))
	}
	res, err := db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear provider search cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read rows affected: %w", err)
	}
	return n, nil
}
