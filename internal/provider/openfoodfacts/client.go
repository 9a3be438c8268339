package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shivani123B/fitlog/internal/nutrition"
)

const (
	defaultBaseURL  = "https://world.openfoodfacts.org"
	defaultPageSize = 8
	userAgent       = "fitlog/1.0 (+https://github.com/shivani123B/fitlog)"
	kJPerKcal       = 4.184
)

// Product holds per-100g values for one packaged product.
type Product struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	PageSize   int
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("page_size", strconv.Itoa(pageSize))
	params.Set("fields", "product_name,brands,nutriments,code")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/cgi/search.pl?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create openfoodfacts search request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute openfoodfacts search request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openfoodfacts search response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openfoodfacts search request failed with status %d", resp.StatusCode)
	}
	var parsed offSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode openfoodfacts search response: %w", err)
	}

	out := make([]Product, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		name := strings.TrimSpace(p.ProductName)
		if name == "" {
			continue
		}
		code := strings.TrimSpace(p.Code)
		if code == "" {
			code = "off-" + uuid.NewString()[:8]
		}
		out = append(out, Product{
			Code:     code,
			Name:     name,
			Brand:    firstBrand(p.Brands),
			Calories: kcalPer100g(p.Nutriments),
			ProteinG: nutrientValue(p.Nutriments, "proteins"),
			CarbsG:   nutrientValue(p.Nutriments, "carbohydrates"),
			FatG:     nutrientValue(p.Nutriments, "fat"),
			FiberG:   nutrientValue(p.Nutriments, "fiber"),
		})
	}
	return out, nil
}

// kcalPer100g prefers the kcal field and falls back to converting kJ.
func kcalPer100g(n map[string]any) float64 {
	if v, ok := parseFloatAny(n["energy-kcal_100g"]); ok {
		return nutrition.Round1(v)
	}
	if v, ok := parseFloatAny(n["energy_100g"]); ok {
		return nutrition.Round1(v / kJPerKcal)
	}
	return 0
}

func nutrientValue(n map[string]any, base string) float64 {
	v, _ := parseFloatAny(n[base+"_100g"])
	return nutrition.Round1(v)
}

func firstBrand(brands string) string {
	first, _, _ := strings.Cut(brands, ",")
	return strings.TrimSpace(first)
}

func parseFloatAny(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

type offProduct struct {
	Code        string         `json:"code"`
	ProductName string         `json:"product_name"`
	Brands      string         `json:"brands"`
	Nutriments  map[string]any `json:"nutriments"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}
