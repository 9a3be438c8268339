package usda

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

	"github.com/shivani123B/fitlog/internal/nutrition"
)

const (
	defaultBaseURL  = "https://api.nal.usda.gov"
	DemoAPIKey      = "DEMO_KEY"
	defaultPageSize = 8
	wholeFoodTypes  = "Foundation,SR Legacy"
)

// FoodData Central nutrient ids.
const (
	nutrientEnergyKcal = 1008
	nutrientProtein    = 1003
	nutrientFat        = 1004
	nutrientCarbs      = 1005
	nutrientFiber      = 1079
)

// Food holds per-100g values for one whole food.
type Food struct {
	FDCID       int64   `json:"fdc_id"`
	Description string  `json:"description"`
	Calories    float64 `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
	FiberG      float64 `json:"fiber_g"`
}

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	PageSize   int
}

// SearchFoods queries the unbranded Foundation and SR Legacy datasets.
func (c *Client) SearchFoods(ctx context.Context, query string) ([]Food, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	apiKey := strings.TrimSpace(c.APIKey)
	if apiKey == "" {
		apiKey = DemoAPIKey
	}
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
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
	params.Set("query", query)
	params.Set("api_key", apiKey)
	params.Set("dataType", wholeFoodTypes)
	params.Set("pageSize", strconv.Itoa(pageSize))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/fdc/v1/foods/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create USDA request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute USDA request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read USDA response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("USDA request failed with status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode USDA response: %w", err)
	}

	out := make([]Food, 0, len(parsed.Foods))
	for _, f := range parsed.Foods {
		food := Food{
			FDCID:       f.FDCID,
			Description: strings.TrimSpace(f.Description),
		}
		if food.Description == "" {
			food.Description = "Unknown food"
		}
		for _, n := range f.FoodNutrients {
			v := nutrition.Round1(n.Value)
			switch n.NutrientID {
			case nutrientEnergyKcal:
				food.Calories = v
			case nutrientProtein:
				food.ProteinG = v
			case nutrientCarbs:
				food.CarbsG = v
			case nutrientFat:
				food.FatG = v
			case nutrientFiber:
				food.FiberG = v
			}
		}
		out = append(out, food)
	}
	return out, nil
}

type searchResponse struct {
	Foods []usdaFood `json:"foods"`
}

type usdaFood struct {
	FDCID         int64          `json:"fdcId"`
	Description   string         `json:"description"`
	FoodNutrients []usdaNutrient `json:"foodNutrients"`
}

type usdaNutrient struct {
	NutrientID   int     `json:"nutrientId"`
	NutrientName string  `json:"nutrientName"`
	Value        float64 `json:"value"`
}
