package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/example/carpool/internal/models"
)

// MinQueryLength is the shortest free-text query, in runes, that triggers a
// geocoding call; anything shorter returns no suggestions without touching
// the network.
const MinQueryLength = 3

// NominatimClient performs place searches against a Nominatim server.
type NominatimClient struct {
	BaseURL string
	Client  *http.Client
}

func NewNominatimClient(baseURL string, timeout time.Duration) *NominatimClient {
	return &NominatimClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// nominatimPlace mirrors the wire format: lat/lon arrive as strings.
type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Search maps a free-text query to candidate places.
func (n *NominatimClient) Search(ctx context.Context, query string) ([]models.Place, error) {
	if utf8.RuneCountInString(query) < MinQueryLength {
		return []models.Place{}, nil
	}

	u := fmt.Sprintf("%s/search?format=json&q=%s", n.BaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "carpool-backend")

	resp, err := n.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim status %d", resp.StatusCode)
	}

	var raw []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	places := make([]models.Place, 0, len(raw))
	for _, p := range raw {
		lat, err := strconv.ParseFloat(p.Lat, 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(p.Lon, 64)
		if err != nil {
			continue
		}
		places = append(places, models.Place{
			DisplayName: p.DisplayName,
			Lat:         lat,
			Lon:         lon,
		})
	}
	return places, nil
}
