package cadastre

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"urbania/models"
	"urbania/utils"

	"go.uber.org/zap"
)

// Official French open-data endpoints.
const (
	etalabBase   = "https://cadastre.data.gouv.fr/data/etalab-cadastre/latest/geojson/communes"
	apicartoBase = "https://apicarto.ign.fr/api/cadastre"
	adresseBase  = "https://api-adresse.data.gouv.fr"
)

const userAgent = "Urbania-DP-Platform/1.0"

// Client talks to the cadastre and address services. Absence of data is
// always distinguished from failure: a commune with no published data yields
// an empty collection, an unmatched parcel yields (nil, nil), and only
// transport or upstream errors are returned as errors.
type Client struct {
	httpClient *http.Client

	etalabURL   string
	apicartoURL string
	adresseURL  string
}

// NewClient builds a Client against the official endpoints.
func NewClient() *Client {
	return NewClientWithEndpoints(&http.Client{Timeout: 30 * time.Second},
		etalabBase, apicartoBase, adresseBase)
}

// NewClientWithEndpoints builds a Client against explicit endpoints.
func NewClientWithEndpoints(httpClient *http.Client, etalab, apicarto, adresse string) *Client {
	return &Client{
		httpClient:  httpClient,
		etalabURL:   etalab,
		apicartoURL: apicarto,
		adresseURL:  adresse,
	}
}

// padInsee normalizes an INSEE code to its 5-character form.
func padInsee(code string) string {
	for len(code) < 5 {
		code = "0" + code
	}
	return code
}

// padNumero normalizes a parcel number to its 4-character form.
func padNumero(numero string) string {
	for len(numero) < 4 {
		numero = "0" + numero
	}
	return numero
}

// getJSON performs one GET and decodes the body into out. When allow404 is
// set, an upstream 404 returns (false, nil) instead of an error.
func (c *Client) getJSON(ctx context.Context, rawURL string, allow404 bool, out interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("request to %s failed: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if allow404 && resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("failed to decode response from %s: %w", rawURL, err)
	}
	return true, nil
}

// ParcellesCommune fetches every parcel of a commune from the Etalab dumps.
func (c *Client) ParcellesCommune(ctx context.Context, codeInsee string) (*models.FeatureCollection, error) {
	return c.communeDump(ctx, codeInsee, "parcelles")
}

// BatimentsCommune fetches every building of a commune from the Etalab dumps.
func (c *Client) BatimentsCommune(ctx context.Context, codeInsee string) (*models.FeatureCollection, error) {
	return c.communeDump(ctx, codeInsee, "batiments")
}

func (c *Client) communeDump(ctx context.Context, codeInsee, layer string) (*models.FeatureCollection, error) {
	codeInsee = padInsee(codeInsee)
	url := fmt.Sprintf("%s/%s/cadastre-%s-%s.json", c.etalabURL, codeInsee, codeInsee, layer)

	utils.GetLogger().Info("Fetching commune layer",
		zap.String("codeInsee", codeInsee), zap.String("layer", layer))

	var fc models.FeatureCollection
	found, err := c.getJSON(ctx, url, true, &fc)
	if err != nil {
		return nil, err
	}
	if !found {
		// No published data for this commune is not an error.
		utils.GetLogger().Warn("Commune not found in cadastre", zap.String("codeInsee", codeInsee))
		return models.EmptyFeatureCollection(), nil
	}
	return &fc, nil
}

// ParcelleByID retrieves one parcel via APICarto. Returns (nil, nil) when no
// parcel matches.
func (c *Client) ParcelleByID(ctx context.Context, codeInsee, section, numero string) (*models.Feature, error) {
	params := url.Values{}
	params.Set("code_insee", padInsee(codeInsee))
	params.Set("section", strings.ToUpper(strings.TrimSpace(section)))
	params.Set("numero", padNumero(numero))

	fc, err := c.apicartoParcelle(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(fc.Features) == 0 {
		return nil, nil
	}
	return &fc.Features[0], nil
}

// SearchParcelles queries APICarto for a commune's parcels, optionally
// scoped to one section.
func (c *Client) SearchParcelles(ctx context.Context, codeInsee, section string) (*models.FeatureCollection, error) {
	params := url.Values{}
	params.Set("code_insee", padInsee(codeInsee))
	if section != "" {
		params.Set("section", strings.ToUpper(strings.TrimSpace(section)))
	}
	return c.apicartoParcelle(ctx, params)
}

// ParcelleByCoordinates finds the parcel containing a GPS point using a
// point-geometry spatial query. Returns (nil, nil) when no parcel matches.
func (c *Client) ParcelleByCoordinates(ctx context.Context, lat, lon float64) (*models.Feature, error) {
	geom, err := json.Marshal(map[string]interface{}{
		"type":        "Point",
		"coordinates": []float64{lon, lat},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode point geometry: %w", err)
	}

	params := url.Values{}
	params.Set("geom", string(geom))

	fc, err := c.apicartoParcelle(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(fc.Features) == 0 {
		return nil, nil
	}
	return &fc.Features[0], nil
}

func (c *Client) apicartoParcelle(ctx context.Context, params url.Values) (*models.FeatureCollection, error) {
	var fc models.FeatureCollection
	if _, err := c.getJSON(ctx, c.apicartoURL+"/parcelle?"+params.Encode(), false, &fc); err != nil {
		return nil, err
	}
	if fc.Features == nil {
		fc.Features = []models.Feature{}
	}
	return &fc, nil
}

// Sections lists the distinct cadastral section labels of a commune, sorted.
func (c *Client) Sections(ctx context.Context, codeInsee string) ([]string, error) {
	params := url.Values{}
	params.Set("code_insee", padInsee(codeInsee))

	var fc models.FeatureCollection
	if _, err := c.getJSON(ctx, c.apicartoURL+"/division?"+params.Encode(), false, &fc); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, f := range fc.Features {
		if section, ok := f.Properties["section"].(string); ok && section != "" {
			seen[section] = struct{}{}
		}
	}
	sections := make([]string, 0, len(seen))
	for s := range seen {
		sections = append(sections, s)
	}
	sort.Strings(sections)
	return sections, nil
}

// Geocode resolves a free-text address into ranked candidates, each
// carrying its INSEE code, coordinates, and relevance score.
func (c *Client) Geocode(ctx context.Context, address string, limit int) ([]models.GeocodeResult, error) {
	if limit <= 0 {
		limit = 5
	}
	params := url.Values{}
	params.Set("q", address)
	params.Set("limit", fmt.Sprintf("%d", limit))

	var fc struct {
		Features []struct {
			Properties map[string]interface{} `json:"properties"`
			Geometry   struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if _, err := c.getJSON(ctx, c.adresseURL+"/search/?"+params.Encode(), false, &fc); err != nil {
		return nil, err
	}

	results := make([]models.GeocodeResult, 0, len(fc.Features))
	for _, f := range fc.Features {
		r := models.GeocodeResult{
			Label:       propString(f.Properties, "label"),
			City:        propString(f.Properties, "city"),
			CityCode:    propString(f.Properties, "citycode"),
			Postcode:    propString(f.Properties, "postcode"),
			Street:      propString(f.Properties, "street"),
			HouseNumber: propString(f.Properties, "housenumber"),
		}
		if score, ok := f.Properties["score"].(float64); ok {
			r.Score = score
		}
		if len(f.Geometry.Coordinates) > 0 {
			lon := f.Geometry.Coordinates[0]
			r.Longitude = &lon
		}
		if len(f.Geometry.Coordinates) > 1 {
			lat := f.Geometry.Coordinates[1]
			r.Latitude = &lat
		}
		results = append(results, r)
	}
	return results, nil
}

// ReverseGeocode resolves coordinates into the single best address match.
// Returns (nil, nil) when nothing matches.
func (c *Client) ReverseGeocode(ctx context.Context, lon, lat float64) (*models.Address, error) {
	params := url.Values{}
	params.Set("lon", fmt.Sprintf("%g", lon))
	params.Set("lat", fmt.Sprintf("%g", lat))

	var fc struct {
		Features []struct {
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	if _, err := c.getJSON(ctx, c.adresseURL+"/reverse/?"+params.Encode(), false, &fc); err != nil {
		return nil, err
	}
	if len(fc.Features) == 0 {
		return nil, nil
	}

	props := fc.Features[0].Properties
	return &models.Address{
		Label:    propString(props, "label"),
		City:     propString(props, "city"),
		CityCode: propString(props, "citycode"),
		Postcode: propString(props, "postcode"),
	}, nil
}

func propString(props map[string]interface{}, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}
