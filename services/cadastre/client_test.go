package cadastre

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(srv *httptest.Server) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		etalabURL:   srv.URL,
		apicartoURL: srv.URL,
		adresseURL:  srv.URL,
	}
}

func TestPadInsee(t *testing.T) {
	assert.Equal(t, "01234", padInsee("1234"))
	assert.Equal(t, "75101", padInsee("75101"))
}

func TestPadNumero(t *testing.T) {
	assert.Equal(t, "0042", padNumero("42"))
	assert.Equal(t, "1234", padNumero("1234"))
}

func TestParcellesCommuneFetchesEtalabDump(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/01234/cadastre-01234-parcelles.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"type": "FeatureCollection", "features": [
			{"type": "Feature", "properties": {"id": "012340000A0001"}}
		]}`))
	}))
	defer srv.Close()

	fc, err := testClient(srv).ParcellesCommune(context.Background(), "1234")
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "012340000A0001", fc.Features[0].Properties["id"])
}

func TestCommuneDumpMissingCommuneYieldsEmptyCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	fc, err := testClient(srv).BatimentsCommune(context.Background(), "99999")
	require.NoError(t, err)
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Empty(t, fc.Features)
	assert.NotNil(t, fc.Features)
}

func TestCommuneDumpUpstreamErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv).ParcellesCommune(context.Background(), "75101")
	assert.Error(t, err)
}

func TestParcelleByIDNormalizesIdentifiers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/parcelle", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "01234", q.Get("code_insee"))
		assert.Equal(t, "AB", q.Get("section"))
		assert.Equal(t, "0042", q.Get("numero"))
		w.Write([]byte(`{"type": "FeatureCollection", "features": [
			{"type": "Feature", "properties": {"numero": "0042"}},
			{"type": "Feature", "properties": {"numero": "0043"}}
		]}`))
	}))
	defer srv.Close()

	feature, err := testClient(srv).ParcelleByID(context.Background(), "1234", " ab ", "42")
	require.NoError(t, err)
	require.NotNil(t, feature)
	assert.Equal(t, "0042", feature.Properties["numero"], "first feature wins")
}

func TestParcelleByIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type": "FeatureCollection", "features": []}`))
	}))
	defer srv.Close()

	feature, err := testClient(srv).ParcelleByID(context.Background(), "75101", "AB", "1")
	require.NoError(t, err)
	assert.Nil(t, feature)
}

func TestParcelleByCoordinatesSendsPointGeometry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		geom := r.URL.Query().Get("geom")
		assert.JSONEq(t, `{"type": "Point", "coordinates": [2.3522, 48.8566]}`, geom)
		w.Write([]byte(`{"type": "FeatureCollection", "features": [
			{"type": "Feature", "properties": {"id": "p1"}}
		]}`))
	}))
	defer srv.Close()

	feature, err := testClient(srv).ParcelleByCoordinates(context.Background(), 48.8566, 2.3522)
	require.NoError(t, err)
	require.NotNil(t, feature)
	assert.Equal(t, "p1", feature.Properties["id"])
}

func TestSectionsDeduplicatesAndSorts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/division", r.URL.Path)
		w.Write([]byte(`{"type": "FeatureCollection", "features": [
			{"type": "Feature", "properties": {"section": "ZB"}},
			{"type": "Feature", "properties": {"section": "AB"}},
			{"type": "Feature", "properties": {"section": "ZB"}},
			{"type": "Feature", "properties": {"section": ""}}
		]}`))
	}))
	defer srv.Close()

	sections, err := testClient(srv).Sections(context.Background(), "75101")
	require.NoError(t, err)
	assert.Equal(t, []string{"AB", "ZB"}, sections)
}

func TestGeocodeMapsBANFeatures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "8 bd du port", q.Get("q"))
		assert.Equal(t, "5", q.Get("limit"), "default limit")
		w.Write([]byte(`{"type": "FeatureCollection", "features": [{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [2.290084, 49.897443]},
			"properties": {
				"label": "8 Boulevard du Port 80000 Amiens",
				"score": 0.89,
				"housenumber": "8",
				"street": "Boulevard du Port",
				"postcode": "80000",
				"citycode": "80021",
				"city": "Amiens"
			}
		}]}`))
	}))
	defer srv.Close()

	results, err := testClient(srv).Geocode(context.Background(), "8 bd du port", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "8 Boulevard du Port 80000 Amiens", r.Label)
	assert.Equal(t, "Amiens", r.City)
	assert.Equal(t, "80021", r.CityCode)
	assert.Equal(t, "80000", r.Postcode)
	assert.Equal(t, "Boulevard du Port", r.Street)
	assert.Equal(t, "8", r.HouseNumber)
	assert.Equal(t, 0.89, r.Score)
	require.NotNil(t, r.Longitude)
	require.NotNil(t, r.Latitude)
	assert.Equal(t, 2.290084, *r.Longitude)
	assert.Equal(t, 49.897443, *r.Latitude)
}

func TestReverseGeocodeReturnsBestMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse/", r.URL.Path)
		w.Write([]byte(`{"type": "FeatureCollection", "features": [
			{"type": "Feature", "properties": {
				"label": "12 Rue de la Paix 75002 Paris",
				"city": "Paris", "citycode": "75102", "postcode": "75002"
			}},
			{"type": "Feature", "properties": {"label": "ignored"}}
		]}`))
	}))
	defer srv.Close()

	addr, err := testClient(srv).ReverseGeocode(context.Background(), 2.3311, 48.8691)
	require.NoError(t, err)
	require.NotNil(t, addr)
	assert.Equal(t, "12 Rue de la Paix 75002 Paris", addr.Label)
	assert.Equal(t, "75102", addr.CityCode)
}

func TestReverseGeocodeNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type": "FeatureCollection", "features": []}`))
	}))
	defer srv.Close()

	addr, err := testClient(srv).ReverseGeocode(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Nil(t, addr)
}
