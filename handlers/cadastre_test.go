package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"urbania/services/cadastre"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performGET(t *testing.T, handler gin.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	handler(c)
	return w
}

func TestSearchParcellesHandlerRequiresCodeInsee(t *testing.T) {
	handler := NewSearchParcellesHandler(cadastre.NewClient())

	assert.Equal(t, http.StatusBadRequest, performGET(t, handler, "/search/").Code)
	assert.Equal(t, http.StatusBadRequest, performGET(t, handler, "/search/?section=AB").Code)
}

func TestSearchParcellesHandlerSectionOptional(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	defer srv.Close()

	client := cadastre.NewClientWithEndpoints(srv.Client(), srv.URL, srv.URL, srv.URL)
	handler := NewSearchParcellesHandler(client)

	w := performGET(t, handler, "/search/?code_insee=75101")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "75101", gotQuery.Get("code_insee"))
	assert.False(t, gotQuery.Has("section"))
}

func TestGeocodeHandlerRequiresQuery(t *testing.T) {
	handler := NewGeocodeHandler(cadastre.NewClient())
	assert.Equal(t, http.StatusBadRequest, performGET(t, handler, "/geocode/").Code)
}

func TestCoordinateHandlersValidateLatLon(t *testing.T) {
	for name, handler := range map[string]gin.HandlerFunc{
		"parcelle by coords": NewParcelleByCoordsHandler(cadastre.NewClient()),
		"reverse geocode":    NewReverseGeocodeHandler(cadastre.NewClient()),
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, performGET(t, handler, "/?lat=48.8").Code)
			assert.Equal(t, http.StatusBadRequest, performGET(t, handler, "/?lon=2.3").Code)
			assert.Equal(t, http.StatusBadRequest, performGET(t, handler, "/?lat=abc&lon=2.3").Code)
			assert.Equal(t, http.StatusBadRequest, performGET(t, handler, "/?lat=48.8&lon=xyz").Code)
		})
	}
}
