package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"urbania/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAssistService returns scripted values.
type fakeAssistService struct {
	analysis    *models.ProjectAnalysis
	suggestions map[string]bool
	config      *models.ProjectConfiguration
	description string
}

func (f *fakeAssistService) AnalyzeProject(ctx context.Context, description string) *models.ProjectAnalysis {
	return f.analysis
}

func (f *fakeAssistService) SuggestDocuments(ctx context.Context, description string) map[string]bool {
	return f.suggestions
}

func (f *fakeAssistService) ConfigureProject(ctx context.Context, description string) *models.ProjectConfiguration {
	return f.config
}

func (f *fakeAssistService) GenerateDescription(ctx context.Context, req models.DescriptionRequest) string {
	return f.description
}

func performJSON(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func TestAnalyzeProjectHandlerRequiresDescription(t *testing.T) {
	handler := NewAnalyzeProjectHandler(&fakeAssistService{})

	assert.Equal(t, http.StatusBadRequest, performJSON(t, handler, `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, performJSON(t, handler, `{"description": ""}`).Code)
	assert.Equal(t, http.StatusBadRequest, performJSON(t, handler, `not json`).Code)
}

func TestAnalyzeProjectHandlerServesAllFiveKeys(t *testing.T) {
	color := "Blanc"
	handler := NewAnalyzeProjectHandler(&fakeAssistService{
		analysis: &models.ProjectAnalysis{FacadeColor: &color},
	})

	w := performJSON(t, handler, `{"description": "maison blanche"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	for _, key := range []string{"facadeColor", "roofColor", "facadeMaterial", "roofMaterial", "heightMeters"} {
		assert.Contains(t, body, key)
	}
	assert.Equal(t, `"Blanc"`, string(body["facadeColor"]))
	assert.Equal(t, "null", string(body["roofColor"]))
}

func TestAnalyzeProjectHandlerNilAnalysisIs500(t *testing.T) {
	handler := NewAnalyzeProjectHandler(&fakeAssistService{analysis: nil})
	w := performJSON(t, handler, `{"description": "maison"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSuggestDocumentsHandler(t *testing.T) {
	handler := NewSuggestDocumentsHandler(&fakeAssistService{
		suggestions: map[string]bool{"dp1": true, "dp2": false},
	})
	w := performJSON(t, handler, `{"description": "extension"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body["dp1"])

	// A nil suggestion map means the model produced nothing usable.
	handler = NewSuggestDocumentsHandler(&fakeAssistService{suggestions: nil})
	assert.Equal(t, http.StatusInternalServerError, performJSON(t, handler, `{"description": "extension"}`).Code)
}

func TestConfigureProjectHandlerAlwaysSucceeds(t *testing.T) {
	handler := NewConfigureProjectHandler(&fakeAssistService{
		config: &models.ProjectConfiguration{
			RequiredFields:    []string{"surfaceTerrain"},
			RequiredDocuments: []string{"dp1", "dp7"},
			SpecificQuestions: []models.SpecificQuestion{},
			ProjectCategory:   "amenagement",
		},
	})

	w := performJSON(t, handler, `{"description": "pergola"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var cfg models.ProjectConfiguration
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, "amenagement", cfg.ProjectCategory)
	assert.Contains(t, cfg.RequiredDocuments, "dp1")
}

func TestGenerateDescriptionHandler(t *testing.T) {
	handler := NewGenerateDescriptionHandler(&fakeAssistService{description: "Construction d'une piscine."})

	w := performJSON(t, handler, `{"projectType": "piscine", "natureTravaux": ["piscine"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Construction d'une piscine.", body["description"])

	assert.Equal(t, http.StatusBadRequest, performJSON(t, handler, `{}`).Code)
}
