package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"urbania/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDossierService records calls and returns scripted values.
type fakeDossierService struct {
	created   *models.Dossier
	createErr error
	dossier   *models.Dossier
	dossiers  []models.Dossier

	gotUserID string
	gotData   models.FormData
	gotStatus string
}

func (f *fakeDossierService) Create(userID string, data models.FormData, status string) (*models.Dossier, error) {
	f.gotUserID, f.gotData, f.gotStatus = userID, data, status
	return f.created, f.createErr
}

func (f *fakeDossierService) Get(userID, id string) (*models.Dossier, error) {
	f.gotUserID = userID
	return f.dossier, nil
}

func (f *fakeDossierService) ListByUser(userID string) ([]models.Dossier, error) {
	return f.dossiers, nil
}

func (f *fakeDossierService) ListAll() ([]models.Dossier, error) {
	return f.dossiers, nil
}

func (f *fakeDossierService) AttachPDF(ctx context.Context, userID, id string, file io.Reader) (string, error) {
	return "", nil
}

func performAs(t *testing.T, handler gin.HandlerFunc, userID, method, body string, params ...gin.Param) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("userID", userID)
	c.Params = params
	handler(c)
	return w
}

func TestCreateDossierHandler(t *testing.T) {
	svc := &fakeDossierService{
		created: &models.Dossier{ID: "d-1", Status: models.DossierStatusCompleted},
	}
	handler := NewCreateDossierHandler(svc)

	w := performAs(t, handler, "u-1", http.MethodPost,
		`{"data": {"typeDeclarant": "particulier"}, "status": "completed"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, "u-1", svc.gotUserID)
	assert.Equal(t, "completed", svc.gotStatus)
	assert.Equal(t, "particulier", svc.gotData["typeDeclarant"])

	var body models.Dossier
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "d-1", body.ID)
}

func TestCreateDossierHandlerRequiresData(t *testing.T) {
	handler := NewCreateDossierHandler(&fakeDossierService{})

	assert.Equal(t, http.StatusBadRequest, performAs(t, handler, "u-1", http.MethodPost, `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, performAs(t, handler, "u-1", http.MethodPost, `{"data": {}}`).Code)
}

func TestGetDossierHandlerNotOwnedIs404(t *testing.T) {
	handler := NewGetDossierHandler(&fakeDossierService{dossier: nil})

	w := performAs(t, handler, "u-1", http.MethodGet, "", gin.Param{Key: "id", Value: "d-9"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDossierHandlerReturnsOwned(t *testing.T) {
	handler := NewGetDossierHandler(&fakeDossierService{
		dossier: &models.Dossier{ID: "d-1", Status: models.DossierStatusCompleted},
	})

	w := performAs(t, handler, "u-1", http.MethodGet, "", gin.Param{Key: "id", Value: "d-1"})
	require.Equal(t, http.StatusOK, w.Code)

	var body models.Dossier
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "d-1", body.ID)
}

func TestListDossiersHandlerEmptyIsArray(t *testing.T) {
	handler := NewListDossiersHandler(&fakeDossierService{dossiers: nil})

	w := performAs(t, handler, "u-1", http.MethodGet, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}
