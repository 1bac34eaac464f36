package assist

import (
	"context"
	"errors"
	"testing"

	"urbania/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator returns a scripted response or error.
type fakeGenerator struct {
	response string
	err      error
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

func svcWith(response string) *DefaultAssistService {
	return &DefaultAssistService{Gen: &fakeGenerator{response: response}}
}

func TestAnalyzeProjectExtractsVocabularyValues(t *testing.T) {
	svc := svcWith(`{
		"facadeColor": "Blanc",
		"roofColor": "gris foncé",
		"facadeMaterial": "Enduit",
		"roofMaterial": "Tuiles",
		"heightMeters": 3.5
	}`)

	analysis := svc.AnalyzeProject(context.Background(), "maison avec enduit blanc")
	require.NotNil(t, analysis)

	require.NotNil(t, analysis.FacadeColor)
	assert.Equal(t, "Blanc", *analysis.FacadeColor)
	// Canonicalized to the vocabulary casing.
	require.NotNil(t, analysis.RoofColor)
	assert.Equal(t, "Gris foncé", *analysis.RoofColor)
	require.NotNil(t, analysis.FacadeMaterial)
	assert.Equal(t, "Enduit", *analysis.FacadeMaterial)
	require.NotNil(t, analysis.RoofMaterial)
	assert.Equal(t, "Tuiles", *analysis.RoofMaterial)
	require.NotNil(t, analysis.HeightMeters)
	assert.Equal(t, 3.5, *analysis.HeightMeters)
}

func TestAnalyzeProjectNullsOffVocabularyValues(t *testing.T) {
	svc := svcWith(`{
		"facadeColor": "Rose fluo",
		"roofColor": null,
		"facadeMaterial": 42,
		"roofMaterial": "Chaume",
		"heightMeters": "pas haut"
	}`)

	analysis := svc.AnalyzeProject(context.Background(), "description")
	require.NotNil(t, analysis)
	assert.Nil(t, analysis.FacadeColor)
	assert.Nil(t, analysis.RoofColor)
	assert.Nil(t, analysis.FacadeMaterial)
	assert.Nil(t, analysis.RoofMaterial)
	assert.Nil(t, analysis.HeightMeters)
}

func TestAnalyzeProjectAcceptsNumericStringHeight(t *testing.T) {
	svc := svcWith(`{"heightMeters": "4.2"}`)

	analysis := svc.AnalyzeProject(context.Background(), "description")
	require.NotNil(t, analysis.HeightMeters)
	assert.Equal(t, 4.2, *analysis.HeightMeters)
}

func TestAnalyzeProjectStripsCodeFences(t *testing.T) {
	svc := svcWith("```json\n{\"facadeColor\": \"Beige\"}\n```")

	analysis := svc.AnalyzeProject(context.Background(), "description")
	require.NotNil(t, analysis.FacadeColor)
	assert.Equal(t, "Beige", *analysis.FacadeColor)
}

func TestAnalyzeProjectFallsBackToAllNullShape(t *testing.T) {
	for name, svc := range map[string]*DefaultAssistService{
		"disabled":     {Gen: nil},
		"model error":  {Gen: &fakeGenerator{err: errors.New("quota exceeded")}},
		"invalid json": svcWith("je ne peux pas répondre"),
	} {
		t.Run(name, func(t *testing.T) {
			analysis := svc.AnalyzeProject(context.Background(), "description")
			require.NotNil(t, analysis)
			assert.Nil(t, analysis.FacadeColor)
			assert.Nil(t, analysis.HeightMeters)
		})
	}
}

func TestSuggestDocumentsFillsMissingKeysFromDefaults(t *testing.T) {
	svc := svcWith(`{"dp2": true, "dp7": false}`)

	suggestions := svc.SuggestDocuments(context.Background(), "extension de maison")
	require.NotNil(t, suggestions)
	assert.Len(t, suggestions, 8)

	assert.True(t, suggestions["dp2"])
	assert.False(t, suggestions["dp7"], "model answer wins over the default")
	// Missing keys take their defaults.
	assert.True(t, suggestions["dp1"])
	assert.True(t, suggestions["dp8"])
	assert.False(t, suggestions["dp3"])
	assert.False(t, suggestions["dp6"])
}

func TestSuggestDocumentsReturnsNilOnFailure(t *testing.T) {
	assert.Nil(t, svcWith("pas du JSON").SuggestDocuments(context.Background(), "description"))
	assert.Nil(t, (&DefaultAssistService{}).SuggestDocuments(context.Background(), "description"))
}

func TestConfigureProjectForcesMandatoryDocuments(t *testing.T) {
	svc := svcWith(`{
		"requiredFields": ["surfaceTerrain"],
		"requiredDocuments": ["dp2"],
		"specificQuestions": [],
		"projectCategory": "construction"
	}`)

	cfg := svc.ConfigureProject(context.Background(), "abri de jardin")
	require.NotNil(t, cfg)
	assert.Contains(t, cfg.RequiredDocuments, "dp1")
	assert.Contains(t, cfg.RequiredDocuments, "dp7")
	assert.Contains(t, cfg.RequiredDocuments, "dp2")
	assert.Equal(t, "construction", cfg.ProjectCategory)
}

func TestConfigureProjectCapsQuestionsAtThree(t *testing.T) {
	svc := svcWith(`{
		"requiredDocuments": ["dp1", "dp7"],
		"specificQuestions": [
			{"field": "a", "label": "A", "type": "text"},
			{"field": "b", "label": "B", "type": "number"},
			{"field": "c", "label": "C", "type": "boolean"},
			{"field": "d", "label": "D", "type": "text"}
		]
	}`)

	cfg := svc.ConfigureProject(context.Background(), "description")
	assert.Len(t, cfg.SpecificQuestions, 3)
	assert.Equal(t, "autre", cfg.ProjectCategory)
}

func TestConfigureProjectFallsBackOnFailure(t *testing.T) {
	cfg := svcWith("réponse libre").ConfigureProject(context.Background(), "description")
	require.NotNil(t, cfg)
	assert.Equal(t, []string{"surfaceTerrain", "surfacePlancherCreee"}, cfg.RequiredFields)
	assert.Equal(t, []string{"dp1", "dp2", "dp6", "dp7"}, cfg.RequiredDocuments)
	assert.Empty(t, cfg.SpecificQuestions)
	assert.NotNil(t, cfg.SpecificQuestions)
	assert.Equal(t, "autre", cfg.ProjectCategory)
}

func TestGenerateDescriptionUnwrapsJSONAndStripsMarkup(t *testing.T) {
	svc := svcWith(`{"description": "**Construction** d'un abri de jardin. Surface de 12 m2."}`)

	got := svc.GenerateDescription(context.Background(), models.DescriptionRequest{ProjectType: "abri_de_jardin"})
	assert.Equal(t, "Construction d'un abri de jardin. Surface de 12 m2.", got)
}

func TestGenerateDescriptionCapsAtTwoSentences(t *testing.T) {
	svc := svcWith("Première phrase. Deuxième phrase. Troisième phrase.")

	got := svc.GenerateDescription(context.Background(), models.DescriptionRequest{ProjectType: "piscine"})
	assert.Equal(t, "Première phrase. Deuxième phrase.", got)
}

func TestGenerateDescriptionFallsBackToCannedSentence(t *testing.T) {
	svc := &DefaultAssistService{}

	got := svc.GenerateDescription(context.Background(), models.DescriptionRequest{
		ProjectType:   "autre",
		NatureTravaux: []string{"ravalement", "toiture"},
		AutreNature:   "pergola",
	})
	assert.Equal(t, "Projet de travaux de type autre portant sur : ravalement, toiture, pergola.", got)

	got = svc.GenerateDescription(context.Background(), models.DescriptionRequest{ProjectType: "cloture"})
	assert.Equal(t, "Projet de travaux de type cloture soumis à déclaration préalable.", got)
}
