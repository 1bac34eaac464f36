package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"urbania/models"
	"urbania/utils"

	"go.uber.org/zap"
)

// callTimeout bounds every model call. A slow model is treated like an
// unreachable one: the operation falls back.
const callTimeout = 20 * time.Second

// DefaultAssistService implements AssistService on a TextGenerator. A nil
// generator means AI features are disabled; every operation then serves its
// fallback immediately.
type DefaultAssistService struct {
	Gen TextGenerator
}

func NewDefaultAssistService(gen TextGenerator) *DefaultAssistService {
	return &DefaultAssistService{Gen: gen}
}

// callModel runs one bounded completion and cleans the raw output. The empty
// string signals failure.
func (s *DefaultAssistService) callModel(ctx context.Context, prompt string) string {
	if s.Gen == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	raw, err := s.Gen.GenerateContent(ctx, prompt)
	if err != nil {
		utils.GetLogger().Warn("Model call failed", zap.Error(err))
		return ""
	}
	return stripCodeFences(strings.TrimSpace(raw))
}

// stripCodeFences removes a Markdown code fence wrapper if present. The
// model is asked for raw JSON but does not always comply.
func stripCodeFences(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}
	parts := strings.Split(content, "```")
	if len(parts) < 2 {
		return content
	}
	inner := parts[1]
	inner = strings.TrimPrefix(inner, "json")
	return strings.TrimSpace(inner)
}

// AnalyzeProject extracts materials, colors, and construction height from a
// free-text description. The returned shape always has all five keys; any
// value outside its vocabulary is nulled.
func (s *DefaultAssistService) AnalyzeProject(ctx context.Context, description string) *models.ProjectAnalysis {
	analysis := &models.ProjectAnalysis{}

	content := s.callModel(ctx, analyzePrompt(description))
	if content == "" {
		return analysis
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		utils.GetLogger().Warn("Failed to decode analysis JSON", zap.String("content", content))
		return analysis
	}

	analysis.FacadeColor = pickFromVocabulary(data["facadeColor"], colorVocabulary)
	analysis.RoofColor = pickFromVocabulary(data["roofColor"], colorVocabulary)
	analysis.FacadeMaterial = pickFromVocabulary(data["facadeMaterial"], facadeMaterialVocabulary)
	analysis.RoofMaterial = pickFromVocabulary(data["roofMaterial"], roofMaterialVocabulary)
	analysis.HeightMeters = pickNumber(data["heightMeters"])
	return analysis
}

// pickFromVocabulary returns the canonical vocabulary entry matching the
// model's value, or nil when the value is absent or off-vocabulary.
func pickFromVocabulary(value interface{}, vocabulary []string) *string {
	str, ok := value.(string)
	if !ok {
		return nil
	}
	str = strings.TrimSpace(str)
	for _, entry := range vocabulary {
		if strings.EqualFold(entry, str) {
			v := entry
			return &v
		}
	}
	return nil
}

// pickNumber coerces a model value into a float, accepting numeric strings.
func pickNumber(value interface{}) *float64 {
	switch v := value.(type) {
	case float64:
		return &v
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return &f
		}
	}
	return nil
}

// SuggestDocuments maps the eight DP piece identifiers to their obligation
// for the described project. Keys the model omitted take the documented
// default. Returns nil on failure: absence of a suggestion, not "all false".
func (s *DefaultAssistService) SuggestDocuments(ctx context.Context, description string) map[string]bool {
	content := s.callModel(ctx, suggestDocumentsPrompt(description))
	if content == "" {
		return nil
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		utils.GetLogger().Warn("Failed to decode document suggestion JSON", zap.String("content", content))
		return nil
	}

	suggestions := make(map[string]bool, len(documentDefaults))
	for id, def := range documentDefaults {
		if v, ok := data[id].(bool); ok {
			suggestions[id] = v
		} else {
			suggestions[id] = def
		}
	}
	return suggestions
}

// defaultConfiguration is served whenever the model cannot produce a usable
// configuration; callers must never be left without one.
func defaultConfiguration() *models.ProjectConfiguration {
	return &models.ProjectConfiguration{
		RequiredFields:    []string{"surfaceTerrain", "surfacePlancherCreee"},
		RequiredDocuments: []string{"dp1", "dp2", "dp6", "dp7"},
		SpecificQuestions: []models.SpecificQuestion{},
		ProjectCategory:   "autre",
	}
}

// ConfigureProject builds a form configuration for a custom ("autre")
// project type. dp1 and dp7 are forced into RequiredDocuments regardless of
// model output.
func (s *DefaultAssistService) ConfigureProject(ctx context.Context, description string) *models.ProjectConfiguration {
	content := s.callModel(ctx, configurePrompt(description))
	if content == "" {
		return defaultConfiguration()
	}

	var cfg models.ProjectConfiguration
	if err := json.Unmarshal([]byte(content), &cfg); err != nil {
		utils.GetLogger().Warn("Failed to decode configuration JSON", zap.String("content", content))
		return defaultConfiguration()
	}

	for _, id := range mandatoryDocuments {
		if !containsString(cfg.RequiredDocuments, id) {
			cfg.RequiredDocuments = append(cfg.RequiredDocuments, id)
		}
	}
	if len(cfg.SpecificQuestions) > 3 {
		cfg.SpecificQuestions = cfg.SpecificQuestions[:3]
	}
	if cfg.SpecificQuestions == nil {
		cfg.SpecificQuestions = []models.SpecificQuestion{}
	}
	if cfg.ProjectCategory == "" {
		cfg.ProjectCategory = "autre"
	}
	return &cfg
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

// GenerateDescription produces a short plain-text project description.
func (s *DefaultAssistService) GenerateDescription(ctx context.Context, req models.DescriptionRequest) string {
	content := s.callModel(ctx, describePrompt(req.ProjectType, req.NatureTravaux, req.AutreNature))
	if content == "" {
		return cannedDescription(req)
	}

	// The model sometimes wraps the text in a JSON object despite the
	// plain-text instruction.
	var wrapped struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(content), &wrapped); err == nil && wrapped.Description != "" {
		content = wrapped.Description
	}

	content = stripMarkup(content)
	content = capSentences(content, 2)
	if content == "" {
		return cannedDescription(req)
	}
	return content
}

// stripMarkup removes Markdown decoration characters from model output.
func stripMarkup(text string) string {
	replacer := strings.NewReplacer("*", "", "#", "", "`", "", "_", "", ">", "")
	return strings.TrimSpace(replacer.Replace(text))
}

// capSentences truncates text after n sentences.
func capSentences(text string, n int) string {
	count := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			count++
			if count == n {
				return strings.TrimSpace(text[:i+1])
			}
		}
	}
	return strings.TrimSpace(text)
}

// cannedDescription is the fixed fallback sentence.
func cannedDescription(req models.DescriptionRequest) string {
	natures := strings.Join(req.NatureTravaux, ", ")
	if req.AutreNature != "" {
		if natures != "" {
			natures += ", "
		}
		natures += req.AutreNature
	}
	if natures == "" {
		return fmt.Sprintf("Projet de travaux de type %s soumis à déclaration préalable.", req.ProjectType)
	}
	return fmt.Sprintf("Projet de travaux de type %s portant sur : %s.", req.ProjectType, natures)
}
