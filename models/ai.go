package models

// ProjectAnalysis is the shape returned by the analyze-project operation.
// All five keys are always present; a nil field means the model could not
// extract that value (or produced one outside the allowed vocabulary).
type ProjectAnalysis struct {
	FacadeColor    *string  `json:"facadeColor"`
	RoofColor      *string  `json:"roofColor"`
	FacadeMaterial *string  `json:"facadeMaterial"`
	RoofMaterial   *string  `json:"roofMaterial"`
	HeightMeters   *float64 `json:"heightMeters"`
}

// SpecificQuestion is one dynamically generated form question for a custom
// project type.
type SpecificQuestion struct {
	Field   string   `json:"field"`
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

// ProjectConfiguration is the shape returned by the configure-project
// operation. RequiredDocuments always contains dp1 and dp7.
type ProjectConfiguration struct {
	RequiredFields    []string           `json:"requiredFields"`
	RequiredDocuments []string           `json:"requiredDocuments"`
	SpecificQuestions []SpecificQuestion `json:"specificQuestions"`
	ProjectCategory   string             `json:"projectCategory"`
}

// DescriptionRequest is the generate-description payload.
type DescriptionRequest struct {
	ProjectType   string   `json:"projectType"`
	NatureTravaux []string `json:"natureTravaux"`
	AutreNature   string   `json:"autreNature"`
}
