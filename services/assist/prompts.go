package assist

import (
	"fmt"
	"strings"
)

// Enumerated vocabularies for the analyze-project operation. Any model
// output outside these lists is discarded and reported as null.
var (
	colorVocabulary = []string{
		"Blanc", "Beige", "Gris clair", "Gris foncé", "Noir", "Bleu",
		"Vert", "Marron", "Rouge", "Terracotta", "Autre",
	}
	facadeMaterialVocabulary = []string{
		"Enduit", "Crépi", "Bardage bois", "Pierre", "Brique", "Béton",
		"Métal", "Autre",
	}
	roofMaterialVocabulary = []string{
		"Tuiles", "Ardoises", "Zinc", "Bac acier", "Toit terrasse",
		"Bois", "Autre",
	}
)

// The eight déclaration préalable piece identifiers, with their default
// obligation: dp1 (plan de situation), dp7 and dp8 (photographies) are
// always required.
var documentDefaults = map[string]bool{
	"dp1": true,
	"dp2": false,
	"dp3": false,
	"dp4": false,
	"dp5": false,
	"dp6": false,
	"dp7": true,
	"dp8": true,
}

// Documents forced into every custom-project configuration.
var mandatoryDocuments = []string{"dp1", "dp7"}

func analyzePrompt(description string) string {
	return fmt.Sprintf(`Analyse la description suivante d'un projet de travaux pour un formulaire CERFA.
Extrais les informations sous forme de JSON uniquement.

Description: %q

Structure JSON attendue:
{
    "facadeColor": "choisir précisément parmi [%s]",
    "roofColor": "choisir précisément parmi [%s]",
    "facadeMaterial": "choisir précisément parmi [%s]",
    "roofMaterial": "choisir précisément parmi [%s]",
    "heightMeters": "nombre en mètres (float) ou null si non mentionné"
}

Règle : Si une information n'est pas mentionnée, mets null.`,
		description,
		strings.Join(colorVocabulary, ", "),
		strings.Join(colorVocabulary, ", "),
		strings.Join(facadeMaterialVocabulary, ", "),
		strings.Join(roofMaterialVocabulary, ", "))
}

func suggestDocumentsPrompt(description string) string {
	return fmt.Sprintf(`En fonction de la description du projet ci-dessous, détermine si les pièces suivantes (DP1 à DP8) sont obligatoires pour une déclaration préalable.

Description: %q

Liste des pièces à évaluer:
- dp1: Plan de situation (Toujours obligatoire)
- dp2: Plan de masse (Obligatoire si création de construction ou modification d'emprise au sol)
- dp3: Plan de coupe (Obligatoire si le profil du terrain est modifié)
- dp4: Plans des façades et des toitures (Obligatoire si modification de l'aspect extérieur)
- dp5: Représentation de l'aspect extérieur (Si modification visible depuis l'espace public)
- dp6: Document graphique d'insertion (Si modification du volume ou de l'aspect extérieur)
- dp7: Photographie environnement proche (Toujours obligatoire)
- dp8: Photographie environnement lointain (Toujours obligatoire)

Réponds uniquement avec un objet JSON où les clés sont dp1, dp2, etc. et les valeurs sont des booléens.`, description)
}

func configurePrompt(description string) string {
	return fmt.Sprintf(`Analyse la description suivante d'un projet de travaux (type personnalisé/autre) pour configurer un formulaire CERFA.

Description: %q

Tu dois déterminer :
1. Les champs obligatoires parmi : surfaceTerrain, surfacePlancherCreee, hauteurConstruction, couleurFacade, materiauFacade, couleurToiture, materiauToiture
2. Les documents obligatoires parmi : dp1, dp2, dp3, dp4, dp5, dp6, dp7, dp8
3. Des questions spécifiques à ce type de projet (0 à 3 questions max)

Règles pour les documents :
- dp1 (Plan de situation) : TOUJOURS obligatoire
- dp2 (Plan de masse) : Si création de construction ou modification d'emprise au sol
- dp3 (Plan de coupe) : Si modification du profil du terrain ou création en hauteur
- dp4 (Façades et toitures) : Si modification de l'aspect extérieur d'un bâtiment
- dp5 (Représentation extérieure) : Si modification visible depuis l'espace public
- dp6 (Insertion paysagère) : Si création ou modification de volume
- dp7 (Photo proche) : TOUJOURS obligatoire
- dp8 (Photo lointaine) : Si impact paysager significatif

Réponds uniquement avec un objet JSON valide :
{
    "requiredFields": ["surfaceTerrain", ...],
    "requiredDocuments": ["dp1", "dp2", ...],
    "specificQuestions": [
        { "field": "nomDuChamp", "label": "Question à afficher", "type": "text|number|boolean|select", "options": ["option1", "option2"] }
    ],
    "projectCategory": "construction|modification|amenagement|demolition"
}`, description)
}

func describePrompt(projectType string, natures []string, autreNature string) string {
	natureList := strings.Join(natures, ", ")
	if autreNature != "" {
		natureList += " (" + autreNature + ")"
	}
	return fmt.Sprintf(`Rédige une description de projet de travaux pour une déclaration préalable.
Type de projet : %s
Nature des travaux : %s

Réponds en deux phrases courtes maximum, en texte brut, sans aucune mise en forme.`,
		projectType, natureList)
}
