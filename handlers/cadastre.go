package handlers

import (
	"net/http"
	"strconv"

	"urbania/models"
	"urbania/services/cadastre"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func upstreamError(c *gin.Context, err error) {
	getLogger(c).Error("Cadastre upstream request failed", zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": "Le service cadastral est indisponible."})
}

// NewCommuneParcellesHandler serves the Etalab parcel dump for a commune.
func NewCommuneParcellesHandler(client *cadastre.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		fc, err := client.ParcellesCommune(c.Request.Context(), c.Param("inseeCode"))
		if err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, fc)
	}
}

// NewCommuneBatimentsHandler serves the Etalab building dump for a commune.
func NewCommuneBatimentsHandler(client *cadastre.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		fc, err := client.BatimentsCommune(c.Request.Context(), c.Param("inseeCode"))
		if err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, fc)
	}
}

// NewParcelleHandler looks up a single parcel by commune, section and number.
func NewParcelleHandler(client *cadastre.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		feature, err := client.ParcelleByID(c.Request.Context(),
			c.Param("inseeCode"), c.Param("section"), c.Param("numero"))
		if err != nil {
			upstreamError(c, err)
			return
		}
		if feature == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parcelle introuvable."})
			return
		}
		c.JSON(http.StatusOK, feature)
	}
}

// NewSectionsHandler lists the distinct cadastral sections of a commune.
func NewSectionsHandler(client *cadastre.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sections, err := client.Sections(c.Request.Context(), c.Param("inseeCode"))
		if err != nil {
			upstreamError(c, err)
			return
		}
		if sections == nil {
			sections = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"sections": sections})
	}
}

// NewSearchParcellesHandler searches parcels of a commune, optionally
// narrowed to a section.
func NewSearchParcellesHandler(client *cadastre.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		codeInsee := c.Query("code_insee")
		section := c.Query("section")
		if codeInsee == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le paramètre code_insee est requis."})
			return
		}

		fc, err := client.SearchParcelles(c.Request.Context(), codeInsee, section)
		if err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, fc)
	}
}

// NewParcelleByCoordsHandler resolves the parcel containing a point.
func NewParcelleByCoordsHandler(client *cadastre.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, lon, ok := parseLatLon(c)
		if !ok {
			return
		}

		feature, err := client.ParcelleByCoordinates(c.Request.Context(), lat, lon)
		if err != nil {
			upstreamError(c, err)
			return
		}
		if feature == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Aucune parcelle à ces coordonnées."})
			return
		}
		c.JSON(http.StatusOK, feature)
	}
}

// NewGeocodeHandler searches addresses via the BAN.
func NewGeocodeHandler(client *cadastre.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le paramètre q est requis."})
			return
		}
		limit, _ := strconv.Atoi(c.Query("limit"))

		results, err := client.Geocode(c.Request.Context(), query, limit)
		if err != nil {
			upstreamError(c, err)
			return
		}
		if results == nil {
			results = []models.GeocodeResult{}
		}
		c.JSON(http.StatusOK, gin.H{"results": results})
	}
}

// NewReverseGeocodeHandler resolves the closest address for a point.
func NewReverseGeocodeHandler(client *cadastre.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, lon, ok := parseLatLon(c)
		if !ok {
			return
		}

		addr, err := client.ReverseGeocode(c.Request.Context(), lon, lat)
		if err != nil {
			upstreamError(c, err)
			return
		}
		if addr == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Aucune adresse à ces coordonnées."})
			return
		}
		c.JSON(http.StatusOK, addr)
	}
}

// parseLatLon validates the lat/lon query parameters, answering 400 itself
// when they are missing or malformed.
func parseLatLon(c *gin.Context) (lat, lon float64, ok bool) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les paramètres lat et lon sont requis."})
		return 0, 0, false
	}

	var err error
	if lat, err = strconv.ParseFloat(latStr, 64); err == nil {
		lon, err = strconv.ParseFloat(lonStr, 64)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coordonnées invalides."})
		return 0, 0, false
	}
	return lat, lon, true
}
