package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/Yi-lne/Hospital-Selection-System-sub001/internal/errors"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/model"
)

// GetHospitalHandler retrieves a single hospital by its numeric id.
func (api *API) GetHospitalHandler(c *gin.Context) {
	validation := &ValidationResult{}
	id := validateEntityID(c.Param("id"), validation)
	if validation.HasErrors() {
		validation.SendValidationError(c)
		return
	}

	hospital, err := api.store.GetHospital(c.Request.Context(), id)
	if err != nil {
		api.sendLookupError(c, "Hospital", c.Param("id"), err)
		return
	}

	c.JSON(http.StatusOK, hospital)
}

// GetDoctorHandler retrieves a single doctor by its numeric id.
func (api *API) GetDoctorHandler(c *gin.Context) {
	validation := &ValidationResult{}
	id := validateEntityID(c.Param("id"), validation)
	if validation.HasErrors() {
		validation.SendValidationError(c)
		return
	}

	doctor, err := api.store.GetDoctor(c.Request.Context(), id)
	if err != nil {
		api.sendLookupError(c, "Doctor", c.Param("id"), err)
		return
	}

	c.JSON(http.StatusOK, doctor)
}

// SuggestionsHandler returns name suggestions for a partial keyword, closest
// matches first.
// Query params: keyword (required), kind (hospital|doctor, default hospital), limit
func (api *API) SuggestionsHandler(c *gin.Context) {
	validation := &ValidationResult{}
	keyword := validateSuggestionKeyword(c.Query("keyword"), validation)

	kind := model.EntityHospital
	if kindParam := c.Query("kind"); kindParam != "" {
		parsed, err := model.ParseEntityKind(kindParam)
		if err != nil {
			validation.AddError("kind", err.Error())
		} else {
			kind = parsed
		}
	}

	limit := 10
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 || parsed > 50 {
			validation.AddError("limit", "Limit must be between 1 and 50")
		} else {
			limit = parsed
		}
	}

	if validation.HasErrors() {
		validation.SendValidationError(c)
		return
	}

	names, err := api.suggester.Suggest(c.Request.Context(), kind, keyword, limit)
	if err != nil {
		if errors.Is(err, internalErrors.ErrCatalogStoreUnavailable) {
			SendStoreUnavailableError(c, err)
			return
		}
		SendInternalError(c, "suggestion lookup", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"keyword":     keyword,
		"kind":        kind,
		"suggestions": names,
		"count":       len(names),
	})
}

func (api *API) sendLookupError(c *gin.Context, kind, id string, err error) {
	switch {
	case errors.Is(err, internalErrors.ErrEntityNotFound):
		SendEntityNotFoundError(c, kind, id)
	case errors.Is(err, internalErrors.ErrCatalogStoreUnavailable):
		SendStoreUnavailableError(c, err)
	default:
		SendInternalError(c, "entity lookup", err)
	}
}
