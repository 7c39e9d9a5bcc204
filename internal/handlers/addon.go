package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/catalog-backend/internal/services"
)

type AddonHandler struct {
	addonService services.AddonService
}

func NewAddonHandler(addonService services.AddonService) *AddonHandler {
	return &AddonHandler{addonService: addonService}
}

func (ah *AddonHandler) GetAll(c *gin.Context) {
	addons, err := ah.addonService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, addons)
}

func (ah *AddonHandler) GetByID(c *gin.Context) {
	addonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	addon, err := ah.addonService.GetByID(c.Request.Context(), addonID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, addon)
}

func (ah *AddonHandler) Create(c *gin.Context) {
	var input services.CreateAddonInput
	if !bindJSON(c, &input) {
		return
	}
	addon, err := ah.addonService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, addon)
}

func (ah *AddonHandler) Update(c *gin.Context) {
	addonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.UpdateAddonInput
	if !bindJSON(c, &input) {
		return
	}
	input.ID = addonID
	addon, err := ah.addonService.Update(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, addon)
}

func (ah *AddonHandler) Delete(c *gin.Context) {
	addonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	addon, err := ah.addonService.Delete(c.Request.Context(), addonID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, addon)
}
