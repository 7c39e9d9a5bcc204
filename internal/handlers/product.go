package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/catalog-backend/internal/services"
)

type ProductHandler struct {
	productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (ph *ProductHandler) GetAll(c *gin.Context) {
	products, err := ph.productService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (ph *ProductHandler) GetByID(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := ph.productService.GetByID(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (ph *ProductHandler) Create(c *gin.Context) {
	var input services.CreateProductInput
	if !bindJSON(c, &input) {
		return
	}
	product, err := ph.productService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (ph *ProductHandler) Update(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.UpdateProductInput
	if !bindJSON(c, &input) {
		return
	}
	input.ID = productID
	product, err := ph.productService.Update(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (ph *ProductHandler) Delete(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := ph.productService.Delete(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

type addAddonsRequest struct {
	Addons []services.AddonSpec `json:"addons"`
}

func (ph *ProductHandler) AddAddons(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req addAddonsRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := ph.productService.AddAddons(c.Request.Context(), productID, req.Addons)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
