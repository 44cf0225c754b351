package api

import (
	"net/http"

	"github.com/thomsonxavier/kaviecommerce/internal/product"

	"github.com/gin-gonic/gin"
)

type sizeRequest struct {
	Value string  `json:"value" binding:"required"`
	Price float64 `json:"price" binding:"required,gt=0"`
}

type createProductRequest struct {
	ID          string        `json:"id"`
	Name        string        `json:"name" binding:"required"`
	Category    string        `json:"category" binding:"required,productcategory"`
	Type        string        `json:"type" binding:"required"`
	Sizes       []sizeRequest `json:"sizes" binding:"required,min=1,dive"`
	Images      []string      `json:"images" binding:"omitempty,max=5"`
	Description string        `json:"description"`
	Ingredients []string      `json:"ingredients"`
	InStock     *bool         `json:"inStock"`
}

type updateProductRequest struct {
	Name        *string       `json:"name"`
	Category    *string       `json:"category" binding:"omitempty,productcategory"`
	Type        *string       `json:"type"`
	Sizes       []sizeRequest `json:"sizes" binding:"omitempty,min=1,dive"`
	Images      *[]string     `json:"images" binding:"omitempty,max=5"`
	Description *string       `json:"description"`
	Ingredients *[]string     `json:"ingredients"`
	InStock     *bool         `json:"inStock"`
}

func toSizes(in []sizeRequest) []product.Size {
	sizes := make([]product.Size, len(in))
	for i, s := range in {
		sizes[i] = product.Size{Value: s.Value, Price: s.Price}
	}
	return sizes
}

func (a *api) listProducts(c *gin.Context) {
	products, err := a.deps.Products.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (a *api) getProduct(c *gin.Context) {
	p, err := a.deps.Products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": p})
}

func (a *api) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid product payload")
		return
	}

	p, err := a.deps.Products.Create(c.Request.Context(), product.CreateInput{
		ID:          req.ID,
		Name:        req.Name,
		Category:    product.Category(req.Category),
		Type:        req.Type,
		Sizes:       toSizes(req.Sizes),
		Images:      req.Images,
		Description: req.Description,
		Ingredients: req.Ingredients,
		InStock:     req.InStock,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": p})
}

func (a *api) updateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid product payload")
		return
	}

	input := product.UpdateInput{
		Name:        req.Name,
		Type:        req.Type,
		Images:      req.Images,
		Description: req.Description,
		Ingredients: req.Ingredients,
		InStock:     req.InStock,
	}
	if req.Category != nil {
		cat := product.Category(*req.Category)
		input.Category = &cat
	}
	if req.Sizes != nil {
		input.Sizes = toSizes(req.Sizes)
	}

	p, err := a.deps.Products.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": p})
}

func (a *api) deleteProduct(c *gin.Context) {
	if err := a.deps.Products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
