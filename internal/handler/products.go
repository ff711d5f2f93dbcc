package handler

import (
	"net/http"

	"stockbook/internal/apierror"
	"stockbook/internal/dto"
	"stockbook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductsHandler struct{ svc service.InventoryService }

func NewProductsHandler(svc service.InventoryService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

func (h *ProductsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListProducts(c.Request.Context()))
}

func (h *ProductsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	p, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.AddProduct(c.Request.Context(), service.ProductInput{
		Name:         req.Name,
		Category:     req.Category,
		SupplierName: req.SupplierName,
		BuyingPrice:  req.BuyingPrice,
		SellingPrice: req.SellingPrice,
		Stock:        req.Stock,
		ImageURI:     req.ImageURI,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.UpdateProduct(c.Request.Context(), id, service.ProductUpdate{
		Name:         req.Name,
		Category:     req.Category,
		SupplierName: req.SupplierName,
		BuyingPrice:  req.BuyingPrice,
		SellingPrice: req.SellingPrice,
		Stock:        req.Stock,
		ImageURI:     req.ImageURI,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
