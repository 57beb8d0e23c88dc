package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hare-edu/hare-backend/internal/app/models"
	"github.com/hare-edu/hare-backend/internal/app/models/dto"
	"github.com/hare-edu/hare-backend/internal/app/services"
	"github.com/hare-edu/hare-backend/internal/middleware"
)

// CatalogController handles one reference catalog. The same controller
// type serves all four catalogs, each instance bound to its kind at route
// registration.
type CatalogController struct {
	catalogService *services.CatalogService
	kind           models.CatalogKind
	resource       string
}

// NewCatalogController creates a CatalogController bound to a catalog kind
func NewCatalogController(catalogService *services.CatalogService, kind models.CatalogKind, resource string) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		kind:           kind,
		resource:       resource,
	}
}

// CreateItem handles catalog entry creation
// @Summary Create a catalog entry
// @Description Creates an entry in one of the reference catalogs (document types, enrollment statuses, schools, municipalities)
// @Tags catalogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CatalogItemRequest true "Entry name"
// @Success 201 {object} dto.APIResponse{data=models.CatalogItem} "Entry created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 409 {object} dto.ErrorResponse "Name already exists in this catalog"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /document-types [post]
func (c *CatalogController) CreateItem(ctx *gin.Context) {
	req, ok := c.bindItemRequest(ctx)
	if !ok {
		return
	}

	item, err := c.catalogService.CreateItem(ctx, c.kind, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      item,
		Timestamp: time.Now(),
	})
}

// GetItemByID retrieves a catalog entry by ID
// @Summary Get a catalog entry
// @Tags catalogs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.CatalogItem} "Entry retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid entry ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /document-types/{id} [get]
func (c *CatalogController) GetItemByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, c.resource)
	if !ok {
		return
	}

	item, err := c.catalogService.GetItem(ctx, c.kind, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      item,
		Timestamp: time.Now(),
	})
}

// GetAllItems retrieves all entries of the catalog
// @Summary List catalog entries
// @Tags catalogs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.CatalogItem} "Entries retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /document-types [get]
func (c *CatalogController) GetAllItems(ctx *gin.Context) {
	items, err := c.catalogService.GetAllItems(ctx, c.kind)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}

// UpdateItem renames a catalog entry
// @Summary Rename a catalog entry
// @Tags catalogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID" Format(int64) minimum(1)
// @Param request body dto.CatalogItemRequest true "New name"
// @Success 200 {object} dto.APIResponse{data=models.CatalogItem} "Entry updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Name already exists in this catalog"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /document-types/{id} [put]
func (c *CatalogController) UpdateItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, c.resource)
	if !ok {
		return
	}

	req, ok := c.bindItemRequest(ctx)
	if !ok {
		return
	}

	item, err := c.catalogService.UpdateItem(ctx, c.kind, id, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      item,
		Timestamp: time.Now(),
	})
}

// DeleteItem deletes a catalog entry
// @Summary Delete a catalog entry
// @Tags catalogs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Entry deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid entry ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /document-types/{id} [delete]
func (c *CatalogController) DeleteItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, c.resource)
	if !ok {
		return
	}

	if err := c.catalogService.DeleteItem(ctx, c.kind, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Catalog entry deleted successfully"},
		Timestamp: time.Now(),
	})
}

func (c *CatalogController) bindItemRequest(ctx *gin.Context) (*dto.CatalogItemRequest, bool) {
	var req dto.CatalogItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid catalog entry data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return &req, true
}
