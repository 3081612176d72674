package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/app/services"
	"github.com/yigit/unirecords/internal/middleware"
	"github.com/yigit/unirecords/internal/pkg/helpers"
)

// DepartmentController handles department-related operations
type DepartmentController struct {
	recordsService *services.RecordsService
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(recordsService *services.RecordsService) *DepartmentController {
	return &DepartmentController{
		recordsService: recordsService,
	}
}

// CreateDepartment handles department creation
// @Summary Create a new department
// @Tags departments
// @Accept json
// @Produce json
// @Param request body dto.CreateDepartmentRequest true "Department information"
// @Success 201 {object} dto.APIResponse{data=models.Department} "Department created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Department id already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments [post]
func (c *DepartmentController) CreateDepartment(ctx *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	department, err := c.recordsService.CreateDepartment(ctx.Request.Context(), req.ID, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(department))
}

// GetDepartmentByID retrieves a department by ID
// @Summary Get department by ID
// @Tags departments
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} dto.APIResponse{data=models.Department} "Department retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid department ID"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Router /departments/{id} [get]
func (c *DepartmentController) GetDepartmentByID(ctx *gin.Context) {
	id, ok := helpers.ParseIDParam(ctx, "id")
	if !ok {
		middleware.HandleInvalidParam(ctx, "id")
		return
	}

	department, err := c.recordsService.GetDepartment(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(department))
}

// GetDepartmentName returns only the name of a department
// @Summary Get department name
// @Tags departments
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} dto.APIResponse{data=dto.DepartmentNameResponse}
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Router /departments/{id}/name [get]
func (c *DepartmentController) GetDepartmentName(ctx *gin.Context) {
	id, ok := helpers.ParseIDParam(ctx, "id")
	if !ok {
		middleware.HandleInvalidParam(ctx, "id")
		return
	}

	name, err := c.recordsService.DepartmentName(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.DepartmentNameResponse{DepartmentID: id, Name: name}))
}

// GetAllDepartments retrieves one page of departments
// @Summary List departments
// @Tags departments
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size (max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.DepartmentListResponse}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments [get]
func (c *DepartmentController) GetAllDepartments(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	departments, total, err := c.recordsService.ListDepartments(ctx.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.DepartmentListResponse{
		Departments: departments,
		Pagination:  helpers.NewPaginationInfo(total, page, limit),
	}))
}
