package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/app/services"
	"github.com/yigit/unirecords/internal/middleware"
	"github.com/yigit/unirecords/internal/pkg/helpers"
)

// FacultyController handles faculty-related operations
type FacultyController struct {
	recordsService *services.RecordsService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(recordsService *services.RecordsService) *FacultyController {
	return &FacultyController{
		recordsService: recordsService,
	}
}

// CreateFaculty handles faculty creation
// @Summary Create a faculty member
// @Tags faculty
// @Accept json
// @Produce json
// @Param request body dto.CreateFacultyRequest true "Faculty information"
// @Success 201 {object} dto.APIResponse{data=models.Faculty}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown department"
// @Failure 409 {object} dto.ErrorResponse "Faculty id already exists"
// @Router /faculty [post]
func (c *FacultyController) CreateFaculty(ctx *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	faculty, err := c.recordsService.CreateFaculty(ctx.Request.Context(), req.ID, req.Name, req.DepartmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(faculty))
}

// GetFacultyByID retrieves a faculty member by ID
// @Summary Get faculty member by ID
// @Tags faculty
// @Produce json
// @Param id path int true "Faculty ID"
// @Success 200 {object} dto.APIResponse{data=models.Faculty}
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /faculty/{id} [get]
func (c *FacultyController) GetFacultyByID(ctx *gin.Context) {
	id, ok := helpers.ParseIDParam(ctx, "id")
	if !ok {
		middleware.HandleInvalidParam(ctx, "id")
		return
	}

	faculty, err := c.recordsService.GetFaculty(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(faculty))
}
