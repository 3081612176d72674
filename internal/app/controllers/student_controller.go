package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/app/services"
	"github.com/yigit/unirecords/internal/middleware"
	"github.com/yigit/unirecords/internal/pkg/helpers"
)

// StudentController handles student-related operations
type StudentController struct {
	recordsService *services.RecordsService
}

// NewStudentController creates a new StudentController
func NewStudentController(recordsService *services.RecordsService) *StudentController {
	return &StudentController{
		recordsService: recordsService,
	}
}

// CreateStudent handles student creation. Without an id the next counter value is used.
// @Summary Create a student
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown department"
// @Failure 409 {object} dto.ErrorResponse "Student id already exists"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	var (
		student *models.Student
		err     error
	)
	if req.ID != nil {
		student, err = c.recordsService.CreateStudentWithID(ctx.Request.Context(), *req.ID, req.Name, req.DepartmentID)
	} else {
		student, err = c.recordsService.CreateStudent(ctx.Request.Context(), req.Name, req.DepartmentID)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(student))
}

// GetStudentByID retrieves a student by ID
// @Summary Get student by ID
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := helpers.ParseIDParam(ctx, "id")
	if !ok {
		middleware.HandleInvalidParam(ctx, "id")
		return
	}

	student, err := c.recordsService.GetStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// GetTotalMarks returns the sum of maximum marks over the student's courses
// @Summary Total marks for a student
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.TotalMarksResponse}
// @Router /students/{id}/total-marks [get]
func (c *StudentController) GetTotalMarks(ctx *gin.Context) {
	id, ok := helpers.ParseIDParam(ctx, "id")
	if !ok {
		middleware.HandleInvalidParam(ctx, "id")
		return
	}

	total, err := c.recordsService.TotalMarksForStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.TotalMarksResponse{StudentID: id, TotalMarks: total}))
}
