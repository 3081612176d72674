package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/app/services"
	"github.com/yigit/unirecords/internal/middleware"
	"github.com/yigit/unirecords/internal/pkg/helpers"
)

// CourseController handles course, enrollment and exam operations
type CourseController struct {
	recordsService *services.RecordsService
}

// NewCourseController creates a new CourseController
func NewCourseController(recordsService *services.RecordsService) *CourseController {
	return &CourseController{
		recordsService: recordsService,
	}
}

// CreateCourse handles course creation
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown department"
// @Failure 409 {object} dto.ErrorResponse "Course id already exists"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	course, err := c.recordsService.CreateCourse(ctx.Request.Context(), req.ID, req.Name, req.DepartmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course))
}

// GetCourseByID retrieves a course by ID
// @Summary Get course by ID
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := helpers.ParseIDParam(ctx, "id")
	if !ok {
		middleware.HandleInvalidParam(ctx, "id")
		return
	}

	course, err := c.recordsService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// CreateEnrollment enrolls a student in a course
// @Summary Enroll a student in a course
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body dto.CreateEnrollmentRequest true "Enrollment information"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown student or course"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled or enrollment id exists"
// @Router /enrollments [post]
func (c *CourseController) CreateEnrollment(ctx *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	enrollment, err := c.recordsService.CreateEnrollment(ctx.Request.Context(), req.ID, req.StudentID, req.CourseID, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromEnrollment(enrollment)))
}

// CreateExam schedules an exam for a course
// @Summary Schedule an exam
// @Tags exams
// @Accept json
// @Produce json
// @Param request body dto.CreateExamRequest true "Exam information"
// @Success 201 {object} dto.APIResponse{data=dto.ExamResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data, non-positive maxMarks or unknown course"
// @Failure 409 {object} dto.ErrorResponse "Exam id already exists"
// @Router /exams [post]
func (c *CourseController) CreateExam(ctx *gin.Context) {
	var req dto.CreateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	exam, err := c.recordsService.CreateExam(ctx.Request.Context(), req.ID, req.CourseID, date, req.MaxMarks)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromExam(exam)))
}
