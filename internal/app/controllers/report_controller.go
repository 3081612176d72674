package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/app/services"
	"github.com/yigit/unirecords/internal/middleware"
)

// ReportController serves the aggregate queries
type ReportController struct {
	recordsService *services.RecordsService
}

// NewReportController creates a new ReportController
func NewReportController(recordsService *services.RecordsService) *ReportController {
	return &ReportController{
		recordsService: recordsService,
	}
}

// GetDepartmentStudentCounts maps department names to student counts
// @Summary Student count per department
// @Tags reports
// @Produce json
// @Success 200 {object} dto.APIResponse{data=map[string]int}
// @Router /reports/department-student-counts [get]
func (c *ReportController) GetDepartmentStudentCounts(ctx *gin.Context) {
	counts, err := c.recordsService.StudentCountByDepartment(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(counts))
}

// GetStudentsWithMultipleCourses lists students enrolled in more than one course
// @Summary Students with multiple courses
// @Tags reports
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.StudentCourseCount}
// @Router /reports/students-with-multiple-courses [get]
func (c *ReportController) GetStudentsWithMultipleCourses(ctx *gin.Context) {
	students, err := c.recordsService.StudentsWithMultipleCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}
