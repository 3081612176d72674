package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/unirecords/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	departmentController *controllers.DepartmentController,
	facultyController *controllers.FacultyController,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	reportController *controllers.ReportController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	departments := v1.Group("/departments")
	{
		departments.POST("", departmentController.CreateDepartment)
		departments.GET("", departmentController.GetAllDepartments)
		departments.GET("/:id", departmentController.GetDepartmentByID)
		departments.GET("/:id/name", departmentController.GetDepartmentName)
	}

	faculty := v1.Group("/faculty")
	{
		faculty.POST("", facultyController.CreateFaculty)
		faculty.GET("/:id", facultyController.GetFacultyByID)
	}

	students := v1.Group("/students")
	{
		students.POST("", studentController.CreateStudent)
		students.GET("/:id", studentController.GetStudentByID)
		students.GET("/:id/total-marks", studentController.GetTotalMarks)
	}

	courses := v1.Group("/courses")
	{
		courses.POST("", courseController.CreateCourse)
		courses.GET("/:id", courseController.GetCourseByID)
	}

	v1.POST("/enrollments", courseController.CreateEnrollment)
	v1.POST("/exams", courseController.CreateExam)

	reports := v1.Group("/reports")
	{
		reports.GET("/department-student-counts", reportController.GetDepartmentStudentCounts)
		reports.GET("/students-with-multiple-courses", reportController.GetStudentsWithMultipleCourses)
	}
}
