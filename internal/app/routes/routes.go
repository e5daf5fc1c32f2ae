package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/schooldirectory/internal/app/controllers"
	"github.com/yigit/schooldirectory/internal/middleware"
	"github.com/yigit/schooldirectory/internal/pkg/ratelimit"
)

// SetupRouter configures all application routes. limiter may be nil to disable
// rate limiting.
func SetupRouter(
	router *gin.Engine,
	schoolController *controllers.SchoolController,
	facultyController *controllers.FacultyController,
	healthController *controllers.HealthController,
	limiter ratelimit.Limiter,
) {
	health := middleware.RateLimit(limiter, middleware.FixedClass(ratelimit.ClassHealth))
	detail := middleware.RateLimit(limiter, middleware.FixedClass(ratelimit.ClassDetail))
	listing := middleware.RateLimit(limiter, middleware.ListOrSearch)

	router.GET("/", health, healthController.Root)

	// API version group
	v1 := router.Group("/api/v1")
	v1.GET("/health", health, healthController.Health)

	schools := v1.Group("/schools")
	{
		schools.GET("", listing, schoolController.ListSchools)
		schools.POST("", detail, schoolController.CreateSchool)
		schools.GET("/:id", detail, schoolController.GetSchool)
		schools.PUT("/:id", detail, schoolController.UpdateSchool)
		schools.DELETE("/:id", detail, schoolController.DeleteSchool)
		schools.GET("/:id/faculties", detail, schoolController.GetSchoolFaculties)
		schools.GET("/:id/campuses", detail, schoolController.GetSchoolCampuses)
	}

	faculties := v1.Group("/faculties")
	{
		faculties.GET("", listing, facultyController.ListFaculties)
		faculties.GET("/:id", detail, facultyController.GetFaculty)
	}
}
