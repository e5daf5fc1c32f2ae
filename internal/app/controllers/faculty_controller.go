package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schooldirectory/internal/app/filters"
	"github.com/yigit/schooldirectory/internal/app/models/dto"
	"github.com/yigit/schooldirectory/internal/app/services"
	"github.com/yigit/schooldirectory/internal/middleware"
	"github.com/yigit/schooldirectory/internal/pkg/helpers"
)

// FacultyController handles faculty-related operations
type FacultyController struct {
	facultyService services.FacultyService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService services.FacultyService) *FacultyController {
	return &FacultyController{
		facultyService: facultyService,
	}
}

// ListFaculties lists faculties across all schools
// @Summary List faculties
// @Description Returns one page of faculties ordered by id
// @Tags faculties
// @Produce json
// @Param skip query int false "Number of records to skip" default(0) minimum(0)
// @Param limit query int false "Max number of records to return" default(100) minimum(1) maximum(500)
// @Param school_id query string false "Only faculties of this school"
// @Param search query string false "Substring of name or code, case-insensitive"
// @Success 200 {object} dto.APIResponse{data=[]dto.FacultySummary,pagination=dto.PaginationInfo} "Faculties retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculties [get]
func (c *FacultyController) ListFaculties(ctx *gin.Context) {
	skip, limit, err := helpers.ParseWindowParams(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filter := filters.FacultyFilter{
		Skip:     skip,
		Limit:    limit,
		SchoolID: ctx.Query("school_id"),
		Search:   ctx.Query("search"),
	}

	faculties, total, err := c.facultyService.ListFaculties(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	summaries := dto.NewFacultySummaries(faculties)
	ctx.JSON(http.StatusOK, dto.NewListResponse(
		summaries,
		helpers.NewPaginationInfo(skip, limit, total, len(summaries)),
		"Faculties retrieved successfully",
	))
}

// GetFaculty retrieves a faculty by ID
// @Summary Get faculty details
// @Tags faculties
// @Produce json
// @Param id path string true "Faculty ID"
// @Success 200 {object} dto.APIResponse{data=models.Faculty} "Faculty retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Failure 429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculties/{id} [get]
func (c *FacultyController) GetFaculty(ctx *gin.Context) {
	faculty, err := c.facultyService.GetFaculty(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(faculty, "Faculty retrieved successfully"))
}
