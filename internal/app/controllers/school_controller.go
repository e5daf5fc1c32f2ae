package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schooldirectory/internal/app/filters"
	"github.com/yigit/schooldirectory/internal/app/models"
	"github.com/yigit/schooldirectory/internal/app/models/dto"
	"github.com/yigit/schooldirectory/internal/app/services"
	"github.com/yigit/schooldirectory/internal/middleware"
	"github.com/yigit/schooldirectory/internal/pkg/helpers"
)

// SchoolController handles school-related operations
type SchoolController struct {
	schoolService services.SchoolService
}

// NewSchoolController creates a new SchoolController
func NewSchoolController(schoolService services.SchoolService) *SchoolController {
	return &SchoolController{
		schoolService: schoolService,
	}
}

// ListSchools lists schools matching the query filters
// @Summary List schools
// @Description Returns one page of schools ordered by id. All filters are optional and combined with AND.
// @Tags schools
// @Produce json
// @Param skip query int false "Number of records to skip" default(0) minimum(0)
// @Param limit query int false "Max number of records to return" default(100) minimum(1) maximum(500)
// @Param code query string false "Exact school code, case-insensitive"
// @Param country query string false "Two-letter country code, case-insensitive"
// @Param type query string false "School type" Enums(public, private)
// @Param verified query bool false "Only verified (true) or unverified (false) schools"
// @Param search query string false "Substring of name or code, case-insensitive"
// @Success 200 {object} dto.APIResponse{data=[]dto.SchoolSummary,pagination=dto.PaginationInfo} "Schools retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schools [get]
func (c *SchoolController) ListSchools(ctx *gin.Context) {
	skip, limit, err := helpers.ParseWindowParams(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	verified, err := helpers.ParseOptionalBool(ctx, "verified")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filter := filters.SchoolFilter{
		Skip:     skip,
		Limit:    limit,
		Code:     ctx.Query("code"),
		Country:  ctx.Query("country"),
		Type:     ctx.Query("type"),
		Verified: verified,
		Search:   ctx.Query("search"),
	}

	schools, total, err := c.schoolService.ListSchools(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	summaries := dto.NewSchoolSummaries(schools)
	ctx.JSON(http.StatusOK, dto.NewListResponse(
		summaries,
		helpers.NewPaginationInfo(skip, limit, total, len(summaries)),
		"Schools retrieved successfully",
	))
}

// GetSchool retrieves a school by ID
// @Summary Get school details
// @Description Returns the school with its campuses and faculties
// @Tags schools
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} dto.APIResponse{data=models.School} "School retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Failure 429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schools/{id} [get]
func (c *SchoolController) GetSchool(ctx *gin.Context) {
	school, err := c.schoolService.GetSchool(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(school, "School retrieved successfully"))
}

// CreateSchool handles school creation
// @Summary Create a school
// @Description Creates a school together with its campuses and faculties in one transaction
// @Tags schools
// @Accept json
// @Produce json
// @Param request body models.SchoolInput true "School with nested campuses and faculties"
// @Success 201 {object} dto.APIResponse{data=models.School} "School created successfully"
// @Failure 400 {object} dto.ErrorResponse "Malformed body or validation failure"
// @Failure 409 {object} dto.ErrorResponse "School id, school code or faculty id already exists"
// @Failure 429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schools [post]
func (c *SchoolController) CreateSchool(ctx *gin.Context) {
	var input models.SchoolInput
	if err := middleware.BindJSON(ctx, &input); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	school, err := c.schoolService.CreateSchool(ctx, &input)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(school, "School created successfully"))
}

// UpdateSchool replaces a school
// @Summary Update a school
// @Description Overwrites every top-level field and replaces both child collections. The path id wins over the body id.
// @Tags schools
// @Accept json
// @Produce json
// @Param id path string true "School ID"
// @Param request body models.SchoolInput true "Full replacement record"
// @Success 200 {object} dto.APIResponse{data=models.School} "School updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Malformed body or validation failure"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Failure 409 {object} dto.ErrorResponse "School code or faculty id already exists"
// @Failure 429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schools/{id} [put]
func (c *SchoolController) UpdateSchool(ctx *gin.Context) {
	var input models.SchoolInput
	if err := middleware.BindJSON(ctx, &input); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	school, err := c.schoolService.UpdateSchool(ctx, ctx.Param("id"), &input)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(school, "School updated successfully"))
}

// DeleteSchool removes a school
// @Summary Delete a school
// @Description Deletes the school and every campus and faculty it owns
// @Tags schools
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteResult} "School deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Failure 429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schools/{id} [delete]
func (c *SchoolController) DeleteSchool(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.schoolService.DeleteSchool(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.DeleteResult{ID: id}, "School '"+id+"' deleted successfully"))
}

// GetSchoolFaculties lists the faculties of a school
// @Summary List faculties of a school
// @Tags schools,faculties
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Faculty} "Faculties retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Failure 429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schools/{id}/faculties [get]
func (c *SchoolController) GetSchoolFaculties(ctx *gin.Context) {
	faculties, err := c.schoolService.GetSchoolFaculties(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(faculties, "Faculties retrieved successfully"))
}

// GetSchoolCampuses lists the campuses of a school
// @Summary List campuses of a school
// @Tags schools,campuses
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Campus} "Campuses retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Failure 429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schools/{id}/campuses [get]
func (c *SchoolController) GetSchoolCampuses(ctx *gin.Context) {
	campuses, err := c.schoolService.GetSchoolCampuses(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(campuses, "Campuses retrieved successfully"))
}
