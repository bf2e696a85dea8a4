package v1

import (
	"net/http"
	"strconv"
	"strings"

	"codev-directory-backend/internal/delivery/http/response"
	"codev-directory-backend/internal/domain"
	"codev-directory-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CodevHandler struct {
	codevUC domain.CodevUsecase
}

// NewCodevHandler registers directory routes
func NewCodevHandler(r *gin.RouterGroup, codevUC domain.CodevUsecase) {
	handler := &CodevHandler{codevUC: codevUC}

	codevs := r.Group("/codevs")
	{
		codevs.GET("", handler.List)
		codevs.GET("/filter-options", handler.GetFilterOptions)
		codevs.GET("/export", handler.Export)
		codevs.GET("/:id", handler.GetDetails)
	}
}

// List godoc
// @Summary      List ranked codevs
// @Description  Returns the directory ordered by badge level, badge count, profile image, work experience and years of experience, then filtered
// @Tags         codevs
// @Produce      json
// @Param        positions                query     string  false  "Comma-separated display positions"
// @Param        projects                 query     string  false  "Comma-separated project IDs"
// @Param        availability             query     string  false  "Comma-separated internal statuses (matched upper-cased)"
// @Param        active_status            query     string  false  "Comma-separated: active, inactive"
// @Param        filter_admin_and_failed  query     bool    false  "Hide admins and failed/applying applicants (default: true)"
// @Param        page                     query     int     false  "Page number (default: 1)"
// @Param        page_size                query     int     false  "Items per page (max: 100)"
// @Success      200  {object}  response.Response{data=domain.PaginatedResult[domain.RankedCodev]}
// @Failure      400  {object}  response.Response
// @Router       /codevs [get]
func (h *CodevHandler) List(c *gin.Context) {
	query, err := parseListQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	result, err := h.codevUC.ListCodevs(c.Request.Context(), query)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Codevs retrieved", result)
}

// GetDetails godoc
// @Summary      Get codev
// @Description  Returns one codev with its badge rank and position in the unfiltered directory
// @Tags         codevs
// @Produce      json
// @Param        id   path      string  true  "Codev ID"
// @Success      200  {object}  response.Response{data=domain.RankedCodev}
// @Failure      404  {object}  response.Response
// @Router       /codevs/{id} [get]
func (h *CodevHandler) GetDetails(c *gin.Context) {
	card, err := h.codevUC.GetCodev(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Codev retrieved", card)
}

// GetFilterOptions godoc
// @Summary      Directory filter options
// @Description  Distinct positions, statuses and projects for the filter UI
// @Tags         codevs
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.CodevFilterOptions}
// @Router       /codevs/filter-options [get]
func (h *CodevHandler) GetFilterOptions(c *gin.Context) {
	opts, err := h.codevUC.GetFilterOptions(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Filter options retrieved", opts)
}

// Export godoc
// @Summary      Export ranked codevs
// @Description  Downloads the ranked, filtered directory as Excel or CSV
// @Tags         codevs
// @Produce      application/octet-stream
// @Param        format   query     string  false  "Export format (xlsx, csv). Default: xlsx"
// @Param        columns  query     string  false  "Comma-separated column names to include"
// @Param        ...      query     string  false  "Same filters as List"
// @Success      200  {file}    binary
// @Failure      400  {object}  response.Response
// @Router       /codevs/export [get]
func (h *CodevHandler) Export(c *gin.Context) {
	query, err := parseListQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	data, filename, err := h.codevUC.ExportCodevs(c.Request.Context(), domain.CodevExportRequest{
		Query:   query,
		Columns: queryList(c, "columns"),
		Format:  c.DefaultQuery("format", "xlsx"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if strings.HasSuffix(filename, ".csv") {
		contentType = "text/csv"
	}
	response.File(c, filename, contentType, data)
}

func parseListQuery(c *gin.Context) (domain.CodevListQuery, error) {
	query := domain.CodevListQuery{
		Filter: domain.CodevFilter{
			Positions:    queryList(c, "positions"),
			Projects:     queryList(c, "projects"),
			Availability: queryList(c, "availability"),
			ActiveStatus: queryList(c, "active_status"),
		},
		FilterAdminAndFailed: true,
	}

	if v := c.Query("filter_admin_and_failed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return query, apperror.BadRequest("filter_admin_and_failed must be true or false")
		}
		query.FilterAdminAndFailed = b
	}
	if v := c.Query("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return query, apperror.BadRequest("page must be a number")
		}
		query.Page = page
	}
	if v := c.Query("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return query, apperror.BadRequest("page_size must be a number")
		}
		query.PageSize = size
	}
	return query, nil
}

// queryList accepts both repeated keys and comma-separated values.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, v := range strings.Split(raw, ",") {
			if v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
