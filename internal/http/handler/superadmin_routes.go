package handler

import (
	"net/http"

	"talentgate/internal/contract"
	"talentgate/internal/domain/entity"
	"talentgate/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type SuperAdminService interface {
	GetPlatformStats() (*contract.PlatformStats, apierror.ErrorResponse)
	GetCompanies() ([]*contract.CompanyOverview, apierror.ErrorResponse)
	GetCompany(companyID string) (*entity.Company, apierror.ErrorResponse)
	UpdateSubscription(companyID string, req *contract.UpdateSubscriptionRequest) (*entity.Company, apierror.ErrorResponse)
}

type PlatformActivityService interface {
	GetPlatformLogs(filter entity.ActivityLogFilter, rawLimit string) ([]*entity.ActivityLog, apierror.ErrorResponse)
}

type DefaultSuperAdminRoute struct {
	SuperAdminService SuperAdminService
	ActivityService   PlatformActivityService
}

func NewSuperAdminDefault(superAdminService SuperAdminService, activityService PlatformActivityService) *DefaultSuperAdminRoute {
	return &DefaultSuperAdminRoute{
		SuperAdminService: superAdminService,
		ActivityService:   activityService,
	}
}

func (r *DefaultSuperAdminRoute) GetStats(c echo.Context) error {
	stats, apierr := r.SuperAdminService.GetPlatformStats()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, stats)
}

func (r *DefaultSuperAdminRoute) GetCompanies(c echo.Context) error {
	companies, apierr := r.SuperAdminService.GetCompanies()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"companies": companies})
}

func (r *DefaultSuperAdminRoute) GetCompany(c echo.Context) error {
	company, apierr := r.SuperAdminService.GetCompany(c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, company)
}

func (r *DefaultSuperAdminRoute) UpdateSubscription(c echo.Context) error {
	var req contract.UpdateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	company, apierr := r.SuperAdminService.UpdateSubscription(c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, company)
}

func (r *DefaultSuperAdminRoute) GetLogs(c echo.Context) error {
	filter := entity.ActivityLogFilter{
		CompanyID:  c.QueryParam("company_id"),
		ActionType: c.QueryParam("action_type"),
		EntityType: c.QueryParam("entity_type"),
		DateFrom:   c.QueryParam("date_from"),
		DateTo:     c.QueryParam("date_to"),
	}

	logs, apierr := r.ActivityService.GetPlatformLogs(filter, c.QueryParam("limit"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"logs": logs})
}
