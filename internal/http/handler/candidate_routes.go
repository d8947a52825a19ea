package handler

import (
	"net/http"

	"talentgate/internal/contract"
	"talentgate/internal/domain/entity"
	"talentgate/internal/service"
	"talentgate/internal/utils"
	"talentgate/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type SearchService interface {
	Search(actor *entity.Admin, params service.SearchParams) ([]*entity.Application, apierror.ErrorResponse)
}

type PortalService interface {
	CheckStatus(req *contract.CandidateStatusRequest) (*service.PortalApplication, apierror.ErrorResponse)
	GetApplications(req *contract.CandidateApplicationsRequest) ([]*service.PortalApplication, apierror.ErrorResponse)
}

type DefaultCandidateRoute struct {
	SearchService SearchService
	PortalService PortalService
}

func NewCandidateDefault(searchService SearchService, portalService PortalService) *DefaultCandidateRoute {
	return &DefaultCandidateRoute{
		SearchService: searchService,
		PortalService: portalService,
	}
}

// Search is the recruiter-side candidate search across the whole tenant.
func (r *DefaultCandidateRoute) Search(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	params := service.SearchParams{
		Keyword:         c.QueryParam("keyword"),
		MinExperience:   c.QueryParam("min_experience"),
		MaxExperience:   c.QueryParam("max_experience"),
		CurrentPosition: c.QueryParam("current_position"),
		Status:          c.QueryParam("status"),
		HasPortfolio:    c.QueryParam("has_portfolio") == "true",
		HasLinkedIn:     c.QueryParam("has_linkedin") == "true",
	}

	apps, apierr := r.SearchService.Search(admin, params)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"candidates": apps})
}

// CheckStatus is the public candidate-portal lookup: email + job.
func (r *DefaultCandidateRoute) CheckStatus(c echo.Context) error {
	var req contract.CandidateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	app, apierr := r.PortalService.CheckStatus(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, app)
}

// MyApplications lists everything a candidate submitted under one email.
func (r *DefaultCandidateRoute) MyApplications(c echo.Context) error {
	var req contract.CandidateApplicationsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	apps, apierr := r.PortalService.GetApplications(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"applications": apps})
}
