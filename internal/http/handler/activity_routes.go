package handler

import (
	"net/http"

	"talentgate/internal/domain/entity"
	"talentgate/internal/utils"
	"talentgate/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type ActivityService interface {
	GetCompanyLogs(admin *entity.Admin, filter entity.ActivityLogFilter, rawLimit string) ([]*entity.ActivityLog, apierror.ErrorResponse)
	GetEntityLogs(admin *entity.Admin, entityType, entityID string) ([]*entity.ActivityLog, apierror.ErrorResponse)
}

type DefaultActivityRoute struct {
	ActivityService ActivityService
}

func NewActivityDefault(activityService ActivityService) *DefaultActivityRoute {
	return &DefaultActivityRoute{ActivityService: activityService}
}

func (r *DefaultActivityRoute) GetLogs(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	filter := entity.ActivityLogFilter{
		ActionType: c.QueryParam("action_type"),
		EntityType: c.QueryParam("entity_type"),
		DateFrom:   c.QueryParam("date_from"),
		DateTo:     c.QueryParam("date_to"),
	}

	logs, apierr := r.ActivityService.GetCompanyLogs(admin, filter, c.QueryParam("limit"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"logs": logs})
}

func (r *DefaultActivityRoute) GetEntityLogs(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	logs, apierr := r.ActivityService.GetEntityLogs(admin, c.Param("entityType"), c.Param("entityId"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"logs": logs})
}
