package utils

import (
	"talentgate/internal/domain/entity"
	"talentgate/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// GetAdminFromContext reads the admin the auth middleware stored. Routes
// behind RequireAdmin can rely on it being present.
func GetAdminFromContext(c echo.Context) (*entity.Admin, apierror.ErrorResponse) {
	val := c.Get("admin")
	if val == nil {
		log.Warnf("route %s attempted to read nil admin from context", c.Request().URL)
		return nil, apierror.UnauthorizedError
	}

	admin, ok := val.(*entity.Admin)
	if !ok {
		log.Warnf("expected admin type at 'admin' context key, got %T", val)
		return nil, apierror.InternalServerError
	}
	return admin, nil
}

func GetSuperAdminFromContext(c echo.Context) (*entity.SuperAdmin, apierror.ErrorResponse) {
	val := c.Get("super_admin")
	if val == nil {
		log.Warnf("route %s attempted to read nil super admin from context", c.Request().URL)
		return nil, apierror.UnauthorizedError
	}

	sa, ok := val.(*entity.SuperAdmin)
	if !ok {
		log.Warnf("expected super admin type at 'super_admin' context key, got %T", val)
		return nil, apierror.InternalServerError
	}
	return sa, nil
}
