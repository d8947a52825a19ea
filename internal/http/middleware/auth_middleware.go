package middleware

import (
	"net/http"

	"talentgate/internal/domain/entity"
	"talentgate/internal/utils"
	"talentgate/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type AdminRepository interface {
	FindByID(id string) (*entity.Admin, error)
}

type SuperAdminRepository interface {
	FindByID(id string) (*entity.SuperAdmin, error)
}

type AuthMiddlewareConfig struct {
	AdminRepo      AdminRepository
	SuperAdminRepo SuperAdminRepository
	Tokens         *utils.TokenIssuer
}

// RequireAdmin verifies the bearer token, resolves the admin row and
// stores it under the "admin" context key. The token's company claim is
// cross-checked against the row so a stale token cannot reach another
// tenant after a data migration.
func RequireAdmin(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := cfg.Tokens.VerifyAdminToken(utils.BearerToken(c))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			admin, err := cfg.AdminRepo.FindByID(claims.AdminID)
			if err != nil {
				log.Errorf("failed to fetch admin %s: %v", claims.AdminID, err)
				return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
			}

			if admin == nil {
				// Admin deleted in DB but still holds a valid token.
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			if admin.CompanyID.String() != claims.CompanyID {
				log.Warnf("token company claim %s does not match admin %s", claims.CompanyID, admin.ID)
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			c.Set("admin", admin)
			return next(c)
		}
	}
}

// RequireSuperAdmin is the platform-operator counterpart of RequireAdmin.
func RequireSuperAdmin(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := cfg.Tokens.VerifySuperAdminToken(utils.BearerToken(c))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			sa, err := cfg.SuperAdminRepo.FindByID(claims.SuperAdminID)
			if err != nil {
				log.Errorf("failed to fetch super admin %s: %v", claims.SuperAdminID, err)
				return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
			}

			if sa == nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			c.Set("super_admin", sa)
			return next(c)
		}
	}
}

// EmbedTenantGuard protects routes mounted under the embedded dashboard.
// Every request must carry the company_id the host page was configured
// with, and it must match the signed-in admin's tenant. On mismatch the
// handler never runs.
//
// Runs after RequireAdmin.
func EmbedTenantGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			embedCompanyID := c.QueryParam("company_id")
			if embedCompanyID == "" {
				embedCompanyID = c.Request().Header.Get("X-Embed-Company")
			}
			if embedCompanyID == "" {
				return c.JSON(apierror.EmbedMisconfiguredError.Code(), apierror.EmbedMisconfiguredError)
			}

			admin, cerr := utils.GetAdminFromContext(c)
			if cerr != nil {
				return c.JSON(cerr.Code(), cerr)
			}

			if admin.CompanyID.String() != embedCompanyID {
				log.Warnf("embed tenant mismatch: admin %s belongs to %s, embed claims %s",
					admin.ID, admin.CompanyID, embedCompanyID)
				return c.JSON(apierror.EmbedTenantMismatch.Code(), apierror.EmbedTenantMismatch)
			}
			return next(c)
		}
	}
}
