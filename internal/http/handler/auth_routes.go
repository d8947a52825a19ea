package handler

import (
	"net/http"

	"talentgate/internal/contract"
	"talentgate/internal/domain/entity"
	"talentgate/internal/utils"
	"talentgate/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type AuthService interface {
	Register(req *contract.RegisterRequest) (*contract.AuthResponse, apierror.ErrorResponse)
	Login(req *contract.LoginRequest) (*contract.AuthResponse, apierror.ErrorResponse)
	SuperAdminLogin(req *contract.LoginRequest) (*contract.SuperAdminAuthResponse, apierror.ErrorResponse)
	VerifyEmbedTenant(admin *entity.Admin, embedCompanyID string) apierror.ErrorResponse
}

type DefaultAuthRoute struct {
	AuthService AuthService
}

func NewAuthDefault(authService AuthService) *DefaultAuthRoute {
	return &DefaultAuthRoute{AuthService: authService}
}

func (a *DefaultAuthRoute) Register(c echo.Context) error {
	var req contract.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	resp, apierr := a.AuthService.Register(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (a *DefaultAuthRoute) Login(c echo.Context) error {
	var req contract.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	resp, apierr := a.AuthService.Login(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (a *DefaultAuthRoute) SuperAdminLogin(c echo.Context) error {
	var req contract.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	resp, apierr := a.AuthService.SuperAdminLogin(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetMe returns the signed-in admin. The dashboard calls this on mount
// to turn a persisted token back into an identity.
func (a *DefaultAuthRoute) GetMe(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}
	return c.JSON(http.StatusOK, echo.Map{"admin": admin})
}

// VerifyEmbed is the explicit handshake the embedded dashboard performs
// before rendering anything.
func (a *DefaultAuthRoute) VerifyEmbed(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if apierr := a.AuthService.VerifyEmbedTenant(admin, c.QueryParam("company_id")); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"verified": true, "company_id": admin.CompanyID})
}
