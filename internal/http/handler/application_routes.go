package handler

import (
	"mime/multipart"
	"net/http"

	"talentgate/internal/contract"
	"talentgate/internal/domain/entity"
	"talentgate/internal/utils"
	"talentgate/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type ApplicationService interface {
	Submit(jobID string, req *contract.SubmitApplicationRequest, cv, portfolio *multipart.FileHeader) (*entity.Application, apierror.ErrorResponse)
	AddManualCandidate(actor *entity.Admin, req *contract.ManualCandidateRequest, cv *multipart.FileHeader) (*entity.Application, apierror.ErrorResponse)
	GetApplications(actor *entity.Admin, filter entity.ApplicationFilter) ([]*entity.Application, apierror.ErrorResponse)
	GetApplication(actor *entity.Admin, id string) (*entity.Application, apierror.ErrorResponse)
	UpdateStatus(actor *entity.Admin, id string, req *contract.UpdateStatusRequest) (*entity.Application, apierror.ErrorResponse)
	TrackCVView(actor *entity.Admin, id string) (*entity.Application, apierror.ErrorResponse)
	DeleteApplication(actor *entity.Admin, id string) apierror.ErrorResponse
	BulkDelete(actor *entity.Admin, req *contract.BulkDeleteRequest) (int, apierror.ErrorResponse)
	AIShortlist(actor *entity.Admin, jobID string, req *contract.AIShortlistRequest) ([]*entity.Application, apierror.ErrorResponse)
	Reanalyze(actor *entity.Admin, id string) (*entity.Application, apierror.ErrorResponse)
	UploadCV(fileHeader *multipart.FileHeader) (string, apierror.ErrorResponse)
	UploadPortfolio(fileHeader *multipart.FileHeader) (string, apierror.ErrorResponse)
}

type DefaultApplicationRoute struct {
	AppService ApplicationService
}

func NewApplicationDefault(appService ApplicationService) *DefaultApplicationRoute {
	return &DefaultApplicationRoute{AppService: appService}
}

// Submit is the public application form endpoint. Multipart: the fields
// plus a "cv" file and an optional "portfolio" file.
func (a *DefaultApplicationRoute) Submit(c echo.Context) error {
	var req contract.SubmitApplicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	cv, err := c.FormFile("cv")
	if err != nil {
		return c.JSON(apierror.NoFileError.Code(), apierror.NoFileError)
	}

	// Optional
	portfolio, _ := c.FormFile("portfolio")

	app, apierr := a.AppService.Submit(c.Param("jobId"), &req, cv, portfolio)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":        "Application submitted successfully",
		"application_id": app.ID,
	})
}

func (a *DefaultApplicationRoute) AddManualCandidate(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.ManualCandidateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	cv, _ := c.FormFile("cv")

	app, apierr := a.AppService.AddManualCandidate(admin, &req, cv)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, app)
}

func (a *DefaultApplicationRoute) GetApplications(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	filter := entity.ApplicationFilter{
		JobID:    c.QueryParam("job_id"),
		Status:   c.QueryParam("status"),
		DateFrom: c.QueryParam("date_from"),
		DateTo:   c.QueryParam("date_to"),
	}

	apps, apierr := a.AppService.GetApplications(admin, filter)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"applications": apps})
}

func (a *DefaultApplicationRoute) GetApplication(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	app, apierr := a.AppService.GetApplication(admin, c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, app)
}

func (a *DefaultApplicationRoute) UpdateStatus(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	app, apierr := a.AppService.UpdateStatus(admin, c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, app)
}

// TrackCVView is called by the dashboard when a recruiter opens a CV.
func (a *DefaultApplicationRoute) TrackCVView(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	app, apierr := a.AppService.TrackCVView(admin, c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, app)
}

func (a *DefaultApplicationRoute) DeleteApplication(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if apierr := a.AppService.DeleteApplication(admin, c.Param("id")); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *DefaultApplicationRoute) BulkDelete(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.BulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	deleted, apierr := a.AppService.BulkDelete(admin, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": deleted})
}

func (a *DefaultApplicationRoute) AIShortlist(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.AIShortlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	apps, apierr := a.AppService.AIShortlist(admin, c.Param("jobId"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"applications": apps})
}

func (a *DefaultApplicationRoute) Reanalyze(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	app, apierr := a.AppService.Reanalyze(admin, c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, app)
}

func (a *DefaultApplicationRoute) UploadCV(c echo.Context) error {
	return a.upload(c, a.AppService.UploadCV)
}

func (a *DefaultApplicationRoute) UploadPortfolio(c echo.Context) error {
	return a.upload(c, a.AppService.UploadPortfolio)
}

func (a *DefaultApplicationRoute) upload(c echo.Context, store func(*multipart.FileHeader) (string, apierror.ErrorResponse)) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(apierror.NoFileError.Code(), apierror.NoFileError)
	}

	url, apierr := store(file)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
