package handler

import (
	"net/http"

	"talentgate/internal/contract"
	"talentgate/internal/domain/entity"
	"talentgate/internal/utils"
	"talentgate/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type JobService interface {
	CreateJob(actor *entity.Admin, req *contract.CreateJobRequest) (*entity.Job, apierror.ErrorResponse)
	UpdateJob(actor *entity.Admin, jobID string, req *contract.UpdateJobRequest) (*entity.Job, apierror.ErrorResponse)
	DeleteJob(actor *entity.Admin, jobID string) apierror.ErrorResponse
	GetJob(actor *entity.Admin, jobID string) (*entity.Job, apierror.ErrorResponse)
	GetJobs(actor *entity.Admin, status string) ([]*entity.Job, apierror.ErrorResponse)
	GetPublicJobs(companyID string) ([]*entity.Job, *entity.Company, apierror.ErrorResponse)
	GetPublicJob(jobID string) (*entity.Job, apierror.ErrorResponse)
}

type DefaultJobRoute struct {
	JobService JobService
}

func NewJobDefault(jobService JobService) *DefaultJobRoute {
	return &DefaultJobRoute{JobService: jobService}
}

func (j *DefaultJobRoute) GetJobs(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	jobs, apierr := j.JobService.GetJobs(admin, c.QueryParam("status"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"jobs": jobs})
}

func (j *DefaultJobRoute) GetJob(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	job, apierr := j.JobService.GetJob(admin, c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, job)
}

func (j *DefaultJobRoute) CreateJob(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreateJobRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	job, apierr := j.JobService.CreateJob(admin, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, job)
}

func (j *DefaultJobRoute) UpdateJob(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.UpdateJobRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	job, apierr := j.JobService.UpdateJob(admin, c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, job)
}

func (j *DefaultJobRoute) DeleteJob(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if apierr := j.JobService.DeleteJob(admin, c.Param("id")); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetPublicJobs serves a company's career page board. No auth.
func (j *DefaultJobRoute) GetPublicJobs(c echo.Context) error {
	jobs, company, apierr := j.JobService.GetPublicJobs(c.Param("companyId"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"company": echo.Map{
			"id":           company.ID,
			"company_name": company.CompanyName,
		},
		"jobs": jobs,
	})
}

func (j *DefaultJobRoute) GetPublicJob(c echo.Context) error {
	job, apierr := j.JobService.GetPublicJob(c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, job)
}
