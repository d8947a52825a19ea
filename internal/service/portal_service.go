package service

import (
	"talentgate/internal/contract"
	"talentgate/internal/domain/entity"
	"talentgate/internal/utils"
	"talentgate/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// PortalService is the candidate-facing status lookup. Candidates have
// no accounts; identity is the email they applied with, and responses
// never leak recruiter-only data (scores, analysis, notes).
type PortalService struct {
	AppRepo  ApplicationRepository
	Validate *validator.Validate
}

func NewPortalService(appRepo ApplicationRepository, validate *validator.Validate) *PortalService {
	return &PortalService{AppRepo: appRepo, Validate: validate}
}

// PortalApplication is the candidate's view of their own application.
type PortalApplication struct {
	ID        string          `json:"id"`
	JobTitle  string          `json:"job_title"`
	Status    string          `json:"status"`
	AppliedAt entity.DateOnly `json:"applied_at"`
}

func (p *PortalService) CheckStatus(req *contract.CandidateStatusRequest) (*PortalApplication, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := p.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	app, err := p.AppRepo.FindByEmailAndJob(req.Email, req.JobID)
	if err != nil {
		log.Errorf("failed to fetch application for %s on job %s: %v", req.Email, req.JobID, err)
		return nil, apierror.InternalServerError
	}
	if app == nil {
		return nil, apierror.ApplicationNotFound
	}
	return toPortalApplication(app), nil
}

func (p *PortalService) GetApplications(req *contract.CandidateApplicationsRequest) ([]*PortalApplication, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := p.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	apps, err := p.AppRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch applications for %s: %v", req.Email, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*PortalApplication, len(apps))
	for i, app := range apps {
		resp[i] = toPortalApplication(app)
	}
	return resp, nil
}

func toPortalApplication(app *entity.Application) *PortalApplication {
	resp := &PortalApplication{
		ID: app.ID.String(),
		// Candidates never see the internal cv_viewed distinction.
		Status:    publicStatus(app.Status),
		AppliedAt: entity.NewDateOnly(app.AppliedAt),
	}
	if app.Job != nil {
		resp.JobTitle = app.Job.Title
	}
	return resp
}

func publicStatus(status string) string {
	if status == entity.ApplicationCVViewed {
		return "under_review"
	}
	return status
}
