package service

import (
	"talentgate/internal/contract"
	"talentgate/internal/domain/entity"
	"talentgate/internal/utils"
	"talentgate/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

// SuperAdminService is the platform-operator surface: cross-tenant
// stats, the companies directory and subscription management.
type SuperAdminService struct {
	CompanyRepo CompanyRepository
	AdminRepo   AdminRepository
	JobRepo     JobRepository
	AppRepo     ApplicationRepository
	Validate    *validator.Validate
}

func NewSuperAdminService(
	companyRepo CompanyRepository,
	adminRepo AdminRepository,
	jobRepo JobRepository,
	appRepo ApplicationRepository,
	validate *validator.Validate,
) *SuperAdminService {
	return &SuperAdminService{
		CompanyRepo: companyRepo,
		AdminRepo:   adminRepo,
		JobRepo:     jobRepo,
		AppRepo:     appRepo,
		Validate:    validate,
	}
}

func (s *SuperAdminService) GetPlatformStats() (*contract.PlatformStats, apierror.ErrorResponse) {
	stats := &contract.PlatformStats{}

	counts := []struct {
		dst   *int64
		fetch func() (int64, error)
	}{
		{&stats.TotalCompanies, s.CompanyRepo.Count},
		{&stats.ActiveCompanies, func() (int64, error) { return s.CompanyRepo.CountBySubscriptionStatus(entity.SubscriptionActive) }},
		{&stats.TrialCompanies, func() (int64, error) { return s.CompanyRepo.CountBySubscriptionStatus(entity.SubscriptionTrial) }},
		{&stats.TotalJobs, s.JobRepo.Count},
		{&stats.OpenJobs, func() (int64, error) { return s.JobRepo.CountByStatus(entity.JobStatusOpen) }},
		{&stats.TotalApplications, s.AppRepo.Count},
		{&stats.TotalAdmins, s.AdminRepo.Count},
		{&stats.ShortlistedOverall, func() (int64, error) { return s.AppRepo.CountByStatus(entity.ApplicationShortlisted) }},
	}

	for _, c := range counts {
		n, err := c.fetch()
		if err != nil {
			log.Errorf("failed to compute platform stats: %v", err)
			return nil, apierror.InternalServerError
		}
		*c.dst = n
	}
	return stats, nil
}

func (s *SuperAdminService) GetCompanies() ([]*contract.CompanyOverview, apierror.ErrorResponse) {
	companies, err := s.CompanyRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch companies: %v", err)
		return nil, apierror.InternalServerError
	}

	overviews := make([]*contract.CompanyOverview, len(companies))
	for i, company := range companies {
		jobCount, err := s.JobRepo.CountForCompany(company.ID.String())
		if err != nil {
			log.Errorf("failed to count jobs for company %s: %v", company.ID, err)
			return nil, apierror.InternalServerError
		}
		appCount, err := s.AppRepo.CountForCompany(company.ID.String())
		if err != nil {
			log.Errorf("failed to count applications for company %s: %v", company.ID, err)
			return nil, apierror.InternalServerError
		}

		overviews[i] = &contract.CompanyOverview{
			ID:                 company.ID.String(),
			Name:               company.CompanyName,
			Email:              company.Email,
			SubscriptionStatus: company.SubscriptionStatus,
			SubscriptionTier:   company.SubscriptionTier,
			EmbeddedMode:       company.EmbeddedMode,
			JobCount:           jobCount,
			ApplicationCount:   appCount,
			CreatedAt:          company.CreatedAt.UTC().Format("2006-01-02"),
		}
	}
	return overviews, nil
}

func (s *SuperAdminService) GetCompany(companyID string) (*entity.Company, apierror.ErrorResponse) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, apierror.NewInvalidParamTypeError("id", "uuid")
	}

	company, err := s.CompanyRepo.FindByID(companyID)
	if err != nil {
		log.Errorf("failed to fetch company %s: %v", companyID, err)
		return nil, apierror.InternalServerError
	}
	if company == nil {
		return nil, apierror.NotFoundError
	}
	return company, nil
}

func (s *SuperAdminService) UpdateSubscription(companyID string, req *contract.UpdateSubscriptionRequest) (*entity.Company, apierror.ErrorResponse) {
	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	company, apierr := s.GetCompany(companyID)
	if apierr != nil {
		return nil, apierr
	}

	if req.SubscriptionStatus != nil {
		company.SubscriptionStatus = *req.SubscriptionStatus
	}
	if req.SubscriptionTier != nil {
		company.SubscriptionTier = *req.SubscriptionTier
	}
	company.UpdatedAt = utils.NowUTC()

	if err := s.CompanyRepo.Save(company); err != nil {
		log.Errorf("failed to update subscription for company %s: %v", companyID, err)
		return nil, apierror.InternalServerError
	}
	return company, nil
}
