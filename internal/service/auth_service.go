package service

import (
	"talentgate/internal/contract"
	"talentgate/internal/domain/entity"
	"talentgate/internal/utils"
	"talentgate/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

type CompanyRepository interface {
	FindByID(id string) (*entity.Company, error)
	FindByEmail(email string) (*entity.Company, error)
	FindAll() ([]*entity.Company, error)
	Save(company *entity.Company) error
	Count() (int64, error)
	CountBySubscriptionStatus(status string) (int64, error)
}

type AdminRepository interface {
	FindByID(id string) (*entity.Admin, error)
	FindByEmail(email string) (*entity.Admin, error)
	Save(admin *entity.Admin) error
	Count() (int64, error)
}

type SuperAdminRepository interface {
	FindByID(id string) (*entity.SuperAdmin, error)
	FindByEmail(email string) (*entity.SuperAdmin, error)
}

type AuthService struct {
	CompanyRepo    CompanyRepository
	AdminRepo      AdminRepository
	SuperAdminRepo SuperAdminRepository
	Tokens         *utils.TokenIssuer
	Activity       *ActivityService
	Validate       *validator.Validate
}

func NewAuthService(
	companyRepo CompanyRepository,
	adminRepo AdminRepository,
	superAdminRepo SuperAdminRepository,
	tokens *utils.TokenIssuer,
	activity *ActivityService,
	validate *validator.Validate,
) *AuthService {
	return &AuthService{
		CompanyRepo:    companyRepo,
		AdminRepo:      adminRepo,
		SuperAdminRepo: superAdminRepo,
		Tokens:         tokens,
		Activity:       activity,
		Validate:       validate,
	}
}

// Register creates a tenant and its first admin in one step and signs
// the admin in.
func (a *AuthService) Register(req *contract.RegisterRequest) (*contract.AuthResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	existing, err := a.CompanyRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to check company email %s: %v", req.Email, err)
		return nil, apierror.InternalServerError
	}
	if existing != nil {
		return nil, apierror.CompanyExistsError
	}

	if admin, aerr := a.AdminRepo.FindByEmail(req.Email); aerr != nil {
		log.Errorf("failed to check admin email %s: %v", req.Email, aerr)
		return nil, apierror.InternalServerError
	} else if admin != nil {
		return nil, apierror.CompanyExistsError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	company := &entity.Company{
		ID:                 uuid.New(),
		CompanyName:        req.CompanyName,
		Email:              req.Email,
		SubscriptionStatus: entity.SubscriptionTrial,
		SubscriptionTier:   entity.TierStarter,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := a.CompanyRepo.Save(company); err != nil {
		log.Errorf("failed to create company: %v", err)
		return nil, apierror.InternalServerError
	}

	admin := &entity.Admin{
		ID:           uuid.New(),
		CompanyID:    company.ID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	if err := a.AdminRepo.Save(admin); err != nil {
		log.Errorf("failed to create admin for company %s: %v", company.ID, err)
		return nil, apierror.InternalServerError
	}

	token, err := a.Tokens.GenerateAdminToken(admin.ID.String(), company.ID.String())
	if err != nil {
		log.Errorf("failed to sign token for admin %s: %v", admin.ID, err)
		return nil, apierror.InternalServerError
	}

	a.Activity.RecordCompanyRegistered(company, admin)
	return &contract.AuthResponse{
		Message: "Company registered successfully",
		Token:   token,
		Admin:   toAdminSummary(admin),
	}, nil
}

func (a *AuthService) Login(req *contract.LoginRequest) (*contract.AuthResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	admin, err := a.AdminRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch admin %s: %v", req.Email, err)
		return nil, apierror.InternalServerError
	}

	// Same error for unknown email and wrong password.
	if admin == nil {
		return nil, apierror.CredentialsError
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		return nil, apierror.CredentialsError
	}

	token, err := a.Tokens.GenerateAdminToken(admin.ID.String(), admin.CompanyID.String())
	if err != nil {
		log.Errorf("failed to sign token for admin %s: %v", admin.ID, err)
		return nil, apierror.InternalServerError
	}

	return &contract.AuthResponse{
		Token: token,
		Admin: toAdminSummary(admin),
	}, nil
}

func (a *AuthService) SuperAdminLogin(req *contract.LoginRequest) (*contract.SuperAdminAuthResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	sa, err := a.SuperAdminRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch super admin %s: %v", req.Email, err)
		return nil, apierror.InternalServerError
	}

	if sa == nil {
		return nil, apierror.CredentialsError
	}
	if bcrypt.CompareHashAndPassword([]byte(sa.PasswordHash), []byte(req.Password)) != nil {
		return nil, apierror.CredentialsError
	}

	token, err := a.Tokens.GenerateSuperAdminToken(sa.ID.String())
	if err != nil {
		log.Errorf("failed to sign token for super admin %s: %v", sa.ID, err)
		return nil, apierror.InternalServerError
	}

	return &contract.SuperAdminAuthResponse{
		Token: token,
		SuperAdmin: contract.SuperAdminSummary{
			ID:    sa.ID.String(),
			Name:  sa.Name,
			Email: sa.Email,
		},
	}, nil
}

// VerifyEmbedTenant is the embed handshake: given the company_id the
// embedding page was configured with, confirm it matches the signed-in
// admin's tenant before any dashboard data is served.
func (a *AuthService) VerifyEmbedTenant(admin *entity.Admin, embedCompanyID string) apierror.ErrorResponse {
	if embedCompanyID == "" {
		return apierror.EmbedMisconfiguredError
	}
	if admin.CompanyID.String() != embedCompanyID {
		log.Warnf("embed tenant mismatch: admin %s belongs to %s, embed claims %s",
			admin.ID, admin.CompanyID, embedCompanyID)
		return apierror.EmbedTenantMismatch
	}
	return nil
}

func toAdminSummary(admin *entity.Admin) contract.AdminSummary {
	return contract.AdminSummary{
		ID:        admin.ID.String(),
		Name:      admin.Name,
		Email:     admin.Email,
		CompanyID: admin.CompanyID.String(),
	}
}
