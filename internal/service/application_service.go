package service

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"talentgate/internal/contract"
	"talentgate/internal/domain/entity"
	"talentgate/internal/infrastructure/aws/storage"
	"talentgate/internal/match"
	"talentgate/internal/utils"
	"talentgate/internal/utils/apierror"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

// autoShortlistScore is the minimum match score for an application to be
// promoted to shortlisted automatically.
const autoShortlistScore = 70

// analyzeTimeout bounds the background CV download and analysis per
// application.
const analyzeTimeout = 30 * time.Second

var (
	validCVTypes        = strings.Split(contract.CVFileTypes, ",")
	validPortfolioTypes = strings.Split(contract.PortfolioFileTypes, ",")
)

type ApplicationRepository interface {
	FindByID(id string) (*entity.Application, error)
	FindOwned(id, companyID string) (*entity.Application, error)
	FindForCompany(companyID string, filter entity.ApplicationFilter) ([]*entity.Application, error)
	FindByStatus(companyID, status string) ([]*entity.Application, error)
	FindTalentPool(companyID string) ([]*entity.Application, error)
	FindByEmail(email string) ([]*entity.Application, error)
	FindByEmailAndJob(email, jobID string) (*entity.Application, error)
	Search(companyID string, filter entity.CandidateSearchFilter) ([]*entity.Application, error)
	Save(app *entity.Application) error
	Delete(app *entity.Application) error
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
	CountForCompany(companyID string) (int64, error)
}

type ApplicationService struct {
	AppRepo  ApplicationRepository
	JobRepo  JobRepository
	S3       storage.S3Client
	Activity *ActivityService
	Validate *validator.Validate
}

func NewApplicationService(
	appRepo ApplicationRepository,
	jobRepo JobRepository,
	s3 storage.S3Client,
	activity *ActivityService,
	validate *validator.Validate,
) *ApplicationService {
	return &ApplicationService{
		AppRepo:  appRepo,
		JobRepo:  jobRepo,
		S3:       s3,
		Activity: activity,
		Validate: validate,
	}
}

// Submit is the public application endpoint. The CV is mandatory, the
// portfolio optional. Parsing and matching run in the background; the
// candidate gets their confirmation as soon as the row and files are
// stored.
func (s *ApplicationService) Submit(jobID string, req *contract.SubmitApplicationRequest, cv, portfolio *multipart.FileHeader) (*entity.Application, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	job, err := s.JobRepo.FindByID(jobID)
	if err != nil {
		log.Errorf("failed to fetch job %s: %v", jobID, err)
		return nil, apierror.InternalServerError
	}
	if job == nil {
		return nil, apierror.JobNotFoundError
	}

	if job.Status != entity.JobStatusOpen {
		return nil, apierror.ApplicationsClosedError
	}
	if job.Deadline.Expired(utils.NowUTC()) {
		return nil, apierror.DeadlinePassedError
	}

	dup, err := s.AppRepo.FindByEmailAndJob(req.Email, jobID)
	if err != nil {
		log.Errorf("failed to check duplicate application: %v", err)
		return nil, apierror.InternalServerError
	}
	if dup != nil {
		return nil, apierror.DuplicateApplication
	}

	resumeURL, apierr := s.uploadFile(cv, storage.ResumePrefix, validCVTypes)
	if apierr != nil {
		return nil, apierr
	}

	var portfolioURL string
	if portfolio != nil {
		portfolioURL, apierr = s.uploadFile(portfolio, storage.PortfolioPrefix, validPortfolioTypes)
		if apierr != nil {
			return nil, apierr
		}
	}

	app := &entity.Application{
		ID:              uuid.New(),
		JobID:           &job.ID,
		CompanyID:       job.CompanyID,
		FullName:        req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		ResumeURL:       resumeURL,
		PortfolioURL:    portfolioURL,
		CoverLetter:     req.CoverLetter,
		CurrentPosition: req.CurrentPosition,
		LinkedinURL:     req.LinkedInURL,
		Status:          entity.ApplicationPending,
		AppliedAt:       utils.NowUTC(),
	}
	if req.YearsExperience != nil {
		app.YearsOfExperience = *req.YearsExperience
	}

	if err := s.AppRepo.Save(app); err != nil {
		log.Errorf("failed to save application for job %s: %v", jobID, err)
		return nil, apierror.InternalServerError
	}

	go s.analyzeInBackground(app.ID.String(), job)
	return app, nil
}

// AddManualCandidate lets a recruiter register someone who did not apply
// through the form (referral, sourced profile). The CV is optional here.
func (s *ApplicationService) AddManualCandidate(actor *entity.Admin, req *contract.ManualCandidateRequest, cv *multipart.FileHeader) (*entity.Application, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	job, err := s.JobRepo.FindOwned(req.JobID, actor.CompanyID.String())
	if err != nil {
		log.Errorf("failed to fetch job %s: %v", req.JobID, err)
		return nil, apierror.InternalServerError
	}
	if job == nil {
		return nil, apierror.JobNotFoundError
	}

	dup, err := s.AppRepo.FindByEmailAndJob(req.Email, req.JobID)
	if err != nil {
		log.Errorf("failed to check duplicate application: %v", err)
		return nil, apierror.InternalServerError
	}
	if dup != nil {
		return nil, apierror.DuplicateApplication
	}

	var resumeURL string
	if cv != nil {
		var apierr apierror.ErrorResponse
		resumeURL, apierr = s.uploadFile(cv, storage.ResumePrefix, validCVTypes)
		if apierr != nil {
			return nil, apierr
		}
	}

	app := &entity.Application{
		ID:              uuid.New(),
		JobID:           &job.ID,
		CompanyID:       job.CompanyID,
		FullName:        req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		ResumeURL:       resumeURL,
		CurrentPosition: req.CurrentPosition,
		LinkedinURL:     req.LinkedInURL,
		ReferralSource:  req.Source,
		Status:          entity.ApplicationPending,
		AppliedAt:       utils.NowUTC(),
	}
	if req.YearsExperience != nil {
		app.YearsOfExperience = *req.YearsExperience
	}

	if err := s.AppRepo.Save(app); err != nil {
		log.Errorf("failed to save manual candidate for job %s: %v", req.JobID, err)
		return nil, apierror.InternalServerError
	}

	if resumeURL != "" {
		go s.analyzeInBackground(app.ID.String(), job)
	}
	return app, nil
}

func (s *ApplicationService) GetApplications(actor *entity.Admin, filter entity.ApplicationFilter) ([]*entity.Application, apierror.ErrorResponse) {
	apps, err := s.AppRepo.FindForCompany(actor.CompanyID.String(), filter)
	if err != nil {
		log.Errorf("failed to fetch applications for company %s: %v", actor.CompanyID, err)
		return nil, apierror.InternalServerError
	}
	return apps, nil
}

func (s *ApplicationService) GetApplication(actor *entity.Admin, id string) (*entity.Application, apierror.ErrorResponse) {
	return s.fetchOwned(actor, id)
}

func (s *ApplicationService) UpdateStatus(actor *entity.Admin, id string, req *contract.UpdateStatusRequest) (*entity.Application, apierror.ErrorResponse) {
	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	app, apierr := s.fetchOwned(actor, id)
	if apierr != nil {
		return nil, apierr
	}

	prev := app.Status
	now := utils.NowUTC()
	app.Status = req.Status
	app.ReviewedAt = &now
	app.ReviewedBy = &actor.ID
	app.LastStatusUpdate = &now

	if err := s.AppRepo.Save(app); err != nil {
		log.Errorf("failed to update application %s: %v", app.ID, err)
		return nil, apierror.InternalServerError
	}

	if prev != app.Status {
		s.Activity.RecordApplicationStatusChanged(actor, app, prev)
	}
	return app, nil
}

// TrackCVView stamps who opened the CV and when, and bumps a pending
// application to cv_viewed. Repeat views only refresh the timestamp.
func (s *ApplicationService) TrackCVView(actor *entity.Admin, id string) (*entity.Application, apierror.ErrorResponse) {
	app, apierr := s.fetchOwned(actor, id)
	if apierr != nil {
		return nil, apierr
	}

	now := utils.NowUTC()
	app.CVViewedAt = &now
	app.CVViewedBy = &actor.ID

	prev := app.Status
	if app.Status == entity.ApplicationPending {
		app.Status = entity.ApplicationCVViewed
		app.LastStatusUpdate = &now
	}

	if err := s.AppRepo.Save(app); err != nil {
		log.Errorf("failed to track cv view on application %s: %v", app.ID, err)
		return nil, apierror.InternalServerError
	}

	s.Activity.RecordCVViewed(actor, app)
	if prev != app.Status {
		s.Activity.RecordApplicationStatusChanged(actor, app, prev)
	}
	return app, nil
}

func (s *ApplicationService) DeleteApplication(actor *entity.Admin, id string) apierror.ErrorResponse {
	app, apierr := s.fetchOwned(actor, id)
	if apierr != nil {
		return apierr
	}

	if err := s.AppRepo.Delete(app); err != nil {
		log.Errorf("failed to delete application %s: %v", app.ID, err)
		return apierror.InternalServerError
	}

	s.Activity.RecordApplicationDeleted(actor, app)
	return nil
}

// BulkDelete removes every application of the company in the given
// status, optionally narrowed to one job. Shortlisted applications are
// never bulk-deletable.
func (s *ApplicationService) BulkDelete(actor *entity.Admin, req *contract.BulkDeleteRequest) (int, apierror.ErrorResponse) {
	if err := s.Validate.Struct(req); err != nil {
		if req.Status != "" {
			return 0, apierror.InvalidBulkStatusError
		}
		return 0, apierror.FromValidationError(err)
	}

	apps, err := s.AppRepo.FindByStatus(actor.CompanyID.String(), req.Status)
	if err != nil {
		log.Errorf("failed to fetch applications for bulk delete: %v", err)
		return 0, apierror.InternalServerError
	}

	deleted := 0
	for _, app := range apps {
		if req.JobID != "" && (app.JobID == nil || app.JobID.String() != req.JobID) {
			continue
		}
		if err := s.AppRepo.Delete(app); err != nil {
			log.Errorf("failed to delete application %s during bulk delete: %v", app.ID, err)
			continue
		}
		deleted++
		s.Activity.RecordApplicationDeleted(actor, app)
	}
	return deleted, nil
}

// AIShortlist runs the matcher over a job's unreviewed applications. An
// explicit criteria payload overrides what is stored on the job for this
// run only.
func (s *ApplicationService) AIShortlist(actor *entity.Admin, jobID string, req *contract.AIShortlistRequest) ([]*entity.Application, apierror.ErrorResponse) {
	job, err := s.JobRepo.FindOwned(jobID, actor.CompanyID.String())
	if err != nil {
		log.Errorf("failed to fetch job %s: %v", jobID, err)
		return nil, apierror.InternalServerError
	}
	if job == nil {
		return nil, apierror.JobNotFoundError
	}

	criteria, apierr := resolveCriteria(job, req)
	if apierr != nil {
		return nil, apierr
	}

	filter := entity.ApplicationFilter{JobID: jobID}
	apps, err := s.AppRepo.FindForCompany(actor.CompanyID.String(), filter)
	if err != nil {
		log.Errorf("failed to fetch applications for job %s: %v", jobID, err)
		return nil, apierror.InternalServerError
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout*time.Duration(len(apps)+1))
	defer cancel()

	for _, app := range apps {
		if app.Status == entity.ApplicationShortlisted || app.Status == entity.ApplicationRejected {
			continue
		}
		if err := s.analyzeOne(ctx, app, criteria); err != nil {
			log.Warnf("failed to analyze application %s: %v", app.ID, err)
			continue
		}
		if err := s.AppRepo.Save(app); err != nil {
			log.Errorf("failed to save analysis for application %s: %v", app.ID, err)
		}
	}
	return apps, nil
}

// Reanalyze re-extracts the CV text and re-runs the matcher for a single
// application using its job's stored criteria.
func (s *ApplicationService) Reanalyze(actor *entity.Admin, id string) (*entity.Application, apierror.ErrorResponse) {
	app, apierr := s.fetchOwned(actor, id)
	if apierr != nil {
		return nil, apierr
	}
	if app.ResumeURL == "" {
		return nil, apierror.NoFileError
	}

	var criteria match.Criteria
	if app.Job != nil && app.Job.ShortlistCriteria != nil {
		var err error
		criteria, err = match.ParseCriteria(*app.Job.ShortlistCriteria)
		if err != nil {
			return nil, apierror.NewSimple(400, "Invalid shortlist criteria: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	app.ParsedCVText = nil
	if err := s.analyzeOne(ctx, app, criteria); err != nil {
		return nil, apierror.CVUnreadableError
	}
	if err := s.AppRepo.Save(app); err != nil {
		log.Errorf("failed to save reanalysis for application %s: %v", app.ID, err)
		return nil, apierror.InternalServerError
	}
	return app, nil
}

// analyzeInBackground is the post-submit pipeline: download, extract,
// score, and possibly auto-shortlist. It re-reads the row before writing
// so a recruiter decision made meanwhile is never overwritten.
func (s *ApplicationService) analyzeInBackground(appID string, job *entity.Job) {
	var criteria match.Criteria
	if job.ShortlistCriteria != nil {
		parsed, err := match.ParseCriteria(*job.ShortlistCriteria)
		if err != nil {
			log.Warnf("job %s has unparseable shortlist criteria: %v", job.ID, err)
		} else {
			criteria = parsed
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	app, err := s.AppRepo.FindByID(appID)
	if err != nil || app == nil {
		log.Errorf("failed to reload application %s for analysis: %v", appID, err)
		return
	}

	if err := s.analyzeOne(ctx, app, criteria); err != nil {
		log.Warnf("failed to analyze application %s: %v", appID, err)
		return
	}

	if job.AutoShortlist && !criteria.Empty() &&
		app.Score >= autoShortlistScore && app.Status == entity.ApplicationPending {
		now := utils.NowUTC()
		app.Status = entity.ApplicationShortlisted
		app.LastStatusUpdate = &now
	}

	if err := s.AppRepo.Save(app); err != nil {
		log.Errorf("failed to save analysis for application %s: %v", appID, err)
	}
}

// analyzeOne mutates the application in place: parsed text, score and
// the serialized analysis blob. The caller decides when to persist.
func (s *ApplicationService) analyzeOne(ctx context.Context, app *entity.Application, criteria match.Criteria) error {
	text := ""
	if app.ParsedCVText != nil {
		text = *app.ParsedCVText
	}

	if text == "" {
		extracted, err := match.ExtractTextFromURL(ctx, app.ResumeURL)
		if err != nil {
			return err
		}
		text = extracted
		app.ParsedCVText = &extracted
	}

	result := match.Analyze(text, criteria)
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}

	blob := string(raw)
	app.Score = result.MatchScore
	app.AnalysisResult = &blob
	return nil
}

func (s *ApplicationService) fetchOwned(actor *entity.Admin, id string) (*entity.Application, apierror.ErrorResponse) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apierror.NewInvalidParamTypeError("id", "uuid")
	}

	app, err := s.AppRepo.FindOwned(id, actor.CompanyID.String())
	if err != nil {
		log.Errorf("failed to fetch application %s: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if app == nil {
		return nil, apierror.ApplicationNotFound
	}
	return app, nil
}

// UploadCV stores a resume on its own, for flows that attach the file
// to an application later.
func (s *ApplicationService) UploadCV(fileHeader *multipart.FileHeader) (string, apierror.ErrorResponse) {
	return s.uploadFile(fileHeader, storage.ResumePrefix, validCVTypes)
}

func (s *ApplicationService) UploadPortfolio(fileHeader *multipart.FileHeader) (string, apierror.ErrorResponse) {
	return s.uploadFile(fileHeader, storage.PortfolioPrefix, validPortfolioTypes)
}

func (s *ApplicationService) uploadFile(fileHeader *multipart.FileHeader, prefix string, validTypes []string) (string, apierror.ErrorResponse) {
	if fileHeader == nil {
		return "", apierror.NoFileError
	}
	if fileHeader.Size > contract.MaxUploadSize {
		return "", apierror.NewFileTooLargeError(humanize.IBytes(contract.MaxUploadSize))
	}
	if _, ok := utils.CheckFileExt(fileHeader.Filename, validTypes); !ok {
		return "", apierror.NewInvalidFileTypeError(validTypes)
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Errorf("failed to open uploaded file: %v", err)
		return "", apierror.InternalServerError
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("failed to read uploaded file: %v", err)
		return "", apierror.InternalServerError
	}

	ext, _ := utils.CheckFileExt(fileHeader.Filename, validTypes)
	url, err := s.S3.UploadFile(data, prefix, uuid.NewString()+"."+ext)
	if err != nil {
		log.Errorf("failed to upload file to s3: %v", err)
		return "", apierror.InternalServerError
	}
	return url, nil
}

func resolveCriteria(job *entity.Job, req *contract.AIShortlistRequest) (match.Criteria, apierror.ErrorResponse) {
	if req != nil && len(req.Criteria) > 0 {
		raw, err := json.Marshal(req.Criteria)
		if err != nil {
			return match.Criteria{}, apierror.MalformedJSONError
		}
		criteria, err := match.ParseCriteria(string(raw))
		if err != nil {
			return match.Criteria{}, apierror.NewSimple(400, "Invalid shortlist criteria: %v", err)
		}
		return criteria, nil
	}

	if job.ShortlistCriteria == nil || *job.ShortlistCriteria == "" {
		return match.Criteria{}, nil
	}

	criteria, err := match.ParseCriteria(*job.ShortlistCriteria)
	if err != nil {
		return match.Criteria{}, apierror.NewSimple(400, "Invalid shortlist criteria: %v", err)
	}
	return criteria, nil
}
