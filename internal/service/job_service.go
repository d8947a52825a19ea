package service

import (
	"talentgate/internal/contract"
	"talentgate/internal/domain/entity"
	"talentgate/internal/match"
	"talentgate/internal/utils"
	"talentgate/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type JobRepository interface {
	FindByID(id string) (*entity.Job, error)
	FindOwned(id, companyID string) (*entity.Job, error)
	FindForCompany(companyID, status string) ([]*entity.Job, error)
	FindPublicOpen(companyID string) ([]*entity.Job, error)
	CloseExpired(companyID, today string) (int64, error)
	Save(job *entity.Job) error
	Delete(job *entity.Job) error
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
	CountForCompany(companyID string) (int64, error)
}

type JobService struct {
	JobRepo     JobRepository
	CompanyRepo CompanyRepository
	Activity    *ActivityService
	Validate    *validator.Validate
}

func NewJobService(jobRepo JobRepository, companyRepo CompanyRepository, activity *ActivityService, validate *validator.Validate) *JobService {
	return &JobService{
		JobRepo:     jobRepo,
		CompanyRepo: companyRepo,
		Activity:    activity,
		Validate:    validate,
	}
}

func (j *JobService) CreateJob(actor *entity.Admin, req *contract.CreateJobRequest) (*entity.Job, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := j.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	if apierr := checkCriteria(req.ShortlistCriteria); apierr != nil {
		return nil, apierr
	}

	now := utils.NowUTC()
	job := &entity.Job{
		ID:                uuid.New(),
		CompanyID:         actor.CompanyID,
		Title:             req.Title,
		Description:       req.Description,
		Requirements:      req.Requirements,
		Location:          req.Location,
		JobType:           req.EmploymentType,
		SalaryRange:       req.SalaryRange,
		Status:            entity.JobStatusOpen,
		AutoShortlist:     true,
		ShortlistCriteria: req.ShortlistCriteria,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if req.Deadline != nil {
		deadline, err := entity.ParseDateOnly(*req.Deadline)
		if err != nil {
			return nil, apierror.NewInvalidParamTypeError("deadline", "YYYY-MM-DD date")
		}
		job.Deadline = deadline
	}

	if err := j.JobRepo.Save(job); err != nil {
		log.Errorf("failed to create job for company %s: %v", actor.CompanyID, err)
		return nil, apierror.InternalServerError
	}

	j.Activity.RecordJobCreated(actor, job)
	return job, nil
}

func (j *JobService) UpdateJob(actor *entity.Admin, jobID string, req *contract.UpdateJobRequest) (*entity.Job, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := j.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	if apierr := checkCriteria(req.ShortlistCriteria); apierr != nil {
		return nil, apierr
	}

	job, apierr := j.fetchOwned(actor, jobID)
	if apierr != nil {
		return nil, apierr
	}

	prevStatus := job.Status
	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements = *req.Requirements
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.EmploymentType != nil {
		job.JobType = *req.EmploymentType
	}
	if req.SalaryRange != nil {
		job.SalaryRange = *req.SalaryRange
	}
	if req.Status != nil {
		job.Status = *req.Status
	}
	if req.ShortlistCriteria != nil {
		job.ShortlistCriteria = req.ShortlistCriteria
	}
	if req.Deadline != nil {
		deadline, err := entity.ParseDateOnly(*req.Deadline)
		if err != nil {
			return nil, apierror.NewInvalidParamTypeError("deadline", "YYYY-MM-DD date")
		}
		job.Deadline = deadline
	}

	job.UpdatedAt = utils.NowUTC()
	if err := j.JobRepo.Save(job); err != nil {
		log.Errorf("failed to update job %s: %v", job.ID, err)
		return nil, apierror.InternalServerError
	}

	if job.Status != prevStatus {
		j.Activity.RecordJobStatusChanged(actor, job, prevStatus)
	} else {
		j.Activity.RecordJobUpdated(actor, job)
	}
	return job, nil
}

func (j *JobService) DeleteJob(actor *entity.Admin, jobID string) apierror.ErrorResponse {
	job, apierr := j.fetchOwned(actor, jobID)
	if apierr != nil {
		return apierr
	}

	if err := j.JobRepo.Delete(job); err != nil {
		log.Errorf("failed to delete job %s: %v", job.ID, err)
		return apierror.InternalServerError
	}

	j.Activity.RecordJobDeleted(actor, job)
	return nil
}

func (j *JobService) GetJob(actor *entity.Admin, jobID string) (*entity.Job, apierror.ErrorResponse) {
	return j.fetchOwned(actor, jobID)
}

// GetJobs lists the company's jobs, auto-closing any whose deadline has
// passed first so the listing never contains a stale open job.
func (j *JobService) GetJobs(actor *entity.Admin, status string) ([]*entity.Job, apierror.ErrorResponse) {
	if status != "" && status != entity.JobStatusOpen && status != entity.JobStatusClosed && status != entity.JobStatusArchived {
		return nil, apierror.InvalidJobStatusError
	}

	j.closeExpired(actor.CompanyID.String())

	jobs, err := j.JobRepo.FindForCompany(actor.CompanyID.String(), status)
	if err != nil {
		log.Errorf("failed to fetch jobs for company %s: %v", actor.CompanyID, err)
		return nil, apierror.InternalServerError
	}
	return jobs, nil
}

// GetPublicJobs is the unauthenticated career-page board for one tenant.
func (j *JobService) GetPublicJobs(companyID string) ([]*entity.Job, *entity.Company, apierror.ErrorResponse) {
	company, err := j.CompanyRepo.FindByID(companyID)
	if err != nil {
		log.Errorf("failed to fetch company %s: %v", companyID, err)
		return nil, nil, apierror.InternalServerError
	}
	if company == nil {
		return nil, nil, apierror.NotFoundError
	}

	j.closeExpired(companyID)

	jobs, err := j.JobRepo.FindPublicOpen(companyID)
	if err != nil {
		log.Errorf("failed to fetch public jobs for company %s: %v", companyID, err)
		return nil, nil, apierror.InternalServerError
	}
	return jobs, company, nil
}

// GetPublicJob resolves a single posting for the application form. Closed
// and archived jobs stay resolvable so the form can explain why it will
// not accept a submission.
func (j *JobService) GetPublicJob(jobID string) (*entity.Job, apierror.ErrorResponse) {
	job, err := j.JobRepo.FindByID(jobID)
	if err != nil {
		log.Errorf("failed to fetch job %s: %v", jobID, err)
		return nil, apierror.InternalServerError
	}
	if job == nil {
		return nil, apierror.JobNotFoundError
	}
	return job, nil
}

func (j *JobService) fetchOwned(actor *entity.Admin, jobID string) (*entity.Job, apierror.ErrorResponse) {
	if _, err := uuid.Parse(jobID); err != nil {
		return nil, apierror.NewInvalidParamTypeError("id", "uuid")
	}

	job, err := j.JobRepo.FindOwned(jobID, actor.CompanyID.String())
	if err != nil {
		log.Errorf("failed to fetch job %s: %v", jobID, err)
		return nil, apierror.InternalServerError
	}
	if job == nil {
		return nil, apierror.JobNotFoundError
	}
	return job, nil
}

func (j *JobService) closeExpired(companyID string) {
	closed, err := j.JobRepo.CloseExpired(companyID, utils.Today())
	if err != nil {
		log.Errorf("failed to close expired jobs for company %s: %v", companyID, err)
		return
	}
	if closed > 0 {
		log.Infof("auto-closed %d expired jobs for company %s", closed, companyID)
	}
}

// checkCriteria rejects shortlist criteria that can never be parsed, so
// bad JSON is caught when the recruiter saves it rather than when the
// matcher runs.
func checkCriteria(raw *string) apierror.ErrorResponse {
	if raw == nil || *raw == "" {
		return nil
	}
	if _, err := match.ParseCriteria(*raw); err != nil {
		return apierror.NewSimple(400, "Invalid shortlist criteria: %v", err)
	}
	return nil
}
