package service

import (
	"sort"
	"sync"
	"testing"

	"talentgate/internal/contract"
	"talentgate/internal/domain/entity"
	"talentgate/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type fakeAppRepo struct {
	mu   sync.Mutex
	apps map[string]*entity.Application
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{apps: make(map[string]*entity.Application)}
}

func (f *fakeAppRepo) FindByID(id string) (*entity.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return nil, nil
	}
	copied := *app
	return &copied, nil
}

func (f *fakeAppRepo) FindOwned(id, companyID string) (*entity.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok || app.CompanyID.String() != companyID {
		return nil, nil
	}
	copied := *app
	return &copied, nil
}

func (f *fakeAppRepo) FindForCompany(companyID string, filter entity.ApplicationFilter) ([]*entity.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Application
	for _, app := range f.apps {
		if app.CompanyID.String() != companyID {
			continue
		}
		if filter.JobID != "" && (app.JobID == nil || app.JobID.String() != filter.JobID) {
			continue
		}
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		copied := *app
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (f *fakeAppRepo) FindByStatus(companyID, status string) ([]*entity.Application, error) {
	return f.FindForCompany(companyID, entity.ApplicationFilter{Status: status})
}

func (f *fakeAppRepo) FindTalentPool(companyID string) ([]*entity.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Application
	for _, app := range f.apps {
		if app.CompanyID.String() == companyID && app.InTalentPool {
			copied := *app
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeAppRepo) FindByEmail(email string) ([]*entity.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Application
	for _, app := range f.apps {
		if app.Email == email {
			copied := *app
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeAppRepo) FindByEmailAndJob(email, jobID string) (*entity.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, app := range f.apps {
		if app.Email == email && app.JobID != nil && app.JobID.String() == jobID {
			copied := *app
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAppRepo) Search(companyID string, filter entity.CandidateSearchFilter) ([]*entity.Application, error) {
	return f.FindForCompany(companyID, entity.ApplicationFilter{Status: filter.Status})
}

func (f *fakeAppRepo) Save(app *entity.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *app
	f.apps[app.ID.String()] = &copied
	return nil
}

func (f *fakeAppRepo) Delete(app *entity.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.apps, app.ID.String())
	return nil
}

func (f *fakeAppRepo) Count() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.apps)), nil
}

func (f *fakeAppRepo) CountByStatus(status string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, app := range f.apps {
		if app.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeAppRepo) CountForCompany(companyID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, app := range f.apps {
		if app.CompanyID.String() == companyID {
			n++
		}
	}
	return n, nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*entity.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*entity.Job)}
}

func (f *fakeJobRepo) FindByID(id string) (*entity.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return nil, nil
	}
	copied := *job
	return &copied, nil
}

func (f *fakeJobRepo) FindOwned(id, companyID string) (*entity.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok || job.CompanyID.String() != companyID {
		return nil, nil
	}
	copied := *job
	return &copied, nil
}

func (f *fakeJobRepo) FindForCompany(companyID, status string) ([]*entity.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Job
	for _, job := range f.jobs {
		if job.CompanyID.String() != companyID {
			continue
		}
		if status != "" && job.Status != status {
			continue
		}
		copied := *job
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeJobRepo) FindPublicOpen(companyID string) ([]*entity.Job, error) {
	return f.FindForCompany(companyID, entity.JobStatusOpen)
}

func (f *fakeJobRepo) CloseExpired(companyID, today string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, job := range f.jobs {
		if job.CompanyID.String() == companyID && job.Status == entity.JobStatusOpen &&
			job.Deadline.Format("2006-01-02") < today {
			job.Status = entity.JobStatusClosed
			n++
		}
	}
	return n, nil
}

func (f *fakeJobRepo) Save(job *entity.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *job
	f.jobs[job.ID.String()] = &copied
	return nil
}

func (f *fakeJobRepo) Delete(job *entity.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.jobs, job.ID.String())
	return nil
}

func (f *fakeJobRepo) Count() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.jobs)), nil
}

func (f *fakeJobRepo) CountByStatus(status string) (int64, error) { return 0, nil }

func (f *fakeJobRepo) CountForCompany(companyID string) (int64, error) { return 0, nil }

type fakeLogRepo struct {
	mu      sync.Mutex
	entries []*entity.ActivityLog
}

func (f *fakeLogRepo) Create(log *entity.ActivityLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, log)
	return nil
}

func (f *fakeLogRepo) FindForCompany(companyID string, filter entity.ActivityLogFilter, limit int) ([]*entity.ActivityLog, error) {
	return nil, nil
}

func (f *fakeLogRepo) FindAll(filter entity.ActivityLogFilter, limit int) ([]*entity.ActivityLog, error) {
	return nil, nil
}

func (f *fakeLogRepo) FindForEntity(entityType, entityID string) ([]*entity.ActivityLog, error) {
	return nil, nil
}

func newTestService(t *testing.T) (*ApplicationService, *fakeAppRepo, *fakeJobRepo, *entity.Admin) {
	t.Helper()

	appRepo := newFakeAppRepo()
	jobRepo := newFakeJobRepo()
	activity := NewActivityService(&fakeLogRepo{})

	svc := NewApplicationService(appRepo, jobRepo, nil, activity, validator.New())

	admin := &entity.Admin{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Name:      "Recruiter",
		Email:     "recruiter@acme.test",
	}
	return svc, appRepo, jobRepo, admin
}

func seedApplication(t *testing.T, repo *fakeAppRepo, companyID uuid.UUID, jobID *uuid.UUID, status string) *entity.Application {
	t.Helper()
	app := &entity.Application{
		ID:        uuid.New(),
		JobID:     jobID,
		CompanyID: companyID,
		FullName:  "Jane Candidate",
		Email:     uuid.NewString() + "@mail.test",
		Status:    status,
		AppliedAt: utils.NowUTC(),
	}
	if err := repo.Save(app); err != nil {
		t.Fatal(err)
	}
	return app
}

func TestUpdateStatusThenListReflectsChangeOnce(t *testing.T) {
	svc, appRepo, _, admin := newTestService(t)
	app := seedApplication(t, appRepo, admin.CompanyID, nil, entity.ApplicationPending)

	updated, apierr := svc.UpdateStatus(admin, app.ID.String(), &contract.UpdateStatusRequest{
		Status: entity.ApplicationShortlisted,
	})
	if apierr != nil {
		t.Fatalf("unexpected error: %v", apierr)
	}
	if updated.Status != entity.ApplicationShortlisted {
		t.Fatalf("status = %q, want shortlisted", updated.Status)
	}
	if updated.ReviewedBy == nil || *updated.ReviewedBy != admin.ID {
		t.Fatal("reviewer not stamped")
	}

	apps, apierr := svc.GetApplications(admin, entity.ApplicationFilter{})
	if apierr != nil {
		t.Fatalf("unexpected error: %v", apierr)
	}
	if len(apps) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(apps))
	}
	if apps[0].Status != entity.ApplicationShortlisted {
		t.Fatalf("list shows stale status %q", apps[0].Status)
	}
}

func TestUpdateStatusRejectsOtherTenants(t *testing.T) {
	svc, appRepo, _, admin := newTestService(t)
	foreign := seedApplication(t, appRepo, uuid.New(), nil, entity.ApplicationPending)

	_, apierr := svc.UpdateStatus(admin, foreign.ID.String(), &contract.UpdateStatusRequest{
		Status: entity.ApplicationRejected,
	})
	if apierr == nil || apierr.Code() != 404 {
		t.Fatalf("expected a 404 for another tenant's application, got %v", apierr)
	}

	stored, _ := appRepo.FindByID(foreign.ID.String())
	if stored.Status != entity.ApplicationPending {
		t.Fatal("foreign application was modified")
	}
}

func TestTrackCVViewPromotesPendingOnly(t *testing.T) {
	svc, appRepo, _, admin := newTestService(t)

	pending := seedApplication(t, appRepo, admin.CompanyID, nil, entity.ApplicationPending)
	shortlisted := seedApplication(t, appRepo, admin.CompanyID, nil, entity.ApplicationShortlisted)

	viewed, apierr := svc.TrackCVView(admin, pending.ID.String())
	if apierr != nil {
		t.Fatalf("unexpected error: %v", apierr)
	}
	if viewed.Status != entity.ApplicationCVViewed {
		t.Fatalf("pending application should move to cv_viewed, got %q", viewed.Status)
	}
	if viewed.CVViewedBy == nil || *viewed.CVViewedBy != admin.ID {
		t.Fatal("viewer not stamped")
	}

	kept, apierr := svc.TrackCVView(admin, shortlisted.ID.String())
	if apierr != nil {
		t.Fatalf("unexpected error: %v", apierr)
	}
	if kept.Status != entity.ApplicationShortlisted {
		t.Fatalf("shortlisted status must survive a CV view, got %q", kept.Status)
	}
	if kept.CVViewedAt == nil {
		t.Fatal("view timestamp missing")
	}
}

func TestSubmitRejectsClosedJobAndPassedDeadline(t *testing.T) {
	svc, _, jobRepo, admin := newTestService(t)

	closed := &entity.Job{
		ID:        uuid.New(),
		CompanyID: admin.CompanyID,
		Title:     "Closed role",
		Status:    entity.JobStatusClosed,
		Deadline:  entity.NewDateOnly(utils.NowUTC().AddDate(0, 1, 0)),
	}
	expired := &entity.Job{
		ID:        uuid.New(),
		CompanyID: admin.CompanyID,
		Title:     "Expired role",
		Status:    entity.JobStatusOpen,
		Deadline:  entity.NewDateOnly(utils.NowUTC().AddDate(0, 0, -1)),
	}
	_ = jobRepo.Save(closed)
	_ = jobRepo.Save(expired)

	req := &contract.SubmitApplicationRequest{Name: "Jane Doe", Email: "jane@mail.test"}

	if _, apierr := svc.Submit(closed.ID.String(), req, nil, nil); apierr == nil || apierr.Code() != 400 {
		t.Fatalf("expected closed-job rejection, got %v", apierr)
	}
	if _, apierr := svc.Submit(expired.ID.String(), req, nil, nil); apierr == nil || apierr.Code() != 400 {
		t.Fatalf("expected deadline rejection, got %v", apierr)
	}
}

func TestSubmitRejectsDuplicate(t *testing.T) {
	svc, appRepo, jobRepo, admin := newTestService(t)

	job := &entity.Job{
		ID:        uuid.New(),
		CompanyID: admin.CompanyID,
		Title:     "Open role",
		Status:    entity.JobStatusOpen,
		Deadline:  entity.NewDateOnly(utils.NowUTC().AddDate(0, 1, 0)),
	}
	_ = jobRepo.Save(job)

	existing := seedApplication(t, appRepo, admin.CompanyID, &job.ID, entity.ApplicationPending)

	req := &contract.SubmitApplicationRequest{Name: "Jane Doe", Email: existing.Email}
	_, apierr := svc.Submit(job.ID.String(), req, nil, nil)
	if apierr == nil || apierr.Code() != 409 {
		t.Fatalf("expected duplicate rejection, got %v", apierr)
	}
}

func TestBulkDeleteOnlyTargetsRequestedStatus(t *testing.T) {
	svc, appRepo, _, admin := newTestService(t)

	seedApplication(t, appRepo, admin.CompanyID, nil, entity.ApplicationRejected)
	seedApplication(t, appRepo, admin.CompanyID, nil, entity.ApplicationRejected)
	keepShortlisted := seedApplication(t, appRepo, admin.CompanyID, nil, entity.ApplicationShortlisted)
	keepForeign := seedApplication(t, appRepo, uuid.New(), nil, entity.ApplicationRejected)

	deleted, apierr := svc.BulkDelete(admin, &contract.BulkDeleteRequest{Status: entity.ApplicationRejected})
	if apierr != nil {
		t.Fatalf("unexpected error: %v", apierr)
	}
	if deleted != 2 {
		t.Fatalf("deleted %d rows, want 2", deleted)
	}

	if app, _ := appRepo.FindByID(keepShortlisted.ID.String()); app == nil {
		t.Fatal("shortlisted application must survive bulk delete")
	}
	if app, _ := appRepo.FindByID(keepForeign.ID.String()); app == nil {
		t.Fatal("other tenant's application must survive bulk delete")
	}
}

func TestBulkDeleteRejectsProtectedStatus(t *testing.T) {
	svc, _, _, admin := newTestService(t)

	_, apierr := svc.BulkDelete(admin, &contract.BulkDeleteRequest{Status: entity.ApplicationShortlisted})
	if apierr == nil || apierr.Code() != 400 {
		t.Fatalf("expected shortlisted to be rejected as a bulk-delete target, got %v", apierr)
	}
}

func TestBulkDeleteScopedToJob(t *testing.T) {
	svc, appRepo, _, admin := newTestService(t)

	jobA := uuid.New()
	jobB := uuid.New()
	seedApplication(t, appRepo, admin.CompanyID, &jobA, entity.ApplicationPending)
	keep := seedApplication(t, appRepo, admin.CompanyID, &jobB, entity.ApplicationPending)

	deleted, apierr := svc.BulkDelete(admin, &contract.BulkDeleteRequest{
		Status: entity.ApplicationPending,
		JobID:  jobA.String(),
	})
	if apierr != nil {
		t.Fatalf("unexpected error: %v", apierr)
	}
	if deleted != 1 {
		t.Fatalf("deleted %d rows, want 1", deleted)
	}
	if app, _ := appRepo.FindByID(keep.ID.String()); app == nil {
		t.Fatal("other job's application must survive")
	}
}
