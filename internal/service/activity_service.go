package service

import (
	"encoding/json"
	"fmt"
	"strconv"

	"talentgate/internal/domain/entity"
	"talentgate/internal/utils"
	"talentgate/internal/utils/apierror"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

const defaultLogLimit = 100

type ActivityLogRepository interface {
	Create(log *entity.ActivityLog) error
	FindForCompany(companyID string, filter entity.ActivityLogFilter, limit int) ([]*entity.ActivityLog, error)
	FindAll(filter entity.ActivityLogFilter, limit int) ([]*entity.ActivityLog, error)
	FindForEntity(entityType, entityID string) ([]*entity.ActivityLog, error)
}

// ActivityService records the audit trail and serves it back, tenant
// scoped. Writes happen on a goroutine so request latency never pays
// for bookkeeping; a failed insert is logged and dropped.
type ActivityService struct {
	LogRepo ActivityLogRepository
}

func NewActivityService(logRepo ActivityLogRepository) *ActivityService {
	return &ActivityService{LogRepo: logRepo}
}

func (a *ActivityService) Record(companyID, adminID *uuid.UUID, actionType, entityType string, entityID *uuid.UUID, description string, metadata map[string]any) {
	entry := &entity.ActivityLog{
		ID:          uuid.New(),
		CompanyID:   companyID,
		AdminID:     adminID,
		ActionType:  actionType,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
		CreatedAt:   utils.NowUTC(),
	}

	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err == nil {
			s := string(raw)
			entry.Metadata = &s
		}
	}

	go func() {
		if err := a.LogRepo.Create(entry); err != nil {
			log.Errorf("failed to record activity %s: %v", actionType, err)
		}
	}()
}

func (a *ActivityService) RecordCompanyRegistered(company *entity.Company, admin *entity.Admin) {
	a.Record(&company.ID, &admin.ID, entity.ActionCompanyRegistered, entity.EntityCompany, &company.ID,
		fmt.Sprintf("Company %q registered", company.CompanyName), nil)
}

func (a *ActivityService) RecordJobCreated(admin *entity.Admin, job *entity.Job) {
	a.Record(&admin.CompanyID, &admin.ID, entity.ActionJobCreated, entity.EntityJob, &job.ID,
		fmt.Sprintf("Created job %q", job.Title), nil)
}

func (a *ActivityService) RecordJobUpdated(admin *entity.Admin, job *entity.Job) {
	a.Record(&admin.CompanyID, &admin.ID, entity.ActionJobUpdated, entity.EntityJob, &job.ID,
		fmt.Sprintf("Updated job %q", job.Title), nil)
}

func (a *ActivityService) RecordJobStatusChanged(admin *entity.Admin, job *entity.Job, from string) {
	a.Record(&admin.CompanyID, &admin.ID, entity.ActionJobStatusChanged, entity.EntityJob, &job.ID,
		fmt.Sprintf("Job %q moved from %s to %s", job.Title, from, job.Status),
		map[string]any{"from": from, "to": job.Status})
}

func (a *ActivityService) RecordJobDeleted(admin *entity.Admin, job *entity.Job) {
	a.Record(&admin.CompanyID, &admin.ID, entity.ActionJobDeleted, entity.EntityJob, &job.ID,
		fmt.Sprintf("Deleted job %q", job.Title), nil)
}

func (a *ActivityService) RecordApplicationStatusChanged(admin *entity.Admin, app *entity.Application, from string) {
	a.Record(&admin.CompanyID, &admin.ID, entity.ActionApplicationStatusChanged, entity.EntityApplication, &app.ID,
		fmt.Sprintf("Application from %s moved from %s to %s", app.FullName, from, app.Status),
		map[string]any{"from": from, "to": app.Status})
}

func (a *ActivityService) RecordApplicationDeleted(admin *entity.Admin, app *entity.Application) {
	a.Record(&admin.CompanyID, &admin.ID, entity.ActionApplicationDeleted, entity.EntityApplication, &app.ID,
		fmt.Sprintf("Deleted application from %s", app.FullName), nil)
}

func (a *ActivityService) RecordCVViewed(admin *entity.Admin, app *entity.Application) {
	a.Record(&admin.CompanyID, &admin.ID, entity.ActionCVViewed, entity.EntityApplication, &app.ID,
		fmt.Sprintf("Viewed CV of %s", app.FullName), nil)
}

func (a *ActivityService) RecordTalentPoolChange(admin *entity.Admin, app *entity.Application, added bool) {
	action := entity.ActionTalentPoolRemoved
	verb := "Removed %s from"
	if added {
		action = entity.ActionTalentPoolAdded
		verb = "Added %s to"
	}
	a.Record(&admin.CompanyID, &admin.ID, action, entity.EntityApplication, &app.ID,
		fmt.Sprintf(verb+" the talent pool", app.FullName), nil)
}

func (a *ActivityService) GetCompanyLogs(admin *entity.Admin, filter entity.ActivityLogFilter, rawLimit string) ([]*entity.ActivityLog, apierror.ErrorResponse) {
	limit, apierr := parseLogLimit(rawLimit)
	if apierr != nil {
		return nil, apierr
	}

	logs, err := a.LogRepo.FindForCompany(admin.CompanyID.String(), filter, limit)
	if err != nil {
		log.Errorf("failed to fetch activity logs for company %s: %v", admin.CompanyID, err)
		return nil, apierror.InternalServerError
	}
	return logs, nil
}

func (a *ActivityService) GetEntityLogs(admin *entity.Admin, entityType, entityID string) ([]*entity.ActivityLog, apierror.ErrorResponse) {
	logs, err := a.LogRepo.FindForEntity(entityType, entityID)
	if err != nil {
		log.Errorf("failed to fetch activity logs for %s %s: %v", entityType, entityID, err)
		return nil, apierror.InternalServerError
	}

	// Entity lookups are not tenant scoped in SQL; filter here.
	visible := logs[:0]
	for _, entry := range logs {
		if entry.CompanyID != nil && *entry.CompanyID == admin.CompanyID {
			visible = append(visible, entry)
		}
	}
	return visible, nil
}

// GetPlatformLogs is the super-admin view across all tenants.
func (a *ActivityService) GetPlatformLogs(filter entity.ActivityLogFilter, rawLimit string) ([]*entity.ActivityLog, apierror.ErrorResponse) {
	limit, apierr := parseLogLimit(rawLimit)
	if apierr != nil {
		return nil, apierr
	}

	logs, err := a.LogRepo.FindAll(filter, limit)
	if err != nil {
		log.Errorf("failed to fetch platform activity logs: %v", err)
		return nil, apierror.InternalServerError
	}
	return logs, nil
}

func parseLogLimit(raw string) (int, apierror.ErrorResponse) {
	if raw == "" {
		return defaultLogLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > 500 {
		return 0, apierror.NewInvalidParamTypeError("limit", "int between 1 and 500")
	}
	return limit, nil
}
