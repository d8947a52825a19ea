package service

import (
	"fmt"
	"sort"

	"talentgate/internal/contract"
	"talentgate/internal/domain/entity"
	"talentgate/internal/utils"
	"talentgate/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type NoteRepository interface {
	FindByID(id string) (*entity.CandidateNote, error)
	FindVisible(applicationID, adminID string) ([]*entity.CandidateNote, error)
	FindByApplication(applicationID string) ([]*entity.CandidateNote, error)
	Save(note *entity.CandidateNote) error
	Delete(note *entity.CandidateNote) error
}

// CRMService covers the recruiter-relationship layer on top of raw
// applications: notes, the talent pool, referral attribution and the
// merged candidate timeline.
type CRMService struct {
	NoteRepo NoteRepository
	AppRepo  ApplicationRepository
	LogRepo  ActivityLogRepository
	Activity *ActivityService
	Validate *validator.Validate
}

func NewCRMService(
	noteRepo NoteRepository,
	appRepo ApplicationRepository,
	logRepo ActivityLogRepository,
	activity *ActivityService,
	validate *validator.Validate,
) *CRMService {
	return &CRMService{
		NoteRepo: noteRepo,
		AppRepo:  appRepo,
		LogRepo:  logRepo,
		Activity: activity,
		Validate: validate,
	}
}

func (c *CRMService) AddNote(actor *entity.Admin, applicationID string, req *contract.AddNoteRequest) (*entity.CandidateNote, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := c.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	app, apierr := c.fetchApplication(actor, applicationID)
	if apierr != nil {
		return nil, apierr
	}

	now := utils.NowUTC()
	note := &entity.CandidateNote{
		ID:            uuid.New(),
		ApplicationID: app.ID,
		AdminID:       actor.ID,
		Note:          req.Content,
		IsPrivate:     req.IsPrivate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := c.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to save note on application %s: %v", app.ID, err)
		return nil, apierror.InternalServerError
	}

	note.Admin = *actor
	return note, nil
}

// GetNotes returns the notes the actor may read: all public notes plus
// the actor's own private ones.
func (c *CRMService) GetNotes(actor *entity.Admin, applicationID string) ([]*entity.CandidateNote, apierror.ErrorResponse) {
	app, apierr := c.fetchApplication(actor, applicationID)
	if apierr != nil {
		return nil, apierr
	}

	notes, err := c.NoteRepo.FindVisible(app.ID.String(), actor.ID.String())
	if err != nil {
		log.Errorf("failed to fetch notes for application %s: %v", app.ID, err)
		return nil, apierror.InternalServerError
	}
	return notes, nil
}

func (c *CRMService) UpdateNote(actor *entity.Admin, noteID string, req *contract.UpdateNoteRequest) (*entity.CandidateNote, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := c.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	note, apierr := c.fetchOwnNote(actor, noteID)
	if apierr != nil {
		return nil, apierr
	}

	note.Note = req.Content
	if req.IsPrivate != nil {
		note.IsPrivate = *req.IsPrivate
	}
	note.UpdatedAt = utils.NowUTC()

	if err := c.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to update note %s: %v", note.ID, err)
		return nil, apierror.InternalServerError
	}
	return note, nil
}

func (c *CRMService) DeleteNote(actor *entity.Admin, noteID string) apierror.ErrorResponse {
	note, apierr := c.fetchOwnNote(actor, noteID)
	if apierr != nil {
		return apierr
	}

	if err := c.NoteRepo.Delete(note); err != nil {
		log.Errorf("failed to delete note %s: %v", note.ID, err)
		return apierror.InternalServerError
	}
	return nil
}

// SetTalentPool adds or removes a candidate from the company's talent
// pool. Adding is idempotent and keeps the original add timestamp.
func (c *CRMService) SetTalentPool(actor *entity.Admin, applicationID string, inPool bool) (*entity.Application, apierror.ErrorResponse) {
	app, apierr := c.fetchApplication(actor, applicationID)
	if apierr != nil {
		return nil, apierr
	}

	if app.InTalentPool == inPool {
		return app, nil
	}

	app.InTalentPool = inPool
	if inPool {
		now := utils.NowUTC()
		app.TalentPoolAddedAt = &now
		app.TalentPoolAddedBy = &actor.ID
	} else {
		app.TalentPoolAddedAt = nil
		app.TalentPoolAddedBy = nil
	}

	if err := c.AppRepo.Save(app); err != nil {
		log.Errorf("failed to update talent pool flag on application %s: %v", app.ID, err)
		return nil, apierror.InternalServerError
	}

	c.Activity.RecordTalentPoolChange(actor, app, inPool)
	return app, nil
}

func (c *CRMService) GetTalentPool(actor *entity.Admin) ([]*entity.Application, apierror.ErrorResponse) {
	apps, err := c.AppRepo.FindTalentPool(actor.CompanyID.String())
	if err != nil {
		log.Errorf("failed to fetch talent pool for company %s: %v", actor.CompanyID, err)
		return nil, apierror.InternalServerError
	}
	return apps, nil
}

// SetReferral records who referred the candidate.
func (c *CRMService) SetReferral(actor *entity.Admin, applicationID string, req *contract.ReferralRequest) (*entity.Application, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := c.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	app, apierr := c.fetchApplication(actor, applicationID)
	if apierr != nil {
		return nil, apierr
	}

	app.ReferralSource = "referral"
	app.ReferredByName = req.ReferredBy
	if req.ReferralNote != "" {
		note := &entity.CandidateNote{
			ID:            uuid.New(),
			ApplicationID: app.ID,
			AdminID:       actor.ID,
			Note:          fmt.Sprintf("Referral note: %s", req.ReferralNote),
			CreatedAt:     utils.NowUTC(),
			UpdatedAt:     utils.NowUTC(),
		}
		if err := c.NoteRepo.Save(note); err != nil {
			log.Errorf("failed to save referral note on application %s: %v", app.ID, err)
		}
	}

	if err := c.AppRepo.Save(app); err != nil {
		log.Errorf("failed to save referral on application %s: %v", app.ID, err)
		return nil, apierror.InternalServerError
	}
	return app, nil
}

// GetTimeline merges status history, notes and talent-pool moves into a
// single feed sorted newest first.
func (c *CRMService) GetTimeline(actor *entity.Admin, applicationID string) ([]contract.TimelineEvent, apierror.ErrorResponse) {
	app, apierr := c.fetchApplication(actor, applicationID)
	if apierr != nil {
		return nil, apierr
	}

	var events []contract.TimelineEvent

	events = append(events, contract.TimelineEvent{
		Type:      "applied",
		Detail:    fmt.Sprintf("%s applied", app.FullName),
		CreatedAt: app.AppliedAt,
	})

	logs, err := c.LogRepo.FindForEntity(entity.EntityApplication, app.ID.String())
	if err != nil {
		log.Errorf("failed to fetch activity for application %s: %v", app.ID, err)
		return nil, apierror.InternalServerError
	}
	for _, entry := range logs {
		ev := contract.TimelineEvent{
			Type:      entry.ActionType,
			Detail:    entry.Description,
			CreatedAt: entry.CreatedAt,
		}
		if entry.Admin != nil {
			ev.ActorName = entry.Admin.Name
		}
		events = append(events, ev)
	}

	notes, err := c.NoteRepo.FindVisible(app.ID.String(), actor.ID.String())
	if err != nil {
		log.Errorf("failed to fetch notes for application %s: %v", app.ID, err)
		return nil, apierror.InternalServerError
	}
	for _, note := range notes {
		events = append(events, contract.TimelineEvent{
			Type:      "note",
			Detail:    note.Note,
			ActorName: note.Admin.Name,
			CreatedAt: note.CreatedAt,
		})
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

func (c *CRMService) fetchApplication(actor *entity.Admin, id string) (*entity.Application, apierror.ErrorResponse) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apierror.NewInvalidParamTypeError("id", "uuid")
	}

	app, err := c.AppRepo.FindOwned(id, actor.CompanyID.String())
	if err != nil {
		log.Errorf("failed to fetch application %s: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if app == nil {
		return nil, apierror.ApplicationNotFound
	}
	return app, nil
}

// fetchOwnNote resolves a note and checks the actor authored it; notes
// are only ever editable by their author.
func (c *CRMService) fetchOwnNote(actor *entity.Admin, noteID string) (*entity.CandidateNote, apierror.ErrorResponse) {
	if _, err := uuid.Parse(noteID); err != nil {
		return nil, apierror.NewInvalidParamTypeError("id", "uuid")
	}

	note, err := c.NoteRepo.FindByID(noteID)
	if err != nil {
		log.Errorf("failed to fetch note %s: %v", noteID, err)
		return nil, apierror.InternalServerError
	}
	if note == nil {
		return nil, apierror.NoteNotFoundError
	}
	if note.AdminID != actor.ID {
		return nil, apierror.NoteNotFoundError
	}
	return note, nil
}
