package handler

import (
	"net/http"

	"talentgate/internal/contract"
	"talentgate/internal/domain/entity"
	"talentgate/internal/utils"
	"talentgate/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type CRMService interface {
	AddNote(actor *entity.Admin, applicationID string, req *contract.AddNoteRequest) (*entity.CandidateNote, apierror.ErrorResponse)
	GetNotes(actor *entity.Admin, applicationID string) ([]*entity.CandidateNote, apierror.ErrorResponse)
	UpdateNote(actor *entity.Admin, noteID string, req *contract.UpdateNoteRequest) (*entity.CandidateNote, apierror.ErrorResponse)
	DeleteNote(actor *entity.Admin, noteID string) apierror.ErrorResponse
	SetTalentPool(actor *entity.Admin, applicationID string, inPool bool) (*entity.Application, apierror.ErrorResponse)
	GetTalentPool(actor *entity.Admin) ([]*entity.Application, apierror.ErrorResponse)
	SetReferral(actor *entity.Admin, applicationID string, req *contract.ReferralRequest) (*entity.Application, apierror.ErrorResponse)
	GetTimeline(actor *entity.Admin, applicationID string) ([]contract.TimelineEvent, apierror.ErrorResponse)
}

type DefaultCRMRoute struct {
	CRMService CRMService
}

func NewCRMDefault(crmService CRMService) *DefaultCRMRoute {
	return &DefaultCRMRoute{CRMService: crmService}
}

func (r *DefaultCRMRoute) AddNote(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.AddNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	note, apierr := r.CRMService.AddNote(admin, c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, note)
}

func (r *DefaultCRMRoute) GetNotes(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	notes, apierr := r.CRMService.GetNotes(admin, c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"notes": notes})
}

func (r *DefaultCRMRoute) UpdateNote(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	note, apierr := r.CRMService.UpdateNote(admin, c.Param("noteId"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (r *DefaultCRMRoute) DeleteNote(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if apierr := r.CRMService.DeleteNote(admin, c.Param("noteId")); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}

func (r *DefaultCRMRoute) AddToTalentPool(c echo.Context) error {
	return r.setTalentPool(c, true)
}

func (r *DefaultCRMRoute) RemoveFromTalentPool(c echo.Context) error {
	return r.setTalentPool(c, false)
}

func (r *DefaultCRMRoute) setTalentPool(c echo.Context, inPool bool) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	app, apierr := r.CRMService.SetTalentPool(admin, c.Param("id"), inPool)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, app)
}

func (r *DefaultCRMRoute) GetTalentPool(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	apps, apierr := r.CRMService.GetTalentPool(admin)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"candidates": apps})
}

func (r *DefaultCRMRoute) SetReferral(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.ReferralRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	app, apierr := r.CRMService.SetReferral(admin, c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, app)
}

func (r *DefaultCRMRoute) GetTimeline(c echo.Context) error {
	admin, cerr := utils.GetAdminFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	timeline, apierr := r.CRMService.GetTimeline(admin, c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"timeline": timeline})
}
