package service

import (
	"strconv"
	"strings"

	"talentgate/internal/domain/entity"
	"talentgate/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

// SearchService answers structured candidate searches across a
// company's whole applicant base, including orphaned applications whose
// job was deleted.
type SearchService struct {
	AppRepo ApplicationRepository
}

func NewSearchService(appRepo ApplicationRepository) *SearchService {
	return &SearchService{AppRepo: appRepo}
}

// SearchParams mirror the dashboard's search form query string.
type SearchParams struct {
	Keyword         string
	MinExperience   string
	MaxExperience   string
	CurrentPosition string
	Status          string
	HasPortfolio    bool
	HasLinkedIn     bool
}

func (s *SearchService) Search(actor *entity.Admin, params SearchParams) ([]*entity.Application, apierror.ErrorResponse) {
	filter := entity.CandidateSearchFilter{
		CurrentPosition: params.CurrentPosition,
		Status:          params.Status,
		HasPortfolio:    params.HasPortfolio,
		HasLinkedIn:     params.HasLinkedIn,
	}

	if params.MinExperience != "" {
		n, err := strconv.Atoi(params.MinExperience)
		if err != nil || n < 0 {
			return nil, apierror.NewInvalidParamTypeError("min_experience", "non-negative int")
		}
		filter.MinExperience = &n
	}
	if params.MaxExperience != "" {
		n, err := strconv.Atoi(params.MaxExperience)
		if err != nil || n < 0 {
			return nil, apierror.NewInvalidParamTypeError("max_experience", "non-negative int")
		}
		filter.MaxExperience = &n
	}

	apps, err := s.AppRepo.Search(actor.CompanyID.String(), filter)
	if err != nil {
		log.Errorf("failed to search candidates for company %s: %v", actor.CompanyID, err)
		return nil, apierror.InternalServerError
	}

	if params.Keyword == "" {
		return apps, nil
	}
	return filterByKeyword(apps, params.Keyword), nil
}

// filterByKeyword matches the free-text term against name, email,
// position, cover letter and any extracted CV text.
func filterByKeyword(apps []*entity.Application, keyword string) []*entity.Application {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	matched := apps[:0]
	for _, app := range apps {
		haystack := strings.ToLower(app.FullName + " " + app.Email + " " + app.CurrentPosition + " " + app.CoverLetter)
		if app.ParsedCVText != nil {
			haystack += " " + strings.ToLower(*app.ParsedCVText)
		}
		if strings.Contains(haystack, kw) {
			matched = append(matched, app)
		}
	}
	return matched
}
