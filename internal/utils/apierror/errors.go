package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

var (
	MalformedJSONError  = NewSimple(400, "Malformed JSON body")
	InternalServerError = NewSimple(500, "Internal server error")
	UnauthorizedError   = NewSimple(401, "Missing or invalid credentials")
	NotFoundError       = NewSimple(404, "Resource not found")

	InvalidAuthTokenError   = NewSimple(401, "Invalid or expired token")
	CredentialsError        = NewSimple(401, "Invalid credentials")
	CompanyExistsError      = NewSimple(409, "Company already registered")
	JobNotFoundError        = NewSimple(404, "Job not found")
	ApplicationNotFound     = NewSimple(404, "Application not found")
	NoteNotFoundError       = NewSimple(404, "Note not found")
	ApplicationsClosedError = NewSimple(400, "This job posting is currently closed and not accepting applications")
	DeadlinePassedError     = NewSimple(400, "The deadline for this position has passed")
	DuplicateApplication    = NewSimple(409, "You have already applied to this job")
	InvalidJobStatusError   = NewSimple(400, "Status must be one of: open, closed, archived")
	InvalidBulkStatusError  = NewSimple(400, "Status must be one of: pending, cv_viewed, rejected")
	CVUnreadableError       = NewSimple(422, "Could not extract readable text from the CV file")
	NoFileError             = NewSimple(400, "No file provided")

	// Embedded dashboard guard
	EmbedMisconfiguredError = NewSimple(400, "Embed is misconfigured: missing company_id parameter")
	EmbedTenantMismatch     = NewSimple(403, "Security error: embed tenant does not match the signed-in account")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "email":
			problems[field] = append(problems[field], "Value must be a valid email address")
		case "oneof":
			problems[field] = append(problems[field], "Value must be one of: "+fe.Param())
		case "hasupper":
			problems[field] = append(problems[field], "Value must have at least one uppercase character")
		case "haslower":
			problems[field] = append(problems[field], "Value must have at least one lowercase character")
		case "hasdigit":
			problems[field] = append(problems[field], "Value must have at least one number")
		case "datetime":
			problems[field] = append(problems[field], "Value must be a date in YYYY-MM-DD format")

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

func NewInvalidParamTypeError(param, expected string) *APIError {
	return NewSimple(400, "Invalid value for %q, expected %s", param, expected)
}

func NewFileTooLargeError(limit string) *APIError {
	return NewSimple(400, "File size exceeds the maximum allowed size of %s", limit)
}

func NewInvalidFileTypeError(allowed []string) *APIError {
	return NewSimple(400, "Invalid file type. Allowed types: %s", strings.Join(allowed, ", "))
}
