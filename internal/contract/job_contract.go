package contract

type CreateJobRequest struct {
	Title             string  `json:"title" validate:"required,min=2,max=255"`
	Description       string  `json:"description" validate:"required"`
	Requirements      string  `json:"requirements"`
	Location          string  `json:"location" validate:"max=255"`
	EmploymentType    string  `json:"employment_type" validate:"omitempty,oneof=full-time part-time contract internship"`
	SalaryRange       string  `json:"salary_range" validate:"max=255"`
	Deadline          *string `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	ShortlistCriteria *string `json:"shortlist_criteria"`
}

type UpdateJobRequest struct {
	Title             *string `json:"title" validate:"omitempty,min=2,max=255"`
	Description       *string `json:"description"`
	Requirements      *string `json:"requirements"`
	Location          *string `json:"location" validate:"omitempty,max=255"`
	EmploymentType    *string `json:"employment_type" validate:"omitempty,oneof=full-time part-time contract internship"`
	SalaryRange       *string `json:"salary_range" validate:"omitempty,max=255"`
	Deadline          *string `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	Status            *string `json:"status" validate:"omitempty,oneof=open closed archived"`
	ShortlistCriteria *string `json:"shortlist_criteria"`
}
