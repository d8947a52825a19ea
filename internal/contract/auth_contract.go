package contract

type RegisterRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=2,max=255"`
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72,hasupper,haslower,hasdigit"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminSummary is the identity payload handed to the client next to the
// token; the session store persists it verbatim.
type AdminSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CompanyID string `json:"company_id"`
}

type AuthResponse struct {
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token"`
	Admin   AdminSummary `json:"admin"`
}

type SuperAdminSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SuperAdminAuthResponse struct {
	Token      string            `json:"token"`
	SuperAdmin SuperAdminSummary `json:"super_admin"`
}
