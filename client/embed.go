package client

import (
	"context"
	"net/url"
)

// EmbedState is the embedded dashboard's tenant-check outcome.
type EmbedState int

const (
	// EmbedOK means the URL tenant matches the session tenant.
	EmbedOK EmbedState = iota
	// EmbedMisconfigured means the host page omitted the company_id
	// parameter. The embed must show a blocking error instead of
	// trusting the session.
	EmbedMisconfigured
	// EmbedMismatch means the URL names a different tenant than the
	// signed-in admin. Only logout-and-relogin is offered.
	EmbedMismatch
)

// VerifyTenant compares the company_id the embed URL was configured
// with against the authenticated admin's tenant.
func VerifyTenant(query url.Values, sessionCompanyID string) EmbedState {
	embedCompany := query.Get("company_id")
	if embedCompany == "" {
		return EmbedMisconfigured
	}
	if embedCompany != sessionCompanyID {
		return EmbedMismatch
	}
	return EmbedOK
}

// EmbedGate wraps the API client for embedded views: until the tenant
// check passes, every data call is refused locally so a mismatched
// embed never issues a request. The backend still authorizes each call
// on its own; this gate only stops the UI from fetching.
type EmbedGate struct {
	state  EmbedState
	client *Client
}

func NewEmbedGate(query url.Values, sessionCompanyID string, apiClient *Client) *EmbedGate {
	return &EmbedGate{
		state:  VerifyTenant(query, sessionCompanyID),
		client: apiClient,
	}
}

func (g *EmbedGate) State() EmbedState {
	return g.state
}

func (g *EmbedGate) blocked() error {
	switch g.state {
	case EmbedMisconfigured:
		return &RequestError{Status: 400, Message: "Embed is misconfigured: missing company_id parameter"}
	case EmbedMismatch:
		return &RequestError{Status: 403, Message: "Security error: embed tenant does not match the signed-in account"}
	default:
		return nil
	}
}

func (g *EmbedGate) Get(ctx context.Context, path string, query map[string]string, out any) error {
	if err := g.blocked(); err != nil {
		return err
	}
	return g.client.Get(ctx, path, query, out)
}

func (g *EmbedGate) Patch(ctx context.Context, path string, body, out any) error {
	if err := g.blocked(); err != nil {
		return err
	}
	return g.client.Patch(ctx, path, body, out)
}
