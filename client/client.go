package client

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// fallbackErrorMessage is shown when the server response carries no
// usable message field.
const fallbackErrorMessage = "Something went wrong. Please try again."

// RequestError is a failed API call, carrying the HTTP status and the
// message extracted from the response body.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("api request failed (%d): %s", e.Status, e.Message)
}

// Client wraps the REST API. One instance serves both authenticated
// scopes: when a super-admin session is present its token wins,
// otherwise the admin token is used, otherwise the request goes out
// unauthenticated (public endpoints).
type Client struct {
	http  *resty.Client
	admin *SessionStore
	super *SessionStore
}

func New(baseURL string, admin, super *SessionStore) *Client {
	c := &Client{
		http:  resty.New().SetBaseURL(baseURL),
		admin: admin,
		super: super,
	}

	c.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if token := c.bearerToken(); token != "" {
			req.SetAuthToken(token)
		}
		return nil
	})
	return c
}

func (c *Client) bearerToken() string {
	if c.super != nil {
		if token := c.super.Token(); token != "" {
			return token
		}
	}
	if c.admin != nil {
		return c.admin.Token()
	}
	return ""
}

func (c *Client) Get(ctx context.Context, path string, query map[string]string, out any) error {
	req := c.http.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParams(query)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Get(path)
	return checkResponse(resp, err)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, resty.MethodPost, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, resty.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	resp, err := c.http.R().SetContext(ctx).Delete(path)
	return checkResponse(resp, err)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	return checkResponse(resp, err)
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return &RequestError{Status: 0, Message: fallbackErrorMessage}
	}
	if resp.IsError() {
		return &RequestError{
			Status:  resp.StatusCode(),
			Message: extractMessage(resp.Body()),
		}
	}
	return nil
}

// extractMessage pulls the server's error text out of the body: the
// "message" field of simple errors, or the first problem of a
// structured validation error.
func extractMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "message"); msg.Exists() && msg.String() != "" {
		return msg.String()
	}

	problems := gjson.GetBytes(body, "errors")
	if problems.IsObject() {
		var first string
		problems.ForEach(func(field, list gjson.Result) bool {
			if list.IsArray() && len(list.Array()) > 0 {
				first = fmt.Sprintf("%s: %s", field.String(), list.Array()[0].String())
				return false
			}
			return true
		})
		if first != "" {
			return first
		}
	}
	return fallbackErrorMessage
}
