package storefront

import (
	"context"
	"net/http"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/httpclient"
	"github.com/utafrali/storefront/pkg/validator"
)

type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Login exchanges credentials for a user and a session token.
func (cl *Client) Login(ctx context.Context, creds domain.Credentials) (domain.User, string, error) {
	if err := validator.Input(creds); err != nil {
		return domain.User{}, "", err
	}
	return cl.authenticate(ctx, call{
		method:   http.MethodPost,
		path:     "/api/login",
		body:     creds,
		auth:     authNone,
		rejected: "login failed",
	})
}

// Register creates an account and returns its session.
func (cl *Client) Register(ctx context.Context, input domain.Registration) (domain.User, string, error) {
	if err := validator.Input(input); err != nil {
		return domain.User{}, "", err
	}
	return cl.authenticate(ctx, call{
		method: http.MethodPost,
		path:   "/api/register",
		body:   input,
		auth:   authNone,
		overrides: httpclient.StatusMessages{
			http.StatusConflict: "an account with this email already exists",
		},
		rejected: "registration failed",
	})
}

func (cl *Client) authenticate(ctx context.Context, c call) (domain.User, string, error) {
	body, err := cl.do(ctx, c)
	if err != nil {
		return domain.User{}, "", err
	}
	var out authResponse
	if err := decode(c.path, body, &out); err != nil {
		return domain.User{}, "", err
	}
	if out.Token == "" {
		return domain.User{}, "", httpclient.MapStatus(http.StatusUnauthorized, "", nil)
	}
	return out.User, out.Token, nil
}
