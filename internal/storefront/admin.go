package storefront

import (
	"context"
	"net/http"
	"net/url"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/validator"
)

// AdminSummary fetches the platform headline numbers.
func (cl *Client) AdminSummary(ctx context.Context) (domain.AdminSummary, error) {
	const path = "/api/admin/summary"
	body, err := cl.do(ctx, call{
		method:   http.MethodGet,
		path:     path,
		auth:     authRequired,
		rejected: "could not load summary",
	})
	if err != nil {
		return domain.AdminSummary{}, err
	}
	var s domain.AdminSummary
	if err := decodeOne(path, body, &s, "summary", "data"); err != nil {
		return domain.AdminSummary{}, err
	}
	return s, nil
}

// AdminDashboard fetches the platform sales report.
func (cl *Client) AdminDashboard(ctx context.Context) (domain.Analytics, error) {
	return cl.analytics(ctx, call{
		method:   http.MethodGet,
		path:     "/api/admin/dashboard",
		auth:     authRequired,
		rejected: "could not load dashboard",
	}, "dashboard")
}

// Users lists every account.
func (cl *Client) Users(ctx context.Context) ([]domain.AccountSummary, error) {
	const path = "/api/admin/users"
	body, err := cl.do(ctx, call{
		method:   http.MethodGet,
		path:     path,
		auth:     authRequired,
		rejected: "could not load users",
	})
	if err != nil {
		return nil, err
	}
	out := []domain.AccountSummary{}
	if err := decodeField(path, body, &out, "users", "data"); err != nil {
		return nil, err
	}
	return out, nil
}

// SetUserRole changes the role of an account.
func (cl *Client) SetUserRole(ctx context.Context, userID string, in domain.RoleUpdate) (domain.AccountSummary, error) {
	if err := validator.Input(in); err != nil {
		return domain.AccountSummary{}, err
	}
	return cl.account(ctx, call{
		method:   http.MethodPut,
		path:     "/api/admin/users/" + url.PathEscape(userID) + "/role",
		body:     in,
		auth:     authRequired,
		rejected: "could not update role",
	})
}

// ToggleUser flips an account between active and suspended.
func (cl *Client) ToggleUser(ctx context.Context, userID string) (domain.AccountSummary, error) {
	return cl.account(ctx, call{
		method:   http.MethodPatch,
		path:     "/api/admin/users/" + url.PathEscape(userID) + "/toggle",
		auth:     authRequired,
		rejected: "could not update account",
	})
}

func (cl *Client) account(ctx context.Context, c call) (domain.AccountSummary, error) {
	body, err := cl.do(ctx, c)
	if err != nil {
		return domain.AccountSummary{}, err
	}
	var a domain.AccountSummary
	if err := decodeOne(c.path, body, &a, "user", "data"); err != nil {
		return domain.AccountSummary{}, err
	}
	return a, nil
}

func (cl *Client) analytics(ctx context.Context, c call, keys ...string) (domain.Analytics, error) {
	body, err := cl.do(ctx, c)
	if err != nil {
		return domain.Analytics{}, err
	}
	var a domain.Analytics
	if err := decodeOne(c.path, body, &a, append(keys, "data")...); err != nil {
		return domain.Analytics{}, err
	}
	return a, nil
}
