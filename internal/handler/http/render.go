package http

import (
	"net/http"

	"github.com/utafrali/storefront/internal/view"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httputil"
)

// renderStatus is the HTTP status of a resource. An error state keeps the
// status of the underlying failure so clients can branch on it.
func renderStatus[T any](res view.Resource[T], err error) int {
	switch res.Status {
	case view.StatusError:
		return apperrors.HTTPStatus(err)
	case view.StatusLoading:
		return http.StatusAccepted
	default:
		return http.StatusOK
	}
}

// writeResource renders a read as a view resource. The retry link is the
// request URL itself.
func writeResource[T any](w http.ResponseWriter, r *http.Request, v T, err error) {
	res := view.Load(v, err, r.URL.RequestURI())
	httputil.WriteJSON(w, renderStatus(res, err), httputil.Response{Data: res})
}
