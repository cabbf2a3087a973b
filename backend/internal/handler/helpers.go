package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/community/shared/domain"
	"github.com/itchan-dev/community/shared/errors"
	mw "github.com/itchan-dev/community/shared/middleware"
)

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, &errors.ErrorWithStatusCode{Message: fmt.Sprintf("invalid %s: must be an integer", paramName), StatusCode: http.StatusBadRequest}
	}
	return val, nil
}

func parsePositiveParam(r *http.Request, name string) (int64, error) {
	val, err := parseIntParam(chi.URLParam(r, name), name)
	if err != nil {
		return 0, err
	}
	if val <= 0 {
		return 0, &errors.ErrorWithStatusCode{Message: fmt.Sprintf("invalid %s: must be positive", name), StatusCode: http.StatusBadRequest}
	}
	return val, nil
}

func parsePostId(r *http.Request) (domain.PostId, error) {
	return parsePositiveParam(r, "id")
}

// parsePage reads ?page=, defaulting to the first page.
func parsePage(r *http.Request) (int, error) {
	pageQuery := r.URL.Query().Get("page")
	if pageQuery == "" {
		return defaultPage, nil
	}
	page, err := parseIntParam(pageQuery, "page")
	if err != nil {
		return 0, err
	}
	return int(page), nil
}

// handleParam returns the unescaped {handle} segment, non-ascii nicknames
// arrive percent-encoded.
func handleParam(r *http.Request) (domain.TenantHandle, error) {
	handle, err := url.PathUnescape(chi.URLParam(r, "handle"))
	if err != nil {
		return "", &errors.ErrorWithStatusCode{Message: "invalid handle", StatusCode: http.StatusBadRequest}
	}
	return handle, nil
}

func requireUser(r *http.Request) (*domain.User, error) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		return nil, &errors.ErrorWithStatusCode{Message: "Not authorized", StatusCode: http.StatusUnauthorized}
	}
	return user, nil
}
