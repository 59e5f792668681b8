package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gymloop/accounts/internal/accounts/listing"
	"github.com/gymloop/accounts/internal/accounts/store"
	"github.com/gymloop/accounts/internal/accounts/validate"
	"github.com/gymloop/accounts/pkg/httpx"
)

// writeViolations flattens aggregated validation failures into the standard
// {statusCode, message} error body.
func writeViolations(w http.ResponseWriter, v validate.Violations) {
	httpx.WriteError(w, http.StatusBadRequest, strings.Join(v.Messages(), "; "))
}

// writeStoreError maps store sentinels onto wire responses. notFoundMsg names
// the missing resource ("User not found" / "Profile not found").
func writeStoreError(w http.ResponseWriter, log *slog.Logger, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, store.ErrAlreadyExists):
		httpx.WriteError(w, http.StatusBadRequest, "Username already exists")
	default:
		log.Error("store operation failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// parseListOptions translates page/size/sort/filter query parameters against
// the endpoint's allow-lists.
func parseListOptions(q url.Values, sortAllowed, filterAllowed []string) (store.ListOptions, error) {
	page, err := listing.ParsePage(q)
	if err != nil {
		return store.ListOptions{}, err
	}

	sort, err := listing.ParseSort(q.Get("sort"), sortAllowed)
	if err != nil {
		return store.ListOptions{}, err
	}

	filter, err := listing.ParseFilter(q.Get("filter"), filterAllowed)
	if err != nil {
		return store.ListOptions{}, err
	}

	return store.ListOptions{Page: page, Sort: sort, Filter: filter}, nil
}
