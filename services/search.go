package services

import (
	"context"
	"errors"
	"strings"

	"rentai/models"
	"rentai/utils"
)

// ErrSearchUnavailable is returned while no natural-language search backend
// is configured.
var ErrSearchUnavailable = errors.New("search: natural-language search is not available yet")

// SearchRequest is a free-text query from the landing search box.
type SearchRequest struct {
	Query string
	Tab   models.StayTab
}

// SearchBackend turns a free-text query into a ranked listing subsequence.
type SearchBackend interface {
	Search(ctx context.Context, req SearchRequest) ([]models.Listing, error)
}

// UnavailableSearch is the placeholder backend. It records the query and
// always fails with ErrSearchUnavailable.
type UnavailableSearch struct {
	logger *utils.Logger
}

// NewUnavailableSearch creates the placeholder search backend.
func NewUnavailableSearch(logger *utils.Logger) *UnavailableSearch {
	return &UnavailableSearch{logger: logger}
}

func (s *UnavailableSearch) Search(ctx context.Context, req SearchRequest) ([]models.Listing, error) {
	q := strings.TrimSpace(req.Query)
	s.logger.Info("[search] Processing search (%s): %q", req.Tab, q)
	return nil, ErrSearchUnavailable
}
