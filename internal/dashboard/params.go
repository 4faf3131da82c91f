package dashboard

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/lueurxax/launch-dashboard/internal/core/domain"
	apperrors "github.com/lueurxax/launch-dashboard/internal/core/errors"
	"github.com/lueurxax/launch-dashboard/internal/dataset"
)

// Query parameter names.
const (
	paramSite = "site"
	paramMin  = "min"
	paramMax  = "max"
)

// parseSite reads the site selector. A missing value selects all sites.
func parseSite(r *http.Request) (string, error) {
	site := strings.TrimSpace(r.URL.Query().Get(paramSite))
	if site == "" {
		return domain.AllSites, nil
	}

	if !domain.IsKnownSite(site) {
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownSite, site)
	}

	return site, nil
}

// parseRange reads the payload range. Missing bounds default to the
// dataset's observed payload bounds, which is the slider's initial value.
func parseRange(r *http.Request, ds *dataset.Dataset) (PayloadRange, error) {
	q := r.URL.Query()

	low, err := parseBound(q.Get(paramMin), ds.MinPayload)
	if err != nil {
		return PayloadRange{}, fmt.Errorf("%s: %w", paramMin, err)
	}

	high, err := parseBound(q.Get(paramMax), ds.MaxPayload)
	if err != nil {
		return PayloadRange{}, fmt.Errorf("%s: %w", paramMax, err)
	}

	if low > high {
		return PayloadRange{}, fmt.Errorf("%w: min %v is greater than max %v", apperrors.ErrInvalidRange, low, high)
	}

	return PayloadRange{Low: low, High: high}, nil
}

func parseBound(raw string, fallback float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", apperrors.ErrInvalidRange, raw)
	}

	return v, nil
}
