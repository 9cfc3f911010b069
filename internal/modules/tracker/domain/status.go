package domain

import (
	"fmt"
	"strings"

	apperrors "jobtrack/internal/platform/errors"
)

type Status string

const (
	StatusApplied   Status = "Applied"
	StatusOA        Status = "OA"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

// Statuses lists the allowed values in pipeline order.
func Statuses() []Status {
	return []Status{StatusApplied, StatusOA, StatusInterview, StatusOffer, StatusRejected}
}

func (s Status) Validate() error {
	switch s {
	case StatusApplied, StatusOA, StatusInterview, StatusOffer, StatusRejected:
		return nil
	default:
		return fmt.Errorf("%w: unsupported status %q", apperrors.ErrInvalidInput, string(s))
	}
}

// ParseStatus accepts the canonical spelling only.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// DefaultAliases maps free-form spreadsheet statuses onto the enumeration.
// Keys are lowercase.
func DefaultAliases() map[string]Status {
	return map[string]Status{
		"submitted":         StatusApplied,
		"online assessment": StatusOA,
		"assessment":        StatusOA,
		"phone screen":      StatusInterview,
		"onsite":            StatusInterview,
		"offer accepted":    StatusOffer,
		"declined":          StatusRejected,
	}
}

// NormalizeStatus maps raw onto the enumeration: alias lookup first, then
// "oa" to OA, then title case. The result is validated.
func NormalizeStatus(raw string, aliases map[string]Status) (Status, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return "", fmt.Errorf("%w: status is required", apperrors.ErrInvalidInput)
	}
	if aliases == nil {
		aliases = DefaultAliases()
	}
	if s, ok := aliases[key]; ok {
		return s, s.Validate()
	}
	if key == "oa" {
		return StatusOA, nil
	}
	s := Status(titleCase(key))
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// MergeAliases overlays extra onto the defaults. Extra values must already be
// canonical statuses.
func MergeAliases(extra map[string]string) (map[string]Status, error) {
	out := DefaultAliases()
	for raw, target := range extra {
		s, err := ParseStatus(target)
		if err != nil {
			return nil, fmt.Errorf("status alias %q: %w", raw, err)
		}
		out[strings.ToLower(strings.TrimSpace(raw))] = s
	}
	return out, nil
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
