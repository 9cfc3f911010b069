package domain

import (
	"fmt"
	"strings"
	"time"

	"jobtrack/internal/platform/civil"
	apperrors "jobtrack/internal/platform/errors"
)

const DefaultListLimit = 100

// Application is one row of the applications table. Dates are kept as the
// stored text so that rows written by other tools survive a round trip.
type Application struct {
	ID           int64
	Company      string
	Role         string
	DateApplied  string
	Status       Status
	ResponseDate string
	ImportBatch  string
	CreatedAt    time.Time
}

func (a Application) Validate() error {
	if strings.TrimSpace(a.Company) == "" {
		return fmt.Errorf("%w: company is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(a.Role) == "" {
		return fmt.Errorf("%w: role is required", apperrors.ErrInvalidInput)
	}
	if err := a.Status.Validate(); err != nil {
		return err
	}
	if _, err := civil.Parse(a.DateApplied); err != nil {
		return fmt.Errorf("%w: date applied: %v", apperrors.ErrInvalidInput, err)
	}
	if a.ResponseDate != "" {
		if _, err := civil.Parse(a.ResponseDate); err != nil {
			return fmt.Errorf("%w: response date: %v", apperrors.ErrInvalidInput, err)
		}
	}
	return nil
}

// ListFilter narrows a List call. Zero values mean "no filter"; Limit <= 0
// means DefaultListLimit.
type ListFilter struct {
	Status        Status
	DateStart     string
	DateEnd       string
	CompanySubstr string
	RoleSubstr    string
	ImportBatch   string
	Limit         int
}

// Unlimited is the Limit value for snapshot reads.
const Unlimited = -1

func (f ListFilter) Validate() error {
	if f.Status != "" {
		if err := f.Status.Validate(); err != nil {
			return err
		}
	}
	for name, value := range map[string]string{"date start": f.DateStart, "date end": f.DateEnd} {
		if value == "" {
			continue
		}
		if _, err := civil.Parse(value); err != nil {
			return fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidInput, name, err)
		}
	}
	return nil
}
