package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"jobtrack/internal/modules/tracker/domain"
)

var exportHeader = []string{"id", "company", "role", "date_applied", "status", "response_date"}

// Export writes the filtered applications as CSV. A zero limit exports every
// matching row.
func (s *ApplicationService) Export(ctx context.Context, w io.Writer, filter domain.ListFilter) (int, error) {
	if filter.Limit == 0 {
		filter.Limit = domain.Unlimited
	}
	apps, err := s.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}
	for _, app := range apps {
		record := []string{
			strconv.FormatInt(app.ID, 10),
			app.Company,
			app.Role,
			app.DateApplied,
			string(app.Status),
			app.ResponseDate,
		}
		if err := writer.Write(record); err != nil {
			return 0, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}
	return len(apps), nil
}
