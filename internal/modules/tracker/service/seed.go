package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"jobtrack/internal/modules/tracker/domain"
	"jobtrack/internal/platform/civil"
	"jobtrack/internal/platform/clock"
	apperrors "jobtrack/internal/platform/errors"
)

const (
	DefaultSeedCount = 48
	DefaultSeed      = 7
	seedSpreadDays   = 60
)

var sampleCompanies = []string{
	"Intuitive Surgical", "Notion", "eBay", "Cisco", "Western Digital",
	"Google", "Microsoft", "NVIDIA", "Meta", "Amazon",
	"Databricks", "Snowflake", "DoorDash", "Airbnb", "LinkedIn",
	"Stripe", "Square", "OpenAI", "Uber", "Lyft",
}

var sampleRoles = []string{
	"Data Scientist Intern", "Machine Learning Engineer Intern",
	"Software Engineer", "Software Engineer Intern",
	"Data Analyst", "Business Analyst",
	"Applied Scientist Intern", "People Analytics Intern",
	"Research Scientist Intern", "Analytics Engineer Intern",
	"Backend Engineer", "Frontend Engineer", "Full Stack Engineer",
	"Business Intelligence Analyst", "Quant Research Intern",
}

// sampleStatuses mixes canonical values with the synonyms spreadsheets use.
var sampleStatuses = []string{
	"Applied", "OA", "Interview", "Offer", "Rejected",
	"submitted", "online assessment", "assessment",
	"phone screen", "onsite", "offer accepted", "declined",
}

// Seed inserts count synthetic applications dated within the last 60 days.
// The same seed and day always produce the same rows.
func (s *ApplicationService) Seed(ctx context.Context, count int, seed int64) (string, int, error) {
	if count < 1 {
		return "", 0, fmt.Errorf("%w: seed count must be >= 1, got %d", apperrors.ErrInvalidInput, count)
	}
	rng := rand.New(rand.NewSource(seed))
	today := clock.Today(s.clock, s.loc)
	batchID := s.idGen.New()
	now := s.clock.Now().UTC()

	apps := make([]domain.Application, 0, count)
	for i := 0; i < count; i++ {
		day := civil.AddDays(today, -rng.Intn(seedSpreadDays+1))
		company := sampleCompanies[rng.Intn(len(sampleCompanies))]
		role := sampleRoles[rng.Intn(len(sampleRoles))]
		status, err := domain.NormalizeStatus(sampleStatuses[rng.Intn(len(sampleStatuses))], s.aliases)
		if err != nil {
			return "", 0, err
		}
		apps = append(apps, domain.Application{
			Company:     company,
			Role:        role,
			DateApplied: civil.Format(day),
			Status:      status,
			ImportBatch: batchID,
			CreatedAt:   now,
		})
	}
	sort.SliceStable(apps, func(i, j int) bool { return apps[i].DateApplied < apps[j].DateApplied })

	inserted, err := s.store.InsertBatch(ctx, apps)
	if err != nil {
		return "", 0, err
	}
	s.logger.Info("seeded sample applications", "batch", batchID, "rows", inserted, "seed", seed)
	return batchID, inserted, nil
}
