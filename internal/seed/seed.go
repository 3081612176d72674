package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/unirecords/internal/app/services"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
)

// DefaultDepartments are created on first start when seeding is enabled
var DefaultDepartments = []struct {
	ID   int64
	Name string
}{
	{ID: 1, Name: "Computer Science"},
	{ID: 2, Name: "Mathematics"},
	{ID: 3, Name: "Physics"},
}

// CreateDefaultData creates the default departments if they don't exist.
// Existing ids are left untouched, so running it twice is harmless.
func CreateDefaultData(ctx context.Context, recordsService *services.RecordsService, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Departments)...")
	var finalErr error // To collect potential errors without stopping the process

	created := 0
	for _, d := range DefaultDepartments {
		_, err := recordsService.CreateDepartment(ctx, d.ID, d.Name)
		switch {
		case err == nil:
			created++
		case errors.Is(err, apperrors.ErrDuplicateKey):
			lgr.Debug().Int64("id", d.ID).Msg("Default department already exists")
		default:
			lgr.Error().Err(err).Str("department", d.Name).Msg("Error creating default department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Int("created", created).Msg("Default data check finished")
	return finalErr
}
