package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"verdant/internal/types"
)

// ProfileRepository provides data access for user profiles. The engines
// mainly need the default city for weather lookups.
type ProfileRepository struct {
	db DBTX
}

// NewProfileRepository creates a ProfileRepository.
func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByUserID retrieves a user's profile.
func (repo *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*types.UserProfile, error) {
	row := repo.db.QueryRow(ctx,
		`SELECT user_id, email, default_city, created_at
		 FROM user_profiles WHERE user_id = $1`,
		userID,
	)

	var p types.UserProfile
	var defaultCity *string
	err := row.Scan(&p.UserID, &p.Email, &defaultCity, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.NewAppError(types.ErrCodeNotFoundProfile, "profile not found", nil)
		}
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to retrieve profile", err)
	}
	if defaultCity != nil {
		p.DefaultCity = *defaultCity
	}
	return &p, nil
}

// DefaultCity returns the user's configured city, or "" when the profile
// is missing or has no city. Evaluations without a city short-circuit to
// no adjustment, so the empty value is safe.
func (repo *ProfileRepository) DefaultCity(ctx context.Context, userID string) (string, error) {
	profile, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		var appErr *types.AppError
		if errors.As(err, &appErr) && appErr.Code == types.ErrCodeNotFoundProfile {
			return "", nil
		}
		return "", err
	}
	return profile.DefaultCity, nil
}

// SetDefaultCity updates the user's default city.
func (repo *ProfileRepository) SetDefaultCity(ctx context.Context, userID, city string) error {
	tag, err := repo.db.Exec(ctx,
		`UPDATE user_profiles SET default_city = $1 WHERE user_id = $2`,
		nilIfEmpty(city), userID,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to update default city", err)
	}
	if tag.RowsAffected() == 0 {
		return types.NewAppError(types.ErrCodeNotFoundProfile, "profile not found", nil)
	}
	return nil
}
