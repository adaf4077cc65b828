package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"verdant/internal/types"
)

// PlantRepository provides data access for the plants table.
type PlantRepository struct {
	db       DBTX
	calendar CalendarInvalidator
}

// NewPlantRepository creates a PlantRepository backed by the given
// database connection (pool or transaction). calendar may be nil when no
// calendar cache is in play (the batch worker, transaction-scoped repos).
func NewPlantRepository(db DBTX, calendar CalendarInvalidator) *PlantRepository {
	return &PlantRepository{db: db, calendar: calendar}
}

const plantColumns = `p.id, p.user_id, p.name, p.nickname, p.species,
	p.location, p.light, p.notes, p.photo_url, p.created_at, p.updated_at`

func scanPlant(row rowScanner) (*types.Plant, error) {
	var p types.Plant
	var (
		nickname *string
		species  *string
		light    *string
		notes    *string
		photoURL *string
	)

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&nickname,
		&species,
		&p.Location,
		&light,
		&notes,
		&photoURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if nickname != nil {
		p.Nickname = *nickname
	}
	if species != nil {
		p.Species = *species
	}
	if light != nil {
		p.Light = types.LightExposure(*light)
	}
	if notes != nil {
		p.Notes = *notes
	}
	if photoURL != nil {
		p.PhotoURL = *photoURL
	}

	return &p, nil
}

// Create inserts a plant, repairing the location enum to a safe value.
func (repo *PlantRepository) Create(ctx context.Context, p *types.Plant) error {
	if p.Name == "" {
		return types.NewAppError(types.ErrCodeValidationMissingField, "plant name is required", nil)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Location = types.RepairPlantLocation(string(p.Location))

	_, err := repo.db.Exec(ctx,
		`INSERT INTO plants (
			id, user_id, name, nickname, species,
			location, light, notes, photo_url,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			NOW(), NOW()
		)`,
		p.ID,
		p.UserID,
		p.Name,
		nilIfEmpty(p.Nickname),
		nilIfEmpty(p.Species),
		p.Location,
		nilIfEmpty(string(p.Light)),
		nilIfEmpty(p.Notes),
		nilIfEmpty(p.PhotoURL),
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to create plant", err)
	}
	return nil
}

// GetByID retrieves a plant scoped to its owner.
func (repo *PlantRepository) GetByID(ctx context.Context, id, userID string) (*types.Plant, error) {
	row := repo.db.QueryRow(ctx,
		`SELECT `+plantColumns+` FROM plants p WHERE p.id = $1 AND p.user_id = $2`,
		id, userID,
	)

	p, err := scanPlant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.NewAppError(types.ErrCodeNotFoundPlant, "plant not found", nil)
		}
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to retrieve plant", err)
	}
	return p, nil
}

// ListByUser retrieves all of a user's plants ordered by name.
func (repo *PlantRepository) ListByUser(ctx context.Context, userID string) ([]*types.Plant, error) {
	rows, err := repo.db.Query(ctx,
		`SELECT `+plantColumns+` FROM plants p WHERE p.user_id = $1 ORDER BY p.name ASC`,
		userID,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to list plants", err)
	}
	defer rows.Close()

	var out []*types.Plant
	for rows.Next() {
		p, scanErr := scanPlant(rows)
		if scanErr != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan plant", scanErr)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to read plants", err)
	}
	return out, nil
}

// MapByIDs loads the given plants into a map keyed by ID. Used by the
// batch adjuster to pair reminders with their plants.
func (repo *PlantRepository) MapByIDs(ctx context.Context, userID string, ids []string) (map[string]*types.Plant, error) {
	if len(ids) == 0 {
		return map[string]*types.Plant{}, nil
	}

	rows, err := repo.db.Query(ctx,
		`SELECT `+plantColumns+` FROM plants p WHERE p.user_id = $1 AND p.id = ANY($2)`,
		userID, ids,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to load plants", err)
	}
	defer rows.Close()

	out := make(map[string]*types.Plant, len(ids))
	for rows.Next() {
		p, scanErr := scanPlant(rows)
		if scanErr != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan plant", scanErr)
		}
		out[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to read plants", err)
	}
	return out, nil
}

// Update writes the mutable plant fields.
func (repo *PlantRepository) Update(ctx context.Context, p *types.Plant) error {
	p.Location = types.RepairPlantLocation(string(p.Location))

	tag, err := repo.db.Exec(ctx,
		`UPDATE plants SET
			name = $1,
			nickname = $2,
			species = $3,
			location = $4,
			light = $5,
			notes = $6,
			photo_url = $7,
			updated_at = NOW()
		 WHERE id = $8 AND user_id = $9`,
		p.Name,
		nilIfEmpty(p.Nickname),
		nilIfEmpty(p.Species),
		p.Location,
		nilIfEmpty(string(p.Light)),
		nilIfEmpty(p.Notes),
		nilIfEmpty(p.PhotoURL),
		p.ID,
		p.UserID,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to update plant", err)
	}
	if tag.RowsAffected() == 0 {
		return types.NewAppError(types.ErrCodeNotFoundPlant, "plant not found", nil)
	}
	return nil
}

// Delete removes a plant and deactivates its reminders.
func (repo *PlantRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := repo.db.Exec(ctx,
		`DELETE FROM plants WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to delete plant", err)
	}
	if tag.RowsAffected() == 0 {
		return types.NewAppError(types.ErrCodeNotFoundPlant, "plant not found", nil)
	}

	_, err = repo.db.Exec(ctx,
		`UPDATE reminders SET is_active = FALSE, updated_at = NOW()
		 WHERE plant_id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to deactivate plant reminders", err)
	}

	// Deactivated reminders must stop showing on cached month views.
	repo.invalidate(userID)
	return nil
}

func (repo *PlantRepository) invalidate(userID string) {
	if repo.calendar != nil {
		repo.calendar.InvalidateUser(userID)
	}
}
