package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"verdant/internal/types"
)

// ListRemindersParams filters reminder list queries.
type ListRemindersParams struct {
	PlantID    string
	ActiveOnly bool
}

// ReminderStats summarizes a user's reminder workload.
type ReminderStats struct {
	TotalReminders    int `json:"total_reminders"`
	ActiveReminders   int `json:"active_reminders"`
	DueToday          int `json:"due_today"`
	Upcoming7Days     int `json:"upcoming_7_days"`
	CompletedThisWeek int `json:"completed_this_week"`
}

// ReminderRepository provides data access for the reminders table. Write
// paths invalidate the owning user's calendar cache, since any change can
// alter a cached month view.
type ReminderRepository struct {
	db       DBTX
	clock    types.Clock
	calendar CalendarInvalidator
}

// NewReminderRepository creates a ReminderRepository. calendar may be nil
// when no calendar cache is in play (batch workers, tests).
func NewReminderRepository(db DBTX, clock types.Clock, calendar CalendarInvalidator) *ReminderRepository {
	if clock == nil {
		clock = types.RealClock{}
	}
	return &ReminderRepository{db: db, clock: clock, calendar: calendar}
}

// reminderColumns is the standard column set for reminder queries,
// including the plant join used to hydrate list views.
const reminderColumns = `r.id, r.user_id, r.plant_id, r.reminder_type, r.title,
	r.frequency, r.custom_interval_days, r.notes, r.next_due,
	r.weather_adjusted_due, r.weather_adjustment_reason, r.skip_weather_adjustment,
	r.is_active, r.is_recurring, r.last_completed_at, r.created_at, r.updated_at,
	p.id, p.name, p.nickname, p.photo_url, p.location`

const reminderFrom = ` FROM reminders r LEFT JOIN plants p ON p.id = r.plant_id`

// effectiveDueExpr is the SQL equivalent of Reminder.EffectiveDue.
const effectiveDueExpr = `COALESCE(r.weather_adjusted_due, r.next_due)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReminder(row rowScanner) (*types.Reminder, error) {
	var r types.Reminder
	var (
		customInterval *int
		notes          *string
		adjustReason   *string
		plantID        *string
		plantName      *string
		plantNickname  *string
		plantPhotoURL  *string
		plantLocation  *string
	)

	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.PlantID,
		&r.Type,
		&r.Title,
		&r.Frequency,
		&customInterval,
		&notes,
		&r.NextDue,
		&r.WeatherAdjustedDue,
		&adjustReason,
		&r.SkipWeatherAdjustment,
		&r.IsActive,
		&r.IsRecurring,
		&r.LastCompletedAt,
		&r.CreatedAt,
		&r.UpdatedAt,
		&plantID,
		&plantName,
		&plantNickname,
		&plantPhotoURL,
		&plantLocation,
	)
	if err != nil {
		return nil, err
	}

	if customInterval != nil {
		r.CustomIntervalDays = *customInterval
	}
	if notes != nil {
		r.Notes = *notes
	}
	if adjustReason != nil {
		r.WeatherAdjustmentReason = *adjustReason
	}
	if plantID != nil {
		plant := &types.Plant{ID: *plantID}
		if plantName != nil {
			plant.Name = *plantName
		}
		if plantNickname != nil {
			plant.Nickname = *plantNickname
		}
		if plantPhotoURL != nil {
			plant.PhotoURL = *plantPhotoURL
		}
		if plantLocation != nil {
			plant.Location = types.RepairPlantLocation(*plantLocation)
		}
		r.Plant = plant
	}

	return &r, nil
}

func (repo *ReminderRepository) collect(rows pgx.Rows) ([]*types.Reminder, error) {
	defer rows.Close()
	var out []*types.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan reminder", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to read reminders", err)
	}
	return out, nil
}

// Create inserts a new reminder. The initial next_due is derived from the
// frequency interval (one_time is due today); a caller-provided next_due
// is kept as-is. Custom frequency requires a positive interval.
func (repo *ReminderRepository) Create(ctx context.Context, r *types.Reminder) error {
	r.Type = types.RepairReminderType(string(r.Type))
	if r.Frequency == types.FreqCustom && r.CustomIntervalDays <= 0 {
		return types.NewAppError(types.ErrCodeValidationCustomInterval,
			"custom_interval_days required for custom frequency", nil)
	}
	interval, ok := r.Frequency.IntervalDays(r.CustomIntervalDays)
	if !ok {
		return types.NewAppError(types.ErrCodeValidationInvalidEnum,
			fmt.Sprintf("invalid frequency: %s", r.Frequency), nil)
	}

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.IsActive = true
	r.IsRecurring = r.Frequency != types.FreqOneTime
	if r.NextDue.IsZero() {
		r.NextDue = types.DateOnly(repo.clock.Now()).AddDate(0, 0, interval)
	}

	_, err := repo.db.Exec(ctx,
		`INSERT INTO reminders (
			id, user_id, plant_id, reminder_type, title,
			frequency, custom_interval_days, notes, next_due,
			skip_weather_adjustment, is_active, is_recurring,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12,
			NOW(), NOW()
		)`,
		r.ID,
		r.UserID,
		r.PlantID,
		r.Type,
		r.Title,
		r.Frequency,
		nilIfZero(r.CustomIntervalDays),
		nilIfEmpty(r.Notes),
		r.NextDue,
		r.SkipWeatherAdjustment,
		r.IsActive,
		r.IsRecurring,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to create reminder", err)
	}

	repo.invalidate(r.UserID)
	return nil
}

// GetByID retrieves a reminder scoped to its owner.
func (repo *ReminderRepository) GetByID(ctx context.Context, id, userID string) (*types.Reminder, error) {
	row := repo.db.QueryRow(ctx,
		`SELECT `+reminderColumns+reminderFrom+`
		 WHERE r.id = $1 AND r.user_id = $2`,
		id, userID,
	)

	r, err := scanReminder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.NewAppError(types.ErrCodeNotFoundReminder, "reminder not found", nil)
		}
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to retrieve reminder", err)
	}
	return r, nil
}

// List retrieves a user's reminders ordered by effective due date.
func (repo *ReminderRepository) List(ctx context.Context, userID string, params ListRemindersParams) ([]*types.Reminder, error) {
	query := `SELECT ` + reminderColumns + reminderFrom + ` WHERE r.user_id = $1`
	args := []any{userID}
	argIdx := 2

	if params.PlantID != "" {
		query += fmt.Sprintf(" AND r.plant_id = $%d", argIdx)
		args = append(args, params.PlantID)
		argIdx++
	}
	if params.ActiveOnly {
		query += " AND r.is_active = TRUE"
	}
	query += ` ORDER BY ` + effectiveDueExpr + ` ASC`

	rows, err := repo.db.Query(ctx, query, args...)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to list reminders", err)
	}
	return repo.collect(rows)
}

// DueToday retrieves active reminders whose effective due date is today
// or earlier.
func (repo *ReminderRepository) DueToday(ctx context.Context, userID string) ([]*types.Reminder, error) {
	today := types.DateOnly(repo.clock.Now())
	rows, err := repo.db.Query(ctx,
		`SELECT `+reminderColumns+reminderFrom+`
		 WHERE r.user_id = $1 AND r.is_active = TRUE
		   AND `+effectiveDueExpr+` <= $2
		 ORDER BY `+effectiveDueExpr+` ASC`,
		userID, today,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to query due reminders", err)
	}
	return repo.collect(rows)
}

// Upcoming retrieves active reminders due within the next `days` days,
// excluding today and overdue ones.
func (repo *ReminderRepository) Upcoming(ctx context.Context, userID string, days int) ([]*types.Reminder, error) {
	if days <= 0 {
		days = 7
	}
	today := types.DateOnly(repo.clock.Now())
	rows, err := repo.db.Query(ctx,
		`SELECT `+reminderColumns+reminderFrom+`
		 WHERE r.user_id = $1 AND r.is_active = TRUE
		   AND `+effectiveDueExpr+` > $2
		   AND `+effectiveDueExpr+` <= $3
		 ORDER BY `+effectiveDueExpr+` ASC`,
		userID, today, today.AddDate(0, 0, days),
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to query upcoming reminders", err)
	}
	return repo.collect(rows)
}

// ForMonth retrieves active reminders whose effective due date falls in
// the given calendar month. Backs the calendar view.
func (repo *ReminderRepository) ForMonth(ctx context.Context, userID string, year int, month time.Month) ([]*types.Reminder, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	rows, err := repo.db.Query(ctx,
		`SELECT `+reminderColumns+reminderFrom+`
		 WHERE r.user_id = $1 AND r.is_active = TRUE
		   AND `+effectiveDueExpr+` >= $2
		   AND `+effectiveDueExpr+` < $3
		 ORDER BY `+effectiveDueExpr+` ASC`,
		userID, start, end,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to query calendar reminders", err)
	}
	return repo.collect(rows)
}

// Complete marks a reminder done. Recurring reminders advance next_due by
// the frequency interval from today and clear any weather adjustment;
// one-time reminders deactivate. Returns the updated reminder.
func (repo *ReminderRepository) Complete(ctx context.Context, id, userID string) (*types.Reminder, error) {
	r, err := repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !r.IsActive {
		return nil, types.NewAppError(types.ErrCodeConflictCompleted, "reminder is no longer active", nil)
	}

	now := repo.clock.Now()
	today := types.DateOnly(now)

	if !r.IsRecurring {
		tag, execErr := repo.db.Exec(ctx,
			`UPDATE reminders SET
				is_active = FALSE,
				last_completed_at = $1,
				updated_at = NOW()
			 WHERE id = $2 AND user_id = $3`,
			now, id, userID,
		)
		if execErr != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to complete reminder", execErr)
		}
		if tag.RowsAffected() == 0 {
			return nil, types.NewAppError(types.ErrCodeNotFoundReminder, "reminder not found", nil)
		}
		r.IsActive = false
		r.LastCompletedAt = &now
		repo.invalidate(userID)
		return r, nil
	}

	interval, ok := r.Frequency.IntervalDays(r.CustomIntervalDays)
	if !ok || interval <= 0 {
		interval = 7
	}
	nextDue := today.AddDate(0, 0, interval)

	tag, execErr := repo.db.Exec(ctx,
		`UPDATE reminders SET
			next_due = $1,
			last_completed_at = $2,
			weather_adjusted_due = NULL,
			weather_adjustment_reason = NULL,
			updated_at = NOW()
		 WHERE id = $3 AND user_id = $4`,
		nextDue, now, id, userID,
	)
	if execErr != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to complete reminder", execErr)
	}
	if tag.RowsAffected() == 0 {
		return nil, types.NewAppError(types.ErrCodeNotFoundReminder, "reminder not found", nil)
	}

	r.NextDue = nextDue
	r.LastCompletedAt = &now
	r.WeatherAdjustedDue = nil
	r.WeatherAdjustmentReason = ""
	repo.invalidate(userID)
	return r, nil
}

// Snooze pushes next_due forward by 1..30 days from its current value and
// clears any weather adjustment so the snooze wins.
func (repo *ReminderRepository) Snooze(ctx context.Context, id, userID string, days int) error {
	if days < 1 || days > 30 {
		return types.NewAppError(types.ErrCodeValidationSnoozeRange,
			"Snooze days must be between 1 and 30", nil)
	}

	tag, err := repo.db.Exec(ctx,
		`UPDATE reminders SET
			next_due = COALESCE(weather_adjusted_due, next_due) + make_interval(days => $1),
			weather_adjusted_due = NULL,
			weather_adjustment_reason = NULL,
			updated_at = NOW()
		 WHERE id = $2 AND user_id = $3 AND is_active = TRUE`,
		days, id, userID,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to snooze reminder", err)
	}
	if tag.RowsAffected() == 0 {
		return types.NewAppError(types.ErrCodeNotFoundReminder, "reminder not found", nil)
	}

	repo.invalidate(userID)
	return nil
}

// Update writes the mutable reminder fields. Identity and bookkeeping
// columns (id, user_id, plant_id, created_at, last_completed_at) are
// never written here.
func (repo *ReminderRepository) Update(ctx context.Context, r *types.Reminder) error {
	if r.Frequency == types.FreqCustom && r.CustomIntervalDays <= 0 {
		return types.NewAppError(types.ErrCodeValidationCustomInterval,
			"custom_interval_days required for custom frequency", nil)
	}

	tag, err := repo.db.Exec(ctx,
		`UPDATE reminders SET
			reminder_type = $1,
			title = $2,
			frequency = $3,
			custom_interval_days = $4,
			notes = $5,
			next_due = $6,
			skip_weather_adjustment = $7,
			is_active = $8,
			updated_at = NOW()
		 WHERE id = $9 AND user_id = $10`,
		r.Type,
		r.Title,
		r.Frequency,
		nilIfZero(r.CustomIntervalDays),
		nilIfEmpty(r.Notes),
		r.NextDue,
		r.SkipWeatherAdjustment,
		r.IsActive,
		r.ID,
		r.UserID,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to update reminder", err)
	}
	if tag.RowsAffected() == 0 {
		return types.NewAppError(types.ErrCodeNotFoundReminder, "reminder not found", nil)
	}

	repo.invalidate(r.UserID)
	return nil
}

// Delete soft-deletes a reminder by deactivating it.
func (repo *ReminderRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := repo.db.Exec(ctx,
		`UPDATE reminders SET is_active = FALSE, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2 AND is_active = TRUE`,
		id, userID,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to delete reminder", err)
	}
	if tag.RowsAffected() == 0 {
		return types.NewAppError(types.ErrCodeNotFoundReminder, "reminder not found", nil)
	}

	repo.invalidate(userID)
	return nil
}

// ApplyWeatherAdjustment persists an automatic adjustment by setting the
// weather override fields. next_due is left untouched so the base
// schedule survives the override. Implements adjust.AdjustmentStore.
func (repo *ReminderRepository) ApplyWeatherAdjustment(ctx context.Context, reminderID string, due time.Time, reason string) error {
	tag, err := repo.db.Exec(ctx,
		`UPDATE reminders SET
			weather_adjusted_due = $1,
			weather_adjustment_reason = $2,
			updated_at = NOW()
		 WHERE id = $3 AND is_active = TRUE`,
		due, reason, reminderID,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to apply weather adjustment", err)
	}
	if tag.RowsAffected() == 0 {
		return types.NewAppError(types.ErrCodeNotFoundReminder, "reminder not found", nil)
	}

	if repo.calendar != nil {
		var userID string
		row := repo.db.QueryRow(ctx, `SELECT user_id FROM reminders WHERE id = $1`, reminderID)
		if scanErr := row.Scan(&userID); scanErr == nil {
			repo.calendar.InvalidateUser(userID)
		}
	}
	return nil
}

// ClearWeatherAdjustment removes the weather override, restoring the base
// schedule.
func (repo *ReminderRepository) ClearWeatherAdjustment(ctx context.Context, id, userID string) error {
	tag, err := repo.db.Exec(ctx,
		`UPDATE reminders SET
			weather_adjusted_due = NULL,
			weather_adjustment_reason = NULL,
			updated_at = NOW()
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to clear weather adjustment", err)
	}
	if tag.RowsAffected() == 0 {
		return types.NewAppError(types.ErrCodeNotFoundReminder, "reminder not found", nil)
	}

	repo.invalidate(userID)
	return nil
}

// Stats aggregates a user's reminder counts in one round trip.
func (repo *ReminderRepository) Stats(ctx context.Context, userID string) (*ReminderStats, error) {
	today := types.DateOnly(repo.clock.Now())
	row := repo.db.QueryRow(ctx,
		`SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE r.is_active),
			COUNT(*) FILTER (WHERE r.is_active AND `+effectiveDueExpr+` <= $2),
			COUNT(*) FILTER (WHERE r.is_active AND `+effectiveDueExpr+` > $2 AND `+effectiveDueExpr+` <= $3),
			COUNT(*) FILTER (WHERE r.last_completed_at >= $4)
		 FROM reminders r
		 WHERE r.user_id = $1`,
		userID, today, today.AddDate(0, 0, 7), today.AddDate(0, 0, -7),
	)

	var stats ReminderStats
	if err := row.Scan(
		&stats.TotalReminders,
		&stats.ActiveReminders,
		&stats.DueToday,
		&stats.Upcoming7Days,
		&stats.CompletedThisWeek,
	); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to load reminder stats", err)
	}
	return &stats, nil
}

// UserIDsWithOutdoorPlants returns the users the batch adjuster should
// process: anyone with an active watering reminder on an outdoor plant.
func (repo *ReminderRepository) UserIDsWithOutdoorPlants(ctx context.Context) ([]string, error) {
	rows, err := repo.db.Query(ctx,
		`SELECT DISTINCT r.user_id
		 FROM reminders r
		 JOIN plants p ON p.id = r.plant_id
		 WHERE r.is_active = TRUE
		   AND r.reminder_type IN ('watering', 'misting')
		   AND p.location IN ('outdoor_potted', 'outdoor_bed')`,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to query adjustable users", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan user id", scanErr)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to read user ids", err)
	}
	return ids, nil
}

func (repo *ReminderRepository) invalidate(userID string) {
	if repo.calendar != nil {
		repo.calendar.InvalidateUser(userID)
	}
}

func nilIfZero(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
