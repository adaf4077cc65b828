package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"verdant/internal/types"
)

func TestPlantCreate_Success(t *testing.T) {
	dbx := new(mockDBTX)
	repo := NewPlantRepository(dbx, nil)

	dbx.On("Exec", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	p := &types.Plant{
		UserID:   "u1",
		Name:     "Tomato",
		Location: types.PlantLocation("back porch"),
	}
	require.NoError(t, repo.Create(context.Background(), p))

	assert.NotEmpty(t, p.ID)
	// Unknown location repaired to the safe indoor default.
	assert.Equal(t, types.LocationIndoorPotted, p.Location)
	dbx.AssertExpectations(t)
}

func TestPlantCreate_RequiresName(t *testing.T) {
	dbx := new(mockDBTX)
	repo := NewPlantRepository(dbx, nil)

	err := repo.Create(context.Background(), &types.Plant{UserID: "u1"})
	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, types.ErrCodeValidationMissingField, appErr.Code)
	dbx.AssertNotCalled(t, "Exec", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlantGetByID_NotFound(t *testing.T) {
	dbx := new(mockDBTX)
	repo := NewPlantRepository(dbx, nil)

	dbx.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanErr: pgx.ErrNoRows})

	_, err := repo.GetByID(context.Background(), "missing", "u1")
	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, types.ErrCodeNotFoundPlant, appErr.Code)
}

func TestPlantGetByID_Success(t *testing.T) {
	dbx := new(mockDBTX)
	repo := NewPlantRepository(dbx, nil)

	dbx.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFn: func(dest ...any) error {
			*dest[0].(*string) = "p1"
			*dest[1].(*string) = "u1"
			*dest[2].(*string) = "Tomato"
			nickname := "Tommy"
			*dest[3].(**string) = &nickname
			*dest[5].(*types.PlantLocation) = types.LocationOutdoorBed
			return nil
		}})

	got, err := repo.GetByID(context.Background(), "p1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Tommy", got.Nickname)
	assert.Equal(t, "Tommy", got.DisplayName())
	assert.Equal(t, types.LocationOutdoorBed, got.Location)
}

func TestPlantUpdate_NotFound(t *testing.T) {
	dbx := new(mockDBTX)
	repo := NewPlantRepository(dbx, nil)

	dbx.On("Exec", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("UPDATE 0"), nil)

	err := repo.Update(context.Background(), &types.Plant{ID: "missing", UserID: "u1", Name: "X", Location: types.LocationIndoorPotted})
	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, types.ErrCodeNotFoundPlant, appErr.Code)
}

func TestPlantDelete_InvalidatesCalendar(t *testing.T) {
	dbx := new(mockDBTX)
	inv := &fakeInvalidator{}
	repo := NewPlantRepository(dbx, inv)

	dbx.On("Exec", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("DELETE 1"), nil)

	require.NoError(t, repo.Delete(context.Background(), "p1", "u1"))
	// Cached month views held the deactivated reminders; they must drop.
	assert.Equal(t, []string{"u1"}, inv.users)
}

func TestPlantDelete_NotFoundSkipsInvalidation(t *testing.T) {
	dbx := new(mockDBTX)
	inv := &fakeInvalidator{}
	repo := NewPlantRepository(dbx, inv)

	dbx.On("Exec", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("DELETE 0"), nil)

	err := repo.Delete(context.Background(), "missing", "u1")
	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, types.ErrCodeNotFoundPlant, appErr.Code)
	assert.Empty(t, inv.users)
}

func TestPlantMapByIDs_EmptyInput(t *testing.T) {
	dbx := new(mockDBTX)
	repo := NewPlantRepository(dbx, nil)

	got, err := repo.MapByIDs(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	dbx.AssertNotCalled(t, "Query", mock.Anything, mock.Anything, mock.Anything)
}
