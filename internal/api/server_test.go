package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verdant/internal/db"
	"verdant/internal/types"
)

const (
	testToken  = "garden-token"
	testUserID = "user-1"
)

var apiTestNow = time.Date(2026, 4, 10, 9, 30, 0, 0, time.UTC)

type apiClock struct{ now time.Time }

func (c apiClock) Now() time.Time { return c.now }

type fakeReminderStore struct {
	reminders map[string]*types.Reminder

	createErr    error
	forMonthHits int
	snoozeCalls  []int
}

func newFakeReminderStore(reminders ...*types.Reminder) *fakeReminderStore {
	s := &fakeReminderStore{reminders: make(map[string]*types.Reminder)}
	for _, r := range reminders {
		s.reminders[r.ID] = r
	}
	return s
}

func (s *fakeReminderStore) Create(_ context.Context, r *types.Reminder) error {
	if s.createErr != nil {
		return s.createErr
	}
	r.ID = fmt.Sprintf("rem-%d", len(s.reminders)+1)
	r.IsActive = true
	s.reminders[r.ID] = r
	return nil
}

func (s *fakeReminderStore) GetByID(_ context.Context, id, userID string) (*types.Reminder, error) {
	r, ok := s.reminders[id]
	if !ok || r.UserID != userID {
		return nil, types.NewAppError(types.ErrCodeNotFoundReminder, "reminder not found", nil)
	}
	return r, nil
}

func (s *fakeReminderStore) List(_ context.Context, userID string, params db.ListRemindersParams) ([]*types.Reminder, error) {
	out := make([]*types.Reminder, 0)
	for _, r := range s.reminders {
		if r.UserID != userID {
			continue
		}
		if params.ActiveOnly && !r.IsActive {
			continue
		}
		if params.PlantID != "" && r.PlantID != params.PlantID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *fakeReminderStore) DueToday(ctx context.Context, userID string) ([]*types.Reminder, error) {
	return s.List(ctx, userID, db.ListRemindersParams{ActiveOnly: true})
}

func (s *fakeReminderStore) Upcoming(ctx context.Context, userID string, _ int) ([]*types.Reminder, error) {
	return s.List(ctx, userID, db.ListRemindersParams{ActiveOnly: true})
}

func (s *fakeReminderStore) ForMonth(ctx context.Context, userID string, _ int, _ time.Month) ([]*types.Reminder, error) {
	s.forMonthHits++
	return s.List(ctx, userID, db.ListRemindersParams{ActiveOnly: true})
}

func (s *fakeReminderStore) Complete(_ context.Context, id, userID string) (*types.Reminder, error) {
	r, ok := s.reminders[id]
	if !ok || r.UserID != userID {
		return nil, types.NewAppError(types.ErrCodeNotFoundReminder, "reminder not found", nil)
	}
	now := apiTestNow
	r.LastCompletedAt = &now
	return r, nil
}

func (s *fakeReminderStore) Snooze(_ context.Context, id, userID string, days int) error {
	if days < 1 || days > 30 {
		return types.NewAppError(types.ErrCodeValidationSnoozeRange, "Snooze days must be between 1 and 30", nil)
	}
	r, ok := s.reminders[id]
	if !ok || r.UserID != userID {
		return types.NewAppError(types.ErrCodeNotFoundReminder, "reminder not found", nil)
	}
	s.snoozeCalls = append(s.snoozeCalls, days)
	return nil
}

func (s *fakeReminderStore) Update(_ context.Context, r *types.Reminder) error {
	s.reminders[r.ID] = r
	return nil
}

func (s *fakeReminderStore) Delete(_ context.Context, id, userID string) error {
	r, ok := s.reminders[id]
	if !ok || r.UserID != userID {
		return types.NewAppError(types.ErrCodeNotFoundReminder, "reminder not found", nil)
	}
	r.IsActive = false
	return nil
}

func (s *fakeReminderStore) ApplyWeatherAdjustment(_ context.Context, id string, due time.Time, reason string) error {
	r, ok := s.reminders[id]
	if !ok {
		return types.NewAppError(types.ErrCodeNotFoundReminder, "reminder not found", nil)
	}
	r.WeatherAdjustedDue = &due
	r.WeatherAdjustmentReason = reason
	return nil
}

func (s *fakeReminderStore) ClearWeatherAdjustment(_ context.Context, id, userID string) error {
	r, ok := s.reminders[id]
	if !ok || r.UserID != userID {
		return types.NewAppError(types.ErrCodeNotFoundReminder, "reminder not found", nil)
	}
	r.WeatherAdjustedDue = nil
	r.WeatherAdjustmentReason = ""
	return nil
}

func (s *fakeReminderStore) Stats(_ context.Context, _ string) (*db.ReminderStats, error) {
	return &db.ReminderStats{TotalReminders: len(s.reminders)}, nil
}

type fakePlantStore struct {
	plants map[string]*types.Plant
}

func newFakePlantStore(plants ...*types.Plant) *fakePlantStore {
	s := &fakePlantStore{plants: make(map[string]*types.Plant)}
	for _, p := range plants {
		s.plants[p.ID] = p
	}
	return s
}

func (s *fakePlantStore) Create(_ context.Context, p *types.Plant) error {
	p.ID = fmt.Sprintf("plant-%d", len(s.plants)+1)
	s.plants[p.ID] = p
	return nil
}

func (s *fakePlantStore) GetByID(_ context.Context, id, userID string) (*types.Plant, error) {
	p, ok := s.plants[id]
	if !ok || p.UserID != userID {
		return nil, types.NewAppError(types.ErrCodeNotFoundPlant, "plant not found", nil)
	}
	return p, nil
}

func (s *fakePlantStore) ListByUser(_ context.Context, userID string) ([]*types.Plant, error) {
	out := make([]*types.Plant, 0)
	for _, p := range s.plants {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePlantStore) MapByIDs(_ context.Context, userID string, ids []string) (map[string]*types.Plant, error) {
	out := make(map[string]*types.Plant)
	for _, id := range ids {
		if p, ok := s.plants[id]; ok && p.UserID == userID {
			out[id] = p
		}
	}
	return out, nil
}

func (s *fakePlantStore) Update(_ context.Context, p *types.Plant) error {
	s.plants[p.ID] = p
	return nil
}

func (s *fakePlantStore) Delete(_ context.Context, id, userID string) error {
	p, ok := s.plants[id]
	if !ok || p.UserID != userID {
		return types.NewAppError(types.ErrCodeNotFoundPlant, "plant not found", nil)
	}
	delete(s.plants, id)
	return nil
}

type fakeProfileStore struct {
	profile *types.UserProfile
	setCity string
}

func (s *fakeProfileStore) GetByUserID(_ context.Context, userID string) (*types.UserProfile, error) {
	if s.profile == nil || s.profile.UserID != userID {
		return nil, types.NewAppError(types.ErrCodeNotFoundProfile, "profile not found", nil)
	}
	return s.profile, nil
}

func (s *fakeProfileStore) DefaultCity(_ context.Context, userID string) (string, error) {
	if s.profile == nil || s.profile.UserID != userID {
		return "", nil
	}
	return s.profile.DefaultCity, nil
}

func (s *fakeProfileStore) SetDefaultCity(_ context.Context, _, city string) error {
	s.setCity = city
	return nil
}

type fakeWeather struct {
	snapshot *types.WeatherSnapshot
	err      error
}

func (f *fakeWeather) CurrentWeather(context.Context, string) (*types.WeatherSnapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeWeather) PrecipForecast24h(context.Context, string) (float64, error) {
	return 0, f.err
}

func (f *fakeWeather) TempExtremes(context.Context, string, int) (*types.TempExtremes, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &types.TempExtremes{TempMinF: 50, TempMaxF: 75}, nil
}

func (f *fakeWeather) SeasonalPattern(context.Context, string) (*types.SeasonalPattern, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &types.SeasonalPattern{Season: types.SeasonSpring, Method: types.SeasonMethodWeather}, nil
}

type fakeIntel struct{}

func (fakeIntel) InferCharacteristics(context.Context, *types.Plant, string, string) *types.PlantCharacteristics {
	return &types.PlantCharacteristics{
		WaterNeeds:    types.WaterModerate,
		ColdTolerance: types.ColdSemiHardy,
		Source:        types.SourceDefault,
	}
}

type serverFixture struct {
	srv       *httptest.Server
	reminders *fakeReminderStore
	plants    *fakePlantStore
	profiles  *fakeProfileStore
	weather   *fakeWeather
}

func newTestServer(t *testing.T, opts ...func(*serverFixture)) *serverFixture {
	t.Helper()

	fx := &serverFixture{
		reminders: newFakeReminderStore(),
		plants:    newFakePlantStore(),
		profiles:  &fakeProfileStore{profile: &types.UserProfile{UserID: testUserID, Email: "gardener@example.com"}},
		weather:   &fakeWeather{snapshot: &types.WeatherSnapshot{City: "Portland", TempF: 65, Humidity: 55, Conditions: "Clouds"}},
	}
	for _, opt := range opts {
		opt(fx)
	}

	server := NewServer(ServerDeps{
		Reminders: fx.reminders,
		Plants:    fx.plants,
		Profiles:  fx.profiles,
		Weather:   fx.weather,
		Intel:     fakeIntel{},
		Auth:      SingleUserAuthenticator{Token: types.SecretString(testToken), UserID: testUserID},
		Clock:     apiClock{now: apiTestNow},
	})

	fx.srv = httptest.NewServer(server.Handler())
	t.Cleanup(fx.srv.Close)
	return fx
}

func (fx *serverFixture) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, fx.srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+testToken)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func decodeData(t *testing.T, raw []byte, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func decodeError(t *testing.T, raw []byte) ErrorDetail {
	t.Helper()
	var envelope APIErrorResponse
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return envelope.Error
}

func testPlant(id string) *types.Plant {
	return &types.Plant{
		ID:       id,
		UserID:   testUserID,
		Name:     "Hydrangea",
		Location: types.LocationOutdoorBed,
		Light:    types.LightFullSun,
	}
}

func testReminder(id, plantID string) *types.Reminder {
	return &types.Reminder{
		ID:          id,
		UserID:      testUserID,
		PlantID:     plantID,
		Type:        types.ReminderWatering,
		Title:       "Water the hydrangea",
		Frequency:   types.FreqWeekly,
		NextDue:     types.DateOnly(apiTestNow),
		IsActive:    true,
		IsRecurring: true,
	}
}

func TestHealthNoAuth(t *testing.T) {
	fx := newTestServer(t)

	resp, err := http.Get(fx.srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMissingHeader(t *testing.T) {
	fx := newTestServer(t)

	resp, err := http.Get(fx.srv.URL + "/v1/reminders")
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	detail := decodeError(t, raw)
	assert.Equal(t, string(types.ErrCodeAuthTokenMissing), detail.Code)
}

func TestAuthWrongToken(t *testing.T) {
	fx := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, fx.srv.URL+"/v1/reminders", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not-the-token")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	detail := decodeError(t, raw)
	assert.Equal(t, string(types.ErrCodeAuthTokenInvalid), detail.Code)
}

func TestAuthNonBearerScheme(t *testing.T) {
	fx := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, fx.srv.URL+"/v1/reminders", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequestIDEcho(t *testing.T) {
	fx := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, fx.srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "req-test-42")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "req-test-42", resp.Header.Get("X-Request-Id"))
}

func TestCreateReminder(t *testing.T) {
	fx := newTestServer(t, func(fx *serverFixture) {
		fx.plants = newFakePlantStore(testPlant("plant-1"))
	})

	resp, raw := fx.do(t, http.MethodPost, "/v1/reminders",
		`{"plant_id":"plant-1","reminder_type":"watering","title":"Water it","frequency":"weekly"}`)

	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var reminder types.Reminder
	decodeData(t, raw, &reminder)
	assert.Equal(t, "plant-1", reminder.PlantID)
	assert.Equal(t, types.ReminderWatering, reminder.Type)
	assert.True(t, reminder.IsActive)
}

func TestCreateReminderUnknownPlant(t *testing.T) {
	fx := newTestServer(t)

	resp, raw := fx.do(t, http.MethodPost, "/v1/reminders",
		`{"plant_id":"nope","reminder_type":"watering","title":"Water it","frequency":"weekly"}`)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	detail := decodeError(t, raw)
	assert.Equal(t, string(types.ErrCodeNotFoundPlant), detail.Code)
}

func TestCreateReminderMissingFields(t *testing.T) {
	fx := newTestServer(t)

	resp, raw := fx.do(t, http.MethodPost, "/v1/reminders", `{"title":"Water it"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	detail := decodeError(t, raw)
	assert.Equal(t, string(types.ErrCodeValidationMissingField), detail.Code)
}

func TestCreateReminderUnknownJSONField(t *testing.T) {
	fx := newTestServer(t)

	resp, raw := fx.do(t, http.MethodPost, "/v1/reminders", `{"plant_id":"p","bogus":true}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	detail := decodeError(t, raw)
	assert.Equal(t, string(errCodeValidationInvalidJSON), detail.Code)
}

func TestGetReminderNotFound(t *testing.T) {
	fx := newTestServer(t)

	resp, raw := fx.do(t, http.MethodGet, "/v1/reminders/missing", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	detail := decodeError(t, raw)
	assert.Equal(t, string(types.ErrCodeNotFoundReminder), detail.Code)
	assert.NotEmpty(t, detail.RequestID)
}

func TestSnoozeDefaultsToOneDay(t *testing.T) {
	fx := newTestServer(t, func(fx *serverFixture) {
		fx.reminders = newFakeReminderStore(testReminder("rem-1", "plant-1"))
	})

	resp, _ := fx.do(t, http.MethodPost, "/v1/reminders/rem-1/snooze", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []int{1}, fx.reminders.snoozeCalls)
}

func TestSnoozeExplicitDays(t *testing.T) {
	fx := newTestServer(t, func(fx *serverFixture) {
		fx.reminders = newFakeReminderStore(testReminder("rem-1", "plant-1"))
	})

	resp, _ := fx.do(t, http.MethodPost, "/v1/reminders/rem-1/snooze", `{"days":5}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []int{5}, fx.reminders.snoozeCalls)
}

func TestSnoozeOutOfRange(t *testing.T) {
	fx := newTestServer(t, func(fx *serverFixture) {
		fx.reminders = newFakeReminderStore(testReminder("rem-1", "plant-1"))
	})

	resp, raw := fx.do(t, http.MethodPost, "/v1/reminders/rem-1/snooze", `{"days":31}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	detail := decodeError(t, raw)
	assert.Equal(t, string(types.ErrCodeValidationSnoozeRange), detail.Code)
	assert.Empty(t, fx.reminders.snoozeCalls)
}

func TestUpdateReminderRejectsBadDate(t *testing.T) {
	fx := newTestServer(t, func(fx *serverFixture) {
		fx.reminders = newFakeReminderStore(testReminder("rem-1", "plant-1"))
	})

	resp, raw := fx.do(t, http.MethodPatch, "/v1/reminders/rem-1", `{"next_due":"April 9"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	detail := decodeError(t, raw)
	assert.Equal(t, string(types.ErrCodeValidationInvalidDate), detail.Code)
}

func TestUpdateReminderMergesFields(t *testing.T) {
	fx := newTestServer(t, func(fx *serverFixture) {
		fx.reminders = newFakeReminderStore(testReminder("rem-1", "plant-1"))
	})

	resp, raw := fx.do(t, http.MethodPatch, "/v1/reminders/rem-1",
		`{"title":"Deep soak","next_due":"2026-04-20"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var reminder types.Reminder
	decodeData(t, raw, &reminder)
	assert.Equal(t, "Deep soak", reminder.Title)
	assert.Equal(t, time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC), reminder.NextDue)
	assert.Equal(t, types.FreqWeekly, reminder.Frequency)
}

func TestDueTodayWithoutCityReturnsUnadjusted(t *testing.T) {
	fx := newTestServer(t, func(fx *serverFixture) {
		fx.reminders = newFakeReminderStore(testReminder("rem-1", "plant-1"))
		fx.plants = newFakePlantStore(testPlant("plant-1"))
	})

	resp, raw := fx.do(t, http.MethodGet, "/v1/reminders/due-today", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []adjustedReminderPayload
	decodeData(t, raw, &out)
	require.Len(t, out, 1)
	assert.Nil(t, out[0].Adjustment)
}

func TestSuggestionsEmptyWithoutCity(t *testing.T) {
	fx := newTestServer(t)

	resp, raw := fx.do(t, http.MethodGet, "/v1/reminders/suggestions", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []types.Suggestion
	decodeData(t, raw, &out)
	assert.Empty(t, out)
}

func TestCalendarMonthCached(t *testing.T) {
	fx := newTestServer(t, func(fx *serverFixture) {
		fx.reminders = newFakeReminderStore(testReminder("rem-1", "plant-1"))
	})

	resp, raw := fx.do(t, http.MethodGet, "/v1/calendar/2026/4", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var month CalendarMonth
	decodeData(t, raw, &month)
	assert.Equal(t, 2026, month.Year)
	assert.Equal(t, 4, month.Month)
	assert.Equal(t, 1, month.Total)
	assert.Len(t, month.Days["2026-04-10"], 1)

	// Second hit must come from the cache, not the store.
	resp2, _ := fx.do(t, http.MethodGet, "/v1/calendar/2026/4", "")
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Equal(t, 1, fx.reminders.forMonthHits)
}

func TestCalendarMonthRejectsBadMonth(t *testing.T) {
	fx := newTestServer(t)

	resp, raw := fx.do(t, http.MethodGet, "/v1/calendar/2026/13", "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	detail := decodeError(t, raw)
	assert.Equal(t, string(types.ErrCodeValidationInvalidDate), detail.Code)
}

func TestCreatePlant(t *testing.T) {
	fx := newTestServer(t)

	resp, raw := fx.do(t, http.MethodPost, "/v1/plants",
		`{"name":"Lavender","location":"outdoor_bed","light":"full_sun"}`)

	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var plant types.Plant
	decodeData(t, raw, &plant)
	assert.Equal(t, "Lavender", plant.Name)
	assert.Equal(t, types.LocationOutdoorBed, plant.Location)
}

func TestCreatePlantRequiresName(t *testing.T) {
	fx := newTestServer(t)

	resp, raw := fx.do(t, http.MethodPost, "/v1/plants", `{"species":"Lavandula"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	detail := decodeError(t, raw)
	assert.Equal(t, string(types.ErrCodeValidationMissingField), detail.Code)
}

func TestWateringRecommendation(t *testing.T) {
	fx := newTestServer(t, func(fx *serverFixture) {
		fx.plants = newFakePlantStore(testPlant("plant-1"))
		fx.profiles.profile.DefaultCity = "Portland"
	})

	resp, raw := fx.do(t, http.MethodGet,
		"/v1/plants/plant-1/watering-recommendation?hours_since_watered=72", "")

	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var payload struct {
		Recommendation types.WateringRecommendation `json:"recommendation"`
	}
	decodeData(t, raw, &payload)
	assert.True(t, payload.Recommendation.Eligible)
}

func TestWateringRecommendationWeatherFailureDegrades(t *testing.T) {
	fx := newTestServer(t, func(fx *serverFixture) {
		fx.plants = newFakePlantStore(testPlant("plant-1"))
		fx.profiles.profile.DefaultCity = "Portland"
		fx.weather = &fakeWeather{err: types.NewAppError(types.ErrCodeUpstreamWeather, "weather upstream failed", nil)}
	})

	resp, _ := fx.do(t, http.MethodGet, "/v1/plants/plant-1/watering-recommendation", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCurrentWeatherUsesProfileCity(t *testing.T) {
	fx := newTestServer(t, func(fx *serverFixture) {
		fx.profiles.profile.DefaultCity = "Portland, OR"
	})

	resp, raw := fx.do(t, http.MethodGet, "/v1/weather", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var payload struct {
		Current  *types.WeatherSnapshot `json:"current"`
		Seasonal *types.SeasonalPattern `json:"seasonal"`
	}
	decodeData(t, raw, &payload)
	require.NotNil(t, payload.Current)
	assert.Equal(t, "Portland", payload.Current.City)
	require.NotNil(t, payload.Seasonal)
	assert.Equal(t, types.SeasonSpring, payload.Seasonal.Season)
}

func TestCurrentWeatherNoCityConfigured(t *testing.T) {
	fx := newTestServer(t)

	resp, raw := fx.do(t, http.MethodGet, "/v1/weather", "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	detail := decodeError(t, raw)
	assert.Equal(t, string(types.ErrCodeValidationInvalidCity), detail.Code)
}

func TestSetDefaultCityTrimsWhitespace(t *testing.T) {
	fx := newTestServer(t)

	resp, _ := fx.do(t, http.MethodPut, "/v1/profile/city", `{"city":"  Austin, TX  "}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Austin, TX", fx.profiles.setCity)
}

func TestSetDefaultCityRejectsEmpty(t *testing.T) {
	fx := newTestServer(t)

	resp, raw := fx.do(t, http.MethodPut, "/v1/profile/city", `{"city":"   "}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	detail := decodeError(t, raw)
	assert.Equal(t, string(types.ErrCodeValidationInvalidCity), detail.Code)
}

func TestGetProfile(t *testing.T) {
	fx := newTestServer(t)

	resp, raw := fx.do(t, http.MethodGet, "/v1/profile", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var profile types.UserProfile
	decodeData(t, raw, &profile)
	assert.Equal(t, testUserID, profile.UserID)
}
