package plantintel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"verdant/internal/types"
)

// defaultConfidence is assigned to the conservative fallback when no AI
// result is available.
const defaultConfidence = 0.3

// ZoneResolver estimates a USDA hardiness zone for a city. Implemented by
// weather.OpenWeatherProvider.
type ZoneResolver interface {
	InferHardinessZone(ctx context.Context, city string) (string, error)
}

// Service resolves plant characteristics: cache first, then the AI
// provider, then conservative defaults. It never returns an error; missing
// data degrades to low-confidence defaults.
type Service struct {
	provider types.CharacteristicProvider
	cache    *InferenceCache
	zones    ZoneResolver
	logger   *slog.Logger

	zoneMu    sync.Mutex
	zoneCache map[string]string
}

// Option customizes a Service.
type Option func(*Service)

// WithZoneResolver lets the service fill in the hardiness zone from the
// city when the caller has none. Resolved zones are memoized per city.
func WithZoneResolver(zones ZoneResolver) Option {
	return func(s *Service) { s.zones = zones }
}

// NewService wires the inference service. provider may be nil, in which
// case every miss resolves to defaults.
func NewService(provider types.CharacteristicProvider, cache *InferenceCache, logger *slog.Logger, opts ...Option) *Service {
	if cache == nil {
		cache = NewInferenceCache(DefaultCacheTTL, nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		provider:  provider,
		cache:     cache,
		logger:    logger,
		zoneCache: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cache exposes the underlying inference cache for administrative
// operations (clearing between deployments or tests).
func (s *Service) Cache() *InferenceCache {
	return s.cache
}

// InferCharacteristics returns the plant's characteristics. The Source
// field records where the answer came from: "ai" on a fresh inference,
// "cache" on a hit, "default" when inference was unavailable.
func (s *Service) InferCharacteristics(ctx context.Context, plant *types.Plant, city, hardinessZone string) *types.PlantCharacteristics {
	key := CacheKey(plant.Species, string(plant.Location), plant.Notes, string(plant.Light))

	if cached := s.cache.Get(key); cached != nil {
		cached.Source = types.SourceCache
		return cached
	}

	if hardinessZone == "" {
		hardinessZone = s.resolveZone(ctx, city)
	}

	if s.provider != nil {
		chars, err := s.provider.Infer(ctx, types.InferenceRequest{
			Species:       plant.Species,
			Location:      string(plant.Location),
			Notes:         plant.Notes,
			Light:         string(plant.Light),
			City:          city,
			HardinessZone: hardinessZone,
		})
		if err == nil && chars != nil {
			chars.Source = types.SourceAI
			s.cache.Put(key, *chars)
			return chars
		}
		s.logger.WarnContext(ctx, "characteristic inference failed, using defaults",
			"species", plant.Species, "error", err)
	}

	return DefaultCharacteristics()
}

// resolveZone infers the hardiness zone for a city. Best effort: a failed
// lookup logs and returns "", and the inference proceeds without a zone.
// Successful lookups are memoized since a city's zone never changes.
func (s *Service) resolveZone(ctx context.Context, city string) string {
	if s.zones == nil || city == "" {
		return ""
	}

	s.zoneMu.Lock()
	zone, ok := s.zoneCache[city]
	s.zoneMu.Unlock()
	if ok {
		return zone
	}

	zone, err := s.zones.InferHardinessZone(ctx, city)
	if err != nil {
		s.logger.WarnContext(ctx, "hardiness zone lookup failed", "city", city, "error", err)
		return ""
	}

	s.zoneMu.Lock()
	s.zoneCache[city] = zone
	s.zoneMu.Unlock()
	return zone
}

// DefaultCharacteristics returns the conservative fallback used when AI
// inference is unavailable.
func DefaultCharacteristics() *types.PlantCharacteristics {
	return &types.PlantCharacteristics{
		Origin:         types.OriginNonNativeAdapted,
		Lifecycle:      types.LifecycleUnknown,
		ColdTolerance:  types.ColdSemiHardy,
		WaterNeeds:     types.WaterModerate,
		DormancyMonths: []time.Month{},
		Confidence:     defaultConfidence,
		Source:         types.SourceDefault,
	}
}
