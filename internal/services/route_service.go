package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"photowalk/internal/config"
	"photowalk/internal/models/response_models"
	"photowalk/internal/walk"
	"photowalk/pkg/geo"
	"photowalk/pkg/metrics"
	"photowalk/pkg/utils"
)

// MaxWalkingDistanceKm bounds the straight-line pre-check.
const MaxWalkingDistanceKm = 50.0

const geocodeCacheTTL = 24 * time.Hour

var tokyoStation = walk.Coordinates{139.7673068, 35.6809591}

// stations short-circuits geocoding for well-known names. Matching is an
// exact string comparison. The "current location" synonyms resolve to
// Tokyo station.
var stations = map[string]walk.Coordinates{
	"現在地":   tokyoStation,
	"現在の場所": tokyoStation,
	"現在":    tokyoStation,
	"東京駅":   tokyoStation,
	"渋谷駅":   {139.7016358, 35.6580992},
	"新宿駅":   {139.7005713, 35.6896067},
	"池袋駅":   {139.7109599, 35.7295626},
	"原宿駅":   {139.7024296, 35.6702087},
	"表参道駅":  {139.7123306, 35.6659220},
	"品川駅":   {139.7388029, 35.6284613},
	"上野駅":   {139.7774603, 35.7140867},
	"秋葉原駅":  {139.7744733, 35.6983306},
	"有楽町駅":  {139.7630820, 35.6752311},
	"銀座駅":   {139.7671646, 35.6715842},
	"浅草駅":   {139.7966440, 35.7120649},
	"押上駅":   {139.8139242, 35.7100656},
	"錦糸町駅":  {139.8138103, 35.6969184},
	"両国駅":   {139.7930579, 35.6956021},
	"門前仲町駅": {139.7957234, 35.6717968},
	"月島駅":   {139.7825644, 35.6654083},
	"豊洲駅":   {139.7956531, 35.6549444},
	"新木場駅":  {139.8267578, 35.6460139},
	"大手町駅":  {139.7663286, 35.6861226},
	"日本橋駅":  {139.7735156, 35.6853061},
	"神田駅":   {139.7711644, 35.6918028},
}

// LookupStation reports the predefined coordinates for name, if any.
func LookupStation(name string) (walk.Coordinates, bool) {
	c, ok := stations[name]
	return c, ok
}

// Geocoder resolves free-form addresses. ok=false means "no such place".
type Geocoder interface {
	Geocode(ctx context.Context, address string) (walk.Coordinates, bool, error)
}

// Directions plans a walking route between two points.
type Directions interface {
	WalkingRoute(ctx context.Context, start, end walk.Coordinates) (*DirectionsRoute, error)
}

type RouteServiceInterface interface {
	Route(ctx context.Context, startAddress, endAddress string) (*response_models.RouteDetail, error)
}

type RouteService struct {
	configured bool
	geocoder   Geocoder
	directions Directions
	cache      *cache.Cache
	metrics    *metrics.WalkMetrics
	log        *zap.Logger
}

func NewRouteService(cfg config.Config, m *metrics.WalkMetrics, log *zap.Logger) RouteServiceInterface {
	client := NewMapboxClient(cfg.MapboxAccessToken, cfg.MapboxCountry)
	return newRouteService(cfg.MapboxAccessToken != "", client, client, m, log)
}

func newRouteService(configured bool, g Geocoder, d Directions, m *metrics.WalkMetrics, log *zap.Logger) *RouteService {
	return &RouteService{
		configured: configured,
		geocoder:   g,
		directions: d,
		cache:      cache.New(geocodeCacheTTL, 2*geocodeCacheTTL),
		metrics:    m,
		log:        log,
	}
}

func (s *RouteService) Route(ctx context.Context, startAddress, endAddress string) (*response_models.RouteDetail, error) {
	if !s.configured {
		s.metrics.RecordRoute("not_configured")
		return nil, utils.ErrRoutingNotConfigured
	}

	var startCoords, endCoords walk.Coordinates
	var startErr, endErr error

	// The lookups share no context so one failure never cancels the other.
	// A failing start is reported ahead of the end.
	var g errgroup.Group
	g.Go(func() error {
		startCoords, startErr = s.resolve(ctx, startAddress, utils.RouteStart)
		return startErr
	})
	g.Go(func() error {
		endCoords, endErr = s.resolve(ctx, endAddress, utils.RouteEnd)
		return endErr
	})
	if err := g.Wait(); err != nil {
		s.metrics.RecordRoute("address_not_found")
		if startErr != nil {
			return nil, startErr
		}
		return nil, err
	}

	km := geo.ApproxDistanceKm(startCoords.Lat(), startCoords.Lng(), endCoords.Lat(), endCoords.Lng())
	if km > MaxWalkingDistanceKm {
		s.log.Warn("Distance too long for walking route", zap.Float64("km", km))
		s.metrics.RecordRoute("too_long")
		return nil, fmt.Errorf("%w: ~%.1fkm", utils.ErrRouteTooLong, km)
	}

	route, err := s.directions.WalkingRoute(ctx, startCoords, endCoords)
	if err != nil {
		s.log.Warn("Walking route failed", zap.Error(err))
		s.metrics.RecordRoute("no_route")
		if !errors.Is(err, utils.ErrNoRoute) {
			err = fmt.Errorf("%w: %v", utils.ErrNoRoute, err)
		}
		return nil, err
	}

	steps := []byte("[]")
	if len(route.Legs) > 0 && len(route.Legs[0].Steps) > 0 {
		steps = route.Legs[0].Steps
	}

	s.metrics.RecordRoute("ok")
	return &response_models.RouteDetail{
		StartCoords: startCoords,
		EndCoords:   endCoords,
		Geometry:    route.Geometry,
		Distance:    int(math.Round(route.Distance)),
		Duration:    int(math.Round(route.Duration / 60)),
		Steps:       steps,
	}, nil
}

// resolve checks the station table, then the cache, then the provider.
// Provider errors are folded into "not found" for that endpoint.
func (s *RouteService) resolve(ctx context.Context, address, which string) (walk.Coordinates, error) {
	if c, ok := LookupStation(address); ok {
		s.metrics.RecordGeocode("station")
		return c, nil
	}

	key := strings.TrimSpace(address)
	if v, ok := s.cache.Get(key); ok {
		s.metrics.RecordGeocode("cache")
		return v.(walk.Coordinates), nil
	}

	notFound := &utils.AddressNotFoundError{Which: which, Address: address}
	if key == "" {
		s.metrics.RecordGeocode("miss")
		return walk.Coordinates{}, notFound
	}

	c, ok, err := s.geocoder.Geocode(ctx, key)
	if err != nil {
		s.log.Warn("Geocoding error", zap.String("address", address), zap.Error(err))
		s.metrics.RecordGeocode("miss")
		return walk.Coordinates{}, notFound
	}
	if !ok {
		s.metrics.RecordGeocode("miss")
		return walk.Coordinates{}, notFound
	}

	s.cache.Set(key, c, cache.DefaultExpiration)
	s.metrics.RecordGeocode("provider")
	return c, nil
}
