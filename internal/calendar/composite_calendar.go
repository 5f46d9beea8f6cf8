package calendar

import (
	"fmt"

	"go.uber.org/zap"
)

// FallbackSource implements HolidaySource with fallback strategy
// Primary: APISource (remote)
// Fallback: BuiltinSource (offline)
type FallbackSource struct {
	primary  HolidaySource
	fallback HolidaySource
	logger   *zap.Logger
}

// NewFallbackSource creates a new FallbackSource
func NewFallbackSource(primary, fallback HolidaySource, logger *zap.Logger) *FallbackSource {
	return &FallbackSource{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Holidays returns the primary result, or the fallback one if primary fails
func (fs *FallbackSource) Holidays(region string, year int) (map[string]string, error) {
	holidays, err := fs.primary.Holidays(region, year)
	if err == nil {
		return holidays, nil
	}

	fs.logger.Warn("Primary holiday source failed, falling back",
		zap.String("region", region),
		zap.Int("year", year),
		zap.Error(err))

	holidays, fallbackErr := fs.fallback.Holidays(region, year)
	if fallbackErr != nil {
		return nil, fmt.Errorf("primary and fallback both failed: primary=%w, fallback=%v", err, fallbackErr)
	}

	return holidays, nil
}

// UnionSource merges the holidays of several sources.
// On a date listed by more than one source the first name wins.
type UnionSource struct {
	sources []HolidaySource
}

// NewUnionSource creates a new UnionSource
func NewUnionSource(sources ...HolidaySource) *UnionSource {
	return &UnionSource{sources: sources}
}

// Holidays returns the union of all sources; any failing source fails the call
func (us *UnionSource) Holidays(region string, year int) (map[string]string, error) {
	merged := make(map[string]string)
	for _, source := range us.sources {
		holidays, err := source.Holidays(region, year)
		if err != nil {
			return nil, err
		}
		for key, name := range holidays {
			if _, exists := merged[key]; !exists {
				merged[key] = name
			}
		}
	}
	return merged, nil
}
