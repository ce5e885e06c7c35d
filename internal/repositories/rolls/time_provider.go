package rolls

import "time"

//go:generate mockgen -destination=mocks/mock_time_provider.go -package=mocks github.com/KirkDiggler/dungeon-generator/internal/repositories/rolls TimeProvider

// TimeProvider stamps new rolls
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider returns the wall clock in UTC
type RealTimeProvider struct{}

// Now implements TimeProvider
func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
