package postgresadapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SystemClock is the runtime clock the composition root hands to every
// module. It reports UTC: the client recency cutoff and the CAS timestamps
// compare instants, never local wall time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator mints UUIDv4 identifiers for campaigns and images.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
