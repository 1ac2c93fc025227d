package session

import "context"

// Keys of the three persisted records.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyAuthUser     = "authUser"
)

// Record is the persisted session. An empty field means the record is absent.
// AuthUser holds the Identity serialized as JSON.
type Record struct {
	AccessToken  string
	RefreshToken string
	AuthUser     string
}

// Storage persists a Record across process restarts. Save replaces the whole
// record: a reader must never see fields from two different Saves.
type Storage interface {
	Load(ctx context.Context) (Record, error)
	Save(ctx context.Context, r Record) error
	Clear(ctx context.Context) error
}
