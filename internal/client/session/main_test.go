package session

import (
	"testing"

	"go.uber.org/goleak"
)

// Refresh runs its round trip outside the locks; no test may leave it
// parked on a fake issuer.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
