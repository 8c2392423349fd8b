// Package id generates trade identifiers.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy io.Reader
)

func init() {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Monotonic keeps ids minted in the same millisecond in order.
	entropy = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// ErrTimeRange is returned for stamps a ULID cannot hold.
var ErrTimeRange = errors.New("id: time outside the ulid range")

// New returns a trade id stamped with the current time.
func New() string {
	s, err := NewAt(time.Now())
	if err != nil {
		panic(err)
	}
	return s
}

// NewAt returns a trade id stamped with t. Imported trades use their
// entry time so ids sort the same way the journal does. Zero and
// pre-1970 times are rejected with ErrTimeRange.
func NewAt(t time.Time) (string, error) {
	if t.IsZero() || t.Before(time.Unix(0, 0)) {
		return "", fmt.Errorf("%w: %s", ErrTimeRange, t.UTC().Format(time.RFC3339))
	}

	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t.UTC()), entropy)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTimeRange, err)
	}
	return id.String(), nil
}

// Time extracts the timestamp embedded in an id.
func Time(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse id %q: %w", s, err)
	}
	return ulid.Time(u.Time()).UTC(), nil
}
