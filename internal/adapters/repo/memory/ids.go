package memory

import (
	"strings"

	"github.com/bnema/schedule-manager-cli/internal/ports"
	"github.com/google/uuid"
)

// IDFunc returns a new id for the given namespace prefix.
type IDFunc func(prefix string) string

// NewID returns prefix followed by six upper-case hex characters of a random
// uuid. Collisions are not checked.
func NewID(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + strings.ToUpper(raw[:6])
}

type options struct {
	newID IDFunc
	clock ports.Clock
}

type Option func(*options)

// WithIDFunc overrides id generation, mostly for tests.
func WithIDFunc(fn IDFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

func WithClock(clock ports.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{newID: NewID, clock: ports.SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
