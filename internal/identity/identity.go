package identity

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultHeader carries the opaque learner id set by the upstream auth layer.
const DefaultHeader = "X-Learner-ID"

// Provider answers "who is the current learner?". An absent identity is a normal state
// (signed-out child, session not restored yet), so it is reported with ok=false, not an error.
type Provider interface {
	CurrentLearnerID(ctx context.Context) (string, bool)
}

type ctxKey struct{}

// WithLearnerID returns a context carrying learnerID. Empty ids are not stored.
func WithLearnerID(ctx context.Context, learnerID string) context.Context {
	if learnerID == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, learnerID)
}

// FromContext returns the learner id stored by WithLearnerID.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// ContextProvider resolves identity from the request context populated by Middleware.
type ContextProvider struct{}

func (ContextProvider) CurrentLearnerID(ctx context.Context) (string, bool) {
	return FromContext(ctx)
}

// Middleware copies the learner id header into the request context.
// Requests without the header pass through unauthenticated.
func Middleware(header string) gin.HandlerFunc {
	if header == "" {
		header = DefaultHeader
	}
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader(header)); id != "" {
			c.Request = c.Request.WithContext(WithLearnerID(c.Request.Context(), id))
		}
		c.Next()
	}
}
