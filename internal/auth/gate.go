package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/domain"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

const identityKey = "auth_identity"

// Decision outcomes reported to a DecisionRecorder.
const (
	OutcomePublic          = "public"
	OutcomeAllowed         = "allowed"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeForbidden       = "forbidden"
)

// DecisionRecorder receives one outcome per gated request.
type DecisionRecorder interface {
	RecordAuthDecision(outcome, reason string)
}

// Gate is the single enforcement point every request passes through. It holds
// no mutable state.
type Gate struct {
	policy   *Policy
	codec    *TokenCodec
	logger   *zap.Logger
	recorder DecisionRecorder
}

// NewGate constructs the gate. logger and recorder may be nil.
func NewGate(policy *Policy, codec *TokenCodec, logger *zap.Logger, recorder DecisionRecorder) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{policy: policy, codec: codec, logger: logger, recorder: recorder}
}

// Authorize decides a request. Public routes return a nil identity and nil
// error without looking at the token. Failures wrap ErrUnauthenticated or
// ErrForbidden.
func (g *Gate) Authorize(method, path, bearer string) (*domain.Identity, error) {
	rule := g.policy.Match(method, path)
	if rule.Requirement == RequirePublic {
		return nil, nil
	}

	if bearer == "" {
		return nil, fmt.Errorf("%w: missing bearer token", ErrUnauthenticated)
	}
	identity, err := g.codec.Verify(bearer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	if !rule.Permits(identity.Role) {
		return identity, fmt.Errorf("%w: role %s not allowed by rule %s", ErrForbidden, identity.Role, rule.Name)
	}
	return identity, nil
}

// Handle is the fiber middleware form of Authorize.
func (g *Gate) Handle(c *fiber.Ctx) error {
	token := bearerToken(c.Get(fiber.HeaderAuthorization))

	identity, err := g.Authorize(c.Method(), c.Path(), token)
	switch {
	case err == nil && identity == nil:
		g.record(OutcomePublic, "")
		return c.Next()
	case err == nil:
		g.record(OutcomeAllowed, "")
		c.Locals(identityKey, identity)
		return c.Next()
	case errors.Is(err, ErrForbidden):
		g.record(OutcomeForbidden, "role")
		g.logger.Debug("request forbidden",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("subject", identity.Subject),
			zap.String("role", identity.Role.String()))
		return apperrors.NewForbidden("insufficient role")
	default:
		reason := rejectReason(err)
		g.record(OutcomeUnauthenticated, reason)
		g.logger.Debug("request unauthenticated",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("reason", reason))
		c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="inventory"`)
		return apperrors.NewUnauthorizedCause("authentication required", err)
	}
}

// IdentityFromContext returns the identity attached by the gate, if any.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok && identity != nil
}

func (g *Gate) record(outcome, reason string) {
	if g.recorder != nil {
		g.recorder.RecordAuthDecision(outcome, reason)
	}
}

// bearerToken extracts the credential of a "Bearer <token>" header. Any other
// shape yields an empty token, which non-public routes reject.
func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	default:
		return "missing"
	}
}
