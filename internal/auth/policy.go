package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// Requirement is what a rule asks of the caller.
type Requirement int

const (
	// RequirePublic lets anyone through without looking at a token.
	RequirePublic Requirement = iota + 1
	// RequireAuthenticated accepts any verified identity.
	RequireAuthenticated
	// RequireRoles accepts a verified identity holding one of Rule.Roles.
	RequireRoles
)

func (r Requirement) String() string {
	switch r {
	case RequirePublic:
		return "public"
	case RequireAuthenticated:
		return "authenticated"
	case RequireRoles:
		return "roles"
	}
	return fmt.Sprintf("requirement(%d)", int(r))
}

// Rule maps HTTP methods and path patterns to a requirement.
//
// Methods empty means any method. A pattern is either an exact path or a
// "prefix/**" form matching prefix itself and everything below it.
type Rule struct {
	Name        string
	Methods     []string
	Patterns    []string
	Requirement Requirement
	Roles       []domain.Role
}

// Matches reports whether the rule covers method and path.
func (r Rule) Matches(method, path string) bool {
	if len(r.Methods) > 0 {
		found := false
		for _, m := range r.Methods {
			if strings.EqualFold(m, method) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	path = normalizePath(path)
	for _, pattern := range r.Patterns {
		if matchPattern(pattern, path) {
			return true
		}
	}
	return false
}

// Permits reports whether an identity holding role satisfies the rule.
func (r Rule) Permits(role domain.Role) bool {
	switch r.Requirement {
	case RequirePublic:
		return true
	case RequireAuthenticated:
		return role.Valid()
	case RequireRoles:
		for _, allowed := range r.Roles {
			if allowed == role {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (r Rule) validate() error {
	if len(r.Patterns) == 0 {
		return fmt.Errorf("rule %q has no path patterns", r.Name)
	}
	for _, p := range r.Patterns {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("rule %q: pattern %q must start with /", r.Name, p)
		}
	}
	switch r.Requirement {
	case RequirePublic, RequireAuthenticated:
		if len(r.Roles) > 0 {
			return fmt.Errorf("rule %q: roles only apply to role rules", r.Name)
		}
	case RequireRoles:
		if len(r.Roles) == 0 {
			return fmt.Errorf("rule %q requires at least one role", r.Name)
		}
		for _, role := range r.Roles {
			if !role.Valid() {
				return fmt.Errorf("rule %q: unknown role %q", r.Name, role)
			}
		}
	default:
		return fmt.Errorf("rule %q: unknown requirement %s", r.Name, r.Requirement)
	}
	return nil
}

// Policy is an ordered rule table; the first matching rule governs. Requests
// matching no rule fall through to a rule requiring any authenticated caller.
// A Policy is immutable once built.
type Policy struct {
	rules    []Rule
	fallback Rule
}

// NewPolicy validates and freezes rules in the given order.
func NewPolicy(rules ...Rule) (*Policy, error) {
	if len(rules) == 0 {
		return nil, errors.New("policy needs at least one rule")
	}
	frozen := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if err := rule.validate(); err != nil {
			return nil, err
		}
		rule.Methods = upperAll(rule.Methods)
		rule.Patterns = lowerAll(rule.Patterns)
		rule.Roles = append([]domain.Role(nil), rule.Roles...)
		frozen = append(frozen, rule)
	}
	return &Policy{
		rules: frozen,
		fallback: Rule{
			Name:        "any-authenticated",
			Patterns:    []string{"/**"},
			Requirement: RequireAuthenticated,
		},
	}, nil
}

// DefaultPolicy is the route table of the inventory API.
func DefaultPolicy() *Policy {
	mutating := []string{http.MethodPost, http.MethodPut, http.MethodDelete}

	policy, err := NewPolicy(
		Rule{
			Name:        "health-probes",
			Methods:     []string{http.MethodGet},
			Patterns:    []string{"/health/**"},
			Requirement: RequirePublic,
		},
		Rule{
			Name:        "login-and-registration",
			Patterns:    []string{"/auth/login", "/users/**"},
			Requirement: RequirePublic,
		},
		Rule{
			Name:        "catalog-read",
			Methods:     []string{http.MethodGet},
			Patterns:    []string{"/stores/**", "/products/**"},
			Requirement: RequirePublic,
		},
		Rule{
			Name:        "store-write",
			Methods:     mutating,
			Patterns:    []string{"/stores/**"},
			Requirement: RequireRoles,
			Roles:       []domain.Role{domain.RoleOwner},
		},
		Rule{
			Name:        "product-write",
			Methods:     mutating,
			Patterns:    []string{"/products/**"},
			Requirement: RequireRoles,
			Roles:       []domain.Role{domain.RoleOwner, domain.RoleManager},
		},
	)
	if err != nil {
		panic(fmt.Sprintf("default policy: %v", err))
	}
	return policy
}

// Match returns the rule governing method and path.
func (p *Policy) Match(method, path string) Rule {
	for _, rule := range p.rules {
		if rule.Matches(method, path) {
			return rule
		}
	}
	return p.fallback
}

// Rules returns a copy of the ordered rules, fallback excluded.
func (p *Policy) Rules() []Rule {
	return append([]Rule(nil), p.rules...)
}

// normalizePath lower-cases the path and strips trailing slashes so the
// policy sees the same path the case-insensitive, non-strict router does.
func normalizePath(path string) string {
	path = strings.ToLower(path)
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	if path == "" {
		return "/"
	}
	return path
}

func matchPattern(pattern, path string) bool {
	prefix, ok := strings.CutSuffix(pattern, "/**")
	if !ok {
		return normalizePath(pattern) == path
	}
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func upperAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(s)
	}
	return out
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
