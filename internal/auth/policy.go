package auth

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

//go:embed policy.rego
var policySource string

// Action is one request against an API resource.
type Action struct {
	Resource string
	Method   string
}

// PermissionError is returned when the caller may not perform an action.
type PermissionError struct {
	Identity Identity
	Action   Action
}

func (e *PermissionError) Error() string {
	if !e.Identity.Authenticated() {
		return "Authentication credentials were not provided."
	}
	return "You do not have permission to perform this action."
}

// Policy evaluates the authorization rules in-process with OPA.
type Policy struct {
	perms Permissions
	query rego.PreparedEvalQuery
}

func NewPolicy(ctx context.Context, perms Permissions) (*Policy, error) {
	query, err := rego.New(
		rego.Query("data.railway.authz.allow"),
		rego.Module("policy.rego", policySource),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare policy: %w", err)
	}
	return &Policy{perms: perms, query: query}, nil
}

// CanPerform reports whether id may perform a.
func (p *Policy) CanPerform(ctx context.Context, id Identity, a Action) (bool, error) {
	input := map[string]any{
		"permission": p.perms.ClassFor(a.Resource),
		"method":     a.Method,
		"user": map[string]any{
			"authenticated": id.Authenticated(),
			"staff":         id.Staff,
		},
	}

	rs, err := p.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("evaluate policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return false, nil
	}
	allowed, ok := rs[0].Expressions[0].Value.(bool)
	if !ok {
		return false, fmt.Errorf("evaluate policy: unexpected result %v", rs[0].Expressions[0].Value)
	}
	return allowed, nil
}

// Authorize is CanPerform returning a PermissionError on denial.
func (p *Policy) Authorize(ctx context.Context, id Identity, a Action) error {
	ok, err := p.CanPerform(ctx, id, a)
	if err != nil {
		return err
	}
	if !ok {
		return &PermissionError{Identity: id, Action: a}
	}
	return nil
}
