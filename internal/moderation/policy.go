package moderation

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/ezeqja22/sciencepioneers-cli/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed policy.yaml
var defaultPolicyYAML []byte

// Validation errors surfaced before any request leaves the client.
var (
	ErrEmptyReason     = errors.New("a non-empty reason is required")
	ErrEmptyResolution = errors.New("a non-empty resolution is required")
	ErrNotPermitted    = errors.New("action not permitted")
)

// Assignment expresses who must hold the report for an action to apply.
type Assignment string

const (
	AssignAny        Assignment = "any"
	AssignSelf       Assignment = "self"
	AssignOther      Assignment = "other"
	AssignUnassigned Assignment = "unassigned"
)

// Rule is the set of gates an action must pass. Zero-valued fields mean
// "no constraint", so the YAML only states what each action cares about.
type Rule struct {
	Statuses           []models.ReportStatus `yaml:"statuses"`
	Assignment         Assignment            `yaml:"assignment"`
	Roles              []models.Role         `yaml:"roles"`
	RequiresText       bool                  `yaml:"requires_text"`
	RequiresTargetUser bool                  `yaml:"requires_target_user"`
	TargetBanned       *bool                 `yaml:"target_banned"`
	TargetActive       *bool                 `yaml:"target_active"`
	EmailNotSent       bool                  `yaml:"email_not_sent"`
}

// Policy maps every action to its rule. Preconditions are data, not
// per-button conditionals, so adjusting the gating never touches code.
type Policy map[Action]Rule

// DefaultPolicy returns the policy compiled into the binary. The
// embedded file is validated at init time; a broken edit fails fast.
func DefaultPolicy() Policy {
	return defaultPolicy
}

var defaultPolicy Policy

func init() {
	p, err := ParsePolicy(defaultPolicyYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded moderation policy is invalid: %v", err))
	}
	defaultPolicy = p
}

// ParsePolicy decodes a YAML policy document.
func ParsePolicy(data []byte) (Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing policy: %w", err)
	}
	for action, rule := range p {
		switch rule.Assignment {
		case "", AssignAny, AssignSelf, AssignOther, AssignUnassigned:
		default:
			return nil, fmt.Errorf("action %q: unknown assignment %q", action, rule.Assignment)
		}
	}
	return p, nil
}

// Allowed checks every gate of the named action against the report and
// the current user. A nil error means the action may be offered and
// executed; otherwise the error names the failed gate.
func (p Policy) Allowed(a Action, r *models.Report, u models.CurrentUser) error {
	rule, known := p[a]
	if !known {
		return fmt.Errorf("%w: unknown action %q", ErrNotPermitted, a)
	}

	// The whole admin surface is role gated; per-action roles narrow it further.
	if !u.Role.CanModerate() {
		return fmt.Errorf("%w: role %q cannot moderate", ErrNotPermitted, u.Role)
	}
	if len(rule.Roles) > 0 {
		found := false
		for _, role := range rule.Roles {
			if u.Role == role {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: requires role in %v", ErrNotPermitted, rule.Roles)
		}
	}

	if len(rule.Statuses) > 0 {
		found := false
		for _, s := range rule.Statuses {
			if r.Status == s {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: report is %s", ErrNotPermitted, r.Status)
		}
	}

	switch rule.Assignment {
	case AssignSelf:
		if !r.AssignedToUser(u.Username) {
			return fmt.Errorf("%w: report is not assigned to you", ErrNotPermitted)
		}
	case AssignOther:
		if !r.Assigned() || r.AssignedToUser(u.Username) {
			return fmt.Errorf("%w: report is not held by another moderator", ErrNotPermitted)
		}
	case AssignUnassigned:
		if r.Assigned() {
			return fmt.Errorf("%w: report is already assigned to %s", ErrNotPermitted, r.AssignedTo)
		}
	}

	if rule.RequiresTargetUser && r.TargetUser == nil {
		return fmt.Errorf("%w: report does not target a user", ErrNotPermitted)
	}
	if rule.TargetBanned != nil && (r.TargetUser == nil || r.TargetUser.IsBanned != *rule.TargetBanned) {
		if *rule.TargetBanned {
			return fmt.Errorf("%w: target user is not banned", ErrNotPermitted)
		}
		return fmt.Errorf("%w: target user is already banned", ErrNotPermitted)
	}
	if rule.TargetActive != nil && (r.TargetUser == nil || r.TargetUser.IsActive != *rule.TargetActive) {
		if *rule.TargetActive {
			return fmt.Errorf("%w: target user is not active", ErrNotPermitted)
		}
		return fmt.Errorf("%w: target user is already active", ErrNotPermitted)
	}
	if rule.EmailNotSent && r.EmailSent {
		return fmt.Errorf("%w: follow-up email was already sent", ErrNotPermitted)
	}

	return nil
}

// RequiresText reports whether the action needs a non-empty free-text
// field (resolution or dismissal reason) before it can run.
func (p Policy) RequiresText(a Action) bool {
	return p[a].RequiresText
}

// actionOrder fixes the display order of offered actions.
var actionOrder = []Action{
	ActionTake, ActionTakeOver, ActionNotes,
	ActionWarn, ActionBan, ActionUnban, ActionDeactivate, ActionActivate,
	ActionResolve, ActionDismiss, ActionEmail,
}

// Available derives the actions to offer for a report, re-computed from
// scratch after every fetch. Pure: no request, no mutation.
func (p Policy) Available(r *models.Report, u models.CurrentUser) []Action {
	var out []Action
	for _, a := range actionOrder {
		if err := p.Allowed(a, r, u); err == nil {
			out = append(out, a)
		}
	}
	return out
}

// Available applies the default policy.
func Available(r *models.Report, u models.CurrentUser) []Action {
	return defaultPolicy.Available(r, u)
}

// Allowed applies the default policy.
func Allowed(a Action, r *models.Report, u models.CurrentUser) error {
	return defaultPolicy.Allowed(a, r, u)
}
