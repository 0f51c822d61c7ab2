package model

import (
	"fmt"
	"strings"
)

// Role is the playing role a player can be drafted for
type Role string

const (
	RoleGoalkeeper Role = "Goalkeeper"
	RoleDefender   Role = "Defender"
	RoleMidfielder Role = "Midfielder"
	RoleForward    Role = "Forward"
)

// AllRoles lists roles in the order rosters are built and displayed
var AllRoles = []Role{RoleGoalkeeper, RoleDefender, RoleMidfielder, RoleForward}

func (r Role) IsValid() bool {
	return r == RoleGoalkeeper || r == RoleDefender || r == RoleMidfielder || r == RoleForward
}

// Short returns the one-letter fantacalcio label for the role
func (r Role) Short() string {
	switch r {
	case RoleGoalkeeper:
		return "P"
	case RoleDefender:
		return "D"
	case RoleMidfielder:
		return "C"
	case RoleForward:
		return "A"
	}
	return "?"
}

var roleAliases = map[string]Role{
	"p":              RoleGoalkeeper,
	"por":            RoleGoalkeeper,
	"portiere":       RoleGoalkeeper,
	"gk":             RoleGoalkeeper,
	"goalkeeper":     RoleGoalkeeper,
	"d":              RoleDefender,
	"dif":            RoleDefender,
	"difensore":      RoleDefender,
	"def":            RoleDefender,
	"defender":       RoleDefender,
	"c":              RoleMidfielder,
	"cen":            RoleMidfielder,
	"centrocampista": RoleMidfielder,
	"mid":            RoleMidfielder,
	"midfielder":     RoleMidfielder,
	"a":              RoleForward,
	"att":            RoleForward,
	"attaccante":     RoleForward,
	"fwd":            RoleForward,
	"forward":        RoleForward,
}

// ParseRole resolves a single role label (English, abbreviated or Italian)
func ParseRole(label string) (Role, error) {
	role, ok := roleAliases[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return "", fmt.Errorf("unknown role %q", label)
	}
	return role, nil
}

// ParseRoles resolves a possibly multi-role label such as "D;C" or "Dc/E".
// Unknown parts are dropped and duplicates removed, preserving order.
func ParseRoles(label string) []Role {
	parts := strings.FieldsFunc(label, func(r rune) bool {
		return r == ';' || r == '/' || r == ',' || r == '|' || r == ' ' || r == '\t'
	})

	roles := make([]Role, 0, len(parts))
	seen := make(map[Role]bool)
	for _, part := range parts {
		role, err := ParseRole(part)
		if err != nil || seen[role] {
			continue
		}
		seen[role] = true
		roles = append(roles, role)
	}
	return roles
}

// Player represents one draftable athlete.
// Cost is request-scoped: the roster engine works on normalized copies.
type Player struct {
	ID                  string
	Name                string
	Club                string
	Roles               []Role
	SeasonAverageRating float64
	FantasyAverage      float64
	Appearances         int
	Cost                float64
}

// Key returns the identity used to prevent duplicate selection
func (p Player) Key() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Name + "|" + p.Club
}

// PrimaryRole returns the first listed role, or "" if none resolved
func (p Player) PrimaryRole() Role {
	if len(p.Roles) == 0 {
		return ""
	}
	return p.Roles[0]
}

func (p Player) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsRookie returns true for players with no rated appearances.
// Their averages are imputed, so the ranker scores them by cost instead.
func (p Player) IsRookie() bool {
	return p.Appearances == 0
}

// Clone returns a copy that shares no slices with p
func (p Player) Clone() Player {
	c := p
	c.Roles = append([]Role(nil), p.Roles...)
	return c
}

// RoleLabel renders the roles as a multi-role label, e.g. "Defender/Midfielder"
func (p Player) RoleLabel() string {
	labels := make([]string, len(p.Roles))
	for i, r := range p.Roles {
		labels[i] = string(r)
	}
	return strings.Join(labels, "/")
}

// RoleQuota maps each role to its required headcount
type RoleQuota map[Role]int

// DefaultQuota returns the standard 25-player roster quota
func DefaultQuota() RoleQuota {
	return RoleQuota{
		RoleGoalkeeper: 3,
		RoleDefender:   8,
		RoleMidfielder: 8,
		RoleForward:    6,
	}
}

// Size returns the mandatory roster size
func (q RoleQuota) Size() int {
	total := 0
	for _, count := range q {
		total += count
	}
	return total
}

// Validate checks every role has a positive quota
func (q RoleQuota) Validate() error {
	for _, role := range AllRoles {
		count, ok := q[role]
		if !ok {
			return fmt.Errorf("quota missing for role %s", role)
		}
		if count <= 0 {
			return fmt.Errorf("quota for role %s must be positive, got %d", role, count)
		}
	}
	for role := range q {
		if !role.IsValid() {
			return fmt.Errorf("quota has unknown role %q", role)
		}
	}
	return nil
}
