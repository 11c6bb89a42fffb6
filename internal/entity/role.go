package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is the closed set of account kinds. Values are persisted as smallint.
type Role uint8

const (
	RoleAdmin Role = iota
	RoleExerciser
	RoleExpert
)

var roleNames = map[Role]string{
	RoleAdmin:     "admin",
	RoleExerciser: "exerciser",
	RoleExpert:    "expert",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole accepts the role name case-insensitively. "coach" is an alias of expert.
func ParseRole(s string) (Role, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "coach" {
		return RoleExpert, nil
	}
	for role, n := range roleNames {
		if n == name {
			return role, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid role %d", uint8(r))
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON accepts either the role name or its numeric value.
func (r *Role) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		role, err := ParseRole(name)
		if err != nil {
			return err
		}
		*r = role
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("role must be a name or a number: %w", err)
	}
	role := Role(n)
	if n < 0 || !role.Valid() {
		return fmt.Errorf("unknown role %d", n)
	}
	*r = role
	return nil
}
