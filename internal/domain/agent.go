package domain

import (
	"fmt"
	"strings"
	"time"
)

type Agent struct {
	ID        string
	Name      string
	Email     string
	Team      string
	Role      AgentRole
	CreatedAt time.Time
}

// Validate checks the fields a caller must supply before an agent is stored.
func (a *Agent) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("agent name is required")
	}
	if !ValidAgentRoles[string(a.Role)] {
		return fmt.Errorf("invalid role %q (expected agent, supervisor or admin)", a.Role)
	}
	if a.Email != "" && !strings.Contains(a.Email, "@") {
		return fmt.Errorf("invalid email %q", a.Email)
	}
	return nil
}

// DisplayID returns the first 8 characters of the ID.
func (a *Agent) DisplayID() string {
	if len(a.ID) >= 8 {
		return a.ID[:8]
	}
	return a.ID
}
