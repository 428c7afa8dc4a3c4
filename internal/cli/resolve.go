package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/shiftclock/internal/domain"
)

// resolveAgentID accepts a full agent ID, a unique ID prefix, or a
// case-insensitive exact name.
func resolveAgentID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("agent is required")
	}
	if a, err := app.Agents.GetByID(ctx, input); err == nil {
		return a.ID, nil
	}

	agents, err := app.Agents.List(ctx, "")
	if err != nil {
		return "", err
	}
	var matches []*domain.Agent
	for _, a := range agents {
		if strings.EqualFold(a.Name, input) || strings.HasPrefix(a.ID, strings.ToLower(input)) {
			matches = append(matches, a)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no agent matches %q", input)
	case 1:
		return matches[0].ID, nil
	default:
		return "", fmt.Errorf("%q matches %d agents, use the ID", input, len(matches))
	}
}

func resolveAgentIDs(ctx context.Context, app *App, inputs []string) ([]string, error) {
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		id, err := resolveAgentID(ctx, app, in)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// agentNames maps agent IDs to names for list output.
func agentNames(ctx context.Context, app *App) map[string]string {
	names := map[string]string{}
	agents, err := app.Agents.List(ctx, "")
	if err != nil {
		return names
	}
	for _, a := range agents {
		names[a.ID] = a.Name
	}
	return names
}
