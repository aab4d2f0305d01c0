package router

import (
	"context"
	"strings"

	"llmrouter/pkg/types"
)

// ConnectionTestPrompt is the single user turn sent by TestConnection.
const ConnectionTestPrompt = "This is a connection test. Reply with a short greeting."

// ConnectionTest reports whether the configured endpoint answered.
type ConnectionTest struct {
	Success bool
	Message string
}

// TestConnection sends a canned single-turn conversation. Success means the rendered
// result does not start with "Error:"; an empty envelope still counts as reachable.
func (d *Dispatcher) TestConnection(ctx context.Context, cfg types.ServiceConfig) ConnectionTest {
	turns := []types.ChatTurn{{Role: types.RoleUser, Content: ConnectionTestPrompt}}
	msg := d.Send(ctx, turns, cfg).String()
	return ConnectionTest{
		Success: !strings.HasPrefix(msg, strings.TrimSpace(ErrorPrefix)),
		Message: msg,
	}
}
