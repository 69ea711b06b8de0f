package headless

import (
	"context"
	"fmt"

	"github.com/datadiver/diver/pkg/chat"
)

// RunHeadless executes a single prompt against the backend and prints the
// streamed response to stdout. This is the entry point for -p/--prompt
// invocations.
func RunHeadless(manager *chat.Manager, prompt string) error {
	if prompt == "" {
		return fmt.Errorf("prompt cannot be empty in headless mode")
	}

	runner := newRunner(manager)
	if err := runner.run(context.Background(), prompt); err != nil {
		return fmt.Errorf("failed to execute prompt: %w", err)
	}
	return nil
}
