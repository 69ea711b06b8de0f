package headless

import (
	"context"
	"os"

	"github.com/datadiver/diver/pkg/chat"
	"github.com/datadiver/diver/pkg/config"
	"github.com/datadiver/diver/pkg/logger"
	"github.com/datadiver/diver/pkg/sse"
)

// runner drives one headless exchange.
type runner struct {
	manager       *chat.Manager
	output        *Output
	showRetrieval bool
}

func newRunner(manager *chat.Manager) *runner {
	settings := config.Get()
	return &runner{
		manager:       manager,
		output:        NewOutput(os.Stdout),
		showRetrieval: settings.Chat.ShowRetrieval,
	}
}

// run sends the prompt and prints events as they arrive: content deltas
// inline, retrieval progress on stderr-style status lines when enabled,
// sources and a timing summary after the terminal event.
func (r *runner) run(ctx context.Context, prompt string) error {
	log := logger.WithComponent("headless")
	log.Debug("running headless prompt", "chars", len(prompt))

	result, err := r.manager.Send(ctx, prompt, func(msg *chat.Message, ev sse.Event) {
		switch {
		case ev.IsContent():
			r.output.Delta(ev.Text())
		case ev.IsRetrieval() && r.showRetrieval:
			r.output.Retrieval(ev)
		}
	})
	if err != nil {
		// The fallback content is already on the message; show it so the
		// invocation never ends silent.
		if result != nil && result.Target != nil {
			r.output.Line(result.Target.Content)
		}
		return err
	}

	r.output.Newline()
	target := result.Target
	if len(target.Sources) > 0 {
		r.output.Sources(target.Sources)
	}
	r.output.Summary(target.Metadata)

	log.Debug("headless prompt complete",
		"tokens", target.Metadata.TokenCount,
		"duration", target.Metadata.ProcessingTime)
	return nil
}
