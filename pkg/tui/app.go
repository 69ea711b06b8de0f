package tui

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/datadiver/diver/pkg/api"
	"github.com/datadiver/diver/pkg/chat"
	"github.com/datadiver/diver/pkg/config"
	"github.com/datadiver/diver/pkg/logger"
	"github.com/datadiver/diver/pkg/sse"
)

const spinnerInterval = 100 * time.Millisecond

// App is the interactive chat screen. One goroutine owns the tcell event
// loop; stream events arrive via the chat manager's update callback and are
// folded in through QueueRedraw.
type App struct {
	screen  tcell.Screen
	client  *api.Client
	manager *chat.Manager

	mu            sync.Mutex
	display       MessageDisplay
	input         InputField
	status        StatusBar
	spinner       SpinnerComponent
	lastRetrieval *chat.RetrievalUpdate
	formatter     *MarkdownFormatter
	sending       bool
	cancelStream  context.CancelFunc

	redraw chan struct{}
	quit   chan struct{}
}

// StartApp runs the chat TUI until the user quits.
func StartApp(client *api.Client, manager *chat.Manager) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	app := newApp(screen, client, manager)
	return app.run()
}

func newApp(screen tcell.Screen, client *api.Client, manager *chat.Manager) *App {
	width, height := screen.Size()
	app := &App{
		screen:  screen,
		client:  client,
		manager: manager,
		display: NewMessageDisplay(width, height),
		input:   NewInputField(width),
		status:  NewStatusBar(width).WithBackend(client.BaseURL(), true),
		spinner: NewSpinnerComponent(),
		redraw:  make(chan struct{}, 1),
		quit:    make(chan struct{}),
	}

	formatter, err := NewMarkdownFormatter(width - 4)
	if err != nil {
		logger.WithComponent("tui").Warn("markdown formatter unavailable", "error", err)
	} else {
		app.formatter = formatter
	}

	if greeting := config.Get().Chat.SystemGreeting; greeting != "" {
		manager.AddSystemMessage(greeting)
	}

	return app
}

func (a *App) run() error {
	go a.checkBackend()
	go a.spinnerLoop()
	go a.eventLoop()

	a.draw()

	for {
		select {
		case <-a.quit:
			return nil
		case <-a.redraw:
			a.draw()
		}
	}
}

// eventLoop consumes tcell events. Runs on its own goroutine for the life
// of the app.
func (a *App) eventLoop() {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.handleResize()
		case *tcell.EventKey:
			if a.handleKey(ev) {
				close(a.quit)
				return
			}
		}
	}
}

// handleKey processes one key event; true means quit.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch ev.Key() {
	case tcell.KeyCtrlC:
		if a.cancelStream != nil {
			a.cancelStream()
		}
		return true

	case tcell.KeyEscape:
		// Esc aborts the in-flight stream, keeping partial content.
		if a.cancelStream != nil {
			a.cancelStream()
		}

	case tcell.KeyCtrlL:
		if !a.sending {
			a.manager.Clear()
			a.display = a.display.WithMessages(a.manager.Messages()).WithAutoScroll()
			a.status = a.status.WithSession("")
		}

	case tcell.KeyEnter:
		text := strings.TrimSpace(a.input.Content)
		if text != "" && !a.sending {
			a.input = a.input.Clear()
			go a.send(text)
		}

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.input = a.input.DeleteBackward()

	case tcell.KeyLeft:
		a.input = a.input.WithCursor(a.input.Cursor - 1)

	case tcell.KeyRight:
		a.input = a.input.WithCursor(a.input.Cursor + 1)

	case tcell.KeyHome:
		a.input = a.input.WithCursor(0)

	case tcell.KeyEnd:
		a.input = a.input.WithCursor(len(a.input.Content))

	case tcell.KeyUp:
		a.display = a.display.WithScroll(a.display.Scroll - 1)

	case tcell.KeyDown:
		a.display = a.display.WithScroll(a.display.Scroll + 1)

	case tcell.KeyPgUp:
		a.display = a.display.WithScroll(a.display.Scroll - a.display.Height/2)

	case tcell.KeyPgDn:
		a.display = a.display.WithScroll(a.display.Scroll + a.display.Height/2)

	default:
		if ev.Rune() != 0 {
			a.input = a.input.InsertRune(ev.Rune())
		}
	}

	a.queueRedraw()
	return false
}

// send runs one exchange on its own goroutine.
func (a *App) send(text string) {
	log := logger.WithComponent("tui")

	ctx, cancel := context.WithCancel(context.Background())

	a.mu.Lock()
	a.sending = true
	a.cancelStream = cancel
	a.spinner = a.spinner.WithVisibility(true)
	a.status = a.status.WithStatus("Streaming")
	a.lastRetrieval = nil
	a.mu.Unlock()
	a.queueRedraw()

	_, err := a.manager.Send(ctx, text, func(msg *chat.Message, ev sse.Event) {
		a.mu.Lock()
		if ev.IsRetrieval() {
			update := chat.RetrievalUpdate{
				Kind:    ev.Type,
				Step:    ev.Step,
				Message: ev.Message,
				Query:   ev.Query,
				Results: ev.Results,
			}
			a.lastRetrieval = &update
		}
		a.display = a.display.WithMessages(a.manager.Messages()).WithAutoScroll()
		a.mu.Unlock()
		a.queueRedraw()
	})
	if err != nil && ctx.Err() == nil {
		log.Error("send failed", "error", err)
	}

	cancel()

	a.mu.Lock()
	a.sending = false
	a.cancelStream = nil
	a.spinner = a.spinner.WithVisibility(false)
	a.status = a.status.WithStatus("Ready").WithSession(a.manager.Session().ID())
	a.lastRetrieval = nil
	a.display = a.display.WithMessages(a.manager.Messages()).WithAutoScroll()
	a.mu.Unlock()
	a.queueRedraw()
}

// checkBackend probes health once at startup for the status bar.
func (a *App) checkBackend() {
	health, _ := a.client.CheckHealthWithTimeout(5 * time.Second)

	a.mu.Lock()
	a.status = a.status.WithBackend(a.client.BaseURL(), health.Available)
	a.mu.Unlock()
	a.queueRedraw()
}

func (a *App) spinnerLoop() {
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			return
		case <-ticker.C:
			a.mu.Lock()
			visible := a.spinner.IsVisible
			if visible {
				a.spinner = a.spinner.NextFrame()
			}
			a.mu.Unlock()
			if visible {
				a.queueRedraw()
			}
		}
	}
}

func (a *App) handleResize() {
	a.screen.Sync()
	width, height := a.screen.Size()

	a.mu.Lock()
	a.display = a.display.WithSize(width, height)
	a.input = a.input.WithWidth(width)
	a.status = a.status.WithWidth(width)
	if formatter, err := NewMarkdownFormatter(width - 4); err == nil {
		a.formatter = formatter
	}
	a.mu.Unlock()
	a.queueRedraw()
}

func (a *App) queueRedraw() {
	select {
	case a.redraw <- struct{}{}:
	default:
	}
}

func (a *App) draw() {
	a.mu.Lock()
	defer a.mu.Unlock()

	width, height := a.screen.Size()
	layout := NewLayout(width, height)
	messageArea, retrievalArea, inputArea, statusArea := layout.CalculateAreas()

	a.display = a.display.WithSize(messageArea.Width, messageArea.Height)
	a.display.Messages = a.manager.Messages()

	a.screen.Clear()
	RenderMessages(a.screen, a.display, a.formatter, messageArea)
	RenderRetrieval(a.screen, a.lastRetrieval, a.spinner, retrievalArea)
	RenderInput(a.screen, a.input, inputArea)
	RenderStatus(a.screen, a.status, statusArea)
	a.screen.Show()
}
