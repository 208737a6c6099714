package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
)

// chromeHeight is the number of screen rows taken by the input block and the
// help line; the answer viewport gets the rest.
const chromeHeight = 4

// askCompleted carries the outcome of an asynchronous ask.
type askCompleted struct {
	answer domain.Answer
	err    error
}

// App is the ask view of the study assistant following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *Styles

	// input is the question entry field.
	input textinput.Model

	// viewport scrolls the answer and its sources.
	viewport viewport.Model

	// spinner renders while a question is in flight.
	spinner spinner.Model

	// answer holds the most recent answer, nil until one arrives.
	answer *domain.Answer

	// err holds the last error that occurred.
	err error

	// busy indicates a question is in flight.
	busy bool

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Ask a question about your documents..."
	ti.CharLimit = 512
	ti.Width = 50
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Spinner

	return &App{
		ports:    ports,
		ctx:      context.Background(),
		styles:   s,
		input:    ti,
		viewport: viewport.New(0, 0),
		spinner:  sp,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		a.spinner.Tick,
		tea.SetWindowTitle("study-assistant"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case askCompleted:
		a.busy = false
		if msg.err != nil {
			a.err = msg.err
			a.answer = nil
		} else {
			answer := msg.answer
			a.answer = &answer
			a.err = nil
		}
		a.refreshViewport()
		a.viewport.GotoTop()
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	// Remaining messages (cursor blinks and the like) belong to the input.
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleKeyMsg routes key presses.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return a, tea.Quit

	case tea.KeyEnter:
		question := strings.TrimSpace(a.input.Value())
		if question == "" || a.busy {
			return a, nil
		}
		a.busy = true
		a.err = nil
		return a, a.ask(question)

	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// ask answers the question asynchronously so the UI keeps rendering while
// the model generates.
func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := a.ports.Assistant.Ask(a.ctx, question, "")
		return askCompleted{answer: answer, err: err}
	}
}

// View implements tea.Model.
// It renders the current state as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		a.viewInput(),
		a.viewBody(),
		a.styles.Help.Render("enter: ask • ↑/↓: scroll • esc: quit"),
	)
}

// viewInput renders the question entry line.
func (a *App) viewInput() string {
	label := a.styles.Title.Render("Ask: ")
	field := a.styles.InputField.Render(a.input.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// viewBody renders the answer area.
func (a *App) viewBody() string {
	switch {
	case a.busy:
		return a.spinner.View() + a.styles.Muted.Render(" Thinking...")
	case a.err != nil:
		return a.styles.Error.Render("Error: " + a.err.Error())
	default:
		return a.viewport.View()
	}
}

// layout resizes the input and viewport to the terminal dimensions.
func (a *App) layout() {
	inputWidth := a.width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	a.input.Width = inputWidth

	bodyHeight := a.height - chromeHeight
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	a.viewport.Width = a.width
	a.viewport.Height = bodyHeight
	a.refreshViewport()
}

// refreshViewport re-renders the answer into the viewport.
func (a *App) refreshViewport() {
	body := a.renderAnswer()
	if a.viewport.Width > 0 {
		body = lipgloss.NewStyle().Width(a.viewport.Width).Render(body)
	}
	a.viewport.SetContent(body)
}

// renderAnswer formats the answer text with its cited sources.
func (a *App) renderAnswer() string {
	if a.answer == nil {
		return a.styles.Muted.Render("Ask a question about your uploaded PDFs to get started.")
	}

	var b strings.Builder
	b.WriteString(a.styles.Normal.Render(strings.TrimSpace(a.answer.Text)))
	if len(a.answer.Sources) > 0 {
		b.WriteString("\n\n")
		b.WriteString(a.styles.Subtitle.Render("Sources"))
		for _, src := range a.answer.Sources {
			b.WriteString("\n")
			b.WriteString(a.styles.Muted.Render(fmt.Sprintf("  - %s (chunk %d)", src.Source, src.Chunk)))
		}
	}
	return b.String()
}

// Query returns the current question text.
func (a *App) Query() string {
	return a.input.Value()
}

// SetQuery sets the question text.
func (a *App) SetQuery(query string) {
	a.input.SetValue(query)
}

// Answer returns the most recent answer, or nil when none has arrived.
func (a *App) Answer() *domain.Answer {
	return a.answer
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Busy reports whether a question is in flight.
func (a *App) Busy() bool {
	return a.busy
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.layout()
}
