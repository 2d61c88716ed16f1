package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/MazeSolve/internal/logger"
	"github.com/yildizm/MazeSolve/internal/workflow"
)

// pickerHeight is the number of file rows shown at once
const pickerHeight = 8

// Options configures the interactive app
type Options struct {
	Controller  *workflow.Controller
	Downloader  Downloader
	DownloadDir string

	// PickerDir lists files to choose from; empty disables the picker
	PickerDir string

	// DropEvents is an optional drag stream from a watched directory
	DropEvents <-chan *workflow.DragEvent
	DropDir    string

	Theme       Theme
	Color       bool
	Emoji       bool
	InitialPath string
	Logger      *logger.Logger
}

// Model is the interactive maze upload screen
type Model struct {
	ctx         context.Context
	controller  *workflow.Controller
	recorder    *workflow.Recorder
	downloader  Downloader
	downloadDir string

	picker  *Picker
	search  textinput.Model
	spinner spinner.Model
	styles  *Styles
	emoji   bool

	drops       <-chan *workflow.DragEvent
	dropDir     string
	initialPath string

	notice    string
	noticeErr bool

	width    int
	height   int
	quitting bool

	log *logger.Logger
}

// NewModel builds the app model. The controller is required.
func NewModel(ctx context.Context, opts Options) (*Model, error) {
	if opts.Controller == nil {
		return nil, errors.New("controller is required")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Theme.Name == "" {
		opts.Theme = DefaultTheme
	}
	if opts.DownloadDir == "" {
		opts.DownloadDir = "."
	}

	search := textinput.New()
	search.Placeholder = "type to filter files"
	search.Prompt = "/ "
	search.CharLimit = 128

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	styles := NewStyles(opts.Theme, opts.Color)
	spin.Style = styles.Processing

	m := &Model{
		ctx:         ctx,
		controller:  opts.Controller,
		recorder:    &workflow.Recorder{},
		downloader:  opts.Downloader,
		downloadDir: opts.DownloadDir,
		search:      search,
		spinner:     spin,
		styles:      styles,
		emoji:       opts.Emoji,
		drops:       opts.DropEvents,
		dropDir:     opts.DropDir,
		initialPath: opts.InitialPath,
		log:         opts.Logger.WithComponent("tui"),
	}

	if opts.PickerDir != "" {
		picker, err := NewPicker(opts.PickerDir, pickerHeight)
		if err != nil {
			return nil, err
		}
		m.picker = picker
	}

	return m, nil
}

// Init starts the drop listener and any initial selection
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForDrag(m.drops)}
	if m.initialPath != "" {
		cmds = append(cmds, m.pick([]string{m.initialPath}))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case previewDoneMsg:
		m.controller.PreviewDone(msg.result)
		return m, nil

	case settledMsg:
		if m.controller.Settle(msg.outcome) {
			m.recorder.Record(msg.outcome)
		}
		return m, nil

	case dragMsg:
		cmd := runPreview(m.ctx, m.controller.HandleDrag(msg.event))
		return m, tea.Batch(cmd, waitForDrag(m.drops))

	case pasteDropMsg:
		return m, runPreview(m.ctx, m.controller.HandleDrag(msg.event))

	case dropClosedMsg:
		m.drops = nil
		m.setNotice("Drop folder is no longer watched", true)
		return m, nil

	case downloadDoneMsg:
		if msg.err != nil {
			m.log.WarnWithFields("download failed", []logger.Field{logger.Error(msg.err)})
			m.setNotice("Download failed: "+msg.err.Error(), true)
			return m, nil
		}
		m.recorder.Saved(msg.path)
		m.setNotice("Saved "+msg.path, false)
		return m, nil

	case spinner.TickMsg:
		if !m.controller.View().Processing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Bracketed paste is how terminals deliver dragged files
	if msg.Paste {
		return m, m.paste(string(msg.Runes))
	}

	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "tab":
		m.toggleFocus()
		return m, nil
	case "ctrl+s":
		return m, m.submit()
	case "ctrl+d":
		return m, m.download()
	case "ctrl+r":
		m.rescan()
		return m, nil
	}

	if m.picker != nil && m.picker.Focused {
		return m.handlePickerKey(msg)
	}

	switch msg.String() {
	case "q", "esc":
		return m.quit()
	case "s", "enter":
		return m, m.submit()
	case "d":
		return m, m.download()
	case "/":
		m.toggleFocus()
		return m, nil
	}

	return m, nil
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.toggleFocus()
		return m, nil
	case "up":
		m.picker.MoveUp()
		return m, nil
	case "down":
		m.picker.MoveDown()
		return m, nil
	case "enter":
		path, ok := m.picker.SelectedPath()
		if !ok {
			return m, nil
		}
		m.toggleFocus()
		return m, m.pick([]string{path})
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.picker.SetSearch(m.search.Value())
	return m, cmd
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) toggleFocus() {
	if m.picker == nil {
		return
	}
	m.picker.Focused = !m.picker.Focused
	if m.picker.Focused {
		m.search.Focus()
	} else {
		m.search.Blur()
	}
}

// pick routes chosen paths through the picker change path
func (m *Model) pick(paths []string) tea.Cmd {
	m.clearNotice()
	return runPreview(m.ctx, m.controller.PickerChange(paths))
}

// paste treats pasted text as files dropped onto the window: the region is
// highlighted first and the drop lands on the next message
func (m *Model) paste(text string) tea.Cmd {
	paths := ParseDroppedPaths(text)
	if len(paths) == 0 {
		m.setNotice("Paste did not contain a file path", true)
		return nil
	}
	m.clearNotice()
	m.log.DebugWithFields("paste drop", []logger.Field{logger.F("files", len(paths))})
	m.controller.HandleDrag(workflow.NewDragEvent(workflow.DragEnter))
	drop := workflow.NewDragEvent(workflow.Drop, paths...)
	return func() tea.Msg {
		return pasteDropMsg{event: drop}
	}
}

func (m *Model) submit() tea.Cmd {
	m.clearNotice()
	attempt, err := m.controller.Submit(m.ctx)
	if err != nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick, runAttempt(attempt))
}

func (m *Model) download() tea.Cmd {
	v := m.controller.View()
	if !v.DownloadVisible {
		return nil
	}
	if m.downloader == nil {
		m.setNotice("Downloads are not available", true)
		return nil
	}
	m.setNotice("Downloading "+filepath.Base(v.DownloadRef)+"...", false)
	return downloadSolution(m.ctx, m.downloader, v.DownloadRef, m.downloadDir)
}

func (m *Model) rescan() {
	if m.picker == nil {
		return
	}
	picker, err := NewPicker(m.picker.Dir, m.picker.Height)
	if err != nil {
		m.setNotice(fmt.Sprintf("Rescan failed: %v", err), true)
		return
	}
	picker.Focused = m.picker.Focused
	picker.SetSearch(m.search.Value())
	m.picker = picker
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m *Model) clearNotice() {
	m.notice = ""
	m.noticeErr = false
}

// Report summarizes the screen's last result
func (m *Model) Report() *workflow.Report {
	var resolve func(string) string
	if m.downloader != nil {
		resolve = m.downloader.Resolve
	}
	return m.controller.Report(resolve, m.recorder)
}

// Run shows the app until the user quits or ctx is cancelled and returns a
// report of the final state
func Run(ctx context.Context, opts Options) (*workflow.Report, error) {
	model, err := NewModel(ctx, opts)
	if err != nil {
		return nil, err
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to run TUI: %w", err)
	}

	if m, ok := final.(*Model); ok {
		return m.Report(), nil
	}
	return model.Report(), nil
}
