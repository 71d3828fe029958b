package update

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/choirsched/internal/calendar"
	"github.com/sandeepkv93/choirsched/internal/model"
	"github.com/sandeepkv93/choirsched/internal/scheduler"
	"github.com/sandeepkv93/choirsched/internal/storage"
)

type Focus string

const (
	FocusGrid Focus = "Calendar"
	FocusList Focus = "Events"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type EditMode int

const (
	EditNone EditMode = iota
	EditCreating
	EditEditing
)

// EditIntent is the open form, if any. Original holds the record being
// edited.
type EditIntent struct {
	Mode     EditMode
	Form     EditForm
	Original model.Event
}

func (e EditIntent) Open() bool { return e.Mode != EditNone }

// DeleteIntent is the pending confirmation for removing one event.
type DeleteIntent struct {
	ID    string
	Title string
	Date  string
}

func (d DeleteIntent) Open() bool { return d.ID != "" }

func (d DeleteIntent) Label() string {
	if d.Date == "" {
		return d.Title
	}
	return d.Title + " (" + d.Date + ")"
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// FormDefaults pre-fills the add form when Enabled.
type FormDefaults struct {
	Enabled  bool
	Category model.Category
	Time     string
	Time2    string
	Location string
}

type Options struct {
	Adapter storage.Adapter
	// Admin unlocks add, edit and delete. It only gates the UI.
	Admin        bool
	Defaults     FormDefaults
	Location     *time.Location
	WriteTimeout time.Duration
	Notices      *scheduler.Engine
	NoticeLead   time.Duration
	// StateFile remembers announced notices across runs. Empty disables it.
	StateFile string
	Logger    *slog.Logger
	Now       func() time.Time
}

type Model struct {
	Cursor       calendar.Month
	SelectedDate time.Time
	Events       []model.Event
	Edit         EditIntent
	Delete       DeleteIntent
	Admin        bool
	Loading      bool
	Saving       bool
	Deleting     bool
	Focus        Focus
	ListCursor   int
	Palette      CommandPaletteState
	HelpVisible  bool
	LastNotice   *scheduler.Notice
	Status       StatusBar
	LastError    error
	Quitting     bool

	adapter      storage.Adapter
	feed         *snapshotFeed
	notices      *scheduler.Engine
	noticeLead   time.Duration
	announced    map[string]time.Time
	stateFile    string
	defaults     FormDefaults
	loc          *time.Location
	writeTimeout time.Duration
	logger       *slog.Logger
	now          func() time.Time

	// seq numbers adapter requests; completions for anything other than the
	// pending request are ignored.
	seq           int
	pendingSave   int
	pendingDelete int

	listViewport viewport.Model
	loadSpinner  spinner.Model
	commandInput textinput.Model
	helpModel    help.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// SnapshotMsg carries one push from the adapter subscription.
type SnapshotMsg struct {
	Snapshot storage.Snapshot
}

type subscribedMsg struct{}

type subscribeFailedMsg struct {
	Err error
}

type SaveDoneMsg struct {
	Seq     int
	Event   model.Event
	Created bool
	Err     error
}

type DeleteDoneMsg struct {
	Seq int
	ID  string
	Err error
}

type NoticeMsg struct {
	Notice scheduler.Notice
}

func NewModel(opts Options) Model {
	m := Model{
		Admin:        opts.Admin,
		Loading:      true,
		Focus:        FocusGrid,
		adapter:      opts.Adapter,
		feed:         newSnapshotFeed(),
		notices:      opts.Notices,
		noticeLead:   opts.NoticeLead,
		stateFile:    opts.StateFile,
		defaults:     opts.Defaults,
		loc:          opts.Location,
		writeTimeout: opts.WriteTimeout,
		logger:       opts.Logger,
		now:          opts.Now,
		Events:       []model.Event{},
	}
	if m.loc == nil {
		m.loc = time.Local
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.writeTimeout <= 0 {
		m.writeTimeout = 10 * time.Second
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	m.Cursor = calendar.MonthOf(m.today())
	m.announced = loadAnnouncedNotices(m.stateFile, m.logger)
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.listViewport = viewport.New(54, 12)

	m.loadSpinner = spinner.New()
	m.loadSpinner.Spinner = spinner.Dot

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
}

// today is the current date in the configured zone.
func (m Model) today() time.Time {
	return m.now().In(m.loc)
}
