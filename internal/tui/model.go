package tui

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/healthmesh/internal/dashboard"
	"github.com/garrettladley/healthmesh/internal/tui/components/footer"
	"github.com/garrettladley/healthmesh/internal/tui/page/splash"
	"github.com/garrettladley/healthmesh/internal/tui/theme"
	"github.com/garrettladley/healthmesh/internal/xslog"
)

var _ tea.Model = (*Model)(nil)

type page uint

const (
	splashPage page = iota
	dashboardPage
)

type state struct {
	dashboard DashboardState
	blog      BlogState
}

type Model struct {
	ready          bool
	page           page
	viewportWidth  int
	viewportHeight int
	theme          theme.Theme
	state          state
	deps           Deps
	postsChanged   chan struct{}
}

func New(deps Deps) Model {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}

	m := Model{
		page:  splashPage,
		theme: theme.New(),
		deps:  deps,
	}
	if deps.WatchPosts != nil {
		m.postsChanged = make(chan struct{})
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.Tick(splash.Duration, func(time.Time) tea.Msg {
			return SplashTickMsg{}
		}),
		checkAuthCmd(m.deps.Ctx, m.deps.TokenChecker, m.deps.TokenFromEnv),
		m.startLoad(),
		loadPostsCmd(m.deps.Posts),
	}
	if m.postsChanged != nil {
		cmds = append(cmds,
			startPostsWatchCmd(m.deps.Ctx, m.deps.WatchPosts, m.postsChanged),
			listenPostsCmd(m.deps.Ctx, m.postsChanged),
		)
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.startSync(dashboard.SyncAll)
		case "g":
			return m, m.startSync(dashboard.SyncGarmin)
		case "n":
			return m, m.startSync(dashboard.SyncNutrition)
		case "l":
			return m, m.startLoad()
		case "b":
			m.state.blog.Visible = !m.state.blog.Visible
			if m.state.blog.Visible {
				return m, loadPostsCmd(m.deps.Posts)
			}
		}

	// splash timer expired - transition to dashboard
	case SplashTickMsg:
		m.page = dashboardPage

	case AuthStatusMsg:
		m.state.dashboard.AuthIndicator.Checked = true
		if msg.Err != nil {
			m.deps.Logger.Warn("failed to check credential", xslog.Error(msg.Err))
			break
		}
		m.state.dashboard.AuthIndicator.Authenticated = msg.HasToken
		m.state.dashboard.AuthIndicator.FromEnv = msg.FromEnv

	case DashboardMsg:
		m.applyDashboard(msg)

	case PostsMsg:
		m.state.blog.Posts = msg.Posts

	case PostsChangedMsg:
		return m, tea.Batch(
			loadPostsCmd(m.deps.Posts),
			listenPostsCmd(m.deps.Ctx, m.postsChanged),
		)

	case PostsWatchStoppedMsg:
		if msg.Err != nil && m.deps.Ctx.Err() == nil {
			m.deps.Logger.Warn("posts watcher stopped", xslog.Error(msg.Err))
		}
	}

	return m, nil
}

func (m *Model) busy() bool {
	return m.state.dashboard.inFlight
}

func (m *Model) startLoad() tea.Cmd {
	if m.busy() || m.deps.Loader == nil {
		return nil
	}
	m.state.dashboard.seq++
	m.state.dashboard.inFlight = true
	m.state.dashboard.syncing = ""
	return loadCmd(m.deps.Ctx, m.deps.Loader, m.state.dashboard.seq)
}

func (m *Model) startSync(kind dashboard.SyncKind) tea.Cmd {
	if m.busy() || m.deps.Loader == nil {
		return nil
	}
	m.state.dashboard.seq++
	m.state.dashboard.inFlight = true
	m.state.dashboard.syncing = kind
	return syncCmd(m.deps.Ctx, m.deps.Loader, m.state.dashboard.seq, kind)
}

func (m *Model) applyDashboard(msg DashboardMsg) {
	d := &m.state.dashboard
	if msg.Seq != d.seq {
		return
	}
	d.inFlight = false
	d.syncing = ""

	if msg.Err != nil {
		d.Err = msg.Err
		d.failedSync = msg.Kind
		m.deps.Logger.Error("dashboard refresh failed",
			xslog.Error(msg.Err),
			xslog.SyncKind(string(msg.Kind)),
		)
		return
	}

	d.Err = nil
	d.ViewModel = msg.ViewModel
}

func (m *Model) View() tea.View {
	view := tea.NewView("")
	view.AltScreen = true

	// splash uses pure black BG, everything else uses default dark
	if m.page == splashPage {
		view.BackgroundColor = theme.ColorBlack
	} else {
		view.BackgroundColor = m.theme.Background()
	}

	if !m.ready {
		return view
	}

	var content string
	switch m.page {
	case splashPage:
		content = splash.View(m.theme, m.viewportWidth, m.viewportHeight)
	case dashboardPage:
		foot := footer.New(
			footer.Hints(keyHints...)+"   "+m.state.dashboard.AuthIndicator.Render(),
			m.viewportWidth,
		).Render()

		body := lipgloss.Place(
			m.viewportWidth,
			max(m.viewportHeight-lipgloss.Height(foot), 0),
			lipgloss.Center,
			lipgloss.Center,
			m.DashboardView(),
		)

		content = lipgloss.JoinVertical(lipgloss.Left, body, foot)
	}

	view.SetContent(content)
	return view
}

var keyHints = []footer.Hint{
	{Key: "r", Action: "sync"},
	{Key: "g", Action: "garmin"},
	{Key: "n", Action: "nutrition"},
	{Key: "l", Action: "reload"},
	{Key: "b", Action: "blog"},
	{Key: "q", Action: "quit"},
}
