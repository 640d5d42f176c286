// Package tui is the view shell over the state stores. Every route change
// passes through the navigation guard, and every remote action runs as a
// tea.Cmd that reports back with a typed message; the stores themselves
// are the single source of truth the views render from.
package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jspark-dev/cinegrid/internal/api"
	"github.com/jspark-dev/cinegrid/internal/domain"
	"github.com/jspark-dev/cinegrid/internal/state"
	"github.com/jspark-dev/cinegrid/internal/tui/styles"
)

// Model is the application root: stores, guard, current route, and the
// per-view input state.
type Model struct {
	session *state.Session
	guard   *state.Guard
	movies  *state.MovieStore
	member  *state.MemberStore
	grid    *state.GridStore
	client  *api.Client
	logger  *slog.Logger

	route    domain.Route
	intended domain.Route // set when login was forced; resumed after
	notice   string       // transient status-bar message

	recommendedLimit int

	keys    KeyMap
	spinner spinner.Model
	width   int
	height  int

	// Per-view state
	cursor      int             // selection in the movies list
	quickFilter textinput.Model // client-side fuzzy filter, movies view
	filtering   bool
	loginForm   form
	signupForm  form
	createForm  form
}

// Options configures the TUI model.
type Options struct {
	Session          *state.Session
	Movies           *state.MovieStore
	Member           *state.MemberStore
	Grid             *state.GridStore
	Client           *api.Client
	Logger           *slog.Logger
	InitialRoute     domain.Route
	RecommendedLimit int
}

// NewModel builds the root model. The initial route goes through the
// guard like any other navigation.
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.AccentStyle

	qf := textinput.New()
	qf.Placeholder = "type to filter titles"
	qf.CharLimit = 64

	m := &Model{
		session:          opts.Session,
		guard:            state.NewGuard(opts.Session),
		movies:           opts.Movies,
		member:           opts.Member,
		grid:             opts.Grid,
		client:           opts.Client,
		logger:           logger,
		route:            domain.RouteHome,
		recommendedLimit: opts.RecommendedLimit,
		keys:             DefaultKeyMap(),
		spinner:          sp,
		quickFilter:      qf,
		loginForm: newForm([]formField{
			{label: "Member ID", placeholder: "id"},
			{label: "Password", placeholder: "password", secret: true},
		}),
		signupForm: newForm([]formField{
			{label: "Member ID", placeholder: "id"},
			{label: "Password", placeholder: "password", secret: true},
			{label: "Name", placeholder: "name"},
			{label: "Email", placeholder: "email@example.com"},
			{label: "Birth", placeholder: "2000-01-01"},
		}),
		createForm: newForm([]formField{
			{label: "Title", placeholder: "title"},
			{label: "Director", placeholder: "director"},
			{label: "Genre", placeholder: "genre"},
			{label: "Release date", placeholder: "2024-01-01"},
		}),
	}

	if opts.InitialRoute != "" {
		m.route = opts.InitialRoute
	}
	return m
}

// Init starts the spinner and enters the initial route.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.navigate(m.route))
}

// navigate runs dest through the guard, lands on the permitted route, and
// kicks off the fetches that view needs.
func (m *Model) navigate(dest domain.Route) tea.Cmd {
	decision := m.guard.Check(dest)
	if !decision.Proceed {
		switch decision.Reason {
		case state.ReasonLoginRequired:
			m.intended = decision.Intended
			m.notice = "Login required"
		case state.ReasonForbidden:
			m.notice = "Admin privilege required"
		}
		m.logger.Info("navigation redirected",
			"from", string(dest), "to", string(decision.Target))
		dest = decision.Target
	}

	m.route = dest
	m.cursor = 0
	m.filtering = false
	m.quickFilter.SetValue("")
	return m.enterRoute(dest)
}

// enterRoute returns the initial fetch command for a route, if any.
func (m *Model) enterRoute(route domain.Route) tea.Cmd {
	switch route {
	case domain.RouteHome:
		return m.fetchRecommendedCmd()
	case domain.RouteMovies:
		return m.fetchMoviesCmd()
	case domain.RouteProfile:
		return m.fetchProfileCmd()
	case domain.RouteAdmin:
		return m.fetchGridCmd()
	default:
		return nil
	}
}

// Update is the event loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ErrMsg:
		// The store already holds the mapped message; the banner renders
		// from there. Log the raw error for diagnosis.
		m.logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		return m, nil

	case LoginResultMsg:
		return m.handleLoginResult(msg)

	case SignupResultMsg:
		if msg.Err == nil {
			m.notice = "Account created, please log in"
			m.signupForm.reset()
			return m, m.navigate(domain.RouteLogin)
		}
		m.notice = api.UserMessage(msg.Err).Message
		return m, nil

	case LoggedOutMsg:
		m.session.Logout()
		m.member.Reset()
		m.notice = "Logged out"
		return m, m.navigate(domain.RouteHome)

	case MovieCreatedMsg:
		m.notice = "Registered " + msg.Movie.Title
		m.createForm.reset()
		return m, m.navigate(domain.RouteMovies)

	case MoviesLoadedMsg, RecommendedLoadedMsg, MovieLoadedMsg,
		GridLoadedMsg, ProfileLoadedMsg, RecommendToggledMsg:
		// Stores already updated; re-render.
		return m, nil
	}

	return m, nil
}

func (m *Model) handleLoginResult(msg LoginResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.notice = api.UserMessage(msg.Err).Message
		return m, nil
	}

	m.session.Login(*msg.Identity)
	m.loginForm.reset()
	m.notice = "Welcome, " + msg.Identity.ID

	// Resume the route the guard interrupted, if any.
	dest := domain.RouteHome
	if m.intended != "" {
		dest = m.intended
		m.intended = ""
	}
	return m, m.navigate(dest)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text-entry contexts swallow most keys.
	if m.filtering {
		return m.handleFilterKey(msg)
	}
	switch m.route {
	case domain.RouteLogin:
		if msg.Type == tea.KeyCtrlS {
			return m, m.navigate(domain.RouteSignup)
		}
		return m.handleFormKey(msg, &m.loginForm, m.submitLogin)
	case domain.RouteSignup:
		return m.handleFormKey(msg, &m.signupForm, m.submitSignup)
	case domain.RouteMovieRegister:
		return m.handleFormKey(msg, &m.createForm, m.submitCreate)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape):
		m.notice = ""
		m.clearRouteError()
		return m, nil
	case key.Matches(msg, m.keys.GoHome):
		return m, m.navigate(domain.RouteHome)
	case key.Matches(msg, m.keys.GoMovies):
		return m, m.navigate(domain.RouteMovies)
	case key.Matches(msg, m.keys.GoProfile):
		return m, m.navigate(domain.RouteProfile)
	case key.Matches(msg, m.keys.GoAdmin):
		return m, m.navigate(domain.RouteAdmin)
	case key.Matches(msg, m.keys.GoInfo):
		return m, m.navigate(domain.RouteInfo)
	case key.Matches(msg, m.keys.Logout):
		if m.session.Authenticated() {
			return m, m.logoutCmd()
		}
		return m, m.navigate(domain.RouteLogin)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.enterRoute(m.route)
	}

	switch m.route {
	case domain.RouteMovies:
		return m.handleMoviesKey(msg)
	case domain.RouteAdmin:
		return m.handleAdminKey(msg)
	case domain.RouteMovieDetail:
		if key.Matches(msg, m.keys.Back) {
			return m, m.navigate(domain.RouteMovies)
		}
		if key.Matches(msg, m.keys.Recommend) {
			if cur := m.movies.Current(); cur != nil {
				return m, m.toggleRecommendCmd(cur.ID)
			}
		}
	}
	return m, nil
}

func (m *Model) handleMoviesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleMovies()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if m.cursor < len(visible) {
			id := visible[m.cursor].ID
			m.route = domain.RouteMovieDetail
			return m, m.fetchMovieCmd(id)
		}
	case key.Matches(msg, m.keys.Recommend):
		if m.cursor < len(visible) {
			return m, m.toggleRecommendCmd(visible[m.cursor].ID)
		}
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.quickFilter.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.NewMovie):
		return m, m.navigate(domain.RouteMovieRegister)
	case key.Matches(msg, m.keys.Sort):
		return m, m.cycleSort()
	case key.Matches(msg, m.keys.NextPage):
		return m, m.setPageCmd(m.movies.Pagination().CurrentPage + 1)
	case key.Matches(msg, m.keys.PrevPage):
		return m, m.setPageCmd(m.movies.Pagination().CurrentPage - 1)
	}
	return m, nil
}

// cycleSort rotates createdAt desc -> count desc -> createdAt asc.
func (m *Model) cycleSort() tea.Cmd {
	f := m.movies.Filters()
	var by domain.SortField
	var dir domain.SortDirection
	switch {
	case f.SortBy == domain.SortByCreatedAt && f.SortDirection == domain.SortDesc:
		by, dir = domain.SortByRecommendationCount, domain.SortDesc
	case f.SortBy == domain.SortByRecommendationCount:
		by, dir = domain.SortByCreatedAt, domain.SortAsc
	default:
		by, dir = domain.SortByCreatedAt, domain.SortDesc
	}
	return m.setFiltersCmd(state.FilterPatch{SortBy: &by, SortDirection: &dir})
}

func (m *Model) handleAdminKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Tab):
		next := domain.GridModeMovies
		if m.grid.Mode() == domain.GridModeMovies {
			next = domain.GridModeMembers
		}
		return m, m.setGridModeCmd(next)
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.grid.Rows())-1 {
			m.cursor++
		}
	}
	return m, nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.quickFilter.SetValue("")
		m.quickFilter.Blur()
		m.cursor = 0
		return m, nil
	case tea.KeyEnter:
		// Promote the quick-filter into a server-side search.
		m.filtering = false
		q := m.quickFilter.Value()
		m.quickFilter.Blur()
		return m, m.setFiltersCmd(state.FilterPatch{Search: &q})
	}
	var cmd tea.Cmd
	m.quickFilter, cmd = m.quickFilter.Update(msg)
	m.cursor = 0
	return m, cmd
}

// handleFormKey drives a form view: tab cycles fields, enter submits,
// esc leaves for home.
func (m *Model) handleFormKey(msg tea.KeyMsg, f *form, submit func() tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		return m, m.navigate(domain.RouteHome)
	case tea.KeyTab:
		f.next()
		return m, nil
	case tea.KeyEnter:
		if cmd := submit(); cmd != nil {
			return m, cmd
		}
		return m, nil
	}
	return m, f.Update(msg)
}

func (m *Model) submitLogin() tea.Cmd {
	vals := m.loginForm.values()
	if vals[0] == "" || vals[1] == "" {
		m.notice = "ID and password are required"
		return nil
	}
	return m.loginCmd(vals[0], vals[1])
}

func (m *Model) submitSignup() tea.Cmd {
	vals := m.signupForm.values()
	if vals[0] == "" || vals[1] == "" {
		m.notice = "ID and password are required"
		return nil
	}
	return m.signupCmd(api.SignupRequest{
		ID:       vals[0],
		Password: vals[1],
		Name:     vals[2],
		Email:    vals[3],
		Birth:    vals[4],
	})
}

func (m *Model) submitCreate() tea.Cmd {
	vals := m.createForm.values()
	if vals[0] == "" {
		m.notice = "Title is required"
		return nil
	}
	return m.createMovieCmd(domain.Movie{
		Title:       vals[0],
		Director:    vals[1],
		Genre:       vals[2],
		ReleaseDate: vals[3],
	})
}

// clearRouteError dismisses the active store's error for the current view.
func (m *Model) clearRouteError() {
	switch m.route {
	case domain.RouteProfile:
		m.member.ClearError()
	case domain.RouteAdmin:
		m.grid.ClearError()
	default:
		m.movies.ClearError()
	}
}
