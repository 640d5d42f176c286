package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jspark-dev/cinegrid/internal/domain"
	"github.com/jspark-dev/cinegrid/internal/search"
	"github.com/jspark-dev/cinegrid/internal/tui/styles"
)

// View renders the current route.
func (m *Model) View() string {
	var body string
	switch m.route {
	case domain.RouteHome:
		body = m.viewHome()
	case domain.RouteLogin:
		body = m.viewLogin()
	case domain.RouteSignup:
		body = m.viewSignup()
	case domain.RouteMovies:
		body = m.viewMovies()
	case domain.RouteMovieDetail:
		body = m.viewMovieDetail()
	case domain.RouteMovieRegister:
		body = m.viewRegister()
	case domain.RouteProfile:
		body = m.viewProfile()
	case domain.RouteAdmin:
		body = m.viewAdmin()
	case domain.RouteInfo:
		body = m.viewInfo()
	default:
		body = m.viewHome()
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	return b.String()
}

func (m *Model) header() string {
	title := styles.TitleStyle.Render("cinegrid")
	who := "guest"
	if id := m.session.Identity(); id != nil {
		who = id.ID
		if id.IsAdmin() {
			who += " (admin)"
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		title, "  ", styles.DimStyle.Render(who))
}

func (m *Model) statusBar() string {
	parts := []string{"1 home", "2 movies", "3 profile"}
	if m.session.IsAdmin() {
		parts = append(parts, "4 admin")
	}
	parts = append(parts, "5 info", "q quit")
	bar := styles.StatusBar.Render(strings.Join(parts, " · "))
	if m.notice != "" {
		bar = styles.AccentStyle.Render(m.notice) + "\n" + bar
	}
	return bar
}

// errorBanner renders the store's mapped message, if one is active.
func errorBanner(info *domain.ErrorInfo) string {
	if info == nil {
		return ""
	}
	return styles.ErrorBanner.Render(info.Message) + "\n\n"
}

func (m *Model) loadingLine(loading bool) string {
	if !loading {
		return ""
	}
	return m.spinner.View() + " " + styles.DimStyle.Render("loading...") + "\n\n"
}

func (m *Model) viewHome() string {
	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render("Top recommended"))
	b.WriteString("\n\n")
	b.WriteString(errorBanner(m.movies.Err()))
	b.WriteString(m.loadingLine(m.movies.Loading()))
	recs := m.movies.Recommended()
	if len(recs) == 0 && !m.movies.Loading() {
		b.WriteString(styles.DimStyle.Render("No recommendations yet."))
		b.WriteString("\n")
	}
	for i, mv := range recs {
		line := fmt.Sprintf("%d. %s %s", i+1, mv.Title, recommendMark(mv))
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func recommendMark(mv domain.Movie) string {
	mark := styles.UnrecommendedStyle.Render(styles.UnrecommendedChar)
	if mv.RecommendedByCurrentUser {
		mark = styles.RecommendedStyle.Render(styles.RecommendedChar)
	}
	return fmt.Sprintf("%s %d", mark, mv.RecommendationCount)
}

func (m *Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render("Log in"))
	b.WriteString("\n\n")
	b.WriteString(m.loginForm.view())
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("tab next field · enter submit · ctrl+s sign up · esc cancel"))
	return b.String()
}

func (m *Model) viewSignup() string {
	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render("Sign up"))
	b.WriteString("\n\n")
	b.WriteString(m.signupForm.view())
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("tab next field · enter submit · esc cancel"))
	return b.String()
}

// visibleMovies applies the client-side quick filter over the fetched page.
func (m *Model) visibleMovies() []domain.Movie {
	movies := m.movies.Movies()
	query := strings.TrimSpace(m.quickFilter.Value())
	if query == "" {
		return movies
	}
	matches := search.Filter(query, movies)
	out := make([]domain.Movie, len(matches))
	for i, match := range matches {
		out[i] = match.Movie
	}
	return out
}

func (m *Model) viewMovies() string {
	var b strings.Builder
	f := m.movies.Filters()
	p := m.movies.Pagination()

	sortLabel := fmt.Sprintf("sort: %s %s", f.SortBy, f.SortDirection)
	b.WriteString(styles.SubtitleStyle.Render("Movies"))
	b.WriteString("  ")
	b.WriteString(styles.DimStyle.Render(sortLabel))
	b.WriteString("\n\n")

	if m.filtering || m.quickFilter.Value() != "" {
		b.WriteString(m.quickFilter.View())
		b.WriteString("\n\n")
	}

	b.WriteString(errorBanner(m.movies.Err()))
	b.WriteString(m.loadingLine(m.movies.Loading()))

	visible := m.visibleMovies()
	if len(visible) == 0 && !m.movies.Loading() {
		b.WriteString(styles.DimStyle.Render("No movies found."))
		b.WriteString("\n")
	}
	for i, mv := range visible {
		line := fmt.Sprintf("%s  %s  %s",
			mv.Title,
			styles.DimStyle.Render(mv.Genre),
			recommendMark(mv))
		if i == m.cursor {
			line = styles.SelectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	pageLabel := fmt.Sprintf("page %d", p.CurrentPage)
	if p.TotalPages > 0 {
		pageLabel = fmt.Sprintf("page %d/%d · %d movies",
			p.CurrentPage, p.TotalPages, p.TotalItems)
	}
	b.WriteString(styles.DimStyle.Render(pageLabel + " · [ ] page · / filter · s sort · space recommend"))
	return b.String()
}

func (m *Model) viewMovieDetail() string {
	var b strings.Builder
	b.WriteString(errorBanner(m.movies.Err()))
	b.WriteString(m.loadingLine(m.movies.Loading()))

	mv := m.movies.Current()
	if mv == nil {
		b.WriteString(styles.DimStyle.Render("No movie selected."))
		return b.String()
	}

	var panel strings.Builder
	panel.WriteString(styles.TitleStyle.Render(mv.Title))
	panel.WriteString("\n\n")
	panel.WriteString(fmt.Sprintf("Director      %s\n", mv.Director))
	panel.WriteString(fmt.Sprintf("Genre         %s\n", mv.Genre))
	panel.WriteString(fmt.Sprintf("Released      %s\n", mv.ReleaseDate))
	panel.WriteString(fmt.Sprintf("Recommended   %s\n", recommendMark(*mv)))
	b.WriteString(styles.PanelBorder.Render(panel.String()))
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("space toggle recommendation · h back"))
	return b.String()
}

func (m *Model) viewRegister() string {
	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render("Register a movie"))
	b.WriteString("\n\n")
	b.WriteString(errorBanner(m.movies.Err()))
	b.WriteString(m.createForm.view())
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("tab next field · enter submit · esc cancel"))
	return b.String()
}

func (m *Model) viewProfile() string {
	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render("Profile"))
	b.WriteString("\n\n")
	b.WriteString(errorBanner(m.member.Err()))
	b.WriteString(m.loadingLine(m.member.Loading()))

	p := m.member.Profile()
	if p == nil {
		if !m.member.Loading() {
			b.WriteString(styles.DimStyle.Render("Profile not loaded."))
		}
		return b.String()
	}
	var panel strings.Builder
	panel.WriteString(fmt.Sprintf("ID      %s\n", p.ID))
	panel.WriteString(fmt.Sprintf("Name    %s\n", p.Name))
	panel.WriteString(fmt.Sprintf("Email   %s\n", p.Email))
	panel.WriteString(fmt.Sprintf("Birth   %s\n", p.Birth))
	panel.WriteString(fmt.Sprintf("Role    %s\n", p.Role))
	b.WriteString(styles.PanelBorder.Render(panel.String()))
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("L logout"))
	return b.String()
}

func (m *Model) viewAdmin() string {
	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render("Admin"))
	b.WriteString("  ")
	b.WriteString(styles.AccentStyle.Render(string(m.grid.Mode())))
	b.WriteString("\n\n")
	b.WriteString(errorBanner(m.grid.Err()))
	b.WriteString(m.loadingLine(m.grid.Loading()))

	rows := m.grid.Rows()
	if len(rows) == 0 && !m.grid.Loading() {
		b.WriteString(styles.DimStyle.Render("No rows."))
		b.WriteString("\n")
	}
	for i, row := range rows {
		line := gridRowLine(row)
		if i == m.cursor {
			line = styles.SelectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("tab switch members/movies · r refresh"))
	return b.String()
}

func gridRowLine(row domain.GridRow) string {
	switch row.Kind {
	case domain.GridModeMembers:
		if row.Member != nil {
			return fmt.Sprintf("%s  %s  %s",
				row.Member.Name,
				styles.DimStyle.Render(row.Member.Email),
				styles.DimStyle.Render(row.Member.Role))
		}
	case domain.GridModeMovies:
		if row.Movie != nil {
			return fmt.Sprintf("%s  %s", row.Movie.Title,
				styles.DimStyle.Render(row.Movie.Director))
		}
	}
	return row.Title()
}

func (m *Model) viewInfo() string {
	var panel strings.Builder
	panel.WriteString(styles.TitleStyle.Render("About cinegrid"))
	panel.WriteString("\n\n")
	panel.WriteString("A terminal client for the cinegrid movie catalog.\n")
	panel.WriteString("Browse movies, recommend favorites, and manage your account.\n")
	return styles.PanelBorder.Render(panel.String())
}
