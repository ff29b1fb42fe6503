package ui

import (
	"context"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/cinedost/cinedost/internal/config"
	"github.com/cinedost/cinedost/internal/images"
	"github.com/cinedost/cinedost/internal/library"
	"github.com/cinedost/cinedost/internal/model"
	"github.com/cinedost/cinedost/internal/movies"
	"github.com/cinedost/cinedost/internal/session"
)

// View identifies a top-level screen.
type View string

const (
	ViewHome      View = "home"
	ViewSearch    View = "search"
	ViewWatchlist View = "watchlist"
	ViewRatings   View = "ratings"
	ViewProfile   View = "profile"
)

// RootUI owns the window content: the navigation shell for signed-in users
// and the authentication forms for everyone else.
type RootUI struct {
	window   fyne.Window
	app      fyne.App
	settings *config.Settings
	session  *session.Service
	catalog  *movies.Service
	library  *library.Service
	loader   *images.Loader

	root *fyne.Container // window-level container, swapped wholesale

	home      *HomeView
	search    *SearchView
	watchlist *WatchlistView
	ratings   *RatingsView
	profile   *ProfileView
	login     *LoginView
	register  *RegisterView

	currentView View
	wasSignedIn bool
	genresKey   string
}

// NewRootUI creates and installs the main UI. Startup session restoration is
// expected to run in the background; until it resolves a neutral loading
// screen is shown instead of redirecting to the login form.
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, sessionSvc *session.Service,
	catalog *movies.Service, librarySvc *library.Service, loader *images.Loader) *RootUI {

	ui := &RootUI{
		window:   window,
		app:      app,
		settings: settings,
		session:  sessionSvc,
		catalog:  catalog,
		library:  librarySvc,
		loader:   loader,
		root:     container.NewStack(),
	}

	ui.home = NewHomeView(ui)
	ui.search = NewSearchView(ui)
	ui.watchlist = NewWatchlistView(ui)
	ui.ratings = NewRatingsView(ui)
	ui.profile = NewProfileView(ui)
	ui.login = NewLoginView(ui)
	ui.register = NewRegisterView(ui)

	sessionSvc.SetOnChange(ui.onUserChange)

	ui.showRestoring()
	window.SetContent(ui.root)
	return ui
}

// onUserChange reacts to login, logout and profile refreshes. Invoked from
// background goroutines, so all widget work goes through fyne.Do.
func (ui *RootUI) onUserChange(user *model.User) {
	fyne.Do(func() {
		if user == nil {
			log.Printf("ui: signed out, showing login")
			ui.wasSignedIn = false
			ui.genresKey = ""
			ui.ShowLogin()
			return
		}

		key := strings.Join(user.FavoriteGenres, "|")
		genresChanged := ui.wasSignedIn && key != ui.genresKey
		signedIn := !ui.wasSignedIn

		ui.wasSignedIn = true
		ui.genresKey = key

		if signedIn {
			log.Printf("ui: signed in as %s", user.Username)
			ui.ShowView(ViewHome)
			return
		}
		if genresChanged {
			// Recommendations key on the favorite-genre set; one refetch per change.
			log.Printf("ui: favorite genres changed, reloading home feed")
			ui.home.Load()
		}
	})
}

// ShowLogin swaps in the login form.
func (ui *RootUI) ShowLogin() {
	ui.setRoot(ui.login.Container())
}

// ShowRegister swaps in the registration form.
func (ui *RootUI) ShowRegister() {
	ui.setRoot(ui.register.Container())
}

// ShowView swaps in a signed-in view inside the navigation shell and triggers
// its load.
func (ui *RootUI) ShowView(view View) {
	ui.currentView = view

	var content fyne.CanvasObject
	switch view {
	case ViewSearch:
		content = ui.search.Container()
	case ViewWatchlist:
		content = ui.watchlist.Container()
		ui.watchlist.Load()
	case ViewRatings:
		content = ui.ratings.Container()
		ui.ratings.Load()
	case ViewProfile:
		content = ui.profile.Container()
		ui.profile.Refresh()
	default:
		ui.currentView = ViewHome
		content = ui.home.Container()
		ui.home.Load()
	}

	ui.setRoot(container.NewBorder(ui.buildNav(), nil, nil, nil, content))
}

// OpenMovie pushes the detail view for one movie on top of the current view.
func (ui *RootUI) OpenMovie(movieID string) {
	detail := NewDetailView(ui, movieID)
	ui.setRoot(container.NewBorder(ui.buildNav(), nil, nil, nil, detail.Container()))
	detail.Load()
}

// CloseDetail returns from a detail view to the view it was opened from.
func (ui *RootUI) CloseDetail() {
	ui.ShowView(ui.currentView)
}

// showRestoring renders the neutral startup state while the persisted session
// is being verified.
func (ui *RootUI) showRestoring() {
	spinner := widget.NewProgressBarInfinite()
	label := widget.NewLabel("Loading CineDost...")
	label.Alignment = fyne.TextAlignCenter
	ui.setRoot(container.NewCenter(container.NewVBox(label, spinner)))
}

func (ui *RootUI) setRoot(content fyne.CanvasObject) {
	ui.root.Objects = []fyne.CanvasObject{content}
	ui.root.Refresh()
}

// buildNav creates the top navigation bar. Rebuilt on each view swap so the
// active view's button renders highlighted.
func (ui *RootUI) buildNav() fyne.CanvasObject {
	navBtn := func(label string, view View) *widget.Button {
		btn := widget.NewButton(label, func() { ui.ShowView(view) })
		if ui.currentView == view {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.LowImportance
		}
		return btn
	}

	brand := widget.NewLabel("CineDost")
	brand.TextStyle = fyne.TextStyle{Bold: true}

	logoutBtn := widget.NewButton("Sign Out", func() {
		go ui.session.Logout()
	})
	logoutBtn.Importance = widget.LowImportance

	var userBadge fyne.CanvasObject = widget.NewLabel("")
	if user := ui.session.CurrentUser(); user != nil {
		badge := widget.NewLabel(user.Initials())
		badge.TextStyle = fyne.TextStyle{Bold: true}
		userBadge = badge
	}

	links := container.NewHBox(
		navBtn("Home", ViewHome),
		navBtn("Search", ViewSearch),
		navBtn("Watchlist", ViewWatchlist),
		navBtn("My Ratings", ViewRatings),
		navBtn("Profile", ViewProfile),
	)

	return container.NewVBox(
		container.NewBorder(nil, nil, container.NewHBox(brand, links), container.NewHBox(userBadge, logoutBtn)),
		widget.NewSeparator(),
	)
}

// RestoreSession verifies any persisted token in the background.
func (ui *RootUI) RestoreSession() {
	go func() {
		ui.session.Restore(context.Background())
		fyne.Do(func() {
			// No user change fires when there was no token to restore.
			if ui.session.CurrentUser() == nil && !ui.wasSignedIn {
				ui.ShowLogin()
			}
		})
	}()
}
