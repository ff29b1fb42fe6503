package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/cinedost/cinedost/internal/api"
	"github.com/cinedost/cinedost/internal/config"
	"github.com/cinedost/cinedost/internal/images"
	"github.com/cinedost/cinedost/internal/library"
	"github.com/cinedost/cinedost/internal/movies"
	"github.com/cinedost/cinedost/internal/session"
	"github.com/cinedost/cinedost/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.cinedost.cinedost"
	AppName = "CineDost"

	WindowWidth  = 1100
	WindowHeight = 720
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	// Pick up a .env override for the API base URL before anything reads it.
	config.LoadEnvFile()

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCinemaTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	client := api.NewClient(settings.GetAPIBaseURL())
	sessionSvc := session.NewService(client, settings)
	catalog := movies.NewService(client)
	librarySvc := library.NewService(client)
	loader := images.NewLoader(images.DefaultCDNBaseURL)

	// Create and setup UI
	root := ui.NewRootUI(myWindow, myApp, settings, sessionSvc, catalog, librarySvc, loader)

	// Verify any persisted session in the background; the UI shows a neutral
	// loading state until this resolves.
	root.RestoreSession()

	myWindow.ShowAndRun()
}
