package ui

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/cinedost/cinedost/internal/api"
	"github.com/cinedost/cinedost/internal/model"
)

// loadingIndicator is the shared in-view loading state.
func loadingIndicator() fyne.CanvasObject {
	spinner := widget.NewProgressBarInfinite()
	return container.NewCenter(container.NewVBox(widget.NewLabel("Loading..."), spinner))
}

// movieGrid lays out poster cards in a wrapping grid.
func movieGrid(ui *RootUI, list []model.Movie) fyne.CanvasObject {
	grid := container.NewGridWrap(fyne.NewSize(CardWidth, CardHeight))
	for _, m := range list {
		grid.Add(NewMovieCard(ui, m))
	}
	return grid
}

// errorMessage extracts the user-facing message from an API failure. Anything
// that is not a documented API error renders the generic message.
func errorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return api.GenericErrorMessage
}
