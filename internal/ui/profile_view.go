package ui

import (
	"context"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/cinedost/cinedost/internal/library"
	"github.com/cinedost/cinedost/internal/session"
)

// ProfileView shows the account summary and edits the favorite-genre set that
// drives the recommendation feed.
type ProfileView struct {
	ui *RootUI

	avatarLabel *widget.Label
	nameLabel   *widget.Label
	emailLabel  *widget.Label
	statsLabel  *widget.Label
	genres      *GenreSelector
	saveBtn     *widget.Button
	statusLabel *widget.Label

	content fyne.CanvasObject
}

// NewProfileView creates the profile view.
func NewProfileView(ui *RootUI) *ProfileView {
	v := &ProfileView{ui: ui}
	v.createUI()
	return v
}

func (v *ProfileView) createUI() {
	v.avatarLabel = widget.NewLabel("")
	v.avatarLabel.TextStyle = fyne.TextStyle{Bold: true}

	v.nameLabel = widget.NewLabel("")
	v.nameLabel.TextStyle = fyne.TextStyle{Bold: true}

	v.emailLabel = widget.NewLabel("")
	v.statsLabel = widget.NewLabel("")

	genresHeading := widget.NewLabel("Favorite genres")
	genresHeading.TextStyle = fyne.TextStyle{Bold: true}

	v.genres = NewGenreSelector(func() {
		v.statusLabel.Hide()
		v.saveBtn.Enable()
	})

	v.saveBtn = widget.NewButton("Save Preferences", v.onSave)
	v.saveBtn.Importance = widget.HighImportance

	v.statusLabel = widget.NewLabel("")
	v.statusLabel.Hide()

	identity := container.NewVBox(
		container.NewHBox(v.avatarLabel, v.nameLabel),
		v.emailLabel,
		v.statsLabel,
	)

	form := container.NewVBox(
		identity,
		widget.NewSeparator(),
		genresHeading,
		v.genres,
		container.NewHBox(v.saveBtn, v.statusLabel),
	)

	v.content = container.NewScroll(container.NewPadded(form))
}

// Container returns the view's root canvas object.
func (v *ProfileView) Container() fyne.CanvasObject {
	return v.content
}

// Refresh re-renders from the cached user.
func (v *ProfileView) Refresh() {
	user := v.ui.session.CurrentUser()
	if user == nil {
		return
	}

	v.avatarLabel.SetText("[" + user.Initials() + "]")
	v.nameLabel.SetText(user.Username)
	v.emailLabel.SetText(user.Email)

	average := library.AverageOfRatings(user.Ratings)
	v.statsLabel.SetText(fmt.Sprintf("%d in watchlist%s%d rated%saverage %.1f %s%s%d favorite genres",
		len(user.Watchlist), MiddleDotSeparator,
		len(user.Ratings), MiddleDotSeparator,
		average, IconStar, MiddleDotSeparator,
		len(user.FavoriteGenres)))

	v.genres.SetSelected(user.FavoriteGenres)
	v.statusLabel.Hide()
	v.saveBtn.Enable()
}

// onSave validates and persists the genre selection, then refreshes the cached
// user so the home feed reloads against the new set.
func (v *ProfileView) onSave() {
	selected := v.genres.Selected()
	if err := session.ValidateGenres(selected); err != nil {
		v.showStatus(err.Error(), widget.DangerImportance)
		return
	}

	v.saveBtn.Disable()
	go func() {
		err := v.ui.session.UpdateFavoriteGenres(context.Background(), selected)
		fyne.Do(func() {
			v.saveBtn.Enable()
			if err != nil {
				log.Printf("ui: saving genres failed: %v", err)
				v.showStatus(errorMessage(err), widget.DangerImportance)
				return
			}
			v.showStatus("Preferences saved", widget.SuccessImportance)
		})
	}()
}

func (v *ProfileView) showStatus(message string, importance widget.Importance) {
	v.statusLabel.SetText(message)
	v.statusLabel.Importance = importance
	v.statusLabel.Show()
}
