package ui

import (
	"context"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/cinedost/cinedost/internal/model"
	"github.com/cinedost/cinedost/internal/movies"
)

// HomeView is the signed-in landing screen: a personalized recommendation
// feed that falls back to the popular collection when personalization yields
// nothing.
type HomeView struct {
	ui    *RootUI
	guard loadGuard

	heading     *widget.Label
	sourceLabel *widget.Label
	body        *fyne.Container

	content fyne.CanvasObject
}

// NewHomeView creates the home view.
func NewHomeView(ui *RootUI) *HomeView {
	v := &HomeView{ui: ui}
	v.createUI()
	return v
}

func (v *HomeView) createUI() {
	v.heading = widget.NewLabel("")
	v.heading.TextStyle = fyne.TextStyle{Bold: true}

	v.sourceLabel = widget.NewLabel("")
	v.sourceLabel.Hide()

	refreshBtn := widget.NewButton("Refresh", func() { v.Load() })
	refreshBtn.Importance = widget.LowImportance

	v.body = container.NewStack()

	header := container.NewBorder(nil, nil, nil, refreshBtn, container.NewVBox(v.heading, v.sourceLabel))
	v.content = container.NewBorder(container.NewPadded(header), nil, nil, nil, v.body)
}

// Container returns the view's root canvas object.
func (v *HomeView) Container() fyne.CanvasObject {
	return v.content
}

// Load fetches the recommendation feed through the fallback chain.
func (v *HomeView) Load() {
	seq := v.guard.next()

	if user := v.ui.session.CurrentUser(); user != nil {
		v.heading.SetText(fmt.Sprintf("Hey %s, here's what to watch", user.Username))
	} else {
		v.heading.SetText("Here's what to watch")
	}
	v.sourceLabel.Hide()
	v.setBody(loadingIndicator())

	go func() {
		results, source, err := v.ui.catalog.Recommended(context.Background())
		fyne.Do(func() {
			if !v.guard.current(seq) {
				log.Printf("ui: discarding stale home feed response")
				return
			}
			if err != nil {
				v.showError(err)
				return
			}
			v.render(results, source)
		})
	}()
}

// browsePopular bypasses personalization after a full feed failure.
func (v *HomeView) browsePopular() {
	seq := v.guard.next()
	v.setBody(loadingIndicator())

	go func() {
		results, err := v.ui.catalog.Popular(context.Background())
		fyne.Do(func() {
			if !v.guard.current(seq) {
				return
			}
			if err != nil {
				v.showError(err)
				return
			}
			v.render(results, movies.SourcePopular)
		})
	}()
}

func (v *HomeView) render(results []model.Movie, source movies.Source) {
	if source == movies.SourcePopular {
		v.sourceLabel.SetText("Popular right now")
		v.sourceLabel.Show()
	} else {
		v.sourceLabel.Hide()
	}

	if len(results) == 0 {
		empty := widget.NewLabel("Nothing to show yet. Try rating a few movies to tune your feed.")
		empty.Alignment = fyne.TextAlignCenter
		v.setBody(container.NewCenter(empty))
		return
	}

	v.setBody(container.NewScroll(movieGrid(v.ui, results)))
}

func (v *HomeView) showError(err error) {
	label := widget.NewLabel(errorMessage(err))
	label.Alignment = fyne.TextAlignCenter
	label.Wrapping = fyne.TextWrapWord

	retryBtn := widget.NewButton("Try Again", v.Load)
	retryBtn.Importance = widget.HighImportance
	browseBtn := widget.NewButton("Browse Popular", v.browsePopular)

	panel := container.NewVBox(label, container.NewCenter(container.NewHBox(retryBtn, browseBtn)))
	v.setBody(container.NewCenter(panel))
}

func (v *HomeView) setBody(content fyne.CanvasObject) {
	v.body.Objects = []fyne.CanvasObject{content}
	v.body.Refresh()
}
