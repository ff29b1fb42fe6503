package ui

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/cinedost/cinedost/internal/config"
	"github.com/cinedost/cinedost/internal/library"
	"github.com/cinedost/cinedost/internal/model"
)

// Watchlist sort option labels.
const (
	watchSortLabelAdded  = "Recently Added"
	watchSortLabelRating = "Rating"
	watchSortLabelTitle  = "Title"
)

// WatchlistView shows the user's bookmarked movies with sorting, a grid/list
// toggle, per-item removal and a confirmed bulk clear.
type WatchlistView struct {
	ui    *RootUI
	guard loadGuard

	sortSelect *widget.Select
	modeBtn    *widget.Button
	clearBtn   *widget.Button
	countLabel *widget.Label
	body       *fyne.Container

	// items holds the resolved watchlist in server insertion order.
	items []model.Movie

	content fyne.CanvasObject
}

// NewWatchlistView creates the watchlist view.
func NewWatchlistView(ui *RootUI) *WatchlistView {
	v := &WatchlistView{ui: ui}
	v.createUI()
	return v
}

func (v *WatchlistView) createUI() {
	heading := widget.NewLabel("My Watchlist")
	heading.TextStyle = fyne.TextStyle{Bold: true}

	v.sortSelect = widget.NewSelect(
		[]string{watchSortLabelAdded, watchSortLabelRating, watchSortLabelTitle},
		func(string) { v.render() },
	)

	v.modeBtn = widget.NewButton(v.modeButtonLabel(), v.onToggleMode)
	v.modeBtn.Importance = widget.LowImportance

	v.clearBtn = widget.NewButton("Clear All", v.onClearAll)
	v.clearBtn.Importance = widget.DangerImportance

	v.countLabel = widget.NewLabel("")

	v.body = container.NewStack()

	controls := container.NewHBox(widget.NewLabel("Sort"), v.sortSelect, v.modeBtn, v.clearBtn, v.countLabel)
	header := container.NewVBox(heading, controls, widget.NewSeparator())
	v.content = container.NewBorder(container.NewPadded(header), nil, nil, nil, v.body)

	// Selecting fires the change callback, so the body must exist first.
	v.sortSelect.SetSelected(watchSortLabelAdded)
}

// Container returns the view's root canvas object.
func (v *WatchlistView) Container() fyne.CanvasObject {
	return v.content
}

// Load fetches and resolves the watchlist.
func (v *WatchlistView) Load() {
	seq := v.guard.next()
	v.setBody(loadingIndicator())

	go func() {
		items, err := v.ui.library.Watchlist(context.Background())
		fyne.Do(func() {
			if !v.guard.current(seq) {
				log.Printf("ui: discarding stale watchlist response")
				return
			}
			if err != nil {
				v.showError(err)
				return
			}
			v.items = items
			v.render()
		})
	}()
}

func (v *WatchlistView) render() {
	v.countLabel.SetText(fmt.Sprintf("%d saved", len(v.items)))

	if len(v.items) == 0 {
		v.clearBtn.Disable()
		empty := widget.NewLabel("Your watchlist is empty. Bookmark movies you want to see later.")
		empty.Alignment = fyne.TextAlignCenter
		v.setBody(container.NewCenter(empty))
		return
	}
	v.clearBtn.Enable()

	sorted := library.SortWatchlist(v.items, v.sortOrder())
	if v.ui.settings.GetViewMode() == config.ViewModeList {
		v.setBody(container.NewScroll(v.buildList(sorted)))
	} else {
		v.setBody(container.NewScroll(movieGrid(v.ui, sorted)))
	}
}

func (v *WatchlistView) buildList(sorted []model.Movie) fyne.CanvasObject {
	list := container.NewVBox()
	for _, m := range sorted {
		movie := m
		title := widget.NewButton(movie.Title, func() {
			v.ui.OpenMovie(strconv.Itoa(movie.ID))
		})
		title.Alignment = widget.ButtonAlignLeading
		title.Importance = widget.LowImportance

		meta := widget.NewLabel(fmt.Sprintf("%s%s%s %.1f",
			movie.ReleaseYear(), MiddleDotSeparator, IconStar, movie.VoteAverage))

		removeBtn := widget.NewButton("Remove", func() {
			v.onRemove(strconv.Itoa(movie.ID))
		})
		removeBtn.Importance = widget.DangerImportance

		row := container.NewBorder(nil, nil, nil, container.NewHBox(meta, removeBtn), title)
		list.Add(row)
		list.Add(widget.NewSeparator())
	}
	return list
}

// onRemove deletes one bookmark; the row disappears only after the server
// confirms.
func (v *WatchlistView) onRemove(movieID string) {
	go func() {
		err := v.ui.library.Remove(context.Background(), movieID)
		fyne.Do(func() {
			if err != nil {
				log.Printf("ui: watchlist remove failed: %v", err)
				dialog.ShowInformation("Watchlist", errorMessage(err), v.ui.window)
				return
			}
			v.items = dropMovie(v.items, movieID)
			v.render()
		})
	}()
}

// onClearAll asks for confirmation, then issues one delete per saved movie.
func (v *WatchlistView) onClearAll() {
	if len(v.items) == 0 {
		return
	}

	message := fmt.Sprintf("Remove all %d movies from your watchlist?", len(v.items))
	dialog.ShowConfirm("Clear Watchlist", message, func(confirmed bool) {
		if !confirmed {
			return
		}

		ids := make([]string, len(v.items))
		for i, m := range v.items {
			ids[i] = strconv.Itoa(m.ID)
		}

		go func() {
			removed, err := v.ui.library.Clear(context.Background(), ids)
			fyne.Do(func() {
				for _, id := range removed {
					v.items = dropMovie(v.items, id)
				}
				if err != nil {
					log.Printf("ui: watchlist clear incomplete: %v", err)
					dialog.ShowInformation("Watchlist", errorMessage(err), v.ui.window)
				}
				v.render()
			})
		}()
	}, v.ui.window)
}

func (v *WatchlistView) onToggleMode() {
	if v.ui.settings.GetViewMode() == config.ViewModeGrid {
		v.ui.settings.SetViewMode(config.ViewModeList)
	} else {
		v.ui.settings.SetViewMode(config.ViewModeGrid)
	}
	v.modeBtn.SetText(v.modeButtonLabel())
	v.render()
}

// modeButtonLabel shows the mode the toggle switches to.
func (v *WatchlistView) modeButtonLabel() string {
	if v.ui.settings.GetViewMode() == config.ViewModeGrid {
		return IconListMode + " List"
	}
	return IconGridMode + " Grid"
}

func (v *WatchlistView) sortOrder() library.WatchlistSort {
	switch v.sortSelect.Selected {
	case watchSortLabelRating:
		return library.WatchlistSortRating
	case watchSortLabelTitle:
		return library.WatchlistSortTitle
	default:
		return library.WatchlistSortAdded
	}
}

func (v *WatchlistView) showError(err error) {
	label := widget.NewLabel(errorMessage(err))
	label.Alignment = fyne.TextAlignCenter
	label.Wrapping = fyne.TextWrapWord

	retryBtn := widget.NewButton("Try Again", v.Load)
	retryBtn.Importance = widget.HighImportance

	v.setBody(container.NewCenter(container.NewVBox(label, container.NewCenter(retryBtn))))
}

func (v *WatchlistView) setBody(content fyne.CanvasObject) {
	v.body.Objects = []fyne.CanvasObject{content}
	v.body.Refresh()
}

// dropMovie removes the movie with the given string id, preserving order.
func dropMovie(list []model.Movie, movieID string) []model.Movie {
	out := list[:0]
	for _, m := range list {
		if strconv.Itoa(m.ID) != movieID {
			out = append(out, m)
		}
	}
	return out
}
