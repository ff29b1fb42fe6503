package ui

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/cinedost/cinedost/internal/library"
	"github.com/cinedost/cinedost/internal/model"
)

// Rating history filter and sort labels.
const (
	historyFilterLabelAll   = "All"
	historyFilterLabelMovie = "Movies"
	historyFilterLabelAnime = "Anime"

	historySortLabelDate   = "Recently Rated"
	historySortLabelRating = "My Rating"
	historySortLabelTitle  = "Title"
)

// RatingsView shows everything the user has rated, with content-type filtering
// and a small stats header.
type RatingsView struct {
	ui    *RootUI
	guard loadGuard

	filterSelect *widget.Select
	sortSelect   *widget.Select
	statsLabel   *widget.Label
	body         *fyne.Container

	items []library.RatedMovie

	content fyne.CanvasObject
}

// NewRatingsView creates the rating-history view.
func NewRatingsView(ui *RootUI) *RatingsView {
	v := &RatingsView{ui: ui}
	v.createUI()
	return v
}

func (v *RatingsView) createUI() {
	heading := widget.NewLabel("My Ratings")
	heading.TextStyle = fyne.TextStyle{Bold: true}

	v.filterSelect = widget.NewSelect(
		[]string{historyFilterLabelAll, historyFilterLabelMovie, historyFilterLabelAnime},
		func(string) { v.render() },
	)

	v.sortSelect = widget.NewSelect(
		[]string{historySortLabelDate, historySortLabelRating, historySortLabelTitle},
		func(string) { v.render() },
	)

	v.statsLabel = widget.NewLabel("")

	v.body = container.NewStack()

	controls := container.NewHBox(
		widget.NewLabel("Show"), v.filterSelect,
		widget.NewLabel("Sort"), v.sortSelect,
		v.statsLabel,
	)
	header := container.NewVBox(heading, controls, widget.NewSeparator())
	v.content = container.NewBorder(container.NewPadded(header), nil, nil, nil, v.body)

	// Selecting fires the change callback, so the body must exist first.
	v.filterSelect.SetSelected(historyFilterLabelAll)
	v.sortSelect.SetSelected(historySortLabelDate)
}

// Container returns the view's root canvas object.
func (v *RatingsView) Container() fyne.CanvasObject {
	return v.content
}

// Load fetches and resolves the rating history.
func (v *RatingsView) Load() {
	seq := v.guard.next()
	v.setBody(loadingIndicator())

	go func() {
		items, err := v.ui.library.RatedMovies(context.Background())
		fyne.Do(func() {
			if !v.guard.current(seq) {
				log.Printf("ui: discarding stale ratings response")
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

func (v *RatingsView) render() {
	v.statsLabel.SetText(fmt.Sprintf("%d rated%saverage %s %s",
		len(v.items), MiddleDotSeparator, library.FormatAverage(v.items), IconStar))

	filtered := library.FilterHistory(v.items, v.filter())
	if len(filtered) == 0 {
		empty := widget.NewLabel("No ratings here yet. Open a movie and give it some stars.")
		empty.Alignment = fyne.TextAlignCenter
		v.setBody(container.NewCenter(empty))
		return
	}

	sorted := library.SortHistory(filtered, v.sort())

	list := container.NewVBox()
	for _, item := range sorted {
		list.Add(v.buildRow(item))
		list.Add(widget.NewSeparator())
	}
	v.setBody(container.NewScroll(list))
}

func (v *RatingsView) buildRow(item library.RatedMovie) fyne.CanvasObject {
	movie := item

	title := widget.NewButton(movie.Title, func() {
		v.ui.OpenMovie(strconv.Itoa(movie.ID))
	})
	title.Alignment = widget.ButtonAlignLeading
	title.Importance = widget.LowImportance

	stars := widget.NewLabel(starString(movie.UserRating))
	stars.TextStyle = fyne.TextStyle{Bold: true}

	meta := widget.NewLabel(fmt.Sprintf("%s%s%s", ratedDate(movie.RatedAt), MiddleDotSeparator, contentTypeLabel(movie.Type)))

	return container.NewBorder(nil, nil, nil, container.NewHBox(meta, stars), title)
}

func (v *RatingsView) filter() library.HistoryFilter {
	switch v.filterSelect.Selected {
	case historyFilterLabelMovie:
		return library.HistoryFilterMovie
	case historyFilterLabelAnime:
		return library.HistoryFilterAnime
	default:
		return library.HistoryFilterAll
	}
}

func (v *RatingsView) sort() library.HistorySort {
	switch v.sortSelect.Selected {
	case historySortLabelRating:
		return library.HistorySortRating
	case historySortLabelTitle:
		return library.HistorySortTitle
	default:
		return library.HistorySortDate
	}
}

func (v *RatingsView) showError(err error) {
	label := widget.NewLabel(errorMessage(err))
	label.Alignment = fyne.TextAlignCenter
	label.Wrapping = fyne.TextWrapWord

	retryBtn := widget.NewButton("Try Again", v.Load)
	retryBtn.Importance = widget.HighImportance

	v.setBody(container.NewCenter(container.NewVBox(label, container.NewCenter(retryBtn))))
}

func (v *RatingsView) setBody(content fyne.CanvasObject) {
	v.body.Objects = []fyne.CanvasObject{content}
	v.body.Refresh()
}

// starString renders an n-of-5 star strip.
func starString(rating int) string {
	var b strings.Builder
	for i := 1; i <= model.MaxRating; i++ {
		if i <= rating {
			b.WriteString(IconStar)
		} else {
			b.WriteString(IconStarEmpty)
		}
	}
	return b.String()
}

// ratedDate shows the date portion of an RFC 3339 timestamp.
func ratedDate(ratedAt string) string {
	if len(ratedAt) < 10 {
		return DashPlaceholder
	}
	return ratedAt[:10]
}

func contentTypeLabel(t model.ContentType) string {
	if t == model.ContentTypeAnime {
		return "Anime"
	}
	return "Movie"
}
