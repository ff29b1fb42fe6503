package ui

import (
	"context"
	"fmt"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/cinedost/cinedost/internal/model"
	"github.com/cinedost/cinedost/internal/movies"
)

// Sort option labels shown in the search controls.
const (
	sortLabelRelevance = "Relevance"
	sortLabelRating    = "Rating"
	sortLabelDate      = "Release Date"
)

// Minimum-rating filter options.
var minVoteOptions = []string{"Any rating", "6+", "7+", "8+"}

// SearchView runs explicit free-text searches and refines the results
// client-side. Until a search is submitted it shows the trending grid.
type SearchView struct {
	ui    *RootUI
	guard loadGuard

	query       *widget.Entry
	sortSelect  *widget.Select
	genreSelect *widget.Select
	voteSelect  *widget.Select
	countLabel  *widget.Label
	body        *fyne.Container

	// raw holds the last search response in server order; filters and sorts
	// derive from it without refetching.
	raw      []model.Movie
	searched bool

	// trending is fetched once on first show and re-rendered on clear.
	trending       []model.Movie
	trendingLoaded bool
	firstShow      bool

	content fyne.CanvasObject
}

// NewSearchView creates the search view.
func NewSearchView(ui *RootUI) *SearchView {
	v := &SearchView{ui: ui, firstShow: true}
	v.createUI()
	return v
}

func (v *SearchView) createUI() {
	v.query = widget.NewEntry()
	v.query.SetPlaceHolder("Search for movies...")
	v.query.OnSubmitted = func(string) { v.onSearch() }

	searchBtn := widget.NewButton(IconSearch+" Search", v.onSearch)
	searchBtn.Importance = widget.HighImportance

	clearBtn := widget.NewButton(IconClose, v.onClear)
	clearBtn.Importance = widget.LowImportance

	sortLabels := []string{sortLabelRelevance, sortLabelRating, sortLabelDate}
	v.sortSelect = widget.NewSelect(sortLabels, func(string) { v.applyDerived() })
	v.sortSelect.SetSelected(sortLabelForOrder(movies.SortOrder(v.ui.settings.GetSearchSort())))

	genreOptions := append([]string{movies.GenreFilterAll}, model.GenreNames()...)
	v.genreSelect = widget.NewSelect(genreOptions, func(string) { v.applyDerived() })
	v.genreSelect.SetSelected(movies.GenreFilterAll)

	v.voteSelect = widget.NewSelect(minVoteOptions, func(string) { v.applyDerived() })
	v.voteSelect.SetSelected(minVoteOptions[0])

	v.countLabel = widget.NewLabel("")
	v.countLabel.Hide()

	v.body = container.NewStack()

	searchRow := container.NewBorder(nil, nil, nil, container.NewHBox(searchBtn, clearBtn), v.query)
	filterRow := container.NewHBox(
		widget.NewLabel("Sort"), v.sortSelect,
		widget.NewLabel("Genre"), v.genreSelect,
		widget.NewLabel("Min"), v.voteSelect,
		v.countLabel,
	)

	header := container.NewVBox(searchRow, filterRow, widget.NewSeparator())
	v.content = container.NewBorder(container.NewPadded(header), nil, nil, nil, v.body)
}

// Container returns the view's root canvas object, loading trending on first
// display.
func (v *SearchView) Container() fyne.CanvasObject {
	if v.firstShow {
		v.firstShow = false
		v.loadTrending()
	}
	return v.content
}

func (v *SearchView) onSearch() {
	query := v.query.Text
	if strings.TrimSpace(query) == "" {
		v.onClear()
		return
	}

	seq := v.guard.next()
	v.setBody(loadingIndicator())

	go func() {
		results, err := v.ui.catalog.Search(context.Background(), query)
		fyne.Do(func() {
			if !v.guard.current(seq) {
				log.Printf("ui: discarding stale search response")
				return
			}
			if err != nil {
				v.showError(err, v.onSearch)
				return
			}
			v.raw = results
			v.searched = true
			v.applyDerived()
		})
	}()
}

// onClear resets the query and filters and returns to the trending grid,
// re-rendering the cached set rather than refetching it.
func (v *SearchView) onClear() {
	v.query.SetText("")
	v.genreSelect.SetSelected(movies.GenreFilterAll)
	v.voteSelect.SetSelected(minVoteOptions[0])
	v.raw = nil
	v.searched = false
	v.countLabel.Hide()

	if v.trendingLoaded {
		v.guard.next()
		v.renderTrending()
		return
	}
	v.loadTrending()
}

func (v *SearchView) loadTrending() {
	seq := v.guard.next()
	v.setBody(loadingIndicator())

	go func() {
		results, err := v.ui.catalog.Trending(context.Background(), TrendingLimit)
		fyne.Do(func() {
			if !v.guard.current(seq) {
				return
			}
			if err != nil {
				v.showError(err, v.loadTrending)
				return
			}
			v.trending = results
			v.trendingLoaded = true
			v.renderTrending()
		})
	}()
}

func (v *SearchView) renderTrending() {
	heading := widget.NewLabel("Trending now")
	heading.TextStyle = fyne.TextStyle{Bold: true}
	v.setBody(container.NewScroll(container.NewVBox(heading, movieGrid(v.ui, v.trending))))
}

// applyDerived re-runs the pure filter and sort over the cached raw results.
func (v *SearchView) applyDerived() {
	if !v.searched {
		return
	}

	order := sortOrderForLabel(v.sortSelect.Selected)
	v.ui.settings.SetSearchSort(string(order))

	criteria := movies.Criteria{
		Genre:   v.genreSelect.Selected,
		MinVote: minVoteForLabel(v.voteSelect.Selected),
	}
	derived := movies.Derive(v.raw, criteria, order)

	if len(derived) < len(v.raw) {
		v.countLabel.SetText(fmt.Sprintf("%d results (filtered from %d)", len(derived), len(v.raw)))
	} else {
		v.countLabel.SetText(fmt.Sprintf("%d results", len(derived)))
	}
	v.countLabel.Show()

	if len(derived) == 0 {
		empty := widget.NewLabel("No movies match. Loosen the filters or try another search.")
		empty.Alignment = fyne.TextAlignCenter
		v.setBody(container.NewCenter(empty))
		return
	}
	v.setBody(container.NewScroll(movieGrid(v.ui, derived)))
}

func (v *SearchView) showError(err error, retry func()) {
	label := widget.NewLabel(errorMessage(err))
	label.Alignment = fyne.TextAlignCenter
	label.Wrapping = fyne.TextWrapWord

	retryBtn := widget.NewButton("Try Again", retry)
	retryBtn.Importance = widget.HighImportance

	v.setBody(container.NewCenter(container.NewVBox(label, container.NewCenter(retryBtn))))
}

func (v *SearchView) setBody(content fyne.CanvasObject) {
	v.body.Objects = []fyne.CanvasObject{content}
	v.body.Refresh()
}

func sortOrderForLabel(label string) movies.SortOrder {
	switch label {
	case sortLabelRating:
		return movies.SortRating
	case sortLabelDate:
		return movies.SortDate
	default:
		return movies.SortRelevance
	}
}

func sortLabelForOrder(order movies.SortOrder) string {
	switch order {
	case movies.SortRating:
		return sortLabelRating
	case movies.SortDate:
		return sortLabelDate
	default:
		return sortLabelRelevance
	}
}

func minVoteForLabel(label string) float64 {
	switch label {
	case "6+":
		return 6
	case "7+":
		return 7
	case "8+":
		return 8
	default:
		return 0
	}
}
