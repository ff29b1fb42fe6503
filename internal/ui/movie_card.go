package ui

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/cinedost/cinedost/internal/images"
	"github.com/cinedost/cinedost/internal/model"
)

// Vote-average bands for the rating badge.
const (
	voteBandExcellent = 8.0
	voteBandGreat     = 7.0
	voteBandGood      = 6.0
)

// MovieCard is a poster card shown in browse grids: artwork, rating badge,
// genre tags, an overview snippet and quick watchlist/rate actions. Tapping
// the card opens the detail view.
type MovieCard struct {
	widget.BaseWidget

	ui    *RootUI
	movie model.Movie

	poster      *canvas.Image
	titleLabel  *widget.Label
	metaLabel   *widget.Label
	ratingLabel *widget.Label
	genresLabel *widget.Label
	snippet     *widget.Label
	bookmarkBtn *widget.Button
	rateBtn     *widget.Button
}

// NewMovieCard creates a card for the given movie.
func NewMovieCard(ui *RootUI, movie model.Movie) *MovieCard {
	mc := &MovieCard{ui: ui, movie: movie}
	mc.ExtendBaseWidget(mc)
	mc.createUI()
	mc.loadPoster()
	return mc
}

func (mc *MovieCard) createUI() {
	mc.poster = canvas.NewImageFromResource(images.Placeholder())
	mc.poster.FillMode = canvas.ImageFillContain
	mc.poster.SetMinSize(fyne.NewSize(PosterWidth, PosterHeight))

	mc.titleLabel = widget.NewLabel(mc.movie.Title)
	mc.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	mc.titleLabel.Truncation = fyne.TextTruncateEllipsis

	meta := mc.movie.ReleaseYear()
	if meta == "" {
		meta = DashPlaceholder
	}
	mc.metaLabel = widget.NewLabel(meta)

	mc.ratingLabel = widget.NewLabel(fmt.Sprintf("%s %.1f", IconStar, mc.movie.VoteAverage))
	mc.ratingLabel.Alignment = fyne.TextAlignTrailing
	mc.ratingLabel.Importance = voteImportance(mc.movie.VoteAverage)

	mc.genresLabel = widget.NewLabel(strings.Join(mc.movie.GenreNames(2), ", "))
	mc.genresLabel.Truncation = fyne.TextTruncateEllipsis

	mc.snippet = widget.NewLabel(mc.movie.ShortOverview(OverviewPreviewRunes))
	mc.snippet.Wrapping = fyne.TextWrapWord
	mc.snippet.Truncation = fyne.TextTruncateEllipsis

	mc.bookmarkBtn = widget.NewButton(IconBookmark, mc.onBookmark)
	mc.bookmarkBtn.Importance = mc.bookmarkImportance()

	mc.rateBtn = widget.NewButton(IconStarEmpty+" Rate", mc.onQuickRate)
	mc.rateBtn.Importance = widget.LowImportance
}

// loadPoster fetches the poster off the UI thread and swaps it in when done.
func (mc *MovieCard) loadPoster() {
	go func() {
		res := mc.ui.loader.Fetch(context.Background(), images.SizePoster, mc.movie.PosterPath, PosterWidth*2, PosterHeight*2)
		fyne.Do(func() {
			mc.poster.Resource = res
			mc.poster.Refresh()
		})
	}()
}

func (mc *MovieCard) movieID() string {
	return strconv.Itoa(mc.movie.ID)
}

// onBookmark toggles the watchlist membership, reflecting only after server
// confirmation.
func (mc *MovieCard) onBookmark() {
	inList := mc.inWatchlist()
	mc.bookmarkBtn.Disable()
	go func() {
		var err error
		if inList {
			err = mc.ui.library.Remove(context.Background(), mc.movieID())
		} else {
			err = mc.ui.library.Add(context.Background(), mc.movieID())
		}
		if err == nil {
			err = mc.ui.session.RefreshUser(context.Background())
		}
		fyne.Do(func() {
			mc.bookmarkBtn.Enable()
			if err != nil {
				log.Printf("ui: quick bookmark failed: %v", err)
				dialog.ShowInformation("Watchlist", errorMessage(err), mc.ui.window)
				return
			}
			mc.bookmarkBtn.Importance = mc.bookmarkImportance()
			mc.bookmarkBtn.Refresh()
		})
	}()
}

// onQuickRate opens a small star picker without leaving the grid.
func (mc *MovieCard) onQuickRate() {
	var popup *widget.PopUp

	row := container.NewHBox()
	for i := 1; i <= model.MaxRating; i++ {
		stars := i
		btn := widget.NewButton(strings.Repeat(IconStar, stars), func() {
			popup.Hide()
			go func() {
				err := mc.ui.library.Rate(context.Background(), mc.movieID(), stars, model.ContentTypeMovie)
				if err == nil {
					err = mc.ui.session.RefreshUser(context.Background())
				}
				fyne.Do(func() {
					if err != nil {
						log.Printf("ui: quick rate failed: %v", err)
						dialog.ShowInformation("Rating", errorMessage(err), mc.ui.window)
						return
					}
					mc.rateBtn.SetText(strings.Repeat(IconStar, stars))
				})
			}()
		})
		btn.Importance = widget.LowImportance
		row.Add(btn)
	}

	popup = widget.NewPopUp(container.NewVBox(widget.NewLabel("Rate "+mc.movie.Title), row), mc.ui.window.Canvas())
	popup.ShowAtRelativePosition(fyne.NewPos(0, 0), mc.rateBtn)
}

func (mc *MovieCard) inWatchlist() bool {
	user := mc.ui.session.CurrentUser()
	if user == nil {
		return false
	}
	for _, id := range user.Watchlist {
		if id == mc.movieID() {
			return true
		}
	}
	return false
}

func (mc *MovieCard) bookmarkImportance() widget.Importance {
	if mc.inWatchlist() {
		return widget.HighImportance
	}
	return widget.LowImportance
}

// Tapped implements fyne.Tappable.
func (mc *MovieCard) Tapped(*fyne.PointEvent) {
	mc.ui.OpenMovie(mc.movieID())
}

// CreateRenderer creates the widget renderer
func (mc *MovieCard) CreateRenderer() fyne.WidgetRenderer {
	footer := container.NewBorder(nil, nil, nil, mc.ratingLabel, mc.metaLabel)
	actions := container.NewHBox(mc.bookmarkBtn, mc.rateBtn)
	content := container.NewVBox(mc.poster, mc.titleLabel, footer, mc.genresLabel, mc.snippet, actions)
	return widget.NewSimpleRenderer(content)
}

// voteImportance bands the rating badge: excellent, great, good, the rest.
func voteImportance(vote float64) widget.Importance {
	switch {
	case vote >= voteBandExcellent:
		return widget.SuccessImportance
	case vote >= voteBandGreat:
		return widget.HighImportance
	case vote >= voteBandGood:
		return widget.MediumImportance
	default:
		return widget.LowImportance
	}
}
