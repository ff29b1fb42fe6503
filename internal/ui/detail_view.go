package ui

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/cinedost/cinedost/internal/images"
	"github.com/cinedost/cinedost/internal/model"
)

// Animation genre id, used to classify a rating as anime.
const genreIDAnimation = 16

// DetailView shows the full projection of one movie: metadata, credits,
// trailer access, and the watchlist and rating actions.
type DetailView struct {
	ui      *RootUI
	movieID string
	guard   loadGuard

	detail *model.MovieDetail
	body   *fyne.Container

	content fyne.CanvasObject
}

// NewDetailView creates a detail view for one movie id.
func NewDetailView(ui *RootUI, movieID string) *DetailView {
	v := &DetailView{ui: ui, movieID: movieID}

	backBtn := widget.NewButton("< Back", ui.CloseDetail)
	backBtn.Importance = widget.LowImportance

	v.body = container.NewStack()
	v.content = container.NewBorder(container.NewHBox(backBtn), nil, nil, nil, v.body)
	return v
}

// Container returns the view's root canvas object.
func (v *DetailView) Container() fyne.CanvasObject {
	return v.content
}

// Load fetches the movie detail.
func (v *DetailView) Load() {
	seq := v.guard.next()
	v.setBody(loadingIndicator())

	go func() {
		detail, err := v.ui.catalog.Details(context.Background(), v.movieID)
		fyne.Do(func() {
			if !v.guard.current(seq) {
				log.Printf("ui: discarding stale detail response")
				return
			}
			if err != nil {
				v.showError(err)
				return
			}
			v.detail = detail
			v.render()
		})
	}()
}

func (v *DetailView) render() {
	d := v.detail

	poster := canvas.NewImageFromResource(images.Placeholder())
	poster.FillMode = canvas.ImageFillContain
	poster.SetMinSize(fyne.NewSize(DetailPosterWidth, DetailPosterHeight))
	go func() {
		res := v.ui.loader.Fetch(context.Background(), images.SizePoster, d.PosterPath, DetailPosterWidth*2, DetailPosterHeight*2)
		fyne.Do(func() {
			poster.Resource = res
			poster.Refresh()
		})
	}()

	title := widget.NewLabel(d.Title)
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Wrapping = fyne.TextWrapWord

	var metaParts []string
	if year := d.ReleaseYear(); year != "" {
		metaParts = append(metaParts, year)
	}
	metaParts = append(metaParts, d.FormatRuntime())
	metaParts = append(metaParts, fmt.Sprintf("%s %.1f (%d votes)", IconStar, d.VoteAverage, d.VoteCount))
	meta := widget.NewLabel(strings.Join(metaParts, MiddleDotSeparator))

	var genreNames []string
	for _, g := range d.Genres {
		genreNames = append(genreNames, g.Name)
	}
	genres := widget.NewLabel(strings.Join(genreNames, ", "))

	info := container.NewVBox(title, meta, genres)
	if d.Tagline != "" {
		tagline := widget.NewLabel(d.Tagline)
		tagline.TextStyle = fyne.TextStyle{Italic: true}
		info.Add(tagline)
	}
	info.Add(v.buildActions())

	header := container.NewBorder(nil, nil, poster, nil, container.NewPadded(info))

	sections := container.NewVBox()
	if d.Backdrop != "" {
		backdrop := canvas.NewImageFromResource(images.Placeholder())
		backdrop.FillMode = canvas.ImageFillContain
		backdrop.SetMinSize(fyne.NewSize(0, 180))
		go func() {
			res := v.ui.loader.Fetch(context.Background(), images.SizeBackdrop, d.Backdrop, 0, 0)
			fyne.Do(func() {
				backdrop.Resource = res
				backdrop.Refresh()
			})
		}()
		sections.Add(backdrop)
	}
	sections.Add(header)
	sections.Add(widget.NewSeparator())

	if d.Overview != "" {
		overview := widget.NewLabel(d.Overview)
		overview.Wrapping = fyne.TextWrapWord
		sections.Add(sectionHeading("Overview"))
		sections.Add(overview)
	}

	if crew := v.buildCrew(); crew != nil {
		sections.Add(sectionHeading("Crew"))
		sections.Add(crew)
	}

	if cast := v.buildCast(); cast != nil {
		sections.Add(sectionHeading("Cast"))
		sections.Add(cast)
	}

	if facts := v.buildFacts(); facts != nil {
		sections.Add(sectionHeading("Details"))
		sections.Add(facts)
	}

	if keywords := v.buildKeywords(); keywords != nil {
		sections.Add(sectionHeading("Keywords"))
		sections.Add(keywords)
	}

	v.setBody(container.NewScroll(container.NewPadded(sections)))
}

// buildActions creates the watchlist toggle, star rating strip and trailer
// button.
func (v *DetailView) buildActions() fyne.CanvasObject {
	actions := container.NewHBox()

	watchBtn := widget.NewButton("", nil)
	updateWatchBtn := func() {
		if v.inWatchlist() {
			watchBtn.SetText(IconBookmark + " In Watchlist")
			watchBtn.Importance = widget.HighImportance
		} else {
			watchBtn.SetText(IconBookmark + " Add to Watchlist")
			watchBtn.Importance = widget.MediumImportance
		}
		watchBtn.Refresh()
	}
	watchBtn.OnTapped = func() {
		inList := v.inWatchlist()
		watchBtn.Disable()
		go func() {
			var err error
			if inList {
				err = v.ui.library.Remove(context.Background(), v.movieID)
			} else {
				err = v.ui.library.Add(context.Background(), v.movieID)
			}
			if err == nil {
				// Pull the fresh watchlist into the cached user.
				err = v.ui.session.RefreshUser(context.Background())
			}
			fyne.Do(func() {
				watchBtn.Enable()
				if err != nil {
					log.Printf("ui: watchlist toggle failed: %v", err)
					dialog.ShowInformation("Watchlist", errorMessage(err), v.ui.window)
					return
				}
				updateWatchBtn()
			})
		}()
	}
	updateWatchBtn()
	actions.Add(watchBtn)

	actions.Add(v.buildStars())

	if trailer := v.detail.Trailer(); trailer != nil {
		if watchURL := trailer.WatchURL(); watchURL != "" {
			trailerBtn := widget.NewButton(IconPlay+" Trailer", func() {
				parsed, err := url.Parse(watchURL)
				if err != nil {
					return
				}
				if err := v.ui.app.OpenURL(parsed); err != nil {
					log.Printf("ui: open trailer: %v", err)
				}
			})
			actions.Add(trailerBtn)
		}
	}

	return actions
}

// buildStars creates the five tappable rating stars reflecting the user's
// current rating. A tap reflects locally only after server confirmation.
func (v *DetailView) buildStars() fyne.CanvasObject {
	strip := container.NewHBox()

	var buttons []*widget.Button
	current := v.userRating()

	refresh := func(rating int) {
		for i, btn := range buttons {
			if i < rating {
				btn.SetText(IconStar)
			} else {
				btn.SetText(IconStarEmpty)
			}
		}
	}

	for i := 1; i <= model.MaxRating; i++ {
		stars := i
		btn := widget.NewButton(IconStarEmpty, func() {
			go func() {
				err := v.ui.library.Rate(context.Background(), v.movieID, stars, v.contentType())
				if err == nil {
					err = v.ui.session.RefreshUser(context.Background())
				}
				fyne.Do(func() {
					if err != nil {
						log.Printf("ui: rating failed: %v", err)
						dialog.ShowInformation("Rating", errorMessage(err), v.ui.window)
						return
					}
					refresh(stars)
				})
			}()
		})
		btn.Importance = widget.LowImportance
		buttons = append(buttons, btn)
		strip.Add(btn)
	}

	refresh(current)
	return strip
}

func (v *DetailView) buildCrew() fyne.CanvasObject {
	var lines []string
	if director := v.detail.Director(); director != nil {
		lines = append(lines, "Director: "+director.Name)
	}
	if writers := v.detail.Writers(); len(writers) > 0 {
		var names []string
		for _, w := range writers {
			names = append(names, w.Name)
		}
		lines = append(lines, "Writers: "+strings.Join(names, ", "))
	}
	if len(lines) == 0 {
		return nil
	}
	return widget.NewLabel(strings.Join(lines, "\n"))
}

func (v *DetailView) buildCast() fyne.CanvasObject {
	cast := v.detail.Credits.Cast
	if len(cast) == 0 {
		return nil
	}
	if len(cast) > CastLimit {
		cast = cast[:CastLimit]
	}

	strip := container.NewHBox()
	for _, member := range cast {
		m := member
		photo := canvas.NewImageFromResource(images.Placeholder())
		photo.FillMode = canvas.ImageFillContain
		photo.SetMinSize(fyne.NewSize(ProfileImageWidth, ProfileImageHeight))
		go func() {
			res := v.ui.loader.Fetch(context.Background(), images.SizeProfile, m.ProfilePath, ProfileImageWidth*2, ProfileImageHeight*2)
			fyne.Do(func() {
				photo.Resource = res
				photo.Refresh()
			})
		}()

		name := widget.NewLabel(m.Name)
		name.TextStyle = fyne.TextStyle{Bold: true}
		name.Truncation = fyne.TextTruncateEllipsis
		role := widget.NewLabel(m.Character)
		role.Truncation = fyne.TextTruncateEllipsis

		strip.Add(container.NewVBox(photo, name, role))
	}
	return container.NewHScroll(strip)
}

func (v *DetailView) buildFacts() fyne.CanvasObject {
	d := v.detail

	var lines []string
	if d.Status != "" {
		lines = append(lines, "Status: "+d.Status)
	}
	lines = append(lines, "Budget: "+model.FormatMoney(d.Budget))
	lines = append(lines, "Revenue: "+model.FormatMoney(d.Revenue))
	if len(d.Companies) > 0 {
		var names []string
		for _, c := range d.Companies {
			names = append(names, c.Name)
		}
		lines = append(lines, "Studios: "+strings.Join(names, ", "))
	}
	if len(d.Languages) > 0 {
		var names []string
		for _, l := range d.Languages {
			names = append(names, l.EnglishName)
		}
		lines = append(lines, "Languages: "+strings.Join(names, ", "))
	}
	if d.ExternalIDs.IMDBID != "" {
		lines = append(lines, "IMDb: "+d.ExternalIDs.IMDBID)
	}

	return widget.NewLabel(strings.Join(lines, "\n"))
}

func (v *DetailView) buildKeywords() fyne.CanvasObject {
	keywords := v.detail.Keywords.Keywords
	if len(keywords) == 0 {
		return nil
	}
	if len(keywords) > KeywordLimit {
		keywords = keywords[:KeywordLimit]
	}

	var names []string
	for _, k := range keywords {
		names = append(names, k.Name)
	}
	label := widget.NewLabel(strings.Join(names, MiddleDotSeparator))
	label.Wrapping = fyne.TextWrapWord
	return label
}

// inWatchlist checks the cached user's bookmark ids.
func (v *DetailView) inWatchlist() bool {
	user := v.ui.session.CurrentUser()
	if user == nil {
		return false
	}
	for _, id := range user.Watchlist {
		if id == v.movieID {
			return true
		}
	}
	return false
}

// userRating returns the user's stars for this movie, 0 when unrated.
func (v *DetailView) userRating() int {
	user := v.ui.session.CurrentUser()
	if user == nil {
		return 0
	}
	for _, r := range user.Ratings {
		if r.MovieID == v.movieID {
			return r.Rating
		}
	}
	return 0
}

// contentType classifies the movie for rating records: Animation titles are
// recorded as anime.
func (v *DetailView) contentType() model.ContentType {
	for _, g := range v.detail.Genres {
		if g.ID == genreIDAnimation {
			return model.ContentTypeAnime
		}
	}
	return model.ContentTypeMovie
}

func (v *DetailView) showError(err error) {
	label := widget.NewLabel(errorMessage(err))
	label.Alignment = fyne.TextAlignCenter
	label.Wrapping = fyne.TextWrapWord

	retryBtn := widget.NewButton("Try Again", v.Load)
	retryBtn.Importance = widget.HighImportance

	v.setBody(container.NewCenter(container.NewVBox(label, container.NewCenter(retryBtn))))
}

func (v *DetailView) setBody(content fyne.CanvasObject) {
	v.body.Objects = []fyne.CanvasObject{content}
	v.body.Refresh()
}

func sectionHeading(text string) fyne.CanvasObject {
	label := widget.NewLabel(text)
	label.TextStyle = fyne.TextStyle{Bold: true}
	return label
}
