package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/cinedost/cinedost/internal/model"
)

// GenreSelector is a multi-select grid over the fixed genre table, used by the
// registration form and the profile editor.
type GenreSelector struct {
	widget.BaseWidget

	order     []string
	checks    map[string]*widget.Check
	onChanged func()
}

// NewGenreSelector creates a selector with nothing checked.
func NewGenreSelector(onChanged func()) *GenreSelector {
	gs := &GenreSelector{
		order:     model.GenreNames(),
		checks:    make(map[string]*widget.Check),
		onChanged: onChanged,
	}
	for _, name := range gs.order {
		gs.checks[name] = widget.NewCheck(name, func(bool) {
			if gs.onChanged != nil {
				gs.onChanged()
			}
		})
	}
	gs.ExtendBaseWidget(gs)
	return gs
}

// Selected returns the checked genre names in table order.
func (gs *GenreSelector) Selected() []string {
	var selected []string
	for _, name := range gs.order {
		if gs.checks[name].Checked {
			selected = append(selected, name)
		}
	}
	return selected
}

// SetSelected replaces the current selection.
func (gs *GenreSelector) SetSelected(genres []string) {
	want := make(map[string]bool, len(genres))
	for _, g := range genres {
		want[g] = true
	}
	for _, name := range gs.order {
		gs.checks[name].SetChecked(want[name])
	}
}

// CreateRenderer creates the widget renderer
func (gs *GenreSelector) CreateRenderer() fyne.WidgetRenderer {
	grid := container.NewGridWrap(fyne.NewSize(130, 32))
	for _, name := range gs.order {
		grid.Add(gs.checks[name])
	}
	return widget.NewSimpleRenderer(grid)
}
