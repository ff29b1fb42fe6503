package ui

import (
	"context"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/cinedost/cinedost/internal/session"
)

// RegisterView is the account-creation form. Registration requires a username,
// valid email, a password meeting the policy, and at least one favorite genre.
type RegisterView struct {
	ui *RootUI

	username      *widget.Entry
	email         *widget.Entry
	password      *widget.Entry
	confirm       *widget.Entry
	strengthLabel *widget.Label
	genres        *GenreSelector
	errorLabel    *widget.Label
	submitBtn     *widget.Button

	content fyne.CanvasObject
}

// NewRegisterView creates the registration form.
func NewRegisterView(ui *RootUI) *RegisterView {
	v := &RegisterView{ui: ui}
	v.createUI()
	return v
}

func (v *RegisterView) createUI() {
	title := widget.NewLabel("Join CineDost")
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	v.username = widget.NewEntry()
	v.username.SetPlaceHolder("Username")

	v.email = widget.NewEntry()
	v.email.SetPlaceHolder("Email")

	v.password = widget.NewPasswordEntry()
	v.password.SetPlaceHolder("Password")
	v.password.OnChanged = func(text string) { v.updateStrength(text) }

	v.confirm = widget.NewPasswordEntry()
	v.confirm.SetPlaceHolder("Confirm password")

	v.strengthLabel = widget.NewLabel("")
	v.strengthLabel.Hide()

	genresHeading := widget.NewLabel("Pick your favorite genres")
	v.genres = NewGenreSelector(nil)

	v.errorLabel = widget.NewLabel("")
	v.errorLabel.Importance = widget.DangerImportance
	v.errorLabel.Wrapping = fyne.TextWrapWord
	v.errorLabel.Hide()

	v.submitBtn = widget.NewButton("Create Account", v.onSubmit)
	v.submitBtn.Importance = widget.HighImportance

	loginLink := widget.NewButton("Already have an account? Sign in", func() {
		v.ui.ShowLogin()
	})
	loginLink.Importance = widget.LowImportance

	form := container.NewVBox(
		title,
		v.username,
		v.email,
		v.password,
		v.strengthLabel,
		v.confirm,
		genresHeading,
		v.genres,
		v.errorLabel,
		v.submitBtn,
		loginLink,
	)

	v.content = container.NewScroll(container.NewPadded(form))
}

// Container returns the view's root canvas object.
func (v *RegisterView) Container() fyne.CanvasObject {
	v.errorLabel.Hide()
	return v.content
}

func (v *RegisterView) updateStrength(password string) {
	strength := session.CheckPasswordStrength(password)
	if strength == session.StrengthNone {
		v.strengthLabel.Hide()
		return
	}

	switch strength {
	case session.StrengthStrong:
		v.strengthLabel.Importance = widget.SuccessImportance
		v.strengthLabel.SetText("Password strength: strong")
	case session.StrengthMedium:
		v.strengthLabel.Importance = widget.WarningImportance
		v.strengthLabel.SetText("Password strength: medium")
	default:
		v.strengthLabel.Importance = widget.DangerImportance
		v.strengthLabel.SetText("Password strength: weak")
	}
	v.strengthLabel.Show()
}

func (v *RegisterView) onSubmit() {
	v.errorLabel.Hide()

	// Confirm-password mismatch never reaches the service.
	if v.password.Text != v.confirm.Text {
		v.showError(session.ErrPasswordMismatch.Error())
		return
	}

	username := v.username.Text
	email := v.email.Text
	password := v.password.Text
	genres := v.genres.Selected()

	v.submitBtn.Disable()
	go func() {
		err := v.ui.session.Register(context.Background(), username, email, password, genres)
		fyne.Do(func() {
			v.submitBtn.Enable()
			if err != nil {
				log.Printf("ui: registration failed: %v", err)
				v.showError(err.Error())
				return
			}
			v.password.SetText("")
			v.confirm.SetText("")
		})
	}()
}

func (v *RegisterView) showError(message string) {
	v.errorLabel.SetText(message)
	v.errorLabel.Show()
}
