package ui

import (
	"context"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LoginView is the sign-in form shown to unauthenticated users.
type LoginView struct {
	ui *RootUI

	email      *widget.Entry
	password   *widget.Entry
	errorLabel *widget.Label
	submitBtn  *widget.Button

	content fyne.CanvasObject
}

// NewLoginView creates the login form.
func NewLoginView(ui *RootUI) *LoginView {
	v := &LoginView{ui: ui}
	v.createUI()
	return v
}

func (v *LoginView) createUI() {
	title := widget.NewLabel("Welcome back to CineDost")
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	v.email = widget.NewEntry()
	v.email.SetPlaceHolder("Email")

	v.password = widget.NewPasswordEntry()
	v.password.SetPlaceHolder("Password")
	v.password.OnSubmitted = func(string) { v.onSubmit() }

	v.errorLabel = widget.NewLabel("")
	v.errorLabel.Importance = widget.DangerImportance
	v.errorLabel.Wrapping = fyne.TextWrapWord
	v.errorLabel.Hide()

	v.submitBtn = widget.NewButton("Sign In", v.onSubmit)
	v.submitBtn.Importance = widget.HighImportance

	registerLink := widget.NewButton("New here? Create an account", func() {
		v.ui.ShowRegister()
	})
	registerLink.Importance = widget.LowImportance

	form := container.NewVBox(
		title,
		v.email,
		v.password,
		v.errorLabel,
		v.submitBtn,
		registerLink,
	)

	sized := container.NewGridWrap(fyne.NewSize(340, form.MinSize().Height), form)
	v.content = container.NewCenter(sized)
}

// Container returns the view's root canvas object.
func (v *LoginView) Container() fyne.CanvasObject {
	v.errorLabel.Hide()
	return v.content
}

func (v *LoginView) onSubmit() {
	email := v.email.Text
	password := v.password.Text

	v.errorLabel.Hide()
	v.submitBtn.Disable()

	go func() {
		err := v.ui.session.Login(context.Background(), email, password)
		fyne.Do(func() {
			v.submitBtn.Enable()
			if err != nil {
				log.Printf("ui: login failed: %v", err)
				v.errorLabel.SetText(err.Error())
				v.errorLabel.Show()
				return
			}
			v.password.SetText("")
		})
	}()
}
