package render

import (
	"fmt"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/model"
)

// SuccessMessage is shown while the success banner is up.
const SuccessMessage = "Thank you! Your message has been sent successfully."

// Paths are the form actions the page posts to.
type Paths struct {
	Submit  string
	Select  string
	Refresh string
}

// UserRow is a users table row.
type UserRow struct {
	model.User
	Selected bool
}

// FieldView is a form control ready for rendering.
type FieldView struct {
	Name        string
	Label       string
	InputType   string
	Placeholder string
	Value       string
	Checked     bool
	IsCheckbox  bool
	IsTextarea  bool
	Invalid     bool
	Message     string
}

// PageData is the full view model of the contact page.
type PageData struct {
	Title   string
	Theme   ThemeContext
	Paths   Paths
	Loading bool
	Error   string

	Banner        bool
	BannerMessage string
	Attempted     bool

	Users           []UserRow
	Posts           []model.Post
	HasSelectedUser bool
	SelectedUser    model.User

	Fields []FieldView
}

// BuildPage flattens state and fields into PageData.
func BuildPage(title string, themeCtx ThemeContext, paths Paths, state contact.ViewState, fields []form.FieldState) PageData {
	data := PageData{
		Title:     title,
		Theme:     themeCtx,
		Paths:     paths,
		Loading:   state.Loading,
		Error:     state.Error,
		Banner:    state.FormSubmitted,
		Attempted: state.Submitted,
		Posts:     model.ClonePosts(state.Posts),
	}
	if data.Banner {
		data.BannerMessage = SuccessMessage
	}

	selectedID := 0
	if state.SelectedUser != nil {
		data.HasSelectedUser = true
		data.SelectedUser = *state.SelectedUser
		selectedID = state.SelectedUser.ID
	}

	data.Users = make([]UserRow, 0, len(state.Users))
	for _, user := range state.Users {
		data.Users = append(data.Users, UserRow{
			User:     user,
			Selected: data.HasSelectedUser && user.ID == selectedID,
		})
	}

	data.Fields = make([]FieldView, 0, len(fields))
	for _, field := range fields {
		data.Fields = append(data.Fields, fieldView(field))
	}
	return data
}

func fieldView(state form.FieldState) FieldView {
	spec := state.Spec
	label := spec.Label
	if label == "" {
		label = spec.Name
	}
	view := FieldView{
		Name:        spec.Name,
		Label:       label,
		InputType:   inputType(spec.Type),
		Placeholder: spec.Placeholder,
		Invalid:     state.Invalid,
		Message:     state.Message,
	}
	switch spec.Type {
	case model.FieldTypeBoolean:
		view.IsCheckbox = true
		view.Checked, _ = state.Value.(bool)
	case model.FieldTypeText:
		view.IsTextarea = true
		view.Value = stringify(state.Value)
	default:
		view.Value = stringify(state.Value)
	}
	return view
}

func inputType(t model.FieldType) string {
	switch t {
	case model.FieldTypeEmail:
		return "email"
	case model.FieldTypePhone:
		return "tel"
	case model.FieldTypeBoolean:
		return "checkbox"
	default:
		return "text"
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
