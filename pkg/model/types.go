package model

import "strings"

// FieldType enumerates the input kinds a form field can hold.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeText    FieldType = "text"
	FieldTypeEmail   FieldType = "email"
	FieldTypePhone   FieldType = "tel"
	FieldTypeBoolean FieldType = "boolean"
)

// User mirrors the remote /users resource.
type User struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

// Post mirrors the remote /posts resource.
type Post struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// NewPost is the payload accepted by POST /posts.
type NewPost struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// ContactForm is a point-in-time snapshot of the contact form values.
type ContactForm struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	Agreement bool   `json:"agreement"`
}

// ContactTitle builds the post title used when a contact form is submitted.
func ContactTitle(name string) string {
	return "Contact from " + strings.TrimSpace(name)
}

// ToPost converts the form into the remote payload for userID.
func (c ContactForm) ToPost(userID int) NewPost {
	return NewPost{
		Title:  ContactTitle(c.Name),
		Body:   c.Message,
		UserID: userID,
	}
}

// CloneUsers returns a copy of users so callers cannot alias shared state.
func CloneUsers(users []User) []User {
	if users == nil {
		return nil
	}
	return append([]User{}, users...)
}

// ClonePosts returns a copy of posts so callers cannot alias shared state.
func ClonePosts(posts []Post) []Post {
	if posts == nil {
		return nil
	}
	return append([]Post{}, posts...)
}

// FindUser returns the user with id, if present.
func FindUser(users []User, id int) (User, bool) {
	for _, user := range users {
		if user.ID == id {
			return user, true
		}
	}
	return User{}, false
}
