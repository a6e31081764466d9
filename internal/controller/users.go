package controller

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/creamcroissant/trackerctl/internal/model"
	"github.com/creamcroissant/trackerctl/internal/source"
)

// Transfer counter operations accepted by PUT /users/{id}/stats.
const (
	OpSet      = "set"
	OpAdd      = "add"
	OpSubtract = "subtract"
)

// UserDraft is the create-user input form.
type UserDraft struct {
	Passkey string
}

// UserEdit is the open edit form of one user.
type UserEdit struct {
	ID         int64
	Uploaded   int64
	Downloaded int64
	Operation  string
	CanLeech   bool
}

// Users manages tracker accounts.
type Users struct {
	*Controller[[]model.User]
	Draft   Slot[UserDraft]
	Editing Slot[UserEdit]
}

// NewUsers creates the users controller.
func NewUsers(deps Deps) *Users {
	return &Users{Controller: New[[]model.User]("users", deps, Static("/users"))}
}

// Search replaces the list with users matching q.
func (u *Users) Search(ctx context.Context, q string) bool {
	if !SearchOK(q) {
		return u.Invalid(ctx, MsgSearchTooShort)
	}
	return u.LoadFrom(ctx, source.Get("/users/search?q="+url.QueryEscape(q)))
}

// Create registers a user, with the drafted passkey when one is given.
func (u *Users) Create(ctx context.Context) bool {
	body := map[string]string{}
	if p := u.Draft.Value().Passkey; p != "" {
		body["passkey"] = p
	}
	return u.Controller.Create(ctx, source.Request{
		Method: http.MethodPost,
		Path:   "/users",
		Body:   body,
		Notice: "User created",
	}, u.Draft.Clear)
}

// Edit opens the edit form for id with the user's current values.
func (u *Users) Edit(ctx context.Context, id int64) bool {
	var user model.User
	if !u.Read(ctx, source.Get(userPath(id)), &user) {
		return false
	}
	u.Editing.Set(UserEdit{
		ID:         user.ID,
		Uploaded:   user.Uploaded,
		Downloaded: user.Downloaded,
		Operation:  OpSet,
		CanLeech:   user.CanLeech,
	})
	return true
}

// SaveEdit writes the transfer counters and the leech permission as two
// separate calls, closes the form and reloads. Both calls are always issued;
// a failure of the first does not roll anything back.
func (u *Users) SaveEdit(ctx context.Context) bool {
	edit, ok := u.Editing.Get()
	if !ok {
		return u.Invalid(ctx, "No user is being edited")
	}
	op := edit.Operation
	if op == "" {
		op = OpSet
	}

	stats := u.Apply(ctx, source.Request{
		Method: http.MethodPut,
		Path:   userPath(edit.ID) + "/stats",
		Body: map[string]any{
			"uploaded":   edit.Uploaded,
			"downloaded": edit.Downloaded,
			"operation":  op,
		},
		Notice: "User stats updated",
	})
	leech := u.Apply(ctx, source.Request{
		Method: http.MethodPut,
		Path:   userPath(edit.ID) + "/leech",
		Body:   map[string]bool{"can_leech": edit.CanLeech},
		Notice: "Leech permission updated",
	})

	u.Editing.Clear()
	u.Load(ctx)
	return stats.Success && leech.Success
}

// ResetPasskey issues a new passkey for id after confirmation.
func (u *Users) ResetPasskey(ctx context.Context, id int64) bool {
	return u.Remove(ctx, fmt.Sprintf("Reset passkey for user %d?", id), source.Request{
		Method: http.MethodPost,
		Path:   userPath(id) + "/reset",
		Notice: "Passkey reset",
	})
}

// Delete removes user id after confirmation.
func (u *Users) Delete(ctx context.Context, id int64) bool {
	return u.Remove(ctx, fmt.Sprintf("Delete user %d?", id), source.Request{
		Method: http.MethodDelete,
		Path:   userPath(id),
		Notice: "User deleted",
	})
}

// ClearWarnings resets the hit-and-run warning count of id and closes the
// edit form.
func (u *Users) ClearWarnings(ctx context.Context, id int64) bool {
	res := u.Apply(ctx, source.Request{
		Method: http.MethodPost,
		Path:   userPath(id) + "/warnings/clear",
		Notice: "Warnings cleared",
	})
	u.Editing.Clear()
	if res.Success {
		u.Load(ctx)
	}
	return res.Success
}

func userPath(id int64) string {
	return fmt.Sprintf("/users/%d", id)
}
