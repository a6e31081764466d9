package controller

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/creamcroissant/trackerctl/internal/model"
	"github.com/creamcroissant/trackerctl/internal/source"
)

// MsgPointsRequired is reported when a points action lacks its inputs.
const MsgPointsRequired = "User ID and points required"

// BonusDraft is the points input form.
type BonusDraft struct {
	UserID string
	Points string
}

// Bonus shows bonus subsystem settings and moves points between accounts.
type Bonus struct {
	*Controller[model.BonusStats]
	Draft      Slot[BonusDraft]
	Redemption Slot[model.Redemption]
}

// NewBonus creates the bonus controller.
func NewBonus(deps Deps) *Bonus {
	return &Bonus{Controller: New[model.BonusStats]("bonus", deps, Static("/bonus/stats"))}
}

// Points looks up the drafted user's balance and reports it.
func (b *Bonus) Points(ctx context.Context) (model.BonusBalance, bool) {
	d := b.Draft.Value()
	if !Present(d.UserID) {
		return model.BonusBalance{}, b.Invalid(ctx, "Enter a user ID")
	}
	var bal model.BonusBalance
	if !b.Read(ctx, source.Get(b.pointsPath(d.UserID)), &bal) {
		return model.BonusBalance{}, false
	}
	d.Points = strconv.FormatFloat(bal.BonusPoints, 'f', -1, 64)
	b.Draft.Set(d)
	b.Notify(ctx, fmt.Sprintf("User has %.2f points", bal.BonusPoints))
	return bal, true
}

// Add credits the drafted points to the drafted user.
func (b *Bonus) Add(ctx context.Context) bool {
	userID, points, ok := b.input(ctx)
	if !ok {
		return false
	}
	return b.Submit(ctx, source.Request{
		Method: http.MethodPost,
		Path:   b.pointsPath(userID),
		Body:   map[string]float64{"points": points},
		Notice: "Points added",
	}, false)
}

// Deduct removes the drafted points from the drafted user after
// confirmation.
func (b *Bonus) Deduct(ctx context.Context) bool {
	userID, points, ok := b.input(ctx)
	if !ok {
		return false
	}
	prompt := fmt.Sprintf("Remove %s points from user %s?", strconv.FormatFloat(points, 'f', -1, 64), userID)
	if !b.deps.Confirm.Confirm(ctx, prompt) {
		return b.Invalid(ctx, MsgCancelled)
	}
	return b.Submit(ctx, source.Request{
		Method: http.MethodDelete,
		Path:   b.pointsPath(userID),
		Body:   map[string]float64{"points": points},
		Notice: "Points removed",
	}, false)
}

// Redeem converts the drafted points into upload credit.
func (b *Bonus) Redeem(ctx context.Context) bool {
	userID, points, ok := b.input(ctx)
	if !ok {
		return false
	}
	res := b.Apply(ctx, source.Request{
		Method: http.MethodPost,
		Path:   "/users/" + url.PathEscape(userID) + "/redeem",
		Body:   map[string]float64{"points": points},
		Notice: "Points redeemed",
	})
	if !res.Success {
		return false
	}
	var red model.Redemption
	if err := res.Decode(&red); err != nil {
		return b.Invalid(ctx, "Invalid response: "+err.Error())
	}
	b.Redemption.Set(red)
	b.Notify(ctx, "Redeemed for "+red.UploadCreditFormatted)
	return true
}

// Calculate recomputes points for every user and reloads the settings.
func (b *Bonus) Calculate(ctx context.Context) bool {
	return b.Submit(ctx, reqCalcBonus, true)
}

func (b *Bonus) input(ctx context.Context) (string, float64, bool) {
	d := b.Draft.Value()
	if !Present(d.UserID, d.Points) {
		return "", 0, b.Invalid(ctx, MsgPointsRequired)
	}
	points, err := strconv.ParseFloat(strings.TrimSpace(d.Points), 64)
	if err != nil {
		return "", 0, b.Invalid(ctx, "Points must be a number")
	}
	return strings.TrimSpace(d.UserID), points, true
}

func (b *Bonus) pointsPath(userID string) string {
	return "/users/" + url.PathEscape(strings.TrimSpace(userID)) + "/points"
}
