package controller

import (
	"context"
	"net/http"
	"net/url"

	"github.com/creamcroissant/trackerctl/internal/model"
	"github.com/creamcroissant/trackerctl/internal/source"
)

// MsgEnterIP is reported when an IP action has no address.
const MsgEnterIP = "Enter an IP address"

// RateLimits shows the limiter overview and inspects single IPs.
type RateLimits struct {
	*Controller[model.RateLimitStats]
	IPState Slot[model.IPRateLimit]
}

// NewRateLimits creates the rate limits controller.
func NewRateLimits(deps Deps) *RateLimits {
	return &RateLimits{Controller: New[model.RateLimitStats]("ratelimits", deps, Static("/ratelimits"))}
}

// Check loads the tracked buckets of ip into the IP slot.
func (r *RateLimits) Check(ctx context.Context, ip string) bool {
	if !Present(ip) {
		return r.Invalid(ctx, MsgEnterIP)
	}
	var state model.IPRateLimit
	if !r.Read(ctx, source.Get("/ratelimits/"+url.PathEscape(ip)), &state) {
		return false
	}
	if state.IP == "" {
		state.IP = ip
	}
	r.IPState.Set(state)
	return true
}

// Reset clears the counters of ip after confirmation, empties the IP slot
// and reloads the overview.
func (r *RateLimits) Reset(ctx context.Context, ip string) bool {
	if !Present(ip) {
		return r.Invalid(ctx, MsgEnterIP)
	}
	ok := r.Remove(ctx, "Reset rate limits for "+ip+"?", source.Request{
		Method: http.MethodDelete,
		Path:   "/ratelimits/" + url.PathEscape(ip),
		Notice: "Rate limits reset",
	})
	if ok {
		r.IPState.Clear()
	}
	return ok
}
