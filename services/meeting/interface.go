package meeting

import (
	"context"
	"errors"
	"fmt"

	"mentorly/models"
)

// ErrUnsupportedPlatform signals a session configured with a platform no
// provisioner handles. This is a configuration error and fails fast rather
// than silently defaulting.
var ErrUnsupportedPlatform = errors.New("unsupported meeting platform")

// Provisioner produces a live-meeting destination for a booking. The
// booking engine depends only on this contract; platform specifics stay
// behind it.
type Provisioner interface {
	Provision(ctx context.Context, session *models.Session, provider *models.User, booking *models.Booking) (*models.MeetingInfo, error)
}

// Registry maps platform identifiers to provisioners.
type Registry struct {
	provisioners map[string]Provisioner
}

func NewRegistry() *Registry {
	return &Registry{provisioners: make(map[string]Provisioner)}
}

func (r *Registry) Register(platform string, p Provisioner) {
	r.provisioners[platform] = p
}

// For resolves the provisioner for a platform, or ErrUnsupportedPlatform.
func (r *Registry) For(platform string) (Provisioner, error) {
	p, ok := r.provisioners[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, platform)
	}
	return p, nil
}
