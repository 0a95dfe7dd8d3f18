package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/punch"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/imaging"
)

type punchAckWire struct {
	MongoID   string   `json:"_id"`
	ID        string   `json:"id"`
	PunchID   string   `json:"punchId"`
	PunchIn   flexTime `json:"punchIn"`
	PunchOut  flexTime `json:"punchOut"`
	CreatedAt flexTime `json:"createdAt"`
}

type punchRepository struct {
	client *Client
}

func NewPunchRepository(client *Client) punch.PunchRepository {
	return &punchRepository{client: client}
}

// PunchIn implements punch.PunchRepository.
func (r *punchRepository) PunchIn(ctx context.Context, s punch.Submission) (punch.Ack, error) {
	env, err := r.client.SendMultipart(ctx, http.MethodPost, "/punch", s.Fields(), imageParts(s))
	if err != nil {
		return punch.Ack{}, err
	}
	return toAck(env, s), nil
}

// PunchOut implements punch.PunchRepository.
func (r *punchRepository) PunchOut(ctx context.Context, s punch.Submission) (punch.Ack, error) {
	method, path := http.MethodPost, "/punch/out"
	if s.PunchInID != "" {
		method, path = http.MethodPut, "/punch/"+url.PathEscape(s.PunchInID)
	}

	env, err := r.client.SendMultipart(ctx, method, path, s.Fields(), imageParts(s))
	if err != nil {
		return punch.Ack{}, err
	}
	return toAck(env, s), nil
}

func imageParts(s punch.Submission) []FilePart {
	if len(s.Image) == 0 {
		return nil
	}
	filename := "selfie.jpg"
	if s.ImageMIME == imaging.MIMEPNG {
		filename = "selfie.png"
	}
	return []FilePart{{
		Field:       "image",
		Filename:    filename,
		ContentType: s.ImageMIME,
		Data:        s.Image,
	}}
}

// toAck reads whatever id and time the backend echoed; a bare 2xx still counts as acknowledged.
func toAck(env Envelope, s punch.Submission) punch.Ack {
	ack := punch.Ack{Message: env.Message}

	var wire punchAckWire
	if env.First() != nil && env.DecodeFirst(&wire) == nil {
		ack.ID = firstNonEmpty(wire.MongoID, wire.ID, wire.PunchID)
		switch {
		case s.Action == punch.ActionIn && wire.PunchIn.Valid:
			ack.Timestamp = wire.PunchIn.Ptr()
		case s.Action == punch.ActionOut && wire.PunchOut.Valid:
			ack.Timestamp = wire.PunchOut.Ptr()
		case wire.CreatedAt.Valid:
			ack.Timestamp = wire.CreatedAt.Ptr()
		}
	}
	if s.Action == punch.ActionOut && ack.ID == "" {
		ack.ID = s.PunchInID
	}
	return ack
}
