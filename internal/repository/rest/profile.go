package rest

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/profile"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/remote"
)

type paymentDetailsWire struct {
	MongoID           string `json:"_id"`
	ID                string `json:"id"`
	AccountHolderName string `json:"accountHolderName"`
	BankName          string `json:"bankName"`
	AccountNumber     string `json:"accountNumber"`
	IFSCCode          string `json:"ifscCode"`
	UPIID             string `json:"upiId"`
}

func (w paymentDetailsWire) toEntity() profile.PaymentDetails {
	return profile.PaymentDetails{
		ID:                firstNonEmpty(w.MongoID, w.ID),
		AccountHolderName: w.AccountHolderName,
		BankName:          w.BankName,
		AccountNumber:     w.AccountNumber,
		IFSCCode:          w.IFSCCode,
		UPIID:             w.UPIID,
	}
}

type profileRepository struct {
	client *Client
}

func NewProfileRepository(client *Client) profile.ProfileRepository {
	return &profileRepository{client: client}
}

// Me implements profile.ProfileRepository.
func (r *profileRepository) Me(ctx context.Context) (profile.Profile, error) {
	env, err := r.client.GetJSON(ctx, "/auth/me", nil)
	if err != nil {
		return profile.Profile{}, err
	}

	// {user: {...}} or the user itself
	var wrapped struct {
		User *userWire `json:"user"`
	}
	if err := env.DecodeFirst(&wrapped); err != nil {
		return profile.Profile{}, err
	}
	if wrapped.User != nil {
		return wrapped.User.toProfile(), nil
	}

	var wire userWire
	if err := env.DecodeFirst(&wire); err != nil {
		return profile.Profile{}, err
	}
	return wire.toProfile(), nil
}

// ListPaymentDetails implements profile.ProfileRepository.
func (r *profileRepository) ListPaymentDetails(ctx context.Context) ([]profile.PaymentDetails, error) {
	env, err := r.client.GetJSON(ctx, "/payment-details", nil)
	if err != nil {
		return nil, err
	}

	var wires []paymentDetailsWire
	if err := env.Decode(&wires); err != nil {
		return nil, err
	}

	details := make([]profile.PaymentDetails, 0, len(wires))
	for _, w := range wires {
		details = append(details, w.toEntity())
	}
	return details, nil
}

// CreatePaymentDetails implements profile.ProfileRepository.
func (r *profileRepository) CreatePaymentDetails(ctx context.Context, req profile.PaymentDetailsRequest) (profile.PaymentDetails, error) {
	env, err := r.client.SendJSON(ctx, http.MethodPost, "/payment-details", req)
	if err != nil {
		return profile.PaymentDetails{}, err
	}
	return decodePaymentDetails(env, req)
}

// UpdatePaymentDetails implements profile.ProfileRepository.
func (r *profileRepository) UpdatePaymentDetails(ctx context.Context, req profile.PaymentDetailsRequest) (profile.PaymentDetails, error) {
	env, err := r.client.SendJSON(ctx, http.MethodPut, "/payment-details/"+url.PathEscape(req.ID), req)
	if err != nil {
		return profile.PaymentDetails{}, notFoundAs(err, profile.ErrPaymentDetailsNotFound)
	}
	return decodePaymentDetails(env, req)
}

// DeletePaymentDetails implements profile.ProfileRepository.
func (r *profileRepository) DeletePaymentDetails(ctx context.Context, id string) error {
	_, err := r.client.SendJSON(ctx, http.MethodDelete, "/payment-details/"+url.PathEscape(id), nil)
	return notFoundAs(err, profile.ErrPaymentDetailsNotFound)
}

// decodePaymentDetails falls back to the submitted values when the backend only acknowledged.
func decodePaymentDetails(env Envelope, req profile.PaymentDetailsRequest) (profile.PaymentDetails, error) {
	if env.First() == nil {
		return paymentDetailsWire{
			ID:                req.ID,
			AccountHolderName: req.AccountHolderName,
			BankName:          req.BankName,
			AccountNumber:     req.AccountNumber,
			IFSCCode:          req.IFSCCode,
			UPIID:             req.UPIID,
		}.toEntity(), nil
	}

	var wire paymentDetailsWire
	if err := env.DecodeFirst(&wire); err != nil {
		return profile.PaymentDetails{}, err
	}
	return wire.toEntity(), nil
}

// notFoundAs replaces a backend 404 with target.
func notFoundAs(err error, target error) error {
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return target
	}
	return err
}
