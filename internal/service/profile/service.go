package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/appstate"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/profile"
)

type ProfileServiceImpl struct {
	profile.ProfileRepository
	store appstate.Store
}

func NewProfileService(profileRepository profile.ProfileRepository, store appstate.Store) profile.ProfileService {
	return &ProfileServiceImpl{
		ProfileRepository: profileRepository,
		store:             store,
	}
}

// GetProfile implements profile.ProfileService.
func (s *ProfileServiceImpl) GetProfile(ctx context.Context) (profile.Profile, error) {
	p, err := s.ProfileRepository.Me(ctx)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("failed to fetch profile: %w", err)
	}

	if err := s.store.SetAuthState(ctx, appstate.AuthState{IsAuthenticated: true, Profile: p}); err != nil {
		// The fresh profile is still worth showing
		slog.Warn("Failed to refresh cached profile", "error", err)
	}
	return p.WithPlaceholders(), nil
}

// ListPaymentDetails implements profile.ProfileService.
func (s *ProfileServiceImpl) ListPaymentDetails(ctx context.Context) ([]profile.PaymentDetails, error) {
	details, err := s.ProfileRepository.ListPaymentDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment details: %w", err)
	}
	for i := range details {
		details[i].MaskedNumber = profile.MaskedAccountNumber(details[i].AccountNumber)
	}
	return details, nil
}

// CreatePaymentDetails implements profile.ProfileService.
func (s *ProfileServiceImpl) CreatePaymentDetails(ctx context.Context, req profile.PaymentDetailsRequest) (profile.PaymentDetails, error) {
	if err := req.Validate(); err != nil {
		return profile.PaymentDetails{}, err
	}

	details, err := s.ProfileRepository.CreatePaymentDetails(ctx, req)
	if err != nil {
		return profile.PaymentDetails{}, fmt.Errorf("failed to create payment details: %w", err)
	}
	details.MaskedNumber = profile.MaskedAccountNumber(details.AccountNumber)
	return details, nil
}

// UpdatePaymentDetails implements profile.ProfileService.
func (s *ProfileServiceImpl) UpdatePaymentDetails(ctx context.Context, req profile.PaymentDetailsRequest) (profile.PaymentDetails, error) {
	if strings.TrimSpace(req.ID) == "" {
		return profile.PaymentDetails{}, profile.ErrPaymentDetailsNotFound
	}
	if err := req.Validate(); err != nil {
		return profile.PaymentDetails{}, err
	}

	details, err := s.ProfileRepository.UpdatePaymentDetails(ctx, req)
	if err != nil {
		return profile.PaymentDetails{}, fmt.Errorf("failed to update payment details: %w", err)
	}
	details.MaskedNumber = profile.MaskedAccountNumber(details.AccountNumber)
	return details, nil
}

// DeletePaymentDetails implements profile.ProfileService.
func (s *ProfileServiceImpl) DeletePaymentDetails(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return profile.ErrPaymentDetailsNotFound
	}
	if err := s.ProfileRepository.DeletePaymentDetails(ctx, id); err != nil {
		return fmt.Errorf("failed to delete payment details: %w", err)
	}
	return nil
}
