package profile

import "context"

type ProfileService interface {
	// GetProfile fetches the profile from the backend and refreshes the cached copy
	GetProfile(ctx context.Context) (Profile, error)

	ListPaymentDetails(ctx context.Context) ([]PaymentDetails, error)
	CreatePaymentDetails(ctx context.Context, req PaymentDetailsRequest) (PaymentDetails, error)
	UpdatePaymentDetails(ctx context.Context, req PaymentDetailsRequest) (PaymentDetails, error)
	DeletePaymentDetails(ctx context.Context, id string) error
}
