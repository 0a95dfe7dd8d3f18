package profile

import "context"

// ProfileRepository reads the signed-in employee from the attendance backend.
type ProfileRepository interface {
	Me(ctx context.Context) (Profile, error)

	ListPaymentDetails(ctx context.Context) ([]PaymentDetails, error)
	CreatePaymentDetails(ctx context.Context, req PaymentDetailsRequest) (PaymentDetails, error)
	UpdatePaymentDetails(ctx context.Context, req PaymentDetailsRequest) (PaymentDetails, error)
	DeletePaymentDetails(ctx context.Context, id string) error
}
