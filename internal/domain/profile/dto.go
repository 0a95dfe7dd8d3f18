package profile

import (
	"strings"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/validator"
)

type PaymentDetailsRequest struct {
	ID                string `json:"-"`
	AccountHolderName string `json:"accountHolderName" validate:"required,max=100"`
	BankName          string `json:"bankName" validate:"required,max=100"`
	AccountNumber     string `json:"accountNumber" validate:"required,numeric,min=6,max=20"`
	IFSCCode          string `json:"ifscCode" validate:"required,ifsc"`
	UPIID             string `json:"upiId" validate:"omitempty,max=60"`
}

func (r *PaymentDetailsRequest) Validate() error {
	r.AccountHolderName = strings.TrimSpace(r.AccountHolderName)
	r.BankName = strings.TrimSpace(r.BankName)
	r.AccountNumber = strings.TrimSpace(r.AccountNumber)
	r.IFSCCode = strings.ToUpper(strings.TrimSpace(r.IFSCCode))
	r.UPIID = strings.TrimSpace(r.UPIID)
	return validator.Struct(r)
}

// MaskedAccountNumber keeps only the last four digits.
func MaskedAccountNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
