package profile

// Placeholder identity used when no profile is cached.
const (
	PlaceholderEmployeeID = "unknown"
	PlaceholderName       = "Unknown User"
	PlaceholderEmail      = "unknown@example.com"
)

type Profile struct {
	ID          string `json:"id,omitempty"`
	EmployeeID  string `json:"employeeId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Designation string `json:"designation,omitempty"`
	Department  string `json:"department,omitempty"`
	JoiningDate string `json:"joiningDate,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// WithPlaceholders fills empty identity fields with placeholder values.
func (p Profile) WithPlaceholders() Profile {
	if p.EmployeeID == "" {
		p.EmployeeID = PlaceholderEmployeeID
	}
	if p.Name == "" {
		p.Name = PlaceholderName
	}
	if p.Email == "" {
		p.Email = PlaceholderEmail
	}
	return p
}

type PaymentDetails struct {
	ID                string `json:"id"`
	AccountHolderName string `json:"accountHolderName"`
	BankName          string `json:"bankName"`
	AccountNumber     string `json:"accountNumber"`
	MaskedNumber      string `json:"maskedAccountNumber,omitempty"`
	IFSCCode          string `json:"ifscCode"`
	UPIID             string `json:"upiId,omitempty"`
}
