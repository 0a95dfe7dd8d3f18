package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/profile"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/remote"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/session"
)

type userWire struct {
	MongoID      string   `json:"_id"`
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employeeId"`
	EmployeeCode string   `json:"employeeCode"`
	Name         string   `json:"name"`
	FullName     string   `json:"fullName"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Designation  string   `json:"designation"`
	Position     string   `json:"position"`
	Department   string   `json:"department"`
	JoiningDate  flexTime `json:"joiningDate"`
	ProfileImage string   `json:"profileImage"`
	Avatar       string   `json:"avatar"`
}

func (u userWire) toProfile() profile.Profile {
	id := firstNonEmpty(u.MongoID, u.ID)
	p := profile.Profile{
		ID:          id,
		EmployeeID:  firstNonEmpty(u.EmployeeID, u.EmployeeCode, id),
		Name:        firstNonEmpty(u.Name, u.FullName),
		Email:       u.Email,
		Phone:       u.Phone,
		Designation: firstNonEmpty(u.Designation, u.Position),
		Department:  u.Department,
		AvatarURL:   firstNonEmpty(u.ProfileImage, u.Avatar),
	}
	if u.JoiningDate.Valid {
		p.JoiningDate = u.JoiningDate.Time.Format("2006-01-02")
	}
	return p
}

type loginWire struct {
	Token       string    `json:"token"`
	AccessToken string    `json:"accessToken"`
	User        *userWire `json:"user"`
	Employee    *userWire `json:"employee"`
}

type authRepository struct {
	client *Client
}

func NewAuthRepository(client *Client) session.AuthRepository {
	return &authRepository{client: client}
}

// Login implements session.AuthRepository.
func (r *authRepository) Login(ctx context.Context, req session.LoginRequest) (session.LoginResult, error) {
	env, err := r.client.SendJSON(ctx, http.MethodPost, "/auth/login", req)
	if err != nil {
		var apiErr *remote.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			return session.LoginResult{}, fmt.Errorf("%w: %s", session.ErrInvalidLogin, apiErr.UserMessage())
		}
		return session.LoginResult{}, err
	}

	var wire loginWire
	if err := env.DecodeFirst(&wire); err != nil {
		return session.LoginResult{}, err
	}

	token := firstNonEmpty(wire.Token, wire.AccessToken)
	if token == "" {
		return session.LoginResult{}, fmt.Errorf("%w: login response carries no token", remote.ErrUnexpectedResponse)
	}

	result := session.LoginResult{Token: token}
	switch {
	case wire.User != nil:
		result.Profile = wire.User.toProfile()
	case wire.Employee != nil:
		result.Profile = wire.Employee.toProfile()
	}
	return result, nil
}
