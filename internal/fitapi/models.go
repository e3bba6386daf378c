package fitapi

import (
	"encoding/json"
	"strconv"

	"fitcoach-web/internal/roles"
)

// UserStatus is the account lifecycle state as the API reports it.
type UserStatus int

const (
	StatusPending UserStatus = 0 // invited, registration not completed
	StatusActive  UserStatus = 1
	StatusBlocked UserStatus = 2
)

// User is the profile shape returned by the API.
type User struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Role     roles.Role `json:"role"`
	Status   UserStatus `json:"status"`
	Document string     `json:"document,omitempty"`
	Phone    string     `json:"phone,omitempty"`
}

// UnmarshalJSON tolerates role and status arriving as strings or numbers;
// the API is not consistent across endpoints.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := struct {
		*alias
		Role   any `json:"role"`
		Status any `json:"status"`
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	u.Role = roles.FromClaim(aux.Role)
	u.Status = UserStatus(asInt(aux.Status))
	return nil
}

func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// Student is a trainer's student as listed by GET /student.
type Student struct {
	User
	PersonalID string `json:"personalId,omitempty"`
}

// Workout is a training plan a trainer assigns to a student.
type Workout struct {
	ID            string `json:"id,omitempty"`
	StudentID     string `json:"studentId"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	DurationWeeks int    `json:"durationWeeks"`
	FrequencyDays int    `json:"frequencyDays"`
}

type LoginRequest struct {
	Document string `json:"document"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

type RegisterRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Document string     `json:"document"`
	Password string     `json:"password"`
	Phone    string     `json:"phone,omitempty"`
	Role     roles.Role `json:"role"`
}

type CompleteRegistrationRequest struct {
	InviteToken string `json:"inviteToken,omitempty"`
	Document    string `json:"document"`
	Password    string `json:"password"`
}

type InviteStudentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}
