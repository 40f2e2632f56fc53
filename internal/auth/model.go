package auth

type User struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Role        string  `json:"role,omitempty"`
}

// LoginRequest carries exactly one of Email and PhoneNumber; the other is
// sent as null.
type LoginRequest struct {
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phonenumber"`
	Password    string  `json:"password"`
}

type LoginResult struct {
	AccessToken string `json:"accessToken"`
	User        *User  `json:"user,omitempty"`
}

type RegisterRequest struct {
	Name        string  `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	Password    string  `json:"password"`
}
