package dto

type UserDTO struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}
