package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// passwordLength считает байты: bcrypt принимает не больше 72
var passwordLength = validation.Length(8, 72)

type RegisterRequest struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.RuneLength(3, 255)),
		validation.Field(&r.Password, validation.Required, passwordLength),
		validation.Field(&r.Firstname, validation.RuneLength(0, 50)),
		validation.Field(&r.Lastname, validation.RuneLength(0, 50)),
	)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required, passwordLength),
		validation.Field(&r.NewPassword, validation.Required, passwordLength),
	)
}
