package dto

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

type UpdateProfileRequest struct {
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Firstname, validation.RuneLength(0, 50)),
		validation.Field(&r.Lastname, validation.RuneLength(0, 50)),
	)
}

var (
	extPattern         = regexp.MustCompile(`^\.?[A-Za-z0-9]{1,10}$`)
	contentTypePattern = regexp.MustCompile(`^image/[A-Za-z0-9.+-]+$`)
)

type AvatarUploadRequest struct {
	Ext         string `json:"ext"`
	ContentType string `json:"contentType"`
}

func (r AvatarUploadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Ext, validation.Required, validation.Match(extPattern)),
		validation.Field(&r.ContentType, validation.Required, validation.Match(contentTypePattern)),
	)
}

type AvatarConfirmRequest struct {
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
}

func (r AvatarConfirmRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Key, validation.Required, validation.Length(1, 512)),
		validation.Field(&r.ContentType, validation.Required, validation.Match(contentTypePattern)),
	)
}
