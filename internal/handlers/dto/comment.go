package dto

import validation "github.com/go-ozzo/ozzo-validation"

type CommentRequest struct {
	Content string `json:"content"`
}

func (r CommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required,
			validation.RuneLength(1, 1000).Error("comment cannot be longer than 1000 characters"),
		),
	)
}
