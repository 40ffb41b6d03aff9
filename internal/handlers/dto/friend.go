package dto

import validation "github.com/go-ozzo/ozzo-validation"

type FriendRequestRequest struct {
	TargetUserID uint `json:"targetUserId"`
}

func (r FriendRequestRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TargetUserID, validation.Required),
	)
}
