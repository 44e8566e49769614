package user

import "errors"

var (
	ErrManagerAccessRequired  = errors.New("manager access required")
	ErrReviewerAccessRequired = errors.New("manager or engineer access required")
)
