package site

import "errors"

var ErrSiteNotFound = errors.New("site zone not configured")
