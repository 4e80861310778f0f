package model

import "errors"

var (
	ErrMalformedToken = errors.New("session token malformed")
	ErrExpiredToken   = errors.New("session token expired")
)
