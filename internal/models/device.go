package models

import "time"

// Device is a seat-linked tablet identified by a client-held uuid.
type Device struct {
	ID         string     `json:"id"`
	Nickname   *string    `json:"nickname"`
	LastUsedAt *time.Time `json:"last_used_at"`
}

type TouchDeviceRequest struct {
	ID       string  `json:"id"`
	Nickname *string `json:"nickname"`
}

type VerifyPinRequest struct {
	Pin string `json:"pin"`
}
