package models

// TokenPayload is verified content of a local API token
type TokenPayload struct {
	Subject string
}
