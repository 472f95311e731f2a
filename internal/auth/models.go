package auth

type TokenRequest struct {
	DeviceID  string `json:"device_id"`
	DeviceKey string `json:"device_key"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	DeviceID    string `json:"device_id"`
}
