package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = 24 * time.Hour

var errInvalidDeviceKey = errors.New("invalid device key")

type Claims struct {
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

// Service issues bearer tokens to devices that present the shared device
// key. No user accounts; one key guards the whole control surface.
type Service struct {
	secret        []byte
	deviceKey     string
	deviceKeyHash string
}

func NewService(secret, deviceKey, deviceKeyHash string) *Service {
	return &Service{
		secret:        []byte(secret),
		deviceKey:     deviceKey,
		deviceKeyHash: deviceKeyHash,
	}
}

func (s *Service) IssueToken(req TokenRequest) (TokenResponse, error) {
	if req.DeviceKey == "" {
		return TokenResponse{}, errors.New("device_key required")
	}
	if err := s.verifyDeviceKey(req.DeviceKey); err != nil {
		return TokenResponse{}, err
	}

	deviceID := req.DeviceID
	if deviceID == "" {
		deviceID = uuid.NewString()
	}

	token, err := s.signToken(deviceID, accessTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(accessTokenTTL.Seconds()),
		DeviceID:    deviceID,
	}, nil
}

// verifyDeviceKey prefers the bcrypt hash when configured so the plain
// key never has to live in the environment.
func (s *Service) verifyDeviceKey(key string) error {
	if s.deviceKeyHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.deviceKeyHash), []byte(key)); err != nil {
			return errInvalidDeviceKey
		}
		return nil
	}
	if s.deviceKey == "" || key != s.deviceKey {
		return errInvalidDeviceKey
	}
	return nil
}

func (s *Service) signToken(deviceID string, ttl time.Duration) (string, error) {
	claims := Claims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   deviceID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
