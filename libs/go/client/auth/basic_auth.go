package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/churnlens/churn-api/libs/go/constants"
	"github.com/churnlens/churn-api/libs/go/logger"
	"github.com/churnlens/churn-api/libs/go/middleware"
	"github.com/churnlens/churn-api/libs/go/types/api/responses"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// IncorrectCredentialsDetail is the only message an unauthenticated caller sees.
const IncorrectCredentialsDetail = "Incorrect username or password"

var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrMissingCredentials = errors.New("basic auth credentials not configured")
	ErrInvalidBcryptHash  = errors.New("configured password looks like a bcrypt hash but is malformed")
)

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// BasicAuthClient checks HTTP basic credentials against a single static
// username/password pair. The password may be stored as plaintext or as a
// bcrypt hash.
type BasicAuthClient struct {
	username     []byte
	password     []byte
	passwordHash []byte
}

// NewBasicAuthClient validates the configured credentials.
func NewBasicAuthClient(username, password string) (*BasicAuthClient, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	client := &BasicAuthClient{username: []byte(username)}
	if IsBcryptHash(password) {
		if _, err := bcrypt.Cost([]byte(password)); err != nil {
			return nil, ErrInvalidBcryptHash
		}
		client.passwordHash = []byte(password)
	} else {
		client.password = []byte(password)
	}
	return client, nil
}

// IsBcryptHash reports whether s carries a bcrypt version prefix.
func IsBcryptHash(s string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// Authenticate returns ErrInvalidCredentials unless both values match.
// Both comparisons always run so a wrong username costs the same as a
// wrong password.
func (a *BasicAuthClient) Authenticate(username, password string) error {
	usernameOK := constantTimeEqual([]byte(username), a.username)

	var passwordOK bool
	if a.passwordHash != nil {
		passwordOK = bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
	} else {
		passwordOK = constantTimeEqual([]byte(password), a.password)
	}

	if !usernameOK || !passwordOK {
		return ErrInvalidCredentials
	}
	return nil
}

// constantTimeEqual compares digests so the comparison time does not depend
// on where the inputs differ, nor on their lengths.
func constantTimeEqual(a, b []byte) bool {
	da := sha256.Sum256(a)
	db := sha256.Sum256(b)
	return subtle.ConstantTimeCompare(da[:], db[:]) == 1
}

// EnsureValidBasicAuth rejects requests without valid credentials and stores
// the authenticated username under constants.UsernameKey.
func (a *BasicAuthClient) EnsureValidBasicAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			a.reject(c, "", "missing or malformed Authorization header")
			return
		}
		if err := a.Authenticate(username, password); err != nil {
			a.reject(c, username, err.Error())
			return
		}

		c.Set(constants.UsernameKey, username)
		c.Next()
	}
}

func (a *BasicAuthClient) reject(c *gin.Context, username, reason string) {
	logger.Log.Warn("Authentication failed",
		zap.String("correlation_id", middleware.GetCorrelationID(c)),
		zap.String("username", username),
		zap.String("reason", reason),
		zap.String("path", c.Request.URL.Path),
		zap.String("client_ip", c.ClientIP()),
	)
	c.Header("WWW-Authenticate", "Basic")
	c.AbortWithStatusJSON(http.StatusUnauthorized, responses.DetailResponse{Detail: IncorrectCredentialsDetail})
}

// GetUsername returns the authenticated username, or "" before auth ran.
func GetUsername(c *gin.Context) string {
	return c.GetString(constants.UsernameKey)
}
