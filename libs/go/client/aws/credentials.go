package aws

import (
	"context"
	"fmt"
)

const (
	APIUsernameEnv    = "API_USERNAME"
	APIUsernameArnEnv = "API_USERNAME_ARN"
	APIPasswordEnv    = "API_PASSWORD"
	APIPasswordArnEnv = "API_PASSWORD_ARN"
	APICredentialsEnv = "API_CREDENTIALS"
	APICredentialsArn = "API_CREDENTIALS_ARN"
)

// BasicAuthCredentials is the static username/password pair guarding the API.
type BasicAuthCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GetBasicAuthCredentials resolves the API credentials. A combined JSON
// secret (API_CREDENTIALS_ARN / API_CREDENTIALS) wins when configured;
// otherwise username and password are resolved separately.
func (c *SecretsManagerClient) GetBasicAuthCredentials(ctx context.Context) (BasicAuthCredentials, error) {
	var creds BasicAuthCredentials
	if err := c.GetSecretJSON(ctx, APICredentialsArn, APICredentialsEnv, &creds); err == nil && creds.Username != "" && creds.Password != "" {
		return creds, nil
	}

	username, err := c.GetSecretString(ctx, APIUsernameArnEnv, APIUsernameEnv)
	if err != nil {
		return BasicAuthCredentials{}, fmt.Errorf("resolving API username: %w", err)
	}
	password, err := c.GetSecretString(ctx, APIPasswordArnEnv, APIPasswordEnv)
	if err != nil {
		return BasicAuthCredentials{}, fmt.Errorf("resolving API password: %w", err)
	}
	return BasicAuthCredentials{Username: username, Password: password}, nil
}
