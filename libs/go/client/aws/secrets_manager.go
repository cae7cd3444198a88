package aws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/churnlens/churn-api/libs/go/helpers"
	"github.com/churnlens/churn-api/libs/go/logger"
)

// SecretsEndpointEnvVar points the client at a local emulator such as
// LocalStack. Emulators accept any static credentials.
const SecretsEndpointEnvVar = "SECRETS_MANAGER_ENDPOINT"

// SecretsAPI is the subset of the Secrets Manager client used here.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerClient wraps the AWS Secrets Manager client.
type SecretsManagerClient struct {
	svc        SecretsAPI
	maxElapsed time.Duration
}

// NewSecretsManagerClient uses the default AWS configuration chain
// (environment variables, shared config, IAM role), or an emulator when
// SECRETS_MANAGER_ENDPOINT is set.
func NewSecretsManagerClient(ctx context.Context) (*SecretsManagerClient, error) {
	endpoint := os.Getenv(SecretsEndpointEnvVar)

	var opts []func(*config.LoadOptions) error
	if endpoint != "" {
		opts = append(opts,
			config.WithRegion(helpers.GetEnvWithDefault("AWS_REGION", "us-east-1")),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "")),
		)
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	svc := secretsmanager.NewFromConfig(cfg, func(o *secretsmanager.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return NewSecretsManagerClientWithAPI(svc), nil
}

// NewSecretsManagerClientWithAPI wraps an existing client.
func NewSecretsManagerClientWithAPI(svc SecretsAPI) *SecretsManagerClient {
	return &SecretsManagerClient{
		svc:        svc,
		maxElapsed: 20 * time.Second,
	}
}

// WithMaxElapsed bounds how long a single secret fetch is retried.
func (c *SecretsManagerClient) WithMaxElapsed(d time.Duration) *SecretsManagerClient {
	c.maxElapsed = d
	return c
}

// fetch reads a secret by ARN, retrying transient failures with exponential
// backoff. Missing secrets and bad requests are not retried.
func (c *SecretsManagerClient) fetch(ctx context.Context, secretArn string) (string, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxElapsedTime = c.maxElapsed

	attempt := 0
	operation := func() (string, error) {
		attempt++
		result, err := c.svc.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
			SecretId: aws.String(secretArn),
		})
		if err != nil {
			if isPermanent(err) {
				return "", backoff.Permanent(err)
			}
			logger.Log.Debug("Secrets Manager fetch failed, retrying",
				zap.String("secretArn", secretArn),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return "", err
		}
		if result.SecretString == nil || *result.SecretString == "" {
			return "", backoff.Permanent(fmt.Errorf("secret %s has no string value", secretArn))
		}
		return *result.SecretString, nil
	}

	return backoff.RetryWithData(operation, backoff.WithContext(policy, ctx))
}

func isPermanent(err error) bool {
	var notFound *types.ResourceNotFoundException
	var invalidParam *types.InvalidParameterException
	var invalidRequest *types.InvalidRequestException
	var decryption *types.DecryptionFailure
	return errors.As(err, &notFound) ||
		errors.As(err, &invalidParam) ||
		errors.As(err, &invalidRequest) ||
		errors.As(err, &decryption)
}

// GetSecretString fetches a secret using the ARN held in secretArnEnvVar and
// falls back to the plain value of fallbackEnvVar when the ARN is unset or the
// fetch fails. A secret stored as single-key JSON yields that key's value.
func (c *SecretsManagerClient) GetSecretString(ctx context.Context, secretArnEnvVar string, fallbackEnvVar string) (string, error) {
	if secretArn := os.Getenv(secretArnEnvVar); secretArn != "" {
		raw, err := c.fetch(ctx, secretArn)
		if err == nil {
			return unwrapSingleKeyJSON(secretArn, raw), nil
		}
		logger.Log.Warn("Failed to retrieve secret from Secrets Manager, falling back to env var",
			zap.String("secretArnEnvVar", secretArnEnvVar),
			zap.String("fallbackEnvVar", fallbackEnvVar),
			zap.Error(err),
		)
	} else {
		logger.Log.Debug("Secret ARN environment variable not set, falling back to direct env var",
			zap.String("arnEnvVar", secretArnEnvVar),
			zap.String("fallbackEnvVar", fallbackEnvVar),
		)
	}

	if value := os.Getenv(fallbackEnvVar); value != "" {
		logger.Log.Info("Using secret value from direct environment variable", zap.String("envVar", fallbackEnvVar))
		return value, nil
	}

	return "", fmt.Errorf("secret not found using ARN env var '%s' or direct env var '%s'", secretArnEnvVar, fallbackEnvVar)
}

func unwrapSingleKeyJSON(secretArn, raw string) string {
	var secretJSON map[string]string
	if err := json.Unmarshal([]byte(raw), &secretJSON); err != nil || len(secretJSON) != 1 {
		logger.Log.Info("Fetched secret from Secrets Manager", zap.String("secretArn", secretArn))
		return raw
	}
	for key, value := range secretJSON {
		logger.Log.Info("Fetched secret from Secrets Manager (single-key JSON)",
			zap.String("secretArn", secretArn),
			zap.String("jsonKey", key),
		)
		return value
	}
	return raw
}

// GetSecretJSON fetches a JSON secret by ARN into target. The fallback env var
// must hold the same JSON document.
func (c *SecretsManagerClient) GetSecretJSON(ctx context.Context, secretArnEnvVar string, fallbackEnvVar string, target interface{}) error {
	if secretArn := os.Getenv(secretArnEnvVar); secretArn != "" {
		raw, err := c.fetch(ctx, secretArn)
		if err == nil {
			if err = json.Unmarshal([]byte(raw), target); err == nil {
				return nil
			}
		}
		logger.Log.Warn("Failed to load JSON secret from Secrets Manager, falling back",
			zap.String("secretArnEnvVar", secretArnEnvVar),
			zap.Error(err),
		)
	}

	fallback := os.Getenv(fallbackEnvVar)
	if fallback == "" {
		return fmt.Errorf("secret not found using ARN env var '%s' or direct env var '%s'", secretArnEnvVar, fallbackEnvVar)
	}
	if err := json.Unmarshal([]byte(fallback), target); err != nil {
		return fmt.Errorf("fallback %s is not valid JSON: %w", fallbackEnvVar, err)
	}
	return nil
}
