package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// secretsManagerAPI is the subset of the Secrets Manager client the provider calls.
type secretsManagerAPI interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSSecretsManagerProvider reads JSON object secrets from AWS Secrets Manager.
type AWSSecretsManagerProvider struct {
	client secretsManagerAPI
}

// NewAWSProvider loads the default AWS credential chain for region.
func NewAWSProvider(ctx context.Context, region string) (Provider, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &AWSSecretsManagerProvider{client: secretsmanager.NewFromConfig(cfg)}, nil
}

// GetSecret returns the secret stored under key, which must hold a JSON object such as
// {"api_url": "https://...", "auth_login_path": "auth/login"}.
// Number and bool members are converted to their string form; nested values are rejected.
func (p *AWSSecretsManagerProvider) GetSecret(ctx context.Context, key string) (map[string]string, error) {
	out, err := p.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch secret %q: %w", key, err)
	}

	var raw []byte
	switch {
	case out.SecretString != nil:
		raw = []byte(*out.SecretString)
	case len(out.SecretBinary) > 0:
		raw = out.SecretBinary
	default:
		return nil, fmt.Errorf("secret %q is empty", key)
	}

	return decodeSecret(key, raw)
}

func decodeSecret(key string, raw []byte) (map[string]string, error) {
	var members map[string]any
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, fmt.Errorf("secret %q is not a JSON object: %w", key, err)
	}

	values := make(map[string]string, len(members))
	for name, v := range members {
		switch tv := v.(type) {
		case string:
			values[name] = tv
		case float64:
			values[name] = strconv.FormatFloat(tv, 'f', -1, 64)
		case bool:
			values[name] = strconv.FormatBool(tv)
		case nil:
			values[name] = ""
		default:
			return nil, fmt.Errorf("secret %q: member %q is not a scalar", key, name)
		}
	}
	return values, nil
}
