package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ascent-matrix/summit-registration/api"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

const (
	ssmParamSuffix = "_SSM_PARAM"
	testKeyPrefix  = "rzp_test"
)

type ServerSettings struct {
	Host string
	Port string
}

type Config struct {
	Env    api.Environment
	Server ServerSettings

	TableName      string
	DynamoEndpoint string

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string

	AllowedOrigins []string
	EmailFrom      string
}

type parameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

func getEnvironment() api.Environment {
	if strings.EqualFold(getEnvOrDefault("ENV", "LOCAL"), "PROD") {
		return api.PROD
	}

	return api.LOCAL
}

func getServerSettingsFromEnv() ServerSettings {
	return ServerSettings{
		Host: getEnvOrDefault("HOST", "0.0.0.0"),
		Port: getEnvOrDefault("PORT", "3000"),
	}
}

// loadConfig reads the environment. Secrets may instead name an SSM parameter through <KEY>_SSM_PARAM.
func loadConfig(ctx context.Context, params parameterGetter) (Config, error) {
	keySecret, err := getSecret(ctx, params, "RAZORPAY_KEY_SECRET")
	if err != nil {
		return Config{}, err
	}
	if keySecret == "" {
		return Config{}, fmt.Errorf("RAZORPAY_KEY_SECRET is not configured")
	}

	webhookSecret, err := getSecret(ctx, params, "RAZORPAY_WEBHOOK_SECRET")
	if err != nil {
		return Config{}, err
	}

	return Config{
		Env:                   getEnvironment(),
		Server:                getServerSettingsFromEnv(),
		TableName:             getEnvOrDefault("TABLE_NAME", "SummitRegistration"),
		DynamoEndpoint:        getEnvOrDefault("DYNAMO_ENDPOINT", ""),
		RazorpayKeyID:         getEnvOrDefault("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:     keySecret,
		RazorpayWebhookSecret: webhookSecret,
		AllowedOrigins:        parseOrigins(getEnvOrDefault("ALLOWED_ORIGIN", "https://ascentmatrix.in")),
		EmailFrom:             getEnvOrDefault("EMAIL_FROM", "Ascent Matrix <tickets@ascentmatrix.in>"),
	}, nil
}

func getSecret(ctx context.Context, params parameterGetter, key string) (string, error) {
	if v, ok := os.LookupEnv(key); ok {
		return v, nil
	}

	name, ok := os.LookupEnv(key + ssmParamSuffix)
	if !ok || params == nil {
		return "", nil
	}

	out, err := params.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to read %s from ssm parameter %q: %w", key, name, err)
	}
	if out.Parameter == nil {
		return "", fmt.Errorf("ssm parameter %q has no value", name)
	}

	return aws.ToString(out.Parameter.Value), nil
}

func paymentMode(keyID string) string {
	if strings.HasPrefix(keyID, testKeyPrefix) {
		return "Test"
	}

	return "Live"
}

func parseOrigins(v string) []string {
	var origins []string
	for _, o := range strings.Split(v, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getEnvOrDefault(key string, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return defaultVal
}
