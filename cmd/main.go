package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ascent-matrix/summit-registration/api"
	"github.com/ascent-matrix/summit-registration/dynamo"
	"github.com/ascent-matrix/summit-registration/payment"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %s\n", err)
		os.Exit(1)
	}

	env := getEnvironment()
	logger := newLogger(env)

	if err := run(context.Background(), env, logger); err != nil {
		logger.Error("Server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, env api.Environment, logger *slog.Logger) error {
	awsCfg, err := loadAWSConfig(ctx, env)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, ssm.NewFromConfig(awsCfg))
	if err != nil {
		return err
	}

	dynamoClient := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoEndpoint)
		}
	})
	db := dynamo.NewDB(dynamoClient, cfg.TableName)

	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	orders := payment.NewOrderService(gateway, db, cfg.RazorpayKeyID, logger)
	verifier := payment.NewVerifier(cfg.RazorpayKeySecret, cfg.RazorpayWebhookSecret, db, logger)

	mode := paymentMode(cfg.RazorpayKeyID)

	summitAPI := api.NewAPI(db, orders, verifier, createEmailSender(awsCfg, logger, env), logger, env, api.Settings{
		AllowedOrigins:  cfg.AllowedOrigins,
		EmailFrom:       cfg.EmailFrom,
		PaymentMode:     mode,
		WebhooksEnabled: cfg.RazorpayWebhookSecret != "",
	})

	swagger, err := api.GetSwagger()
	if err != nil {
		return fmt.Errorf("error loading swagger spec: %w", err)
	}

	swagger.Servers = nil

	s := &http.Server{
		Handler:           summitAPI.Handler(swagger),
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Ascent Matrix API listening",
			slog.String("addr", s.Addr),
			slog.String("razorpayMode", mode),
			slog.Bool("webhooks", cfg.RazorpayWebhookSecret != ""),
		)
		errCh <- s.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("Shutting down")
	return s.Shutdown(shutdownCtx)
}

func newLogger(env api.Environment) *slog.Logger {
	if env == api.PROD {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// loadAWSConfig uses the default chain, or static dummy credentials when pointed at a local dynamodb.
func loadAWSConfig(ctx context.Context, env api.Environment) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{}

	if env == api.LOCAL && getEnvOrDefault("DYNAMO_ENDPOINT", "") != "" {
		opts = append(opts,
			config.WithRegion(getEnvOrDefault("AWS_REGION", "localhost")),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("local", "local", "")),
		)
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to get aws config: %w", err)
	}

	return cfg, nil
}
