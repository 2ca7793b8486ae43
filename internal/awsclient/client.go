// SPDX-License-Identifier: MPL-2.0

package awsclient

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/redshift"
	"github.com/aws/smithy-go/logging"
)

type (
	// Options overlays the standard AWS configuration chain. Zero values
	// leave the SDK defaults in place.
	Options struct {
		Region      string
		Profile     string
		EndpointURL string
		// MaxAttempts is the number of attempts per call including the first.
		MaxAttempts int
		// DebugHTTP logs every request and response, bodies included, at
		// debug level.
		DebugHTTP bool
		// Logger receives SDK log output; nil uses slog.Default().
		Logger *slog.Logger
		// HTTPClient replaces the SDK's HTTP client (tests).
		HTTPClient aws.HTTPClient
	}

	// Client is the resolved Redshift client with the settings that were
	// actually applied, for diagnostics.
	Client struct {
		*redshift.Client
		Region   string
		Endpoint string
	}
)

// LoadConfig resolves the AWS configuration for opts.
func LoadConfig(ctx context.Context, opts Options) (aws.Config, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithLogger(NewLogger(logger)),
	}
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}
	if opts.EndpointURL != "" {
		loadOpts = append(loadOpts, config.WithBaseEndpoint(opts.EndpointURL))
	}
	if opts.MaxAttempts > 0 {
		maxAttempts := opts.MaxAttempts
		loadOpts = append(loadOpts, config.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(retry.NewStandard(), maxAttempts)
		}))
	}
	if opts.DebugHTTP {
		loadOpts = append(loadOpts, config.WithClientLogMode(aws.LogRequestWithBody|aws.LogResponseWithBody|aws.LogRetries))
	}
	if opts.HTTPClient != nil {
		loadOpts = append(loadOpts, config.WithHTTPClient(opts.HTTPClient))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return cfg, nil
}

// New resolves the configuration and builds the Redshift client.
func New(ctx context.Context, opts Options) (*Client, error) {
	cfg, err := LoadConfig(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Client{
		Client:   redshift.NewFromConfig(cfg),
		Region:   cfg.Region,
		Endpoint: aws.ToString(cfg.BaseEndpoint),
	}, nil
}

// IsCredentialsError reports whether err comes from the credential chain
// failing to produce credentials. The SDK does not export a type for this,
// so the signer's message is matched.
func IsCredentialsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "failed to retrieve credentials") ||
		strings.Contains(msg, "failed to refresh cached credentials")
}

type (
	loggerKey struct{}

	// sdkLogger forwards SDK log output to slog. The logger carried by the
	// call's context, if any, wins over the one the client was built with.
	sdkLogger struct {
		logger *slog.Logger
	}
)

var _ logging.ContextLogger = sdkLogger{}

// NewLogger adapts an slog.Logger to the smithy logging interface. Warnings
// stay warnings; everything else, including wire dumps, is debug output.
func NewLogger(logger *slog.Logger) logging.Logger {
	return sdkLogger{logger: logger}
}

// ContextWithLogger returns a copy of ctx whose SDK calls log to logger
// instead of the logger the client was created with.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logf implements logging.Logger.
func (l sdkLogger) Logf(classification logging.Classification, format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	if classification == logging.Warn {
		l.logger.Warn(msg, "source", "aws-sdk")
		return
	}
	l.logger.Debug(msg, "source", "aws-sdk")
}

// WithContext implements logging.ContextLogger.
func (l sdkLogger) WithContext(ctx context.Context) logging.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return sdkLogger{logger: logger}
	}
	return l
}
