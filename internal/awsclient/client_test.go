// SPDX-License-Identifier: MPL-2.0

package awsclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/redshift"
	"github.com/aws/smithy-go/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invowk/rsctl/internal/testutil"
)

func TestLoadConfig_Overrides(t *testing.T) {
	testutil.IsolateAWS(t)

	cfg, err := LoadConfig(context.Background(), Options{
		Region:      "eu-central-1",
		EndpointURL: "http://localhost:4566",
		MaxAttempts: 5,
		DebugHTTP:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, "eu-central-1", cfg.Region)
	assert.Equal(t, "http://localhost:4566", aws.ToString(cfg.BaseEndpoint))
	require.NotNil(t, cfg.Retryer)
	assert.Equal(t, 5, cfg.Retryer().MaxAttempts())
	assert.True(t, cfg.ClientLogMode.IsRequestWithBody())
	assert.True(t, cfg.ClientLogMode.IsResponseWithBody())
	assert.True(t, cfg.ClientLogMode.IsRetries())
}

func TestLoadConfig_Defaults(t *testing.T) {
	testutil.IsolateAWS(t)

	cfg, err := LoadConfig(context.Background(), Options{})
	require.NoError(t, err)

	assert.Empty(t, cfg.Region)
	assert.Nil(t, cfg.BaseEndpoint)
	assert.False(t, cfg.ClientLogMode.IsRequestWithBody())
}

func TestLoadConfig_UnknownProfile(t *testing.T) {
	testutil.IsolateAWS(t)

	_, err := LoadConfig(context.Background(), Options{Profile: "does-not-exist"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load AWS configuration")
}

func TestNew_TalksToEndpoint(t *testing.T) {
	testutil.IsolateAWS(t)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if got := r.PostForm.Get("Action"); got != "DescribeClusters" {
			http.Error(w, "unexpected action "+got, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/xml")
		_, _ = fmt.Fprint(w, `<DescribeClustersResponse xmlns="http://redshift.amazonaws.com/doc/2012-12-01/">
  <DescribeClustersResult><Clusters><Cluster><ClusterIdentifier>examplecluster</ClusterIdentifier></Cluster></Clusters></DescribeClustersResult>
  <ResponseMetadata><RequestId>req-1</RequestId></ResponseMetadata>
</DescribeClustersResponse>`)
	}))
	t.Cleanup(srv.Close)

	client, err := New(context.Background(), Options{Region: "us-east-1", EndpointURL: srv.URL, MaxAttempts: 1})
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", client.Region)
	assert.Equal(t, srv.URL, client.Endpoint)

	out, err := client.DescribeClusters(context.Background(), &redshift.DescribeClustersInput{})
	require.NoError(t, err)
	require.Len(t, out.Clusters, 1)
	assert.Equal(t, "examplecluster", aws.ToString(out.Clusters[0].ClusterIdentifier))
	assert.Equal(t, int32(1), calls.Load())
}

func TestNew_MaxAttemptsLimitsRetries(t *testing.T) {
	testutil.IsolateAWS(t)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "text/xml")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = fmt.Fprint(w, `<ErrorResponse><Error><Type>Receiver</Type><Code>ServiceUnavailable</Code><Message>busy</Message></Error><RequestId>req-2</RequestId></ErrorResponse>`)
	}))
	t.Cleanup(srv.Close)

	client, err := New(context.Background(), Options{Region: "us-east-1", EndpointURL: srv.URL, MaxAttempts: 2})
	require.NoError(t, err)

	_, err = client.DescribeClusters(context.Background(), &redshift.DescribeClustersInput{})
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logger.Logf(logging.Warn, "retrying %s", "DescribeClusters")
	logger.Logf(logging.Debug, "Request\n%s", "POST / HTTP/1.1")

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "retrying DescribeClusters")
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "source=aws-sdk")
}

func TestNewLogger_ContextLoggerWins(t *testing.T) {
	t.Parallel()

	debug := &slog.HandlerOptions{Level: slog.LevelDebug}
	var base, run bytes.Buffer
	logger := NewLogger(slog.New(slog.NewTextHandler(&base, debug)))
	ctx := ContextWithLogger(context.Background(), slog.New(slog.NewTextHandler(&run, debug)))

	logging.WithContext(ctx, logger).Logf(logging.Debug, "Request\n%s", "Action=DescribeClusters")
	assert.Empty(t, base.String())
	assert.Contains(t, run.String(), "Action=DescribeClusters")

	logging.WithContext(context.Background(), logger).Logf(logging.Debug, "Response\n%s", "HTTP/1.1 200 OK")
	assert.Contains(t, base.String(), "HTTP/1.1 200 OK")
}

func TestIsCredentialsError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"retrieve", fmt.Errorf("operation error Redshift: DescribeClusters, failed to sign request: failed to retrieve credentials: %w", errors.New("no providers")), true},
		{"refresh", errors.New("failed to refresh cached credentials, no EC2 IMDS role found"), true},
		{"other", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsCredentialsError(tt.err))
		})
	}
}
