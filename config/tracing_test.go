package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestParseOTLPEndpoint(t *testing.T) {
	cases := []struct {
		raw      string
		hostport string
		path     string
		insecure bool
	}{
		{"http://collector:4318", "collector:4318", "/v1/traces", true},
		{"https://otel.example.com/custom/traces", "otel.example.com", "/custom/traces", false},
		{" collector:4318 ", "collector:4318", "/v1/traces", true},
	}

	for _, tc := range cases {
		hostport, path, insecure, err := parseOTLPEndpoint(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.hostport, hostport)
		assert.Equal(t, tc.path, path)
		assert.Equal(t, tc.insecure, insecure)
	}

	for _, raw := range []string{"", "collector:4318/v1/traces", "grpc://collector:4317", "http:///v1/traces"} {
		_, _, _, err := parseOTLPEndpoint(raw)
		assert.Error(t, err, raw)
	}
}

func TestTraceSampleRatio(t *testing.T) {
	assert.Equal(t, 1.0, traceSampleRatio(""))
	assert.Equal(t, 0.25, traceSampleRatio("0.25"))
	assert.Equal(t, 1.0, traceSampleRatio("1.5"))
	assert.Equal(t, 1.0, traceSampleRatio("half"))
}

func TestTracingResourceAttributes_NameTheLandingService(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("APP_VERSION", "2024.06.1")
	t.Setenv(AppEnvKey, "prod")

	attrs := map[attribute.Key]string{}
	for _, kv := range tracingResourceAttributes() {
		attrs[kv.Key] = kv.Value.AsString()
	}

	assert.Equal(t, "seam-landing", attrs["service.name"])
	assert.Equal(t, "2024.06.1", attrs["service.version"])
	assert.Equal(t, "production", attrs["deployment.environment"])
}
