package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEndpointHost(t *testing.T) {
	tests := []struct {
		raw        string
		wantHost   string
		wantSecure bool
	}{
		{"localhost:9000", "localhost:9000", false},
		{"http://minio.lager.local:9000/", "minio.lager.local:9000", false},
		{"https://s3.eu-central-1.amazonaws.com", "s3.eu-central-1.amazonaws.com", true},
		{"  ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			host, secure := endpointHost(tt.raw)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantSecure, secure)
		})
	}
}

func TestNewTransport(t *testing.T) {
	tr := newTransport(5 * time.Second)
	assert.Equal(t, 5*time.Second, tr.TLSHandshakeTimeout)
	assert.Equal(t, 5*time.Second, tr.ResponseHeaderTimeout)
}
