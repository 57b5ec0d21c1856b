package storage_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bucketeer/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EnvironmentCredentials", func(t *testing.T) {
		t.Setenv("AWS_ACCESS_KEY_ID", "envkey")
		t.Setenv("AWS_SECRET_ACCESS_KEY", "envsecret")

		client, err := storage.NewClient(storage.Config{Endpoint: "localhost:9000"})
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("InvalidEndpoint", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000/some/path",
			AccessKey: "testkey",
			SecretKey: "testsecret",
		}

		client, err := storage.NewClient(cfg)
		assert.Error(t, err)
		assert.Nil(t, client)
	})
}

func TestNewS3Client(t *testing.T) {
	cfg := storage.Config{
		Endpoint:  "localhost:9000",
		AccessKey: "testkey",
		SecretKey: "testsecret",
	}

	api, presigner, err := storage.NewS3Client(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, api)
	assert.NotNil(t, presigner)
}

func TestNewS3ClientWithCABundle(t *testing.T) {
	t.Setenv("AWS_CA_BUNDLE", writeCABundle(t))

	api, presigner, err := storage.NewS3Client(context.Background(), storage.Config{
		Endpoint:  "localhost:9000",
		AccessKey: "testkey",
		SecretKey: "testsecret",
	})
	require.NoError(t, err)
	assert.NotNil(t, api)
	assert.NotNil(t, presigner)
}

// writeCABundle writes a self-signed CA certificate as PEM and returns its path.
func writeCABundle(t *testing.T) string {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "bucketeer test CA"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ca.pem")
	data := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestConfigEndpoints(t *testing.T) {
	tests := []struct {
		name     string
		cfg      storage.Config
		hostPort string
		url      string
	}{
		{"bare", storage.Config{Endpoint: "localhost:9000"}, "localhost:9000", "http://localhost:9000"},
		{"bare ssl", storage.Config{Endpoint: "s3.example.com", UseSSL: true}, "s3.example.com", "https://s3.example.com"},
		{"http scheme", storage.Config{Endpoint: "http://127.0.0.1:9000/"}, "127.0.0.1:9000", "http://127.0.0.1:9000"},
		{"https scheme", storage.Config{Endpoint: "https://s3.amazonaws.com"}, "s3.amazonaws.com", "https://s3.amazonaws.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hostPort, tt.cfg.HostPort())
			assert.Equal(t, tt.url, tt.cfg.URL())
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg storage.Config
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, "us-east-1", cfg.RegionOrDefault())

	cfg.TimeoutSeconds = 5
	cfg.Region = "eu-west-1"
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, "eu-west-1", cfg.RegionOrDefault())
}
