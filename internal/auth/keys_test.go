package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
)

func writeECDSAPrivateKeyPEM(t *testing.T, path string, key *ecdsa.PrivateKey) {
	t.Helper()

	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatalf("failed to marshal ECDSA private key: %v", err)
	}
	block := &pem.Block{Type: "EC PRIVATE KEY", Bytes: der}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		t.Fatalf("failed to write PEM file: %v", err)
	}
}

func TestLoadECDSAPrivateKey(t *testing.T) {
	dir := t.TempDir()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	validPath := filepath.Join(dir, "valid.pem")
	writeECDSAPrivateKeyPEM(t, validPath, key)

	invalidPath := filepath.Join(dir, "invalid.pem")
	if err := os.WriteFile(invalidPath, []byte("-----BEGIN INVALID KEY-----\nnope\n-----END INVALID KEY-----\n"), 0o600); err != nil {
		t.Fatalf("failed to write invalid PEM file: %v", err)
	}

	notPEMPath := filepath.Join(dir, "notpem.txt")
	if err := os.WriteFile(notPEMPath, []byte("plain text"), 0o600); err != nil {
		t.Fatalf("failed to write non-PEM file: %v", err)
	}

	tests := []struct {
		name    string
		keyPath string
		wantErr bool
	}{
		{name: "valid private key", keyPath: validPath, wantErr: false},
		{name: "missing file", keyPath: filepath.Join(dir, "absent.pem"), wantErr: true},
		{name: "invalid PEM contents", keyPath: invalidPath, wantErr: true},
		{name: "not PEM at all", keyPath: notPEMPath, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadECDSAPrivateKey(tt.keyPath)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadECDSAPrivateKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got == nil {
				t.Error("LoadECDSAPrivateKey() returned nil key without error")
			}
		})
	}
}
