package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"log"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Shared signing key for the package tests, generated once in TestMain.
var testJwtPrivateKey *ecdsa.PrivateKey

func TestMain(m *testing.M) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		log.Fatalf("Failed to generate ECDSA private key for tests: %v", err)
	}
	testJwtPrivateKey = key

	os.Exit(m.Run())
}

func TestCreateToken(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		email      string
		userID     string
		privateKey *ecdsa.PrivateKey
		wantErr    bool
	}{
		{
			name:       "successful token creation",
			username:   "alice",
			email:      "alice@x.com",
			userID:     "user-1",
			privateKey: testJwtPrivateKey,
			wantErr:    false,
		},
		{
			name:       "nil private key",
			username:   "alice",
			email:      "alice@x.com",
			userID:     "user-1",
			privateKey: nil,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenString, err := CreateToken(tt.username, tt.email, tt.userID, tt.privateKey)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tokenString == "" {
				t.Fatal("CreateToken() returned an empty token string")
			}

			claims, err := VerifyToken(tokenString, &tt.privateKey.PublicKey)
			if err != nil {
				t.Fatalf("failed to verify freshly issued token: %v", err)
			}

			if claims.Username != tt.username {
				t.Errorf("Username = %q, want %q", claims.Username, tt.username)
			}
			if claims.Email != tt.email {
				t.Errorf("Email = %q, want %q", claims.Email, tt.email)
			}
			if claims.UserID != tt.userID {
				t.Errorf("UserID = %q, want %q", claims.UserID, tt.userID)
			}
			if claims.Issuer != ISSUER {
				t.Errorf("Issuer = %q, want %q", claims.Issuer, ISSUER)
			}
			if claims.Subject != SUBJECT {
				t.Errorf("Subject = %q, want %q", claims.Subject, SUBJECT)
			}
			if _, err := uuid.Parse(claims.ID); err != nil {
				t.Errorf("ID (JTI) claim is not a valid UUID: %v", err)
			}

			// Expiry should sit two hours out, within tolerance.
			now := time.Now()
			if claims.ExpiresAt == nil ||
				claims.ExpiresAt.Before(now.Add(TokenTTL-time.Minute)) ||
				claims.ExpiresAt.After(now.Add(TokenTTL+time.Minute)) {
				t.Errorf("ExpiresAt = %v, want about %v from now", claims.ExpiresAt, TokenTTL)
			}
		})
	}
}

func TestVerifyToken(t *testing.T) {
	otherKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate second key: %v", err)
	}

	validToken, err := CreateToken("alice", "alice@x.com", "user-1", testJwtPrivateKey)
	if err != nil {
		t.Fatalf("failed to create token: %v", err)
	}

	foreignToken, err := CreateToken("alice", "alice@x.com", "user-1", otherKey)
	if err != nil {
		t.Fatalf("failed to create foreign-key token: %v", err)
	}

	tests := []struct {
		name        string
		tokenString string
		wantErr     bool
	}{
		{name: "valid token", tokenString: validToken, wantErr: false},
		{name: "garbage token", tokenString: "not-a-token", wantErr: true},
		{name: "token signed by different key", tokenString: foreignToken, wantErr: true},
		{name: "expired token", tokenString: expiredToken(t), wantErr: true},
		{name: "wrong signing algorithm", tokenString: hmacToken(t), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := VerifyToken(tt.tokenString, &testJwtPrivateKey.PublicKey)
			if (err != nil) != tt.wantErr {
				t.Fatalf("VerifyToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && claims.UserID != "user-1" {
				t.Errorf("UserID = %q, want %q", claims.UserID, "user-1")
			}
		})
	}
}

// expiredToken signs a token whose expiry already passed.
func expiredToken(t *testing.T) string {
	t.Helper()

	claims := Claims{
		Username: "alice",
		Email:    "alice@x.com",
		UserID:   "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-TokenTTL)),
			Issuer:    ISSUER,
			Subject:   SUBJECT,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(testJwtPrivateKey)
	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}
	return token
}

// hmacToken signs a token with HS256, which VerifyToken must reject.
func hmacToken(t *testing.T) string {
	t.Helper()

	claims := Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    ISSUER,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("shared-secret"))
	if err != nil {
		t.Fatalf("failed to sign HMAC token: %v", err)
	}
	return token
}
