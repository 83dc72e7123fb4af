package httpx

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/oauth"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/Gauri-theanalyst/quick-insight-pulse/config"
)

func NewBearerServer(cfg config.Config) *oauth.BearerServer {
	return oauth.NewBearerServer(cfg.TokenSecret, cfg.TokenTTL, CredentialsVerifier(cfg), nil)
}

// credentialsVerifier authenticates the single admin user against the
// bcrypt hash from configuration. Refresh tokens are tracked in memory,
// a restart simply forces a new login.
type credentialsVerifier struct {
	passwordHash []byte

	mu     sync.Mutex
	tokens map[string]time.Time
}

func CredentialsVerifier(cfg config.Config) oauth.CredentialsVerifier {
	return &credentialsVerifier{
		passwordHash: []byte(cfg.AdminPasswordHash),
		tokens:       map[string]time.Time{},
	}
}

func (cs *credentialsVerifier) ValidateUser(username string, password string, scope string, r *http.Request) error {
	if username != "admin" {
		return errors.New("unknown user")
	}
	return bcrypt.CompareHashAndPassword(cs.passwordHash, []byte(password))
}

func (cs *credentialsVerifier) StoreTokenID(tokenType oauth.TokenType, credential string, tokenID string, refreshTokenID string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.tokens[refreshTokenID] = time.Now().Add(8760 * time.Hour)
	return nil
}

func (cs *credentialsVerifier) ValidateTokenID(tokenType oauth.TokenType, credential string, tokenID string, refreshTokenID string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	expiration, ok := cs.tokens[refreshTokenID]
	delete(cs.tokens, refreshTokenID)
	if !ok || expiration.Before(time.Now()) {
		return errors.New("could not refresh")
	}
	return nil
}

func (*credentialsVerifier) AddClaims(tokenType oauth.TokenType, credential string, tokenID string, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{"roles": "admin"}, nil
}

func (*credentialsVerifier) AddProperties(tokenType oauth.TokenType, credential string, tokenID string, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{}, nil
}

func (*credentialsVerifier) ValidateClient(clientID string, clientSecret string, scope string, r *http.Request) error {
	return errors.New("not supported")
}
