package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"flightdesk-service/internal/domain/entity"
	"flightdesk-service/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const defaultUserURL = "https://discord.com/api/users/@me"

// DiscordOAuth handles OAuth authentication with Discord
type DiscordOAuth struct {
	config  *oauth2.Config
	userURL string
	logger  logger.Logger
}

// NewDiscordOAuth creates a new Discord OAuth handler
func NewDiscordOAuth(clientID, clientSecret, redirectURI string, logger logger.Logger) *DiscordOAuth {
	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{"identify"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://discord.com/api/oauth2/authorize",
			TokenURL: "https://discord.com/api/oauth2/token",
		},
	}

	return &DiscordOAuth{
		config:  config,
		userURL: defaultUserURL,
		logger:  logger,
	}
}

// NewState returns a fresh nonce for the authorize redirect
func NewState() string {
	return uuid.NewString()
}

// AuthURL generates a URL for the user to authorize the application
func (o *DiscordOAuth) AuthURL(state string) string {
	return o.config.AuthCodeURL(state)
}

// ExchangeCode exchanges an authorization code for a token
func (o *DiscordOAuth) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := o.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	return token, nil
}

// FetchIdentity retrieves the authenticated user's identity with the token
func (o *DiscordOAuth) FetchIdentity(ctx context.Context, token *oauth2.Token) (entity.Identity, error) {
	client := o.config.Client(ctx, token)

	resp, err := client.Get(o.userURL)
	if err != nil {
		return entity.Identity{}, fmt.Errorf("failed to fetch identity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.Identity{}, fmt.Errorf("identity endpoint returned status %d", resp.StatusCode)
	}

	var identity entity.Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return entity.Identity{}, fmt.Errorf("failed to decode identity: %w", err)
	}
	if identity.ID == "" {
		return entity.Identity{}, fmt.Errorf("identity response missing id")
	}
	return identity, nil
}

// Exchange performs the full code-for-identity exchange
func (o *DiscordOAuth) Exchange(ctx context.Context, code string) (entity.Identity, error) {
	token, err := o.ExchangeCode(ctx, code)
	if err != nil {
		return entity.Identity{}, err
	}
	identity, err := o.FetchIdentity(ctx, token)
	if err != nil {
		return entity.Identity{}, err
	}
	o.logger.Debug("Identity exchanged", "userId", identity.ID)
	return identity, nil
}
