package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/driveassist/auth-server/internal/model"
)

const (
	defaultGoogleAuthURL     = "https://accounts.google.com/o/oauth2/auth"
	defaultGoogleTokenURL    = "https://oauth2.googleapis.com/token"
	defaultGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v1/userinfo"
)

// GoogleConfig contains Google OAuth client parameters. The endpoint
// URLs are overridable for tests.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	AuthURL     string
	TokenURL    string
	UserInfoURL string
}

// Google implements ProviderClient for Google OAuth2. It performs no
// retries and holds no state beyond its configuration.
type Google struct {
	config GoogleConfig
	client *http.Client
}

// NewGoogle creates a Google provider client. The HTTP client must
// carry the configured provider timeout.
func NewGoogle(config GoogleConfig, client *http.Client) *Google {
	if config.AuthURL == "" {
		config.AuthURL = defaultGoogleAuthURL
	}
	if config.TokenURL == "" {
		config.TokenURL = defaultGoogleTokenURL
	}
	if config.UserInfoURL == "" {
		config.UserInfoURL = defaultGoogleUserInfoURL
	}
	return &Google{config: config, client: client}
}

var _ model.ProviderClient = (*Google)(nil)

// LoginURL builds the consent screen URL. access_type=offline asks
// Google for a refresh token on first consent.
func (g *Google) LoginURL(state string) string {
	params := url.Values{
		"client_id":     {g.config.ClientID},
		"redirect_uri":  {g.config.RedirectURI},
		"response_type": {"code"},
		"scope":         {"openid email profile https://www.googleapis.com/auth/drive.readonly"},
		"state":         {state},
		"access_type":   {"offline"},
	}
	return g.config.AuthURL + "?" + params.Encode()
}

type googleTokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ExchangeCode sends the authorization code to the token endpoint.
func (g *Google) ExchangeCode(ctx context.Context, code string) (model.ProviderTokens, error) {
	data := url.Values{
		"code":          {code},
		"client_id":     {g.config.ClientID},
		"client_secret": {g.config.ClientSecret},
		"redirect_uri":  {g.config.RedirectURI},
		"grant_type":    {"authorization_code"},
	}

	return g.tokenRequest(ctx, "code exchange", data)
}

// RefreshToken sends a refresh-grant request. A provider rejection
// here means the refresh token itself is invalid or revoked; the
// caller must not retry and must force a full re-login.
func (g *Google) RefreshToken(ctx context.Context, refreshToken string) (model.ProviderTokens, error) {
	data := url.Values{
		"client_id":     {g.config.ClientID},
		"client_secret": {g.config.ClientSecret},
		"refresh_token": {refreshToken},
		"grant_type":    {"refresh_token"},
	}

	return g.tokenRequest(ctx, "token refresh", data)
}

// FetchIdentity calls the userinfo endpoint with a bearer header.
func (g *Google) FetchIdentity(ctx context.Context, accessToken string) (model.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.config.UserInfoURL, nil)
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.client.Do(req)
	if err != nil {
		return model.Identity{}, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to read userinfo response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return model.Identity{}, &Error{Operation: "userinfo", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var info googleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return model.Identity{}, fmt.Errorf("failed to parse userinfo response: %w", err)
	}

	if info.Email == "" {
		return model.Identity{}, fmt.Errorf("empty email in userinfo response")
	}

	displayName := info.Name
	if displayName == "" {
		displayName = strings.SplitN(info.Email, "@", 2)[0]
	}

	return model.Identity{
		ExternalID:  info.ID,
		Email:       info.Email,
		DisplayName: displayName,
	}, nil
}

func (g *Google) tokenRequest(ctx context.Context, operation string, data url.Values) (model.ProviderTokens, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return model.ProviderTokens{}, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return model.ProviderTokens{}, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.ProviderTokens{}, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return model.ProviderTokens{}, &Error{Operation: operation, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tokenResp googleTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return model.ProviderTokens{}, fmt.Errorf("failed to parse token response: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return model.ProviderTokens{}, fmt.Errorf("empty access token in response")
	}

	return model.ProviderTokens{
		Access:  tokenResp.AccessToken,
		Refresh: tokenResp.RefreshToken,
	}, nil
}
