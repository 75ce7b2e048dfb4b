package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/calebwray/community-events/config"
	"github.com/calebwray/community-events/internal/helpers"
)

// Overridable in tests.
var (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type googleTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
}

type GoogleUser struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Login starts the Google OAuth flow: remember a single-use state with the
// caller's redirect target, then send the browser to the consent screen.
func Login(c *gin.Context) {
	redirect := c.DefaultQuery("redirect", "/dashboard")

	state := uuid.New().String()
	states.Save(state, redirect)

	params := url.Values{}
	params.Set("client_id", config.Conf.Google.ClientID)
	params.Set("redirect_uri", config.Conf.Google.RedirectURL)
	params.Set("response_type", "code")
	params.Set("scope", "openid email profile")
	params.Set("state", state)

	c.Redirect(http.StatusFound, googleAuthURL+"?"+params.Encode())
}

// Callback finishes the OAuth flow: consume the state, exchange the code,
// fetch the profile and issue the session cookie.
func Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing code or state.")
		return
	}

	redirect, ok := states.Consume(state)
	if !ok {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid or expired state.")
		return
	}

	accessToken, err := exchangeCode(code)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to exchange authorization code.")
		return
	}

	googleUser, err := fetchUserInfo(accessToken)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch user info.")
		return
	}

	ttl := time.Duration(config.Conf.Session.TTLHours) * time.Hour
	token, err := helpers.GenerateSessionToken(googleUser.Name, googleUser.Email, googleUser.Picture, config.Conf.Session.Secret, ttl)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate session token.")
		return
	}

	c.SetCookie(helpers.SessionCookieName, token, int(ttl.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, redirect)
}

func Logout(c *gin.Context) {
	c.SetCookie(helpers.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}

func exchangeCode(code string) (string, error) {
	data := url.Values{}
	data.Set("client_id", config.Conf.Google.ClientID)
	data.Set("client_secret", config.Conf.Google.ClientSecret)
	data.Set("code", code)
	data.Set("redirect_uri", config.Conf.Google.RedirectURL)
	data.Set("grant_type", "authorization_code")

	resp, err := http.PostForm(googleTokenURL, data)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading token response failed: %w", err)
	}

	var tokenResp googleTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("parsing token response failed: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("no access token in response: %s", string(body))
	}

	return tokenResp.AccessToken, nil
}

func fetchUserInfo(accessToken string) (*GoogleUser, error) {
	req, err := http.NewRequest(http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading userinfo response failed: %w", err)
	}

	var googleUser GoogleUser
	if err := json.Unmarshal(body, &googleUser); err != nil {
		return nil, fmt.Errorf("parsing userinfo response failed: %w", err)
	}
	if googleUser.Email == "" {
		return nil, fmt.Errorf("userinfo response missing email: %s", string(body))
	}

	return &googleUser, nil
}
