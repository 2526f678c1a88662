package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/CSU-ITMO-2025-2/team7/internal/models"
)

func (c *client) Register(ctx context.Context, login, password string) (models.User, error) {
	var user models.User
	payload := models.Credentials{Login: login, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, apipath(c.controlAPI, "auth", "register"), payload, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login speaks the OAuth2 password flow of the control API: a URL-encoded
// form with username/password fields. The received token replaces whatever
// the session store held before.
func (c *client) Login(ctx context.Context, login, password string) (models.Token, error) {
	form := url.Values{}
	form.Set("username", login)
	form.Set("password", password)

	var token models.Token
	if err := c.doForm(ctx, http.MethodPost, apipath(c.controlAPI, "auth", "login"), form, &token); err != nil {
		return models.Token{}, err
	}
	if err := c.session.SetToken(token.AccessToken); err != nil {
		return models.Token{}, err
	}
	return token, nil
}

func (c *client) CurrentUser(ctx context.Context) (models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodGet, apipath(c.controlAPI, "auth", "me"), nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
