package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Signup registers a new user.
func (c *Client) Signup(email, password string) (*UserPublic, error) {
	data, err := c.post(prefix+"/users/signup", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return decode[UserPublic](data)
}

// Login exchanges credentials for a bearer token. The store expects an
// OAuth2 password form, not JSON.
func (c *Client) Login(email, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequest(http.MethodPost, c.baseURL+prefix+"/users/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	return decode[Token](data)
}
