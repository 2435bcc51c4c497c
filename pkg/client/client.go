// Package client is a small Go SDK for the portfolio API. It mirrors how the
// public site and the admin panel talk to the server: public reads never fail
// visibly, admin mutations carry the shared secret on every call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// Sentinel errors returned by Session operations and VerifyPassword. Match
// with errors.Is.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("entry not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Entry mirrors the server's entry shape.
type Entry struct {
	ID          string   `json:"id"`
	Section     string   `json:"section"`
	Title       string   `json:"title"`
	Subtitle    *string  `json:"subtitle"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	Link        *string  `json:"link"`
	ImageURL    *string  `json:"image_url"`
	SortOrder   int      `json:"sort_order"`
}

// EntryInput carries the writable fields of an entry.
type EntryInput struct {
	ID          string   `json:"id,omitempty"`
	Section     string   `json:"section"`
	Title       string   `json:"title"`
	Subtitle    *string  `json:"subtitle"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	Link        *string  `json:"link"`
	ImageURL    *string  `json:"image_url"`
	SortOrder   int      `json:"sort_order"`
}

// Client talks to a portfolio server. The zero value is not usable; use New.
// Client carries no credential; admin operations live on Session.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New returns a Client for the server at baseURL. The http.Client is used as
// given; set its Timeout if you need one.
func New(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Fetch returns the entries of a section for public rendering. Any failure,
// network, decode, or server-side, yields an empty slice so a broken backend
// renders as an empty page rather than an error page.
func (c *Client) Fetch(ctx context.Context, section string) []Entry {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/portfolio/"+url.PathEscape(section), nil)
	if err != nil {
		return []Entry{}
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return []Entry{}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return []Entry{}
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || env.Error != nil {
		return []Entry{}
	}
	var entries []Entry
	if err := json.Unmarshal(env.Data, &entries); err != nil || entries == nil {
		return []Entry{}
	}
	return entries
}

// VerifyPassword checks the admin secret against the server without touching
// stored content. On success it returns a Session holding the credential for
// subsequent mutations. Every failure, a rejected secret, an unreachable
// server, or a server fault, is ErrUnauthorized; callers cannot tell them
// apart, so a flaky network never looks different from a wrong password.
func (c *Client) VerifyPassword(ctx context.Context, password string) (*Session, error) {
	body, err := json.Marshal(map[string]string{"password": password})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/verify", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, ErrUnauthorized
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, ErrUnauthorized
	}
	return &Session{client: c, password: password}, nil
}

// Session is an authenticated admin handle. It keeps the verified credential
// and attaches it to every mutation, and caches the last fetched snapshot of
// the section it mutated. Session is not safe for concurrent use.
type Session struct {
	client   *Client
	password string
	entries  []Entry
}

// Entries returns the snapshot refreshed by the last successful mutation.
func (s *Session) Entries() []Entry {
	return s.entries
}

// Logout drops the credential. The session is unusable afterwards.
func (s *Session) Logout() {
	s.password = ""
	s.entries = nil
}

type boundaryRequest struct {
	Action   string     `json:"action"`
	Password string     `json:"password"`
	Item     EntryInput `json:"item"`
}

// Create adds an entry and refreshes the session snapshot for its section.
func (s *Session) Create(ctx context.Context, item EntryInput) (*Entry, error) {
	var created Entry
	if err := s.mutate(ctx, boundaryRequest{Action: "create", Password: s.password, Item: item}, &created); err != nil {
		return nil, err
	}
	s.entries = s.client.Fetch(ctx, item.Section)
	return &created, nil
}

// Update replaces an entry's fields and refreshes the session snapshot for
// its section. Omitted optional fields become null on the server.
func (s *Session) Update(ctx context.Context, item EntryInput) (*Entry, error) {
	var updated Entry
	if err := s.mutate(ctx, boundaryRequest{Action: "update", Password: s.password, Item: item}, &updated); err != nil {
		return nil, err
	}
	s.entries = s.client.Fetch(ctx, item.Section)
	return &updated, nil
}

// Delete removes an entry and refreshes the session snapshot for its section.
// Deleting an id that no longer exists succeeds.
func (s *Session) Delete(ctx context.Context, id, section string) error {
	if err := s.mutate(ctx, boundaryRequest{Action: "delete", Password: s.password, Item: EntryInput{ID: id}}, nil); err != nil {
		return err
	}
	s.entries = s.client.Fetch(ctx, section)
	return nil
}

func (s *Session) mutate(ctx context.Context, breq boundaryRequest, out any) error {
	body, err := json.Marshal(breq)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.baseURL+"/admin/portfolio", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s entry: %w", breq.Action, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		return ErrInvalidInput
	default:
		var msg struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&msg); err == nil && msg.Error != "" {
			return fmt.Errorf("%s entry: %s", breq.Action, msg.Error)
		}
		return fmt.Errorf("%s entry: unexpected status %d", breq.Action, resp.StatusCode)
	}
}

// UploadImage stores an image on the server and returns its public URL for
// use in a later Create or Update.
func (s *Session) UploadImage(ctx context.Context, filename string, payload io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(fw, payload); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.baseURL+"/admin/images", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Admin-Password", s.password)
	resp, err := s.client.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		var env struct {
			Data struct {
				URL string `json:"url"`
			} `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return "", fmt.Errorf("upload image: %w", err)
		}
		return env.Data.URL, nil
	case http.StatusUnauthorized:
		return "", ErrUnauthorized
	default:
		return "", fmt.Errorf("upload image: unexpected status %d", resp.StatusCode)
	}
}
