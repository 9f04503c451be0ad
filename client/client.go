// Package client is a Go client for the library API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/you/librarysvc/domain"
)

// ErrNotAuthenticated is returned when an authenticated call is made without a session
var ErrNotAuthenticated = errors.New("client: no session")

// APIError is a non-2xx response decoded from the error envelope
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the API. The refresh cookie is kept in its cookie jar.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL (for example http://localhost:8080).
// A nil httpClient gets a default client; a client without a jar is given one.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		httpClient.Jar = jar
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/") + "/api", http: httpClient}, nil
}

type envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type errorData struct {
	Errors map[string]string `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path string, sess *Session, in, out interface{}) error {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if sess.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var env envelope[*errorData]
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(&env); err == nil {
			apiErr.Message = env.Message
			if env.Data != nil {
				apiErr.Fields = env.Data.Errors
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ListParams selects a page of a collection
type ListParams struct {
	Page      int
	Limit     int
	SearchKey string
}

func (p ListParams) query() string {
	v := url.Values{}
	if p.Page != 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit != 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.SearchKey != "" {
		v.Set("searchKey", p.SearchKey)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// RegisterParams is the sign-up form
type RegisterParams struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Register creates a disabled account and triggers the activation mail
func (c *Client) Register(ctx context.Context, p RegisterParams) (*domain.User, error) {
	var env envelope[struct {
		User *domain.User `json:"user"`
	}]
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, p, &env); err != nil {
		return nil, err
	}
	return env.Data.User, nil
}

// Activate enables an account with the mailed code
func (c *Client) Activate(ctx context.Context, email, code string) (*domain.User, error) {
	var env envelope[struct {
		User *domain.User `json:"user"`
	}]
	in := map[string]string{"email": email, "code": code}
	if err := c.do(ctx, http.MethodPost, "/auth/activate", nil, in, &env); err != nil {
		return nil, err
	}
	return env.Data.User, nil
}

// Login authenticates and returns a new session; the refresh cookie is stored in the jar
func (c *Client) Login(ctx context.Context, email, password string) (*Session, *domain.User, error) {
	var env envelope[struct {
		User        *domain.User `json:"user"`
		AccessToken string       `json:"accessToken"`
	}]
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, in, &env); err != nil {
		return nil, nil, err
	}
	sess, err := NewSession(env.Data.AccessToken)
	if err != nil {
		return nil, nil, err
	}
	return sess, env.Data.User, nil
}

// Refresh exchanges the refresh cookie for a new session
func (c *Client) Refresh(ctx context.Context) (*Session, error) {
	var env envelope[struct {
		AccessToken string `json:"accessToken"`
	}]
	if err := c.do(ctx, http.MethodPost, "/auth/refresh-token", nil, nil, &env); err != nil {
		return nil, err
	}
	return NewSession(env.Data.AccessToken)
}

// Logout clears the refresh cookie on the server side
func (c *Client) Logout(ctx context.Context, sess *Session) error {
	if !sess.Authenticated() {
		return ErrNotAuthenticated
	}
	return c.do(ctx, http.MethodPost, "/auth/logout", sess, nil, nil)
}

// ListBooks returns a page of the public catalog
func (c *Client) ListBooks(ctx context.Context, p ListParams) (*domain.Page[domain.Book], error) {
	var env envelope[struct {
		Books []domain.Book   `json:"books"`
		Meta  domain.PageMeta `json:"meta"`
	}]
	if err := c.do(ctx, http.MethodGet, "/books"+p.query(), nil, nil, &env); err != nil {
		return nil, err
	}
	return &domain.Page[domain.Book]{Items: env.Data.Books, Meta: env.Data.Meta}, nil
}

// CreateBook adds a book; the session must belong to an administrator
func (c *Client) CreateBook(ctx context.Context, sess *Session, book domain.Book) (*domain.Book, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	var env envelope[struct {
		Book *domain.Book `json:"book"`
	}]
	in := map[string]string{
		"name":            book.Name,
		"author":          book.Author,
		"publisher":       book.Publisher,
		"publicationYear": book.PublicationYear,
		"subject":         book.Subject,
	}
	if err := c.do(ctx, http.MethodPost, "/books", sess, in, &env); err != nil {
		return nil, err
	}
	return env.Data.Book, nil
}

// CreateBooking books bookID for the session user
func (c *Client) CreateBooking(ctx context.Context, sess *Session, bookID uint, endDate time.Time, price float64) (*domain.Booking, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	var env envelope[struct {
		Booking *domain.Booking `json:"booking"`
	}]
	in := map[string]interface{}{
		"bookId":  bookID,
		"endDate": endDate.UTC().Format(time.RFC3339),
		"price":   price,
	}
	if err := c.do(ctx, http.MethodPost, "/bookings", sess, in, &env); err != nil {
		return nil, err
	}
	return env.Data.Booking, nil
}

// ListBookings returns the session user's bookings, or every booking for an administrator
func (c *Client) ListBookings(ctx context.Context, sess *Session, p ListParams) (*domain.Page[domain.Booking], error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	var env envelope[struct {
		Bookings []domain.Booking `json:"bookings"`
		Meta     domain.PageMeta  `json:"meta"`
	}]
	if err := c.do(ctx, http.MethodGet, "/bookings"+p.query(), sess, nil, &env); err != nil {
		return nil, err
	}
	return &domain.Page[domain.Booking]{Items: env.Data.Bookings, Meta: env.Data.Meta}, nil
}

// DeleteBooking cancels a booking
func (c *Client) DeleteBooking(ctx context.Context, sess *Session, id string) error {
	if !sess.Authenticated() {
		return ErrNotAuthenticated
	}
	return c.do(ctx, http.MethodDelete, "/bookings/"+url.PathEscape(id), sess, nil, nil)
}

// Profile returns the session user's account
func (c *Client) Profile(ctx context.Context, sess *Session) (*domain.User, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	var env envelope[struct {
		User *domain.User `json:"user"`
	}]
	if err := c.do(ctx, http.MethodGet, "/user/profile", sess, nil, &env); err != nil {
		return nil, err
	}
	return env.Data.User, nil
}
