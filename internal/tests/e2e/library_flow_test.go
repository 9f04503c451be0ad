package e2e

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/librarysvc/client"
	"github.com/you/librarysvc/domain"
)

func apiStatus(t *testing.T, err error) int {
	t.Helper()
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	return apiErr.StatusCode
}

func TestRegistrationAndLogin(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	cl := env.newClient(t)

	user, err := cl.Register(ctx, client.RegisterParams{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@library.test",
		Password:  "Secret#1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDisabled, user.Status)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, env.Redis.Exists("otp:res:"+string(domain.PurposeActivation)+":jane@library.test"))

	t.Run("login before activation is refused", func(t *testing.T) {
		_, _, err := cl.Login(ctx, "jane@library.test", "Secret#1")
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apiStatus(t, err))
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		_, err := cl.Register(ctx, client.RegisterParams{
			FirstName: "Jane",
			LastName:  "Again",
			Email:     "jane@library.test",
			Password:  "Secret#1",
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, apiStatus(t, err))
	})

	t.Run("wrong activation code", func(t *testing.T) {
		wrong := "000000"
		if env.Mail.lastCode(t, "jane@library.test") == wrong {
			wrong = "111111"
		}
		_, err := cl.Activate(ctx, "jane@library.test", wrong)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apiStatus(t, err))
	})

	activated, err := cl.Activate(ctx, "jane@library.test", env.Mail.lastCode(t, "jane@library.test"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEnabled, activated.Status)

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := cl.Login(ctx, "jane@library.test", "Wrong#123")
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, apiStatus(t, err))
	})

	sess, me, err := cl.Login(ctx, "jane@library.test", "Secret#1")
	require.NoError(t, err)
	assert.Equal(t, me.ID, sess.UserID)
	assert.False(t, sess.IsAdmin())

	profile, err := cl.Profile(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, "jane@library.test", profile.Email)

	refreshed, err := cl.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, refreshed.UserID)
	assert.NotEmpty(t, refreshed.AccessToken)

	require.NoError(t, cl.Logout(ctx, refreshed))
	_, err = cl.Refresh(ctx)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apiStatus(t, err))
}

func TestRefreshWithoutCookie(t *testing.T) {
	env := setupEnv(t)

	_, err := env.newClient(t).Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apiStatus(t, err))
}

func TestBookAndBookingFlow(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	adminClient := env.newClient(t)
	adminSess, _, err := adminClient.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err)
	require.True(t, adminSess.IsAdmin())

	memberClient := env.newClient(t)
	env.registerActive(t, memberClient, "reader@library.test", "Reader#1")
	memberSess, _, err := memberClient.Login(ctx, "reader@library.test", "Reader#1")
	require.NoError(t, err)

	dune := domain.Book{
		Name:            "Dune",
		Author:          "Frank Herbert",
		Publisher:       "Chilton",
		PublicationYear: "1965",
		Subject:         "Science fiction",
	}

	t.Run("members cannot add books", func(t *testing.T) {
		_, err := memberClient.CreateBook(ctx, memberSess, dune)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apiStatus(t, err))
	})

	book, err := adminClient.CreateBook(ctx, adminSess, dune)
	require.NoError(t, err)
	require.NotZero(t, book.ID)

	t.Run("duplicate book name", func(t *testing.T) {
		_, err := adminClient.CreateBook(ctx, adminSess, dune)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apiStatus(t, err))
	})

	catalog, err := memberClient.ListBooks(ctx, client.ListParams{SearchKey: "dun"})
	require.NoError(t, err)
	require.Len(t, catalog.Items, 1)
	assert.Equal(t, int64(1), catalog.Meta.Total)

	t.Run("invalid page", func(t *testing.T) {
		_, err := memberClient.ListBooks(ctx, client.ListParams{Page: -1})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apiStatus(t, err))
	})

	booking, err := memberClient.CreateBooking(ctx, memberSess, book.ID, time.Now().Add(72*time.Hour), 4.5)
	require.NoError(t, err)
	assert.Equal(t, memberSess.UserID, booking.UserID)
	assert.Equal(t, book.ID, booking.BookID)

	t.Run("booking an unknown book", func(t *testing.T) {
		_, err := memberClient.CreateBooking(ctx, memberSess, book.ID+100, time.Now().Add(time.Hour), 1)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apiStatus(t, err))
	})

	mine, err := memberClient.ListBookings(ctx, memberSess, client.ListParams{})
	require.NoError(t, err)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, booking.ID, mine.Items[0].ID)

	all, err := adminClient.ListBookings(ctx, adminSess, client.ListParams{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 1)

	t.Run("other members cannot cancel", func(t *testing.T) {
		otherClient := env.newClient(t)
		env.registerActive(t, otherClient, "other@library.test", "Other#12")
		otherSess, _, err := otherClient.Login(ctx, "other@library.test", "Other#12")
		require.NoError(t, err)

		err = otherClient.DeleteBooking(ctx, otherSess, booking.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apiStatus(t, err))
	})

	require.NoError(t, memberClient.DeleteBooking(ctx, memberSess, booking.ID))

	mine, err = memberClient.ListBookings(ctx, memberSess, client.ListParams{})
	require.NoError(t, err)
	assert.Empty(t, mine.Items)
}

func TestUnauthenticatedCalls(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	cl := env.newClient(t)

	_, err := cl.Profile(ctx, nil)
	assert.ErrorIs(t, err, client.ErrNotAuthenticated)

	_, err = cl.Profile(ctx, &client.Session{AccessToken: "garbage"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apiStatus(t, err))
}

func TestHealthAndMetrics(t *testing.T) {
	env := setupEnv(t)

	resp, err := http.Get(env.Server.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(env.Server.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
