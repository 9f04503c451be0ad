package e2e

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/librarysvc/client"
	"github.com/you/librarysvc/internal/app"
	"github.com/you/librarysvc/internal/config"
	"github.com/you/librarysvc/internal/infrastructure/database"
)

const (
	adminEmail    = "admin@library.test"
	adminPassword = "Admin#123"
)

var otpPattern = regexp.MustCompile(`\b(\d{6})\b`)

// mailbox captures outgoing mail so tests can read the one-time codes
type mailbox struct {
	mu    sync.Mutex
	codes map[string][]string
}

func newMailbox() *mailbox {
	return &mailbox{codes: map[string][]string{}}
}

func (m *mailbox) SendEmail(to, subject, textBody, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if match := otpPattern.FindStringSubmatch(textBody); match != nil {
		m.codes[to] = append(m.codes[to], match[1])
	}
	return nil
}

func (m *mailbox) lastCode(t *testing.T, email string) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	codes := m.codes[email]
	require.NotEmpty(t, codes, "no code mailed to %s", email)
	return codes[len(codes)-1]
}

// testEnv is a running server backed by in-memory SQLite and miniredis
type testEnv struct {
	Server    *httptest.Server
	Container *app.Container
	Mail      *mailbox
	Redis     *miniredis.Miniredis
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	mr := miniredis.RunT(t)
	rdb := database.NewRedis(mr.Addr(), "", 0)

	cfg := &config.Config{
		GinMode:           gin.TestMode,
		AccessSecret:      "e2e-access-secret",
		RefreshSecret:     "e2e-refresh-secret",
		JWTIssuer:         "librarysvc-e2e",
		AccessTTL:         15 * time.Minute,
		RefreshTTL:        24 * time.Hour,
		OTP_TTL:           10 * time.Minute,
		OTP_ResendWindow:  time.Minute,
		OTP_PurgeSchedule: "@every 1h",
		AdminEmail:        adminEmail,
		AdminPassword:     adminPassword,
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	mail := newMailbox()
	c := app.NewContainerWith(cfg, log, db, rdb, mail)
	require.NoError(t, c.SeedAdmin(context.Background()))

	srv := httptest.NewServer(c.Router())
	t.Cleanup(func() {
		srv.Close()
		c.Close()
	})

	return &testEnv{Server: srv, Container: c, Mail: mail, Redis: mr}
}

func (e *testEnv) newClient(t *testing.T) *client.Client {
	t.Helper()
	cl, err := client.New(e.Server.URL, nil)
	require.NoError(t, err)
	return cl
}

// registerActive signs up a member and activates the account with the mailed code
func (e *testEnv) registerActive(t *testing.T, cl *client.Client, email, password string) {
	t.Helper()
	ctx := context.Background()
	_, err := cl.Register(ctx, client.RegisterParams{
		FirstName: "Test",
		LastName:  "Member",
		Email:     email,
		Password:  password,
	})
	require.NoError(t, err)
	_, err = cl.Activate(ctx, email, e.Mail.lastCode(t, email))
	require.NoError(t, err)
}
