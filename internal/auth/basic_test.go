package auth

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/account-service/internal/apperror"
	"github.com/sakif/account-service/internal/model"
	"github.com/sakif/account-service/internal/repository"
)

// stubAccountRepo serves a single fixed account from memory.
type stubAccountRepo struct {
	account *model.Account
}

func (s *stubAccountRepo) FindByID(_ context.Context, id string) (*model.Account, error) {
	if s.account == nil || s.account.UserID != id {
		return nil, apperror.NotFound()
	}
	result := *s.account
	return &result, nil
}

func (s *stubAccountRepo) Insert(context.Context, *model.Account) error { return nil }

func (s *stubAccountRepo) UpdateFields(context.Context, string, repository.AccountUpdate) error {
	return nil
}

func (s *stubAccountRepo) Delete(context.Context, string) error { return nil }

func newBasicTestServer(t *testing.T) http.Handler {
	t.Helper()

	passwords := NewPasswordService(bcrypt.MinCost)
	hash, err := passwords.Hash("validpass1")
	if err != nil {
		t.Fatalf("hashing fixture password: %v", err)
	}

	repo := &stubAccountRepo{account: &model.Account{
		UserID:       "TaroYamada",
		PasswordHash: hash,
		Nickname:     "TaroYamada",
	}}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	protected := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Error("protected handler reached without identity in context")
		}
		w.Write([]byte(userID))
	})

	return Basic(repo, passwords, logger)(protected)
}

func basicHeader(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestBasic_ValidCredentials(t *testing.T) {
	h := newBasicTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/users/TaroYamada", nil)
	req.Header.Set("Authorization", basicHeader("TaroYamada", "validpass1"))
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "TaroYamada", rr.Body.String())
}

func TestBasic_RejectionPathsAreIdentical(t *testing.T) {
	h := newBasicTestServer(t)

	// Every rejection must be byte-identical so a caller cannot tell an
	// unknown user from a wrong password.
	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Bearer abcdef"},
		{"not base64", "Basic %%%%"},
		{"no delimiter", "Basic " + base64.StdEncoding.EncodeToString([]byte("TaroYamada"))},
		{"empty user", basicHeader("", "validpass1")},
		{"empty password", basicHeader("TaroYamada", "")},
		{"unknown user", basicHeader("NoSuchUser", "validpass1")},
		{"wrong password", basicHeader("TaroYamada", "wrongpass1")},
	}

	var bodies []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/TaroYamada", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()

			h.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.JSONEq(t, `{"message":"Authentication failed"}`, rr.Body.String())
			bodies = append(bodies, rr.Body.String())
		})
	}

	for i := 1; i < len(bodies); i++ {
		assert.Equal(t, bodies[0], bodies[i], "rejection bodies must be byte-identical")
	}
}

func TestUserIDFromContext_Empty(t *testing.T) {
	id, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)
	assert.Empty(t, id)
}
