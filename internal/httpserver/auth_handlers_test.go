package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakhama/costume_rental/internal/models"
	"github.com/fakhama/costume_rental/internal/transport"
)

func TestRegisterAndLoginFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	body := `{"name":"Amina","surname":"El Fassi","email":"amina@test.com","phone":"0600000000","password":"secret123"}`
	rec := env.doJSON(t, http.MethodPost, "/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "client", user.Role)
	assert.NotContains(t, rec.Body.String(), "secret123")

	rec = env.doJSON(t, http.MethodPost, "/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/auth/login", "", `{"email":"amina@test.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login transport.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	rec = env.do(t, http.MethodGet, "/profile", login.Token, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var profile transport.ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.NotNil(t, profile.User)
	assert.Equal(t, "amina@test.com", profile.User.Email)
	assert.Nil(t, profile.ActiveRental)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing password", body: `{"name":"Amina","email":"amina@test.com"}`},
		{name: "short password", body: `{"name":"Amina","email":"amina@test.com","password":"123"}`},
		{name: "bad email", body: `{"name":"Amina","email":"not-an-email","password":"secret123"}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := env.doJSON(t, http.MethodPost, "/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/auth/register", "",
		`{"name":"Amina","email":"amina@test.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/auth/login", "", `{"email":"amina@test.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfile_RequiresToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/profile", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/profile", "not-a-jwt", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	user := env.seedUser(t, "client@test.com", "client")
	token := env.token(t, user)

	rec := env.doJSON(t, http.MethodPut, "/profile", token, `{"name":"Amira","phone":"0611111111"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Amira", updated.Name)
	assert.Equal(t, "0611111111", updated.Phone)
	assert.Equal(t, "client@test.com", updated.Email)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.token(t, env.seedUser(t, "client@test.com", "client"))

	rec := env.do(t, http.MethodPost, "/logout", token, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
