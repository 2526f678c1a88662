package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CSU-ITMO-2025-2/team7/internal/api"
	"github.com/CSU-ITMO-2025-2/team7/internal/config"
	"github.com/CSU-ITMO-2025-2/team7/internal/models"
	"github.com/CSU-ITMO-2025-2/team7/internal/session"
)

func newTestClient(t *testing.T, control, artifacts *httptest.Server) (api.Client, session.Store) {
	t.Helper()
	cfg := &config.Config{
		ControlAPIURL:   control.URL,
		ArtifactsAPIURL: artifacts.URL,
	}
	store := session.NewMemStore()
	client, err := api.New(cfg, store)
	require.NoError(t, err)
	return client, store
}

func emptyServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected call to %s %s", r.Method, r.URL.Path)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRegister(t *testing.T) {
	control := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds.Login)
		assert.Equal(t, "secret1", creds.Password)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.User{ID: 1, Login: "alice"})
	}))
	defer control.Close()

	client, _ := newTestClient(t, control, emptyServer(t))

	user, err := client.Register(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "alice", user.Login)
}

func TestRegister_DuplicateLogin(t *testing.T) {
	control := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "login already exists"}`))
	}))
	defer control.Close()

	client, _ := newTestClient(t, control, emptyServer(t))

	_, err := client.Register(context.Background(), "alice", "secret1")
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "login already exists", apiErr.Message)
}

func TestLogin_StoresToken(t *testing.T) {
	control := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "alice", r.PostForm.Get("username"))
		assert.Equal(t, "secret1", r.PostForm.Get("password"))

		json.NewEncoder(w).Encode(models.Token{AccessToken: "tok-abc", TokenType: "bearer"})
	}))
	defer control.Close()

	client, store := newTestClient(t, control, emptyServer(t))

	token, err := client.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.True(t, store.IsAuthenticated())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	control := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "invalid credentials"}`))
	}))
	defer control.Close()

	client, store := newTestClient(t, control, emptyServer(t))

	_, err := client.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
	assert.False(t, store.IsAuthenticated())
}

func TestBearerHeader_AttachedWhenAuthenticated(t *testing.T) {
	control := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(models.User{ID: 1, Login: "alice"})
	}))
	defer control.Close()

	client, store := newTestClient(t, control, emptyServer(t))
	require.NoError(t, store.SetToken("tok-abc"))

	_, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
}

func TestBearerHeader_AbsentAfterLogout(t *testing.T) {
	control := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "invalid token"}`))
	}))
	defer control.Close()

	client, store := newTestClient(t, control, emptyServer(t))
	require.NoError(t, store.SetToken("tok-abc"))
	require.NoError(t, store.Clear())

	_, err := client.CurrentUser(context.Background())
	require.Error(t, err)
}

func TestUnauthorized_ClearsSession(t *testing.T) {
	control := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "invalid token"}`))
	}))
	defer control.Close()

	client, store := newTestClient(t, control, emptyServer(t))
	require.NoError(t, store.SetToken("expired"))

	_, err := client.CurrentUser(context.Background())
	require.Error(t, err)
	assert.False(t, store.IsAuthenticated(), "an auth failure must drop the stored session")
}

func TestListRuns_NewestFirstOrderPreserved(t *testing.T) {
	control := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/runs", r.URL.Path)
		w.Write([]byte(`[
			{"id": 3, "dataset_id": 1, "status": "in queue", "configuration": {"model": "m", "hyperparameters": {}}, "created_at": "2025-08-25T12:00:00Z"},
			{"id": 2, "dataset_id": 1, "status": "completed", "configuration": {"model": "m", "hyperparameters": {}}, "created_at": "2025-08-24T12:00:00Z"}
		]`))
	}))
	defer control.Close()

	client, store := newTestClient(t, control, emptyServer(t))
	store.SetToken("tok")

	runs, err := client.ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 3, runs[0].ID)
	assert.Equal(t, models.RunStatusInQueue, runs[0].Status)
	assert.Equal(t, models.RunStatusCompleted, runs[1].Status)
}

func TestCreateRun(t *testing.T) {
	control := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/runs", r.URL.Path)

		var req models.RunCreate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 7, req.DatasetID)
		assert.Equal(t, "LinearRegression", req.Configuration.Model)
		assert.Equal(t, "1.0", req.Configuration.Hyperparameters["alpha"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Run{
			ID: 11, DatasetID: 7, Status: models.RunStatusInQueue,
			Configuration: req.Configuration,
		})
	}))
	defer control.Close()

	client, store := newTestClient(t, control, emptyServer(t))
	store.SetToken("tok")

	run, err := client.CreateRun(context.Background(), models.RunCreate{
		DatasetID: 7,
		Configuration: models.RunConfiguration{
			Model:           "LinearRegression",
			Hyperparameters: map[string]string{"alpha": "1.0"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 11, run.ID)
	assert.Equal(t, models.RunStatusInQueue, run.Status)
}

func TestListModels_CatalogShape(t *testing.T) {
	control := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.Write([]byte(`{"models": [
			{"name": "LinearRegression", "parameters": [
				{"name": "tol", "type": "float", "default": 1e-6, "min": 0.0},
				{"name": "fit_intercept", "type": "bool", "default": true, "options": [true, false]}
			]},
			{"name": "RandomForestRegressor", "parameters": [
				{"name": "max_depth", "type": "int", "default": null, "min": 1, "nullable": true}
			]}
		]}`))
	}))
	defer control.Close()

	client, _ := newTestClient(t, control, emptyServer(t))

	specs, err := client.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, specs, 2)

	assert.Equal(t, "LinearRegression", specs[0].Name)
	tol, ok := specs[0].Param("tol")
	require.True(t, ok)
	assert.Equal(t, models.ParamFloat, tol.Type)
	assert.Equal(t, "1e-6", models.RawValueString(tol.Default))

	depth, ok := specs[1].Param("max_depth")
	require.True(t, ok)
	assert.True(t, depth.Nullable)
	assert.Equal(t, "", models.RawValueString(depth.Default))
}
