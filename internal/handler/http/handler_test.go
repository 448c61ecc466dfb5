package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/emreyozkan/SportConnect/internal/auth"
	"github.com/emreyozkan/SportConnect/internal/feed"
	handlerHttp "github.com/emreyozkan/SportConnect/internal/handler/http"
	"github.com/emreyozkan/SportConnect/internal/post"
	"github.com/emreyozkan/SportConnect/internal/user"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input auth.RegisterInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) Authorize(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) Home(ctx context.Context, userID uuid.UUID) (*feed.HomeView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*feed.HomeView), args.Error(1)
}

func (m *MockFeedService) Profile(ctx context.Context, userID uuid.UUID) (*feed.ProfileView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*feed.ProfileView), args.Error(1)
}

func (m *MockFeedService) UpdateBio(ctx context.Context, userID uuid.UUID, bio string) error {
	args := m.Called(ctx, userID, bio)
	return args.Error(0)
}

func (m *MockFeedService) CreatePost(ctx context.Context, userID uuid.UUID, content string) (*post.Post, error) {
	args := m.Called(ctx, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*post.Post), args.Error(1)
}

const testSecret = "test-secret"

func newTestRouter(t *testing.T, mockAuth *MockAuthService, mockFeed *MockFeedService) chi.Router {
	t.Helper()

	renderer, err := handlerHttp.NewRenderer()
	require.NoError(t, err)

	handler := handlerHttp.NewHandler(mockAuth, mockFeed, renderer, testSecret)
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func postForm(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// loginAndGetCookie runs a login request through the router and returns
// the issued session cookie.
func loginAndGetCookie(t *testing.T, router http.Handler, mockAuth *MockAuthService) *http.Cookie {
	t.Helper()

	mockAuth.On("Login", mock.Anything, "a@x.com", "p1").Return("issued-token", nil).Once()

	rr := postForm(router, "/login", url.Values{"email": {"a@x.com"}, "password": {"p1"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/", rr.Header().Get("Location"))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "sc_session", cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)
	return cookies[0]
}

func TestHandler_ProtectedPage_RedirectsWithoutSession(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := newTestRouter(t, mockAuth, new(MockFeedService))

	mockAuth.On("Authorize", mock.Anything, "").Return(uuid.Nil, auth.ErrUnauthorized)

	for _, path := range []string{"/", "/activities", "/profile"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code, path)
		assert.Equal(t, "/login", rr.Header().Get("Location"), path)
	}
}

func TestHandler_ProtectedAPI_Returns401WithoutSession(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := newTestRouter(t, mockAuth, new(MockFeedService))

	mockAuth.On("Authorize", mock.Anything, "").Return(uuid.Nil, auth.ErrUnauthorized)

	req := httptest.NewRequest(http.MethodPost, "/add-post", strings.NewReader(`{"content":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "Unauthorized", body["error"])
}

func TestHandler_TamperedCookieIsRejected(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := newTestRouter(t, mockAuth, new(MockFeedService))

	cookie := loginAndGetCookie(t, router, mockAuth)
	cookie.Value = "forged-token." + strings.SplitN(cookie.Value, ".", 2)[1]

	// A bad signature means the store is never consulted; the handler
	// sees no token at all.
	mockAuth.On("Authorize", mock.Anything, "").Return(uuid.Nil, auth.ErrUnauthorized)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestHandler_Register_Success(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := newTestRouter(t, mockAuth, new(MockFeedService))

	mockAuth.On("Register", mock.Anything, auth.RegisterInput{
		Email:           "a@x.com",
		Password:        "p1",
		ConfirmPassword: "p1",
		Fullname:        "A",
	}).Return(nil).Once()

	rr := postForm(router, "/register", url.Values{
		"email":           {"a@x.com"},
		"password":        {"p1"},
		"confirmPassword": {"p1"},
		"fullname":        {"A"},
	})

	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/login", rr.Header().Get("Location"))
	mockAuth.AssertExpectations(t)
}

func TestHandler_Register_MissingField(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := newTestRouter(t, mockAuth, new(MockFeedService))

	rr := postForm(router, "/register", url.Values{
		"email":    {"a@x.com"},
		"password": {"p1"},
	})

	require.Equal(t, http.StatusBadRequest, rr.Code)
	mockAuth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestHandler_Register_PasswordMismatch(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := newTestRouter(t, mockAuth, new(MockFeedService))

	mockAuth.On("Register", mock.Anything, mock.Anything).
		Return(auth.ErrPasswordMismatch).
		Once()

	rr := postForm(router, "/register", url.Values{
		"email":           {"a@x.com"},
		"password":        {"p1"},
		"confirmPassword": {"p2"},
		"fullname":        {"A"},
	})

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "Passwords do not match", body["error"])
}

func TestHandler_Register_DuplicateEmail(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := newTestRouter(t, mockAuth, new(MockFeedService))

	mockAuth.On("Register", mock.Anything, mock.Anything).
		Return(user.ErrEmailExists).
		Once()

	rr := postForm(router, "/register", url.Values{
		"email":           {"a@x.com"},
		"password":        {"p1"},
		"confirmPassword": {"p1"},
		"fullname":        {"A"},
	})

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "Email already in use", body["error"])
}

func TestHandler_Login_InvalidCredentials(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := newTestRouter(t, mockAuth, new(MockFeedService))

	mockAuth.On("Login", mock.Anything, "a@x.com", "wrong").
		Return("", auth.ErrInvalidCredentials).
		Once()

	rr := postForm(router, "/login", url.Values{"email": {"a@x.com"}, "password": {"wrong"}})

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "Invalid email or password", body["error"])
}

func TestHandler_AddPost_WithSession(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockFeed := new(MockFeedService)
	router := newTestRouter(t, mockAuth, mockFeed)

	cookie := loginAndGetCookie(t, router, mockAuth)
	userID := uuid.Must(uuid.NewV4())

	mockAuth.On("Authorize", mock.Anything, "issued-token").Return(userID, nil).Once()
	mockFeed.On("CreatePost", mock.Anything, userID, "hello").
		Return(&post.Post{
			ID:        uuid.Must(uuid.NewV4()),
			Content:   "hello",
			AuthorID:  userID,
			Author:    &user.Public{ID: userID, Fullname: "A", Email: "a@x.com"},
			CreatedAt: time.Now().UTC(),
		}, nil).
		Once()

	req := httptest.NewRequest(http.MethodPost, "/add-post", strings.NewReader(`{"content":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var created struct {
		Content string `json:"content"`
		Author  struct {
			Fullname string `json:"fullname"`
		} `json:"author"`
		CreatedAt time.Time `json:"createdAt"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "hello", created.Content)
	assert.Equal(t, "A", created.Author.Fullname)
	assert.False(t, created.CreatedAt.IsZero())
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestHandler_AddPost_EmptyContent(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockFeed := new(MockFeedService)
	router := newTestRouter(t, mockAuth, mockFeed)

	cookie := loginAndGetCookie(t, router, mockAuth)
	userID := uuid.Must(uuid.NewV4())

	mockAuth.On("Authorize", mock.Anything, "issued-token").Return(userID, nil).Once()
	mockFeed.On("CreatePost", mock.Anything, userID, "   ").
		Return(nil, feed.ErrEmptyContent).
		Once()

	req := httptest.NewRequest(http.MethodPost, "/add-post", strings.NewReader(`{"content":"   "}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_Home_RendersView(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockFeed := new(MockFeedService)
	router := newTestRouter(t, mockAuth, mockFeed)

	cookie := loginAndGetCookie(t, router, mockAuth)
	userID := uuid.Must(uuid.NewV4())

	mockAuth.On("Authorize", mock.Anything, "issued-token").Return(userID, nil).Once()
	mockFeed.On("Home", mock.Anything, userID).
		Return(&feed.HomeView{
			User: &user.Public{ID: userID, Fullname: "Home Tester", Email: "h@x.com"},
			SuggestedUsers: []feed.SuggestedUser{
				{Public: user.Public{ID: uuid.Must(uuid.NewV4()), Fullname: "A Friend"}, IsFriend: true},
			},
			Analytics: feed.Analytics{TotalUsers: 7, ActiveToday: 10, MostPopularActivity: "Running"},
			Posts: []feed.FeedPost{
				{ID: 1, Content: "sample", Author: feed.FeedAuthor{Fullname: "John Doe"}, CreatedAt: "1 hour ago"},
			},
		}, nil).
		Once()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Home Tester")
	assert.Contains(t, rr.Body.String(), "A Friend")
	assert.Contains(t, rr.Body.String(), "7 members")
}

func TestHandler_Profile_Renders(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockFeed := new(MockFeedService)
	router := newTestRouter(t, mockAuth, mockFeed)

	cookie := loginAndGetCookie(t, router, mockAuth)
	userID := uuid.Must(uuid.NewV4())
	owner := &user.Public{ID: userID, Fullname: "Profile Tester", Email: "p@x.com", Bio: "runner"}

	mockAuth.On("Authorize", mock.Anything, "issued-token").Return(userID, nil).Once()
	mockFeed.On("Profile", mock.Anything, userID).
		Return(&feed.ProfileView{
			User: owner,
			Posts: []post.Post{
				{ID: uuid.Must(uuid.NewV4()), Content: "my first run", Author: owner, CreatedAt: time.Now()},
			},
		}, nil).
		Once()

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Profile Tester")
	assert.Contains(t, rr.Body.String(), "my first run")
}

func TestHandler_UpdateBio_Redirects(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockFeed := new(MockFeedService)
	router := newTestRouter(t, mockAuth, mockFeed)

	cookie := loginAndGetCookie(t, router, mockAuth)
	userID := uuid.Must(uuid.NewV4())

	mockAuth.On("Authorize", mock.Anything, "issued-token").Return(userID, nil).Once()
	mockFeed.On("UpdateBio", mock.Anything, userID, "new bio").Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/update-bio", strings.NewReader(url.Values{"bio": {"new bio"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/profile", rr.Header().Get("Location"))
	mockFeed.AssertExpectations(t)
}

func TestHandler_Logout_ClearsCookie(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := newTestRouter(t, mockAuth, new(MockFeedService))

	cookie := loginAndGetCookie(t, router, mockAuth)

	mockAuth.On("Logout", mock.Anything, "issued-token").Return(nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/login", rr.Header().Get("Location"))

	cleared := rr.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, "sc_session", cleared[0].Name)
	assert.Less(t, cleared[0].MaxAge, 0)
	mockAuth.AssertExpectations(t)
}

func TestHandler_LoginAndRegisterPages_ArePublic(t *testing.T) {
	router := newTestRouter(t, new(MockAuthService), new(MockFeedService))

	for _, path := range []string{"/login", "/register"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/html", path)
	}
}
