package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/upm-platform/complaint-service/internal/api/http/handlers"
	"github.com/upm-platform/complaint-service/internal/auth"
	"github.com/upm-platform/complaint-service/internal/config"
	"github.com/upm-platform/complaint-service/internal/domain"
	"github.com/upm-platform/complaint-service/internal/observability"
	"github.com/upm-platform/complaint-service/internal/service"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := r.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) UpdateSubmissionStats(_ context.Context, id string, lastSent time.Time, messagesToday int) error {
	if user, ok := r.users[id]; ok {
		user.LastSentDate = &lastSent
		user.MessagesToday = messagesToday
		return nil
	}
	return pgx.ErrNoRows
}

type stubComplaintRepo struct {
	complaints map[string]*domain.Complaint
	order      []string
}

func (r *stubComplaintRepo) Create(_ context.Context, complaint *domain.Complaint) error {
	complaint.ID = uuid.NewString()
	complaint.CreatedAt = time.Now()
	clone := *complaint
	r.complaints[complaint.ID] = &clone
	r.order = append(r.order, complaint.ID)
	return nil
}

func (r *stubComplaintRepo) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	if complaint, ok := r.complaints[id]; ok {
		clone := *complaint
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubComplaintRepo) ListByStudent(_ context.Context, studentID string) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for i := len(r.order) - 1; i >= 0; i-- {
		if complaint, ok := r.complaints[r.order[i]]; ok && complaint.StudentID == studentID {
			result = append(result, *complaint)
		}
	}
	return result, nil
}

func (r *stubComplaintRepo) ListAll(_ context.Context) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for i := len(r.order) - 1; i >= 0; i-- {
		if complaint, ok := r.complaints[r.order[i]]; ok {
			result = append(result, *complaint)
		}
	}
	return result, nil
}

func (r *stubComplaintRepo) CountForStudentOnDate(_ context.Context, studentID string, day time.Time) (int, error) {
	y, m, d := day.Date()
	count := 0
	for _, complaint := range r.complaints {
		cy, cm, cd := complaint.CreatedAt.Date()
		if complaint.StudentID == studentID && cy == y && cm == m && cd == d {
			count++
		}
	}
	return count, nil
}

func (r *stubComplaintRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.complaints[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.complaints, id)
	return nil
}

type stubResponseRepo struct {
	responses map[string]*domain.Response
	order     []string
}

func (r *stubResponseRepo) Create(_ context.Context, response *domain.Response) error {
	response.ID = uuid.NewString()
	response.CreatedAt = time.Now()
	clone := *response
	r.responses[response.ID] = &clone
	r.order = append(r.order, response.ID)
	return nil
}

func (r *stubResponseRepo) GetByID(_ context.Context, id string) (*domain.Response, error) {
	if response, ok := r.responses[id]; ok {
		clone := *response
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubResponseRepo) ListByComplaint(_ context.Context, complaintID string) ([]domain.Response, error) {
	var result []domain.Response
	for _, id := range r.order {
		if response, ok := r.responses[id]; ok && response.ComplaintID == complaintID {
			result = append(result, *response)
		}
	}
	return result, nil
}

func (r *stubResponseRepo) SetRating(_ context.Context, id string, rating int) error {
	if response, ok := r.responses[id]; ok {
		value := rating
		response.Rating = &value
		return nil
	}
	return pgx.ErrNoRows
}

func newTestApp() *fiber.App {
	users := &stubUserRepo{users: make(map[string]*domain.User)}
	complaints := &stubComplaintRepo{complaints: make(map[string]*domain.Complaint)}
	responses := &stubResponseRepo{responses: make(map[string]*domain.Response)}
	sessions := auth.NewMemorySessionStore()

	cfg := config.Config{
		Auth: config.AuthConfig{
			EmailDomain:    "upm.edu.sa",
			MinPasswordLen: 7,
			BcryptCost:     4,
		},
	}
	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo: users,
		Sessions: sessions,
	})
	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: complaints,
		ResponseRepo:  responses,
		UserRepo:      users,
		DailyLimit:    2,
		MinFieldLen:   3,
	})
	responseService := service.NewResponseService(service.ResponseDependencies{
		ComplaintRepo:  complaints,
		ResponseRepo:   responses,
		MinResponseLen: 4,
		RatingMin:      1,
		RatingMax:      5,
	})

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:     handlers.NewHealthHandler("test", "dev", nil, nil),
		Auth:       handlers.NewAuthHandler(authService, time.Hour),
		Complaints: handlers.NewComplaintsHandler(complaintService, responseService),
		Admin:      handlers.NewAdminHandler(complaintService, responseService),
		Session:    auth.NewSessionMiddleware(sessions, users),
	})
	return app
}

func jsonRequest(method, target string, body any) *stdhttp.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func signUp(t *testing.T, app *fiber.App, email string) *stdhttp.Cookie {
	t.Helper()
	req := jsonRequest(stdhttp.MethodPost, "/auth/sign-up", fiber.Map{
		"email":     email,
		"firstname": "Test",
		"password1": "secret1234",
		"password2": "secret1234",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, stdhttp.StatusCreated, resp.StatusCode)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.SessionCookie {
			return cookie
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestSignUpSubmitAndListFlow(t *testing.T) {
	app := newTestApp()
	cookie := signUp(t, app, "4410234@upm.edu.sa")

	req := jsonRequest(stdhttp.MethodPost, "/", fiber.Map{
		"title": "Wifi issue",
		"note":  "Wifi is down in block A",
	})
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, stdhttp.StatusCreated, resp.StatusCode)

	req = httptest.NewRequest(stdhttp.MethodGet, "/", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)

	var listing struct {
		Data []struct {
			Title string `json:"title"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listing))
	require.Len(t, listing.Data, 1)
	assert.Equal(t, "Wifi issue", listing.Data[0].Title)
}

func TestHomeRequiresStudent(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(stdhttp.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, stdhttp.StatusUnauthorized, resp.StatusCode)

	adminCookie := signUp(t, app, "ahmed@upm.edu.sa")
	req = httptest.NewRequest(stdhttp.MethodGet, "/", nil)
	req.AddCookie(adminCookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, stdhttp.StatusForbidden, resp.StatusCode)
}

func TestDashboardRequiresAdmin(t *testing.T) {
	app := newTestApp()
	studentCookie := signUp(t, app, "4410234@upm.edu.sa")

	req := httptest.NewRequest(stdhttp.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(studentCookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, stdhttp.StatusForbidden, resp.StatusCode)

	adminCookie := signUp(t, app, "ahmed@upm.edu.sa")
	req = httptest.NewRequest(stdhttp.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(adminCookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
}

func TestTrackUnknownComplaintRendersNotFoundState(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(stdhttp.MethodGet, "/track-complaints?complaint_id=unknown", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)

	var payload struct {
		Found bool `json:"found"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.False(t, payload.Found)
}

func TestDeleteComplaintDenialShape(t *testing.T) {
	app := newTestApp()

	req := jsonRequest(stdhttp.MethodPost, "/delete-complaint", fiber.Map{"complaintId": "whatever"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, stdhttp.StatusForbidden, resp.StatusCode)

	var payload struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.False(t, payload.Success)
}

func TestLoginFailureIsLocalized(t *testing.T) {
	app := newTestApp()

	req := jsonRequest(stdhttp.MethodPost, "/auth/login?lang=ar", fiber.Map{
		"email":     "9999999@upm.edu.sa",
		"password1": "whatever1",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, stdhttp.StatusUnauthorized, resp.StatusCode)

	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "INVALID_CREDENTIALS", payload.Error.Code)
	assert.Equal(t, "الإيميل أو كلمة المرور غير صحيحة", payload.Error.Message)
}

func TestAdminRespondLengthRules(t *testing.T) {
	app := newTestApp()
	studentCookie := signUp(t, app, "4410234@upm.edu.sa")
	adminCookie := signUp(t, app, "ahmed@upm.edu.sa")

	req := jsonRequest(stdhttp.MethodPost, "/", fiber.Map{
		"title": "Wifi issue",
		"note":  "Wifi is down in block A",
	})
	req.AddCookie(studentCookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, stdhttp.StatusCreated, resp.StatusCode)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	complaintID := created.Data.ID

	req = jsonRequest(stdhttp.MethodPost, "/admin/respond/"+complaintID, fiber.Map{"response": "Oka"})
	req.AddCookie(adminCookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)

	req = jsonRequest(stdhttp.MethodPost, "/admin/respond/"+complaintID, fiber.Map{"response": "Okay"})
	req.AddCookie(adminCookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, stdhttp.StatusCreated, resp.StatusCode)

	// the accepted reply is visible in the owner's detail payload
	req = httptest.NewRequest(stdhttp.MethodGet, "/complaint-data/"+complaintID, nil)
	req.AddCookie(studentCookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)

	var detail struct {
		Title     string `json:"title"`
		Responses []struct {
			Text string `json:"text"`
		} `json:"responses"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
	assert.Equal(t, "Wifi issue", detail.Title)
	require.Len(t, detail.Responses, 1)
	assert.Equal(t, "Okay", detail.Responses[0].Text)
}
