package rest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/attendance"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/leave"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/location"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/profile"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/punch"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/remote"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/session"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/imaging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, server.Client())
}

func authedContext() context.Context {
	return session.WithRawToken(context.Background(), "tok-123")
}

func TestClient_BearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `[]`)
	})

	_, err := client.GetJSON(authedContext(), "/locations", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)

	_, err = client.GetJSON(context.Background(), "/locations", nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_Errors(t *testing.T) {
	t.Run("401 requires reauthentication", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"jwt expired"}`)
		})
		dropped := 0
		client.OnUnauthorized(func(ctx context.Context) error {
			dropped++
			return nil
		})

		_, err := client.GetJSON(authedContext(), "/attendance", nil)
		assert.ErrorIs(t, err, session.ErrReauthenticationRequired)
		assert.Equal(t, 1, dropped)

		// Without a credential there is nothing to drop
		_, err = client.GetJSON(context.Background(), "/attendance", nil)
		assert.ErrorIs(t, err, session.ErrReauthenticationRequired)
		assert.Equal(t, 1, dropped)

		var apiErr *remote.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "jwt expired", apiErr.UserMessage())
	})

	t.Run("500 without message uses fallback", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.GetJSON(authedContext(), "/attendance", nil)
		assert.ErrorIs(t, err, remote.ErrBackendRejected)

		var apiErr *remote.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, remote.GenericFailureMessage, apiErr.UserMessage())
	})

	t.Run("unreachable backend", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()
		client := NewClient(server.URL, time.Second, nil)

		_, err := client.GetJSON(authedContext(), "/attendance", nil)
		assert.ErrorIs(t, err, remote.ErrBackendUnavailable)
	})
}

func TestAuthRepository_Login(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		if strings.Contains(string(body), "wrong") {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"Invalid credentials"}`)
			return
		}
		_, _ = io.WriteString(w, `{"token":"jwt","user":{"_id":"u1","employeeId":"EMP-7","name":"Asha","email":"asha@example.com","joiningDate":"2023-04-01T00:00:00.000Z"}}`)
	})
	repo := NewAuthRepository(client)

	result, err := repo.Login(context.Background(), session.LoginRequest{Email: "asha@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", result.Token)
	assert.Equal(t, "EMP-7", result.Profile.EmployeeID)
	assert.Equal(t, "Asha", result.Profile.Name)
	assert.Equal(t, "2023-04-01", result.Profile.JoiningDate)

	_, err = repo.Login(context.Background(), session.LoginRequest{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, session.ErrInvalidLogin)
	assert.NotErrorIs(t, err, session.ErrReauthenticationRequired)
}

func TestPunchRepository(t *testing.T) {
	type seen struct {
		method, path string
		fields       map[string]string
		imageType    string
		imageSize    int
	}
	var got seen

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(10<<20)) {
			return
		}
		got = seen{method: r.Method, path: r.URL.Path, fields: map[string]string{}}
		for key, values := range r.MultipartForm.Value {
			got.fields[key] = values[0]
		}
		if files := r.MultipartForm.File["image"]; len(files) == 1 {
			got.imageType = files[0].Header.Get("Content-Type")
			got.imageSize = int(files[0].Size)
		}
		_, _ = io.WriteString(w, `{"message":"Punch recorded","punchData":{"_id":"p-1","punchIn":"2025-03-03T03:30:00.000Z"}}`)
	})
	repo := NewPunchRepository(client)

	submission := punch.Submission{
		Action:       punch.ActionIn,
		EmployeeID:   "EMP-7",
		Name:         "Asha",
		Email:        "asha@example.com",
		Timestamp:    time.Date(2025, 3, 3, 3, 30, 0, 0, time.UTC),
		Coordinate:   location.Coordinate{Latitude: 21.2467, Longitude: 81.6624},
		LocationName: "Raipur",
		Image:        []byte{0xff, 0xd8, 0xff},
		ImageMIME:    imaging.MIMEJPEG,
	}

	ack, err := repo.PunchIn(authedContext(), submission)
	require.NoError(t, err)
	assert.Equal(t, "p-1", ack.ID)
	assert.Equal(t, "Punch recorded", ack.Message)
	require.NotNil(t, ack.Timestamp)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/punch", got.path)
	assert.Equal(t, "2025-03-03T03:30:00.000Z", got.fields["punchIn"])
	assert.Equal(t, "21.2467", got.fields["latitude"])
	assert.Equal(t, "81.6624", got.fields["longitude"])
	assert.Equal(t, "Raipur", got.fields["location"])
	assert.Equal(t, "EMP-7", got.fields["employeeId"])
	assert.Equal(t, imaging.MIMEJPEG, got.imageType)
	assert.Equal(t, 3, got.imageSize)

	submission.Action = punch.ActionOut
	submission.PunchInID = "p-1"
	submission.Image = nil
	_, err = repo.PunchOut(authedContext(), submission)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/punch/p-1", got.path)
	assert.Contains(t, got.fields, "punchOut")
	assert.Empty(t, got.imageType)

	submission.PunchInID = ""
	_, err = repo.PunchOut(authedContext(), submission)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/punch/out", got.path)
}

func TestAttendanceRepository_List(t *testing.T) {
	t.Run("server side pagination", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "3", r.URL.Query().Get("month"))
			_, _ = io.WriteString(w, `{"attendanceData":[
				{"_id":"a1","date":"2025-03-03","status":"Present","punchIn":"2025-03-03T03:30:00Z"},
				{"_id":"a2","date":"2025-03-04","status":"half-day"},
				{"_id":"a3","date":"2025-03-05","status":"on-duty"}
			],"pagination":{"total":12,"totalPages":2,"page":2,"limit":10}}`)
		})

		page, err := NewAttendanceRepository(client).List(authedContext(), attendance.Filter{Page: 2, Limit: 10, Month: 3, Year: 2025})
		require.NoError(t, err)
		require.Len(t, page.Entries, 2)
		assert.Equal(t, attendance.StatusPresent, page.Entries[0].Status)
		assert.Equal(t, attendance.StatusHalfDay, page.Entries[1].Status)
		assert.Equal(t, int64(12), page.Total)
		assert.Equal(t, 2, page.TotalPages)
	})

	t.Run("bare array is paged locally", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `[
				{"_id":"1","date":"2025-03-01","status":"present"},
				{"_id":"2","date":"2025-03-02","status":"absent"},
				{"_id":"3","date":"2025-03-03","status":"present"}
			]`)
		})

		page, err := NewAttendanceRepository(client).List(authedContext(), attendance.Filter{Page: 2, Limit: 2})
		require.NoError(t, err)
		require.Len(t, page.Entries, 1)
		assert.Equal(t, "3", page.Entries[0].ID)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 2, page.TotalPages)
	})
}

func TestLeaveRepository(t *testing.T) {
	var created string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			body, _ := io.ReadAll(r.Body)
			created = string(body)
			_, _ = io.WriteString(w, `{"message":"Leave applied"}`)
			return
		}
		_, _ = io.WriteString(w, `{"data":[
			{"_id":"l1","from":"2025-03-10","to":"2025-03-12","leaveType":"Casual","status":"Approved","totaldays":3,"type":"paid"},
			{"_id":"l2","startDate":"2025-04-01","endDate":"2025-04-01","leaveType":"Sick","status":"pending","type":"unpaid"}
		]}`)
	})
	repo := NewLeaveRepository(client)

	page, err := repo.List(authedContext(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Requests, 2)
	assert.Equal(t, leave.StatusApproved, page.Requests[0].Status)
	assert.Equal(t, 3.0, page.Requests[0].Days())
	assert.Equal(t, leave.PayTypeUnpaid, page.Requests[1].PayType)
	assert.Equal(t, 1.0, page.Requests[1].Days())

	req := leave.CreateRequest{From: "2025-05-01", To: "2025-05-02", LeaveType: "Casual", Reason: "Family", Type: "paid"}
	request, err := repo.Create(authedContext(), req)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, request.Status)
	assert.Equal(t, 2.0, request.Days())
	assert.JSONEq(t, `{"from":"2025-05-01","to":"2025-05-02","leaveType":"Casual","reason":"Family","totaldays":2,"type":"paid"}`, created)
}

func TestSalaryRepository_List(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025", r.URL.Query().Get("year"))
		_, _ = io.WriteString(w, `{"data":[
			{"_id":"s1","month":"March","year":2025,"basicSalary":30000,"allowances":"5000.50","deductions":1000,"netSalary":null,"presentDays":"20","workingDays":24,"status":"paid"},
			{"_id":"s2","month":2,"year":2024,"basicSalary":30000}
		]}`)
	})

	records, err := NewSalaryRepository(client).List(authedContext(), 2025)
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, 3, record.Month)
	assert.True(t, record.Allowances.Equal(decimal.RequireFromString("5000.50")))
	assert.Nil(t, record.NetSalary)
	require.NotNil(t, record.PresentDays)
	assert.Equal(t, 20, *record.PresentDays)
	require.NotNil(t, record.WorkingDays)
	assert.Equal(t, 24, *record.WorkingDays)
}

func TestProfileRepository(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/me":
			_, _ = io.WriteString(w, `{"user":{"_id":"u1","fullName":"Asha Verma","email":"asha@example.com","position":"Engineer"}}`)
		case r.URL.Path == "/payment-details" && r.Method == http.MethodGet:
			_, _ = io.WriteString(w, `[{"_id":"pd1","accountHolderName":"Asha","bankName":"SBI","accountNumber":"123456789","ifscCode":"SBIN0001234"}]`)
		case r.URL.Path == "/payment-details/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			_, _ = io.WriteString(w, `{"success":true}`)
		}
	})
	repo := NewProfileRepository(client)

	p, err := repo.Me(authedContext())
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", p.Name)
	assert.Equal(t, "Engineer", p.Designation)
	assert.Equal(t, "u1", p.EmployeeID)

	details, err := repo.ListPaymentDetails(authedContext())
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "SBIN0001234", details[0].IFSCCode)

	updated, err := repo.UpdatePaymentDetails(authedContext(), profile.PaymentDetailsRequest{ID: "pd1", BankName: "HDFC"})
	require.NoError(t, err)
	assert.Equal(t, "pd1", updated.ID)
	assert.Equal(t, "HDFC", updated.BankName)

	err = repo.DeletePaymentDetails(authedContext(), "missing")
	assert.ErrorIs(t, err, profile.ErrPaymentDetailsNotFound)
}

func TestReferenceLocationRepository_List(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[{"_id":"hq","name":"HQ","latitude":21.2467,"longitude":81.6624,"radius":500},{"name":"Depot","lat":"21.3","lng":"81.7"}]}`)
	})

	locations, err := NewReferenceLocationRepository(client).List(authedContext())
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, 500.0, locations[0].RadiusMeters)
	assert.Equal(t, 21.3, locations[1].Latitude)
	assert.Equal(t, 81.7, locations[1].Longitude)
}
