package sakaisvc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/lms"
)

const testCookie = "JSESSIONID=abc123"

func testClient(baseURL string) *client {
	return NewClient(&core.Config{
		LMS: core.LMSConfig{
			BaseURL:   baseURL,
			UserAgent: "KadaiManager-test/1.0",
			Timeout:   5 * time.Second,
		},
	})
}

func TestClient_FetchSites(t *testing.T) {
	var gotPath, gotCookie, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCookie = r.Header.Get("Cookie")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"site_collection": [
				{"id": "X1", "title": "Math", "description": "Linear algebra"},
				{"id": "X2", "title": "Physics"}
			]
		}`))
	}))
	defer srv.Close()

	sites, err := testClient(srv.URL).FetchSites(context.Background(), testCookie)
	assert.NoError(t, err)
	assert.Equal(t, sitesEndpoint, gotPath)
	assert.Equal(t, testCookie, gotCookie)
	assert.Equal(t, "KadaiManager-test/1.0", gotUA)
	assert.Equal(t, []lms.Site{
		{ID: "X1", Title: "Math", Description: "Linear algebra"},
		{ID: "X2", Title: "Physics"},
	}, sites)
}

func TestClient_FetchAssignments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, assignmentsEndpoint, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"assignment_collection": [
				{
					"id": "A1",
					"title": "HW1",
					"instructions": "Solve all exercises",
					"dueTimeString": "2023-12-01T10:00:00Z",
					"dueTime": {"time": 1700000000000},
					"context": "X1"
				}
			]
		}`))
	}))
	defer srv.Close()

	asgs, err := testClient(srv.URL).FetchAssignments(context.Background(), testCookie)
	assert.NoError(t, err)
	assert.Equal(t, []lms.Assignment{{
		ID:            "A1",
		Title:         "HW1",
		Instructions:  "Solve all exercises",
		DueTimeString: "2023-12-01T10:00:00Z",
		DueTime:       &lms.DueTime{Time: 1700000000000},
		Context:       "X1",
	}}, asgs)
}

func TestClient_FetchAnnouncements(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, announcementsEndpoint, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"announcement_collection": [
				{"id": "N1", "title": "Exam info", "body": "Room 101", "siteId": "X1"}
			]
		}`))
	}))
	defer srv.Close()

	anns, err := testClient(srv.URL).FetchAnnouncements(context.Background(), testCookie)
	assert.NoError(t, err)
	assert.Equal(t, []lms.Announcement{{ID: "N1", Title: "Exam info", Body: "Room 101", SiteID: "X1"}}, anns)
}

func TestClient_AuthFailure(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := testClient(srv.URL).FetchSites(context.Background(), testCookie)
		assert.Equal(t, lms.ErrAuthFailed, errors.Cause(err))
		srv.Close()
	}
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchSites(context.Background(), testCookie)

	var apiErr *lms.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Internal Server Error", apiErr.StatusText)
}

func TestClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>login page</html>`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchSites(context.Background(), testCookie)
	assert.Error(t, err)
	assert.NotEqual(t, lms.ErrAuthFailed, errors.Cause(err))
}

func TestClient_TestConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"site_collection": []}`))
	}))
	defer srv.Close()

	assert.NoError(t, testClient(srv.URL).TestConnection(context.Background(), testCookie))
}
