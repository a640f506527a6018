package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/opencourse/opencourse/sdk/meta"
	"github.com/stretchr/testify/require"
)

func TestNewEnrollmentsClient(t *testing.T) {
	client := NewEnrollmentsClient(
		testAPIAddress,
		testAPIToken,
		testClientAllowInsecure,
	)
	require.IsType(t, &enrollmentsClient{}, client)
	requireBaseClient(t, client.(*enrollmentsClient).baseClient)
}

func TestEnrollmentsClientCreate(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/courses/enroll/", r.URL.Path)
				require.Contains(t, r.Header.Get("Authorization"), "Bearer")
				bodyBytes, err := ioutil.ReadAll(r.Body)
				require.NoError(t, err)
				body := struct {
					Course int64 `json:"course"`
				}{}
				err = json.Unmarshal(bodyBytes, &body)
				require.NoError(t, err)
				require.Equal(t, int64(42), body.Course)
				w.WriteHeader(http.StatusCreated)
				fmt.Fprintln(w, `{"id": 1, "course": 42, "status": "ACTIVE"}`)
			},
		),
	)
	defer server.Close()
	client := NewEnrollmentsClient(
		server.URL,
		testAPIToken,
		testClientAllowInsecure,
	)
	err := client.Create(context.Background(), 42)
	require.NoError(t, err)
}

func TestEnrollmentsClientCreateUnauthenticated(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprintln(
					w,
					`{"detail": "Authentication credentials were not provided."}`,
				)
			},
		),
	)
	defer server.Close()
	client := NewEnrollmentsClient(server.URL, "", testClientAllowInsecure)
	err := client.Create(context.Background(), 42)
	require.Error(t, err)
	require.IsType(t, &meta.ErrAuthentication{}, err)
}

func TestEnrollmentsClientListMine(t *testing.T) {
	testEnrollments := []Enrollment{
		{
			ID:         42,
			Title:      "Arc Reactors 101",
			TotalHours: 12.5,
			Status:     "ACTIVE",
			EnrolledOn: time.Date(2023, time.April, 1, 9, 0, 0, 0, time.UTC),
		},
	}
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/courses/my-enrollments/", r.URL.Path)
				require.Contains(t, r.Header.Get("Authorization"), "Bearer")
				respBytes, err := json.Marshal(testEnrollments)
				require.NoError(t, err)
				fmt.Fprintln(w, string(respBytes))
			},
		),
	)
	defer server.Close()
	client := NewEnrollmentsClient(
		server.URL,
		testAPIToken,
		testClientAllowInsecure,
	)
	enrollments, err := client.ListMine(context.Background())
	require.NoError(t, err)
	require.Equal(t, testEnrollments, enrollments)
}
