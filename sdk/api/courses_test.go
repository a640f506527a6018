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

var testCourse = Course{
	ID:           42,
	Creator:      "Tony Stark",
	Title:        "Arc Reactors 101",
	Description:  "Clean energy in a cave, with a box of scraps.",
	Requirements: "A physics background helps.",
	TotalHours:   12.5,
	Created:      time.Date(2023, time.March, 14, 15, 9, 26, 0, time.UTC),
}

func TestNewCoursesClient(t *testing.T) {
	client := NewCoursesClient(
		testAPIAddress,
		testAPIToken,
		testClientAllowInsecure,
	)
	require.IsType(t, &coursesClient{}, client)
	requireBaseClient(t, client.(*coursesClient).baseClient)
}

func TestCoursesClientList(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/courses/", r.URL.Path)
				require.Empty(t, r.Header.Get("Authorization"))
				respBytes, err := json.Marshal([]Course{testCourse})
				require.NoError(t, err)
				fmt.Fprintln(w, string(respBytes))
			},
		),
	)
	defer server.Close()
	client := NewCoursesClient(server.URL, "", testClientAllowInsecure)
	courses, err := client.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []Course{testCourse}, courses)
}

func TestCoursesClientGet(t *testing.T) {
	testDetail := testCourse
	testDetail.Sections = []Section{
		{
			ID:    1,
			Title: "Fundamentals",
			Order: 1,
			Chapters: []Chapter{
				{
					ID:            7,
					Title:         "Palladium and its discontents",
					VideoDuration: 12.5,
					Order:         1,
				},
			},
		},
	}
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/courses/42/", r.URL.Path)
				respBytes, err := json.Marshal(testDetail)
				require.NoError(t, err)
				fmt.Fprintln(w, string(respBytes))
			},
		),
	)
	defer server.Close()
	client := NewCoursesClient(server.URL, "", testClientAllowInsecure)
	course, err := client.Get(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, testDetail, course)
}

func TestCoursesClientGetNotFound(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprintln(w, `{"detail": "Not found."}`)
			},
		),
	)
	defer server.Close()
	client := NewCoursesClient(server.URL, "", testClientAllowInsecure)
	_, err := client.Get(context.Background(), 43)
	require.Error(t, err)
	errNotFound, ok := err.(*meta.ErrNotFound)
	require.True(t, ok)
	require.Equal(t, "Course", errNotFound.Type)
	require.Equal(t, "43", errNotFound.ID)
}

func TestCoursesClientContent(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/courses/42/player/", r.URL.Path)
				require.Contains(t, r.Header.Get("Authorization"), "Bearer")
				respBytes, err := json.Marshal(testCourse)
				require.NoError(t, err)
				fmt.Fprintln(w, string(respBytes))
			},
		),
	)
	defer server.Close()
	client := NewCoursesClient(server.URL, testAPIToken, testClientAllowInsecure)
	course, err := client.Content(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, testCourse, course)
}

func TestCoursesClientContentNotEnrolled(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				fmt.Fprintln(w, `{"detail": "You are not enrolled in course"}`)
			},
		),
	)
	defer server.Close()
	client := NewCoursesClient(server.URL, testAPIToken, testClientAllowInsecure)
	_, err := client.Content(context.Background(), 42)
	require.Error(t, err)
	errAuthorization, ok := err.(*meta.ErrAuthorization)
	require.True(t, ok)
	require.Equal(t, "You are not enrolled in course", errAuthorization.Reason)
}

func TestCoursesClientListMine(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/courses/my-courses/", r.URL.Path)
				require.Contains(t, r.Header.Get("Authorization"), "Bearer")
				respBytes, err := json.Marshal([]Course{testCourse})
				require.NoError(t, err)
				fmt.Fprintln(w, string(respBytes))
			},
		),
	)
	defer server.Close()
	client := NewCoursesClient(server.URL, testAPIToken, testClientAllowInsecure)
	courses, err := client.ListMine(context.Background())
	require.NoError(t, err)
	require.Equal(t, []Course{testCourse}, courses)
}

func TestCoursesClientCreate(t *testing.T) {
	testSpec := CourseSpec{
		Title:        "Arc Reactors 101",
		Description:  "Clean energy in a cave, with a box of scraps.",
		Requirements: "A physics background helps.",
	}
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/courses/create/", r.URL.Path)
				require.Contains(t, r.Header.Get("Authorization"), "Bearer")
				bodyBytes, err := ioutil.ReadAll(r.Body)
				require.NoError(t, err)
				spec := CourseSpec{}
				err = json.Unmarshal(bodyBytes, &spec)
				require.NoError(t, err)
				require.Equal(t, testSpec, spec)
				respBytes, err := json.Marshal(testCourse)
				require.NoError(t, err)
				w.WriteHeader(http.StatusCreated)
				fmt.Fprintln(w, string(respBytes))
			},
		),
	)
	defer server.Close()
	client := NewCoursesClient(server.URL, testAPIToken, testClientAllowInsecure)
	course, err := client.Create(context.Background(), testSpec)
	require.NoError(t, err)
	require.Equal(t, testCourse, course)
}

func TestCoursesClientCreateSection(t *testing.T) {
	testSpec := SectionSpec{
		Course: 42,
		Title:  "Fundamentals",
		Order:  1,
	}
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/courses/sections/create/", r.URL.Path)
				require.Contains(t, r.Header.Get("Authorization"), "Bearer")
				bodyBytes, err := ioutil.ReadAll(r.Body)
				require.NoError(t, err)
				spec := SectionSpec{}
				err = json.Unmarshal(bodyBytes, &spec)
				require.NoError(t, err)
				require.Equal(t, testSpec, spec)
				w.WriteHeader(http.StatusCreated)
				fmt.Fprintln(w, `{"id": 1, "course": 42, "title": "Fundamentals", "order": 1}`)
			},
		),
	)
	defer server.Close()
	client := NewCoursesClient(server.URL, testAPIToken, testClientAllowInsecure)
	section, err := client.CreateSection(context.Background(), testSpec)
	require.NoError(t, err)
	require.Equal(t, int64(1), section.ID)
}

func TestCoursesClientCreateChapter(t *testing.T) {
	testSpec := ChapterSpec{
		Section:       1,
		Title:         "Palladium and its discontents",
		VideoURL:      "https://videos.example.com/palladium.mp4",
		VideoDuration: 12.5,
		Order:         1,
	}
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/courses/chapters/create/", r.URL.Path)
				require.Contains(t, r.Header.Get("Authorization"), "Bearer")
				bodyBytes, err := ioutil.ReadAll(r.Body)
				require.NoError(t, err)
				spec := ChapterSpec{}
				err = json.Unmarshal(bodyBytes, &spec)
				require.NoError(t, err)
				require.Equal(t, testSpec, spec)
				w.WriteHeader(http.StatusCreated)
				fmt.Fprintln(w, `{"id": 7, "section": 1, "title": "Palladium and its discontents", "order": 1}`)
			},
		),
	)
	defer server.Close()
	client := NewCoursesClient(server.URL, testAPIToken, testClientAllowInsecure)
	chapter, err := client.CreateChapter(context.Background(), testSpec)
	require.NoError(t, err)
	require.Equal(t, int64(7), chapter.ID)
}

func TestCoursesClientUpdate(t *testing.T) {
	testSpec := CourseSpec{
		Title:        "Arc Reactors 102",
		Description:  "Clean energy, now with vibranium.",
		Requirements: "Arc Reactors 101.",
	}
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPut, r.Method)
				require.Equal(t, "/courses/42/edit/", r.URL.Path)
				require.Contains(t, r.Header.Get("Authorization"), "Bearer")
				bodyBytes, err := ioutil.ReadAll(r.Body)
				require.NoError(t, err)
				spec := CourseSpec{}
				err = json.Unmarshal(bodyBytes, &spec)
				require.NoError(t, err)
				require.Equal(t, testSpec, spec)
				updated := testCourse
				updated.Title = testSpec.Title
				respBytes, err := json.Marshal(updated)
				require.NoError(t, err)
				fmt.Fprintln(w, string(respBytes))
			},
		),
	)
	defer server.Close()
	client := NewCoursesClient(server.URL, testAPIToken, testClientAllowInsecure)
	course, err := client.Update(context.Background(), 42, testSpec)
	require.NoError(t, err)
	require.Equal(t, "Arc Reactors 102", course.Title)
}

func TestCoursesClientUpdateNotOwnCourse(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				fmt.Fprintln(w, `{"detail": "Not your course"}`)
			},
		),
	)
	defer server.Close()
	client := NewCoursesClient(server.URL, testAPIToken, testClientAllowInsecure)
	_, err := client.Update(context.Background(), 42, CourseSpec{})
	require.Error(t, err)
	errAuthorization, ok := err.(*meta.ErrAuthorization)
	require.True(t, ok)
	require.Equal(t, "Not your course", errAuthorization.Reason)
}

func TestCoursesClientUpdateSection(t *testing.T) {
	testSpec := SectionSpec{
		Course: 42,
		Title:  "Fundamentals, revised",
		Order:  2,
	}
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPut, r.Method)
				require.Equal(t, "/courses/sections/1/edit/", r.URL.Path)
				require.Contains(t, r.Header.Get("Authorization"), "Bearer")
				bodyBytes, err := ioutil.ReadAll(r.Body)
				require.NoError(t, err)
				spec := SectionSpec{}
				err = json.Unmarshal(bodyBytes, &spec)
				require.NoError(t, err)
				require.Equal(t, testSpec, spec)
				fmt.Fprintln(w, `{"id": 1, "course": 42, "title": "Fundamentals, revised", "order": 2}`)
			},
		),
	)
	defer server.Close()
	client := NewCoursesClient(server.URL, testAPIToken, testClientAllowInsecure)
	section, err := client.UpdateSection(context.Background(), 1, testSpec)
	require.NoError(t, err)
	require.Equal(t, "Fundamentals, revised", section.Title)
	require.Equal(t, 2, section.Order)
}

func TestCoursesClientUpdateChapter(t *testing.T) {
	testSpec := ChapterSpec{
		Section:       1,
		Title:         "Vibranium and its discontents",
		VideoURL:      "https://videos.example.com/vibranium.mp4",
		VideoDuration: 14.0,
		Order:         1,
	}
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPut, r.Method)
				require.Equal(t, "/courses/chapters/7/edit/", r.URL.Path)
				require.Contains(t, r.Header.Get("Authorization"), "Bearer")
				bodyBytes, err := ioutil.ReadAll(r.Body)
				require.NoError(t, err)
				spec := ChapterSpec{}
				err = json.Unmarshal(bodyBytes, &spec)
				require.NoError(t, err)
				require.Equal(t, testSpec, spec)
				fmt.Fprintln(w, `{"id": 7, "section": 1, "title": "Vibranium and its discontents", "order": 1}`)
			},
		),
	)
	defer server.Close()
	client := NewCoursesClient(server.URL, testAPIToken, testClientAllowInsecure)
	chapter, err := client.UpdateChapter(context.Background(), 7, testSpec)
	require.NoError(t, err)
	require.Equal(t, "Vibranium and its discontents", chapter.Title)
}
