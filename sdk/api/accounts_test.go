package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opencourse/opencourse/sdk/meta"
	"github.com/stretchr/testify/require"
)

func TestNewAccountsClient(t *testing.T) {
	client := NewAccountsClient(
		testAPIAddress,
		testAPIToken,
		testClientAllowInsecure,
	)
	require.IsType(t, &accountsClient{}, client)
	requireBaseClient(t, client.(*accountsClient).baseClient)
}

func TestAccountsClientLogin(t *testing.T) {
	testCredentials := Credentials{
		Email:    "tony@starkindustries.com",
		Password: "jarvis",
	}
	testAuthDetails := AuthDetails{
		AccessToken:  "opensesame",
		RefreshToken: "opensesamelater",
		Email:        "tony@starkindustries.com",
		UserName:     "Tony Stark",
		Role:         "CREATOR",
	}
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/accounts/login/", r.URL.Path)
				bodyBytes, err := ioutil.ReadAll(r.Body)
				require.NoError(t, err)
				credentials := Credentials{}
				err = json.Unmarshal(bodyBytes, &credentials)
				require.NoError(t, err)
				require.Equal(t, testCredentials, credentials)
				respBytes, err := json.Marshal(testAuthDetails)
				require.NoError(t, err)
				fmt.Fprintln(w, string(respBytes))
			},
		),
	)
	defer server.Close()
	client := NewAccountsClient(server.URL, "", testClientAllowInsecure)
	authDetails, err := client.Login(context.Background(), testCredentials)
	require.NoError(t, err)
	require.Equal(t, testAuthDetails, authDetails)
}

func TestAccountsClientLoginRejected(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprintln(
					w,
					`{"detail": "No active account found with the given credentials"}`,
				)
			},
		),
	)
	defer server.Close()
	client := NewAccountsClient(server.URL, "", testClientAllowInsecure)
	_, err := client.Login(
		context.Background(),
		Credentials{
			Email:    "tony@starkindustries.com",
			Password: "wrong",
		},
	)
	require.Error(t, err)
	errAuthentication, ok := err.(*meta.ErrAuthentication)
	require.True(t, ok)
	require.Equal(
		t,
		"No active account found with the given credentials",
		errAuthentication.Reason,
	)
}

func TestAccountsClientRegister(t *testing.T) {
	testRegistration := Registration{
		Email:    "peter@dailybugle.com",
		UserName: "Peter Parker",
		Password: "withgreatpower",
		Group:    GroupCreator,
	}
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/accounts/register/", r.URL.Path)
				require.Empty(t, r.Header.Get("Authorization"))
				bodyBytes, err := ioutil.ReadAll(r.Body)
				require.NoError(t, err)
				registration := Registration{}
				err = json.Unmarshal(bodyBytes, &registration)
				require.NoError(t, err)
				require.Equal(t, testRegistration, registration)
				w.WriteHeader(http.StatusCreated)
			},
		),
	)
	defer server.Close()
	client := NewAccountsClient(server.URL, "", testClientAllowInsecure)
	err := client.Register(context.Background(), testRegistration)
	require.NoError(t, err)
}

func TestAccountsClientRegisterEmailTaken(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprintln(
					w,
					`{"email": ["user with this email address already exists."]}`,
				)
			},
		),
	)
	defer server.Close()
	client := NewAccountsClient(server.URL, "", testClientAllowInsecure)
	err := client.Register(
		context.Background(),
		Registration{
			Email:    "peter@dailybugle.com",
			UserName: "Peter Parker",
			Password: "withgreatpower",
		},
	)
	require.Error(t, err)
	errBadRequest, ok := err.(*meta.ErrBadRequest)
	require.True(t, ok)
	msg, ok := errBadRequest.FieldMessage("email")
	require.True(t, ok)
	require.Equal(t, "user with this email address already exists.", msg)
}
