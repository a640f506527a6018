package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/google/uuid"
	"github.com/opencourse/opencourse/sdk/meta"
	"github.com/pkg/errors"
)

// outboundRequest models an outbound API call.
type outboundRequest struct {
	// method specifies the HTTP method to be used.
	method string
	// path specifies a path (relative to the root of the API) to be used.
	path string
	// authHeaders optionally specifies any authentication headers to be used.
	authHeaders map[string]string
	// reqBodyObj optionally provides an object that can be marshaled to create
	// the body of the HTTP request.
	reqBodyObj interface{}
	// successCode specifies what HTTP response code should indicate a
	// successful API call.
	successCode int
	// respObj optionally provides an object into which the HTTP response body
	// can be unmarshaled.
	respObj interface{}
	// notFoundType and notFoundID optionally describe the resource a 404
	// response should be attributed to.
	notFoundType string
	notFoundID   string
}

// baseClient provides "API machinery" used by all the specialized API
// clients. Its various functions remove the tedium from common API-related
// operations like managing authentication headers, encoding request bodies,
// interpreting response codes, and decoding response bodies.
type baseClient struct {
	apiAddress string
	apiToken   string
	httpClient *http.Client
}

func newBaseClient(
	apiAddress string,
	apiToken string,
	allowInsecure bool,
) *baseClient {
	return &baseClient{
		apiAddress: apiAddress,
		apiToken:   apiToken,
		httpClient: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: allowInsecure, // nolint: gosec
				},
			},
		},
	}
}

// bearerTokenAuthHeaders returns a map[string]string populated with an
// authentication header that makes use of the client's bearer token.
func (b *baseClient) bearerTokenAuthHeaders() map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", b.apiToken),
	}
}

// executeRequest accepts one argument-- an outboundRequest-- that models all
// aspects of a single API call in a succinct fashion. Based on this
// information, this function prepares and executes an HTTP request,
// interprets the HTTP response code, and decodes the response body into a
// user-supplied type.
func (b *baseClient) executeRequest(
	ctx context.Context,
	req outboundRequest,
) error {
	resp, err := b.submitRequest(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if req.respObj != nil {
		respBodyBytes, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return errors.Wrap(err, "error reading response body")
		}
		if err := json.Unmarshal(respBodyBytes, req.respObj); err != nil {
			return errors.Wrap(err, "error unmarshaling response body")
		}
	}
	return nil
}

// submitRequest accepts one argument-- an outboundRequest-- that models all
// aspects of a single API call in a succinct fashion. Based on this
// information, this function prepares and executes an HTTP request and
// returns the HTTP response. This is a lower-level function than
// executeRequest(). It is used by executeRequest(), but is also suitable for
// use in cases where specialized response handling is required.
func (b *baseClient) submitRequest(
	ctx context.Context,
	req outboundRequest,
) (*http.Response, error) {
	var reqBodyReader io.Reader
	if req.reqBodyObj != nil {
		switch rb := req.reqBodyObj.(type) {
		case []byte:
			reqBodyReader = bytes.NewBuffer(rb)
		default:
			reqBodyBytes, err := json.Marshal(req.reqBodyObj)
			if err != nil {
				return nil, errors.Wrap(err, "error marshaling request body")
			}
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	r, err := http.NewRequestWithContext(
		ctx,
		req.method,
		fmt.Sprintf("%s/%s", b.apiAddress, req.path),
		reqBodyReader,
	)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error creating request %s %s",
			req.method,
			req.path,
		)
	}
	for k, v := range req.authHeaders {
		r.Header.Add(k, v)
	}
	if reqBodyReader != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	r.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := b.httpClient.Do(r)
	if err != nil {
		return nil, errors.Wrap(err, "error invoking API")
	}

	if (req.successCode == 0 && resp.StatusCode != http.StatusOK) ||
		(req.successCode != 0 && resp.StatusCode != req.successCode) {
		defer resp.Body.Close()
		bodyBytes, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.Wrap(err, "error reading error response body")
		}
		return nil, apiError(resp.StatusCode, bodyBytes, req)
	}
	return resp, nil
}

// apiError translates a non-success HTTP response into a typed error. The
// response code hints at what sort of error occurred; the body, which the
// API server renders as either {"detail": "..."} or a map of field names to
// lists of validation messages, supplies the particulars.
func apiError(statusCode int, bodyBytes []byte, req outboundRequest) error {
	detail, fields := parseErrorBody(bodyBytes)
	switch statusCode {
	case http.StatusUnauthorized:
		return &meta.ErrAuthentication{Reason: detail}
	case http.StatusForbidden:
		return &meta.ErrAuthorization{Reason: detail}
	case http.StatusBadRequest:
		return &meta.ErrBadRequest{Reason: detail, Fields: fields}
	case http.StatusNotFound:
		return &meta.ErrNotFound{Type: req.notFoundType, ID: req.notFoundID}
	case http.StatusConflict:
		return &meta.ErrConflict{Reason: detail}
	case http.StatusInternalServerError:
		return &meta.ErrInternalServer{}
	}
	return errors.Errorf("received %d from API server", statusCode)
}

// parseErrorBody extracts whatever structure it can from an API error
// response body. A "detail" key carries a request-level message; any key
// whose value is a list of strings carries field-level validation messages.
func parseErrorBody(bodyBytes []byte) (string, map[string][]string) {
	body := map[string]interface{}{}
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		return "", nil
	}
	var detail string
	fields := map[string][]string{}
	for k, v := range body {
		switch val := v.(type) {
		case string:
			if k == "detail" {
				detail = val
			}
		case []interface{}:
			for _, item := range val {
				if msg, ok := item.(string); ok {
					fields[k] = append(fields[k], msg)
				}
			}
		}
	}
	if len(fields) == 0 {
		fields = nil
	}
	return detail, fields
}
