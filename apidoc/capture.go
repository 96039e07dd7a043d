package apidoc

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"go.jacobcolvin.com/apidocs/blueprint"
)

// Capture serves req with h and returns the exchange along with the
// response, whose body can still be read.
func Capture(h http.Handler, req *http.Request) (*blueprint.Exchange, *http.Response, error) {
	body, err := drain(&req.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: request body: %w", blueprint.ErrIO, err)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()

	xc, err := ExchangeFrom(req, body, res)
	if err != nil {
		return nil, nil, err
	}

	return xc, res, nil
}

// ExchangeFrom builds an exchange from a request, the body it was sent
// with, and the response it received. It reads res.Body and replaces it
// with an unread copy.
func ExchangeFrom(req *http.Request, body []byte, res *http.Response) (*blueprint.Exchange, error) {
	resBody, err := drain(&res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: response body: %w", blueprint.ErrIO, err)
	}

	return &blueprint.Exchange{
		RequestContentType:  req.Header.Get("Content-Type"),
		Authorization:       req.Header.Get("Authorization"),
		RequestBody:         body,
		ResponseStatus:      res.StatusCode,
		ResponseContentType: res.Header.Get("Content-Type"),
		ResponseBody:        resBody,
	}, nil
}

// drain reads *rc fully and replaces it with a reader over the same bytes.
func drain(rc *io.ReadCloser) ([]byte, error) {
	if *rc == nil || *rc == http.NoBody {
		return nil, nil
	}

	data, err := io.ReadAll(*rc)

	closeErr := (*rc).Close()
	if err == nil {
		err = closeErr
	}

	*rc = io.NopCloser(bytes.NewReader(data))

	return data, err
}
