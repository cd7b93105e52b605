package search

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Response is the decoded result of one API call.
type Response struct {
	status      int
	header      http.Header
	raw         []byte
	body        any
	successCode int
	useJSONNum  bool
}

// ResponseOption is a functional option for [NewResponse].
type ResponseOption func(*Response)

// WithSuccessCode sets the status code that IsSuccess accepts.
// It defaults to 200.
func WithSuccessCode(code int) ResponseOption {
	return func(r *Response) {
		r.successCode = code
	}
}

// WithJSONNumber decodes numbers as [json.Number] instead of float64.
func WithJSONNumber() ResponseOption {
	return func(r *Response) {
		r.useJSONNum = true
	}
}

// NewResponse reads and closes resp.Body and decodes it as JSON. A body
// that is not valid JSON leaves Body nil; only failing to read it is an
// error.
func NewResponse(resp *http.Response, opts ...ResponseOption) (*Response, error) {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	r := &Response{
		status:      resp.StatusCode,
		header:      resp.Header,
		raw:         raw,
		successCode: http.StatusOK,
	}
	for _, opt := range opts {
		opt(r)
	}

	var body any
	if err := r.decode(&body); err == nil {
		r.body = body
	}

	return r, nil
}

// Body returns the decoded JSON document: a map, slice, string, number,
// bool or nil.
func (r *Response) Body() any {
	return r.body
}

// StatusCode returns the HTTP status code.
func (r *Response) StatusCode() int {
	return r.status
}

// Header returns the response headers.
func (r *Response) Header() http.Header {
	return r.header
}

// IsSuccess reports whether the status code is the success code.
func (r *Response) IsSuccess() bool {
	return r.status == r.successCode
}

// Raw returns the undecoded body.
func (r *Response) Raw() []byte {
	return r.raw
}

// Decode unmarshals the raw body into dest, which must be a pointer.
func (r *Response) Decode(dest any) error {
	if err := r.decode(dest); err != nil {
		return fmt.Errorf("decoding body: %w", err)
	}

	return nil
}

func (r *Response) decode(dest any) error {
	d := json.NewDecoder(bytes.NewReader(r.raw))
	if r.useJSONNum {
		d.UseNumber()
	}

	if err := d.Decode(dest); err != nil {
		return err
	}

	// Anything after the first value, even a closing delimiter, means the
	// body is not a single JSON document.
	if _, err := d.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON document")
	}

	return nil
}
