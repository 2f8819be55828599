package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const sniffWindow = 2 << 10 // 2 KiB

const chunkSize = 32 * 1024

// FetchLimited streams the body in chunks, failing with ErrCauseBodyTooLarge
// before the chunk that would exceed maxBodyBytes is appended. The status
// code is preserved even on 4xx/5xx; callers decide what to do with an
// error response. Only transport and body-cap failures are returned as
// errors here.
func FetchLimited(ctx context.Context, client *http.Client, target url.URL, maxBodyBytes int64) (Result, *FetchError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return Result{}, &FetchError{URL: target.String(), Message: err.Error(), Cause: ErrCauseTransport}
	}
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := client.Do(req)
	if err != nil {
		return Result{}, &FetchError{URL: target.String(), Message: err.Error(), Cause: ErrCauseTransport}
	}
	defer resp.Body.Close()

	body, err := decodeBody(resp.Header.Get("Content-Encoding"), resp.Body)
	if err != nil {
		return Result{}, &FetchError{URL: target.String(), Message: fmt.Sprintf("decoding body: %v", err), Cause: ErrCauseTransport}
	}

	buf, capErr := readWithCap(body, maxBodyBytes)
	if capErr != nil {
		return Result{}, &FetchError{URL: target.String(), Message: capErr.Error(), Cause: ErrCauseBodyTooLarge}
	}

	finalURL := target
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = *resp.Request.URL
	}

	return Result{
		Requested:   target,
		FinalURL:    finalURL,
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        buf,
	}, nil
}

// readWithCap accumulates body into memory, refusing to append any chunk
// that would push the total past maxBytes, so no caller ever holds more
// than maxBytes of body.
func readWithCap(r io.Reader, maxBytes int64) ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, chunkSize)
	var total int64

	for {
		n, err := r.Read(chunk)
		if n > 0 {
			if total+int64(n) > maxBytes {
				return nil, fmt.Errorf("body exceeds %d byte cap", maxBytes)
			}
			buf.Write(chunk[:n])
			total += int64(n)
		}
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// IsProbablyHTML trusts the content-type header when it says HTML, but
// falls back to sniffing the first 2 KiB of the body for servers that
// mislabel HTML as text/plain.
func IsProbablyHTML(contentType string, body []byte) bool {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml") {
		return true
	}

	window := body
	if len(window) > sniffWindow {
		window = window[:sniffWindow]
	}
	lower := strings.ToLower(string(window))
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype html")
}
