package sortable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
)

// RemoteStore syncs ordering records to an optional remote endpoint:
// PUT /orders/{key} with {"order":[{id,order}]} and GET returning the same
// shape. Any non-success response is treated identically to "no stored
// order". Transfers are best effort; there is no in-flight cancellation.
type RemoteStore struct {
	client   *http.Client
	baseURL  string
	token    string
	pipeline failsafe.Executor[*http.Response]
}

func NewRemoteStore(baseURL, token string) *RemoteStore {
	retry := retrypolicy.NewBuilder[*http.Response]().
		HandleIf(func(resp *http.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		}).
		WithBackoff(100*time.Millisecond, 2*time.Second).
		WithMaxRetries(3).
		Build()

	return &RemoteStore{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  baseURL,
		token:    token,
		pipeline: failsafe.With[*http.Response](retry),
	}
}

// do builds a fresh request per attempt so retries resend the full body.
func (r *RemoteStore) do(method, url string, body []byte) (*http.Response, error) {
	return r.pipeline.Get(func() (*http.Response, error) {
		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequest(method, url, rd)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if r.token != "" {
			req.Header.Set("Authorization", "Bearer "+r.token)
		}
		return r.client.Do(req)
	})
}

// Push uploads the record for a key.
func (r *RemoteStore) Push(key string, entries []OrderEntry) error {
	body, err := json.Marshal(OrderRecord{Order: entries})
	if err != nil {
		return fmt.Errorf("failed to marshal order record: %w", err)
	}

	resp, err := r.do(http.MethodPut, r.baseURL+"/orders/"+key, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("remote order push returned status %d", resp.StatusCode)
	}
	return nil
}

// Fetch downloads the record for a key. A non-success status yields nil
// entries and an error the caller may log and otherwise ignore.
func (r *RemoteStore) Fetch(key string) ([]OrderEntry, error) {
	resp, err := r.do(http.MethodGet, r.baseURL+"/orders/"+key, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote order fetch returned status %d", resp.StatusCode)
	}

	var rec OrderRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to parse remote order record: %w", err)
	}
	return rec.Order, nil
}
