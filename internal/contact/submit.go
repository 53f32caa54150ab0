package contact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/verte-zerg/tuifolio/internal/model"
)

// DefaultEndpoint is the form-collection URL the page posts to.
const DefaultEndpoint = "https://docs.google.com/forms/u/0/d/e/1FAIpQLScDIPqrubh3bVKTUc-AIPBKIdYnynZYi_nhi1ERtFDbzbvd6Q/formResponse"

// DefaultTimeout bounds one submission.
const DefaultTimeout = 15 * time.Second

// Messages shown after a submission.
const (
	SuccessMessage = "Thanks for your response!"
	FailureMessage = "Sorry, something went wrong. Please try again."
)

// ErrInFlight is returned when a submission is already running.
var ErrInFlight = errors.New("contact: submission already in progress")

// Recorder stores submission attempts.
type Recorder interface {
	InsertSubmission(ctx context.Context, sub model.Submission) (model.Submission, error)
}

// Submitter relays validated forms to the endpoint. Only one submission
// runs at a time.
type Submitter struct {
	endpoint string
	client   *http.Client
	recorder Recorder
	now      func() time.Time

	mu      sync.Mutex
	loading bool
}

// NewSubmitter returns a submitter posting to endpoint. A nil recorder skips recording.
func NewSubmitter(endpoint string, timeout time.Duration, recorder Recorder) *Submitter {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Submitter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		recorder: recorder,
		now:      time.Now,
	}
}

// Endpoint returns the URL forms are posted to.
func (s *Submitter) Endpoint() string {
	return s.endpoint
}

// Loading reports whether a submission is in flight.
func (s *Submitter) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Submit validates form, posts it, and records the attempt. Validation
// failures return a *ValidationError and are not recorded.
func (s *Submitter) Submit(ctx context.Context, form model.ContactForm) error {
	if !s.begin() {
		return ErrInFlight
	}
	defer s.end()

	if err := Validate(form); err != nil {
		return err
	}
	sendErr := s.post(ctx, form)

	sub := model.Submission{Form: form, Status: model.SubmissionSent}
	if sendErr != nil {
		sub.Status = model.SubmissionFailed
		sub.Error = sendErr.Error()
	}
	if s.recorder != nil {
		if _, err := s.recorder.InsertSubmission(context.WithoutCancel(ctx), sub); err != nil {
			logErrf("failed to record submission: %v\n", err)
		}
	}
	return sendErr
}

// Fields maps form onto the endpoint's field names.
func Fields(form model.ContactForm, now time.Time) url.Values {
	values := url.Values{}
	values.Set("entry.436790427", form.Name)
	values.Set("entry.1826983457", form.Email)
	values.Set("entry.1398257962", form.Institute)
	values.Set("entry.2023186783", form.Subject)
	values.Set("entry.1185156895", form.Rating)
	values.Set("fvv", "1")
	values.Set("pageHistory", "0")
	values.Set("fbzx", strconv.FormatInt(now.UnixMilli(), 10))
	return values
}

func (s *Submitter) post(ctx context.Context, form model.ContactForm) error {
	body := Fields(form, s.now()).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort body close.
			_ = cerr
		}
	}()
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("form endpoint returned %s", resp.Status)
	}
	return nil
}

func (s *Submitter) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return false
	}
	s.loading = true
	return true
}

func (s *Submitter) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}
