package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/webhook-scheduler/webhook/signature"
	"github.com/rs/zerolog"
)

const (
	// UserAgent is sent with every webhook call
	UserAgent = "webhook-scheduler/1.0"

	// MaxBodyBytes caps how much of a response body is kept; longer bodies are truncated
	MaxBodyBytes = 10 << 20
)

/* Invoker calls targets and records one Response per call
 * It never returns an error: every failure ends up described in the Response
 */
type Invoker struct {
	repo     Writer
	client   *http.Client
	recorder Recorder
	logger   zerolog.Logger
	now      func() time.Time
}

// NewInvoker creates an invoker writing to repo. A nil client uses a default
// client without its own timeout, since deadlines come from each target.
func NewInvoker(repo Writer, client *http.Client, recorder Recorder, logger zerolog.Logger) *Invoker {
	if client == nil {
		client = &http.Client{}
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Invoker{
		repo:     repo,
		client:   client,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Invoke calls the target and appends the outcome to the history
func (i *Invoker) Invoke(ctx context.Context, target Target) Response {
	response := i.call(ctx, target)
	response.Timestamp = i.now()

	// Append failures are logged only: the caller still gets the outcome
	if err := i.repo.Append(ctx, response); err != nil {
		i.logger.Error().Err(err).Str("target", target.Name).Msg("recording webhook response")
	}
	i.recorder.RecordInvocation(ctx, response)

	i.logger.Info().
		Str("id", response.ID).
		Str("target", target.Name).
		Int("status_code", response.StatusCode).
		Str("status_message", response.StatusMessage).
		Dur("duration", response.Duration).
		Msg("webhook call completed")
	return response
}

func (i *Invoker) call(ctx context.Context, target Target) Response {
	response := Response{
		ID:     uuid.New().String(),
		Target: target.Name,
	}

	if !target.Configured() {
		i.logger.Warn().Str("target", target.Name).Msg("webhook URL is not configured")
		return failed(response, StatusNotConfigured, fmt.Sprintf("%s webhook URL is not configured", target.Name))
	}

	timeout := target.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Only a missing URL is a configuration error; anything else failing here is a transport failure
	req, err := i.newRequest(ctx, target, response.ID)
	if err != nil {
		i.logger.Error().Err(err).Str("target", target.Name).Msg("building webhook request")
		return failed(response, StatusTransportError, err.Error())
	}

	i.logger.Info().Str("target", target.Name).Str("url", target.URL).Str("method", req.Method).Msg("starting webhook call")

	started := i.now()
	resp, err := i.client.Do(req)
	if err != nil {
		response.Duration = i.now().Sub(started)
		i.logger.Error().Err(err).Str("target", target.Name).Msg("calling webhook")
		return failed(response, StatusTransportError, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	response.Duration = i.now().Sub(started)
	if err != nil {
		i.logger.Error().Err(err).Str("target", target.Name).Msg("reading webhook response body")
		return failed(response, StatusTransportError, fmt.Sprintf("reading response body: %v", err))
	}
	truncated := len(body) > MaxBodyBytes
	if truncated {
		body = body[:MaxBodyBytes]
		i.logger.Warn().Str("target", target.Name).Int("limit_bytes", MaxBodyBytes).Msg("webhook response body truncated")
	}

	i.logger.Debug().Int("status_code", resp.StatusCode).Int("body_length", len(body)).Msg("received webhook response")

	response.StatusCode = resp.StatusCode
	response.StatusMessage = StatusSuccess

	value, err := decodeJSON(body)
	if err != nil {
		// An unparseable body is kept verbatim, it is not an error
		i.logger.Warn().Err(err).Str("target", target.Name).Msg("webhook response is not JSON")
		response.Data = map[string]any{"response": string(body)}
		if truncated {
			response.Data["truncated"] = true
		}
		return response
	}

	response.Data = ExtractOutputContent(value)
	_, hasTitle := response.Data["title"]
	_, hasContent := response.Data["content"]
	i.logger.Debug().Bool("has_title", hasTitle).Bool("has_content", hasContent).Msg("extracted webhook content")
	return response
}

func (i *Invoker) newRequest(ctx context.Context, target Target, id string) (*http.Request, error) {
	method := http.MethodGet
	var body []byte
	var reader io.Reader
	if target.Method == POST {
		method = http.MethodPost
		body = []byte{}
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.URL, reader)
	if err != nil {
		return nil, fmt.Errorf("building request for %s webhook: %w", target.Name, err)
	}
	if target.Method == POST {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", UserAgent)

	if target.SigningSecret != "" {
		if err := sign(req, target.SigningSecret, id, i.now(), body); err != nil {
			return nil, fmt.Errorf("signing request for %s webhook: %w", target.Name, err)
		}
	}
	return req, nil
}

// sign adds the Standard Webhooks headers to the request
func sign(req *http.Request, encodedSecret, id string, timestamp time.Time, body []byte) error {
	secret, err := signature.ParseSecret(encodedSecret)
	if err != nil {
		return err
	}
	sig, err := signature.Sign(secret, id, timestamp, body)
	if err != nil {
		return err
	}
	req.Header.Set(signature.HeaderID, id)
	req.Header.Set(signature.HeaderTimestamp, strconv.FormatInt(timestamp.Unix(), 10))
	req.Header.Set(signature.HeaderSignature, signature.BuildSignatureHeader([]signature.Signature{sig}))
	return nil
}

// decodeJSON decodes a single JSON document, keeping numbers verbatim
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("decoding body: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding body: unexpected data after JSON value")
	}
	return value, nil
}

func failed(response Response, statusCode int, message string) Response {
	response.StatusCode = statusCode
	response.StatusMessage = StatusError
	response.Error = message
	return response
}
