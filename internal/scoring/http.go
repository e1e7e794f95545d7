package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/fraudlens/fraud-console/internal/domain"
)

// DefaultTimeout matches the transport timeout the console has always used
// for scoring calls.
const DefaultTimeout = 30 * time.Second

// HTTPClient talks to the scoring service over JSON/HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewHTTPClient creates a client for the service at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration, log zerolog.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// wire shapes for the three predict endpoints.
type predictionBody struct {
	Label       string         `json:"label"`
	Probability float64        `json:"probability"`
	FraudScore  *float64       `json:"fraud_score,omitempty"`
	Input       map[string]any `json:"input,omitempty"`
}

type batchRequest struct {
	Transactions []domain.Record `json:"transactions"`
}

type batchResponse struct {
	Predictions []predictionBody `json:"predictions"`
}

// normalize turns a wire prediction into a domain outcome. When the
// service does not report a distinct fraud score, the probability is
// copied into it so both fields are always present downstream.
func (p predictionBody) normalize() domain.Outcome {
	out := domain.Outcome{
		Label:       domain.Label(p.Label),
		Probability: p.Probability,
		FraudScore:  p.Probability,
	}
	if p.FraudScore != nil {
		out.FraudScore = *p.FraudScore
	}
	return out
}

// PredictOne implements Client.
func (c *HTTPClient) PredictOne(ctx context.Context, rec domain.Record) (domain.Outcome, error) {
	const op = "predict_transaction"

	var body predictionBody
	if err := c.postJSON(ctx, op, "/predict_transaction", rec, &body); err != nil {
		return domain.Outcome{}, err
	}

	c.log.Debug().Str("label", body.Label).Float64("probability", body.Probability).
		Msg("single prediction received")
	return body.normalize(), nil
}

// PredictBatch implements Client. It checks the order/length contract
// before handing anything downstream: a response of the wrong length
// fails the whole batch.
func (c *HTTPClient) PredictBatch(ctx context.Context, records []domain.Record) ([]domain.Outcome, error) {
	const op = "predict_batch"

	var resp batchResponse
	if err := c.postJSON(ctx, op, "/predict_batch", batchRequest{Transactions: records}, &resp); err != nil {
		return nil, err
	}

	if len(resp.Predictions) != len(records) {
		return nil, &Error{Op: op, Err: fmt.Errorf(
			"response length %d does not match request length %d",
			len(resp.Predictions), len(records))}
	}

	outcomes := make([]domain.Outcome, len(resp.Predictions))
	for i, p := range resp.Predictions {
		outcomes[i] = p.normalize()
	}

	c.log.Info().Int("count", len(outcomes)).Msg("batch predictions received")
	return outcomes, nil
}

// PredictFile implements Client.
func (c *HTTPClient) PredictFile(ctx context.Context, filename string, file io.Reader) ([]FilePrediction, error) {
	const op = "predict_csv"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &Error{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict_csv", &buf)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp batchResponse
	if err := c.do(op, req, &resp); err != nil {
		return nil, err
	}

	predictions := make([]FilePrediction, len(resp.Predictions))
	for i, p := range resp.Predictions {
		predictions[i] = FilePrediction{Outcome: p.normalize(), Input: domain.Record(p.Input)}
	}

	c.log.Info().Int("count", len(predictions)).Str("filename", filename).
		Msg("file predictions received")
	return predictions, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, op, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &Error{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(op, req, out)
}

func (c *HTTPClient) do(op string, req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("op", op).Msg("scoring request failed")
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &Error{Op: op, Status: resp.StatusCode,
			Err: fmt.Errorf("server error: %s", bytes.TrimSpace(raw))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Err: fmt.Errorf("malformed response body: %w", err)}
	}
	return nil
}

var _ Client = (*HTTPClient)(nil)
