// Package verify calls the Gemini API to assess task photos and to answer
// coach chat messages. Verdicts are advisory: the tracker completes tasks
// whether or not the image verifies.
package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/fitmyself/internal/models"
)

// ErrUnavailable is returned when the verifier is not configured or the
// upstream call fails. Callers fall back to manual completion.
var ErrUnavailable = errors.New("verification unavailable")

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client talks to the Gemini generateContent endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a Gemini client. An empty apiKey yields a client whose
// calls all return ErrUnavailable, which keeps the rest of the app working
// without a key. baseURL overrides the Google endpoint, mainly for tests.
func NewClient(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// VerifyWorkoutImage asks the model whether the photo shows the named
// workout being performed.
func (c *Client) VerifyWorkoutImage(ctx context.Context, imageB64, mimeType, workoutType string) (models.AIVerdict, error) {
	prompt := fmt.Sprintf(`Analyze this image to verify if it shows someone performing a %s workout or exercise.

Please respond with a JSON object containing:
- verified: boolean (true if this appears to be a legitimate workout/exercise photo)
- confidence: number (0-100, confidence level in your assessment)
- feedback: string (brief explanation of what you see and why it does/doesn't qualify)

Look for:
- Person in workout attire or exercise position
- Exercise equipment if relevant
- Proper form or exercise setup
- Gym/home workout environment

Be reasonably lenient but reject obviously fake submissions like random objects, food, or non-exercise activities.`, workoutType)

	text, err := c.generate(ctx, prompt, imageB64, mimeType)
	if err != nil {
		return models.AIVerdict{}, err
	}
	return parseVerdict(text, "verified", "legitimate"), nil
}

// VerifyMealImage asks the model whether the photo shows a healthy meal
// matching the named meal.
func (c *Client) VerifyMealImage(ctx context.Context, imageB64, mimeType, mealType string) (models.AIVerdict, error) {
	prompt := fmt.Sprintf(`Analyze this image to verify if it shows a healthy meal appropriate for %s.

Please respond with a JSON object containing:
- verified: boolean (true if this appears to be a legitimate healthy meal photo)
- confidence: number (0-100, confidence level in your assessment)
- feedback: string (brief explanation of what you see and nutritional assessment)

Look for:
- Real food items (not junk food, candy, or unhealthy options)
- Balanced meal components (proteins, vegetables, grains, etc.)
- Proper portion sizes
- Home-cooked or restaurant meal presentation

Accept reasonable healthy meals but reject junk food, candy, alcohol, or obviously unhealthy choices.`, mealType)

	text, err := c.generate(ctx, prompt, imageB64, mimeType)
	if err != nil {
		return models.AIVerdict{}, err
	}
	return parseVerdict(text, "healthy", "nutritious"), nil
}

// Chat answers a coaching question in the FitBot persona. userContext, when
// non-empty, is prepended so the model can tailor the answer.
func (c *Client) Chat(ctx context.Context, message, userContext string) (string, error) {
	prompt := `You are FitBot, an AI fitness coach for the FitMyself app. You're knowledgeable, encouraging, and provide practical fitness advice.

Guidelines:
- Keep responses concise but helpful (2-3 sentences max)
- Focus on fitness, nutrition, wellness, and motivation
- Be encouraging and positive
- Provide actionable advice when possible
- If asked about medical issues, recommend consulting healthcare professionals

`
	if userContext != "" {
		prompt += "User context: " + userContext + "\n\n"
	}
	prompt += "User message: " + message

	return c.generate(ctx, prompt, "", "")
}

// Request/response shapes for the generateContent endpoint.

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate sends one prompt (with optional inline image) and returns the
// first candidate's text.
func (c *Client) generate(ctx context.Context, prompt, imageB64, mimeType string) (string, error) {
	if !c.Configured() {
		return "", ErrUnavailable
	}

	parts := []part{{Text: prompt}}
	if imageB64 != "" {
		parts = append(parts, part{InlineData: &inlineData{MimeType: mimeType, Data: imageB64}})
	}

	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: parts}}})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, b)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// parseVerdict extracts the JSON verdict from the model's text. When the
// model does not return parseable JSON, a lenient keyword heuristic decides,
// with reduced confidence.
func parseVerdict(text string, keywords ...string) models.AIVerdict {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var parsed struct {
		Verified   bool    `json:"verified"`
		Confidence float64 `json:"confidence"`
		Feedback   string  `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err == nil {
		v := models.AIVerdict{
			Verified:   parsed.Verified,
			Confidence: clampConfidence(int(parsed.Confidence)),
			Feedback:   parsed.Feedback,
		}
		if v.Feedback == "" {
			v.Feedback = "Unable to analyze image"
		}
		return v
	}

	lower := strings.ToLower(text)
	verified := false
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			verified = true
			break
		}
	}
	confidence := 25
	if verified {
		confidence = 75
	}
	feedback := text
	if len(feedback) > 200 {
		feedback = feedback[:200]
	}
	return models.AIVerdict{Verified: verified, Confidence: confidence, Feedback: feedback}
}

func clampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
