package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
)

const BaseURLRESTAPI = "https://generativelanguage.googleapis.com/v1beta"

const defaultTemperature = 0.7

type client struct {
	apiKey string
	model  string
}

func New(apiKey string, model string) Client {
	return client{
		apiKey: apiKey,
		model:  model,
	}
}

type Part struct {
	Text string `json:"text"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type GenerationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	Temperature      float64 `json:"temperature"`
}

type generateContentDto struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

func (client client) GenerateJSON(ctx context.Context, prompt string) ([]byte, error) {
	endpoint := fmt.Sprintf("models/%s:generateContent", client.model)

	body := generateContentDto{
		Contents: []Content{
			{Role: "user", Parts: []Part{{Text: prompt}}},
		},
		GenerationConfig: GenerationConfig{
			ResponseMimeType: "application/json",
			Temperature:      defaultTemperature,
		},
	}

	var response GenerateContentResponse
	err := client.sendRequest(ctx, endpoint, body, &response)
	if err != nil {
		return nil, err
	}

	if len(response.Candidates) == 0 {
		return nil, errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	return []byte(stripCodeFence(sb.String())), nil
}

func (client client) sendRequest(
	ctx context.Context,
	endpoint string,
	body any,
	dst any,
) error {
	u, err := url.Parse(fmt.Sprintf("%s/%s", BaseURLRESTAPI, endpoint))
	if err != nil {
		return err
	}

	query := u.Query()
	query.Add("key", client.apiKey)
	u.RawQuery = query.Encode()

	marshalled, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		u.String(),
		bytes.NewBuffer(marshalled),
	)
	if err != nil {
		return err
	}

	req.Header.Add("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("gemini returned %s", res.Status)
	}

	return httptools.ReadJSON(res.Body, dst)
}

// stripCodeFence removes a ```json fence some models wrap around output.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
