package services

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Fallback strings are part of the front-end contract; callers send them
// verbatim instead of surfacing upstream failures.
const (
	ChatEmptyPromptMessage = "🚫 Please enter a question"
	ChatErrorMessage       = "⚠️ An error occurred while processing your request."
	ChatNoResponseMessage  = "⚠️ No response from model."
	ChatStreamErrorMessage = "⚠️ Error: Service unavailable"
)

const chatSystemInstructions = `You are a concise, chill assistant.
User input may have missing spaces.
When you respond, separate every pair of words with exactly one real space character.
Do NOT write the word 'space'—only use actual spaces.`

var (
	wordSpacePattern = regexp.MustCompile(`(?i)\bspace\b`)
	spaceRunPattern  = regexp.MustCompile(` +`)
)

// OllamaClient proxies prompts to a local Ollama instance.
type OllamaClient struct {
	BaseURL string
	Model   string
	Log     *logrus.Logger

	client *http.Client
}

func NewOllamaClient(baseURL, model string, log *logrus.Logger) *OllamaClient {
	return &OllamaClient{
		BaseURL: baseURL,
		Model:   model,
		Log:     log,
		client:  &http.Client{Timeout: 2 * time.Minute},
	}
}

// Generate sends the prompt and buffers the whole cleaned response.
func (oc *OllamaClient) Generate(userPrompt string) (string, error) {
	var sb strings.Builder
	err := oc.Stream(userPrompt, func(chunk string) error {
		sb.WriteString(chunk)
		sb.WriteString(" ")
		return nil
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(sb.String()), nil
}

// Stream sends the prompt and invokes send once per cleaned chunk. The
// upstream answers with newline-delimited JSON objects; chunks that fail to
// parse are logged and skipped rather than failing the stream.
func (oc *OllamaClient) Stream(userPrompt string, send func(chunk string) error) error {
	payload := map[string]interface{}{
		"model":  oc.Model,
		"prompt": buildPrompt(userPrompt),
		"stream": true,
		"options": map[string]interface{}{
			"temperature":    0.3,
			"max_tokens":     150,
			"repeat_penalty": 1.2,
			"top_k":          50,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := oc.client.Post(oc.BaseURL+"/api/generate", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New("ollama returned status " + resp.Status)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		cleaned, ok := oc.cleanChunk(line)
		if !ok || cleaned == "" {
			continue
		}
		if err := send(cleaned); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (oc *OllamaClient) cleanChunk(line []byte) (string, bool) {
	var chunk struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(line, &chunk); err != nil {
		oc.Log.WithError(err).WithField("chunk", string(line)).Warn("failed to parse model chunk")
		return "", false
	}
	noWordSpace := wordSpacePattern.ReplaceAllString(chunk.Response, "")
	return strings.TrimSpace(spaceRunPattern.ReplaceAllString(noWordSpace, " ")), true
}

// The model expects the llama3 chat template spelled out by hand.
func buildPrompt(userPrompt string) string {
	return fmt.Sprintf(
		"<|begin_of_text|><|start_header_id|>system<|end_header_id|>\n%s<|eot_id|>\n"+
			"<|start_header_id|>user<|end_header_id|>\n%s<|eot_id|>\n"+
			"<|start_header_id|>assistant<|end_header_id|>\n",
		chatSystemInstructions, userPrompt,
	)
}
