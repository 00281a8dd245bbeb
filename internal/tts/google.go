package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://translate.google.com/translate_tts"

// slowSpeed is the playback rate the translate endpoint applies for slow
// speech.
const slowSpeed = 0.24

// GoogleSynthesizer fetches MP3 narration from the Google Translate TTS
// endpoint.
type GoogleSynthesizer struct {
	// BaseURL overrides the translate endpoint; empty means the default.
	BaseURL string
	// Client defaults to a client with a 30s timeout.
	Client *http.Client
}

// NewGoogleSynthesizer returns a synthesizer with default endpoint and client.
func NewGoogleSynthesizer() *GoogleSynthesizer {
	return &GoogleSynthesizer{}
}

// Synthesize fetches speech for the request and writes the MP3 to outPath.
func (g *GoogleSynthesizer) Synthesize(ctx context.Context, req Request, outPath string) error {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return ErrEmptyText
	}

	lang := req.Language
	if lang == "" {
		lang = "en"
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.requestURL(text, lang, req.Slow), nil)
	if err != nil {
		return fmt.Errorf("build tts request: %w", err)
	}

	client := g.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("fetch speech: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch speech: status %d", resp.StatusCode)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write audio file: %w", err)
	}
	return nil
}

func (g *GoogleSynthesizer) requestURL(text, lang string, slow bool) string {
	base := g.BaseURL
	if base == "" {
		base = defaultBaseURL
	}

	speed := 1.0
	if slow {
		speed = slowSpeed
	}

	values := url.Values{}
	values.Set("ie", "UTF-8")
	values.Set("client", "tw-ob")
	values.Set("q", text)
	values.Set("tl", lang)
	values.Set("textlen", strconv.Itoa(len(text)))
	values.Set("ttsspeed", strconv.FormatFloat(speed, 'f', -1, 64))

	return base + "?" + values.Encode()
}
