package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/genai"

	"github.com/jmylchreest/irodori/pkg/colour"
	"github.com/jmylchreest/irodori/pkg/plugin"
)

const (
	// defaultGeminiModel is the model used when none is specified.
	defaultGeminiModel = "gemini-2.5-flash"

	// defaultGeminiBackend is the backend used when none is specified.
	defaultGeminiBackend = "gemini-api"

	// defaultGeminiCount is how many colours to ask the model for when
	// the request does not specify a number.
	defaultGeminiCount = 6
)

// GeminiProvider designs palettes by asking a Google Gemini text model
// to pick colours for a free-form prompt.
type GeminiProvider struct {
	model   string
	backend string
}

// NewGeminiProvider creates the built-in gemini provider.
func NewGeminiProvider() *GeminiProvider {
	return &GeminiProvider{
		model:   defaultGeminiModel,
		backend: defaultGeminiBackend,
	}
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Description returns the provider description.
func (p *GeminiProvider) Description() string {
	return "Design a palette with a Google Gemini model from a text prompt"
}

// RegisterFlags registers the gemini provider's flags.
func (p *GeminiProvider) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.model, "gemini.model", p.model, "Gemini model to use")
	cmd.Flags().StringVar(&p.backend, "gemini.backend", p.backend, "Google Gen AI backend (gemini-api or vertex-ai)")
}

// Validate checks the backend name. The API key is checked when a
// palette is actually requested, so listing providers works without one.
func (p *GeminiProvider) Validate() error {
	switch p.backend {
	case "gemini-api", "vertex-ai":
		return nil
	}
	return fmt.Errorf("unknown gemini backend %q (gemini-api or vertex-ai)", p.backend)
}

// FlagHelp describes the gemini provider's flags.
func (p *GeminiProvider) FlagHelp() []plugin.FlagHelp {
	return FlagHelpFor(NewGeminiProvider())
}

// Palette asks the model for req.Count colours matching req.Prompt.
func (p *GeminiProvider) Palette(ctx context.Context, req plugin.Request) ([]plugin.Colour, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, fmt.Errorf("the gemini provider requires a prompt")
	}

	count := req.Count
	if count <= 0 {
		count = defaultGeminiCount
	}

	client, err := p.client(ctx)
	if err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	contents := genai.Text(buildPalettePrompt(prompt, count))

	if req.Verbose {
		fmt.Fprintf(os.Stderr, "[gemini] backend=%s model=%s prompt=%q\n", p.backend, p.model, prompt)
	}

	resp, err := client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("palette generation failed: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("model response holds no text")
	}

	colours, err := parsePaletteResponse(text)
	if err != nil {
		return nil, err
	}
	if len(colours) > count {
		colours = colours[:count]
	}
	return colours, nil
}

// client builds a Gen AI client for the configured backend.
func (p *GeminiProvider) client(ctx context.Context) (*genai.Client, error) {
	config := &genai.ClientConfig{}

	if p.backend == "vertex-ai" {
		config.Backend = genai.BackendVertexAI
	} else {
		config.Backend = genai.BackendGeminiAPI
	}

	if config.Backend == genai.BackendGeminiAPI {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			apiKey = os.Getenv("GOOGLE_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY or GOOGLE_API_KEY environment variable is required\nGet one at: https://aistudio.google.com/api-keys")
		}
		config.APIKey = apiKey
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}
	return client, nil
}

// buildPalettePrompt frames the user's prompt as a strict-JSON request.
func buildPalettePrompt(prompt string, count int) string {
	return fmt.Sprintf(
		"Design a colour palette of exactly %d colours for: %s. "+
			"Respond with only a JSON array of objects, each holding a "+
			"\"hex\" field with a #RRGGBB colour and a short lowercase "+
			"\"name\" field.",
		count, prompt)
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(b.String())
}

// paletteEntry is the JSON shape the prompt asks the model for.
type paletteEntry struct {
	Hex  string `json:"hex"`
	Name string `json:"name"`
}

// parsePaletteResponse decodes the model's JSON. Models occasionally wrap
// the array in a markdown fence despite the instructions, so fences are
// stripped first.
func parsePaletteResponse(text string) ([]plugin.Colour, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var entries []paletteEntry
	if err := json.Unmarshal([]byte(text), &entries); err != nil {
		return nil, fmt.Errorf("model response is not a palette: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("model returned an empty palette")
	}

	colours := make([]plugin.Colour, 0, len(entries))
	for _, e := range entries {
		rgb, err := colour.ParseHex(e.Hex)
		if err != nil {
			return nil, fmt.Errorf("model returned colour %q: %w", e.Hex, err)
		}
		colours = append(colours, plugin.Colour{R: rgb.R, G: rgb.G, B: rgb.B, Name: e.Name})
	}
	return colours, nil
}
