package commentator

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// TextMode selects which editorial task the text proxy performs. The set is
// closed: every mode owns exactly one (system prompt, instruction, token
// budget) tuple, and anything unrecognized collapses to ModeExcerpt.
type TextMode string

const (
	ModeExcerpt     TextMode = "excerpt"
	ModeTighten     TextMode = "tighten"
	ModeExpand      TextMode = "expand"
	ModeHeadline    TextMode = "headline"
	ModeImagePrompt TextMode = "imagePrompt"
)

// ParseTextMode maps a request-supplied mode string onto the closed set,
// defaulting to ModeExcerpt for anything it does not recognize.
func ParseTextMode(s string) TextMode {
	switch TextMode(s) {
	case ModeExcerpt, ModeTighten, ModeExpand, ModeHeadline, ModeImagePrompt:
		return TextMode(s)
	default:
		return ModeExcerpt
	}
}

type promptSpec struct {
	system      string
	instruction string
	maxTokens   int
}

func (m TextMode) prompt() promptSpec {
	switch m {
	case ModeExpand:
		return promptSpec{
			system: "You are an editorial assistant for 'The Commentator', a serious site on " +
				"democracy, technology, and power. Expand the user's draft into a richer, " +
				"well-structured section in the same voice, without adding wild new ideas.",
			instruction: "Expand the following draft into a fuller section (300-600 words), " +
				"keeping the style and argument consistent. Do not add subheadings.",
			maxTokens: 800,
		}
	case ModeTighten:
		return promptSpec{
			system: "You are an editor for 'The Commentator'. Rewrite the text to be tighter, " +
				"clearer, and more direct, keeping the author's voice and meaning.",
			instruction: "Rewrite the following text to be tighter and clearer while preserving " +
				"the meaning and tone. Shorten by roughly 20-30%.",
			maxTokens: 200,
		}
	case ModeHeadline:
		return promptSpec{
			system: "You are a headline writer for 'The Commentator'. Suggest 3 sharp, serious " +
				"headlines (no clickbait) that would fit a Guardian/Atlantic-style outlet.",
			instruction: "Based on the following article, suggest 3 alternative headlines, " +
				"numbered 1-3. Keep them serious and non-sensational.",
			maxTokens: 200,
		}
	case ModeImagePrompt:
		return promptSpec{
			system: "You help create concise, vivid prompts for an AI image generator. " +
				"You write in neutral, descriptive language suitable for editorial illustrations " +
				"about democracy, technology, and geopolitics.",
			instruction: "Based on the following article or description, write a single, clear " +
				"prompt that could be sent to an AI image generator to create an editorial " +
				"illustration. Mention style (e.g. 'clean editorial illustration'), " +
				"key objects, and mood, in one paragraph.",
			maxTokens: 200,
		}
	default: // ModeExcerpt
		return promptSpec{
			system: "You write sharp, concise standfirsts (2-3 sentences, max 60 words) " +
				"for 'The Commentator', a serious opinion site on AI, democracy, and geopolitics. " +
				"Neutral, analytical tone. No clickbait.",
			instruction: "Write a short standfirst (2-3 sentences, maximum 60 words) summarising " +
				"the following article in The Commentator's style:",
			maxTokens: 200,
		}
	}
}

const noResultFallback = "No result could be generated. Try shortening or simplifying the input."

const missingKeyMessage = "OPENAI_API_KEY is not set on the server."

type generateTextRequest struct {
	Input string `json:"input"`
	Mode  string `json:"mode"`
}

// handleGenerateText proxies one text-generation request to the upstream
// model. The response carries the text under both "result" and "excerpt":
// the older tools page still reads the latter.
func (a *App) handleGenerateText(c echo.Context) error {
	if a.Config.OpenAIKey == "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": missingKeyMessage})
	}

	var req generateTextRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Input) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing 'input' in request body"})
	}

	mode := ParseTextMode(req.Mode)
	p := mode.prompt()

	text, err := a.AI.GenerateText(c.Request().Context(), p.system, p.instruction+"\n\n"+req.Input, p.maxTokens)
	if err != nil {
		var ue *UpstreamError
		if errors.As(err, &ue) {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error":   "OpenAI API error",
				"details": ue.Detail,
			})
		}
		c.Logger().Errorf("generate-text failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "Failed to generate text",
			"details": err.Error(),
		})
	}

	if text == "" {
		text = noResultFallback
	}
	return c.JSON(http.StatusOK, echo.Map{
		"mode":    string(mode),
		"result":  text,
		"excerpt": text,
	})
}

type generateImageRequest struct {
	Prompt string `json:"prompt"`
}

// handleGenerateImage proxies one image-generation request. The upstream may
// answer with a hosted URL or inline base64 bytes; both are normalized into
// a single URL-shaped string so the caller never branches on response shape.
func (a *App) handleGenerateImage(c echo.Context) error {
	if a.Config.OpenAIKey == "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": missingKeyMessage})
	}

	var req generateImageRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing 'prompt' in request body"})
	}

	img, err := a.AI.GenerateImage(c.Request().Context(), req.Prompt)
	if err != nil {
		var ue *UpstreamError
		if errors.As(err, &ue) {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "OpenAI image API error: " + ue.Detail,
			})
		}
		c.Logger().Errorf("generate-image failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "Failed to generate image",
			"details": err.Error(),
		})
	}

	url := img.URL
	if url == "" && img.B64JSON != "" {
		url = "data:image/png;base64," + img.B64JSON
	}
	if url == "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "No image data returned from OpenAI."})
	}
	return c.JSON(http.StatusOK, echo.Map{"url": url})
}
