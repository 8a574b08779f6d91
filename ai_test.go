package commentator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTextModeDefaultsToExcerpt(t *testing.T) {
	assert.Equal(t, ModeExcerpt, ParseTextMode(""))
	assert.Equal(t, ModeExcerpt, ParseTextMode("bogus"))
	assert.Equal(t, ModeTighten, ParseTextMode("tighten"))
	assert.Equal(t, ModeImagePrompt, ParseTextMode("imagePrompt"))
}

func TestPromptBudgetsPerMode(t *testing.T) {
	assert.Equal(t, 800, ModeExpand.prompt().maxTokens)
	for _, m := range []TextMode{ModeExcerpt, ModeTighten, ModeHeadline, ModeImagePrompt} {
		assert.Equal(t, 200, m.prompt().maxTokens, "mode %s", m)
	}
}

// toolContext builds an App wired to the given upstream base URL and an echo
// context carrying a JSON request body.
func toolContext(key, baseURL, body string) (*App, echo.Context, *httptest.ResponseRecorder) {
	a := &App{
		Config: SiteConfig{OpenAIKey: key, OpenAIBaseURL: baseURL},
		Echo:   echo.New(),
		AI:     NewOpenAI(key, baseURL),
	}
	req := httptest.NewRequest(http.MethodPost, "/api/generate-text", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return a, a.Echo.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func chatUpstream(t *testing.T, content string, gotReq *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if gotReq != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(gotReq))
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestGenerateTextMissingKey(t *testing.T) {
	a, c, rec := toolContext("", "http://unused", `{"input":"hello"}`)

	require.NoError(t, a.handleGenerateText(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "OPENAI_API_KEY is not set on the server.", decodeBody(t, rec)["error"])
}

func TestGenerateTextBlankInput(t *testing.T) {
	a, c, rec := toolContext("test-key", "http://unused", `{"input":"   ","mode":"tighten"}`)

	require.NoError(t, a.handleGenerateText(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing 'input' in request body", decodeBody(t, rec)["error"])
}

func TestGenerateTextResultAndLegacyExcerptField(t *testing.T) {
	var got chatRequest
	srv := chatUpstream(t, "  A crisp standfirst.  ", &got)
	defer srv.Close()

	a, c, rec := toolContext("test-key", srv.URL, `{"input":"draft text","mode":"tighten"}`)
	require.NoError(t, a.handleGenerateText(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "tighten", body["mode"])
	assert.Equal(t, "A crisp standfirst.", body["result"])
	assert.Equal(t, body["result"], body["excerpt"])

	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, 200, got.MaxTokens)
	assert.InDelta(t, 0.4, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[1].Content, "draft text")
}

func TestGenerateTextUnknownModeFallsBackToExcerpt(t *testing.T) {
	var got chatRequest
	srv := chatUpstream(t, "text", &got)
	defer srv.Close()

	a, c, rec := toolContext("test-key", srv.URL, `{"input":"draft","mode":"nonsense"}`)
	require.NoError(t, a.handleGenerateText(c))

	assert.Equal(t, "excerpt", decodeBody(t, rec)["mode"])
	assert.Contains(t, got.Messages[0].Content, "standfirsts")
}

func TestGenerateTextExpandUsesLargerBudget(t *testing.T) {
	var got chatRequest
	srv := chatUpstream(t, "longer text", &got)
	defer srv.Close()

	a, c, _ := toolContext("test-key", srv.URL, `{"input":"draft","mode":"expand"}`)
	require.NoError(t, a.handleGenerateText(c))

	assert.Equal(t, 800, got.MaxTokens)
}

func TestGenerateTextEmptyCompletionFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	a, c, rec := toolContext("test-key", srv.URL, `{"input":"draft"}`)
	require.NoError(t, a.handleGenerateText(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "excerpt", body["mode"], "omitted mode must default to excerpt")
	assert.Equal(t,
		"No result could be generated. Try shortening or simplifying the input.",
		body["result"])
}

func TestGenerateTextSurfacesUpstreamDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Rate limit reached"}}`))
	}))
	defer srv.Close()

	a, c, rec := toolContext("test-key", srv.URL, `{"input":"draft"}`)
	require.NoError(t, a.handleGenerateText(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "OpenAI API error", body["error"])
	assert.Equal(t, "Rate limit reached", body["details"])
}

func TestGenerateImageBlankPrompt(t *testing.T) {
	a, c, rec := toolContext("test-key", "http://unused", `{"prompt":""}`)

	require.NoError(t, a.handleGenerateImage(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing 'prompt' in request body", decodeBody(t, rec)["error"])
}

func imageUpstream(t *testing.T, payload string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/images/generations", r.URL.Path)
		var req imageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "gpt-image-1", req.Model)
		require.Equal(t, "1024x1024", req.Size)
		require.Equal(t, 1, req.N)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
}

func TestGenerateImageHostedURLPassthrough(t *testing.T) {
	srv := imageUpstream(t, `{"data":[{"url":"https://img.example.com/out.png"}]}`)
	defer srv.Close()

	a, c, rec := toolContext("test-key", srv.URL, `{"prompt":"a lighthouse"}`)
	require.NoError(t, a.handleGenerateImage(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://img.example.com/out.png", decodeBody(t, rec)["url"])
}

func TestGenerateImageBase64Normalized(t *testing.T) {
	srv := imageUpstream(t, `{"data":[{"b64_json":"aGVsbG8="}]}`)
	defer srv.Close()

	a, c, rec := toolContext("test-key", srv.URL, `{"prompt":"a lighthouse"}`)
	require.NoError(t, a.handleGenerateImage(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", decodeBody(t, rec)["url"])
}

func TestGenerateImageEmptyDataIsError(t *testing.T) {
	srv := imageUpstream(t, `{"data":[]}`)
	defer srv.Close()

	a, c, rec := toolContext("test-key", srv.URL, `{"prompt":"a lighthouse"}`)
	require.NoError(t, a.handleGenerateImage(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "No image data returned from OpenAI.", decodeBody(t, rec)["error"])
}

func TestGenerateImageUpstreamErrorPrefixed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid prompt"}}`))
	}))
	defer srv.Close()

	a, c, rec := toolContext("test-key", srv.URL, `{"prompt":"x"}`)
	require.NoError(t, a.handleGenerateImage(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "OpenAI image API error: Invalid prompt", decodeBody(t, rec)["error"])
}
