package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/classify"
)

type fakeClassifier struct {
	result *classify.Result
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(ctx context.Context, query string, hints map[string]string) (*classify.Result, error) {
	f.calls++
	return f.result, f.err
}

func TestRefineSkipsConfidentResults(t *testing.T) {
	fake := &fakeClassifier{result: &classify.Result{Type: citation.Book, Confidence: 0.9}}
	pattern := classify.Result{Type: citation.Journal, Confidence: 0.85, Query: "q"}

	got := Refine(context.Background(), fake, pattern, DefaultThreshold)
	if got.Type != citation.Journal {
		t.Errorf("Refine() changed a confident result to %v", got.Type)
	}
	if fake.calls != 0 {
		t.Errorf("model consulted %d times for a confident result, want 0", fake.calls)
	}
}

func TestRefineAdoptsMoreConfidentAnswer(t *testing.T) {
	fake := &fakeClassifier{result: &classify.Result{Type: citation.Book, Confidence: 0.8, Query: "q"}}
	pattern := classify.Result{Type: citation.Unknown, Confidence: 0, Query: "q"}

	got := Refine(context.Background(), fake, pattern, DefaultThreshold)
	if got.Type != citation.Book || got.Confidence != 0.8 {
		t.Errorf("Refine() = %+v, want the model's answer", got)
	}
}

func TestRefineKeepsPatternWhenModelLessConfident(t *testing.T) {
	fake := &fakeClassifier{result: &classify.Result{Type: citation.Book, Confidence: 0.3}}
	pattern := classify.Result{Type: citation.URL, Confidence: 0.4, Query: "q"}

	got := Refine(context.Background(), fake, pattern, DefaultThreshold)
	if got.Type != citation.URL {
		t.Errorf("Refine() = %v, want the pattern result kept", got.Type)
	}
}

func TestRefineSurvivesModelFailure(t *testing.T) {
	fake := &fakeClassifier{err: errors.New("api down")}
	pattern := classify.Result{Type: citation.Unknown, Confidence: 0, Query: "q"}

	got := Refine(context.Background(), fake, pattern, DefaultThreshold)
	if got.Type != citation.Unknown {
		t.Errorf("Refine() = %v, want pattern result on model failure", got.Type)
	}
}

func TestRefineNilClassifier(t *testing.T) {
	pattern := classify.Result{Type: citation.Unknown, Confidence: 0, Query: "q"}
	if got := Refine(context.Background(), nil, pattern, DefaultThreshold); got.Type != citation.Unknown {
		t.Errorf("Refine(nil) = %v, want pattern result", got.Type)
	}
}

func TestOpenAIClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) != 2 {
			t.Errorf("got %d messages, want system + user", len(req.Messages))
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{
					"role":    "assistant",
					"content": `{"type": "legal", "confidence": 0.85, "reasoning": "party names with versus"}`,
				}},
			},
		})
	}))
	defer srv.Close()

	c, err := NewOpenAI("test-key", WithBaseURL("test-key", srv.URL+"/v1"))
	if err != nil {
		t.Fatalf("NewOpenAI() error = %v", err)
	}

	got, err := c.Classify(context.Background(), "that case about school segregation", nil)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if got.Type != citation.Legal {
		t.Errorf("Type = %v, want Legal", got.Type)
	}
	if got.Confidence != 0.85 {
		t.Errorf("Confidence = %v, want 0.85", got.Confidence)
	}
	if got.Hints["ai_reasoning"] == "" {
		t.Error("missing reasoning hint")
	}
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	if _, err := NewOpenAI(""); err == nil {
		t.Error("expected error for missing API key")
	}
}
