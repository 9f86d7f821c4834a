package aury

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ahorify-go-be/logger"
)

func TestParseTone(t *testing.T) {
	cases := []struct {
		input   string
		want    Tone
		wantErr bool
	}{
		{"sarcastic", ToneSarcastic, false},
		{"subtle", ToneSubtle, false},
		{"analytical", ToneAnalytical, false},
		{"", ToneSarcastic, false},
		{"SARCASTIC", "", true},
		{"angry", "", true},
	}
	for _, tc := range cases {
		got, err := ParseTone(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTone(%q): expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTone(%q): unexpected error %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("ParseTone(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestFallbackPickByCategoryFamily(t *testing.T) {
	fallbacks := DefaultFallbacks()

	foodPool := fallbacks.Pools[0].Responses
	for i := 0; i < 20; i++ {
		got := fallbacks.Pick("🍔 Comida")
		if got == "" {
			t.Fatal("fallback returned empty string")
		}
		found := false
		for _, r := range foodPool {
			if r == got {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("response %q not in the food pool", got)
		}
	}
}

func TestFallbackPickDefaultPool(t *testing.T) {
	fallbacks := DefaultFallbacks()
	for i := 0; i < 20; i++ {
		got := fallbacks.Pick("❓ Otros")
		if got == "" {
			t.Fatal("fallback returned empty string")
		}
		found := false
		for _, r := range fallbacks.Default {
			if r == got {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("response %q not in the default pool", got)
		}
	}
}

func TestFallbackNeverEmpty(t *testing.T) {
	empty := Fallbacks{}
	if empty.Pick("anything") == "" {
		t.Error("fallback must never return an empty string")
	}
}

// fakeGenerator records the last request and returns canned output.
type fakeGenerator struct {
	system      string
	prompt      string
	temperature float32
	text        string
	err         error
}

func (f *fakeGenerator) Generate(_ context.Context, system, prompt string, temperature float32) (string, error) {
	f.system = system
	f.prompt = prompt
	f.temperature = temperature
	return f.text, f.err
}

func testRequest() Request {
	amount := decimal.NewFromFloat(15.5)
	return Request{
		RawText:       "Pizza 15,50 euros",
		Amount:        &amount,
		Category:      "🍔 Comida",
		CurrentStreak: 4,
		UserGoal:      "un viaje a Japón",
		Tone:          ToneSarcastic,
	}
}

func TestRespondUsesGeneratedText(t *testing.T) {
	buf := &bytes.Buffer{}
	fake := &fakeGenerator{text: "Qué manera tan creativa de no ahorrar."}
	svc := NewService(fake, DefaultFallbacks(), logger.NewWithWriter(buf))

	got := svc.Respond(context.Background(), testRequest())
	if got != "Qué manera tan creativa de no ahorrar." {
		t.Errorf("expected generated text, got %q", got)
	}
}

func TestRespondPromptContext(t *testing.T) {
	fake := &fakeGenerator{text: "ok"}
	svc := NewService(fake, DefaultFallbacks(), logger.NewWithWriter(&bytes.Buffer{}))

	svc.Respond(context.Background(), testRequest())

	for _, want := range []string{"15.5", "Comida", "4 días", "un viaje a Japón"} {
		if !strings.Contains(fake.prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, fake.prompt)
		}
	}
	if strings.Contains(fake.prompt, "🍔") {
		t.Error("category emoji must be stripped from the prompt")
	}
	if fake.temperature != 0.9 {
		t.Errorf("expected sarcastic temperature 0.9, got %v", fake.temperature)
	}
}

func TestRespondTemperaturePerTone(t *testing.T) {
	cases := []struct {
		tone Tone
		want float32
	}{
		{ToneSarcastic, 0.9},
		{ToneSubtle, 0.6},
		{ToneAnalytical, 0.3},
	}
	for _, tc := range cases {
		fake := &fakeGenerator{text: "ok"}
		svc := NewService(fake, DefaultFallbacks(), logger.NewWithWriter(&bytes.Buffer{}))
		req := testRequest()
		req.Tone = tc.tone
		svc.Respond(context.Background(), req)
		if fake.temperature != tc.want {
			t.Errorf("tone %s: expected temperature %v, got %v", tc.tone, tc.want, fake.temperature)
		}
	}
}

func TestRespondFallsBackOnError(t *testing.T) {
	fake := &fakeGenerator{err: errors.New("upstream down")}
	svc := NewService(fake, DefaultFallbacks(), logger.NewWithWriter(&bytes.Buffer{}))

	got := svc.Respond(context.Background(), testRequest())
	if got == "" {
		t.Fatal("fallback must return a non-empty string")
	}
	foodPool := DefaultFallbacks().Pools[0].Responses
	found := false
	for _, r := range foodPool {
		if r == got {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected a food-pool response, got %q", got)
	}
}

func TestRespondFallsBackOnEmptyText(t *testing.T) {
	fake := &fakeGenerator{text: "   "}
	svc := NewService(fake, DefaultFallbacks(), logger.NewWithWriter(&bytes.Buffer{}))

	if got := svc.Respond(context.Background(), testRequest()); got == "" {
		t.Error("fallback must return a non-empty string")
	}
}

func TestRespondWithoutGenerator(t *testing.T) {
	svc := NewService(nil, DefaultFallbacks(), logger.NewWithWriter(&bytes.Buffer{}))

	if got := svc.Respond(context.Background(), testRequest()); got == "" {
		t.Error("unconfigured generator must still produce a remark")
	}
}

// slowGenerator blocks until its context is done.
type slowGenerator struct{}

func (slowGenerator) Generate(ctx context.Context, _, _ string, _ float32) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestRespondGenerationIsTimeBounded(t *testing.T) {
	svc := NewService(slowGenerator{}, DefaultFallbacks(), logger.NewWithWriter(&bytes.Buffer{}))

	start := time.Now()
	got := svc.Respond(context.Background(), testRequest())
	if got == "" {
		t.Error("timeout must fall back to a canned response")
	}
	if elapsed := time.Since(start); elapsed > generationTimeout+time.Second {
		t.Errorf("respond took %v, expected it bounded near %v", elapsed, generationTimeout)
	}
}

func TestRespondHandlesMissingAmountAndGoal(t *testing.T) {
	fake := &fakeGenerator{text: "ok"}
	svc := NewService(fake, DefaultFallbacks(), logger.NewWithWriter(&bytes.Buffer{}))

	req := testRequest()
	req.Amount = nil
	req.UserGoal = ""
	svc.Respond(context.Background(), req)

	if !strings.Contains(fake.prompt, "N/A") {
		t.Error("missing amount must render as N/A")
	}
	if !strings.Contains(fake.prompt, "No especificado") {
		t.Error("missing goal must render as No especificado")
	}
}
