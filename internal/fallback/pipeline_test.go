package fallback_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/anukol/sitechat/internal/fallback"
)

// MockCompleter implements fallback.Completer
type MockCompleter struct {
	Calls      int
	OnComplete func(ctx context.Context, system string, user string) (string, error)
}

func (m *MockCompleter) Complete(ctx context.Context, system string, user string) (string, error) {
	m.Calls++
	if m.OnComplete != nil {
		return m.OnComplete(ctx, system, user)
	}
	return "stage output", nil
}

func TestRun_ResearchFeedsWriter(t *testing.T) {
	completer := &MockCompleter{
		OnComplete: func(ctx context.Context, system string, user string) (string, error) {
			if strings.Contains(system, "researcher") {
				return "three day Kyoto outline", nil
			}
			if !strings.Contains(user, "three day Kyoto outline") {
				t.Errorf("Writer did not receive research findings, got %q", user)
			}
			return "Day 1: Fushimi Inari...", nil
		},
	}
	p := fallback.NewPipeline(completer)

	answer := p.Run(context.Background(), "plan a Kyoto trip")

	if answer != "Day 1: Fushimi Inari..." {
		t.Errorf("Answer got %q, want the writer output", answer)
	}
	if completer.Calls != 2 {
		t.Errorf("Completer calls got %d, want 2", completer.Calls)
	}
}

func TestRun_DegradedScenarios(t *testing.T) {
	tests := []struct {
		name       string
		onComplete func(ctx context.Context, system string, user string) (string, error)
	}{
		{
			name: "Research_Stage_Error",
			onComplete: func(ctx context.Context, system string, user string) (string, error) {
				return "", errors.New("rate limited")
			},
		},
		{
			name: "Research_Stage_Empty",
			onComplete: func(ctx context.Context, system string, user string) (string, error) {
				return "", nil
			},
		},
		{
			name: "Writing_Stage_Error",
			onComplete: func(ctx context.Context, system string, user string) (string, error) {
				if strings.Contains(system, "researcher") {
					return "findings", nil
				}
				return "", errors.New("provider down")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fallback.NewPipeline(&MockCompleter{OnComplete: tt.onComplete})

			if answer := p.Run(context.Background(), "plan a trip"); answer != fallback.DegradedResponse {
				t.Errorf("Answer got %q, want the degraded response", answer)
			}
		})
	}
}

func TestRun_NilCompleterDegrades(t *testing.T) {
	p := fallback.NewPipeline(nil)

	if answer := p.Run(context.Background(), "plan a trip"); answer != fallback.DegradedResponse {
		t.Errorf("Answer got %q, want the degraded response", answer)
	}
}
