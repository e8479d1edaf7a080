package generate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"missing credential", &Error{Kind: KindMissingCredential}, KindMissingCredential},
		{"wrapped network", fmt.Errorf("suggest: %w", Errorf(KindNetwork, "dial: %s", "refused")), KindNetwork},
		{"service", &Error{Kind: KindService, Status: 403}, KindService},
		{"plain error", errors.New("boom"), KindUnknown},
		{"nil", nil, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestError_Message(t *testing.T) {
	err := &Error{Kind: KindService, Status: 429, Err: errors.New("quota exceeded")}
	assert.Equal(t, "generation failed (service, status 429): quota exceeded", err.Error())

	bare := &Error{Kind: KindMissingCredential}
	assert.Equal(t, "generation failed (missing credential)", bare.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := context.DeadlineExceeded
	err := fmt.Errorf("outer: %w", &Error{Kind: KindNetwork, Err: cause})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, IsGenerationError(err))
	assert.False(t, IsGenerationError(cause))
}

func TestGeneratorFunc(t *testing.T) {
	var got string
	g := GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		got = prompt
		return "ok", nil
	})

	out, err := g.Generate(context.Background(), "hi")
	assert.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, "hi", got)
}
