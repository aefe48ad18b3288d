package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	reply  string
	err    error
	prompt string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.reply, g.err
}

func TestPromptFromArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"single word", []string{"hello"}, "hello", false},
		{"words are joined", []string{"name", "a", "sock", "company"}, "name a sock company", false},
		{"no args", nil, "", true},
		{"blank args", []string{" ", ""}, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := promptFromArgs(tc.args)
			if tc.wantErr {
				assert.ErrorIs(t, err, errUsage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAsk_PrintsCompletion(t *testing.T) {
	gen := &fakeGenerator{reply: "Socks & Co."}
	var out bytes.Buffer

	require.NoError(t, ask(context.Background(), gen, "name a sock company", &out))
	assert.Equal(t, "name a sock company", gen.prompt)
	assert.Equal(t, "Socks & Co.\n", out.String())
}

func TestAsk_ReturnsGeneratorError(t *testing.T) {
	quota := errors.New("quota exceeded")
	var out bytes.Buffer

	err := ask(context.Background(), &fakeGenerator{err: quota}, "hi", &out)
	require.ErrorIs(t, err, quota)
	assert.Empty(t, out.String())
}
