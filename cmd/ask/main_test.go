package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/draft-diagnostics/internal/adp"
	"github.com/jstittsworth/draft-diagnostics/internal/assistant"
	"github.com/jstittsworth/draft-diagnostics/internal/matching"
)

func TestAskAllDefaultQuestions(t *testing.T) {
	table, err := adp.SeedTable()
	require.NoError(t, err)
	responder := assistant.NewResponder(table, matching.New(0), 12)

	var out bytes.Buffer
	answered := askAll(context.Background(), responder, defaultQuestions, &out)

	// all but the weather question
	assert.Equal(t, len(defaultQuestions)-1, answered)
	assert.Contains(t, out.String(), "Ja'Marr Chase")
	assert.Contains(t, out.String(), "intent=unrecognized")
	assert.Contains(t, out.String(), "[9] Q: What's the weather in Green Bay?")
}
