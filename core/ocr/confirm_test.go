package ocr

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCandidates = []Candidate{
	{Identifier: "A00001", Raw: "A00001", Confidence: 95, Source: "a.jpg"},
	{Identifier: "A00002", Raw: "A0OOO2", Confidence: 95, Corrected: true, Source: "a.jpg"},
	{Identifier: "A00003", Raw: "A00003", Confidence: 42, Source: "a.jpg"},
	{Identifier: "A00004", Raw: "A00004", Confidence: 12, Source: "b.jpg"},
}

func TestThresholdConfirmer(t *testing.T) {
	c := ThresholdConfirmer{MinConfidence: 80}

	accepted, review := c.Split(testCandidates)
	assert.Equal(t, []string{"A00001"}, accepted)
	require.Len(t, review, 3)
	assert.Equal(t, "A00002", review[0].Identifier)

	ids, err := c.Confirm(context.Background(), testCandidates)
	require.NoError(t, err)
	assert.Equal(t, []string{"A00001"}, ids)
}

func TestPromptConfirmer(t *testing.T) {
	var out bytes.Buffer
	p := &PromptConfirmer{
		// accept A00002, reject A00003, correct A00004 after one invalid try
		In:        strings.NewReader("\nn\nxyz\na00044\n"),
		Out:       &out,
		Pattern:   regexp.MustCompile(`^[A-Z][0-9]{5}$`),
		Threshold: ThresholdConfirmer{MinConfidence: 80},
	}

	ids, err := p.Confirm(context.Background(), testCandidates)
	require.NoError(t, err)

	assert.Equal(t, []string{"A00001", "A00002", "A00044"}, ids)
	assert.Equal(t, 4, strings.Count(out.String(), "[Y/n/correction]"))
	assert.Contains(t, out.String(), `"xyz" does not look like an identifier`)
}

func TestPromptConfirmer_InputEnds(t *testing.T) {
	var out bytes.Buffer
	p := &PromptConfirmer{
		In:        strings.NewReader("j\n"),
		Out:       &out,
		Threshold: ThresholdConfirmer{MinConfidence: 80},
	}

	ids, err := p.Confirm(context.Background(), testCandidates)
	require.NoError(t, err)
	assert.Equal(t, []string{"A00001", "A00002"}, ids)
}

func TestPromptConfirmer_AcceptAll(t *testing.T) {
	p := &PromptConfirmer{AcceptAll: true}

	ids, err := p.Confirm(context.Background(), testCandidates)
	require.NoError(t, err)
	assert.Equal(t, []string{"A00001", "A00002", "A00003", "A00004"}, ids)
}

func TestPromptConfirmer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &PromptConfirmer{In: strings.NewReader(""), Out: &bytes.Buffer{}}
	_, err := p.Confirm(ctx, testCandidates)
	assert.ErrorIs(t, err, context.Canceled)
}
