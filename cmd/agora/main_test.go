package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/agora-courts/agora-courts/internal/runner"
)

const scenarioPath = "../../examples/scenarios/two_voters.yaml"

func TestRun(t *testing.T) {
	dir := t.TempDir()
	metricsOut := filepath.Join(dir, "metrics.prom")

	var out bytes.Buffer
	err := run(context.Background(), options{
		scenario:   scenarioPath,
		dbPath:     filepath.Join(dir, "db"),
		logLevel:   "error",
		metricsOut: metricsOut,
	}, &out)
	require.NoError(t, err)

	var rep runner.Report
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &rep))
	assert.Equal(t, "main", rep.Court)
	require.Len(t, rep.Disputes, 1)
	assert.Equal(t, "alice", rep.Disputes[0].Winner)

	metrics, err := os.ReadFile(metricsOut)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `agora_claims_total{outcome="winning_voter"} 2`)
}

func TestRun_Errors(t *testing.T) {
	err := run(context.Background(), options{scenario: scenarioPath, logLevel: "loud"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "parse log level")

	err = run(context.Background(), options{scenario: "missing.yaml", logLevel: "info"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
