package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redactyl/credscan/internal/types"
)

type sarifDoc struct {
	Version string `json:"version"`
	Runs    []struct {
		Properties map[string]any `json:"properties"`
		ColumnKind string         `json:"columnKind"`
		Tool       struct {
			Driver struct {
				Name  string `json:"name"`
				Rules []struct {
					ID string `json:"id"`
				} `json:"rules"`
			} `json:"driver"`
		} `json:"tool"`
		Results []struct {
			RuleID    string `json:"ruleId"`
			RuleIndex int    `json:"ruleIndex"`
			Level     string `json:"level"`
			Locations []struct {
				PhysicalLocation struct {
					ArtifactLocation struct {
						URI string `json:"uri"`
					} `json:"artifactLocation"`
					Region struct {
						StartLine   int `json:"startLine"`
						StartColumn int `json:"startColumn"`
					} `json:"region"`
				} `json:"physicalLocation"`
			} `json:"locations"`
		} `json:"results"`
	} `json:"runs"`
}

func TestRuleID(t *testing.T) {
	assert.Equal(t, "hardcoded_password", RuleID("Hardcoded Password"))
	assert.Equal(t, "credentials_in_connection_string", RuleID("Credentials in Connection String"))
	assert.Equal(t, "aws_access_key", RuleID("AWS Access Key"))
	assert.Equal(t, "a_b", RuleID("  A -- B  "))
}

func TestWriteSARIF_RulesAndResults(t *testing.T) {
	findings := []types.Finding{
		{Path: "b.py", Line: 3, Category: "API Key", Severity: types.SevMed},
		{Path: "a.py", Line: 1, Column: 8, Category: "Hardcoded Password", Severity: types.SevHigh},
		{Path: "c.py", Line: 9, Category: "API Key", Severity: types.SevMed},
		{Path: "d.py", Line: 2, Category: "Secret", Severity: types.SevLow},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteSARIF(&buf, findings, "1.2.3"))

	var doc sarifDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc), buf.String())
	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)
	run := doc.Runs[0]
	assert.Equal(t, ToolName, run.Tool.Driver.Name)
	require.Len(t, run.Tool.Driver.Rules, 3)
	require.Len(t, run.Results, 4)

	first := run.Results[0]
	assert.Equal(t, "hardcoded_password", first.RuleID)
	assert.Equal(t, "error", first.Level)
	assert.Equal(t, "a.py", first.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, 1, first.Locations[0].PhysicalLocation.Region.StartLine)
	assert.Equal(t, 8, first.Locations[0].PhysicalLocation.Region.StartColumn)
	assert.Equal(t, "unicodeCodePoints", run.ColumnKind)

	for _, r := range run.Results {
		assert.Equal(t, r.RuleID, run.Tool.Driver.Rules[r.RuleIndex].ID)
	}
	assert.Equal(t, "note", run.Results[3].Level)
	assert.Nil(t, run.Properties)
}

func TestWriteSARIFWithStats_IncludesProperties(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSARIFWithStats(&buf, nil, "dev", map[string]int{"filesScanned": 12}))

	var doc sarifDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Runs, 1)
	assert.Empty(t, doc.Runs[0].Results)
	stats, ok := doc.Runs[0].Properties["scanStats"].(map[string]any)
	require.True(t, ok, "expected scanStats in properties, got %#v", doc.Runs[0].Properties)
	assert.Equal(t, float64(12), stats["filesScanned"])
}
