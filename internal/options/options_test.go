package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mapLookup(m map[string]string) LookupFunc {
	return func(key string) string { return m[key] }
}

func TestParseApplyAnyCase(t *testing.T) {
	for _, flag := range []string{"--apply", "--APPLY", "--Apply", "--aPpLy"} {
		t.Run(flag, func(t *testing.T) {
			cfg := Parse([]string{"--org", "https://dev.azure.com/x", flag})
			assert.True(t, cfg.Apply)
			assert.False(t, cfg.DryRun())
		})
	}
}

func TestParseDefaultsToDryRun(t *testing.T) {
	cfg := Parse(nil)
	assert.False(t, cfg.Apply)
	assert.True(t, cfg.DryRun())
	assert.False(t, cfg.ShowHelp)
	assert.Empty(t, cfg.Org)
}

func TestParseHelpAliases(t *testing.T) {
	for _, flag := range []string{"--help", "-h", "/?", "--HELP", "-H"} {
		t.Run(flag, func(t *testing.T) {
			assert.True(t, Parse([]string{"--pat", flag}).ShowHelp)
		})
	}
}

func TestParseValues(t *testing.T) {
	cfg := Parse([]string{
		"--ORG", "https://dev.azure.com/acme",
		"--Project", "Platform Team",
		"--pat", "secret",
		"--verbose",
	})
	assert.Equal(t, "https://dev.azure.com/acme", cfg.Org)
	assert.Equal(t, "Platform Team", cfg.Project)
	assert.Equal(t, "secret", cfg.PAT)
	assert.True(t, cfg.Verbose)
}

func TestParseMissingValueIsEmpty(t *testing.T) {
	cfg := Parse([]string{"--project", "p", "--pat"})
	assert.Equal(t, "p", cfg.Project)
	assert.Empty(t, cfg.PAT)
}

func TestParseValueConsumesNextToken(t *testing.T) {
	cfg := Parse([]string{"--org", "--apply"})
	assert.Equal(t, "--apply", cfg.Org)
	assert.True(t, cfg.Apply)
}

func TestParseFirstOccurrenceWins(t *testing.T) {
	cfg := Parse([]string{"--org", "first", "--org", "second"})
	assert.Equal(t, "first", cfg.Org)
}

func TestParseIgnoresUnknown(t *testing.T) {
	cfg := Parse([]string{"--frobnicate", "stray", "--project", "p"})
	assert.Equal(t, "p", cfg.Project)
	assert.False(t, cfg.ShowHelp)
}

func TestResolveEnvFallback(t *testing.T) {
	env := mapLookup(map[string]string{
		EnvOrg:     "https://dev.azure.com/env",
		EnvProject: "EnvProject",
		EnvPAT:     "env-pat",
	})

	tests := []struct {
		name        string
		args        []string
		wantOrg     string
		wantProject string
		wantPAT     string
	}{
		{
			name:        "all from env",
			args:        nil,
			wantOrg:     "https://dev.azure.com/env",
			wantProject: "EnvProject",
			wantPAT:     "env-pat",
		},
		{
			name:        "cli wins",
			args:        []string{"--org", "https://dev.azure.com/cli", "--project", "CliProject", "--pat", "cli-pat"},
			wantOrg:     "https://dev.azure.com/cli",
			wantProject: "CliProject",
			wantPAT:     "cli-pat",
		},
		{
			name:        "blank cli falls back",
			args:        []string{"--org", "  ", "--project", "", "--pat", "cli-pat"},
			wantOrg:     "https://dev.azure.com/env",
			wantProject: "EnvProject",
			wantPAT:     "cli-pat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Resolve(tt.args, env)
			assert.Equal(t, tt.wantOrg, cfg.Org)
			assert.Equal(t, tt.wantProject, cfg.Project)
			assert.Equal(t, tt.wantPAT, cfg.PAT)
		})
	}
}

func TestResolveNilLookup(t *testing.T) {
	cfg := Resolve([]string{"--org", "o"}, nil)
	assert.Equal(t, "o", cfg.Org)
	assert.Empty(t, cfg.Project)
}

func TestMissing(t *testing.T) {
	assert.Equal(t, []string{"org", "project", "pat"}, Config{}.Missing())
	assert.Equal(t, []string{"pat"}, Config{Org: "o", Project: "p", PAT: " "}.Missing())
	assert.Empty(t, Config{Org: "o", Project: "p", PAT: "t"}.Missing())
}
