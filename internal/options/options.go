// Package options resolves the command-line arguments and environment
// fallbacks into a single Config.
package options

import "strings"

// Environment variables consulted when a CLI value is blank.
const (
	EnvOrg     = "ADO_ORG"
	EnvProject = "ADO_PROJECT"
	EnvPAT     = "ADO_PAT"
)

// LookupFunc returns the value of a setting, or "" when it is unset.
// os.Getenv satisfies it.
type LookupFunc func(key string) string

// Config holds the resolved run settings.
type Config struct {
	ShowHelp bool
	Apply    bool
	Verbose  bool
	Org      string
	Project  string
	PAT      string
}

// DryRun reports whether no changes may be made.
func (c Config) DryRun() bool {
	return !c.Apply
}

// Missing returns the flag names of required settings that are blank.
func (c Config) Missing() []string {
	var missing []string
	if isBlank(c.Org) {
		missing = append(missing, "org")
	}
	if isBlank(c.Project) {
		missing = append(missing, "project")
	}
	if isBlank(c.PAT) {
		missing = append(missing, "pat")
	}
	return missing
}

// Parse reads args without consulting the environment.
//
// Flags match case-insensitively. Value flags take the next token whatever
// it is; a trailing value flag yields "". Unknown tokens are ignored.
func Parse(args []string) Config {
	return Config{
		ShowHelp: hasFlag(args, "--help", "-h", "/?"),
		Apply:    hasFlag(args, "--apply"),
		Verbose:  hasFlag(args, "--verbose", "-v"),
		Org:      valueOf(args, "--org"),
		Project:  valueOf(args, "--project"),
		PAT:      valueOf(args, "--pat"),
	}
}

// Resolve parses args and fills blank Org, Project and PAT from lookup.
// A non-blank CLI value always wins. A nil lookup disables the fallback.
func Resolve(args []string, lookup LookupFunc) Config {
	cfg := Parse(args)
	if lookup == nil {
		return cfg
	}
	cfg.Org = orEnv(cfg.Org, lookup, EnvOrg)
	cfg.Project = orEnv(cfg.Project, lookup, EnvProject)
	cfg.PAT = orEnv(cfg.PAT, lookup, EnvPAT)
	return cfg
}

func hasFlag(args []string, names ...string) bool {
	for _, a := range args {
		for _, n := range names {
			if strings.EqualFold(a, n) {
				return true
			}
		}
	}
	return false
}

func valueOf(args []string, name string) string {
	for i := 0; i+1 < len(args); i++ {
		if strings.EqualFold(args[i], name) {
			return args[i+1]
		}
	}
	return ""
}

func orEnv(v string, lookup LookupFunc, key string) string {
	if !isBlank(v) {
		return v
	}
	return lookup(key)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
