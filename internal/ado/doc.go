// Package ado is a minimal read-only Azure DevOps REST client.
// It authenticates with a personal access token sent as HTTP Basic auth
// with a blank username and lists the work item tags of a project.
package ado
