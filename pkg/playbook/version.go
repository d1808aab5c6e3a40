// Package playbook exposes build metadata for the playbook module.
package playbook

// Version is the playbook release version.
const Version = "0.1.0"
