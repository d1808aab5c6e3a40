// Package types defines the Pattern and Document entity types, the Store
// interface, the category enumeration, and standard error types for the
// playbook storage system.
package types
