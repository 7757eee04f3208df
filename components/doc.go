// Package components defines ECS components for field sources.
package components
