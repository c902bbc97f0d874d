//go:build tools

package tools

// mockery v3 is used as an installed binary, so no tool imports are
// needed. Run mockery from the module root to regenerate the mocks
// configured in .mockery.yml.
