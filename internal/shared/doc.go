// Package shared provides common utilities and test helpers used across the
// salesclean codebase. It serves as a central location for functionality that
// doesn't belong to any specific domain or architectural layer.
//
// # Structure
//
// The package is organized into the following components:
//
// - testutil: Testing utilities including log capture and assertions
//
// # Usage Guidelines
//
// This package should only contain:
//
// 1. Test utilities used by multiple packages
// 2. Generic helper functions with no domain-specific logic
//
// It should NOT contain:
//
// 1. Business logic or domain-specific code
// 2. Circular dependencies with other internal packages
//
// # Test Utilities
//
// The testutil subpackage provides a buffered slog handler so tests can
// assert on the structured log output of a component:
//
//	func TestSomething(t *testing.T) {
//	    logger, handler := testutil.NewTestLogger(t)
//
//	    component := NewComponent(logger)
//	    component.Run()
//
//	    testutil.AssertLogContains(t, handler, slog.LevelInfo, "run complete")
//	}
package shared
