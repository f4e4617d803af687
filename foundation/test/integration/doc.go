// Package integration provides integration tests for the mCALC foundation library.
//
// Package: integration
// Title: mCALC Foundation Integration Tests
// Description: Verifies the interaction between the foundation modules. A
//              configuration drives the engine limits, the engine reports
//              through the structured logger, and failures crossing a module
//              boundary carry a classified error code.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation of integration test suite
//
// Test Categories:
//
// Pipeline Integration Tests (pipeline_integration_test.go):
// - Configuration values flowing into engine options
// - Structured log output of successful and failed evaluations
// - Error codes and positions across package boundaries
// - Concurrent evaluation sharing one logger and engine
//
// Running Integration Tests:
//
//	go test -v ./test/integration/
//	go test -v ./test/integration/ -run TestPipeline
package integration
