// Package mock provides test doubles for the ai package interfaces.
//
// The mocks default to deterministic behavior so tests are reproducible
// without external model servers. Custom behavior is injected via the
// function fields; call counts support interaction assertions.
package mock
