// Package services implements the driving port interfaces.
// Services hold the harvest pipeline logic and call out only through
// driven ports, so every service runs against in-memory fakes in tests.
package services
