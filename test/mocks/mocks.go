// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// To regenerate mocks, run `go generate ./test/mocks`.
package mocks

//go:generate mockgen -source=../../internal/core/ports/gateways.go -destination=gateways_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/session.go -destination=session_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/interaction.go -destination=interaction_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/media.go -destination=media_mock.go -package=mocks
