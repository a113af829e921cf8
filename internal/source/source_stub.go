//go:build !linux
// +build !linux

package source

import (
	"context"
	"fmt"

	"github.com/Canterrain/spotipi-eink/internal/domain"
	"go.uber.org/zap"
)

// StubSource is the non-Linux placeholder; MPRIS polling needs a session bus
type StubSource struct {
	logger *zap.Logger
}

// NewSource returns a stub source on platforms without MPRIS support
func NewSource(logger *zap.Logger, service string) (*StubSource, error) {
	logger.Warn("MPRIS polling is only supported on Linux systems")
	return &StubSource{logger: logger}, nil
}

// Close is a no-op on non-Linux platforms
func (s *StubSource) Close() error {
	return nil
}

// Poll always fails on non-Linux platforms
func (s *StubSource) Poll(ctx context.Context) (domain.Playback, error) {
	return domain.Playback{}, fmt.Errorf("MPRIS polling is only supported on Linux systems")
}
