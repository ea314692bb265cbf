package service

import (
	"context"
	"os/exec"
)

//go:generate mockgen -destination=mocks/mock_executor.go -package=mocks github.com/w31r4/deluse/internal/service Executor

// Executor runs an external command and returns its standard output.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// RealExecutor runs commands on the host with os/exec.
type RealExecutor struct{}

// Run starts name with args and returns its standard output. The process is
// killed when ctx is done.
func (r *RealExecutor) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
