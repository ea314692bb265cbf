package service

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/w31r4/deluse/internal/service/mocks"
)

func TestSystemctlQuerierUnit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	mockExec.EXPECT().
		Run(gomock.Any(), "systemctl", "status", "--no-pager", "1234").
		Return([]byte("● sshd.service - OpenSSH Daemon\n   Active: active (running)\n"), nil)

	q := NewSystemctlQuerier(mockExec, time.Second)
	unit, err := q.Unit(context.Background(), "1234")
	require.NoError(t, err)
	assert.Equal(t, "sshd.service", unit)
}

func TestSystemctlQuerierNonZeroExitIsParsed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	mockExec.EXPECT().
		Run(gomock.Any(), "systemctl", "status", "--no-pager", "77").
		Return([]byte("No unit for PID 77 is loaded.\n"), &exec.ExitError{})
	mockExec.EXPECT().
		Run(gomock.Any(), "systemctl", "status", "--no-pager", "78").
		Return([]byte("○ backup.service - Nightly backup\n     Active: inactive (dead)\n"), &exec.ExitError{})

	q := NewSystemctlQuerier(mockExec, time.Second)

	unit, err := q.Unit(context.Background(), "77")
	require.NoError(t, err)
	assert.Empty(t, unit)

	unit, err = q.Unit(context.Background(), "78")
	require.NoError(t, err)
	assert.Equal(t, "backup.service", unit)
}

func TestSystemctlQuerierMissingBinary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	mockExec.EXPECT().
		Run(gomock.Any(), "systemctl", "status", "--no-pager", "1").
		Return(nil, exec.ErrNotFound)

	q := NewSystemctlQuerier(mockExec, time.Second)
	_, err := q.Unit(context.Background(), "1")

	var qErr *QueryError
	require.ErrorAs(t, err, &qErr)
	assert.Equal(t, "systemctl", qErr.Querier)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestSystemctlQuerierTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	mockExec.EXPECT().
		Run(gomock.Any(), "systemctl", "status", "--no-pager", "1").
		DoAndReturn(func(ctx context.Context, name string, args ...string) ([]byte, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	q := NewSystemctlQuerier(mockExec, 10*time.Millisecond)
	_, err := q.Unit(context.Background(), "1")

	var qErr *QueryError
	require.ErrorAs(t, err, &qErr)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestNewSystemctlQuerierDefaultsTimeout(t *testing.T) {
	q := NewSystemctlQuerier(&RealExecutor{}, 0)
	assert.Equal(t, DefaultTimeout, q.timeout)
}
