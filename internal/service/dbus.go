package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	systemd "github.com/coreos/go-systemd/v22/dbus"
	"github.com/godbus/dbus/v5"
	log "github.com/sirupsen/logrus"
)

const noUnitForPID = "org.freedesktop.systemd1.NoUnitForPID"

type unitConn interface {
	GetUnitNameByPID(ctx context.Context, pid uint32) (string, error)
	Close()
}

// DBusQuerier asks the systemd manager over the system bus.
// The connection is opened on first use and kept until Close. It is safe for
// concurrent use.
type DBusQuerier struct {
	timeout time.Duration
	connect func(ctx context.Context) (unitConn, error)

	mu   sync.Mutex
	conn unitConn
}

// NewDBusQuerier returns a querier that waits at most timeout per lookup.
// A non-positive timeout selects DefaultTimeout.
func NewDBusQuerier(timeout time.Duration) *DBusQuerier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &DBusQuerier{
		timeout: timeout,
		connect: func(ctx context.Context) (unitConn, error) {
			return systemd.NewWithContext(ctx)
		},
	}
}

func (q *DBusQuerier) Name() string { return "dbus" }

func (q *DBusQuerier) Unit(ctx context.Context, pid string) (string, error) {
	n, err := strconv.ParseUint(pid, 10, 32)
	if err != nil {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	conn, err := q.connection(ctx)
	if err != nil {
		return "", &QueryError{Querier: q.Name(), Err: err}
	}

	unit, err := conn.GetUnitNameByPID(ctx, uint32(n))
	if err != nil {
		var dErr dbus.Error
		if errors.As(err, &dErr) && dErr.Name == noUnitForPID {
			return "", nil
		}
		var dErrPtr *dbus.Error
		if errors.As(err, &dErrPtr) && dErrPtr.Name == noUnitForPID {
			return "", nil
		}
		return "", &QueryError{Querier: q.Name(), Err: err}
	}
	log.Debugf("dbus: %s belongs to %s", pid, unit)
	return unit, nil
}

func (q *DBusQuerier) connection(ctx context.Context) (unitConn, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.conn == nil {
		conn, err := q.connect(ctx)
		if err != nil {
			return nil, err
		}
		q.conn = conn
	}
	return q.conn, nil
}

// Close releases the bus connection, if one was opened.
func (q *DBusQuerier) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.conn != nil {
		q.conn.Close()
		q.conn = nil
	}
	return nil
}
