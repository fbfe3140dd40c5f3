package database

import "errors"

var (
	// ErrNotReady indicates the database connection has not been established.
	ErrNotReady = errors.New("database not ready")
	// ErrUnsupportedDriver indicates a driver other than sqlite or postgres.
	ErrUnsupportedDriver = errors.New("unsupported driver")
)
