package db

import (
	"context"
	"fmt"
	"strings"
)

type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
)

// ParseType validates the DB_TYPE setting.
func ParseType(s string) (DBType, error) {
	switch t := DBType(strings.ToLower(strings.TrimSpace(s))); t {
	case Postgres, Mongo:
		return t, nil
	}
	return "", fmt.Errorf("DB_TYPE %q not supported", s)
}

// DB is a backend connection owned by the serve command.
type DB interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
}
