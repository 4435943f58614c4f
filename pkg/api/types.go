package api

import (
	"github.com/segmentio/ksuid"

	"github.com/ssargent/bindb/pkg/codec"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ValueResponse is a single decoded record
type ValueResponse struct {
	Key   string      `json:"key"`
	Type  string      `json:"type"`
	Value codec.Value `json:"value"`
}

// StoredResponse is returned after a database has been stored
type StoredResponse struct {
	ID      string `json:"id"`
	Records int    `json:"records"`
	Bytes   int    `json:"bytes"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Addr         string
	APIKey       string // empty disables authentication
	MaxInputSize int64
}

// DatabaseStore is the subset of storage.Store used by the server
type DatabaseStore interface {
	Put(raw []byte) (ksuid.KSUID, *codec.Database, error)
	Load(id ksuid.KSUID) (*codec.Database, error)
	Delete(id ksuid.KSUID) error
	List() ([]ksuid.KSUID, error)
}
