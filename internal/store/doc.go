// Package store defines the persistence interfaces and error taxonomy used
// by the service and API layers. Concrete implementations live in
// internal/platform (e.g. the postgres package).
package store
