// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"errors"
	"sync"

	"github.com/dalemusser/npoconnect/internal/app/store/kv"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the backing stores. The Mongo fields are nil when the memory
// task store is selected.
//
// The hooks receive DBDeps by value, so the services Startup builds are
// published through the shared *serviceSlot that ConnectDB allocates.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	KV            kv.Store

	services *serviceSlot
}

// serviceSlot hands the services from Startup to BuildHandler and Shutdown.
type serviceSlot struct {
	mu sync.Mutex
	s  *services
}

func newDBDeps(client *mongo.Client, db *mongo.Database, store kv.Store) DBDeps {
	return DBDeps{MongoClient: client, MongoDatabase: db, KV: store, services: &serviceSlot{}}
}

func (d DBDeps) setServices(s *services) error {
	if d.services == nil {
		return errors.New("dependencies were not created by ConnectDB")
	}
	d.services.mu.Lock()
	d.services.s = s
	d.services.mu.Unlock()
	return nil
}

// currentServices returns what Startup built.
func (d DBDeps) currentServices() (*services, error) {
	if d.services == nil {
		return nil, errors.New("startup has not run")
	}
	d.services.mu.Lock()
	defer d.services.mu.Unlock()
	if d.services.s == nil {
		return nil, errors.New("startup has not run")
	}
	return d.services.s, nil
}

// takeServices clears the slot and returns its previous content.
func (d DBDeps) takeServices() *services {
	if d.services == nil {
		return nil
	}
	d.services.mu.Lock()
	defer d.services.mu.Unlock()
	s := d.services.s
	d.services.s = nil
	return s
}
