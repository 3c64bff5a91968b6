// Package repository defines the data access contract used by the services of this module.
//
// A Repository translates domain operations into queries: FindAll, FindByID, Create,
// Update, and Delete each issue exactly one query against the injected Conn. The
// Conn is owned by the caller; a Repository does not validate, retry, cache, or batch.
// Errors of the Conn are returned as they are.
//
// Concrete bindings for an entity live next to the entity, e.g. product.Repository.
// MemoryRepository is a generic binding that keeps the entities in memory. It is
// intended for tests and local demos and can persist itself through a Store.
package repository
