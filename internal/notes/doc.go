// Package notes stores note documents for the reference backend.
//
// A note is addressed by its id, which doubles as a file name: ids are
// validated with ValidateID and stored as "<id>.txt". Three Store
// implementations exist:
//   - MemoryStore: process-local, for tests and demos
//   - FileStore: one UTF-8 file per note under a directory
//   - PostgresStore: a single notes table
package notes
