// package migrate implements the one-shot migration from the legacy
// relational store to the target document store.
//
// The core abstraction is the Migrator, which moves one entity's rows at a
// time, and the Pipeline, which sequences the per-entity migrators in
// dependency order and threads each step's id mapping into the steps that
// depend on it. Operations emit progress updates via channels for
// non-blocking status reporting to the CLI layer.
//
// Every legacy row produces exactly one Result regardless of outcome: rows
// whose dependencies cannot be resolved are skipped with a typed status and
// are never partially inserted, and a single row's insert failure never
// aborts its batch. Only infrastructure failures (an unreachable store, a
// failed uniqueness pre-check, cancellation) abort a run.
package migrate
