// Package metadata provides the client's small key/value store, used to
// persist the signed-in session across restarts.
//
// # Overview
//
// The Repository interface reads and writes opaque byte values by string
// key. SQLiteRepository keeps them in the metadata table created by the
// embedded migrations (see internal/client/migrations).
//
// Multi-key writes (SetMany) and deletes run in one transaction via
// dbx.WithTx, so a session is never stored half-written.
//
// Typical Usage
//
//	repo := metadata.NewSQLiteRepository(db)
//	_ = repo.SetMany(ctx, map[string][]byte{"token": tok, "user": blob})
//	v, err := repo.Get(ctx, "token") // common.ErrNotFound when absent
//	_ = repo.Delete(ctx, "user", "token")
package metadata
