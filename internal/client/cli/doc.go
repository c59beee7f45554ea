// Package cli provides the interactive CloudDrive command-line client.
//
// It wires configuration, the local session database, the backend API
// clients and an interactive REPL. A saved session is restored on start, so
// a user who logged in before lands straight on their file list.
//
// Key features:
//   - Register / Login / Logout, whoami
//   - List and search the library, download files
//   - Select or drop files and upload them as one batch
//   - Share a file with another account or through a link (copy, QR code)
//   - Open a share token or link without logging in
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
