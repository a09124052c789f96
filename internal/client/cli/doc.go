// Package cli provides the interactive blindcalc command-line client.
//
// It wires configuration, the local key store, the evaluator client and the
// client services into a REPL. The key pair lives only in the key store;
// conversation passphrases are read without echo and wiped after use.
//
// Commands:
//   - keygen                              generate (or replace) the key pair
//   - submit <session> [value]            add an encrypted value to a session
//   - average <session>                   decrypt a session's sum and average
//   - member <label>                      blind membership check
//   - send <conversation> [text...]       store a sealed, searchable record
//   - search <conversation> <keyword>     find records by keyword
//   - delete <record-id>                  delete one of your records
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
