// Package store defines the persistence boundary for phrase data that lives
// outside the embedded phrase bank, plus the transaction helper and error
// vocabulary shared by its implementations.
package store
