// Package fakes provides in-memory implementations of the Azure client
// interfaces used by azops, for tests that must not touch the network.
//
// Each fake counts its calls so tests can assert that an operation made
// exactly the calls it should. Errors are injected through the Err fields
// or the Func overrides.
package fakes
