// Package testutil drives slotlist and its reference model with the same
// operation sequences and compares their observable state.
//
// Operations are decoded from raw bytes so Go's fuzzer can mutate them and
// seeded tests can replay them deterministically.
package testutil
