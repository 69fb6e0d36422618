// Package testutil provides shared test doubles and fixtures for the
// dataset packages. It depends only on leaf packages so that storage and
// domain tests can import it.
package testutil
