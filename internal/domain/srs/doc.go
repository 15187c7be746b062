// Package srs implements the spaced-repetition scheduling policy: the
// word lifecycle transition table, the interval table used to compute the
// next due timestamp, and the due-queue selector. Every function in this
// package is a pure transformation over its inputs; time is always passed
// in explicitly so tests can simulate day boundaries and interval expiry.
package srs
