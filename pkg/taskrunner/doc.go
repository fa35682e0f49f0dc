// Package taskrunner composes devtasks tasks into ordered step sequences. A Sequence runs its
// steps one after another, stops at the first failure, and prints a one-line outcome summary
// when more than one step was attempted.
package taskrunner
