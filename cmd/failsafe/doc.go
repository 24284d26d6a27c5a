// Package main (cmd/failsafe) runs a key ceremony from the terminal.
//
// Without --recover it generates a master key, splits it among the users and
// walks every user through their own screen. With --recover it collects
// encrypted shards from their holders and re-issues one user's keys.
//
// Examples:
//
//	failsafe --users 3 --threshold 2 --accounts 10
//	failsafe --recover --user 2 --accounts 10
//	failsafe --script rehearsal.txt --users 3 --threshold 2
//
// Counts that are not given as flags are asked for interactively.
package main
