// Package console implements interfaces.Console.
//
// Terminal drives an interactive readline session and is what operators use.
// Script replays a fixed list of answers and records everything shown; it
// backs the tests and the --script rehearsal mode.
package console
