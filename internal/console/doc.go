// Package console is the operator's terminal. It provides the line-oriented
// [Prompter] the Publisher reads coordinates from, the [Sink] that turns bus
// events into messages, and the table printed by the peek command.
//
// Prompts and asynchronous messages share one [Output], which serializes
// writes so that a neighbour message never splits a prompt in half.
package console
