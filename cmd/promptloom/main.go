// Package main provides the promptloom CLI for deterministic prompt generation.
package main

func main() {
	Execute()
}
