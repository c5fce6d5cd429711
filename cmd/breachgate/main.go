// Package main provides the breachgate CLI, which curates breach actions for
// recorded device interactions and checks the results against expectations.
package main

func main() {
	Execute()
}
