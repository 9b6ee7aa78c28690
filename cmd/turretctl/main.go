package main

import "github.com/oxturret/turretweb/internal/cli"

func main() {
	cli.Execute()
}
