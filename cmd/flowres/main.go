package main

import "github.com/panyam/flowres/cmd/flowres/commands"

func main() {
	commands.Execute()
}
