package main

import "github.com/sahilchouksey/task-tracker/commands"

func main() {
	commands.Execute()
}
