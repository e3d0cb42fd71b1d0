package main

import "github.com/timvw/tmw/cmd"

func main() {
	cmd.Execute()
}
