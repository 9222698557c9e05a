package main

import "github.com/Tiliavir/caretaker-log/cmd"

func main() {
	cmd.Execute()
}
