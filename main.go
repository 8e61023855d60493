package main

import "github.com/jsench/Project-Wheatley/cmd"

func main() {
	cmd.Execute()
}
