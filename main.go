package main

import "github.com/datadiver/diver/cmd"

func main() {
	cmd.Execute()
}
