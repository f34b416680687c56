package main

import "github.com/jjenkins/mirrulations/cmd"

func main() {
	cmd.Execute()
}
