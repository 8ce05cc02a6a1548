package main

import "github.com/fakeyudi/rapidreporter/cmd"

func main() {
	cmd.Execute()
}
