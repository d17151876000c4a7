package main

import "github.com/lepinkainen/cinegraph/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
