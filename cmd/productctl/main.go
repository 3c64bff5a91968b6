package main

import "github.com/go-arrower/catalog/cmd"

func main() {
	cmd.Execute()
}
