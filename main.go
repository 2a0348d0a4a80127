package main

import "github.com/faersetl/faersetl/cmd"

func main() {
	cmd.Execute()
}
