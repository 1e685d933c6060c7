package main

import "github.com/deppfellow/campus-portal/cmd/portal/cmd"

func main() {
	cmd.Execute()
}
