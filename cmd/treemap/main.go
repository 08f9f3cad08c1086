package main

import "github.com/luforestal/school-inventory/cmd/treemap/cmd"

func main() {
	cmd.Execute()
}
