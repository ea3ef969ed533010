package main

import "github.com/tableloyal/tableloyal/cmd"

func main() {
	cmd.Execute()
}
