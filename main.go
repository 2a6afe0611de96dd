package main

import "romdat/cmd"

func main() {
	cmd.Execute()
}
