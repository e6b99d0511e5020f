package main

import "market-tracker/cmd"

func main() {
	cmd.Execute()
}
