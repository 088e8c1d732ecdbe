package main

import "dsaudit/cmd/dsaudit-cli/cmd"

func main() {
	cmd.Execute()
}
