package main

import "relay/cmd/client/cmd"

func main() {
	cmd.Execute()
}
