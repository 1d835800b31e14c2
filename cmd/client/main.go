package main

import "lifesprint/cmd/client/cmd"

func main() {
	cmd.Execute()
}
