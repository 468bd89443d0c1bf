package main

import "portranger/cmd/cli/app/cmd"

func main() {
	cmd.Execute()
}
