package main

import "github.com/boppreh/activity/cmd"

func main() {
	cmd.Execute()
}
