package main

import "bunshack-api/cmd"

func main() {
	cmd.Execute()
}
