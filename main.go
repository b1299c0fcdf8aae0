package main

import "github.com/hurou927/db-normalize/cmd"

func main() {
	cmd.Execute()
}
