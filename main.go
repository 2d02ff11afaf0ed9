/*
	Copyright 2026 race50 authors
*/

package main

import "github.com/race50/race50-service-go/cmd"

func main() {
	cmd.Execute()
}
