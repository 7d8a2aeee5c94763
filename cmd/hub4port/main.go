/*
Copyright © 2025 KJ5DTV
*/
package main

import "github.com/kj5dtv/hub4port/cmd"

func main() {
	cmd.Execute()
}
