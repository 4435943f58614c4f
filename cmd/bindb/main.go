/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ssargent/bindb/cmd/bindb/cmd"

func main() {
	cmd.Execute()
}
