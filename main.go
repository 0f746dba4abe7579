/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package main

import "github.com/Jkweks/labelgen/cmd"

func main() {
	cmd.Execute()
}
