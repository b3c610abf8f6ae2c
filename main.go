package main

import "device-inventory/cmd"

func main() {
	cmd.Execute()
}
