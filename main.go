package main

import "service-booking/cmd"

func main() {
	cmd.Execute()
}
