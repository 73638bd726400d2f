package main

import "eatery-frontend/web-svc/cmd"

func main() {
	cmd.Execute()
}
