package main

import (
	api "warbler/api"
)

func main() {
	api.Run()
}
