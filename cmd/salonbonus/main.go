package main

import "github.com/talx-hub/salon-bonus/internal/service"

func main() {
	service.RunServer()
}
