package main

import (
	"github.com/AgroVault/AgroVault-Backend/api"
)

func main() {
	server := api.NewServer(".")
	server.Start()
}
